package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"boardingpass-service/internal/domain/repository"
	"boardingpass-service/internal/infrastructure/config"
	"boardingpass-service/internal/infrastructure/lock"
	"boardingpass-service/internal/infrastructure/messaging"
	"boardingpass-service/internal/infrastructure/persistence"
	"boardingpass-service/internal/infrastructure/router"
	legRepo "boardingpass-service/internal/interface/repository"
	"boardingpass-service/internal/interface/rest"
	"boardingpass-service/internal/interface/source"
	"boardingpass-service/internal/usecase"
	"boardingpass-service/pkg/logger"
	"boardingpass-service/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Boarding Pass Service", "version", cfg.AppVersion)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var closers []func(context.Context) error

	// Locking
	var locker repository.Locker = lock.NewLocalLocker()
	if cfg.LockBackend == "redis" {
		redisLocker := lock.NewRedisLocker(lock.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.LockTTL,
		}, log)
		if err := redisLocker.Ping(ctx); err != nil {
			log.Fatal("Failed to connect to Redis", "error", err)
		}
		locker = redisLocker
		closers = append(closers, func(context.Context) error { return redisLocker.Close() })
	}

	// Leg store
	var store repository.FlightLegRepository
	switch cfg.StoreBackend {
	case "mongo":
		log.Info("Connecting to MongoDB")
		db, disconnect, err := persistence.OpenMongo(ctx, persistence.MongoOptions{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDB,
			Username: cfg.MongoUser,
			Password: cfg.MongoPassword,
		})
		if err != nil {
			log.Fatal("Failed to connect to MongoDB", "error", err)
		}
		closers = append(closers, disconnect)
		store = legRepo.NewMongoLegRepository(db, locker, log)
	default:
		log.Info("Using JSON leg store", "file", cfg.PassDataFile)
		store = legRepo.NewJSONLegRepository(cfg.PassDataFile, locker)
	}

	m := metrics.NewMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)
	passes := source.NewDirectorySource(cfg.PassesDir, log)

	formats := router.NewFormatRouter(log)
	formats.Register(usecase.NewBCBPHandlerAdapter("bcbp"))

	opts := []usecase.ScanProcessorOption{
		usecase.WithPayloadSource(passes),
		usecase.WithMetrics(m),
		usecase.WithDecodeWorkers(cfg.DecodeWorkers),
	}

	// Reference data
	if cfg.PostgresURI != "" {
		gormDB, err := persistence.NewPostgresDB(ctx, cfg.PostgresURI)
		if err != nil {
			log.Error("Reference data unavailable, legs will not be enriched", "error", err)
		} else {
			opts = append(opts, usecase.WithReferenceData(
				legRepo.NewGormAirlineRepository(gormDB),
				legRepo.NewGormTimezoneRepository(gormDB),
			))
		}
	}

	// Events
	publisher, err := newPublisher(cfg, log)
	if err != nil {
		log.Fatal("Failed to set up event publisher", "error", err)
	}
	if publisher != nil {
		opts = append(opts, usecase.WithPublisher(publisher))
		closers = append(closers, func(context.Context) error { return publisher.Close() })
	}

	processor := usecase.NewScanProcessor(formats, store, log, opts...)

	// Directory scanning: once on start, on file changes, and on every tick
	trigger := make(chan struct{}, 1)
	notify := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}
	notify()

	go func() {
		if err := passes.Watch(ctx, notify); err != nil {
			log.Error("Payload directory watch stopped, relying on polling", "error", err)
		}
	}()

	go func() {
		ticker := time.NewTicker(cfg.PollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Scan loop stopped")
				return
			case <-ticker.C:
			case <-trigger:
			}
			if _, err := processor.ProcessDirectory(ctx); err != nil {
				log.Error("Error processing payload directory", "error", err)
			}
		}
	}()

	// HTTP API
	api := rest.NewServer(processor, prometheus.DefaultGatherer, log)
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      api.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](shutdownCtx); err != nil {
			log.Error("Shutdown error", "error", err)
		}
	}

	log.Info("Boarding Pass Service stopped")
}

// newPublisher returns nil when events are disabled.
func newPublisher(cfg *config.Config, log logger.Logger) (repository.EventPublisher, error) {
	var next repository.EventPublisher
	switch cfg.EventBackend {
	case "nats":
		p, err := messaging.NewNATSPublisher(cfg.NatsURL, cfg.NatsToken, cfg.NatsSubject, log)
		if err != nil {
			return nil, err
		}
		next = p
	case "kafka":
		next = messaging.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
	default:
		return nil, nil
	}
	return messaging.NewBreakerPublisher(next, messaging.DefaultBreakerConfig(cfg.EventBackend), log), nil
}
