package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boardingpass-service/internal/domain/entity"
	"boardingpass-service/pkg/logger"
)

// maxBodyBytes bounds the size of a scan submission.
const maxBodyBytes = 1 << 20

// ScanService is what the API needs from the scan processor
type ScanService interface {
	ProcessPayloads(ctx context.Context, payloads []entity.RawPayload) (*entity.ScanReport, error)
	Legs(ctx context.Context) ([]entity.FlightLeg, error)
}

// Server exposes scan submission and the reconciled history over HTTP
type Server struct {
	router   *chi.Mux
	scans    ScanService
	validate *validator.Validate
	logger   logger.Logger
}

// NewServer builds the router. gatherer serves /metrics; nil falls back to the default registry.
func NewServer(scans ScanService, gatherer prometheus.Gatherer, logger logger.Logger) *Server {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(requestLogger(logger))

	s := &Server{
		router:   router,
		scans:    scans,
		validate: validator.New(),
		logger:   logger,
	}

	router.Get("/health", s.health)
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/scans", s.submitScans)
		r.Get("/legs", s.listLegs)
	})

	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func requestLogger(log logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Debug("HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
