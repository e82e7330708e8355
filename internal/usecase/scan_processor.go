package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"boardingpass-service/internal/domain/entity"
	"boardingpass-service/internal/domain/repository"
	"boardingpass-service/pkg/bcbp"
	"boardingpass-service/pkg/logger"
	"boardingpass-service/pkg/metrics"
)

const defaultDecodeWorkers = 4

// ScanProcessor decodes boarding pass payloads and reconciles them with the stored history
type ScanProcessor struct {
	router       FormatRouter
	legRepo      repository.FlightLegRepository
	airlineRepo  repository.AirlineRepository
	timezoneRepo repository.TimezoneRepository
	publisher    repository.EventPublisher
	source       repository.PayloadSource
	metrics      *metrics.Metrics
	logger       logger.Logger
	now          func() time.Time
	workers      int
}

// ScanProcessorOption configures optional collaborators of a ScanProcessor
type ScanProcessorOption func(*ScanProcessor)

// WithReferenceData enables carrier name and timezone enrichment
func WithReferenceData(airlines repository.AirlineRepository, timezones repository.TimezoneRepository) ScanProcessorOption {
	return func(p *ScanProcessor) {
		p.airlineRepo = airlines
		p.timezoneRepo = timezones
	}
}

// WithPublisher announces every persisted merge
func WithPublisher(publisher repository.EventPublisher) ScanProcessorOption {
	return func(p *ScanProcessor) { p.publisher = publisher }
}

// WithPayloadSource sets where ProcessDirectory reads payloads from
func WithPayloadSource(source repository.PayloadSource) ScanProcessorOption {
	return func(p *ScanProcessor) { p.source = source }
}

// WithMetrics records processing metrics
func WithMetrics(m *metrics.Metrics) ScanProcessorOption {
	return func(p *ScanProcessor) { p.metrics = m }
}

// WithClock overrides the source of "today"
func WithClock(now func() time.Time) ScanProcessorOption {
	return func(p *ScanProcessor) { p.now = now }
}

// WithDecodeWorkers bounds how many payloads are decoded at once
func WithDecodeWorkers(n int) ScanProcessorOption {
	return func(p *ScanProcessor) {
		if n > 0 {
			p.workers = n
		}
	}
}

// NewScanProcessor creates a new scan processor
func NewScanProcessor(
	router FormatRouter,
	legRepo repository.FlightLegRepository,
	logger logger.Logger,
	opts ...ScanProcessorOption,
) *ScanProcessor {
	p := &ScanProcessor{
		router:  router,
		legRepo: legRepo,
		logger:  logger,
		now:     time.Now,
		workers: defaultDecodeWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type decodeResult struct {
	itinerary *entity.Itinerary
	err       error
}

// ProcessPayloads decodes every payload, merges the decoded legs into history and
// persists the result. A payload that fails to decode is reported in the returned
// ScanReport and leaves its stored legs untouched. The error return is reserved
// for failures of the store itself.
func (p *ScanProcessor) ProcessPayloads(ctx context.Context, payloads []entity.RawPayload) (*entity.ScanReport, error) {
	started := p.now()
	id := uuid.NewString()
	log := p.logger.With("run_id", id)
	report := &entity.ScanReport{
		RunID:       id,
		StartedAt:   started,
		Itineraries: []entity.ItineraryResult{},
		Failures:    []entity.ScanFailure{},
	}

	results := p.decodeAll(payloads, started)

	var fresh []entity.FlightLeg
	var sources []string
	for i, res := range results {
		src := payloads[i].Source
		if res.err != nil {
			kind := bcbp.Kind(res.err)
			log.Warn("Failed to decode payload", "source", src, "kind", kind, "error", res.err)
			report.Failures = append(report.Failures, entity.ScanFailure{
				Source: src,
				Kind:   kind,
				Error:  res.err.Error(),
			})
			if p.metrics != nil {
				p.metrics.DecodeFailures.WithLabelValues(kind).Inc()
			}
			continue
		}

		it := res.itinerary
		if it.Header.DeclaredLegs != len(it.Legs) {
			log.Warn("Declared leg count differs from decoded legs",
				"source", src,
				"declared", it.Header.DeclaredLegs,
				"decoded", len(it.Legs))
		}
		if it.Status != entity.ChainOk {
			log.Warn("Itinerary could not be fully chained", "source", src, "status", it.Status)
		}
		p.enrich(ctx, it.Legs)

		fresh = append(fresh, it.Legs...)
		sources = append(sources, src)
		report.Itineraries = append(report.Itineraries, entity.ItineraryResult{
			Source:       src,
			Confirmation: it.Header.Confirmation,
			LegCount:     len(it.Legs),
			DeclaredLegs: it.Header.DeclaredLegs,
			Status:       it.Status,
		})
		if p.metrics != nil {
			p.metrics.PayloadsDecoded.Inc()
			p.metrics.ChainStatus.WithLabelValues(string(it.Status)).Inc()
		}
	}

	legs, err := p.reconcile(ctx, fresh, sources)
	if err != nil {
		if p.metrics != nil {
			p.metrics.ErrorsCount.WithLabelValues("merge").Inc()
		}
		return report, err
	}
	report.Legs = legs

	log.Info("Scan run completed",
		"payloads", len(payloads),
		"itineraries", len(report.Itineraries),
		"failures", len(report.Failures),
		"total_legs", len(legs))

	p.publish(ctx, log, report, sources)
	return report, nil
}

// ProcessDirectory processes every payload currently available from the payload source
func (p *ScanProcessor) ProcessDirectory(ctx context.Context) (*entity.ScanReport, error) {
	if p.source == nil {
		return nil, errors.New("no payload source configured")
	}
	payloads, err := p.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list payloads: %w", err)
	}
	if len(payloads) == 0 {
		p.logger.Debug("No payloads found")
	}
	return p.ProcessPayloads(ctx, payloads)
}

// Legs returns the persisted, reconciled leg collection
func (p *ScanProcessor) Legs(ctx context.Context) ([]entity.FlightLeg, error) {
	return p.legRepo.Load(ctx)
}

// decodeAll decodes payloads in parallel. Results line up with payloads by index.
func (p *ScanProcessor) decodeAll(payloads []entity.RawPayload, today time.Time) []decodeResult {
	results := make([]decodeResult, len(payloads))

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i, payload := range payloads {
		g.Go(func() error {
			it, err := p.decodeOne(payload, today)
			results[i] = decodeResult{itinerary: it, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (p *ScanProcessor) decodeOne(payload entity.RawPayload, today time.Time) (*entity.Itinerary, error) {
	if payload.Text == "" {
		return nil, &bcbp.DecodeError{Source: payload.Source, Err: bcbp.ErrMalformedHeader}
	}
	handler := p.router.GetHandler(payload.Text[:1])
	if handler == nil {
		return nil, &bcbp.DecodeError{
			Source: payload.Source,
			Err:    fmt.Errorf("%w: %q", bcbp.ErrUnsupportedFormat, payload.Text[:1]),
		}
	}
	return handler.Decode(payload, today)
}

// reconcile runs the merge with exclusive access to the store.
func (p *ScanProcessor) reconcile(ctx context.Context, fresh []entity.FlightLeg, sources []string) ([]entity.FlightLeg, error) {
	if len(fresh) == 0 {
		return p.legRepo.Load(ctx)
	}

	start := time.Now()
	legs, err := p.legRepo.Update(ctx, func(persisted []entity.FlightLeg) ([]entity.FlightLeg, error) {
		return MergeHistory(fresh, persisted, sources), nil
	})
	if p.metrics != nil {
		p.metrics.MergeTime.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to merge history: %w", err)
	}
	if p.metrics != nil {
		p.metrics.LegsReconciled.Add(float64(len(fresh)))
	}
	return legs, nil
}

// enrich fills reference data on the legs. Lookup failures are logged and skipped.
func (p *ScanProcessor) enrich(ctx context.Context, legs []entity.FlightLeg) {
	for i := range legs {
		leg := &legs[i]
		if p.airlineRepo != nil {
			airline, err := p.airlineRepo.GetByCode(ctx, leg.Carrier)
			if err != nil {
				p.logger.Debug("Failed to get airline", "code", leg.Carrier, "error", err)
			} else if airline != nil {
				leg.CarrierName = airline.Name
			}
		}
		if p.timezoneRepo != nil {
			tz, err := p.timezoneRepo.GetByAirportCode(ctx, leg.Origin)
			if err != nil {
				p.logger.Debug("Failed to get departure timezone", "code", leg.Origin, "error", err)
			} else if tz != nil {
				leg.OriginTimezone = tz.TzName
			}
		}
	}
}

func (p *ScanProcessor) publish(ctx context.Context, log logger.Logger, report *entity.ScanReport, sources []string) {
	if p.publisher == nil || len(sources) == 0 {
		return
	}
	event := entity.ReconciledEvent{
		RunID:       report.RunID,
		Sources:     sources,
		Itineraries: report.Itineraries,
		Failures:    len(report.Failures),
		TotalLegs:   len(report.Legs),
		Timestamp:   p.now(),
	}
	if err := p.publisher.PublishReconciled(ctx, event); err != nil {
		log.Error("Failed to publish reconciled event", "error", err)
		if p.metrics != nil {
			p.metrics.ErrorsCount.WithLabelValues("publish").Inc()
		}
		return
	}
	if p.metrics != nil {
		p.metrics.EventsPublished.Inc()
	}
}
