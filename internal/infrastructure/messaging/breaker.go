package messaging

import (
	"context"
	"time"

	"github.com/sony/gobreaker"

	"boardingpass-service/internal/domain/entity"
	"boardingpass-service/internal/domain/repository"
	"boardingpass-service/pkg/logger"
)

// BreakerConfig holds configuration for the publisher circuit breaker
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns the default publisher breaker configuration
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 0.5,
		MinRequests:      3,
	}
}

// BreakerPublisher stops calling a failing broker until it has had time to recover
type BreakerPublisher struct {
	next repository.EventPublisher
	cb   *gobreaker.CircuitBreaker
}

// NewBreakerPublisher wraps next in a circuit breaker
func NewBreakerPublisher(next repository.EventPublisher, config BreakerConfig, logger logger.Logger) *BreakerPublisher {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= config.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return &BreakerPublisher{next: next, cb: cb}
}

// PublishReconciled publishes through the breaker. An open breaker returns
// gobreaker.ErrOpenState without calling the broker.
func (p *BreakerPublisher) PublishReconciled(ctx context.Context, event entity.ReconciledEvent) error {
	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.next.PublishReconciled(ctx, event)
	})
	return err
}

// State reports the breaker state
func (p *BreakerPublisher) State() gobreaker.State {
	return p.cb.State()
}

// Close closes the wrapped publisher
func (p *BreakerPublisher) Close() error {
	return p.next.Close()
}
