package repository

import (
	"context"

	"boardingpass-service/internal/domain/entity"
)

// EventPublisher defines the interface for announcing reconciled runs
type EventPublisher interface {
	PublishReconciled(ctx context.Context, event entity.ReconciledEvent) error
	Close() error
}
