package repository

import (
	"context"

	"boardingpass-service/internal/domain/entity"
)

// UpdateFunc computes the new leg collection from the persisted one
type UpdateFunc func(persisted []entity.FlightLeg) ([]entity.FlightLeg, error)

// FlightLegRepository defines the interface for persisted leg history
type FlightLegRepository interface {
	Load(ctx context.Context) ([]entity.FlightLeg, error)
	// Update runs fn with exclusive access to the store and persists its result.
	Update(ctx context.Context, fn UpdateFunc) ([]entity.FlightLeg, error)
}

// Locker provides the exclusive lock held around a read-merge-write cycle
type Locker interface {
	Acquire(ctx context.Context) (release func(), err error)
}
