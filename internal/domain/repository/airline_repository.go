package repository

import (
	"context"

	"boardingpass-service/internal/domain/entity"
)

// AirlineRepository defines the interface for carrier name lookups by IATA code
type AirlineRepository interface {
	GetByCode(ctx context.Context, code string) (*entity.Airline, error)
}
