package repository

import (
	"context"

	"boardingpass-service/internal/domain/entity"
)

// PayloadSource defines where decoded barcode text is read from
type PayloadSource interface {
	List(ctx context.Context) ([]entity.RawPayload, error)
}
