package usecase

import (
	"time"

	"boardingpass-service/internal/domain/entity"
)

// PayloadHandler defines the interface for barcode payload decoders
type PayloadHandler interface {
	// CanHandle determines if this handler decodes payloads with the given format code
	CanHandle(formatCode string) bool

	// Decode turns one payload into an itinerary
	Decode(payload entity.RawPayload, today time.Time) (*entity.Itinerary, error)
}

// FormatRouter routes payloads to the appropriate handler based on format code
type FormatRouter interface {
	// Register registers a handler
	Register(handler PayloadHandler)

	// GetHandler returns the appropriate handler for a given format code, or nil
	GetHandler(formatCode string) PayloadHandler
}
