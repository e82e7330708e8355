package usecase

import (
	"strings"
	"time"

	"boardingpass-service/internal/domain/entity"
	"boardingpass-service/pkg/bcbp"
)

// BCBPHandlerAdapter adapts the bcbp decoder to the PayloadHandler interface
type BCBPHandlerAdapter struct {
	name    string
	formats []string
}

// NewBCBPHandlerAdapter creates a new adapter for the given format codes.
// With no codes it accepts the standard "M" format.
func NewBCBPHandlerAdapter(name string, formats ...string) *BCBPHandlerAdapter {
	if len(formats) == 0 {
		formats = []string{bcbp.FormatCode}
	}
	return &BCBPHandlerAdapter{
		name:    name,
		formats: formats,
	}
}

// CanHandle checks if this handler can process the format code
func (a *BCBPHandlerAdapter) CanHandle(formatCode string) bool {
	for _, f := range a.formats {
		if strings.EqualFold(f, formatCode) {
			return true
		}
	}
	return false
}

// Decode decodes the payload text
func (a *BCBPHandlerAdapter) Decode(payload entity.RawPayload, today time.Time) (*entity.Itinerary, error) {
	return bcbp.Decode(payload.Text, payload.Source, today)
}

// String names the handler in logs
func (a *BCBPHandlerAdapter) String() string {
	return a.name
}
