package bcbp

import (
	"time"

	"boardingpass-service/internal/domain/entity"
)

// FormatCode is the leading character of the payloads this package decodes.
const FormatCode = "M"

// Decode turns one raw payload into a chained itinerary. source is the
// provenance tag stamped on every leg and on any returned *DecodeError.
//
// today anchors day-of-year resolution; Decode never reads the clock.
func Decode(raw, source string, today time.Time) (*entity.Itinerary, error) {
	header, err := ParseHeader(raw)
	if err != nil {
		return nil, &DecodeError{Source: source, Err: err}
	}

	blocks := ScanLegBlocks(raw)
	if len(blocks) == 0 {
		return nil, &DecodeError{Source: source, Err: ErrNoLegsFound}
	}

	legs := make([]entity.FlightLeg, 0, len(blocks))
	for _, block := range blocks {
		leg := DecodeLeg(block, header, today)
		leg.SourceFile = source
		legs = append(legs, leg)
	}

	// Conditional data belongs to the first leg as encoded, before chaining.
	ApplyConditionalData(raw, legs)

	ordered, status := Chain(legs)
	return &entity.Itinerary{
		Header: header,
		Source: source,
		Legs:   ordered,
		Status: status,
	}, nil
}
