package bcbp

import (
	"strings"

	"boardingpass-service/internal/domain/entity"
)

const (
	conditionalDelimiter = ">"
	ticketPrefix         = "2A"
	minFrequentFlyerLen  = 6
)

// ApplyConditionalData reads the ticket and frequent flyer numbers from the
// free-form section after the first '>' and attaches them to legs[0].
// Both fields are optional; nothing is set when they are not found.
func ApplyConditionalData(raw string, legs []entity.FlightLeg) {
	if len(legs) == 0 {
		return
	}
	_, section, found := strings.Cut(raw, conditionalDelimiter)
	if !found {
		return
	}
	tokens := strings.Fields(section)
	first := &legs[0]

	for _, tok := range tokens {
		if ticket, ok := ticketNumber(tok); ok {
			first.TicketNumber = ticket
			break
		}
	}

	for i, tok := range tokens {
		if tok != first.Carrier || i+2 >= len(tokens) {
			continue
		}
		number := tokens[i+2]
		if allDigits(number) && len(number) >= minFrequentFlyerLen {
			first.FrequentFlyerAirline = tok
			first.FrequentFlyerNumber = number
			break
		}
	}
}

// ticketNumber strips the "2A" prefix and the trailing check digit. A token
// holding only the check digit carries no ticket number and is skipped, so a
// later token can still supply one.
func ticketNumber(tok string) (string, bool) {
	digits, ok := strings.CutPrefix(tok, ticketPrefix)
	if !ok || !allDigits(digits) || len(digits) < 2 {
		return "", false
	}
	return digits[:len(digits)-1], true
}
