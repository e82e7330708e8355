package bcbp

import (
	"strconv"
	"strings"
	"time"

	"boardingpass-service/internal/domain/entity"
)

var cabinByCode = map[byte]entity.Cabin{
	'F': entity.CabinFirst,
	'A': entity.CabinFirst,
	'J': entity.CabinBusiness,
	'C': entity.CabinBusiness,
	'D': entity.CabinBusiness,
	'I': entity.CabinBusiness,
	'W': entity.CabinPremiumEconomy,
	'P': entity.CabinPremiumEconomy,
	'Y': entity.CabinEconomy,
	'S': entity.CabinEconomy,
	'B': entity.CabinEconomy,
	'H': entity.CabinEconomy,
	'K': entity.CabinEconomy,
	'L': entity.CabinEconomy,
	'M': entity.CabinEconomy,
	'N': entity.CabinEconomy,
}

// LookupCabin maps a compartment code to its cabin. Unrecognised codes
// return CabinUnknown.
func LookupCabin(code byte) entity.Cabin {
	if cabin, ok := cabinByCode[code]; ok {
		return cabin
	}
	return entity.CabinUnknown
}

// DecodeLeg builds a flight leg from one scanned block. An unusable date code
// leaves Departure nil; the leg itself is always returned.
func DecodeLeg(block LegBlock, header entity.CommonHeader, today time.Time) entity.FlightLeg {
	details := block.Details
	leg := entity.FlightLeg{
		CommonHeader: header,
		Origin:       block.Origin,
		Destination:  block.Destination,
		Carrier:      strings.TrimSpace(block.Carrier),
		FlightNumber: normalizeFlightNumber(block.FlightNumber),
		JulianDate:   details[0:3],
		CabinCode:    details[3:4],
		Cabin:        LookupCabin(details[3]),
		SeatNumber:   normalizeSeat(details[4:8]),
	}

	// The scanner only accepts digit sequence numbers.
	leg.SequenceNumber, _ = strconv.Atoi(details[8:12])

	if departure, known, err := ResolveDeparture(block, today); err == nil {
		leg.Departure = departure
		leg.DepartureTimeKnown = known
	}
	return leg
}

func normalizeFlightNumber(s string) string {
	trimmed := strings.TrimLeft(s, "0 ")
	if trimmed == "" && s != "" {
		return "0"
	}
	return trimmed
}

// normalizeSeat renders "012A" as "12A". Seats whose row is not numeric,
// such as "INF" or "GATE" placeholders, are kept as encoded.
func normalizeSeat(s string) string {
	row, letter := s[:3], s[3:]
	if !allDigits(row) {
		return strings.TrimSpace(s)
	}
	n, _ := strconv.Atoi(row)
	return strconv.Itoa(n) + letter
}
