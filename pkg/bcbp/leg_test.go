package bcbp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"boardingpass-service/internal/domain/entity"
)

func TestLookupCabin(t *testing.T) {
	tests := map[byte]entity.Cabin{
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
		'Q': entity.CabinUnknown,
		'0': entity.CabinUnknown,
	}
	for code, want := range tests {
		assert.Equal(t, want, LookupCabin(code), "code %c", code)
	}
}

func TestDecodeLeg(t *testing.T) {
	hdr := entity.CommonHeader{FormatCode: "M", DeclaredLegs: 1, PassengerName: "DOE/JOHN", Confirmation: "ABC123"}

	tests := []struct {
		name  string
		block LegBlock
		check func(t *testing.T, leg entity.FlightLeg)
	}{
		{
			name:  "unknown cabin keeps the raw code",
			block: LegBlock{Origin: "SFO", Destination: "JFK", Carrier: "UA", FlightNumber: "0954", Details: "289Q032C0045"},
			check: func(t *testing.T, leg entity.FlightLeg) {
				assert.Equal(t, entity.CabinUnknown, leg.Cabin)
				assert.Equal(t, "Q", leg.CabinCode)
				assert.Equal(t, "Unknown Code (Q)", leg.CabinLabel())
			},
		},
		{
			name:  "invalid date keeps the leg",
			block: LegBlock{Origin: "SFO", Destination: "JFK", Carrier: "UA", FlightNumber: "0954", Details: "000Y032C0045"},
			check: func(t *testing.T, leg entity.FlightLeg) {
				assert.Nil(t, leg.Departure)
				assert.Equal(t, "000", leg.JulianDate)
				assert.Equal(t, "", leg.DepartureDate())
				assert.Equal(t, "SFO", leg.Origin)
				assert.Equal(t, 45, leg.SequenceNumber)
			},
		},
		{
			name:  "all zero flight number",
			block: LegBlock{Origin: "SFO", Destination: "JFK", Carrier: "UA", FlightNumber: "0000", Details: "289Y032C0045"},
			check: func(t *testing.T, leg entity.FlightLeg) {
				assert.Equal(t, "0", leg.FlightNumber)
			},
		},
		{
			name:  "alphanumeric flight number",
			block: LegBlock{Origin: "SFO", Destination: "JFK", Carrier: "UA", FlightNumber: "012A", Details: "289Y032C0045"},
			check: func(t *testing.T, leg entity.FlightLeg) {
				assert.Equal(t, "12A", leg.FlightNumber)
			},
		},
		{
			name:  "seat row without a number",
			block: LegBlock{Origin: "SFO", Destination: "JFK", Carrier: "UA", FlightNumber: "954", Details: "289YINF 0045"},
			check: func(t *testing.T, leg entity.FlightLeg) {
				assert.Equal(t, "INF", leg.SeatNumber)
			},
		},
		{
			name:  "header copied onto the leg",
			block: LegBlock{Origin: "SFO", Destination: "JFK", Carrier: "UA", FlightNumber: "954", Details: "289F002A0001"},
			check: func(t *testing.T, leg entity.FlightLeg) {
				assert.Equal(t, hdr, leg.CommonHeader)
				assert.Equal(t, "2A", leg.SeatNumber)
				assert.Equal(t, "First", leg.CabinLabel())
				assert.Equal(t, "ABC123-954-289", leg.ID())
				assert.Equal(t, entity.IdentityKey{Confirmation: "ABC123", FlightNumber: "954", DayOfYear: "289"}, leg.Key())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.block.Extended = tt.block.Details
			tt.check(t, DecodeLeg(tt.block, hdr, today))
		})
	}
}
