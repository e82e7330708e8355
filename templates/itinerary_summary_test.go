package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardingpass-service/internal/domain/entity"
)

func TestRenderItinerarySummary(t *testing.T) {
	dep1 := time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
	dep2 := time.Date(2026, time.October, 17, 7, 45, 0, 0, time.UTC)
	header := entity.CommonHeader{FormatCode: "M", DeclaredLegs: 3, PassengerName: "DOE/JANE", Confirmation: "XYZ789"}

	it := &entity.Itinerary{
		Header: header,
		Source: "trip.txt",
		Status: entity.ChainOk,
		Legs: []entity.FlightLeg{
			{
				CommonHeader: header, Carrier: "UA", FlightNumber: "954", Origin: "SFO", Destination: "JFK",
				JulianDate: "289", Departure: &dep1, Cabin: entity.CabinEconomy, CabinCode: "Y",
				SeatNumber: "32C", SequenceNumber: 45, TicketNumber: "016234567890",
			},
			{
				CommonHeader: header, Carrier: "UA", FlightNumber: "90", Origin: "JFK", Destination: "TLV",
				JulianDate: "290", Departure: &dep2, DepartureTimeKnown: true, Cabin: entity.CabinUnknown,
				CabinCode: "Q", SeatNumber: "2A", SequenceNumber: 12,
				FrequentFlyerAirline: "UA", FrequentFlyerNumber: "12345678",
			},
			{
				CommonHeader: header, Carrier: "LY", FlightNumber: "8", Origin: "TLV", Destination: "ETM",
				JulianDate: "400", Cabin: entity.CabinBusiness, CabinCode: "J", SeatNumber: "INF",
			},
		},
	}

	out, err := RenderItinerarySummary(it)
	require.NoError(t, err)

	want := `Passenger:    DOE/JANE
Confirmation: XYZ789
Source:       trip.txt
Legs:         3 of 3 (ok)

1. UA 954  SFO -> JFK  2026-10-16
   Cabin Economy, seat 32C, sequence 45
   Ticket 016234567890

2. UA 90  JFK -> TLV  2026-10-17 07:45
   Cabin Unknown Code (Q), seat 2A, sequence 12
   Frequent flyer UA 12345678

3. LY 8  TLV -> ETM  date unknown (day 400)
   Cabin Business, seat INF, sequence 0
`
	assert.Equal(t, want, out)
}

func TestRenderItinerarySummary_Nil(t *testing.T) {
	_, err := RenderItinerarySummary(nil)
	assert.Error(t, err)
}
