// internal/domain/entity/flight_leg.go
package entity

import (
	"fmt"
	"time"
)

// Cabin is the service class decoded from the compartment code of a leg.
type Cabin string

const (
	CabinFirst          Cabin = "First"
	CabinBusiness       Cabin = "Business"
	CabinPremiumEconomy Cabin = "Premium Economy"
	CabinEconomy        Cabin = "Economy"
	CabinUnknown        Cabin = "Unknown"
)

// ChainStatus reports how confidently the legs of an itinerary were ordered.
type ChainStatus string

const (
	ChainOk         ChainStatus = "ok"
	ChainAmbiguous  ChainStatus = "ambiguous"
	ChainIncomplete ChainStatus = "incomplete"
)

// CommonHeader is the part of a boarding pass payload shared by every leg.
type CommonHeader struct {
	FormatCode       string `json:"format_code" bson:"formatCode"`
	DeclaredLegs     int    `json:"declared_legs" bson:"declaredLegs"`
	PassengerName    string `json:"passenger_name" bson:"passengerName"`
	ETicketIndicator string `json:"eticket_indicator" bson:"eticketIndicator"`
	Confirmation     string `json:"confirmation_number" bson:"confirmationNumber"`
}

// FlightLeg is one flight segment decoded from a boarding pass.
//
// Fields are grouped by owner: the header and barcode fields are always
// rewritten by a fresh decode, the user-owned fields survive re-scans.
type FlightLeg struct {
	CommonHeader `bson:",inline"`

	Origin      string `json:"origin" bson:"origin"`
	Destination string `json:"destination" bson:"destination"`
	Carrier     string `json:"carrier" bson:"carrier"`
	// FlightNumber has leading zeros stripped.
	FlightNumber string `json:"flight_number" bson:"flightNumber"`
	// JulianDate is the three digit day-of-year code exactly as encoded.
	JulianDate         string     `json:"julian_date" bson:"julianDate"`
	Departure          *time.Time `json:"departure,omitempty" bson:"departure,omitempty"`
	DepartureTimeKnown bool       `json:"departure_time_known" bson:"departureTimeKnown"`
	Cabin              Cabin      `json:"cabin" bson:"cabin"`
	CabinCode          string     `json:"cabin_code" bson:"cabinCode"`
	SeatNumber         string     `json:"seat_number" bson:"seatNumber"`
	SequenceNumber     int        `json:"sequence_number" bson:"sequenceNumber"`

	// Conditional data, leg 0 only.
	TicketNumber         string `json:"ticket_number,omitempty" bson:"ticketNumber,omitempty"`
	FrequentFlyerAirline string `json:"frequent_flyer_airline,omitempty" bson:"frequentFlyerAirline,omitempty"`
	FrequentFlyerNumber  string `json:"frequent_flyer_number,omitempty" bson:"frequentFlyerNumber,omitempty"`

	// Reference data enrichment.
	CarrierName    string `json:"carrier_name,omitempty" bson:"carrierName,omitempty"`
	OriginTimezone string `json:"origin_timezone,omitempty" bson:"originTimezone,omitempty"`

	ChainStatus ChainStatus `json:"chain_status" bson:"chainStatus"`
	SourceFile  string      `json:"source_file" bson:"sourceFile"`

	// User-owned.
	IsSkiplagged             bool       `json:"is_skiplagged" bson:"isSkiplagged"`
	ExternalRef              string     `json:"external_ref,omitempty" bson:"externalRef,omitempty"`
	ManualScheduledDeparture *time.Time `json:"manual_scheduled_departure,omitempty" bson:"manualScheduledDeparture,omitempty"`
	ActualDeparture          *time.Time `json:"actual_departure,omitempty" bson:"actualDeparture,omitempty"`
	ActualArrival            *time.Time `json:"actual_arrival,omitempty" bson:"actualArrival,omitempty"`
}

// IdentityKey correlates a decoded leg with its stored copy across re-scans.
// It leaves out the resolved date and the carrier.
type IdentityKey struct {
	Confirmation string
	FlightNumber string
	DayOfYear    string
}

// Key returns the identity key of the leg.
func (l FlightLeg) Key() IdentityKey {
	return IdentityKey{
		Confirmation: l.Confirmation,
		FlightNumber: l.FlightNumber,
		DayOfYear:    l.JulianDate,
	}
}

// ID is the identity key in the string form used by the dashboard.
func (l FlightLeg) ID() string {
	return fmt.Sprintf("%s-%s-%s", l.Confirmation, l.FlightNumber, l.JulianDate)
}

// CabinLabel renders the cabin, including the raw code when it was not recognised.
func (l FlightLeg) CabinLabel() string {
	if l.Cabin == CabinUnknown || l.Cabin == "" {
		return fmt.Sprintf("Unknown Code (%s)", l.CabinCode)
	}
	return string(l.Cabin)
}

// DepartureDate returns the resolved date as YYYY-MM-DD, or "" when unresolved.
func (l FlightLeg) DepartureDate() string {
	if l.Departure == nil {
		return ""
	}
	return l.Departure.Format("2006-01-02")
}

// Itinerary is the ordered set of legs decoded from one payload.
type Itinerary struct {
	Header CommonHeader `json:"header"`
	Source string       `json:"source"`
	Legs   []FlightLeg  `json:"legs"`
	Status ChainStatus  `json:"chain_status"`
}
