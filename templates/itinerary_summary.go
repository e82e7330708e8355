package templates

import (
	"bytes"
	"fmt"
	"text/template"

	"boardingpass-service/internal/domain/entity"
)

const itinerarySummary = `Passenger:    {{ .Header.PassengerName }}
Confirmation: {{ .Header.Confirmation }}
Source:       {{ .Source }}
Legs:         {{ len .Legs }} of {{ .Header.DeclaredLegs }} ({{ .Status }})
{{ range $i, $leg := .Legs }}
{{ inc $i }}. {{ $leg.Carrier }} {{ $leg.FlightNumber }}  {{ $leg.Origin }} -> {{ $leg.Destination }}  {{ departure $leg }}
   Cabin {{ $leg.CabinLabel }}, seat {{ $leg.SeatNumber }}, sequence {{ $leg.SequenceNumber }}
{{- with $leg.TicketNumber }}
   Ticket {{ . }}
{{- end }}
{{- if $leg.FrequentFlyerNumber }}
   Frequent flyer {{ $leg.FrequentFlyerAirline }} {{ $leg.FrequentFlyerNumber }}
{{- end }}
{{ end -}}
`

var summaryTemplate = template.Must(template.New("itinerary").Funcs(template.FuncMap{
	"inc":       func(i int) int { return i + 1 },
	"departure": departureLabel,
}).Parse(itinerarySummary))

// RenderItinerarySummary renders a plain text summary of a decoded itinerary
func RenderItinerarySummary(it *entity.Itinerary) (string, error) {
	if it == nil {
		return "", fmt.Errorf("nil itinerary")
	}
	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, it); err != nil {
		return "", fmt.Errorf("failed to render itinerary summary: %w", err)
	}
	return buf.String(), nil
}

func departureLabel(leg entity.FlightLeg) string {
	switch {
	case leg.Departure == nil:
		return "date unknown (day " + leg.JulianDate + ")"
	case leg.DepartureTimeKnown:
		return leg.Departure.Format("2006-01-02 15:04")
	default:
		return leg.DepartureDate()
	}
}
