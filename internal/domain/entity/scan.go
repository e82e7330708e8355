// internal/domain/entity/scan.go
package entity

import (
	"time"
)

// RawPayload is the text recovered from one boarding pass barcode.
type RawPayload struct {
	// Source identifies the image or file the text came from.
	Source string `json:"source"`
	Text   string `json:"payload"`
}

// ScanFailure records a payload that could not be decoded.
type ScanFailure struct {
	Source string `json:"source"`
	Kind   string `json:"kind"`
	Error  string `json:"error"`
}

// ItineraryResult summarises one successfully decoded payload.
type ItineraryResult struct {
	Source       string      `json:"source"`
	Confirmation string      `json:"confirmation_number"`
	LegCount     int         `json:"leg_count"`
	DeclaredLegs int         `json:"declared_legs"`
	Status       ChainStatus `json:"chain_status"`
}

// ScanReport is the outcome of one processing run.
type ScanReport struct {
	RunID       string            `json:"run_id"`
	StartedAt   time.Time         `json:"started_at"`
	Itineraries []ItineraryResult `json:"itineraries"`
	Failures    []ScanFailure     `json:"failures"`
	// Legs is the full reconciled collection after the merge.
	Legs []FlightLeg `json:"legs"`
}

// ReconciledEvent is published after a merge has been persisted.
type ReconciledEvent struct {
	RunID       string            `json:"run_id"`
	Sources     []string          `json:"sources"`
	Itineraries []ItineraryResult `json:"itineraries"`
	Failures    int               `json:"failures"`
	TotalLegs   int               `json:"total_legs"`
	Timestamp   time.Time         `json:"timestamp"`
}
