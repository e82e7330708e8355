package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"boardingpass-service/internal/domain/entity"
	"boardingpass-service/internal/domain/repository"
)

const departureDateLayout = "2006-01-02"

// legRecord is a leg as stored in the file. departure_date is the calendar
// date the dashboard and older history files key on; it is written next to
// the full timestamp and fills Departure when only the date is present.
type legRecord struct {
	entity.FlightLeg
	DepartureDay string `json:"departure_date,omitempty"`
}

func toRecords(legs []entity.FlightLeg) []legRecord {
	records := make([]legRecord, len(legs))
	for i, leg := range legs {
		records[i] = legRecord{FlightLeg: leg, DepartureDay: leg.DepartureDate()}
	}
	return records
}

func fromRecords(records []legRecord) []entity.FlightLeg {
	legs := make([]entity.FlightLeg, len(records))
	for i, rec := range records {
		leg := rec.FlightLeg
		if leg.Departure == nil && rec.DepartureDay != "" {
			if day, err := time.Parse(departureDateLayout, rec.DepartureDay); err == nil {
				leg.Departure = &day
			}
		}
		legs[i] = leg
	}
	return legs
}

// JSONLegRepository implements FlightLegRepository over a flat JSON file
type JSONLegRepository struct {
	path   string
	locker repository.Locker
}

// NewJSONLegRepository creates a new JSON file leg repository
func NewJSONLegRepository(path string, locker repository.Locker) *JSONLegRepository {
	return &JSONLegRepository{path: path, locker: locker}
}

// Load reads every stored leg. A missing file is an empty history.
func (r *JSONLegRepository) Load(ctx context.Context) ([]entity.FlightLeg, error) {
	return r.read()
}

// Update holds the lock across read, fn and the atomic rewrite of the file
func (r *JSONLegRepository) Update(ctx context.Context, fn repository.UpdateFunc) ([]entity.FlightLeg, error) {
	release, err := r.locker.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire history lock: %w", err)
	}
	defer release()

	persisted, err := r.read()
	if err != nil {
		return nil, err
	}
	next, err := fn(persisted)
	if err != nil {
		return nil, err
	}
	if next == nil {
		next = []entity.FlightLeg{}
	}
	if err := r.write(next); err != nil {
		return nil, err
	}
	return next, nil
}

func (r *JSONLegRepository) read() ([]entity.FlightLeg, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []entity.FlightLeg{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", r.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []entity.FlightLeg{}, nil
	}

	var records []legRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return fromRecords(records), nil
}

// write replaces the file through a rename so readers never see a partial file
func (r *JSONLegRepository) write(legs []entity.FlightLeg) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	data, err := json.MarshalIndent(toRecords(legs), "", "    ")
	if err != nil {
		return fmt.Errorf("marshal legs: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace %s: %w", r.path, err)
	}
	return nil
}
