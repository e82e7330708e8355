package usecase

import (
	"time"

	"boardingpass-service/internal/domain/entity"
)

// MergeHistory reconciles freshly decoded legs with the persisted collection.
//
// Persisted legs from sources outside reprocessed are kept unchanged and in
// order. Persisted legs from reprocessed sources are dropped, as are those of
// any source present in fresh. Each fresh leg inherits the user-owned fields
// of the persisted leg with the same identity key; decoder-owned fields always
// come from fresh. The result is preserved legs followed by fresh legs.
//
// Neither input is modified.
func MergeHistory(fresh, persisted []entity.FlightLeg, reprocessed []string) []entity.FlightLeg {
	replaced := make(map[string]struct{}, len(reprocessed)+len(fresh))
	for _, src := range reprocessed {
		replaced[src] = struct{}{}
	}
	for _, leg := range fresh {
		replaced[leg.SourceFile] = struct{}{}
	}

	merged := make([]entity.FlightLeg, 0, len(persisted)+len(fresh))
	for _, leg := range persisted {
		if _, ok := replaced[leg.SourceFile]; !ok {
			merged = append(merged, leg)
		}
	}

	history := indexByKey(persisted)
	for _, leg := range fresh {
		if prev, ok := history.find(leg); ok {
			leg = carryUserFields(leg, prev)
		}
		merged = append(merged, leg)
	}
	return merged
}

type keyIndex map[entity.IdentityKey][]entity.FlightLeg

func indexByKey(legs []entity.FlightLeg) keyIndex {
	idx := make(keyIndex, len(legs))
	for _, leg := range legs {
		k := leg.Key()
		idx[k] = append(idx[k], leg)
	}
	return idx
}

// find prefers a persisted copy from the same source, then the first one stored.
func (idx keyIndex) find(leg entity.FlightLeg) (entity.FlightLeg, bool) {
	candidates := idx[leg.Key()]
	if len(candidates) == 0 {
		return entity.FlightLeg{}, false
	}
	for _, c := range candidates {
		if c.SourceFile == leg.SourceFile {
			return c, true
		}
	}
	return candidates[0], true
}

// carryUserFields copies each user-owned field from prev when prev has a value for it.
func carryUserFields(leg, prev entity.FlightLeg) entity.FlightLeg {
	if prev.IsSkiplagged {
		leg.IsSkiplagged = true
	}
	if prev.ExternalRef != "" {
		leg.ExternalRef = prev.ExternalRef
	}
	if prev.ManualScheduledDeparture != nil {
		leg.ManualScheduledDeparture = copyTime(prev.ManualScheduledDeparture)
	}
	if prev.ActualDeparture != nil {
		leg.ActualDeparture = copyTime(prev.ActualDeparture)
	}
	if prev.ActualArrival != nil {
		leg.ActualArrival = copyTime(prev.ActualArrival)
	}
	return leg
}

func copyTime(t *time.Time) *time.Time {
	c := *t
	return &c
}
