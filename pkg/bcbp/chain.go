package bcbp

import (
	"boardingpass-service/internal/domain/entity"
)

// Chain orders legs into travel order by following destination to origin.
//
// The first leg is the one whose origin is nobody's destination. When every
// origin is also a destination the first leg in encoding order is used and
// the result is ChainAmbiguous. When the path breaks the remaining legs are
// appended in encoding order and the result is ChainIncomplete, unless it is
// already ambiguous. The returned slice always holds exactly the input legs,
// each stamped with the status.
func Chain(legs []entity.FlightLeg) ([]entity.FlightLeg, entity.ChainStatus) {
	if len(legs) == 0 {
		return nil, entity.ChainOk
	}

	status := entity.ChainOk
	destinations := make(map[string]struct{}, len(legs))
	for _, leg := range legs {
		destinations[leg.Destination] = struct{}{}
	}

	start := -1
	for i, leg := range legs {
		if _, ok := destinations[leg.Origin]; !ok {
			start = i
			break
		}
	}
	if start < 0 {
		start = 0
		status = entity.ChainAmbiguous
	}

	used := make([]bool, len(legs))
	ordered := make([]entity.FlightLeg, 0, len(legs))
	used[start] = true
	ordered = append(ordered, legs[start])

	for len(ordered) < len(legs) {
		next := -1
		current := ordered[len(ordered)-1].Destination
		for i, leg := range legs {
			if !used[i] && leg.Origin == current {
				next = i
				break
			}
		}
		if next < 0 {
			for i, leg := range legs {
				if !used[i] {
					used[i] = true
					ordered = append(ordered, leg)
				}
			}
			if status == entity.ChainOk {
				status = entity.ChainIncomplete
			}
			break
		}
		used[next] = true
		ordered = append(ordered, legs[next])
	}

	for i := range ordered {
		ordered[i].ChainStatus = status
	}
	return ordered, status
}
