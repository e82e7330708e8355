package bcbp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boardingpass-service/internal/domain/entity"
)

// route builds legs from "AAA-BBB" pairs; SequenceNumber records the input position.
func route(pairs ...string) []entity.FlightLeg {
	legs := make([]entity.FlightLeg, len(pairs))
	for i, p := range pairs {
		legs[i] = entity.FlightLeg{Origin: p[:3], Destination: p[4:], SequenceNumber: i}
	}
	return legs
}

func pairs(legs []entity.FlightLeg) []string {
	out := make([]string, len(legs))
	for i, l := range legs {
		out[i] = l.Origin + "-" + l.Destination
	}
	return out
}

func TestChain(t *testing.T) {
	tests := []struct {
		name   string
		in     []string
		want   []string
		status entity.ChainStatus
	}{
		{"single leg", []string{"SFO-TLV"}, []string{"SFO-TLV"}, entity.ChainOk},
		{"reversed connection", []string{"JFK-TLV", "SFO-JFK"}, []string{"SFO-JFK", "JFK-TLV"}, entity.ChainOk},
		{"shuffled three legs", []string{"LHR-DXB", "DXB-SYD", "JFK-LHR"}, []string{"JFK-LHR", "LHR-DXB", "DXB-SYD"}, entity.ChainOk},
		{"disconnected legs keep encoding order", []string{"SFO-JFK", "LAX-TLV"}, []string{"SFO-JFK", "LAX-TLV"}, entity.ChainIncomplete},
		{"round trip has no start", []string{"SFO-JFK", "JFK-SFO"}, []string{"SFO-JFK", "JFK-SFO"}, entity.ChainAmbiguous},
		{"round trip listed backwards", []string{"JFK-SFO", "SFO-JFK"}, []string{"JFK-SFO", "SFO-JFK"}, entity.ChainAmbiguous},
		{"ambiguous wins over incomplete", []string{"AAA-BBB", "BBB-AAA", "CCC-DDD", "DDD-CCC"}, []string{"AAA-BBB", "BBB-AAA", "CCC-DDD", "DDD-CCC"}, entity.ChainAmbiguous},
		{"break in the middle", []string{"SFO-JFK", "LHR-CDG", "JFK-LHR", "FRA-MUC"}, []string{"SFO-JFK", "JFK-LHR", "LHR-CDG", "FRA-MUC"}, entity.ChainIncomplete},
		{"duplicate edge", []string{"SFO-JFK", "JFK-TLV", "JFK-TLV"}, []string{"SFO-JFK", "JFK-TLV", "JFK-TLV"}, entity.ChainIncomplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, status := Chain(route(tt.in...))
			assert.Equal(t, tt.want, pairs(got))
			assert.Equal(t, tt.status, status)
			for _, leg := range got {
				assert.Equal(t, tt.status, leg.ChainStatus)
			}
		})
	}
}

func TestChain_Empty(t *testing.T) {
	got, status := Chain(nil)
	assert.Empty(t, got)
	assert.Equal(t, entity.ChainOk, status)
}

func TestChain_DoesNotMutateInput(t *testing.T) {
	in := route("JFK-TLV", "SFO-JFK")
	_, _ = Chain(in)
	assert.Equal(t, []string{"JFK-TLV", "SFO-JFK"}, pairs(in))
	assert.Empty(t, in[0].ChainStatus)
}

func TestChain_Total(t *testing.T) {
	airports := []string{"SFO", "JFK", "TLV", "LHR", "CDG"}
	rng := rand.New(rand.NewSource(42))

	for n := 1; n <= 8; n++ {
		for trial := 0; trial < 50; trial++ {
			in := make([]string, n)
			for i := range in {
				o := airports[rng.Intn(len(airports))]
				d := o
				for d == o {
					d = airports[rng.Intn(len(airports))]
				}
				in[i] = o + "-" + d
			}

			got, _ := Chain(route(in...))
			require.Len(t, got, n)

			seen := make([]int, 0, n)
			for _, leg := range got {
				seen = append(seen, leg.SequenceNumber)
			}
			want := make([]int, n)
			for i := range want {
				want[i] = i
			}
			assert.ElementsMatch(t, want, seen, "input %v", in)
		}
	}
}
