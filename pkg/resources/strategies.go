// Copyright 2026 OpenRailAssociation Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resources

import (
	"math/rand"

	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
)

// TrackSelectionStrategy is the closed enum §9 maps to a selection
// function: round-robin | least-occupied | first-available | random.
type TrackSelectionStrategy string

const (
	StrategyRoundRobin    TrackSelectionStrategy = "round-robin"
	StrategyLeastOccupied TrackSelectionStrategy = "least-occupied"
	StrategyFirstAvailable TrackSelectionStrategy = "first-available"
	StrategyRandom        TrackSelectionStrategy = "random"
)

// LocoDeliveryStrategy distinguishes a locomotive that returns to its home
// parking track after a delivery from one that proceeds directly to the
// next job. Supplemented from the original's shunting_context.py.
type LocoDeliveryStrategy string

const (
	DeliveryReturnToParking LocoDeliveryStrategy = "return-to-parking"
	DeliveryDirect          LocoDeliveryStrategy = "direct-delivery"
)

// LocoPriorityStrategy distinguishes simple workshop-priority round-robin
// from a scheduler that prioritizes whichever workshop is closest to
// completing its current batch.
type LocoPriorityStrategy string

const (
	PriorityWorkshop        LocoPriorityStrategy = "workshop-priority"
	PriorityBatchCompletion LocoPriorityStrategy = "batch-completion"
)

// trackSelector picks one of the candidate track ids given their current
// occupancy, or "" if none fit length.
type trackSelector func(tracks map[string]*domain.Track, candidates []string, length float64, state *selectionState) string

// selectionState carries the small amount of mutable state a strategy needs
// across calls (round-robin cursor, random source). Owned by the
// TrackCapacityManager, one per manager instance.
type selectionState struct {
	roundRobinCursor int
	rng              *rand.Rand
}

func newSelectionState(seed int64) *selectionState {
	return &selectionState{rng: rand.New(rand.NewSource(seed))}
}

func selectRoundRobin(tracks map[string]*domain.Track, candidates []string, length float64, state *selectionState) string {
	n := len(candidates)
	for i := 0; i < n; i++ {
		idx := (state.roundRobinCursor + i) % n
		id := candidates[idx]
		if tracks[id].CanAdd(length) {
			state.roundRobinCursor = (idx + 1) % n
			return id
		}
	}
	return ""
}

func selectLeastOccupied(tracks map[string]*domain.Track, candidates []string, length float64, state *selectionState) string {
	best := ""
	bestOccupied := 0.0
	for _, id := range candidates {
		t := tracks[id]
		if !t.CanAdd(length) {
			continue
		}
		if best == "" || t.Occupied < bestOccupied {
			best = id
			bestOccupied = t.Occupied
		}
	}
	return best
}

func selectFirstAvailable(tracks map[string]*domain.Track, candidates []string, length float64, state *selectionState) string {
	for _, id := range candidates {
		if tracks[id].CanAdd(length) {
			return id
		}
	}
	return ""
}

func selectRandom(tracks map[string]*domain.Track, candidates []string, length float64, state *selectionState) string {
	fitting := make([]string, 0, len(candidates))
	for _, id := range candidates {
		if tracks[id].CanAdd(length) {
			fitting = append(fitting, id)
		}
	}
	if len(fitting) == 0 {
		return ""
	}
	return fitting[state.rng.Intn(len(fitting))]
}

func selectorFor(strategy TrackSelectionStrategy) trackSelector {
	switch strategy {
	case StrategyLeastOccupied:
		return selectLeastOccupied
	case StrategyFirstAvailable:
		return selectFirstAvailable
	case StrategyRandom:
		return selectRandom
	default:
		return selectRoundRobin
	}
}
