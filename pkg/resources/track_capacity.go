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
	"fmt"

	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/eventbus"
)

// TrackCapacityManager tracks occupied meters per track and selects which
// retrofit track to use next per the configured strategy. All operations
// are synchronous and instantaneous in simulated time.
type TrackCapacityManager struct {
	tracks          map[string]*domain.Track
	retrofitTrackIDs []string
	parkingTrackIDs []string
	strategy        TrackSelectionStrategy
	parkingStrategy TrackSelectionStrategy
	state           *selectionState
	parkingState    *selectionState
	bus             *eventbus.Bus
}

// NewTrackCapacityManager indexes tracks by id and records which ones are
// eligible retrofit and parking targets for select_retrofit_track/
// select_parking_track. Every Add/Remove publishes TrackOccupancyChanged to
// bus, which may be nil in tests that don't exercise the metrics pipeline.
func NewTrackCapacityManager(tracks []*domain.Track, retrofitStrategy, parkingStrategy TrackSelectionStrategy, seed int64, bus *eventbus.Bus) *TrackCapacityManager {
	byID := make(map[string]*domain.Track, len(tracks))
	var retrofitIDs, parkingIDs []string
	for _, t := range tracks {
		byID[t.ID] = t
		switch t.Type {
		case domain.TrackRetrofit:
			retrofitIDs = append(retrofitIDs, t.ID)
		case domain.TrackParking:
			parkingIDs = append(parkingIDs, t.ID)
		}
	}
	return &TrackCapacityManager{
		tracks:           byID,
		retrofitTrackIDs: retrofitIDs,
		parkingTrackIDs:  parkingIDs,
		strategy:         retrofitStrategy,
		parkingStrategy:  parkingStrategy,
		state:            newSelectionState(seed),
		parkingState:     newSelectionState(seed + 1),
		bus:              bus,
	}
}

// Track returns the track with id, or nil if unknown.
func (m *TrackCapacityManager) Track(id string) *domain.Track { return m.tracks[id] }

// CanAdd is a pure check against track id's current occupancy.
func (m *TrackCapacityManager) CanAdd(id string, length float64) bool {
	t := m.tracks[id]
	if t == nil {
		return false
	}
	return t.CanAdd(length)
}

// Add mutates track id's occupied meters, failing on overflow, and
// publishes TrackOccupancyChanged at simulated time simTime.
func (m *TrackCapacityManager) Add(id string, length, simTime float64) error {
	t := m.tracks[id]
	if t == nil {
		return fmt.Errorf("track capacity manager: unknown track %q", id)
	}
	if err := t.Add(length); err != nil {
		return err
	}
	m.publishOccupancy(t, simTime)
	return nil
}

// Remove mutates track id's occupied meters, failing on underflow, and
// publishes TrackOccupancyChanged at simulated time simTime.
func (m *TrackCapacityManager) Remove(id string, length, simTime float64) error {
	t := m.tracks[id]
	if t == nil {
		return fmt.Errorf("track capacity manager: unknown track %q", id)
	}
	if err := t.Remove(length); err != nil {
		return err
	}
	m.publishOccupancy(t, simTime)
	return nil
}

func (m *TrackCapacityManager) publishOccupancy(t *domain.Track, simTime float64) {
	if m.bus == nil {
		return
	}
	m.bus.Publish(domain.NewEvent(domain.KindTrackOccupancyChanged, simTime, "track-capacity-manager", domain.TrackOccupancyPayload{
		TrackID:  t.ID,
		Occupied: t.Occupied,
		Total:    t.Total,
	}))
}

// Available returns track id's free capacity in meters.
func (m *TrackCapacityManager) Available(id string) float64 {
	t := m.tracks[id]
	if t == nil {
		return 0
	}
	return t.Available()
}

// SelectRetrofitTrack picks a retrofit track that can fit length, per the
// configured strategy. Returns "" if none currently fit.
func (m *TrackCapacityManager) SelectRetrofitTrack(length float64) string {
	return selectorFor(m.strategy)(m.tracks, m.retrofitTrackIDs, length, m.state)
}

// SelectParkingTrack picks a parking track that can fit length, per the
// configured parking strategy. Returns "" if none currently fit.
func (m *TrackCapacityManager) SelectParkingTrack(length float64) string {
	return selectorFor(m.parkingStrategy)(m.tracks, m.parkingTrackIDs, length, m.parkingState)
}
