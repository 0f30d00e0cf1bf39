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

package domain

// Station is one retrofit bay within a workshop: one concurrent retrofit
// per station.
type Station struct {
	Occupied       bool
	WagonID        string // empty when the station is idle
	CompletedCount int
}

// Workshop groups a fixed number of stations onto one workshop track. The
// invariant that concurrent retrofits never exceed StationCount is enforced
// by the counted resource the resource pool builds for it, not by this
// struct directly; Stations here exists for reporting.
type Workshop struct {
	ID           string
	TrackID      string
	StationCount int
	Stations     []Station
}

// NewWorkshop constructs a workshop with stationCount idle stations.
func NewWorkshop(id, trackID string, stationCount int) *Workshop {
	return &Workshop{
		ID:           id,
		TrackID:      trackID,
		StationCount: stationCount,
		Stations:     make([]Station, stationCount),
	}
}

// AvailableStations counts idle stations.
func (w *Workshop) AvailableStations() int {
	n := 0
	for _, s := range w.Stations {
		if !s.Occupied {
			n++
		}
	}
	return n
}

// Occupy claims the first idle station for wagonID, returning its index.
func (w *Workshop) Occupy(wagonID string) int {
	for i := range w.Stations {
		if !w.Stations[i].Occupied {
			w.Stations[i].Occupied = true
			w.Stations[i].WagonID = wagonID
			return i
		}
	}
	return -1
}

// Release frees station index, incrementing its completed counter.
func (w *Workshop) Release(index int) {
	if index < 0 || index >= len(w.Stations) {
		return
	}
	w.Stations[index].Occupied = false
	w.Stations[index].WagonID = ""
	w.Stations[index].CompletedCount++
}
