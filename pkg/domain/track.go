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

import "fmt"

// TrackType classifies what a track is used for in the pipeline.
type TrackType string

const (
	TrackParking    TrackType = "PARKING"
	TrackCollection TrackType = "COLLECTION"
	TrackRetrofit   TrackType = "RETROFIT"
	TrackRetrofitted TrackType = "RETROFITTED"
	TrackWorkshop   TrackType = "WORKSHOP"
)

// Edge is one entry in a track's ordered edge list, used for route cost
// lookup.
type Edge struct {
	ToTrackID string
	Cost      float64
}

// Track holds capacity in meters. The invariant 0 <= Occupied <= Total holds
// at every observable moment; Add/Remove enforce it.
type Track struct {
	ID       string
	Type     TrackType
	Total    float64
	Occupied float64
	Edges    []Edge
}

// NewTrack constructs an empty track with the given total capacity.
func NewTrack(id string, kind TrackType, total float64) *Track {
	return &Track{ID: id, Type: kind, Total: total}
}

// Available returns the free capacity in meters.
func (t *Track) Available() float64 { return t.Total - t.Occupied }

// CanAdd is a pure check: would adding length meters keep the track within
// capacity? A length of exactly the available capacity is permitted.
func (t *Track) CanAdd(length float64) bool {
	return t.Occupied+length <= t.Total
}

// Add mutates occupied meters, failing rather than overflowing the track.
func (t *Track) Add(length float64) error {
	if !t.CanAdd(length) {
		return fmt.Errorf("track %s: adding %.2fm would exceed capacity %.2f/%.2f", t.ID, length, t.Occupied, t.Total)
	}
	t.Occupied += length
	return nil
}

// Remove mutates occupied meters, failing rather than underflowing the
// track.
func (t *Track) Remove(length float64) error {
	if t.Occupied-length < 0 {
		return fmt.Errorf("track %s: removing %.2fm would underflow occupied %.2f", t.ID, length, t.Occupied)
	}
	t.Occupied -= length
	return nil
}
