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

// LocomotiveStatus tracks what a locomotive is presently doing, driving the
// time-breakdown metric of §4.H.
type LocomotiveStatus string

const (
	LocoParking    LocomotiveStatus = "PARKING"
	LocoMoving     LocomotiveStatus = "MOVING"
	LocoCoupling   LocomotiveStatus = "COUPLING"
	LocoDecoupling LocomotiveStatus = "DECOUPLING"
)

// StatusPoint is one entry in a locomotive's append-only status history,
// sufficient to reconstruct utilization intervals.
type StatusPoint struct {
	Time   float64
	Status LocomotiveStatus
}

// Locomotive is exclusively owned by whichever caller holds it between
// allocate and release.
type Locomotive struct {
	ID           string
	HomeTrack    string
	CurrentTrack string
	MaxCapacity  int
	Status       LocomotiveStatus
	History      []StatusPoint
}

// NewLocomotive constructs a locomotive parked at its home track.
func NewLocomotive(id, homeTrack string, maxCapacity int) *Locomotive {
	return &Locomotive{
		ID:           id,
		HomeTrack:    homeTrack,
		CurrentTrack: homeTrack,
		MaxCapacity:  maxCapacity,
		Status:       LocoParking,
		History:      []StatusPoint{{Time: 0, Status: LocoParking}},
	}
}

// SetStatus records a new status point at t, appending to the history.
// A repeated identical status at the same instant is still recorded, since
// coupling/decoupling of zero wagons intentionally skips the call rather
// than relying on de-duplication here.
func (l *Locomotive) SetStatus(t float64, status LocomotiveStatus) {
	l.Status = status
	l.History = append(l.History, StatusPoint{Time: t, Status: status})
}
