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

// Package domain holds the yard's value types: wagons, trains, locomotives,
// tracks, workshops, routes and process times, plus the wagon status DAG
// and the domain event kinds coordinators emit as they mutate this model.
package domain

import "fmt"

// CouplerType is the mechanical interface between wagons.
type CouplerType string

const (
	CouplerScrew CouplerType = "SCREW"
	CouplerDAC   CouplerType = "DAC"
	CouplerHybrid CouplerType = "HYBRID"
)

// WagonStatus is a node in the status DAG of §4.C.
type WagonStatus string

const (
	StatusArrived         WagonStatus = "ARRIVED"
	StatusOnRetrofitTrack WagonStatus = "ON_RETROFIT_TRACK"
	StatusMoving          WagonStatus = "MOVING"
	StatusAtWorkshop      WagonStatus = "AT_WORKSHOP"
	StatusRetrofitting    WagonStatus = "RETROFITTING"
	StatusRetrofitted     WagonStatus = "RETROFITTED"
	StatusParking         WagonStatus = "PARKING"
	StatusRejected        WagonStatus = "REJECTED"
)

// statusDAG lists, for each status, the statuses a wagon may next transition
// into. MOVING fans out to AT_WORKSHOP and PARKING because it is used both
// for the inbound leg (collection -> retrofit track -> workshop) and the
// outbound leg (workshop -> retrofitted -> parking); the wagon's own history
// disambiguates which leg is in progress.
var statusDAG = map[WagonStatus][]WagonStatus{
	StatusArrived:         {StatusOnRetrofitTrack, StatusRejected},
	StatusOnRetrofitTrack: {StatusMoving},
	StatusMoving:          {StatusAtWorkshop, StatusParking},
	StatusAtWorkshop:      {StatusRetrofitting},
	StatusRetrofitting:    {StatusRetrofitted},
	StatusRetrofitted:     {StatusMoving},
	StatusParking:         {},
	StatusRejected:        {},
}

// CanTransition reports whether the status DAG permits from -> to.
func CanTransition(from, to WagonStatus) bool {
	for _, candidate := range statusDAG[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Wagon is a single unit moving through the yard. Mutated only by
// coordinators and the services they call through; identity is stable for
// the lifetime of a run.
type Wagon struct {
	ID             string
	Length         float64
	NeedsRetrofit  bool
	Loaded         bool
	Coupler        CouplerType
	TrackID        string // empty while in transit between tracks
	Status         WagonStatus
	ArrivalTime    float64
	RetrofitStart  float64
	RetrofitEnd    float64
	RejectReason   string
}

// NewWagon constructs a wagon freshly arrived at the yard, status ARRIVED.
func NewWagon(id string, length float64, needsRetrofit, loaded bool, coupler CouplerType, arrivalTime float64) *Wagon {
	return &Wagon{
		ID:            id,
		Length:        length,
		NeedsRetrofit: needsRetrofit,
		Loaded:        loaded,
		Coupler:       coupler,
		Status:        StatusArrived,
		ArrivalTime:   arrivalTime,
	}
}

// TransitionTo moves the wagon to status next, enforcing the status DAG.
// Returns an error, without mutating the wagon, if the transition is not
// permitted from the wagon's current status.
func (w *Wagon) TransitionTo(next WagonStatus) error {
	if !CanTransition(w.Status, next) {
		return fmt.Errorf("wagon %s: invalid status transition %s -> %s", w.ID, w.Status, next)
	}
	w.Status = next
	return nil
}

// Reject marks the wagon REJECTED with reason, bypassing the rest of the
// pipeline. Valid only from ARRIVED, per the status DAG.
func (w *Wagon) Reject(reason string) error {
	if err := w.TransitionTo(StatusRejected); err != nil {
		return err
	}
	w.RejectReason = reason
	return nil
}
