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

package services

import (
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/eventbus"
)

// WagonStateManager centralizes wagon status transitions so every
// coordinator mutates wagons the same way and the corresponding domain
// event is never forgotten.
type WagonStateManager struct {
	bus *eventbus.Bus
}

// NewWagonStateManager wires a state manager over bus.
func NewWagonStateManager(bus *eventbus.Bus) *WagonStateManager {
	return &WagonStateManager{bus: bus}
}

// MarkOnRetrofitTrack transitions w to ON_RETROFIT_TRACK at trackID, at
// simulated time t.
func (m *WagonStateManager) MarkOnRetrofitTrack(w *domain.Wagon, trackID string, t float64) error {
	if err := w.TransitionTo(domain.StatusOnRetrofitTrack); err != nil {
		return err
	}
	w.TrackID = trackID
	m.bus.Publish(domain.NewEvent(domain.KindWagonDelivered, t, "wagon-state-manager", domain.WagonDeliveredPayload{
		WagonID: w.ID,
		TrackID: trackID,
	}))
	return nil
}

// StartMovement transitions w to MOVING, clearing its track id for the
// duration of the move, and emits WagonLocationChanged.
func (m *WagonStateManager) StartMovement(w *domain.Wagon, from, to string, t float64) error {
	if err := w.TransitionTo(domain.StatusMoving); err != nil {
		return err
	}
	w.TrackID = ""
	m.bus.Publish(domain.NewEvent(domain.KindWagonLocationChanged, t, "wagon-state-manager", domain.WagonLocationChangedPayload{
		WagonID:   w.ID,
		FromTrack: from,
		ToTrack:   to,
	}))
	return nil
}

// CompleteArrival transitions w to newStatus at track to, at simulated time
// t, emitting WagonArrived.
func (m *WagonStateManager) CompleteArrival(w *domain.Wagon, to string, newStatus domain.WagonStatus, t float64) error {
	if err := w.TransitionTo(newStatus); err != nil {
		return err
	}
	w.TrackID = to
	m.bus.Publish(domain.NewEvent(domain.KindWagonArrived, t, "wagon-state-manager", domain.WagonArrivedPayload{
		WagonID: w.ID,
		TrackID: to,
	}))
	return nil
}

// ArriveAtRetrofittedTrack records w's track as the retrofitted staging
// track and emits WagonArrived, without a status transition: per the status
// DAG a wagon goes straight from RETROFITTED to MOVING (via StartMovement)
// and stays MOVING, structurally, until the parking coordinator places it,
// so arriving at the staging track between those two points is not itself a
// DAG node.
func (m *WagonStateManager) ArriveAtRetrofittedTrack(w *domain.Wagon, trackID string, t float64) {
	w.TrackID = trackID
	m.bus.Publish(domain.NewEvent(domain.KindWagonArrived, t, "wagon-state-manager", domain.WagonArrivedPayload{
		WagonID: w.ID,
		TrackID: trackID,
	}))
}

// StartRetrofit transitions w to RETROFITTING, recording RetrofitStart. No
// event accompanies this transition; WorkshopStationOccupied, published by
// the workshop-feed coordinator alongside the station claim, already carries
// the information an observer needs.
func (m *WagonStateManager) StartRetrofit(w *domain.Wagon, t float64) error {
	if err := w.TransitionTo(domain.StatusRetrofitting); err != nil {
		return err
	}
	w.RetrofitStart = t
	return nil
}

// CompleteRetrofit transitions w to RETROFITTED and emits WagonRetrofitted,
// closing the flow-time window the wagon-flow-time collector opened on the
// WagonDelivered event published by MarkOnRetrofitTrack.
func (m *WagonStateManager) CompleteRetrofit(w *domain.Wagon, workshopID string, t float64) error {
	if err := w.TransitionTo(domain.StatusRetrofitted); err != nil {
		return err
	}
	w.RetrofitEnd = t
	m.bus.Publish(domain.NewEvent(domain.KindWagonRetrofitted, t, "wagon-state-manager", domain.WagonRetrofittedPayload{
		WagonID:    w.ID,
		WorkshopID: workshopID,
	}))
	return nil
}

// Reject marks w REJECTED with reason and emits WagonRejected.
func (m *WagonStateManager) Reject(w *domain.Wagon, reason string, t float64) error {
	if err := w.Reject(reason); err != nil {
		return err
	}
	m.bus.Publish(domain.NewEvent(domain.KindWagonRejected, t, "wagon-state-manager", domain.WagonRejectedPayload{
		WagonID: w.ID,
		Reason:  reason,
	}))
	return nil
}
