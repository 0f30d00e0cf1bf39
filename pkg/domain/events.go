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

import "github.com/google/uuid"

// EventKind is a closed enum identifying a domain event's payload shape.
type EventKind string

const (
	KindTrainArrived            EventKind = "TrainArrived"
	KindWagonDelivered          EventKind = "WagonDelivered"
	KindWagonArrived            EventKind = "WagonArrived"
	KindWagonLocationChanged    EventKind = "WagonLocationChanged"
	KindWagonRetrofitted        EventKind = "WagonRetrofitted"
	KindWagonRejected           EventKind = "WagonRejected"
	KindLocomotiveStatusChanged EventKind = "LocomotiveStatusChanged"
	KindWorkshopStationOccupied EventKind = "WorkshopStationOccupied"
	KindWorkshopStationIdle     EventKind = "WorkshopStationIdle"
	KindResourceAllocated       EventKind = "ResourceAllocated"
	KindResourceReleased        EventKind = "ResourceReleased"
	KindTrackOccupancyChanged   EventKind = "TrackOccupancyChanged"
	KindSimulationStarted       EventKind = "SimulationStarted"
	KindSimulationEnded         EventKind = "SimulationEnded"
	KindSimulationFailed        EventKind = "SimulationFailed"
)

// Event is the envelope every domain event carries: an id, the simulated
// clock reading at emission, a context tag (typically the coordinator
// name), and a kind-specific payload. Events are immutable once built; an
// implementation's total order is its emission order, which coincides with
// non-decreasing timestamps per §3.
type Event struct {
	ID      string
	Kind    EventKind
	Time    float64
	Context string
	Payload any
}

// NewEvent builds an event with a generated id.
func NewEvent(kind EventKind, t float64, context string, payload any) Event {
	return Event{ID: uuid.NewString(), Kind: kind, Time: t, Context: context, Payload: payload}
}

// TrainArrivedPayload accompanies KindTrainArrived.
type TrainArrivedPayload struct {
	TrainID string
}

// WagonDeliveredPayload accompanies KindWagonDelivered, marking the start
// of the flow-time window the wagon-flow-time collector measures.
type WagonDeliveredPayload struct {
	WagonID string
	TrackID string
}

// WagonArrivedPayload accompanies KindWagonArrived.
type WagonArrivedPayload struct {
	WagonID string
	TrackID string
}

// WagonLocationChangedPayload accompanies KindWagonLocationChanged.
type WagonLocationChangedPayload struct {
	WagonID  string
	FromTrack string
	ToTrack   string
}

// WagonRetrofittedPayload accompanies KindWagonRetrofitted, closing the
// flow-time window opened by WagonDelivered.
type WagonRetrofittedPayload struct {
	WagonID   string
	WorkshopID string
}

// WagonRejectedPayload accompanies KindWagonRejected.
type WagonRejectedPayload struct {
	WagonID string
	Reason  string
}

// LocomotiveStatusChangedPayload accompanies KindLocomotiveStatusChanged.
type LocomotiveStatusChangedPayload struct {
	LocomotiveID string
	Status       LocomotiveStatus
}

// WorkshopStationPayload accompanies KindWorkshopStationOccupied and
// KindWorkshopStationIdle.
type WorkshopStationPayload struct {
	WorkshopID string
	Station    int
	WagonID    string
}

// ResourceEventPayload accompanies KindResourceAllocated and
// KindResourceReleased.
type ResourceEventPayload struct {
	ResourceID string
	Purpose    string
}

// TrackOccupancyPayload accompanies KindTrackOccupancyChanged, published
// whenever a track's occupied meters changes, driving the track-occupancy
// time series of §4.H.
type TrackOccupancyPayload struct {
	TrackID  string
	Occupied float64
	Total    float64
}

// SimulationStartedPayload accompanies KindSimulationStarted, emitted by the
// orchestrator before scheduling any coordinator.
type SimulationStartedPayload struct {
	ScenarioID string
}

// SimulationEndedPayload accompanies KindSimulationEnded, emitted by the
// orchestrator once the engine stops advancing the clock. Collectors that
// reconstruct open-ended intervals (locomotive/workshop time breakdowns)
// treat this event's Time as the closing edge of any interval still open
// when the run finished.
type SimulationEndedPayload struct {
	Success  bool
	Duration float64
}

// SimulationFailedPayload carries the failing coordinator's name and the
// clock at failure, per the SUPPLEMENTED FEATURES enrichment of §7.
type SimulationFailedPayload struct {
	Coordinator string
	Message     string
}
