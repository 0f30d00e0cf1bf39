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

// Package coordinators implements the five cooperating processes of §4.F:
// train arrival, pickup-to-retrofit, workshop-feed, retrofitted pickup, and
// parking. Each is an engine.ProcessFunc built from a shared Context — the
// port the design notes of §9 describe instead of coordinators holding
// direct references to one another.
package coordinators

import (
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/engine"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/eventbus"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/resources"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/services"
)

// WorkshopQueues bundles the two queues a workshop-feed and a retrofitted
// pickup coordinator hand wagons through.
type WorkshopQueues struct {
	Ready     *engine.Store // wagons waiting to enter this workshop
	Completed *engine.Store // wagons that finished retrofit, awaiting pickup
}

// Context is the set of collaborators every coordinator needs, built once
// by the orchestrator and shared by reference — never mutated structurally
// after construction.
type Context struct {
	Engine *engine.Engine
	Bus    *eventbus.Bus

	Locomotives *services.LocomotiveService
	Tracks      *resources.TrackCapacityManager
	WagonState  *services.WagonStateManager
	Selector    *services.WagonSelector
	Distributor *services.WorkshopDistributor

	Workshops map[string]*resources.WorkshopStationPool
	Queues    map[string]*WorkshopQueues

	CollectionTrackID string
	RetrofittedTrackID string

	Times            domain.ProcessTimes
	DeliveryStrategy resources.LocoDeliveryStrategy

	Inbound          *engine.Store // collection-track wagons awaiting pickup-to-retrofit
	RetrofitReady    *engine.Store // retrofit-track wagons awaiting workshop assignment
	RetrofittedReady *engine.Store // wagons awaiting the parking coordinator

	Faults *FaultLog
}

// FaultLog records local domain faults a coordinator rolled back from,
// without aborting its loop. The orchestrator reads this after Run to
// decide whether to mention degraded batches in the result, per §7's
// "captured in the metrics result without aborting the whole run".
type FaultLog struct {
	entries []FaultEntry
}

// FaultEntry is one recorded local fault.
type FaultEntry struct {
	Coordinator string
	SimTime     float64
	Err         error
}

// Record appends a fault entry.
func (f *FaultLog) Record(coordinator string, simTime float64, err error) {
	f.entries = append(f.entries, FaultEntry{Coordinator: coordinator, SimTime: simTime, Err: err})
}

// Entries returns every recorded fault, in occurrence order.
func (f *FaultLog) Entries() []FaultEntry { return f.entries }

// WithLocomotive allocates a locomotive for purpose, runs fn, and releases
// it on every exit path, honoring the configured delivery strategy: under
// return-to-parking the locomotive moves back to its home track before the
// permit is returned; under direct-delivery it is released wherever the
// last move left it, ready for the next job without the extra transit.
func (ctx *Context) WithLocomotive(p *engine.Process, purpose string, fn func(loco *domain.Locomotive) error) error {
	loco := ctx.Locomotives.Allocate(p, purpose)
	defer func() {
		if ctx.DeliveryStrategy == resources.DeliveryReturnToParking && loco.CurrentTrack != loco.HomeTrack {
			ctx.Locomotives.Move(p, loco, loco.CurrentTrack, loco.HomeTrack)
		}
		ctx.Locomotives.Release(p, loco)
	}()
	return fn(loco)
}
