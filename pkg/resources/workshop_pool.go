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
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/engine"
)

// WorkshopStationPool wraps a counted resource per workshop (one permit per
// station) with the per-station occupancy bookkeeping on the domain
// Workshop value. Concurrent retrofits in a workshop never exceed its
// station count because Acquire blocks once every permit is taken.
type WorkshopStationPool struct {
	workshop *domain.Workshop
	permits  *engine.Resource
}

// NewWorkshopStationPool builds a pool over workshop with one permit per
// station.
func NewWorkshopStationPool(eng *engine.Engine, workshop *domain.Workshop) *WorkshopStationPool {
	return &WorkshopStationPool{
		workshop: workshop,
		permits:  eng.CreateResource(workshop.StationCount),
	}
}

// AcquireStation blocks until a station is free, then claims it for
// wagonID. Returns the claimed station's index, for Release.
func (pool *WorkshopStationPool) AcquireStation(p *engine.Process, wagonID string) int {
	pool.permits.Acquire(p)
	return pool.workshop.Occupy(wagonID)
}

// ReleaseStation frees the station at index and returns its permit.
func (pool *WorkshopStationPool) ReleaseStation(index int) {
	pool.workshop.Release(index)
	pool.permits.Release()
}

// Workshop returns the underlying domain workshop, for reporting.
func (pool *WorkshopStationPool) Workshop() *domain.Workshop { return pool.workshop }
