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

// Package resources implements the shared resource primitives of §4.B: the
// locomotive pool, the track capacity manager, and the workshop station
// pool, plus the closed-enum strategy selection functions of §9.
package resources

import (
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/engine"
)

// LocomotivePool hands out exclusive use of a locomotive, FIFO among
// waiters. Built on an engine Store pre-seeded with every locomotive, which
// gives allocate/release the same blocking FIFO semantics as any other
// bounded queue without a separate identity side-table.
type LocomotivePool struct {
	store *engine.Store
}

// NewLocomotivePool seeds a pool with every locomotive in locos. Must be
// called before the engine starts running any process.
func NewLocomotivePool(eng *engine.Engine, locos []*domain.Locomotive) *LocomotivePool {
	store := eng.CreateStore(len(locos))
	items := make([]any, len(locos))
	for i, loco := range locos {
		items[i] = loco
	}
	store.Seed(items...)
	return &LocomotivePool{store: store}
}

// Allocate blocks until a locomotive is free and returns it. FIFO among
// waiters.
func (pool *LocomotivePool) Allocate(p *engine.Process) *domain.Locomotive {
	return pool.store.Get(p).(*domain.Locomotive)
}

// Release returns loco to the pool, waking the longest-waiting caller.
func (pool *LocomotivePool) Release(p *engine.Process, loco *domain.Locomotive) {
	pool.store.Put(p, loco)
}

// Available reports how many locomotives are currently idle in the pool.
func (pool *LocomotivePool) Available() int { return pool.store.Len() }
