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

package engine

// Resource is a counted semaphore: up to capacity concurrent holders,
// Acquire blocking waiters in FIFO order until Release frees a slot.
type Resource struct {
	capacity  int
	available int
	waiters   []*Process
}

// Capacity returns the resource's total capacity.
func (r *Resource) Capacity() int { return r.capacity }

// Available returns the number of free slots right now.
func (r *Resource) Available() int { return r.available }

// Acquire blocks until a slot is free, then takes it.
func (r *Resource) Acquire(p *Process) {
	if r.available > 0 {
		r.available--
		return
	}
	r.waiters = append(r.waiters, p)
	p.suspend()
}

// Release frees a slot. If a waiter is queued, the slot is handed to it
// directly rather than returned to the general pool, preserving FIFO order
// among waiters.
func (r *Resource) Release() {
	if len(r.waiters) > 0 {
		w := r.waiters[0]
		r.waiters = r.waiters[1:]
		w.wake(nil)
		return
	}
	r.available++
}
