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

// Store is a bounded FIFO queue used to hand items across coordinators with
// backpressure. Put blocks when the store is full; Get blocks when it is
// empty. A non-positive capacity makes the store unbounded.
type Store struct {
	capacity   int
	items      []any
	getWaiters []*Process
	putWaiters []*Process
}

func (s *Store) full() bool {
	return s.capacity > 0 && len(s.items) >= s.capacity
}

// Put enqueues item, blocking the caller while the store is full.
func (s *Store) Put(p *Process, item any) {
	for s.full() {
		s.putWaiters = append(s.putWaiters, p)
		p.suspend()
	}
	s.items = append(s.items, item)
	if len(s.getWaiters) > 0 {
		g := s.getWaiters[0]
		s.getWaiters = s.getWaiters[1:]
		g.wake(nil)
	}
}

// Get dequeues the oldest item, blocking the caller while the store is
// empty.
func (s *Store) Get(p *Process) any {
	for len(s.items) == 0 {
		s.getWaiters = append(s.getWaiters, p)
		p.suspend()
	}
	item := s.items[0]
	s.items = s.items[1:]
	if len(s.putWaiters) > 0 && !s.full() {
		w := s.putWaiters[0]
		s.putWaiters = s.putWaiters[1:]
		w.wake(nil)
	}
	return item
}

// TryGetNoWait returns the oldest item without blocking. ok is false if the
// store was empty. Used by coordinators forming partial batches that must
// not wait for more input than is already queued.
func (s *Store) TryGetNoWait() (item any, ok bool) {
	if len(s.items) == 0 {
		return nil, false
	}
	item = s.items[0]
	s.items = s.items[1:]
	if len(s.putWaiters) > 0 && !s.full() {
		w := s.putWaiters[0]
		s.putWaiters = s.putWaiters[1:]
		w.wake(nil)
	}
	return item, true
}

// Items returns a snapshot of the store's current contents, oldest first.
// Batchers use this to size a batch without committing to consuming it.
func (s *Store) Items() []any {
	snapshot := make([]any, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

// Len returns the number of items currently queued.
func (s *Store) Len() int { return len(s.items) }

// Seed pre-loads items directly, bypassing capacity checks and waiter
// notification. Only valid before the engine starts running any process;
// used by resource pools to stock a store with their initial inventory
// (the locomotive pool's locomotives) at construction time.
func (s *Store) Seed(items ...any) {
	s.items = append(s.items, items...)
}

// popOne removes and returns the head item, waking a queued putter if
// capacity just freed up. Callers must already know the store is non-empty.
func (s *Store) popOne() any {
	item := s.items[0]
	s.items = s.items[1:]
	if len(s.putWaiters) > 0 && !s.full() {
		w := s.putWaiters[0]
		s.putWaiters = s.putWaiters[1:]
		w.wake(nil)
	}
	return item
}

// removeGetWaiter drops p from the get-waiter queue if present. Used to
// cancel a Store registration when a bounded wait times out instead of
// being satisfied by a Put.
func (s *Store) removeGetWaiter(p *Process) {
	for i, w := range s.getWaiters {
		if w == p {
			s.getWaiters = append(s.getWaiters[:i], s.getWaiters[i+1:]...)
			return
		}
	}
}
