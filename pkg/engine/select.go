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

// timeoutMarker is the value delivered to a process whose bounded wait
// expired before the store it was watching produced an item. It is never
// exposed outside this package; callers only ever see the timedOut bool
// SelectStore returns.
type timeoutMarker struct{}

// SelectStore waits for either s to produce an item or timeout simulated
// minutes to elapse, whichever comes first. It implements the either/or
// composition coordinators use to form a bounded partial batch: register as
// a getter on s and as a delayed wakeup at once, then discard whichever
// registration loses the race.
//
// timeout must be >= 0. A timeout of 0 still gives s a chance to satisfy the
// wait immediately if it already holds an item.
func (p *Process) SelectStore(timeout float64, s *Store) (item any, timedOut bool) {
	if len(s.items) > 0 {
		return s.popOne(), false
	}

	s.getWaiters = append(s.getWaiters, p)
	p.eng.scheduleWake(p, p.eng.now+timeout, timeoutMarker{})

	v := p.suspend()
	if _, isTimeout := v.(timeoutMarker); isTimeout {
		s.removeGetWaiter(p)
		return nil, true
	}

	// The store woke p directly; suspend's epoch bump already invalidated
	// the still-pending timeout wakeup registered above, so it will be
	// dropped as stale when the heap eventually surfaces it.
	return s.popOne(), false
}
