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

// Package engine implements the discrete-event virtual-time core: a single
// clock advancing by events, cooperative processes that suspend at well
// defined points (delay, blocking store/resource/event operations), and
// deterministic FIFO tie-breaking among waiters admitted at the same
// simulated instant.
//
// Internally every process runs on its own goroutine, but the engine hands
// a single execution token between them one at a time — a process only ever
// runs between the moment it is granted the token and the moment it next
// suspends. This keeps the simulation's observable behavior single
// threaded and deterministic while letting each coordinator be written as
// ordinary sequential Go code instead of an explicit state machine.
package engine

import (
	"container/heap"
	"fmt"
)

// Fault records a process that aborted during Run. The process that faulted
// stops; every other process keeps running.
type Fault struct {
	Process string
	SimTime float64
	Err     error
}

// Engine owns the virtual clock, the set of admitted processes, and every
// Store/Resource/Event created for this run.
type Engine struct {
	now  float64
	seq  uint64
	h    wakeupHeap
	back chan yieldSignal

	faults []Fault

	quiescedEarly bool

	preHooks  []func()
	postHooks []func(*Engine)
}

// New constructs an empty engine at clock 0.
func New() *Engine {
	return &Engine{
		back: make(chan yieldSignal),
	}
}

// CurrentTime returns the minutes elapsed since the origin.
func (e *Engine) CurrentTime() float64 { return e.now }

// Faults returns every process fault recorded so far, in the order they
// occurred.
func (e *Engine) Faults() []Fault { return e.faults }

// QuiescedEarly reports whether the most recent Run call stopped because no
// process was runnable, before reaching its deadline — the early-quiescence
// warning case of §7, distinct from cleanly reaching the deadline.
func (e *Engine) QuiescedEarly() bool { return e.quiescedEarly }

// OnPreRun registers a hook invoked once, before Run begins advancing the
// clock. Used by the orchestrator to reset the metrics pipeline.
func (e *Engine) OnPreRun(hook func()) { e.preHooks = append(e.preHooks, hook) }

// OnPostRun registers a hook invoked once, after Run stops. Used by the
// orchestrator to assemble the summary result.
func (e *Engine) OnPostRun(hook func(*Engine)) { e.postHooks = append(e.postHooks, hook) }

// Schedule admits a cooperative process. It starts running the first time
// Run dispatches it, at the engine's current clock reading and in FIFO
// order relative to every other process admitted at the same instant.
// Every call admits a new, independent process and returns its own handle,
// even when name repeats an earlier call's; Schedule does not deduplicate.
func (e *Engine) Schedule(name string, fn ProcessFunc) *Process {
	p := &Process{name: name, fn: fn, eng: e, resume: make(chan any)}
	e.scheduleWake(p, e.now, nil)
	return p
}

// scheduleWake pushes p onto the wakeup heap to run at time t, carrying
// value (delivered to p.resume when it is dispatched).
func (e *Engine) scheduleWake(p *Process, t float64, value any) {
	e.seq++
	heap.Push(&e.h, &wakeup{t: t, seq: e.seq, p: p, value: value, epoch: p.currentEpoch()})
}

// CreateResource builds a counted resource with the given capacity.
func (e *Engine) CreateResource(capacity int) *Resource {
	return &Resource{capacity: capacity, available: capacity}
}

// CreateStore builds a bounded FIFO store. A non-positive capacity means
// unbounded.
func (e *Engine) CreateStore(capacity int) *Store {
	return &Store{capacity: capacity}
}

// CreateEvent builds a one-shot signal.
func (e *Engine) CreateEvent() *Event {
	return &Event{}
}

// Run advances the clock by repeatedly dispatching the earliest scheduled
// wakeup, until no process is ready, until the optional deadline is
// reached, or until every admitted process has finished. Run never advances
// the clock past until; a wakeup scheduled beyond it is left pending and
// the engine simply stops, which the orchestrator reports as early
// quiescence or a clean stop at the deadline, per §7.
func (e *Engine) Run(until *float64) error {
	for _, hook := range e.preHooks {
		hook()
	}
	e.quiescedEarly = false

	for e.h.Len() > 0 {
		next := e.h[0]
		if until != nil && next.t > *until {
			e.now = *until
			break
		}

		item := heap.Pop(&e.h).(*wakeup)
		if item.epoch != item.p.epoch {
			// Stale wakeup: the process already resumed via a different
			// path (e.g. the losing side of an either/or composition).
			continue
		}
		e.now = item.t

		if !item.p.started {
			item.p.started = true
			go item.p.run()
		} else {
			item.p.resume <- item.value
		}

		signal := <-e.back
		if signal.finished && signal.err != nil {
			e.faults = append(e.faults, Fault{
				Process: signal.process.name,
				SimTime: e.now,
				Err:     signal.err,
			})
		}
	}

	if until != nil && e.now < *until {
		e.quiescedEarly = true
		e.now = *until
	}

	for _, hook := range e.postHooks {
		hook(e)
	}
	return nil
}

// String renders a Fault for logs and error messages.
func (f Fault) String() string {
	return fmt.Sprintf("process %q faulted at t=%.2f: %v", f.Process, f.SimTime, f.Err)
}
