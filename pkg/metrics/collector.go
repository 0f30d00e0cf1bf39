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

// Package metrics is the event-driven metrics pipeline of §4.H: a registry
// of collectors, each subscribed to the kinds of domain event it cares
// about, that reconstructs wagon-level and resource-level time series purely
// from the event stream. Results depend only on the sequence of events
// replayed through a collector, so re-running a registry over the same
// recorded stream yields identical results.
package metrics

import (
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/eventbus"
)

// Result is one reported metric: a name, a value (numeric or string), the
// declared unit, and the category it belongs to. Units are always declared
// here, never implicit in the name.
type Result struct {
	Category string
	Name     string
	Value    any
	Unit     string
}

// Collector is the capability every metrics collector implements. A
// collector declares which event kinds it wants delivered, accumulates
// state as those events arrive, and reports a flat list of results on
// demand. Reset clears accumulated state without unsubscribing from the
// bus, so a registry can be reused across runs.
type Collector interface {
	HandledKinds() []domain.EventKind
	Record(event domain.Event)
	Results() []Result
	Reset()
}

// Registry subscribes a set of collectors to an event bus and aggregates
// their results. Collectors are consulted in registration order, matching
// the bus's own subscriber-order guarantee.
type Registry struct {
	collectors []Collector
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register subscribes collector to bus for every kind it declares via
// HandledKinds, and adds it to the registry's reporting order.
func (r *Registry) Register(bus *eventbus.Bus, collector Collector) {
	r.collectors = append(r.collectors, collector)
	for _, kind := range collector.HandledKinds() {
		bus.Subscribe(kind, func(event domain.Event) error {
			collector.Record(event)
			return nil
		})
	}
}

// Results flattens every collector's results, in registration order.
func (r *Registry) Results() []Result {
	var out []Result
	for _, c := range r.collectors {
		out = append(out, c.Results()...)
	}
	return out
}

// ByCategory groups Results() by category, the shape §6.3 describes as the
// metrics result: a mapping from category to a list of entries.
func (r *Registry) ByCategory() map[string][]Result {
	out := make(map[string][]Result)
	for _, res := range r.Results() {
		out[res.Category] = append(out[res.Category], res)
	}
	return out
}

// Reset clears every collector's accumulated state, leaving subscriptions
// in place.
func (r *Registry) Reset() {
	for _, c := range r.collectors {
		c.Reset()
	}
}
