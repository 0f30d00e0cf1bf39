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

package metrics

import (
	"sort"

	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
)

// Movement is one entry in a wagon's location history: a place it started
// occupying (WagonArrived/WagonDelivered) or a transit it began
// (WagonLocationChanged).
type Movement struct {
	Time      float64
	Kind      domain.EventKind
	FromTrack string
	ToTrack   string
}

// WagonMovementCollector accumulates every location-change event per wagon,
// in emission order, as raw input for a Gantt-chart-style view of the yard.
// It makes no attempt to interpret the history; that belongs to whatever
// renders the chart.
type WagonMovementCollector struct {
	history map[string][]Movement
}

// NewWagonMovementCollector builds an empty collector.
func NewWagonMovementCollector() *WagonMovementCollector {
	c := &WagonMovementCollector{}
	c.Reset()
	return c
}

// HandledKinds implements Collector.
func (c *WagonMovementCollector) HandledKinds() []domain.EventKind {
	return []domain.EventKind{domain.KindWagonDelivered, domain.KindWagonArrived, domain.KindWagonLocationChanged}
}

// Record implements Collector.
func (c *WagonMovementCollector) Record(event domain.Event) {
	switch event.Kind {
	case domain.KindWagonDelivered:
		p := event.Payload.(domain.WagonDeliveredPayload)
		c.append(p.WagonID, Movement{Time: event.Time, Kind: event.Kind, ToTrack: p.TrackID})

	case domain.KindWagonArrived:
		p := event.Payload.(domain.WagonArrivedPayload)
		c.append(p.WagonID, Movement{Time: event.Time, Kind: event.Kind, ToTrack: p.TrackID})

	case domain.KindWagonLocationChanged:
		p := event.Payload.(domain.WagonLocationChangedPayload)
		c.append(p.WagonID, Movement{Time: event.Time, Kind: event.Kind, FromTrack: p.FromTrack, ToTrack: p.ToTrack})
	}
}

func (c *WagonMovementCollector) append(wagonID string, m Movement) {
	c.history[wagonID] = append(c.history[wagonID], m)
}

// Results implements Collector: one entry per wagon, carrying its full
// ordered movement history as the value.
func (c *WagonMovementCollector) Results() []Result {
	wagonIDs := make([]string, 0, len(c.history))
	for id := range c.history {
		wagonIDs = append(wagonIDs, id)
	}
	sort.Strings(wagonIDs)

	out := make([]Result, 0, len(wagonIDs))
	for _, id := range wagonIDs {
		out = append(out, Result{Category: "movement", Name: id, Value: c.history[id], Unit: "events"})
	}
	return out
}

// Reset implements Collector.
func (c *WagonMovementCollector) Reset() {
	c.history = make(map[string][]Movement)
}
