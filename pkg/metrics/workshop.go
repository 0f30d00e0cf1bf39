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
	"fmt"
	"sort"

	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
)

type stationOccupancy struct {
	occupiedAt float64
}

type workshopTally struct {
	completedCount int
	retrofitTime   float64
	openStations   map[int]stationOccupancy
}

// WorkshopCollector computes, per workshop: completed retrofit count, total
// retrofit ("working") time, waiting time as the remainder of the run
// duration, throughput per hour, and utilization percent. Waiting time is
// derived as a residual against the run's total duration rather than
// tracked per wagon, matching the original utilization-breakdown approach:
// a workshop's stations are either retrofitting or not, and "not" is waiting.
type WorkshopCollector struct {
	byWorkshop   map[string]*workshopTally
	totalMinutes float64
}

// NewWorkshopCollector builds an empty collector.
func NewWorkshopCollector() *WorkshopCollector {
	c := &WorkshopCollector{}
	c.Reset()
	return c
}

// HandledKinds implements Collector.
func (c *WorkshopCollector) HandledKinds() []domain.EventKind {
	return []domain.EventKind{domain.KindWorkshopStationOccupied, domain.KindWorkshopStationIdle, domain.KindSimulationEnded}
}

// Record implements Collector.
func (c *WorkshopCollector) Record(event domain.Event) {
	switch event.Kind {
	case domain.KindWorkshopStationOccupied:
		p := event.Payload.(domain.WorkshopStationPayload)
		tally := c.tallyFor(p.WorkshopID)
		tally.openStations[p.Station] = stationOccupancy{occupiedAt: event.Time}

	case domain.KindWorkshopStationIdle:
		p := event.Payload.(domain.WorkshopStationPayload)
		tally := c.tallyFor(p.WorkshopID)
		if occ, ok := tally.openStations[p.Station]; ok {
			tally.retrofitTime += event.Time - occ.occupiedAt
			tally.completedCount++
			delete(tally.openStations, p.Station)
		}

	case domain.KindSimulationEnded:
		p := event.Payload.(domain.SimulationEndedPayload)
		c.totalMinutes = p.Duration
	}
}

func (c *WorkshopCollector) tallyFor(workshopID string) *workshopTally {
	t, ok := c.byWorkshop[workshopID]
	if !ok {
		t = &workshopTally{openStations: make(map[int]stationOccupancy)}
		c.byWorkshop[workshopID] = t
	}
	return t
}

// Results implements Collector.
func (c *WorkshopCollector) Results() []Result {
	ids := make([]string, 0, len(c.byWorkshop))
	for id := range c.byWorkshop {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out []Result
	for _, id := range ids {
		t := c.byWorkshop[id]
		waiting := c.totalMinutes - t.retrofitTime
		if waiting < 0 {
			waiting = 0
		}
		utilization := 0.0
		throughputPerHour := 0.0
		if c.totalMinutes > 0 {
			utilization = t.retrofitTime / c.totalMinutes * 100
			throughputPerHour = float64(t.completedCount) / (c.totalMinutes / 60)
		}

		out = append(out,
			Result{Category: "workshop", Name: fmt.Sprintf("%s.completed_count", id), Value: t.completedCount, Unit: "count"},
			Result{Category: "workshop", Name: fmt.Sprintf("%s.retrofit_time", id), Value: t.retrofitTime, Unit: "minutes"},
			Result{Category: "workshop", Name: fmt.Sprintf("%s.waiting_time", id), Value: waiting, Unit: "minutes"},
			Result{Category: "workshop", Name: fmt.Sprintf("%s.throughput_per_hour", id), Value: throughputPerHour, Unit: "wagons/hour"},
			Result{Category: "workshop", Name: fmt.Sprintf("%s.utilization", id), Value: utilization, Unit: "percent"},
		)
	}
	return out
}

// Reset implements Collector.
func (c *WorkshopCollector) Reset() {
	c.byWorkshop = make(map[string]*workshopTally)
	c.totalMinutes = 0
}
