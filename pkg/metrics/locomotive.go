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

// LocomotiveBreakdownCollector reconstructs MOVING/PARKING/COUPLING/
// DECOUPLING interval time from LocomotiveStatusChanged events: every event
// closes out the time spent in the locomotive's previous status and opens a
// new interval in the new one. SimulationEnded closes whatever interval was
// still open when the run stopped, so the breakdown always accounts for the
// full run duration per locomotive.
type LocomotiveBreakdownCollector struct {
	lastStatus map[string]domain.LocomotiveStatus
	lastTime   map[string]float64
	timeByLoco map[string]map[domain.LocomotiveStatus]float64
}

// NewLocomotiveBreakdownCollector builds an empty collector.
func NewLocomotiveBreakdownCollector() *LocomotiveBreakdownCollector {
	c := &LocomotiveBreakdownCollector{}
	c.Reset()
	return c
}

// HandledKinds implements Collector.
func (c *LocomotiveBreakdownCollector) HandledKinds() []domain.EventKind {
	return []domain.EventKind{domain.KindLocomotiveStatusChanged, domain.KindSimulationEnded}
}

// Record implements Collector.
func (c *LocomotiveBreakdownCollector) Record(event domain.Event) {
	switch event.Kind {
	case domain.KindLocomotiveStatusChanged:
		p := event.Payload.(domain.LocomotiveStatusChangedPayload)
		c.closeInterval(p.LocomotiveID, event.Time)
		c.lastStatus[p.LocomotiveID] = p.Status
		c.lastTime[p.LocomotiveID] = event.Time

	case domain.KindSimulationEnded:
		for locoID := range c.lastStatus {
			c.closeInterval(locoID, event.Time)
			delete(c.lastStatus, locoID)
		}
	}
}

func (c *LocomotiveBreakdownCollector) closeInterval(locoID string, at float64) {
	status, tracked := c.lastStatus[locoID]
	if !tracked {
		return
	}
	if c.timeByLoco[locoID] == nil {
		c.timeByLoco[locoID] = make(map[domain.LocomotiveStatus]float64)
	}
	c.timeByLoco[locoID][status] += at - c.lastTime[locoID]
}

// Results implements Collector. Each locomotive reports a percentage per
// status plus a fleet-wide average MOVING percentage (the utilization
// figure capacity planning cares most about).
func (c *LocomotiveBreakdownCollector) Results() []Result {
	var out []Result
	var fleetMovingPct float64
	locoIDs := make([]string, 0, len(c.timeByLoco))
	for id := range c.timeByLoco {
		locoIDs = append(locoIDs, id)
	}
	sort.Strings(locoIDs)

	for _, locoID := range locoIDs {
		breakdown := c.timeByLoco[locoID]
		total := 0.0
		for _, d := range breakdown {
			total += d
		}
		statuses := make([]domain.LocomotiveStatus, 0, len(breakdown))
		for s := range breakdown {
			statuses = append(statuses, s)
		}
		sort.Slice(statuses, func(i, j int) bool { return statuses[i] < statuses[j] })

		for _, status := range statuses {
			pct := 0.0
			if total > 0 {
				pct = breakdown[status] / total * 100
			}
			out = append(out, Result{
				Category: "locomotive",
				Name:     locoID + "." + string(status),
				Value:    pct,
				Unit:     "percent",
			})
			if status == domain.LocoMoving {
				fleetMovingPct += pct
			}
		}
	}

	if len(locoIDs) > 0 {
		fleetMovingPct /= float64(len(locoIDs))
	}
	out = append(out, Result{Category: "locomotive", Name: "fleet.avg_moving", Value: fleetMovingPct, Unit: "percent"})
	return out
}

// Reset implements Collector.
func (c *LocomotiveBreakdownCollector) Reset() {
	c.lastStatus = make(map[string]domain.LocomotiveStatus)
	c.lastTime = make(map[string]float64)
	c.timeByLoco = make(map[string]map[domain.LocomotiveStatus]float64)
}
