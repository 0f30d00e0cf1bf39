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

import "github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"

// WagonFlowTimeCollector measures the minutes between a wagon landing on a
// retrofit track (WagonDelivered) and its retrofit completing
// (WagonRetrofitted). A wagon that is later rejected never closes its
// window and is dropped rather than left dangling.
type WagonFlowTimeCollector struct {
	startedAt     map[string]float64
	totalFlowTime float64
	flowTimeCount int
}

// NewWagonFlowTimeCollector builds an empty collector.
func NewWagonFlowTimeCollector() *WagonFlowTimeCollector {
	c := &WagonFlowTimeCollector{}
	c.Reset()
	return c
}

// HandledKinds implements Collector.
func (c *WagonFlowTimeCollector) HandledKinds() []domain.EventKind {
	return []domain.EventKind{domain.KindWagonDelivered, domain.KindWagonRetrofitted, domain.KindWagonRejected}
}

// Record implements Collector.
func (c *WagonFlowTimeCollector) Record(event domain.Event) {
	switch event.Kind {
	case domain.KindWagonDelivered:
		p := event.Payload.(domain.WagonDeliveredPayload)
		c.startedAt[p.WagonID] = event.Time

	case domain.KindWagonRetrofitted:
		p := event.Payload.(domain.WagonRetrofittedPayload)
		if start, ok := c.startedAt[p.WagonID]; ok {
			c.totalFlowTime += event.Time - start
			c.flowTimeCount++
			delete(c.startedAt, p.WagonID)
		}

	case domain.KindWagonRejected:
		p := event.Payload.(domain.WagonRejectedPayload)
		delete(c.startedAt, p.WagonID)
	}
}

// Results implements Collector.
func (c *WagonFlowTimeCollector) Results() []Result {
	avg := 0.0
	if c.flowTimeCount > 0 {
		avg = c.totalFlowTime / float64(c.flowTimeCount)
	}
	return []Result{
		{Category: "wagon", Name: "total_flow_time", Value: c.totalFlowTime, Unit: "minutes"},
		{Category: "wagon", Name: "avg_flow_time", Value: avg, Unit: "minutes"},
		{Category: "wagon", Name: "flow_time_count", Value: c.flowTimeCount, Unit: "count"},
	}
}

// Reset implements Collector.
func (c *WagonFlowTimeCollector) Reset() {
	c.startedAt = make(map[string]float64)
	c.totalFlowTime = 0
	c.flowTimeCount = 0
}
