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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
)

func TestWorkshopCollectorComputesRetrofitAndWaitingTime(t *testing.T) {
	c := NewWorkshopCollector()
	c.Record(domain.NewEvent(domain.KindWorkshopStationOccupied, 0, "test", domain.WorkshopStationPayload{WorkshopID: "ws1", Station: 0, WagonID: "w1"}))
	c.Record(domain.NewEvent(domain.KindWorkshopStationIdle, 30, "test", domain.WorkshopStationPayload{WorkshopID: "ws1", Station: 0, WagonID: "w1"}))
	c.Record(domain.NewEvent(domain.KindSimulationEnded, 100, "test", domain.SimulationEndedPayload{Success: true, Duration: 100}))

	results := c.Results()
	completed, _ := resultNamed(results, "ws1.completed_count")
	assert.Equal(t, 1, completed.Value)

	retrofit, _ := resultNamed(results, "ws1.retrofit_time")
	assert.Equal(t, 30.0, retrofit.Value)

	waiting, _ := resultNamed(results, "ws1.waiting_time")
	assert.Equal(t, 70.0, waiting.Value)

	utilization, _ := resultNamed(results, "ws1.utilization")
	assert.Equal(t, 30.0, utilization.Value)

	throughput, _ := resultNamed(results, "ws1.throughput_per_hour")
	assert.InDelta(t, 0.6, throughput.Value, 0.001)
}

func TestWorkshopCollectorWaitingTimeNeverGoesNegative(t *testing.T) {
	c := NewWorkshopCollector()
	c.Record(domain.NewEvent(domain.KindWorkshopStationOccupied, 0, "test", domain.WorkshopStationPayload{WorkshopID: "ws1", Station: 0, WagonID: "w1"}))
	c.Record(domain.NewEvent(domain.KindWorkshopStationIdle, 120, "test", domain.WorkshopStationPayload{WorkshopID: "ws1", Station: 0, WagonID: "w1"}))
	c.Record(domain.NewEvent(domain.KindSimulationEnded, 100, "test", domain.SimulationEndedPayload{Success: true, Duration: 100}))

	waiting, _ := resultNamed(c.Results(), "ws1.waiting_time")
	assert.Equal(t, 0.0, waiting.Value)

	c.Reset()
	assert.Empty(t, c.byWorkshop)
}

func TestWorkshopCollectorIgnoresStationIdleWithoutMatchingOccupied(t *testing.T) {
	c := NewWorkshopCollector()
	c.Record(domain.NewEvent(domain.KindWorkshopStationIdle, 30, "test", domain.WorkshopStationPayload{WorkshopID: "ws1", Station: 0, WagonID: "w1"}))
	c.Record(domain.NewEvent(domain.KindSimulationEnded, 100, "test", domain.SimulationEndedPayload{Success: true, Duration: 100}))

	completed, _ := resultNamed(c.Results(), "ws1.completed_count")
	assert.Equal(t, 0, completed.Value)
}
