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

package coordinators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/engine"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/eventbus"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/resources"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/services"
)

// twoWorkshopContext builds a bare Context wired to two two-station
// workshops, for dispatch/feed tests that don't need the whole yard.
func twoWorkshopContext(eng *engine.Engine) *Context {
	bus := eventbus.New()
	ws1 := domain.NewWorkshop("ws1", "ws1-track", 2)
	ws2 := domain.NewWorkshop("ws2", "ws2-track", 2)

	return &Context{
		Engine:      eng,
		Bus:         bus,
		WagonState:  services.NewWagonStateManager(bus),
		Selector:    services.NewWagonSelector(),
		Distributor: services.NewWorkshopDistributor([]*domain.Workshop{ws1, ws2}),
		Workshops: map[string]*resources.WorkshopStationPool{
			"ws1": resources.NewWorkshopStationPool(eng, ws1),
			"ws2": resources.NewWorkshopStationPool(eng, ws2),
		},
		Queues: map[string]*WorkshopQueues{
			"ws1": {Ready: eng.CreateStore(0), Completed: eng.CreateStore(0)},
			"ws2": {Ready: eng.CreateStore(0), Completed: eng.CreateStore(0)},
		},
		RetrofitReady: eng.CreateStore(0),
		Faults:        &FaultLog{},
	}
}

func TestDispatchSpreadsABurstAcrossBothWorkshops(t *testing.T) {
	eng := engine.New()
	ctx := twoWorkshopContext(eng)

	w1 := domain.NewWagon("w1", 10, true, false, domain.CouplerScrew, 0)
	w2 := domain.NewWagon("w2", 10, true, false, domain.CouplerScrew, 0)
	w3 := domain.NewWagon("w3", 10, true, false, domain.CouplerScrew, 0)
	w4 := domain.NewWagon("w4", 10, true, false, domain.CouplerScrew, 0)
	ctx.RetrofitReady.Seed(w1, w2, w3, w4)

	eng.Schedule("dispatch", NewWorkshopDispatchCoordinator(ctx, 1))

	require.NoError(t, eng.Run(nil))

	var routed []string
	for _, wsID := range []string{"ws1", "ws2"} {
		for {
			item, ok := ctx.Queues[wsID].Ready.TryGetNoWait()
			if !ok {
				break
			}
			routed = append(routed, item.(*domain.Wagon).ID+"->"+wsID)
		}
	}
	assert.Len(t, routed, 4)

	ws1Count, ws2Count := 0, 0
	for _, r := range routed {
		if r[len(r)-3:] == "ws1" {
			ws1Count++
		} else {
			ws2Count++
		}
	}
	assert.Equal(t, 2, ws1Count, "a 4-wagon burst over 2 two-station workshops should split evenly")
	assert.Equal(t, 2, ws2Count)
}
