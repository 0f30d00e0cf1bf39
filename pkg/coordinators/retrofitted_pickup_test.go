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

func retrofittedPickupFixture(eng *engine.Engine, stationCount int) (*Context, *domain.Workshop) {
	bus := eventbus.New()
	tracks := []*domain.Track{
		domain.NewTrack("ws1-track", domain.TrackWorkshop, 1000),
		domain.NewTrack("retrofitted", domain.TrackRetrofitted, 1000),
	}
	trackMgr := resources.NewTrackCapacityManager(tracks, resources.StrategyFirstAvailable, resources.StrategyFirstAvailable, 1, bus)
	loco := domain.NewLocomotive("loco-1", "ws1-track", 10)
	locoPool := resources.NewLocomotivePool(eng, []*domain.Locomotive{loco})
	times := domain.ProcessTimes{DACCouplingTime: 1, DACDecouplingTime: 1}
	locoSvc := services.NewLocomotiveService(locoPool, domain.NewRouteTable(nil), times, bus)

	workshop := domain.NewWorkshop("ws1", "ws1-track", stationCount)
	wsPool := resources.NewWorkshopStationPool(eng, workshop)

	ctx := &Context{
		Engine:             eng,
		Bus:                bus,
		Locomotives:        locoSvc,
		Tracks:             trackMgr,
		WagonState:         services.NewWagonStateManager(bus),
		Selector:           services.NewWagonSelector(),
		Workshops:          map[string]*resources.WorkshopStationPool{"ws1": wsPool},
		Queues:             map[string]*WorkshopQueues{"ws1": {Completed: eng.CreateStore(0)}},
		RetrofittedTrackID: "retrofitted",
		DeliveryStrategy:   resources.DeliveryDirect,
		RetrofittedReady:   eng.CreateStore(0),
		Faults:             &FaultLog{},
	}
	return ctx, workshop
}

// completedWagonAt builds one wagon already taken through
// RETROFITTING->RETROFITTED, standing on trackID, ready for pickup.
func completedWagonAt(trackID string) *domain.Wagon {
	w := domain.NewWagon("w", 10, true, false, domain.CouplerScrew, 0)
	_ = w.TransitionTo(domain.StatusOnRetrofitTrack)
	_ = w.TransitionTo(domain.StatusMoving)
	_ = w.TransitionTo(domain.StatusAtWorkshop)
	_ = w.TransitionTo(domain.StatusRetrofitting)
	_ = w.TransitionTo(domain.StatusRetrofitted)
	w.TrackID = trackID
	return w
}

func TestRetrofittedPickupGathersAStragglerWithinTheWait(t *testing.T) {
	eng := engine.New()
	ctx, _ := retrofittedPickupFixture(eng, 2)
	w1 := completedWagonAt("ws1-track")
	w2 := completedWagonAt("ws1-track")
	w1.ID, w2.ID = "w1", "w2"
	require.NoError(t, ctx.Tracks.Add("ws1-track", w1.Length+w2.Length, 0))

	eng.Schedule("completed-feed", func(p *engine.Process) error {
		ctx.Queues["ws1"].Completed.Put(p, w1)
		p.Delay(1) // well within the 5-minute straggler wait
		ctx.Queues["ws1"].Completed.Put(p, w2)
		return nil
	})
	eng.Schedule("retrofitted-pickup", NewRetrofittedPickupCoordinator(ctx, "ws1", 5, 1))

	require.NoError(t, eng.Run(nil))
	assert.Empty(t, eng.Faults())
	assert.Equal(t, domain.StatusMoving, w1.Status)
	assert.Equal(t, "retrofitted", w1.TrackID)
	assert.Equal(t, domain.StatusMoving, w2.Status)
	assert.Equal(t, "retrofitted", w2.TrackID)
}

func TestRetrofittedPickupDoesNotWaitPastTheStragglerTimeout(t *testing.T) {
	eng := engine.New()
	ctx, _ := retrofittedPickupFixture(eng, 2)
	w1 := completedWagonAt("ws1-track")
	require.NoError(t, ctx.Tracks.Add("ws1-track", w1.Length, 0))

	eng.Schedule("completed-feed", func(p *engine.Process) error {
		ctx.Queues["ws1"].Completed.Put(p, w1)
		return nil
	})
	eng.Schedule("retrofitted-pickup", NewRetrofittedPickupCoordinator(ctx, "ws1", 2, 1))

	require.NoError(t, eng.Run(nil))
	assert.Empty(t, eng.Faults())
	assert.Equal(t, "retrofitted", w1.TrackID)
	assert.Equal(t, 0, ctx.Queues["ws1"].Completed.Len())
}
