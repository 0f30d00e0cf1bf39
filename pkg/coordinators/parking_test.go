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

func parkingFixture(eng *engine.Engine, parkingCapacity float64) *Context {
	bus := eventbus.New()
	tracks := []*domain.Track{
		domain.NewTrack("retrofitted", domain.TrackRetrofitted, 1000),
		domain.NewTrack("parking-1", domain.TrackParking, parkingCapacity),
	}
	trackMgr := resources.NewTrackCapacityManager(tracks, resources.StrategyFirstAvailable, resources.StrategyFirstAvailable, 1, bus)
	loco := domain.NewLocomotive("loco-1", "parking-1", 10)
	locoPool := resources.NewLocomotivePool(eng, []*domain.Locomotive{loco})
	times := domain.ProcessTimes{DACCouplingTime: 1, DACDecouplingTime: 1, ParkingDelay: 1}
	locoSvc := services.NewLocomotiveService(locoPool, domain.NewRouteTable(nil), times, bus)

	return &Context{
		Engine:             eng,
		Bus:                bus,
		Locomotives:        locoSvc,
		Tracks:             trackMgr,
		WagonState:         services.NewWagonStateManager(bus),
		Selector:           services.NewWagonSelector(),
		Times:              times,
		RetrofittedTrackID: "retrofitted",
		RetrofittedReady:   eng.CreateStore(0),
		Faults:             &FaultLog{},
	}
}

func movingWagon(id string, length float64) *domain.Wagon {
	w := domain.NewWagon(id, length, true, false, domain.CouplerScrew, 0)
	_ = w.TransitionTo(domain.StatusOnRetrofitTrack)
	_ = w.TransitionTo(domain.StatusMoving)
	_ = w.TransitionTo(domain.StatusAtWorkshop)
	_ = w.TransitionTo(domain.StatusRetrofitting)
	_ = w.TransitionTo(domain.StatusRetrofitted)
	_ = w.TransitionTo(domain.StatusMoving)
	w.TrackID = "retrofitted"
	return w
}

func TestParkingPlacesAWagonOnTheOnlyTrackThatFits(t *testing.T) {
	eng := engine.New()
	ctx := parkingFixture(eng, 1000)
	w := movingWagon("w1", 10)
	ctx.RetrofittedReady.Seed(w)

	eng.Schedule("parking", NewParkingCoordinator(ctx, 1))
	require.NoError(t, eng.Run(nil))

	assert.Empty(t, eng.Faults())
	assert.Empty(t, ctx.Faults.Entries())
	assert.Equal(t, domain.StatusParking, w.Status)
	assert.Equal(t, "parking-1", w.TrackID)
}

func TestParkingRetriesUntilTheTrackHasRoom(t *testing.T) {
	eng := engine.New()
	ctx := parkingFixture(eng, 10)
	require.NoError(t, ctx.Tracks.Add("parking-1", 10, 0)) // start full
	w := movingWagon("w1", 10)

	eng.Schedule("parking", NewParkingCoordinator(ctx, 1))
	eng.Schedule("freer", func(p *engine.Process) error {
		p.Delay(3)
		require.NoError(t, ctx.Tracks.Remove("parking-1", 10, p.Now()))
		return nil
	})
	eng.Schedule("feeder", func(p *engine.Process) error {
		ctx.RetrofittedReady.Put(p, w)
		return nil
	})

	require.NoError(t, eng.Run(nil))
	assert.Empty(t, eng.Faults())
	assert.Equal(t, domain.StatusParking, w.Status)
	assert.GreaterOrEqual(t, eng.CurrentTime(), float64(3))
}
