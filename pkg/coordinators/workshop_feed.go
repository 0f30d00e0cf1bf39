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
	"fmt"

	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/engine"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/resources"
)

// NewWorkshopDispatchCoordinator drains ctx.RetrofitReady and routes each
// wagon to a workshop's Ready queue, using ctx.Distributor for load
// balancing (§4.F.3). The distributor's claim
// counters reset whenever a wagon arrives after the queue had drained to
// empty, treating each such burst as one dispatch cycle — sparse, one-at-a-
// time arrivals therefore always see a freshly reset distributor, while a
// burst queued up during a stall gets spread across workshops the way
// Reset's doc comment describes.
func NewWorkshopDispatchCoordinator(ctx *Context, pollInterval float64) engine.ProcessFunc {
	return func(p *engine.Process) error {
		for {
			burstStart := ctx.RetrofitReady.Len() == 0
			item := ctx.RetrofitReady.Get(p)
			w := item.(*domain.Wagon)
			if burstStart {
				ctx.Distributor.Reset()
			}

			workshopID := ctx.Distributor.Assign()
			for workshopID == "" {
				p.Delay(pollInterval)
				workshopID = ctx.Distributor.Assign()
			}

			ctx.Queues[workshopID].Ready.Put(p, w)
		}
	}
}

// NewWorkshopFeedCoordinator runs one per workshop, forming batches bounded
// by the workshop's station count off its Ready queue, transporting each
// batch in as a single locomotive move, and then letting every wagon's
// retrofit run concurrently as its own spawned process — station occupancy,
// not this coordinator's loop, is what actually limits concurrent retrofits.
func NewWorkshopFeedCoordinator(ctx *Context, workshopID string) engine.ProcessFunc {
	return func(p *engine.Process) error {
		pool := ctx.Workshops[workshopID]
		workshop := pool.Workshop()
		queues := ctx.Queues[workshopID]
		batchSize := workshop.StationCount

		for {
			first := queues.Ready.Get(p).(*domain.Wagon)
			batch := []*domain.Wagon{first}
			for len(batch) < batchSize {
				item, ok := queues.Ready.TryGetNoWait()
				if !ok {
					break
				}
				batch = append(batch, item.(*domain.Wagon))
			}

			if err := feedBatch(ctx, p, workshopID, pool, batch); err != nil {
				ctx.Faults.Record("workshop-feed", p.Now(), err)
			}
		}
	}
}

// feedBatch moves batch from its retrofit track onto workshop's track as
// one locomotive trip. Every wagon in a batch is assumed already marshaled
// onto the same retrofit track — the dispatch coordinator only routes one
// wagon at a time, so a multi-wagon batch only forms from wagons queued
// back to back, which in practice share a track.
func feedBatch(ctx *Context, p *engine.Process, workshopID string, pool *resources.WorkshopStationPool, batch []*domain.Wagon) error {
	workshop := pool.Workshop()
	from := batch[0].TrackID
	n := len(batch)

	for _, w := range batch {
		if err := ctx.WagonState.StartMovement(w, from, workshop.TrackID, p.Now()); err != nil {
			return err
		}
	}

	err := ctx.WithLocomotive(p, "workshop-feed", func(loco *domain.Locomotive) error {
		ctx.Locomotives.Move(p, loco, loco.CurrentTrack, from)
		ctx.Locomotives.Couple(p, loco, n, domain.CouplerScrew)
		ctx.Locomotives.Move(p, loco, from, workshop.TrackID)
		ctx.Locomotives.Decouple(p, loco, n, domain.CouplerScrew)
		return nil
	})
	if err != nil {
		return err
	}

	for _, w := range batch {
		if err := ctx.Tracks.Remove(from, w.Length, p.Now()); err != nil {
			ctx.Faults.Record("workshop-feed", p.Now(), err)
			continue
		}
		if err := ctx.Tracks.Add(workshop.TrackID, w.Length, p.Now()); err != nil {
			ctx.Faults.Record("workshop-feed", p.Now(), err)
			continue
		}
		if err := ctx.WagonState.CompleteArrival(w, workshop.TrackID, domain.StatusAtWorkshop, p.Now()); err != nil {
			ctx.Faults.Record("workshop-feed", p.Now(), err)
			continue
		}
		w := w
		ctx.Engine.Schedule(fmt.Sprintf("retrofit-%s", w.ID), func(p2 *engine.Process) error {
			runRetrofit(ctx, p2, pool, workshopID, w)
			return nil
		})
	}
	return nil
}

// runRetrofit occupies one station for w's retrofit duration and pushes w
// onto the workshop's completed queue once done. Faults are recorded rather
// than returned, since this runs as its own independent engine process that
// the feed coordinator's loop has already moved on from.
func runRetrofit(ctx *Context, p *engine.Process, pool *resources.WorkshopStationPool, workshopID string, w *domain.Wagon) {
	idx := pool.AcquireStation(p, w.ID)
	ctx.Bus.Publish(domain.NewEvent(domain.KindWorkshopStationOccupied, p.Now(), "workshop-feed", domain.WorkshopStationPayload{
		WorkshopID: workshopID,
		Station:    idx,
		WagonID:    w.ID,
	}))

	if err := ctx.WagonState.StartRetrofit(w, p.Now()); err != nil {
		pool.ReleaseStation(idx)
		ctx.Faults.Record("workshop-feed", p.Now(), err)
		return
	}

	p.Delay(ctx.Times.RetrofitTime)

	if err := ctx.WagonState.CompleteRetrofit(w, workshopID, p.Now()); err != nil {
		pool.ReleaseStation(idx)
		ctx.Faults.Record("workshop-feed", p.Now(), err)
		return
	}

	pool.ReleaseStation(idx)
	ctx.Bus.Publish(domain.NewEvent(domain.KindWorkshopStationIdle, p.Now(), "workshop-feed", domain.WorkshopStationPayload{
		WorkshopID: workshopID,
		Station:    idx,
	}))
	ctx.Queues[workshopID].Completed.Put(p, w)
}
