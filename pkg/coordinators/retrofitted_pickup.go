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
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/engine"
)

// NewRetrofittedPickupCoordinator runs one per workshop completion queue
// (§4.F.4). It always takes the first completed wagon, then tops the batch
// up to the workshop's station count by racing stragglerWait against the
// queue for each further slot — SelectStore's bounded either/or composition
// — so a batch neither waits forever for a full house nor fires one
// locomotive trip per wagon when several finish close together.
func NewRetrofittedPickupCoordinator(ctx *Context, workshopID string, stragglerWait, pollInterval float64) engine.ProcessFunc {
	return func(p *engine.Process) error {
		pool := ctx.Workshops[workshopID]
		workshop := pool.Workshop()
		queues := ctx.Queues[workshopID]
		batchSize := workshop.StationCount

		for {
			first := queues.Completed.Get(p).(*domain.Wagon)
			batch := []*domain.Wagon{first}
			for len(batch) < batchSize {
				item, timedOut := p.SelectStore(stragglerWait, queues.Completed)
				if timedOut {
					break
				}
				batch = append(batch, item.(*domain.Wagon))
			}

			if err := deliverRetrofittedBatch(ctx, p, workshop.TrackID, batch, pollInterval); err != nil {
				ctx.Faults.Record("retrofitted-pickup", p.Now(), err)
			}
		}
	}
}

// deliverRetrofittedBatch delivers batch from the workshop track to the
// retrofitted track, splitting off whatever currently fits and polling for
// the rest if the retrofitted track is momentarily full — the same
// transient-blocking pattern pickup-to-retrofit uses for the retrofit
// track.
func deliverRetrofittedBatch(ctx *Context, p *engine.Process, fromTrackID string, batch []*domain.Wagon, pollInterval float64) error {
	remaining := batch
	for len(remaining) > 0 {
		chunk, rest := ctx.Selector.SelectBatch(remaining, ctx.Tracks.Available(ctx.RetrofittedTrackID))
		if len(chunk) == 0 {
			p.Delay(pollInterval)
			continue
		}

		if err := transportRetrofittedChunk(ctx, p, fromTrackID, chunk); err != nil {
			return err
		}
		remaining = rest
	}
	return nil
}

func transportRetrofittedChunk(ctx *Context, p *engine.Process, fromTrackID string, chunk []*domain.Wagon) error {
	n := len(chunk)
	for _, w := range chunk {
		if err := ctx.WagonState.StartMovement(w, fromTrackID, ctx.RetrofittedTrackID, p.Now()); err != nil {
			return err
		}
	}

	err := ctx.WithLocomotive(p, "retrofitted-pickup", func(loco *domain.Locomotive) error {
		ctx.Locomotives.Move(p, loco, loco.CurrentTrack, fromTrackID)
		ctx.Locomotives.Couple(p, loco, n, domain.CouplerDAC)
		ctx.Locomotives.Move(p, loco, fromTrackID, ctx.RetrofittedTrackID)
		ctx.Locomotives.Decouple(p, loco, n, domain.CouplerDAC)
		return nil
	})
	if err != nil {
		return err
	}

	for _, w := range chunk {
		if err := ctx.Tracks.Remove(fromTrackID, w.Length, p.Now()); err != nil {
			ctx.Faults.Record("retrofitted-pickup", p.Now(), err)
			continue
		}
		if err := ctx.Tracks.Add(ctx.RetrofittedTrackID, w.Length, p.Now()); err != nil {
			ctx.Faults.Record("retrofitted-pickup", p.Now(), err)
			continue
		}
		ctx.WagonState.ArriveAtRetrofittedTrack(w, ctx.RetrofittedTrackID, p.Now())
		ctx.RetrofittedReady.Put(p, w)
	}
	return nil
}
