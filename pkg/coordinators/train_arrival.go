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

// NewTrainArrivalCoordinator drains trains in order, humping one wagon at a
// time onto the collection track and either rejecting it or queuing it for
// pickup-to-retrofit. Unlike the other four coordinators this one is
// naturally finite: it terminates once every train has been processed.
func NewTrainArrivalCoordinator(ctx *Context, trains []*domain.Train) engine.ProcessFunc {
	return func(p *engine.Process) error {
		for _, train := range trains {
			if wait := train.ArrivalTime - p.Now(); wait > 0 {
				p.Delay(wait)
			}
			ctx.Bus.Publish(domain.NewEvent(domain.KindTrainArrived, p.Now(), "train-arrival", domain.TrainArrivedPayload{
				TrainID: train.ID,
			}))

			for _, w := range train.Wagons {
				p.Delay(ctx.Times.TrainToHumpDelay)
				processWagonArrival(ctx, p, w)
				p.Delay(ctx.Times.WagonHumpInterval)
			}
		}
		return nil
	}
}

func processWagonArrival(ctx *Context, p *engine.Process, w *domain.Wagon) {
	ctx.Bus.Publish(domain.NewEvent(domain.KindWagonArrived, p.Now(), "train-arrival", domain.WagonArrivedPayload{
		WagonID: w.ID,
		TrackID: ctx.CollectionTrackID,
	}))
	w.TrackID = ctx.CollectionTrackID

	if w.Coupler == domain.CouplerDAC || w.Loaded || !w.NeedsRetrofit {
		_ = ctx.WagonState.Reject(w, "not_eligible", p.Now())
		return
	}

	if !ctx.Tracks.CanAdd(ctx.CollectionTrackID, w.Length) {
		_ = ctx.WagonState.Reject(w, "collection_track_full", p.Now())
		return
	}

	if err := ctx.Tracks.Add(ctx.CollectionTrackID, w.Length, p.Now()); err != nil {
		ctx.Faults.Record("train-arrival", p.Now(), err)
		return
	}

	ctx.Inbound.Put(p, w)
}
