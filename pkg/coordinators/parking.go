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

// NewParkingCoordinator drains ctx.RetrofittedReady, the final stage of
// §4.F.5: pick a parking track via the configured strategy, deliver as many
// wagons as currently fit, and retry what doesn't. A wagon reaching this
// coordinator is already structurally MOVING (per the status DAG, set when
// it left the workshop track) so parking is its one remaining transition,
// to PARKING.
func NewParkingCoordinator(ctx *Context, pollInterval float64) engine.ProcessFunc {
	return func(p *engine.Process) error {
		for {
			first := ctx.RetrofittedReady.Get(p).(*domain.Wagon)
			batch := []*domain.Wagon{first}
			for {
				item, ok := ctx.RetrofittedReady.TryGetNoWait()
				if !ok {
					break
				}
				batch = append(batch, item.(*domain.Wagon))
			}

			if err := parkBatch(ctx, p, batch, pollInterval); err != nil {
				ctx.Faults.Record("parking", p.Now(), err)
			}
		}
	}
}

// parkBatch repeatedly selects a parking track for whatever remains of
// batch, splits off what fits, and transports it, polling when either no
// track currently fits the head wagon or the selected track has no spare
// capacity right now — both are the transient-blocking case of §7.
func parkBatch(ctx *Context, p *engine.Process, batch []*domain.Wagon, pollInterval float64) error {
	remaining := batch
	for len(remaining) > 0 {
		trackID := ctx.Tracks.SelectParkingTrack(remaining[0].Length)
		if trackID == "" {
			p.Delay(pollInterval)
			continue
		}

		chunk, rest := ctx.Selector.SelectBatch(remaining, ctx.Tracks.Available(trackID))
		if len(chunk) == 0 {
			p.Delay(pollInterval)
			continue
		}

		if err := transportParkingChunk(ctx, p, trackID, chunk); err != nil {
			return err
		}
		remaining = rest
	}
	return nil
}

func transportParkingChunk(ctx *Context, p *engine.Process, toTrackID string, chunk []*domain.Wagon) error {
	n := len(chunk)
	fromTrackID := ctx.RetrofittedTrackID

	err := ctx.WithLocomotive(p, "parking", func(loco *domain.Locomotive) error {
		ctx.Locomotives.Move(p, loco, loco.CurrentTrack, fromTrackID)
		ctx.Locomotives.Couple(p, loco, n, domain.CouplerDAC)
		ctx.Locomotives.Move(p, loco, fromTrackID, toTrackID)
		ctx.Locomotives.Decouple(p, loco, n, domain.CouplerDAC)
		p.Delay(ctx.Times.ParkingDelay)
		return nil
	})
	if err != nil {
		return err
	}

	for _, w := range chunk {
		if err := ctx.Tracks.Remove(fromTrackID, w.Length, p.Now()); err != nil {
			ctx.Faults.Record("parking", p.Now(), err)
			continue
		}
		if err := ctx.Tracks.Add(toTrackID, w.Length, p.Now()); err != nil {
			ctx.Faults.Record("parking", p.Now(), err)
			continue
		}
		if err := ctx.WagonState.CompleteArrival(w, toTrackID, domain.StatusParking, p.Now()); err != nil {
			ctx.Faults.Record("parking", p.Now(), err)
		}
	}
	return nil
}
