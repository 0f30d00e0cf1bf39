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
	"fmt"
	"sort"

	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
)

const defaultTrackBucketMinutes = 60.0

type occupancyPoint struct {
	time     float64
	occupied float64
	total    float64
}

// TrackOccupancyCollector buckets a track's occupied-meters reading into
// fixed-width time windows, from the first TrackOccupancyChanged event seen
// for that track to the last. A bucket with no event in its window carries
// forward the occupancy last observed before it started, per §4.H's
// aggregation contract.
type TrackOccupancyCollector struct {
	bucketMinutes float64
	pointsByTrack map[string][]occupancyPoint
}

// NewTrackOccupancyCollector builds a collector bucketing at bucketMinutes;
// a non-positive value falls back to the spec's 60-minute default.
func NewTrackOccupancyCollector(bucketMinutes float64) *TrackOccupancyCollector {
	if bucketMinutes <= 0 {
		bucketMinutes = defaultTrackBucketMinutes
	}
	c := &TrackOccupancyCollector{bucketMinutes: bucketMinutes}
	c.Reset()
	return c
}

// HandledKinds implements Collector.
func (c *TrackOccupancyCollector) HandledKinds() []domain.EventKind {
	return []domain.EventKind{domain.KindTrackOccupancyChanged}
}

// Record implements Collector.
func (c *TrackOccupancyCollector) Record(event domain.Event) {
	p := event.Payload.(domain.TrackOccupancyPayload)
	c.pointsByTrack[p.TrackID] = append(c.pointsByTrack[p.TrackID], occupancyPoint{
		time:     event.Time,
		occupied: p.Occupied,
		total:    p.Total,
	})
}

// Results implements Collector: one entry per (track, bucket index), plus a
// trailing capacity entry per track.
func (c *TrackOccupancyCollector) Results() []Result {
	trackIDs := make([]string, 0, len(c.pointsByTrack))
	for id := range c.pointsByTrack {
		trackIDs = append(trackIDs, id)
	}
	sort.Strings(trackIDs)

	var out []Result
	for _, id := range trackIDs {
		points := c.pointsByTrack[id]
		first, last := points[0].time, points[len(points)-1].time

		carry := 0.0
		idx := 0
		bucket := 0
		for t := first; t <= last; t += c.bucketMinutes {
			bucketEnd := t + c.bucketMinutes
			for idx < len(points) && points[idx].time < bucketEnd {
				carry = points[idx].occupied
				idx++
			}
			out = append(out, Result{
				Category: "track",
				Name:     fmt.Sprintf("%s.bucket_%d", id, bucket),
				Value:    carry,
				Unit:     "meters",
			})
			bucket++
		}
		out = append(out, Result{Category: "track", Name: id + ".capacity", Value: points[len(points)-1].total, Unit: "meters"})
	}
	return out
}

// Reset implements Collector.
func (c *TrackOccupancyCollector) Reset() {
	c.pointsByTrack = make(map[string][]occupancyPoint)
}
