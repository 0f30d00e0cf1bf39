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

// BottleneckThresholds are the configurable crossing points §4.H names:
// workshop over/under-utilization, track high/full capacity, locomotive
// fleet over/under-utilization. Defaults match the reference thresholds.
type BottleneckThresholds struct {
	WorkshopOverutilization    float64
	WorkshopUnderutilization   float64
	TrackHighCapacity          float64
	TrackFullCapacity          float64
	LocomotiveOverutilization  float64
	LocomotiveUnderutilization float64
}

// DefaultBottleneckThresholds returns workshop >90%/<30%, track >85%/>=95%,
// locomotive fleet >90%/<20%, per §4.H.
func DefaultBottleneckThresholds() BottleneckThresholds {
	return BottleneckThresholds{
		WorkshopOverutilization:    0.90,
		WorkshopUnderutilization:   0.30,
		TrackHighCapacity:          0.85,
		TrackFullCapacity:          0.95,
		LocomotiveOverutilization:  0.90,
		LocomotiveUnderutilization: 0.20,
	}
}

// BottleneckDetector flags resources crossing the configured thresholds. It
// tracks just enough state of its own — workshop retrofit time, latest
// track occupancy ratio, fleet-average locomotive active time — to compute
// a percentage and a flag per resource; it does not depend on the other
// collectors' internal state, so it can run with or without them registered.
type BottleneckDetector struct {
	thresholds BottleneckThresholds

	workshopRetrofitTime  map[string]float64
	workshopOpenStations  map[string]map[int]float64
	trackOccupied         map[string]float64
	trackTotal            map[string]float64
	locoSeen              map[string]bool
	locoActiveTime        map[string]float64
	locoLastStatus        map[string]domain.LocomotiveStatus
	locoLastTime          map[string]float64
	totalMinutes          float64
}

// NewBottleneckDetector builds a detector using thresholds.
func NewBottleneckDetector(thresholds BottleneckThresholds) *BottleneckDetector {
	d := &BottleneckDetector{thresholds: thresholds}
	d.Reset()
	return d
}

// HandledKinds implements Collector.
func (d *BottleneckDetector) HandledKinds() []domain.EventKind {
	return []domain.EventKind{
		domain.KindWorkshopStationOccupied,
		domain.KindWorkshopStationIdle,
		domain.KindTrackOccupancyChanged,
		domain.KindLocomotiveStatusChanged,
		domain.KindSimulationEnded,
	}
}

// Record implements Collector.
func (d *BottleneckDetector) Record(event domain.Event) {
	switch event.Kind {
	case domain.KindWorkshopStationOccupied:
		p := event.Payload.(domain.WorkshopStationPayload)
		if d.workshopOpenStations[p.WorkshopID] == nil {
			d.workshopOpenStations[p.WorkshopID] = make(map[int]float64)
		}
		d.workshopOpenStations[p.WorkshopID][p.Station] = event.Time

	case domain.KindWorkshopStationIdle:
		p := event.Payload.(domain.WorkshopStationPayload)
		if occupiedAt, ok := d.workshopOpenStations[p.WorkshopID][p.Station]; ok {
			d.workshopRetrofitTime[p.WorkshopID] += event.Time - occupiedAt
			delete(d.workshopOpenStations[p.WorkshopID], p.Station)
		}

	case domain.KindTrackOccupancyChanged:
		p := event.Payload.(domain.TrackOccupancyPayload)
		d.trackOccupied[p.TrackID] = p.Occupied
		d.trackTotal[p.TrackID] = p.Total

	case domain.KindLocomotiveStatusChanged:
		p := event.Payload.(domain.LocomotiveStatusChangedPayload)
		d.locoSeen[p.LocomotiveID] = true
		d.closeLocoInterval(p.LocomotiveID, event.Time)
		d.locoLastStatus[p.LocomotiveID] = p.Status
		d.locoLastTime[p.LocomotiveID] = event.Time

	case domain.KindSimulationEnded:
		p := event.Payload.(domain.SimulationEndedPayload)
		d.totalMinutes = p.Duration
		for locoID := range d.locoLastStatus {
			d.closeLocoInterval(locoID, event.Time)
			delete(d.locoLastStatus, locoID)
		}
	}
}

func (d *BottleneckDetector) closeLocoInterval(locoID string, at float64) {
	status, tracked := d.locoLastStatus[locoID]
	if !tracked || status == domain.LocoParking {
		return
	}
	d.locoActiveTime[locoID] += at - d.locoLastTime[locoID]
}

func classify(ratio, overOrFull, underOrHigh float64, overFlag, underFlag string) string {
	if ratio > overOrFull {
		return overFlag
	}
	if ratio < underOrHigh {
		return underFlag
	}
	return "normal"
}

// Results implements Collector.
func (d *BottleneckDetector) Results() []Result {
	var out []Result

	workshopIDs := make([]string, 0, len(d.workshopRetrofitTime))
	for id := range d.workshopRetrofitTime {
		workshopIDs = append(workshopIDs, id)
	}
	sort.Strings(workshopIDs)
	for _, id := range workshopIDs {
		ratio := 0.0
		if d.totalMinutes > 0 {
			ratio = d.workshopRetrofitTime[id] / d.totalMinutes
		}
		flag := classify(ratio, d.thresholds.WorkshopOverutilization, d.thresholds.WorkshopUnderutilization, "overutilized", "underutilized")
		out = append(out,
			Result{Category: "bottleneck", Name: fmt.Sprintf("workshop.%s.utilization", id), Value: ratio * 100, Unit: "percent"},
			Result{Category: "bottleneck", Name: fmt.Sprintf("workshop.%s.flag", id), Value: flag, Unit: "none"},
		)
	}

	trackIDs := make([]string, 0, len(d.trackOccupied))
	for id := range d.trackOccupied {
		trackIDs = append(trackIDs, id)
	}
	sort.Strings(trackIDs)
	for _, id := range trackIDs {
		ratio := 0.0
		if d.trackTotal[id] > 0 {
			ratio = d.trackOccupied[id] / d.trackTotal[id]
		}
		flag := "normal"
		if ratio >= d.thresholds.TrackFullCapacity {
			flag = "full"
		} else if ratio > d.thresholds.TrackHighCapacity {
			flag = "nearly_full"
		}
		out = append(out,
			Result{Category: "bottleneck", Name: fmt.Sprintf("track.%s.utilization", id), Value: ratio * 100, Unit: "percent"},
			Result{Category: "bottleneck", Name: fmt.Sprintf("track.%s.flag", id), Value: flag, Unit: "none"},
		)
	}

	if len(d.locoSeen) > 0 && d.totalMinutes > 0 {
		total := 0.0
		for locoID := range d.locoSeen {
			total += d.locoActiveTime[locoID] / d.totalMinutes
		}
		fleetRatio := total / float64(len(d.locoSeen))
		flag := classify(fleetRatio, d.thresholds.LocomotiveOverutilization, d.thresholds.LocomotiveUnderutilization, "overutilized", "underutilized")
		out = append(out,
			Result{Category: "bottleneck", Name: "locomotive.fleet.utilization", Value: fleetRatio * 100, Unit: "percent"},
			Result{Category: "bottleneck", Name: "locomotive.fleet.flag", Value: flag, Unit: "none"},
		)
	}

	return out
}

// Reset implements Collector.
func (d *BottleneckDetector) Reset() {
	d.workshopRetrofitTime = make(map[string]float64)
	d.workshopOpenStations = make(map[string]map[int]float64)
	d.trackOccupied = make(map[string]float64)
	d.trackTotal = make(map[string]float64)
	d.locoSeen = make(map[string]bool)
	d.locoActiveTime = make(map[string]float64)
	d.locoLastStatus = make(map[string]domain.LocomotiveStatus)
	d.locoLastTime = make(map[string]float64)
	d.totalMinutes = 0
}
