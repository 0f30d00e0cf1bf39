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

package services

import "github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"

// WorkshopDistributor assigns wagons to workshops using an
// effective-availability heuristic: the workshop whose current available
// stations, minus what this distributor has already claimed for it in the
// current dispatch cycle, is greatest. Claims are tracked only locally and
// reset at the start of each cycle (Reset) — they do not model what a
// workshop's availability will look like once earlier claims actually start
// processing. This deliberately preserves the known suboptimality of
// favoring earlier workshops when effective availability ties; callers that
// need every workshop to receive at least one wagon across a whole run
// should span enough dispatch cycles for ties to resolve differently.
type WorkshopDistributor struct {
	workshops []*domain.Workshop
	claimed   map[string]int
}

// NewWorkshopDistributor builds a distributor over workshops, in the order
// ties should favor.
func NewWorkshopDistributor(workshops []*domain.Workshop) *WorkshopDistributor {
	return &WorkshopDistributor{
		workshops: workshops,
		claimed:   make(map[string]int),
	}
}

// Reset clears every workshop's claim count, starting a new dispatch cycle.
func (d *WorkshopDistributor) Reset() {
	d.claimed = make(map[string]int)
}

// Assign picks the workshop with the greatest effective availability,
// claims one slot against it, and returns its id. Returns "" if every
// workshop's effective availability is non-positive.
func (d *WorkshopDistributor) Assign() string {
	best := ""
	bestEffective := 0
	found := false
	for _, ws := range d.workshops {
		effective := ws.AvailableStations() - d.claimed[ws.ID]
		if !found || effective > bestEffective {
			best = ws.ID
			bestEffective = effective
			found = true
		}
	}
	if bestEffective <= 0 {
		return ""
	}
	d.claimed[best]++
	return best
}
