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

// WagonSelector picks a batch of wagons for transport given a maximum
// allowed total length — typically the destination's free capacity.
type WagonSelector struct{}

// NewWagonSelector constructs a selector. It carries no state; the
// selection rule is a pure function of its inputs.
func NewWagonSelector() *WagonSelector { return &WagonSelector{} }

// SelectBatch greedily takes wagons from candidates, in order, stopping
// once the next wagon would exceed maxLength. Returns the chosen batch and
// the remainder.
func (WagonSelector) SelectBatch(candidates []*domain.Wagon, maxLength float64) (batch, remainder []*domain.Wagon) {
	var total float64
	for i, w := range candidates {
		if total+w.Length > maxLength {
			return candidates[:i], candidates[i:]
		}
		total += w.Length
	}
	return candidates, nil
}
