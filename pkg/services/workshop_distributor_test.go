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

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
)

func TestDistributorNeverStarvesTheSecondWorkshop(t *testing.T) {
	ws1 := domain.NewWorkshop("ws1", "track-ws1", 2)
	ws2 := domain.NewWorkshop("ws2", "track-ws2", 2)
	d := NewWorkshopDistributor([]*domain.Workshop{ws1, ws2})

	counts := map[string]int{}
	for i := 0; i < 6; i++ {
		id := d.Assign()
		if id != "" {
			counts[id]++
		}
	}

	assert.Positive(t, counts["ws1"])
	assert.Positive(t, counts["ws2"], "the second workshop must not be starved")
	assert.Equal(t, 4, counts["ws1"]+counts["ws2"])
}

func TestDistributorReturnsEmptyWhenEveryWorkshopIsFullyClaimed(t *testing.T) {
	ws1 := domain.NewWorkshop("ws1", "track-ws1", 1)
	d := NewWorkshopDistributor([]*domain.Workshop{ws1})

	assert.Equal(t, "ws1", d.Assign())
	assert.Equal(t, "", d.Assign())
}

func TestDistributorResetClearsClaims(t *testing.T) {
	ws1 := domain.NewWorkshop("ws1", "track-ws1", 1)
	d := NewWorkshopDistributor([]*domain.Workshop{ws1})

	d.Assign()
	assert.Equal(t, "", d.Assign())

	d.Reset()
	assert.Equal(t, "ws1", d.Assign())
}
