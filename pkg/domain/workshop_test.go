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

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkshopOccupyNeverExceedsStationCount(t *testing.T) {
	ws := NewWorkshop("ws1", "track-ws1", 2)
	assert.Equal(t, 2, ws.AvailableStations())

	a := ws.Occupy("wagon-a")
	b := ws.Occupy("wagon-b")
	assert.NotEqual(t, -1, a)
	assert.NotEqual(t, -1, b)
	assert.Equal(t, 0, ws.AvailableStations())

	c := ws.Occupy("wagon-c")
	assert.Equal(t, -1, c, "a third occupy must fail once both stations are taken")
}

func TestWorkshopReleaseFreesStationAndCountsCompletion(t *testing.T) {
	ws := NewWorkshop("ws1", "track-ws1", 1)
	idx := ws.Occupy("wagon-a")
	ws.Release(idx)
	assert.Equal(t, 1, ws.AvailableStations())
	assert.Equal(t, 1, ws.Stations[idx].CompletedCount)
	assert.Empty(t, ws.Stations[idx].WagonID)
}
