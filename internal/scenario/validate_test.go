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

package scenario

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/internal/simerr"
)

func validScenario() *Scenario {
	return &Scenario{
		ID:          "s1",
		Tracks:      []TrackConfig{{ID: "parking", Type: "PARKING", Length: 100}},
		Locomotives: []LocomotiveConfig{{ID: "loco-1", Track: "parking"}},
	}
}

func TestValidateAcceptsAMinimalScenario(t *testing.T) {
	assert.NoError(t, Validate(validScenario()))
}

func TestValidateRejectsMissingTracks(t *testing.T) {
	s := validScenario()
	s.Tracks = nil
	err := Validate(s)
	require.Error(t, err)
	assert.True(t, simerr.Is(err, simerr.KindConfigFault))
}

func TestValidateRejectsWorkshopOnUnknownTrack(t *testing.T) {
	s := validScenario()
	s.Workshops = []WorkshopConfig{{ID: "ws1", Track: "nonexistent", RetrofitStations: 1}}
	assert.Error(t, Validate(s))
}

func TestValidateRejectsRouteThroughUnknownTrack(t *testing.T) {
	s := validScenario()
	s.Routes = []RouteConfig{{ID: "r1", TrackSequence: []string{"parking", "ghost"}}}
	assert.Error(t, Validate(s))
}
