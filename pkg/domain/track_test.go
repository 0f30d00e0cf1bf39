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
	"github.com/stretchr/testify/require"
)

func TestTrackAtExactlyCapacity(t *testing.T) {
	track := NewTrack("t1", TrackCollection, 100)
	require.NoError(t, track.Add(100))
	assert.True(t, track.CanAdd(0))
	assert.False(t, track.CanAdd(1))
}

func TestTrackAddRejectsOverflow(t *testing.T) {
	track := NewTrack("t1", TrackCollection, 10)
	require.NoError(t, track.Add(10))
	err := track.Add(1)
	assert.Error(t, err)
	assert.Equal(t, float64(10), track.Occupied, "failed add must not mutate occupied")
}

func TestTrackRemoveRejectsUnderflow(t *testing.T) {
	track := NewTrack("t1", TrackCollection, 10)
	require.NoError(t, track.Add(5))
	err := track.Remove(6)
	assert.Error(t, err)
	assert.Equal(t, float64(5), track.Occupied)
}

func TestTrackAvailableReflectsOccupied(t *testing.T) {
	track := NewTrack("t1", TrackCollection, 100)
	require.NoError(t, track.Add(40))
	assert.Equal(t, float64(60), track.Available())
}
