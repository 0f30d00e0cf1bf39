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

func TestNewWagonStartsInArrivedStatus(t *testing.T) {
	w := NewWagon("w1", 10, true, false, CouplerScrew, 0)
	assert.Equal(t, StatusArrived, w.Status)
}

func TestWagonStatusDAGForwardPath(t *testing.T) {
	w := NewWagon("w1", 10, true, false, CouplerScrew, 0)
	path := []WagonStatus{
		StatusOnRetrofitTrack,
		StatusMoving,
		StatusAtWorkshop,
		StatusRetrofitting,
		StatusRetrofitted,
		StatusMoving,
		StatusParking,
	}
	for _, next := range path {
		require.NoError(t, w.TransitionTo(next))
	}
	assert.Equal(t, StatusParking, w.Status)
}

func TestWagonStatusDAGRejectsBackwardTransition(t *testing.T) {
	w := NewWagon("w1", 10, true, false, CouplerScrew, 0)
	require.NoError(t, w.TransitionTo(StatusOnRetrofitTrack))
	require.NoError(t, w.TransitionTo(StatusMoving))
	err := w.TransitionTo(StatusOnRetrofitTrack)
	assert.Error(t, err)
	assert.Equal(t, StatusMoving, w.Status, "failed transition must not mutate status")
}

func TestWagonRejectSetsReasonAndStatus(t *testing.T) {
	w := NewWagon("w1", 10, true, false, CouplerScrew, 0)
	require.NoError(t, w.Reject("collection_track_full"))
	assert.Equal(t, StatusRejected, w.Status)
	assert.Equal(t, "collection_track_full", w.RejectReason)
}

func TestWagonRejectFromNonArrivedFails(t *testing.T) {
	w := NewWagon("w1", 10, true, false, CouplerScrew, 0)
	require.NoError(t, w.TransitionTo(StatusOnRetrofitTrack))
	assert.Error(t, w.Reject("too late"))
}
