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

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectStoreReturnsImmediatelyWhenAlreadyFilled(t *testing.T) {
	e := New()
	store := e.CreateStore(0)
	e.Schedule("producer", func(p *Process) error {
		store.Put(p, "ready")
		return nil
	})

	var item any
	var timedOut bool
	e.Schedule("selector", func(p *Process) error {
		p.Delay(1)
		item, timedOut = p.SelectStore(100, store)
		return nil
	})

	require.NoError(t, e.Run(nil))
	assert.Equal(t, "ready", item)
	assert.False(t, timedOut)
}

func TestSelectStoreWinsWhenPutArrivesBeforeTimeout(t *testing.T) {
	e := New()
	store := e.CreateStore(0)
	var item any
	var timedOut bool
	var resolvedAt float64

	e.Schedule("selector", func(p *Process) error {
		item, timedOut = p.SelectStore(50, store)
		resolvedAt = p.Now()
		return nil
	})
	e.Schedule("producer", func(p *Process) error {
		p.Delay(10)
		store.Put(p, "wagon")
		return nil
	})

	require.NoError(t, e.Run(nil))
	assert.Equal(t, "wagon", item)
	assert.False(t, timedOut)
	assert.Equal(t, float64(10), resolvedAt)
}

func TestSelectStoreTimesOutWhenNothingArrives(t *testing.T) {
	e := New()
	store := e.CreateStore(0)
	var item any
	var timedOut bool
	var resolvedAt float64

	e.Schedule("selector", func(p *Process) error {
		item, timedOut = p.SelectStore(20, store)
		resolvedAt = p.Now()
		return nil
	})

	require.NoError(t, e.Run(nil))
	assert.Nil(t, item)
	assert.True(t, timedOut)
	assert.Equal(t, float64(20), resolvedAt)
}

// TestSelectStoreTimeoutDoesNotLeakIntoNextWait exercises the exact race the
// epoch-stamped wakeup mechanism exists for: a process loses an either/or
// wait to the timeout side, then starts a second, unrelated Get on the same
// store. A later Put must wake the second wait, not resolve some leftover
// registration from the first.
func TestSelectStoreTimeoutDoesNotLeakIntoNextWait(t *testing.T) {
	e := New()
	store := e.CreateStore(0)
	var firstTimedOut bool
	var secondItem any

	e.Schedule("selector", func(p *Process) error {
		_, firstTimedOut = p.SelectStore(5, store)
		secondItem = store.Get(p)
		return nil
	})
	e.Schedule("producer", func(p *Process) error {
		p.Delay(50)
		store.Put(p, "late-wagon")
		return nil
	})

	require.NoError(t, e.Run(nil))
	require.True(t, firstTimedOut)
	assert.Equal(t, "late-wagon", secondItem)
	assert.Equal(t, 0, store.Len())
}

// TestSelectStoreLosingTimeoutDoesNotDeadlockEngine verifies that a stale
// timeout wakeup, popped after the store side already won the race, is
// discarded rather than delivered to a process no longer listening on it.
func TestSelectStoreLosingTimeoutDoesNotDeadlockEngine(t *testing.T) {
	e := New()
	store := e.CreateStore(0)
	completed := false

	e.Schedule("selector", func(p *Process) error {
		_, _ = p.SelectStore(1000, store)
		p.Delay(1)
		completed = true
		return nil
	})
	e.Schedule("producer", func(p *Process) error {
		p.Delay(1)
		store.Put(p, "fast-wagon")
		return nil
	})

	require.NoError(t, e.Run(nil))
	assert.True(t, completed)
	assert.Equal(t, float64(2), e.CurrentTime())
}
