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

package eventbus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
)

func TestPublishDeliversInRegistrationOrder(t *testing.T) {
	bus := New()
	var order []string
	bus.Subscribe(domain.KindWagonArrived, func(e domain.Event) error {
		order = append(order, "first")
		return nil
	})
	bus.Subscribe(domain.KindWagonArrived, func(e domain.Event) error {
		order = append(order, "second")
		return nil
	})

	bus.Publish(domain.NewEvent(domain.KindWagonArrived, 0, "test", nil))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestSubscriberOnlyReceivesItsOwnKind(t *testing.T) {
	bus := New()
	received := 0
	bus.Subscribe(domain.KindWagonRejected, func(e domain.Event) error {
		received++
		return nil
	})

	bus.Publish(domain.NewEvent(domain.KindWagonArrived, 0, "test", nil))
	assert.Equal(t, 0, received)
}

func TestHandlerErrorDoesNotStopOtherSubscribers(t *testing.T) {
	bus := New()
	secondRan := false
	bus.Subscribe(domain.KindWagonArrived, func(e domain.Event) error {
		return errors.New("boom")
	})
	bus.Subscribe(domain.KindWagonArrived, func(e domain.Event) error {
		secondRan = true
		return nil
	})

	bus.Publish(domain.NewEvent(domain.KindWagonArrived, 0, "test", nil))
	assert.True(t, secondRan)
	require.Len(t, bus.Errors(), 1)
}

func TestHandlerPanicIsRecoveredAsAnError(t *testing.T) {
	bus := New()
	bus.Subscribe(domain.KindWagonArrived, func(e domain.Event) error {
		panic("unexpected")
	})

	assert.NotPanics(t, func() {
		bus.Publish(domain.NewEvent(domain.KindWagonArrived, 0, "test", nil))
	})
	require.Len(t, bus.Errors(), 1)
}

func TestPublishedCountTracksByKind(t *testing.T) {
	bus := New()
	bus.Publish(domain.NewEvent(domain.KindWagonArrived, 0, "test", nil))
	bus.Publish(domain.NewEvent(domain.KindWagonArrived, 1, "test", nil))
	bus.Publish(domain.NewEvent(domain.KindWagonRejected, 2, "test", nil))

	assert.Equal(t, 2, bus.PublishedCount(domain.KindWagonArrived))
	assert.Equal(t, 1, bus.PublishedCount(domain.KindWagonRejected))
}

func TestPrePublishAndPostPublishHooksRunOncePerEvent(t *testing.T) {
	bus := New()
	preCount := 0
	postCount := 0
	bus.OnPrePublish(func(e domain.Event) { preCount++ })
	bus.OnPostPublish(func(e domain.Event) { postCount++ })

	bus.Publish(domain.NewEvent(domain.KindWagonArrived, 0, "test", nil))
	assert.Equal(t, 1, preCount)
	assert.Equal(t, 1, postCount)
}
