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

// Package eventbus is the in-process publish/subscribe backbone that
// broadcasts every domain event to the metrics pipeline and to any
// subscribed coordinators.
package eventbus

import (
	"fmt"

	"github.com/OpenRailAssociation/dac-migration-dss-popupsim-sub001/pkg/domain"
)

// Handler receives one published event. A handler must not panic the bus;
// panics are recovered and recorded as handler errors alongside returned
// errors.
type Handler func(event domain.Event) error

// HandlerError pairs a handler failure with the event that triggered it.
type HandlerError struct {
	Event domain.Event
	Err   error
}

func (h HandlerError) Error() string {
	return fmt.Sprintf("handler error on %s event %s: %v", h.Event.Kind, h.Event.ID, h.Err)
}

// Bus delivers events synchronously, in subscriber registration order, to
// every subscriber registered for that event's kind. A failing handler never
// prevents the remaining subscribers from receiving the event.
type Bus struct {
	subscribers map[domain.EventKind][]Handler
	errors      []HandlerError
	preHooks    []func(domain.Event)
	postHooks   []func(domain.Event)

	publishedByKind map[domain.EventKind]int
}

// New constructs an empty bus.
func New() *Bus {
	return &Bus{
		subscribers:     make(map[domain.EventKind][]Handler),
		publishedByKind: make(map[domain.EventKind]int),
	}
}

// Subscribe registers handler to receive every event of kind, in the order
// subscriptions are added.
func (b *Bus) Subscribe(kind domain.EventKind, handler Handler) {
	b.subscribers[kind] = append(b.subscribers[kind], handler)
}

// OnPrePublish registers a hook invoked before each event is delivered.
func (b *Bus) OnPrePublish(hook func(domain.Event)) { b.preHooks = append(b.preHooks, hook) }

// OnPostPublish registers a hook invoked after each event has been
// delivered to every subscriber.
func (b *Bus) OnPostPublish(hook func(domain.Event)) { b.postHooks = append(b.postHooks, hook) }

// Publish delivers event synchronously to every subscriber registered for
// its kind, in registration order. Handler panics and errors are caught and
// recorded without interrupting delivery to the remaining subscribers.
func (b *Bus) Publish(event domain.Event) {
	for _, hook := range b.preHooks {
		hook(event)
	}

	b.publishedByKind[event.Kind]++

	for _, handler := range b.subscribers[event.Kind] {
		b.dispatch(event, handler)
	}

	for _, hook := range b.postHooks {
		hook(event)
	}
}

func (b *Bus) dispatch(event domain.Event, handler Handler) {
	defer func() {
		if r := recover(); r != nil {
			b.errors = append(b.errors, HandlerError{Event: event, Err: fmt.Errorf("panic: %v", r)})
		}
	}()
	if err := handler(event); err != nil {
		b.errors = append(b.errors, HandlerError{Event: event, Err: err})
	}
}

// Errors returns every handler error recorded so far, in occurrence order.
func (b *Bus) Errors() []HandlerError { return b.errors }

// PublishedCount returns how many events of kind have been published.
func (b *Bus) PublishedCount(kind domain.EventKind) int { return b.publishedByKind[kind] }
