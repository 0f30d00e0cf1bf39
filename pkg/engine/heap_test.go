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
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWakeupHeapOrdersByTimeThenSequence(t *testing.T) {
	h := &wakeupHeap{}
	heap.Init(h)
	heap.Push(h, &wakeup{t: 10, seq: 2})
	heap.Push(h, &wakeup{t: 5, seq: 3})
	heap.Push(h, &wakeup{t: 5, seq: 1})

	first := heap.Pop(h).(*wakeup)
	second := heap.Pop(h).(*wakeup)
	third := heap.Pop(h).(*wakeup)

	assert.Equal(t, uint64(1), first.seq)
	assert.Equal(t, float64(5), first.t)
	assert.Equal(t, uint64(3), second.seq)
	assert.Equal(t, float64(10), third.t)
}

func TestWakeupHeapLenReflectsPushesAndPops(t *testing.T) {
	h := &wakeupHeap{}
	heap.Init(h)
	assert.Equal(t, 0, h.Len())
	heap.Push(h, &wakeup{t: 1, seq: 1})
	assert.Equal(t, 1, h.Len())
	heap.Pop(h)
	assert.Equal(t, 0, h.Len())
}
