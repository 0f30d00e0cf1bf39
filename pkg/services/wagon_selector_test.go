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

func TestSelectBatchStopsBeforeExceedingMaxLength(t *testing.T) {
	sel := NewWagonSelector()
	wagons := []*domain.Wagon{
		{ID: "a", Length: 10},
		{ID: "b", Length: 10},
		{ID: "c", Length: 10},
	}

	batch, remainder := sel.SelectBatch(wagons, 25)
	assert.Len(t, batch, 2)
	assert.Len(t, remainder, 1)
	assert.Equal(t, "c", remainder[0].ID)
}

func TestSelectBatchTakesEverythingWhenItAllFits(t *testing.T) {
	sel := NewWagonSelector()
	wagons := []*domain.Wagon{{ID: "a", Length: 5}, {ID: "b", Length: 5}}

	batch, remainder := sel.SelectBatch(wagons, 100)
	assert.Len(t, batch, 2)
	assert.Empty(t, remainder)
}

func TestSelectBatchReturnsEmptyWhenFirstWagonAlreadyExceeds(t *testing.T) {
	sel := NewWagonSelector()
	wagons := []*domain.Wagon{{ID: "a", Length: 50}}

	batch, remainder := sel.SelectBatch(wagons, 10)
	assert.Empty(t, batch)
	assert.Len(t, remainder, 1)
}
