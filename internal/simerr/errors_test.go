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

package simerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceFaultMessage(t *testing.T) {
	err := ResourceFault("retrofit_workflow", 12.5, "track capacity overflow")
	assert.Contains(t, err.Error(), "resource_fault")
	assert.Contains(t, err.Error(), "retrofit_workflow")
	assert.Contains(t, err.Error(), "12.50")
}

func TestIsMatchesKindThroughWrap(t *testing.T) {
	base := ResourceFault("shunting_operations", 1.0, "underflow")
	wrapped := fmt.Errorf("coordinator loop: %w", base)

	assert.True(t, Is(wrapped, KindResourceFault))
	assert.False(t, Is(wrapped, KindConfigFault))
}

func TestFatalUnwrapsToCause(t *testing.T) {
	cause := errors.New("boom")
	err := Fatal("parking", 5.0, cause)
	assert.ErrorIs(t, err, cause)
}

func TestIsReturnsFalseForPlainError(t *testing.T) {
	assert.False(t, Is(errors.New("plain"), KindFatal))
}
