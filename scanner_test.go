// Copyright 2026 The zsetdb Authors. All rights reserved.
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

package zsetdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveRank(t *testing.T) {
	tests := []struct {
		name        string
		start, stop int
		n           int
		lo, hi      int
		ok          bool
	}{
		{"full range", 0, -1, 5, 0, 4, true},
		{"single first", 0, 0, 5, 0, 0, true},
		{"single last", -1, -1, 5, 4, 4, true},
		{"middle", 1, 3, 5, 1, 3, true},
		{"negative pair", -3, -2, 5, 2, 3, true},
		{"stop past end clamps", 2, 100, 5, 2, 4, true},
		{"start before begin clamps", -100, 2, 5, 0, 2, true},
		{"both clamp", -100, 100, 5, 0, 4, true},
		{"crossed bounds", 3, 1, 5, 0, 0, false},
		{"crossed after mapping", -1, 0, 5, 0, 0, false},
		{"start past end", 5, 7, 5, 0, 0, false},
		{"empty set", 0, -1, 0, 0, 0, false},
		{"single element set", 0, -1, 1, 0, 0, true},
		{"deep negative stop clamps", 0, -10, 5, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi, ok := resolveRank(tt.start, tt.stop, tt.n)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.lo, lo)
				assert.Equal(t, tt.hi, hi)
			}
		})
	}
}
