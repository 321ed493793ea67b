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
	"bytes"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func finiteFloat64() gopter.Gen {
	return gen.Float64().SuchThat(func(f float64) bool {
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
}

// TestProperty_ScoreEncodingOrder checks the codec contract over random
// finite floats: byte order must match numeric order and decoding must be
// exact.
func TestProperty_ScoreEncodingOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000

	properties := gopter.NewProperties(parameters)

	properties.Property("byte order matches numeric order", prop.ForAll(
		func(a, b float64) bool {
			ea, eb := encodeScore(a), encodeScore(b)
			cmp := bytes.Compare(ea[:], eb[:])
			switch {
			case a < b:
				return cmp < 0
			case a > b:
				return cmp > 0
			default:
				return cmp == 0
			}
		},
		finiteFloat64(),
		finiteFloat64(),
	))

	properties.Property("decode inverts encode", prop.ForAll(
		func(f float64) bool {
			enc := encodeScore(f)
			return decodeScore(enc[:]) == f
		},
		finiteFloat64(),
	))

	properties.TestingRun(t)
}
