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
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreCodec_RoundTrip(t *testing.T) {
	for _, score := range []float64{
		0, 1, -1, 0.5, -0.5, 1.5, 123.45, -123.45,
		math.MaxFloat64, -math.MaxFloat64,
		math.SmallestNonzeroFloat64, -math.SmallestNonzeroFloat64,
		1e308, -1e308, 3.141592653589793,
	} {
		enc := encodeScore(score)
		assert.Equal(t, score, decodeScore(enc[:]), "score %v", score)
	}
}

func TestScoreCodec_Ordering(t *testing.T) {
	scores := []float64{
		-math.MaxFloat64, -1e100, -42.5, -1, -0.25,
		-math.SmallestNonzeroFloat64, 0,
		math.SmallestNonzeroFloat64, 0.25, 1, 42.5, 1e100, math.MaxFloat64,
	}
	for i := 0; i < len(scores)-1; i++ {
		a := encodeScore(scores[i])
		b := encodeScore(scores[i+1])
		assert.Negative(t, bytes.Compare(a[:], b[:]),
			"encode(%v) must sort below encode(%v)", scores[i], scores[i+1])
	}
}

func TestScoreCodec_ZeroEquality(t *testing.T) {
	pos := encodeScore(0.0)
	neg := encodeScore(math.Copysign(0, -1))
	require.Equal(t, pos, neg)
	require.Equal(t, 0.0, decodeScore(pos[:]))
}

func TestScoreCodec_SortMatchesNumericOrder(t *testing.T) {
	scores := []float64{3, -7.25, 0, 19, -0.001, 2.5, 1e9, -1e9, 0.75, 100}

	encoded := make([][]byte, len(scores))
	for i, s := range scores {
		enc := encodeScore(s)
		encoded[i] = append([]byte(nil), enc[:]...)
	}
	sort.Slice(encoded, func(i, j int) bool {
		return bytes.Compare(encoded[i], encoded[j]) < 0
	})
	sort.Float64s(scores)

	for i := range scores {
		assert.Equal(t, scores[i], decodeScore(encoded[i]))
	}
}

func TestValidateScore(t *testing.T) {
	require.NoError(t, validateScore(0))
	require.NoError(t, validateScore(-math.MaxFloat64))

	require.ErrorIs(t, validateScore(math.NaN()), ErrInvalidScore)
	require.ErrorIs(t, validateScore(math.Inf(1)), ErrInvalidScore)
	require.ErrorIs(t, validateScore(math.Inf(-1)), ErrInvalidScore)
}
