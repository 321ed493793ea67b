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
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// scoreSize is the fixed width of an encoded score.
const scoreSize = 8

// validateScore rejects scores that have no place in a total order.
func validateScore(score float64) error {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return errors.Wrapf(ErrInvalidScore, "score %v", score)
	}
	return nil
}

// encodeScore maps a finite float64 onto 8 bytes whose unsigned
// lexicographic order matches numeric order: negative values have every bit
// complemented, non-negative values have only the sign bit flipped. Stored
// big-endian. Negative zero is normalized to positive zero so that equal
// scores encode identically.
//
// Callers must validate the score first; encodeScore assumes it is finite.
func encodeScore(score float64) [scoreSize]byte {
	if score == 0 {
		// collapse -0 into +0: the two compare equal and must encode equal
		score = math.Abs(score)
	}
	bits := math.Float64bits(score)
	if bits&(1<<63) != 0 {
		bits = ^bits
	} else {
		bits |= 1 << 63
	}
	var buf [scoreSize]byte
	binary.BigEndian.PutUint64(buf[:], bits)
	return buf
}

// decodeScore inverts encodeScore.
func decodeScore(b []byte) float64 {
	bits := binary.BigEndian.Uint64(b)
	if bits&(1<<63) != 0 {
		bits &^= 1 << 63
	} else {
		bits = ^bits
	}
	return math.Float64frombits(bits)
}
