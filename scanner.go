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

	"github.com/zsetdb/zsetdb/kv"
)

// rangeScanner resolves rank-based and score-based queries by cursor
// iteration over one set's score-index sub-range. It never mutates: callers
// collect what it yields and apply deletions after the cursor is closed.
type rangeScanner struct {
	tx        kv.Tx
	sub       kv.Range
	prefixLen int
}

func newRangeScanner(tx kv.Tx, prefix, set []byte) *rangeScanner {
	sub := scoreIndexPrefix(prefix, set)
	return &rangeScanner{
		tx:        tx,
		sub:       kv.PrefixRange(sub),
		prefixLen: len(sub),
	}
}

// resolveRank maps possibly-negative start/stop indices onto absolute
// positions in [0, n-1], Redis/Python-slice style: -1 is the last element.
// ok is false when the resolved interval is empty, which is not an error.
func resolveRank(start, stop, n int) (lo, hi int, ok bool) {
	if n <= 0 {
		return 0, 0, false
	}
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop < 0 {
		stop = 0
	}
	if start > n-1 {
		return 0, 0, false
	}
	if stop > n-1 {
		stop = n - 1
	}
	if start > stop {
		return 0, 0, false
	}
	return start, stop, true
}

// byRank walks the sub-range forward, skipping lo entries and yielding
// through hi inclusive. Cost is linear in hi+1.
func (rs *rangeScanner) byRank(lo, hi int, fn func(score, member []byte) error) error {
	cur, err := rs.tx.Cursor(rs.sub, false)
	if err != nil {
		return err
	}
	defer cur.Close()

	pos := 0
	for ok := cur.First(); ok; ok = cur.Next() {
		if pos > hi {
			break
		}
		if pos < lo {
			pos++
			continue
		}
		pos++
		score, member, err := splitScoreEntry(rs.prefixLen, cur.Key())
		if err != nil {
			return err
		}
		if err := fn(score, member); err != nil {
			return err
		}
	}
	return nil
}

// byScore seeks to the first entry with score >= min and yields while
// score <= max. Both bounds inclusive; the encoding makes boundary ties
// exact, no epsilon arithmetic.
func (rs *rangeScanner) byScore(min, max float64, fn func(score, member []byte) error) error {
	if min > max {
		return nil
	}
	cur, err := rs.tx.Cursor(rs.sub, false)
	if err != nil {
		return err
	}
	defer cur.Close()

	minEnc := encodeScore(min)
	maxEnc := encodeScore(max)
	seek := append(append([]byte(nil), rs.sub.Start...), minEnc[:]...)

	for ok := cur.Seek(seek); ok; ok = cur.Next() {
		score, member, err := splitScoreEntry(rs.prefixLen, cur.Key())
		if err != nil {
			return err
		}
		if bytes.Compare(score, maxEnc[:]) > 0 {
			break
		}
		if err := fn(score, member); err != nil {
			return err
		}
	}
	return nil
}

// countByScore tallies the score range without materializing entries.
func (rs *rangeScanner) countByScore(min, max float64) (int, error) {
	n := 0
	err := rs.byScore(min, max, func(_, _ []byte) error {
		n++
		return nil
	})
	return n, err
}

// extremes yields up to count entries from the low end (reverse=false) or
// the high end (reverse=true) of the sub-range, in extraction order.
func (rs *rangeScanner) extremes(count int, reverse bool, fn func(score, member []byte) error) error {
	cur, err := rs.tx.Cursor(rs.sub, reverse)
	if err != nil {
		return err
	}
	defer cur.Close()

	taken := 0
	for ok := cur.First(); ok && taken < count; ok = cur.Next() {
		score, member, err := splitScoreEntry(rs.prefixLen, cur.Key())
		if err != nil {
			return err
		}
		if err := fn(score, member); err != nil {
			return err
		}
		taken++
	}
	return nil
}

// all yields every entry of the sub-range in ascending order.
func (rs *rangeScanner) all(fn func(score, member []byte) error) error {
	cur, err := rs.tx.Cursor(rs.sub, false)
	if err != nil {
		return err
	}
	defer cur.Close()

	for ok := cur.First(); ok; ok = cur.Next() {
		score, member, err := splitScoreEntry(rs.prefixLen, cur.Key())
		if err != nil {
			return err
		}
		if err := fn(score, member); err != nil {
			return err
		}
	}
	return nil
}
