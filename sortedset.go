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
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/zsetdb/zsetdb/kv"
)

// Entry pairs a member with its score. ZAdd takes entries in order, so a
// member repeated within one batch resolves to its last score.
type Entry struct {
	Member []byte
	Score  float64
}

// ZAdd adds the given members to the sorted set, or updates their scores.
// The whole batch commits or aborts as a unit. The returned count includes
// only members that were newly added, not score updates.
func (ns *Namespace) ZAdd(set []byte, entries ...Entry) (int, error) {
	for _, e := range entries {
		if len(e.Member) == 0 {
			return 0, errors.Wrapf(ErrEmptyMember, "zadd: set %q", set)
		}
		if err := validateScore(e.Score); err != nil {
			return 0, errors.Wrapf(err, "zadd: set %q member %q", set, e.Member)
		}
	}

	added := 0
	err := ns.db.update(func(tx kv.Tx) error {
		for _, e := range entries {
			enc := encodeScore(e.Score)
			mk := memberIndexKey(ns.prefix, set, e.Member)

			old, err := tx.Get(mk)
			switch {
			case err == nil:
				if bytes.Equal(old, enc[:]) {
					continue
				}
				// Score change: drop the stale score-index entry located
				// via the member index, then write the fresh pair.
				var stale [scoreSize]byte
				copy(stale[:], old)
				if err := tx.Delete(scoreIndexKey(ns.prefix, set, stale, e.Member)); err != nil {
					return err
				}
				if err := tx.Put(scoreIndexKey(ns.prefix, set, enc, e.Member), nil); err != nil {
					return err
				}
				if err := tx.Put(mk, enc[:]); err != nil {
					return err
				}
			case errors.Is(err, kv.ErrKeyNotFound):
				if err := tx.Put(scoreIndexKey(ns.prefix, set, enc, e.Member), nil); err != nil {
					return err
				}
				if err := tx.Put(mk, enc[:]); err != nil {
					return err
				}
				if err := ns.incrCounter(tx, set, 1); err != nil {
					return err
				}
				added++
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "zadd: set %q", set)
	}
	return added, nil
}

// ZRange returns the members ranked start through stop inclusive, in
// ascending score order. Negative indices count from the end, -1 being the
// last member.
func (ns *Namespace) ZRange(set []byte, start, stop int) ([][]byte, error) {
	entries, err := ns.ZRangeWithScores(set, start, stop)
	if err != nil {
		return nil, err
	}
	return members(entries), nil
}

// ZRangeWithScores is ZRange with each member paired with its score.
func (ns *Namespace) ZRangeWithScores(set []byte, start, stop int) ([]Entry, error) {
	var out []Entry
	err := ns.db.view(func(tx kv.Tx) error {
		n, err := ns.counter(tx, set)
		if err != nil {
			return err
		}
		lo, hi, ok := resolveRank(start, stop, n)
		if !ok {
			return nil
		}
		out = make([]Entry, 0, hi-lo+1)
		return newRangeScanner(tx, ns.prefix, set).byRank(lo, hi, func(score, member []byte) error {
			out = append(out, Entry{Member: member, Score: decodeScore(score)})
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrapf(err, "zrange: set %q", set)
	}
	return out, nil
}

// ZRangeByScore returns the members whose score lies in [min, max],
// ascending. Bounds are inclusive.
func (ns *Namespace) ZRangeByScore(set []byte, min, max float64) ([][]byte, error) {
	entries, err := ns.ZRangeByScoreWithScores(set, min, max)
	if err != nil {
		return nil, err
	}
	return members(entries), nil
}

// ZRangeByScoreWithScores is ZRangeByScore with each member paired with its
// score.
func (ns *Namespace) ZRangeByScoreWithScores(set []byte, min, max float64) ([]Entry, error) {
	if err := validateScoreBounds(min, max); err != nil {
		return nil, errors.Wrapf(err, "zrangebyscore: set %q", set)
	}
	var out []Entry
	err := ns.db.view(func(tx kv.Tx) error {
		return newRangeScanner(tx, ns.prefix, set).byScore(min, max, func(score, member []byte) error {
			out = append(out, Entry{Member: member, Score: decodeScore(score)})
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrapf(err, "zrangebyscore: set %q", set)
	}
	return out, nil
}

// ZRem removes the given members. Absent members are skipped, not errors;
// the returned count covers only members actually removed.
func (ns *Namespace) ZRem(set []byte, members ...[]byte) (int, error) {
	removed := 0
	err := ns.db.update(func(tx kv.Tx) error {
		for _, member := range members {
			if len(member) == 0 {
				continue
			}
			n, err := ns.removeMember(tx, set, member)
			if err != nil {
				return err
			}
			removed += n
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "zrem: set %q", set)
	}
	return removed, nil
}

// ZCard returns the number of members in the set, 0 if the set has never
// existed.
func (ns *Namespace) ZCard(set []byte) (int, error) {
	var n int
	err := ns.db.view(func(tx kv.Tx) error {
		var err error
		n, err = ns.counter(tx, set)
		return err
	})
	if err != nil {
		return 0, errors.Wrapf(err, "zcard: set %q", set)
	}
	return n, nil
}

// ZScore returns the member's score. The second return is false when the
// member is not in the set; that is not an error.
func (ns *Namespace) ZScore(set, member []byte) (float64, bool, error) {
	var (
		score float64
		found bool
	)
	err := ns.db.view(func(tx kv.Tx) error {
		v, err := tx.Get(memberIndexKey(ns.prefix, set, member))
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		score = decodeScore(v)
		found = true
		return nil
	})
	if err != nil {
		return 0, false, errors.Wrapf(err, "zscore: set %q member %q", set, member)
	}
	return score, found, nil
}

// ZCount returns the number of members with score in [min, max].
func (ns *Namespace) ZCount(set []byte, min, max float64) (int, error) {
	if err := validateScoreBounds(min, max); err != nil {
		return 0, errors.Wrapf(err, "zcount: set %q", set)
	}
	var n int
	err := ns.db.view(func(tx kv.Tx) error {
		var err error
		n, err = newRangeScanner(tx, ns.prefix, set).countByScore(min, max)
		return err
	})
	if err != nil {
		return 0, errors.Wrapf(err, "zcount: set %q", set)
	}
	return n, nil
}

// ZRemRangeByScore removes every member with score in [min, max] and
// returns how many were removed.
func (ns *Namespace) ZRemRangeByScore(set []byte, min, max float64) (int, error) {
	if err := validateScoreBounds(min, max); err != nil {
		return 0, errors.Wrapf(err, "zremrangebyscore: set %q", set)
	}
	removed := 0
	err := ns.db.update(func(tx kv.Tx) error {
		matched, err := collect(newRangeScanner(tx, ns.prefix, set), min, max)
		if err != nil {
			return err
		}
		for _, e := range matched {
			if err := ns.deletePair(tx, set, e.score, e.member); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "zremrangebyscore: set %q", set)
	}
	return removed, nil
}

// ZPopMin removes and returns up to count members with the lowest scores,
// ascending. Fewer than count members is not an error.
func (ns *Namespace) ZPopMin(set []byte, count int) ([]Entry, error) {
	return ns.pop(set, count, false)
}

// ZPopMax removes and returns up to count members with the highest scores,
// descending.
func (ns *Namespace) ZPopMax(set []byte, count int) ([]Entry, error) {
	return ns.pop(set, count, true)
}

func (ns *Namespace) pop(set []byte, count int, reverse bool) ([]Entry, error) {
	op := "zpopmin"
	if reverse {
		op = "zpopmax"
	}
	if count < 1 {
		return nil, errors.Wrapf(ErrInvalidCount, "%s: set %q count %d", op, set, count)
	}

	var out []Entry
	err := ns.db.update(func(tx kv.Tx) error {
		var popped []rawEntry
		rs := newRangeScanner(tx, ns.prefix, set)
		err := rs.extremes(count, reverse, func(score, member []byte) error {
			popped = append(popped, rawEntry{score: append([]byte(nil), score...), member: member})
			return nil
		})
		if err != nil {
			return err
		}
		for _, e := range popped {
			if err := ns.deletePair(tx, set, e.score, e.member); err != nil {
				return err
			}
			out = append(out, Entry{Member: e.member, Score: decodeScore(e.score)})
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "%s: set %q", op, set)
	}
	return out, nil
}

// ZDelete removes the whole sorted set: every index entry plus the counter.
// It reports whether the set existed.
func (ns *Namespace) ZDelete(set []byte) (bool, error) {
	existed := false
	err := ns.db.update(func(tx kv.Tx) error {
		var matched []rawEntry
		err := newRangeScanner(tx, ns.prefix, set).all(func(score, member []byte) error {
			matched = append(matched, rawEntry{score: append([]byte(nil), score...), member: member})
			return nil
		})
		if err != nil {
			return err
		}
		for _, e := range matched {
			var enc [scoreSize]byte
			copy(enc[:], e.score)
			if err := tx.Delete(scoreIndexKey(ns.prefix, set, enc, e.member)); err != nil {
				return err
			}
			if err := tx.Delete(memberIndexKey(ns.prefix, set, e.member)); err != nil {
				return err
			}
			existed = true
		}
		if err := tx.Delete(counterKey(ns.prefix, set)); err != nil && !errors.Is(err, kv.ErrKeyNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return false, errors.Wrapf(err, "zdelete: set %q", set)
	}
	return existed, nil
}

type rawEntry struct {
	score  []byte
	member []byte
}

func collect(rs *rangeScanner, min, max float64) ([]rawEntry, error) {
	var out []rawEntry
	err := rs.byScore(min, max, func(score, member []byte) error {
		out = append(out, rawEntry{score: append([]byte(nil), score...), member: member})
		return nil
	})
	return out, err
}

// removeMember deletes one member's index pair and decrements the counter.
// Returns 1 when the member was present.
func (ns *Namespace) removeMember(tx kv.Tx, set, member []byte) (int, error) {
	mk := memberIndexKey(ns.prefix, set, member)
	old, err := tx.Get(mk)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if err := ns.deletePair(tx, set, old, member); err != nil {
		return 0, err
	}
	return 1, nil
}

// deletePair removes both index entries of one member and decrements the
// counter. score is the member's current encoded score.
func (ns *Namespace) deletePair(tx kv.Tx, set, score, member []byte) error {
	var enc [scoreSize]byte
	copy(enc[:], score)
	if err := tx.Delete(scoreIndexKey(ns.prefix, set, enc, member)); err != nil {
		return err
	}
	if err := tx.Delete(memberIndexKey(ns.prefix, set, member)); err != nil {
		return err
	}
	return ns.incrCounter(tx, set, -1)
}

// counter reads the maintained cardinality counter, 0 when absent.
func (ns *Namespace) counter(tx kv.Tx, set []byte) (int, error) {
	v, err := tx.Get(counterKey(ns.prefix, set))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(v) != 8 {
		return 0, errors.Errorf("set %q: malformed counter", set)
	}
	return int(binary.BigEndian.Uint64(v)), nil
}

// incrCounter adjusts the counter in the same transaction as the index
// mutation it accounts for. The record is dropped at zero so an emptied set
// leaves no trace in the keyspace.
func (ns *Namespace) incrCounter(tx kv.Tx, set []byte, delta int) error {
	n, err := ns.counter(tx, set)
	if err != nil {
		return err
	}
	n += delta
	ck := counterKey(ns.prefix, set)
	if n <= 0 {
		err := tx.Delete(ck)
		if errors.Is(err, kv.ErrKeyNotFound) {
			return nil
		}
		return err
	}
	var v [8]byte
	binary.BigEndian.PutUint64(v[:], uint64(n))
	return tx.Put(ck, v[:])
}

func validateScoreBounds(min, max float64) error {
	if err := validateScore(min); err != nil {
		return err
	}
	return validateScore(max)
}

func members(entries []Entry) [][]byte {
	out := make([][]byte, len(entries))
	for i, e := range entries {
		out[i] = e.Member
	}
	return out
}
