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
)

// Key layout. Every field that can hold arbitrary bytes is length-prefixed
// with a fixed-width uint32, so set and member identifiers can never be
// confused with structure. The score sits between the set id and the member
// id: iterating one set's score-index sub-range therefore yields ascending
// score order with ascending member order breaking ties.
//
//	score index:  prefix | 's' | len32(set) | set | score8 | len32(member) | member  -> (empty)
//	member index: prefix | 'm' | len32(set) | set | len32(member) | member          -> score8
//	counter:      prefix | 'c' | len32(set) | set                                   -> uint64 BE
const (
	tagScoreIndex  = 's'
	tagMemberIndex = 'm'
	tagCounter     = 'c'

	lenSize = 4
)

var errBadKey = errors.New("malformed index key")

func appendLenPrefixed(dst, field []byte) []byte {
	var n [lenSize]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(field)))
	dst = append(dst, n[:]...)
	return append(dst, field...)
}

// scoreIndexPrefix is the common prefix of every score-index key of one set;
// it bounds all ordered scans of that set.
func scoreIndexPrefix(prefix, set []byte) []byte {
	k := make([]byte, 0, len(prefix)+1+lenSize+len(set))
	k = append(k, prefix...)
	k = append(k, tagScoreIndex)
	return appendLenPrefixed(k, set)
}

func scoreIndexKey(prefix, set []byte, score [scoreSize]byte, member []byte) []byte {
	k := make([]byte, 0, len(prefix)+1+lenSize+len(set)+scoreSize+lenSize+len(member))
	k = append(k, prefix...)
	k = append(k, tagScoreIndex)
	k = appendLenPrefixed(k, set)
	k = append(k, score[:]...)
	return appendLenPrefixed(k, member)
}

func memberIndexPrefix(prefix, set []byte) []byte {
	k := make([]byte, 0, len(prefix)+1+lenSize+len(set))
	k = append(k, prefix...)
	k = append(k, tagMemberIndex)
	return appendLenPrefixed(k, set)
}

func memberIndexKey(prefix, set, member []byte) []byte {
	k := make([]byte, 0, len(prefix)+1+lenSize+len(set)+lenSize+len(member))
	k = append(k, prefix...)
	k = append(k, tagMemberIndex)
	k = appendLenPrefixed(k, set)
	return appendLenPrefixed(k, member)
}

func counterKey(prefix, set []byte) []byte {
	k := make([]byte, 0, len(prefix)+1+lenSize+len(set))
	k = append(k, prefix...)
	k = append(k, tagCounter)
	return appendLenPrefixed(k, set)
}

// parseScoreIndexKey decodes a full score-index key back into its set id,
// encoded score and member id. The prefix and tag are validated before the
// remainder is trusted.
func parseScoreIndexKey(prefix, key []byte) (set, score, member []byte, err error) {
	rest := key
	if !bytes.HasPrefix(rest, prefix) {
		return nil, nil, nil, errors.Wrap(errBadKey, "prefix mismatch")
	}
	rest = rest[len(prefix):]
	if len(rest) < 1 || rest[0] != tagScoreIndex {
		return nil, nil, nil, errors.Wrap(errBadKey, "tag mismatch")
	}
	rest = rest[1:]

	set, rest, err = takeLenPrefixed(rest)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(rest) < scoreSize {
		return nil, nil, nil, errors.Wrap(errBadKey, "truncated score")
	}
	score, rest = rest[:scoreSize], rest[scoreSize:]

	member, rest, err = takeLenPrefixed(rest)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(rest) != 0 {
		return nil, nil, nil, errors.Wrap(errBadKey, "trailing bytes")
	}
	return set, score, member, nil
}

// splitScoreEntry is the fast path used inside a bounded scan: the sub-range
// prefix is already known, only score and member remain.
func splitScoreEntry(subPrefixLen int, key []byte) (score, member []byte, err error) {
	rest := key[subPrefixLen:]
	if len(rest) < scoreSize {
		return nil, nil, errors.Wrap(errBadKey, "truncated score")
	}
	score, rest = rest[:scoreSize], rest[scoreSize:]
	member, rest, err = takeLenPrefixed(rest)
	if err != nil {
		return nil, nil, err
	}
	if len(rest) != 0 {
		return nil, nil, errors.Wrap(errBadKey, "trailing bytes")
	}
	return score, member, nil
}

func takeLenPrefixed(b []byte) (field, rest []byte, err error) {
	if len(b) < lenSize {
		return nil, nil, errors.Wrap(errBadKey, "truncated length")
	}
	n := binary.BigEndian.Uint32(b[:lenSize])
	b = b[lenSize:]
	if uint32(len(b)) < n {
		return nil, nil, errors.Wrap(errBadKey, "truncated field")
	}
	return b[:n], b[n:], nil
}
