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

// Package kv defines the ordered key-value engine contract zsetdb runs on.
//
// An engine must provide snapshot-isolated transactions (single writer,
// multiple readers) and cursor iteration over lexicographically sorted keys.
// Adapters for bbolt, badger, pebble and an in-memory b-tree live in the
// sibling boltdb, badgerdb, pebbledb and memdb packages.
package kv

import "errors"

var (
	// ErrKeyNotFound is returned by Tx.Get when the key has no entry.
	ErrKeyNotFound = errors.New("kv: key not found")

	// ErrTxNotWritable is returned when a mutation is issued on a read-only transaction.
	ErrTxNotWritable = errors.New("kv: tx not writable")

	// ErrTxClosed is returned when a transaction is used after Commit or Rollback.
	ErrTxClosed = errors.New("kv: tx closed")
)

// Engine is an open storage handle.
type Engine interface {
	// Begin opens a transaction. A read-only transaction observes a fixed
	// snapshot; a writable transaction buffers mutations until Commit.
	Begin(writable bool) (Tx, error)
	Close() error
}

// Tx is a single transaction against the engine.
//
// Commit on a read-only transaction releases its snapshot and always
// succeeds; Rollback is safe to call after Commit.
type Tx interface {
	// Get returns the value stored at key, or ErrKeyNotFound.
	// The returned slice is a copy owned by the caller.
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error

	// Cursor opens a cursor over r. A forward cursor yields keys in
	// ascending order starting at r.Start; a reverse cursor yields keys in
	// descending order starting just below r.End.
	Cursor(r Range, reverse bool) (Cursor, error)

	Commit() error
	Rollback() error
}

// Cursor iterates keys within a bounded range, in one direction.
// Key and Value return copies that stay valid after the cursor advances.
type Cursor interface {
	// First positions at the first key in iteration order.
	First() bool
	// Seek positions at the first key >= key (forward) or the last
	// key <= key (reverse) that lies within the range.
	Seek(key []byte) bool
	// Next advances in iteration order.
	Next() bool
	Key() []byte
	Value() []byte
	Close() error
}

// Range is a half-open key interval [Start, End). A nil End means unbounded.
type Range struct {
	Start, End []byte
}

// PrefixRange returns the Range covering exactly the keys that begin
// with prefix.
func PrefixRange(prefix []byte) Range {
	return Range{
		Start: append([]byte(nil), prefix...),
		End:   prefixSuccessor(prefix),
	}
}

// prefixSuccessor returns the smallest key greater than every key with the
// given prefix, or nil when no such key exists (all 0xff).
func prefixSuccessor(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xff {
			end := append([]byte(nil), prefix[:i+1]...)
			end[i]++
			return end
		}
	}
	return nil
}
