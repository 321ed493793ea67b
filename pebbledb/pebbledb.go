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

// Package pebbledb adapts cockroachdb/pebble to the kv.Engine contract.
// Read transactions are pebble snapshots; write transactions are indexed
// batches, so reads inside a write transaction observe its own mutations.
package pebbledb

import (
	"bytes"

	"github.com/cockroachdb/pebble"

	"github.com/zsetdb/zsetdb/kv"
)

var _ kv.Engine = (*DB)(nil)

// Options tune the underlying pebble database.
type Options struct {
	ReadOnly   bool
	SyncWrites bool
}

// DB wraps a pebble database.
type DB struct {
	db   *pebble.DB
	wopt *pebble.WriteOptions
}

// Open opens or creates the pebble database rooted at dir.
func Open(dir string, opt Options) (*DB, error) {
	db, err := pebble.Open(dir, &pebble.Options{ReadOnly: opt.ReadOnly})
	if err != nil {
		return nil, err
	}
	wopt := pebble.NoSync
	if opt.SyncWrites {
		wopt = pebble.Sync
	}
	return &DB{db: db, wopt: wopt}, nil
}

func (p *DB) Begin(writable bool) (kv.Tx, error) {
	if writable {
		return &writeTx{b: p.db.NewIndexedBatch(), wopt: p.wopt}, nil
	}
	return &readTx{s: p.db.NewSnapshot()}, nil
}

func (p *DB) Close() error {
	return p.db.Close()
}

type readTx struct {
	s    *pebble.Snapshot
	done bool
}

func (t *readTx) Get(key []byte) ([]byte, error) {
	if t.done {
		return nil, kv.ErrTxClosed
	}
	return pebbleGet(t.s.Get(key))
}

func (t *readTx) Put(key, value []byte) error {
	if t.done {
		return kv.ErrTxClosed
	}
	return kv.ErrTxNotWritable
}

func (t *readTx) Delete(key []byte) error {
	if t.done {
		return kv.ErrTxClosed
	}
	return kv.ErrTxNotWritable
}

func (t *readTx) Cursor(r kv.Range, reverse bool) (kv.Cursor, error) {
	if t.done {
		return nil, kv.ErrTxClosed
	}
	it, err := t.s.NewIter(iterOptions(r))
	if err != nil {
		return nil, err
	}
	return &cursor{it: it, reverse: reverse}, nil
}

func (t *readTx) Commit() error {
	if t.done {
		return kv.ErrTxClosed
	}
	t.done = true
	return t.s.Close()
}

func (t *readTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.s.Close()
}

type writeTx struct {
	b    *pebble.Batch
	wopt *pebble.WriteOptions
	done bool
}

func (t *writeTx) Get(key []byte) ([]byte, error) {
	if t.done {
		return nil, kv.ErrTxClosed
	}
	return pebbleGet(t.b.Get(key))
}

func (t *writeTx) Put(key, value []byte) error {
	if t.done {
		return kv.ErrTxClosed
	}
	return t.b.Set(key, value, nil)
}

func (t *writeTx) Delete(key []byte) error {
	if t.done {
		return kv.ErrTxClosed
	}
	return t.b.Delete(key, nil)
}

func (t *writeTx) Cursor(r kv.Range, reverse bool) (kv.Cursor, error) {
	if t.done {
		return nil, kv.ErrTxClosed
	}
	it, err := t.b.NewIter(iterOptions(r))
	if err != nil {
		return nil, err
	}
	return &cursor{it: it, reverse: reverse}, nil
}

func (t *writeTx) Commit() error {
	if t.done {
		return kv.ErrTxClosed
	}
	t.done = true
	if err := t.b.Commit(t.wopt); err != nil {
		_ = t.b.Close()
		return err
	}
	return t.b.Close()
}

func (t *writeTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.b.Close()
}

func iterOptions(r kv.Range) *pebble.IterOptions {
	return &pebble.IterOptions{LowerBound: r.Start, UpperBound: r.End}
}

func pebbleGet(v []byte, closer interface{ Close() error }, err error) ([]byte, error) {
	if err == pebble.ErrNotFound {
		return nil, kv.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	out := append([]byte(nil), v...)
	if cerr := closer.Close(); cerr != nil {
		return nil, cerr
	}
	return out, nil
}

// cursor is a direction-fixed view over a bounded pebble iterator.
type cursor struct {
	it      *pebble.Iterator
	reverse bool
}

func (c *cursor) First() bool {
	if c.reverse {
		return c.it.Last()
	}
	return c.it.First()
}

func (c *cursor) Seek(key []byte) bool {
	if !c.reverse {
		return c.it.SeekGE(key)
	}
	if c.it.SeekGE(key) && bytes.Equal(c.it.Key(), key) {
		return true
	}
	return c.it.SeekLT(key)
}

func (c *cursor) Next() bool {
	if c.reverse {
		return c.it.Prev()
	}
	return c.it.Next()
}

func (c *cursor) Key() []byte {
	if !c.it.Valid() {
		return nil
	}
	return append([]byte(nil), c.it.Key()...)
}

func (c *cursor) Value() []byte {
	if !c.it.Valid() {
		return nil
	}
	return append([]byte(nil), c.it.Value()...)
}

func (c *cursor) Close() error {
	return c.it.Close()
}
