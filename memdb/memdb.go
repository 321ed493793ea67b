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

// Package memdb is a volatile kv.Engine backed by a copy-on-write b-tree.
//
// A read transaction pins the tree version current at Begin; a write
// transaction mutates a private copy that replaces the shared version on
// Commit. That gives the same snapshot-isolation shape as the persistent
// engines, which makes memdb the engine of choice for tests.
package memdb

import (
	"bytes"
	"sync"

	"github.com/tidwall/btree"

	"github.com/zsetdb/zsetdb/kv"
)

var _ kv.Engine = (*DB)(nil)

type item struct {
	key, val []byte
}

func lessItem(a, b item) bool {
	return bytes.Compare(a.key, b.key) < 0
}

// DB is an in-memory engine. The zero value is not usable; call Open.
type DB struct {
	mu   sync.Mutex // guards tree swap
	wmu  sync.Mutex // serializes writers
	tree *btree.BTreeG[item]
}

func Open() *DB {
	return &DB{tree: btree.NewBTreeG(lessItem)}
}

func (db *DB) Begin(writable bool) (kv.Tx, error) {
	if writable {
		db.wmu.Lock()
		return &tx{db: db, tree: db.snapshot().Copy(), writable: true}, nil
	}
	return &tx{db: db, tree: db.snapshot()}, nil
}

func (db *DB) Close() error {
	return nil
}

func (db *DB) snapshot() *btree.BTreeG[item] {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.tree
}

type tx struct {
	db       *DB
	tree     *btree.BTreeG[item]
	writable bool
	done     bool
}

func (t *tx) Get(key []byte) ([]byte, error) {
	if t.done {
		return nil, kv.ErrTxClosed
	}
	it, ok := t.tree.Get(item{key: key})
	if !ok {
		return nil, kv.ErrKeyNotFound
	}
	return append([]byte(nil), it.val...), nil
}

func (t *tx) Put(key, value []byte) error {
	if t.done {
		return kv.ErrTxClosed
	}
	if !t.writable {
		return kv.ErrTxNotWritable
	}
	t.tree.Set(item{
		key: append([]byte(nil), key...),
		val: append([]byte(nil), value...),
	})
	return nil
}

func (t *tx) Delete(key []byte) error {
	if t.done {
		return kv.ErrTxClosed
	}
	if !t.writable {
		return kv.ErrTxNotWritable
	}
	t.tree.Delete(item{key: key})
	return nil
}

func (t *tx) Cursor(r kv.Range, reverse bool) (kv.Cursor, error) {
	if t.done {
		return nil, kv.ErrTxClosed
	}
	return &cursor{tree: t.tree, r: r, reverse: reverse}, nil
}

func (t *tx) Commit() error {
	if t.done {
		return kv.ErrTxClosed
	}
	t.done = true
	if t.writable {
		t.db.mu.Lock()
		t.db.tree = t.tree
		t.db.mu.Unlock()
		t.db.wmu.Unlock()
	}
	return nil
}

func (t *tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	if t.writable {
		t.db.wmu.Unlock()
	}
	return nil
}

// cursor steps through the pinned tree one key at a time, re-seeking from
// the last yielded key. The tree version never changes under it.
type cursor struct {
	tree    *btree.BTreeG[item]
	r       kv.Range
	reverse bool
	k, v    []byte
}

func (c *cursor) First() bool {
	if !c.reverse {
		return c.ascend(c.r.Start, false)
	}
	if c.r.End == nil {
		c.k, c.v = nil, nil
		max, ok := c.tree.Max()
		if ok {
			c.k, c.v = max.key, max.val
		}
		return c.valid()
	}
	// End is exclusive, so step down past any exact match.
	return c.descend(c.r.End, true)
}

func (c *cursor) Seek(key []byte) bool {
	if c.reverse {
		return c.descend(key, false)
	}
	return c.ascend(key, false)
}

func (c *cursor) Next() bool {
	if c.k == nil {
		return false
	}
	if c.reverse {
		return c.descend(c.k, true)
	}
	return c.ascend(c.k, true)
}

func (c *cursor) ascend(pivot []byte, skipEqual bool) bool {
	c.k, c.v = nil, nil
	c.tree.Ascend(item{key: pivot}, func(it item) bool {
		if skipEqual && bytes.Equal(it.key, pivot) {
			return true
		}
		c.k, c.v = it.key, it.val
		return false
	})
	return c.valid()
}

func (c *cursor) descend(pivot []byte, skipEqual bool) bool {
	c.k, c.v = nil, nil
	c.tree.Descend(item{key: pivot}, func(it item) bool {
		if skipEqual && bytes.Equal(it.key, pivot) {
			return true
		}
		c.k, c.v = it.key, it.val
		return false
	})
	return c.valid()
}

func (c *cursor) valid() bool {
	if c.k == nil {
		return false
	}
	if bytes.Compare(c.k, c.r.Start) < 0 {
		c.k, c.v = nil, nil
		return false
	}
	if c.r.End != nil && bytes.Compare(c.k, c.r.End) >= 0 {
		c.k, c.v = nil, nil
		return false
	}
	return true
}

func (c *cursor) Key() []byte {
	if c.k == nil {
		return nil
	}
	return append([]byte(nil), c.k...)
}

func (c *cursor) Value() []byte {
	if c.k == nil {
		return nil
	}
	return append([]byte(nil), c.v...)
}

func (c *cursor) Close() error { return nil }
