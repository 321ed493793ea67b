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

// Package badgerdb adapts dgraph-io/badger to the kv.Engine contract.
package badgerdb

import (
	"bytes"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/zsetdb/zsetdb/kv"
)

var _ kv.Engine = (*DB)(nil)

// Options tune the underlying badger database.
type Options struct {
	ReadOnly   bool
	SyncWrites bool
}

// DB wraps a badger database.
type DB struct {
	db *badger.DB
}

// Open opens or creates the badger database rooted at dir.
func Open(dir string, opt Options) (*DB, error) {
	bopt := badger.DefaultOptions(dir).
		WithReadOnly(opt.ReadOnly).
		WithSyncWrites(opt.SyncWrites).
		WithLogger(nil)
	db, err := badger.Open(bopt)
	if err != nil {
		return nil, err
	}
	return &DB{db}, nil
}

func (b *DB) Begin(writable bool) (kv.Tx, error) {
	return &tx{txn: b.db.NewTransaction(writable), writable: writable}, nil
}

func (b *DB) Close() error {
	return b.db.Close()
}

type tx struct {
	txn      *badger.Txn
	writable bool
	done     bool
}

func (t *tx) Get(key []byte) ([]byte, error) {
	if t.done {
		return nil, kv.ErrTxClosed
	}
	it, err := t.txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, kv.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return it.ValueCopy(nil)
}

func (t *tx) Put(key, value []byte) error {
	if t.done {
		return kv.ErrTxClosed
	}
	if !t.writable {
		return kv.ErrTxNotWritable
	}
	return t.txn.Set(append([]byte(nil), key...), append([]byte(nil), value...))
}

func (t *tx) Delete(key []byte) error {
	if t.done {
		return kv.ErrTxClosed
	}
	if !t.writable {
		return kv.ErrTxNotWritable
	}
	return t.txn.Delete(append([]byte(nil), key...))
}

func (t *tx) Cursor(r kv.Range, reverse bool) (kv.Cursor, error) {
	if t.done {
		return nil, kv.ErrTxClosed
	}
	opts := badger.DefaultIteratorOptions
	opts.Reverse = reverse
	return &cursor{it: t.txn.NewIterator(opts), r: r, reverse: reverse}, nil
}

func (t *tx) Commit() error {
	if t.done {
		return kv.ErrTxClosed
	}
	t.done = true
	if !t.writable {
		t.txn.Discard()
		return nil
	}
	return t.txn.Commit()
}

func (t *tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.txn.Discard()
	return nil
}

type cursor struct {
	it      *badger.Iterator
	r       kv.Range
	reverse bool
}

func (c *cursor) First() bool {
	if !c.reverse {
		c.it.Seek(c.r.Start)
		return c.valid()
	}
	if c.r.End == nil {
		c.it.Rewind()
		return c.valid()
	}
	// Reverse Seek lands on the largest key <= End; End itself is exclusive.
	c.it.Seek(c.r.End)
	if c.it.Valid() && bytes.Equal(c.it.Item().Key(), c.r.End) {
		c.it.Next()
	}
	return c.valid()
}

func (c *cursor) Seek(key []byte) bool {
	c.it.Seek(key)
	return c.valid()
}

func (c *cursor) Next() bool {
	if !c.it.Valid() {
		return false
	}
	c.it.Next()
	return c.valid()
}

func (c *cursor) valid() bool {
	if !c.it.Valid() {
		return false
	}
	k := c.it.Item().Key()
	if bytes.Compare(k, c.r.Start) < 0 {
		return false
	}
	if c.r.End != nil && bytes.Compare(k, c.r.End) >= 0 {
		if c.reverse {
			// Reverse iteration may start above the bound; skip down into range.
			for c.it.Valid() && bytes.Compare(c.it.Item().Key(), c.r.End) >= 0 {
				c.it.Next()
			}
			return c.it.Valid() && bytes.Compare(c.it.Item().Key(), c.r.Start) >= 0
		}
		return false
	}
	return true
}

func (c *cursor) Key() []byte {
	if !c.it.Valid() {
		return nil
	}
	return c.it.Item().KeyCopy(nil)
}

func (c *cursor) Value() []byte {
	if !c.it.Valid() {
		return nil
	}
	v, err := c.it.Item().ValueCopy(nil)
	if err != nil {
		return nil
	}
	return v
}

func (c *cursor) Close() error {
	c.it.Close()
	return nil
}
