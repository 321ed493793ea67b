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

// Package boltdb adapts go.etcd.io/bbolt to the kv.Engine contract.
// It is the default engine: a single-file B+tree with one writer, many
// readers and native bidirectional cursors.
package boltdb

import (
	"bytes"

	"go.etcd.io/bbolt"

	"github.com/zsetdb/zsetdb/kv"
)

var (
	_ kv.Engine = (*DB)(nil)

	dataBucket = []byte("zset")
)

// Options tune the underlying bbolt database.
type Options struct {
	// ReadOnly opens the file without write access.
	ReadOnly bool
	// InitialMmapSize reserves the initial mmap span, mirroring an
	// LMDB-style map size. Zero means bbolt's default growth.
	InitialMmapSize int
	// NoSync skips fsync on commit. Unsafe outside tests.
	NoSync bool
}

// DB wraps a bbolt database.
type DB struct {
	db *bbolt.DB
}

// Open opens or creates the database file at path.
func Open(path string, opt Options) (*DB, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		ReadOnly:        opt.ReadOnly,
		InitialMmapSize: opt.InitialMmapSize,
	})
	if err != nil {
		return nil, err
	}
	db.NoSync = opt.NoSync

	if !opt.ReadOnly {
		if err := db.Update(func(tx *bbolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(dataBucket)
			return err
		}); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return &DB{db}, nil
}

func (b *DB) Begin(writable bool) (kv.Tx, error) {
	btx, err := b.db.Begin(writable)
	if err != nil {
		return nil, err
	}
	return &tx{tx: btx, bucket: btx.Bucket(dataBucket), writable: writable}, nil
}

func (b *DB) Close() error {
	return b.db.Close()
}

type tx struct {
	tx       *bbolt.Tx
	bucket   *bbolt.Bucket
	writable bool
	done     bool
}

func (t *tx) Get(key []byte) ([]byte, error) {
	if t.done {
		return nil, kv.ErrTxClosed
	}
	if t.bucket == nil {
		return nil, kv.ErrKeyNotFound
	}
	v := t.bucket.Get(key)
	if v == nil {
		return nil, kv.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (t *tx) Put(key, value []byte) error {
	if t.done {
		return kv.ErrTxClosed
	}
	if !t.writable {
		return kv.ErrTxNotWritable
	}
	return t.bucket.Put(key, value)
}

func (t *tx) Delete(key []byte) error {
	if t.done {
		return kv.ErrTxClosed
	}
	if !t.writable {
		return kv.ErrTxNotWritable
	}
	return t.bucket.Delete(key)
}

func (t *tx) Cursor(r kv.Range, reverse bool) (kv.Cursor, error) {
	if t.done {
		return nil, kv.ErrTxClosed
	}
	if t.bucket == nil {
		return &cursor{}, nil
	}
	return &cursor{c: t.bucket.Cursor(), r: r, reverse: reverse}, nil
}

func (t *tx) Commit() error {
	if t.done {
		return kv.ErrTxClosed
	}
	t.done = true
	if !t.writable {
		return t.tx.Rollback()
	}
	return t.tx.Commit()
}

func (t *tx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.tx.Rollback()
}

type cursor struct {
	c       *bbolt.Cursor
	r       kv.Range
	reverse bool
	k, v    []byte
}

func (c *cursor) First() bool {
	if c.c == nil {
		return false
	}
	if !c.reverse {
		c.k, c.v = c.c.Seek(c.r.Start)
		return c.valid()
	}
	if c.r.End == nil {
		c.k, c.v = c.c.Last()
		return c.valid()
	}
	// Position at the last key below the exclusive upper bound.
	if k, _ := c.c.Seek(c.r.End); k == nil {
		c.k, c.v = c.c.Last()
	} else {
		c.k, c.v = c.c.Prev()
	}
	return c.valid()
}

func (c *cursor) Seek(key []byte) bool {
	if c.c == nil {
		return false
	}
	k, v := c.c.Seek(key)
	if !c.reverse {
		c.k, c.v = k, v
		return c.valid()
	}
	if k == nil {
		c.k, c.v = c.c.Last()
	} else if !bytes.Equal(k, key) {
		c.k, c.v = c.c.Prev()
	} else {
		c.k, c.v = k, v
	}
	return c.valid()
}

func (c *cursor) Next() bool {
	if c.c == nil || c.k == nil {
		return false
	}
	if c.reverse {
		c.k, c.v = c.c.Prev()
	} else {
		c.k, c.v = c.c.Next()
	}
	return c.valid()
}

func (c *cursor) valid() bool {
	if c.k == nil {
		return false
	}
	if c.reverse {
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
