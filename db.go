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
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/gofrs/flock"
	"github.com/pkg/errors"

	"github.com/zsetdb/zsetdb/badgerdb"
	"github.com/zsetdb/zsetdb/boltdb"
	"github.com/zsetdb/zsetdb/kv"
	"github.com/zsetdb/zsetdb/memdb"
	"github.com/zsetdb/zsetdb/pebbledb"
)

const (
	dataFileName = "data.db"
	flockName    = "zsetdb-flock"
)

// DB is an open sorted-set store. It is safe for concurrent use: writers are
// serialized, readers run against engine snapshots.
type DB struct {
	mu     sync.RWMutex
	wmu    sync.Mutex
	opt    Options
	engine kv.Engine
	fl     *flock.Flock
	node   *snowflake.Node

	nsMu       sync.Mutex
	namespaces map[string]*Namespace
	nextNSID   uint16
	def        *Namespace

	closed bool
}

// Open returns a ready DB, acquiring the directory lock and the engine
// handle. Close must be called to release both.
func Open(options Options, ops ...Option) (*DB, error) {
	opt := &options
	for _, do := range ops {
		do(opt)
	}
	return open(*opt)
}

func open(opt Options) (*DB, error) {
	node, err := snowflake.NewNode(opt.NodeNum)
	if err != nil {
		return nil, err
	}

	db := &DB{
		opt:        opt,
		node:       node,
		namespaces: map[string]*Namespace{},
		nextNSID:   1,
	}

	if opt.Engine != EngineMemory {
		if err := db.prepareDir(); err != nil {
			return nil, err
		}
		if err := db.lockDir(); err != nil {
			return nil, err
		}
	}

	engine, err := db.openEngine()
	if err != nil {
		db.unlockDir()
		return nil, err
	}
	db.engine = engine
	db.def = &Namespace{db: db, name: "", prefix: namespacePrefix(opt.KeyPrefix, 0)}

	if err := db.loadNamespaces(); err != nil {
		_ = engine.Close()
		db.unlockDir()
		return nil, err
	}

	GetLogger().Printf("zsetdb opened at %s (engine=%s)", opt.Dir, db.engineType())
	return db, nil
}

func (db *DB) engineType() EngineType {
	if db.opt.Engine == "" {
		return EngineBolt
	}
	return db.opt.Engine
}

func (db *DB) prepareDir() error {
	fi, err := os.Stat(db.opt.Dir)
	switch {
	case err == nil:
		if !fi.IsDir() {
			return errors.Errorf("open dir %q: not a directory", db.opt.Dir)
		}
		return nil
	case os.IsNotExist(err):
		if !db.opt.CreateIfMissing || db.opt.ReadOnly {
			return errors.Wrapf(ErrStorageNotExist, "dir %q", db.opt.Dir)
		}
		return os.MkdirAll(db.opt.Dir, 0755)
	default:
		return err
	}
}

func (db *DB) lockDir() error {
	db.fl = flock.New(filepath.Join(db.opt.Dir, flockName))
	try := db.fl.TryLock
	if db.opt.ReadOnly {
		try = db.fl.TryRLock
	}
	ok, err := try()
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrDirLocked, "dir %q", db.opt.Dir)
	}
	return nil
}

func (db *DB) unlockDir() {
	if db.fl != nil {
		_ = db.fl.Unlock()
	}
}

func (db *DB) openEngine() (kv.Engine, error) {
	switch db.engineType() {
	case EngineBolt:
		path := filepath.Join(db.opt.Dir, dataFileName)
		if _, err := os.Stat(path); os.IsNotExist(err) && !db.opt.CreateIfMissing {
			return nil, errors.Wrapf(ErrStorageNotExist, "file %q", path)
		}
		mmap := db.opt.CapacityLimit
		if mmap > math.MaxInt32 {
			mmap = math.MaxInt32
		}
		return boltdb.Open(path, boltdb.Options{
			ReadOnly:        db.opt.ReadOnly,
			InitialMmapSize: int(mmap),
			NoSync:          !db.opt.SyncWrites,
		})
	case EngineBadger:
		return badgerdb.Open(db.opt.Dir, badgerdb.Options{
			ReadOnly:   db.opt.ReadOnly,
			SyncWrites: db.opt.SyncWrites,
		})
	case EnginePebble:
		return pebbledb.Open(db.opt.Dir, pebbledb.Options{
			ReadOnly:   db.opt.ReadOnly,
			SyncWrites: db.opt.SyncWrites,
		})
	case EngineMemory:
		return memdb.Open(), nil
	default:
		return nil, errors.Wrapf(ErrUnknownEngine, "engine %q", db.opt.Engine)
	}
}

// Close releases the engine handle and the directory lock. Further
// operations return ErrDBClosed.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrDBClosed
	}
	db.closed = true

	err := db.engine.Close()
	db.unlockDir()
	GetLogger().Printf("zsetdb closed at %s", db.opt.Dir)
	return err
}

// view runs fn inside one read-only snapshot transaction.
func (db *DB) view(fn func(tx kv.Tx) error) error {
	return db.managed(false, fn)
}

// update runs fn inside one write transaction; fn's mutations commit or
// abort as a unit.
func (db *DB) update(fn func(tx kv.Tx) error) error {
	if db.opt.ReadOnly {
		return ErrDBReadOnly
	}
	return db.managed(true, fn)
}

func (db *DB) managed(writable bool, fn func(tx kv.Tx) error) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.closed {
		return ErrDBClosed
	}

	// Badger admits concurrent write transactions and aborts on conflict;
	// a single writer at a time keeps commit behavior uniform across engines.
	if writable {
		db.wmu.Lock()
		defer db.wmu.Unlock()
	}

	tx, err := db.engine.Begin(writable)
	if err != nil {
		return err
	}
	txID := db.node.Generate()

	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			GetLogger().Printf("tx %d rollback failed: %v", txID, rerr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "tx %d commit", txID)
	}
	return nil
}
