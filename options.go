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

// EngineType selects the ordered key-value engine backing a DB.
type EngineType string

const (
	EngineBolt   EngineType = "bolt"
	EngineBadger EngineType = "badger"
	EnginePebble EngineType = "pebble"
	EngineMemory EngineType = "memory"
)

// Options records params for creating DB object.
type Options struct {
	// Dir is the directory holding the persisted data. Unused by the
	// memory engine.
	Dir string

	// Engine picks the storage engine. Defaults to EngineBolt.
	Engine EngineType

	// CapacityLimit is the on-disk size reservation in bytes. The bolt
	// engine maps it to the initial mmap span; other engines size
	// themselves and treat it as advisory.
	CapacityLimit int64

	// MaxNamespaces bounds the number of distinct named namespaces.
	MaxNamespaces int

	// KeyPrefix is prepended to every key for namespace isolation between
	// applications sharing one engine.
	KeyPrefix []byte

	// ReadOnly rejects all mutating operations and opens the engine
	// without write access.
	ReadOnly bool

	// CreateIfMissing initializes storage when absent. When false, opening
	// a missing directory fails with ErrStorageNotExist.
	CreateIfMissing bool

	// SyncWrites fsyncs every commit. Disable only for throwaway data.
	SyncWrites bool

	// NodeNum is the snowflake node id used for transaction ids, in [0, 1023].
	NodeNum int64
}

// DefaultOptions mirrors the storage defaults of the reference deployment:
// a 10GB reservation and up to 10 named namespaces.
var DefaultOptions = Options{
	Engine:          EngineBolt,
	CapacityLimit:   10 * 1024 * 1024 * 1024,
	MaxNamespaces:   10,
	CreateIfMissing: true,
	SyncWrites:      true,
	NodeNum:         1,
}

// Option sets one field of Options.
type Option func(*Options)

func WithDir(dir string) Option {
	return func(opt *Options) {
		opt.Dir = dir
	}
}

func WithEngine(engine EngineType) Option {
	return func(opt *Options) {
		opt.Engine = engine
	}
}

func WithCapacityLimit(limit int64) Option {
	return func(opt *Options) {
		opt.CapacityLimit = limit
	}
}

func WithMaxNamespaces(n int) Option {
	return func(opt *Options) {
		opt.MaxNamespaces = n
	}
}

func WithKeyPrefix(prefix []byte) Option {
	return func(opt *Options) {
		opt.KeyPrefix = append([]byte(nil), prefix...)
	}
}

func WithReadOnly(readonly bool) Option {
	return func(opt *Options) {
		opt.ReadOnly = readonly
	}
}

func WithCreateIfMissing(create bool) Option {
	return func(opt *Options) {
		opt.CreateIfMissing = create
	}
}

func WithSyncWrites(sync bool) Option {
	return func(opt *Options) {
		opt.SyncWrites = sync
	}
}

func WithNodeNum(num int64) Option {
	return func(opt *Options) {
		opt.NodeNum = num
	}
}
