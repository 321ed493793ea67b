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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// testEngines is the engine matrix store-level tests run against.
var testEngines = []EngineType{EngineMemory, EngineBolt, EngineBadger, EnginePebble}

// runZSetDBTest opens a fresh DB per engine and runs test against it.
// opts may be nil for DefaultOptions; Dir and Engine are always overridden.
func runZSetDBTest(t *testing.T, opts *Options, test func(t *testing.T, db *DB)) {
	t.Helper()
	for _, engine := range testEngines {
		engine := engine
		t.Run(string(engine), func(t *testing.T) {
			opt := DefaultOptions
			if opts != nil {
				opt = *opts
			}
			opt.Dir = t.TempDir()
			opt.Engine = engine
			opt.SyncWrites = false

			db, err := Open(opt)
			require.NoError(t, err)
			defer func() {
				if err := db.Close(); err != nil && err != ErrDBClosed {
					t.Errorf("close: %v", err)
				}
			}()

			test(t, db)
		})
	}
}

func TestDB_OpenClose(t *testing.T) {
	runZSetDBTest(t, nil, func(t *testing.T, db *DB) {
		require.NoError(t, db.Close())
		require.Equal(t, ErrDBClosed, db.Close())
	})
}

func TestDB_ClosedOperations(t *testing.T) {
	runZSetDBTest(t, nil, func(t *testing.T, db *DB) {
		require.NoError(t, db.Close())

		_, err := db.ZAdd([]byte("s"), Entry{Member: []byte("a"), Score: 1})
		require.ErrorIs(t, err, ErrDBClosed)

		_, err = db.ZRange([]byte("s"), 0, -1)
		require.ErrorIs(t, err, ErrDBClosed)

		_, err = db.ZCard([]byte("s"))
		require.ErrorIs(t, err, ErrDBClosed)
	})
}

func TestDB_DirLocked(t *testing.T) {
	opt := DefaultOptions
	opt.Dir = t.TempDir()
	opt.SyncWrites = false

	db, err := Open(opt)
	require.NoError(t, err)
	defer db.Close()

	_, err = Open(opt)
	require.ErrorIs(t, err, ErrDirLocked)
}

func TestDB_CreateIfMissing(t *testing.T) {
	opt := DefaultOptions
	opt.Dir = filepath.Join(t.TempDir(), "does-not-exist")
	opt.CreateIfMissing = false

	_, err := Open(opt)
	require.ErrorIs(t, err, ErrStorageNotExist)
}

func TestDB_ReadOnly(t *testing.T) {
	dir := t.TempDir()

	opt := DefaultOptions
	opt.Dir = dir
	opt.SyncWrites = false

	db, err := Open(opt)
	require.NoError(t, err)
	_, err = db.ZAdd([]byte("s"), Entry{Member: []byte("a"), Score: 1})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	ro, err := Open(opt, WithReadOnly(true))
	require.NoError(t, err)
	defer ro.Close()

	score, ok, err := ro.ZScore([]byte("s"), []byte("a"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1.0, score)

	_, err = ro.ZAdd([]byte("s"), Entry{Member: []byte("b"), Score: 2})
	require.ErrorIs(t, err, ErrDBReadOnly)

	_, err = ro.ZRem([]byte("s"), []byte("a"))
	require.ErrorIs(t, err, ErrDBReadOnly)

	_, err = ro.ZDelete([]byte("s"))
	require.ErrorIs(t, err, ErrDBReadOnly)
}

func TestDB_Reopen(t *testing.T) {
	dir := t.TempDir()

	opt := DefaultOptions
	opt.Dir = dir
	opt.SyncWrites = false

	db, err := Open(opt)
	require.NoError(t, err)
	_, err = db.ZAdd([]byte("s"),
		Entry{Member: []byte("a"), Score: 1},
		Entry{Member: []byte("b"), Score: 2},
	)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(opt)
	require.NoError(t, err)
	defer db.Close()

	n, err := db.ZCard([]byte("s"))
	require.NoError(t, err)
	require.Equal(t, 2, n)

	got, err := db.ZRange([]byte("s"), 0, -1)
	require.NoError(t, err)
	require.Equal(t, [][]byte{[]byte("a"), []byte("b")}, got)
}

func TestDB_UnknownEngine(t *testing.T) {
	opt := DefaultOptions
	opt.Dir = t.TempDir()
	opt.Engine = EngineType("bogus")

	_, err := Open(opt)
	require.ErrorIs(t, err, ErrUnknownEngine)
}

// Concurrent readers must always observe a consistent index pair: a member
// reported by ZRange resolves through ZScore to some committed score.
func TestDB_ConcurrentReadersAndWriter(t *testing.T) {
	runZSetDBTest(t, nil, func(t *testing.T, db *DB) {
		set := []byte("concurrent")
		const members = 50

		var g errgroup.Group
		g.Go(func() error {
			for round := 0; round < 20; round++ {
				for i := 0; i < members; i++ {
					if _, err := db.ZAdd(set, Entry{
						Member: GetTestBytes(i),
						Score:  float64(round*members + i),
					}); err != nil {
						return err
					}
				}
			}
			return nil
		})
		for r := 0; r < 4; r++ {
			g.Go(func() error {
				for j := 0; j < 50; j++ {
					entries, err := db.ZRangeWithScores(set, 0, -1)
					if err != nil {
						return err
					}
					for _, e := range entries {
						if _, ok, err := db.ZScore(set, e.Member); err != nil {
							return err
						} else if !ok {
							// The member may have been legitimately removed
							// between the two calls; it never is in this
							// test, where the writer only updates.
							t.Errorf("member %q vanished", e.Member)
						}
					}
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())

		n, err := db.ZCard(set)
		require.NoError(t, err)
		require.Equal(t, members, n)
	})
}
