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
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNamespace_Isolation(t *testing.T) {
	set := []byte("set")

	runZSetDBTest(t, nil, func(t *testing.T, db *DB) {
		games, err := db.Namespace("games")
		require.NoError(t, err)
		chess, err := db.Namespace("chess")
		require.NoError(t, err)

		_, err = games.ZAdd(set, Entry{Member: []byte("a"), Score: 1})
		require.NoError(t, err)
		_, err = chess.ZAdd(set, Entry{Member: []byte("b"), Score: 2})
		require.NoError(t, err)
		_, err = db.ZAdd(set, Entry{Member: []byte("c"), Score: 3})
		require.NoError(t, err)

		got, err := games.ZRange(set, 0, -1)
		require.NoError(t, err)
		require.Equal(t, [][]byte{[]byte("a")}, got)

		got, err = chess.ZRange(set, 0, -1)
		require.NoError(t, err)
		require.Equal(t, [][]byte{[]byte("b")}, got)

		got, err = db.ZRange(set, 0, -1)
		require.NoError(t, err)
		require.Equal(t, [][]byte{[]byte("c")}, got)

		// deleting in one namespace leaves the others alone
		existed, err := games.ZDelete(set)
		require.NoError(t, err)
		require.True(t, existed)

		n, err := chess.ZCard(set)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})
}

func TestNamespace_SameHandle(t *testing.T) {
	runZSetDBTest(t, nil, func(t *testing.T, db *DB) {
		a, err := db.Namespace("games")
		require.NoError(t, err)
		b, err := db.Namespace("games")
		require.NoError(t, err)
		require.Same(t, a, b)
	})
}

func TestNamespace_EmptyName(t *testing.T) {
	runZSetDBTest(t, nil, func(t *testing.T, db *DB) {
		_, err := db.Namespace("")
		require.ErrorIs(t, err, ErrEmptyNamespaceName)
	})
}

func TestNamespace_Limit(t *testing.T) {
	opt := DefaultOptions
	opt.MaxNamespaces = 3

	runZSetDBTest(t, &opt, func(t *testing.T, db *DB) {
		for i := 0; i < 3; i++ {
			_, err := db.Namespace(fmt.Sprintf("ns-%d", i))
			require.NoError(t, err)
		}
		_, err := db.Namespace("one-too-many")
		require.ErrorIs(t, err, ErrNamespaceLimit)

		// existing names still resolve
		_, err = db.Namespace("ns-1")
		require.NoError(t, err)
	})
}

func TestNamespace_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	opt := DefaultOptions
	opt.Dir = dir
	opt.SyncWrites = false

	db, err := Open(opt)
	require.NoError(t, err)

	games, err := db.Namespace("games")
	require.NoError(t, err)
	_, err = games.ZAdd([]byte("s"), Entry{Member: []byte("a"), Score: 1})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(opt)
	require.NoError(t, err)
	defer db.Close()

	games, err = db.Namespace("games")
	require.NoError(t, err)

	score, ok, err := games.ZScore([]byte("s"), []byte("a"))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1.0, score)
}

func TestNamespace_ReadOnlyCannotCreate(t *testing.T) {
	dir := t.TempDir()

	opt := DefaultOptions
	opt.Dir = dir
	opt.SyncWrites = false

	db, err := Open(opt)
	require.NoError(t, err)
	_, err = db.Namespace("games")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	ro, err := Open(opt, WithReadOnly(true))
	require.NoError(t, err)
	defer ro.Close()

	// existing namespaces load from the catalog
	_, err = ro.Namespace("games")
	require.NoError(t, err)

	_, err = ro.Namespace("new-one")
	require.ErrorIs(t, err, ErrDBReadOnly)
}
