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
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/zsetdb/zsetdb/kv"
)

// A Namespace is a named sub-store: an isolated keyspace of sorted sets
// inside one DB, the moral equivalent of an LMDB named database. Namespace
// id 0 is the default namespace every DB-level operation runs in; named
// namespaces are assigned ids from a persisted catalog and count against
// Options.MaxNamespaces.
type Namespace struct {
	db     *DB
	name   string
	prefix []byte
}

// catalog entries live under keyPrefix|0xff|'n'; data prefixes are
// keyPrefix|id with id kept below 0xff00 so the two regions never collide.
const (
	catalogRegion = 0xff
	tagCatalog    = 'n'
	maxNSID       = 0xff00 - 1
)

func catalogPrefix(keyPrefix []byte) []byte {
	k := make([]byte, 0, len(keyPrefix)+2)
	k = append(k, keyPrefix...)
	return append(k, catalogRegion, tagCatalog)
}

func catalogKey(keyPrefix []byte, name string) []byte {
	return append(catalogPrefix(keyPrefix), name...)
}

func namespacePrefix(keyPrefix []byte, id uint16) []byte {
	k := make([]byte, 0, len(keyPrefix)+2)
	k = append(k, keyPrefix...)
	var n [2]byte
	binary.BigEndian.PutUint16(n[:], id)
	return append(k, n[:]...)
}

// loadNamespaces reads the persisted catalog so ids stay stable across
// restarts.
func (db *DB) loadNamespaces() error {
	cat := catalogPrefix(db.opt.KeyPrefix)
	return db.view(func(tx kv.Tx) error {
		cur, err := tx.Cursor(kv.PrefixRange(cat), false)
		if err != nil {
			return err
		}
		defer cur.Close()

		for ok := cur.First(); ok; ok = cur.Next() {
			name := string(cur.Key()[len(cat):])
			val := cur.Value()
			if len(val) != 2 {
				return errors.Errorf("namespace catalog entry %q: malformed id", name)
			}
			id := binary.BigEndian.Uint16(val)
			db.namespaces[name] = &Namespace{
				db:     db,
				name:   name,
				prefix: namespacePrefix(db.opt.KeyPrefix, id),
			}
			if id >= db.nextNSID {
				db.nextNSID = id + 1
			}
		}
		return nil
	})
}

// Namespace returns the named sub-store, creating and cataloging it on
// first use. Creation fails with ErrNamespaceLimit once MaxNamespaces
// distinct names exist, and with ErrDBReadOnly on a read-only DB.
func (db *DB) Namespace(name string) (*Namespace, error) {
	if name == "" {
		return nil, ErrEmptyNamespaceName
	}

	db.nsMu.Lock()
	defer db.nsMu.Unlock()

	if ns, ok := db.namespaces[name]; ok {
		return ns, nil
	}
	if len(db.namespaces) >= db.opt.MaxNamespaces || db.nextNSID > maxNSID {
		return nil, errors.Wrapf(ErrNamespaceLimit, "namespace %q (max %d)", name, db.opt.MaxNamespaces)
	}

	id := db.nextNSID
	var idVal [2]byte
	binary.BigEndian.PutUint16(idVal[:], id)

	err := db.update(func(tx kv.Tx) error {
		return tx.Put(catalogKey(db.opt.KeyPrefix, name), idVal[:])
	})
	if err != nil {
		return nil, errors.Wrapf(err, "create namespace %q", name)
	}

	db.nextNSID++
	ns := &Namespace{
		db:     db,
		name:   name,
		prefix: namespacePrefix(db.opt.KeyPrefix, id),
	}
	db.namespaces[name] = ns
	return ns, nil
}
