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

// DB-level sorted-set operations run in the default namespace. See the
// Namespace methods for semantics.

func (db *DB) ZAdd(set []byte, entries ...Entry) (int, error) {
	return db.def.ZAdd(set, entries...)
}

func (db *DB) ZRange(set []byte, start, stop int) ([][]byte, error) {
	return db.def.ZRange(set, start, stop)
}

func (db *DB) ZRangeWithScores(set []byte, start, stop int) ([]Entry, error) {
	return db.def.ZRangeWithScores(set, start, stop)
}

func (db *DB) ZRangeByScore(set []byte, min, max float64) ([][]byte, error) {
	return db.def.ZRangeByScore(set, min, max)
}

func (db *DB) ZRangeByScoreWithScores(set []byte, min, max float64) ([]Entry, error) {
	return db.def.ZRangeByScoreWithScores(set, min, max)
}

func (db *DB) ZRem(set []byte, members ...[]byte) (int, error) {
	return db.def.ZRem(set, members...)
}

func (db *DB) ZCard(set []byte) (int, error) {
	return db.def.ZCard(set)
}

func (db *DB) ZScore(set, member []byte) (float64, bool, error) {
	return db.def.ZScore(set, member)
}

func (db *DB) ZCount(set []byte, min, max float64) (int, error) {
	return db.def.ZCount(set, min, max)
}

func (db *DB) ZRemRangeByScore(set []byte, min, max float64) (int, error) {
	return db.def.ZRemRangeByScore(set, min, max)
}

func (db *DB) ZPopMin(set []byte, count int) ([]Entry, error) {
	return db.def.ZPopMin(set, count)
}

func (db *DB) ZPopMax(set []byte, count int) ([]Entry, error) {
	return db.def.ZPopMax(set, count)
}

func (db *DB) ZDelete(set []byte) (bool, error) {
	return db.def.ZDelete(set)
}
