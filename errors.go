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

import "errors"

var (
	// ErrDBClosed is returned when an operation is issued against a closed DB.
	ErrDBClosed = errors.New("db is closed")

	// ErrDBReadOnly is returned when a mutating operation is issued against a
	// DB opened with ReadOnly.
	ErrDBReadOnly = errors.New("db is read-only")

	// ErrDirLocked is returned when another process holds the directory lock.
	ErrDirLocked = errors.New("the dir of db is locked")

	// ErrStorageNotExist is returned when CreateIfMissing is false and no
	// storage exists at the configured directory.
	ErrStorageNotExist = errors.New("storage does not exist")

	// ErrInvalidScore is returned for NaN or infinite scores; no total order
	// exists for them.
	ErrInvalidScore = errors.New("score must be a finite number")

	// ErrEmptyMember is returned when a member identifier is empty.
	ErrEmptyMember = errors.New("member must not be empty")

	// ErrInvalidCount is returned when a pop count is less than 1.
	ErrInvalidCount = errors.New("count must be >= 1")

	// ErrEmptyNamespaceName is returned when a namespace name is empty.
	ErrEmptyNamespaceName = errors.New("namespace name must not be empty")

	// ErrNamespaceLimit is returned when creating a namespace would exceed
	// MaxNamespaces.
	ErrNamespaceLimit = errors.New("namespace limit reached")

	// ErrUnknownEngine is returned for an unrecognized Options.Engine.
	ErrUnknownEngine = errors.New("unknown engine")
)

// IsDBClosed is true if the error indicates the db was closed.
func IsDBClosed(err error) bool {
	return errors.Is(err, ErrDBClosed)
}

// IsDBReadOnly is true if the error indicates a write to a read-only db.
func IsDBReadOnly(err error) bool {
	return errors.Is(err, ErrDBReadOnly)
}

// IsInvalidScore is true if the error indicates a NaN or infinite score.
func IsInvalidScore(err error) bool {
	return errors.Is(err, ErrInvalidScore)
}
