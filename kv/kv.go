// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv is the byte-level storage contract under the account database.
package kv

import "github.com/pkg/errors"

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kv: not found")

// Reader reads committed values.
type Reader interface {
	Get(key []byte) ([]byte, error)
	// Iterate calls fn for every key with the given prefix in key order
	// until fn returns false. Key and value are only valid during the call.
	Iterate(prefix []byte, fn func(key, value []byte) bool) error
}

// Writer mutates values.
type Writer interface {
	Put(key, value []byte) error
	Delete(key []byte) error
}

// Batch collects writes that Write applies atomically.
type Batch interface {
	Writer

	Len() int
	Write() error
}

// Store is read directly and written through batches.
type Store interface {
	Reader

	NewBatch() Batch
}

// Database is a Store that owns its resources.
type Database interface {
	Store
	Writer

	Close() error
}
