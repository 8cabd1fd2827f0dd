// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package kv defines the key/value store abstraction and its goleveldb
// implementation.
package kv

// Getter defines methods to read kvs.
type Getter interface {
	// Get returns the value for the given key. An error is returned if
	// the key is not found; check it via IsNotFound.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

// Putter defines methods to write kvs.
type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Bulk batches writes. Nothing is visible until Write commits the whole
// batch atomically.
type Bulk interface {
	Putter
	Len() int
	Write() error
}

// Iterator iterates over kv pairs.
type Iterator interface {
	Next() bool
	Key() []byte
	Value() []byte
	Release()
	Error() error
}

// Range is the key range [Start, Limit).
type Range struct {
	Start []byte
	Limit []byte
}

// Store is the full functional kv store.
type Store interface {
	Getter
	Putter

	NewBulk() Bulk
	Iterate(r Range) Iterator
	Close() error
}
