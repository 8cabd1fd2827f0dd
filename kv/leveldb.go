// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	dberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var (
	writeOpt = opt.WriteOptions{}
	readOpt  = opt.ReadOptions{}
	scanOpt  = opt.ReadOptions{DontFillCache: true}
)

// Options optional parameters for opening a store.
type Options struct {
	// CacheSize is the size of the read cache in MiB.
	CacheSize int
	// OpenFilesCacheCapacity is the capacity of open files caching.
	OpenFilesCacheCapacity int
}

func (o Options) ldbOptions() *opt.Options {
	cacheSize := max(o.CacheSize, 16)
	return &opt.Options{
		OpenFilesCacheCapacity: max(o.OpenFilesCacheCapacity, 16),
		BlockCacheCapacity:     cacheSize / 2 * opt.MiB,
		WriteBuffer:            cacheSize / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	}
}

type levelStore struct {
	db *leveldb.DB
}

// Open opens or creates the store at the given path.
func Open(path string, options Options) (Store, error) {
	ldbOpts := options.ldbOptions()
	db, err := leveldb.OpenFile(path, ldbOpts)
	if _, corrupted := err.(*dberrors.ErrCorrupted); corrupted {
		db, err = leveldb.RecoverFile(path, ldbOpts)
	}
	if err != nil {
		return nil, errors.Wrap(err, "open level db")
	}
	return &levelStore{db}, nil
}

// OpenMem creates an in-memory store, for tests and ephemeral runs.
func OpenMem() (Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "open mem level db")
	}
	return &levelStore{db}, nil
}

func (s *levelStore) Get(key []byte) ([]byte, error) {
	return s.db.Get(key, &readOpt)
}

func (s *levelStore) Has(key []byte) (bool, error) {
	return s.db.Has(key, &readOpt)
}

func (s *levelStore) IsNotFound(err error) bool {
	return errors.Is(err, leveldb.ErrNotFound)
}

func (s *levelStore) Put(key, val []byte) error {
	return s.db.Put(key, val, &writeOpt)
}

func (s *levelStore) Delete(key []byte) error {
	return s.db.Delete(key, &writeOpt)
}

func (s *levelStore) NewBulk() Bulk {
	return &levelBulk{s.db, &leveldb.Batch{}}
}

func (s *levelStore) Iterate(r Range) Iterator {
	return s.db.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, &scanOpt)
}

func (s *levelStore) Close() error {
	return s.db.Close()
}

type levelBulk struct {
	db    *leveldb.DB
	batch *leveldb.Batch
}

func (b *levelBulk) Put(key, val []byte) error {
	b.batch.Put(key, val)
	return nil
}

func (b *levelBulk) Delete(key []byte) error {
	b.batch.Delete(key)
	return nil
}

func (b *levelBulk) Len() int {
	return b.batch.Len()
}

func (b *levelBulk) Write() error {
	return b.db.Write(b.batch, &writeOpt)
}
