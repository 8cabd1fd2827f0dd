// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package trackerdb implements the tracker's persistence capability set on
// top of the kv store. Balances and range lists are RLP encoded, reads go
// through an LRU cache of decoded records, and a transaction scope groups
// all writes into one atomic batch.
package trackerdb

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/nixen/coldreward/kv"
	"github.com/nixen/coldreward/log"
	"github.com/nixen/coldreward/tracker"
)

const (
	balancesBucket kv.Bucket = "b"
	rangesBucket   kv.Bucket = "r"
	propsBucket    kv.Bucket = "p"

	cacheCapacity = 65536
)

var (
	checkpointKey = []byte("checkpoint")

	logger = log.WithContext("pkg", "trackerdb")
)

// Store implements tracker.Store. It is single-writer, like the tracker.
type Store struct {
	engine kv.Store

	balances *lru.Cache
	ranges   *lru.Cache

	pending *pendingWrites // non-nil while a transaction scope is open
}

type pendingWrites struct {
	balances   map[string]tracker.Amount
	ranges     map[string][]tracker.BlockHeightRange
	checkpoint *uint32
}

// New creates a store over the given kv engine. The engine's lifecycle
// stays with the caller.
func New(engine kv.Store) *Store {
	balances, _ := lru.New(cacheCapacity)
	ranges, _ := lru.New(cacheCapacity)
	return &Store{
		engine:   engine,
		balances: balances,
		ranges:   ranges,
	}
}

// Open opens or creates a tracker database at the given path. The returned
// store owns the underlying engine; release it with Close.
func Open(path string, options kv.Options) (*Store, error) {
	engine, err := kv.Open(path, options)
	if err != nil {
		return nil, err
	}
	return New(engine), nil
}

// OpenMem creates an in-memory tracker database, for tests and ephemeral runs.
func OpenMem() (*Store, error) {
	engine, err := kv.OpenMem()
	if err != nil {
		return nil, err
	}
	return New(engine), nil
}

// Close releases the underlying engine.
func (s *Store) Close() error {
	return s.engine.Close()
}

// Balance returns the tracked balance of an address, 0 if unknown.
func (s *Store) Balance(addr tracker.Address) (tracker.Amount, error) {
	key := string(addr)
	if s.pending != nil {
		if balance, ok := s.pending.balances[key]; ok {
			return balance, nil
		}
	}
	if cached, ok := s.balances.Get(key); ok {
		return cached.(tracker.Amount), nil
	}

	getter := balancesBucket.NewGetter(s.engine)
	data, err := getter.Get(addr)
	if err != nil {
		if getter.IsNotFound(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "get balance")
	}
	var balance uint64
	if err := rlp.DecodeBytes(data, &balance); err != nil {
		return 0, errors.Wrap(err, "decode balance")
	}
	s.balances.Add(key, tracker.Amount(balance))
	return tracker.Amount(balance), nil
}

// SetBalance persists the balance of an address. Balances are never
// negative by the tracker's invariant.
func (s *Store) SetBalance(addr tracker.Address, balance tracker.Amount) error {
	key := string(addr)
	if s.pending != nil {
		s.pending.balances[key] = balance
		return nil
	}
	if err := putBalance(balancesBucket.NewPutter(s.engine), addr, balance); err != nil {
		return err
	}
	s.balances.Add(key, balance)
	return nil
}

// Ranges returns the qualification ranges of an address, empty if unknown.
// The returned slice is the caller's to mutate.
func (s *Store) Ranges(addr tracker.Address) ([]tracker.BlockHeightRange, error) {
	key := string(addr)
	if s.pending != nil {
		if ranges, ok := s.pending.ranges[key]; ok {
			return copyRanges(ranges), nil
		}
	}
	if cached, ok := s.ranges.Get(key); ok {
		return copyRanges(cached.([]tracker.BlockHeightRange)), nil
	}

	getter := rangesBucket.NewGetter(s.engine)
	data, err := getter.Get(addr)
	if err != nil {
		if getter.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get ranges")
	}
	ranges, err := decodeRanges(data)
	if err != nil {
		return nil, err
	}
	s.ranges.Add(key, ranges)
	return copyRanges(ranges), nil
}

// SetRanges persists the range list of an address. An empty list is stored
// as such, not removed: a fully rolled back address keeps an explicit
// empty record.
func (s *Store) SetRanges(addr tracker.Address, ranges []tracker.BlockHeightRange) error {
	key := string(addr)
	kept := copyRanges(ranges)
	if s.pending != nil {
		s.pending.ranges[key] = kept
		return nil
	}
	if err := putRanges(rangesBucket.NewPutter(s.engine), addr, kept); err != nil {
		return err
	}
	s.ranges.Add(key, kept)
	return nil
}

// Checkpoint returns the persisted checkpoint marker, 0 if unset.
func (s *Store) Checkpoint() (uint32, error) {
	if s.pending != nil && s.pending.checkpoint != nil {
		return *s.pending.checkpoint, nil
	}
	getter := propsBucket.NewGetter(s.engine)
	data, err := getter.Get(checkpointKey)
	if err != nil {
		if getter.IsNotFound(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "get checkpoint")
	}
	if len(data) != 4 {
		return 0, errors.New("corrupted checkpoint record")
	}
	return binary.BigEndian.Uint32(data), nil
}

// SetCheckpoint advances the checkpoint marker. Values not above the
// current marker are silently ignored.
func (s *Store) SetCheckpoint(height uint32) error {
	current, err := s.Checkpoint()
	if err != nil {
		return err
	}
	if height <= current {
		return nil
	}
	if s.pending != nil {
		s.pending.checkpoint = &height
		return nil
	}
	return putCheckpoint(propsBucket.NewPutter(s.engine), height)
}

// AllRanges snapshots the range lists of every known address.
func (s *Store) AllRanges() (map[string][]tracker.BlockHeightRange, error) {
	all := make(map[string][]tracker.BlockHeightRange)

	iter := rangesBucket.NewIterator(s.engine)
	defer iter.Release()
	for iter.Next() {
		ranges, err := decodeRanges(iter.Value())
		if err != nil {
			return nil, err
		}
		all[string(iter.Key())] = ranges
	}
	if err := iter.Error(); err != nil {
		return nil, errors.Wrap(err, "iterate ranges")
	}

	if s.pending != nil {
		for key, ranges := range s.pending.ranges {
			all[key] = copyRanges(ranges)
		}
	}
	return all, nil
}

// BeginTransaction opens a mutation scope. Nesting is not supported.
func (s *Store) BeginTransaction() error {
	if s.pending != nil {
		return errors.New("transaction already open")
	}
	s.pending = &pendingWrites{
		balances: make(map[string]tracker.Amount),
		ranges:   make(map[string][]tracker.BlockHeightRange),
	}
	return nil
}

// EndTransaction writes the open scope as one atomic batch and publishes
// the written records to the read cache.
func (s *Store) EndTransaction() error {
	if s.pending == nil {
		return errors.New("no open transaction")
	}
	pending := s.pending

	bulk := s.engine.NewBulk()
	for key, balance := range pending.balances {
		if err := putBalance(balancesBucket.NewPutter(bulk), tracker.Address(key), balance); err != nil {
			return err
		}
	}
	for key, ranges := range pending.ranges {
		if err := putRanges(rangesBucket.NewPutter(bulk), tracker.Address(key), ranges); err != nil {
			return err
		}
	}
	if pending.checkpoint != nil {
		if err := putCheckpoint(propsBucket.NewPutter(bulk), *pending.checkpoint); err != nil {
			return err
		}
	}
	if err := bulk.Write(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	logger.Debug("transaction committed",
		"balances", len(pending.balances),
		"ranges", len(pending.ranges))

	for key, balance := range pending.balances {
		s.balances.Add(key, balance)
	}
	for key, ranges := range pending.ranges {
		s.ranges.Add(key, ranges)
	}
	s.pending = nil
	return nil
}

func putBalance(putter kv.Putter, addr tracker.Address, balance tracker.Amount) error {
	data, err := rlp.EncodeToBytes(uint64(balance))
	if err != nil {
		return errors.Wrap(err, "encode balance")
	}
	return putter.Put(addr, data)
}

func putRanges(putter kv.Putter, addr tracker.Address, ranges []tracker.BlockHeightRange) error {
	if ranges == nil {
		ranges = []tracker.BlockHeightRange{}
	}
	data, err := rlp.EncodeToBytes(ranges)
	if err != nil {
		return errors.Wrap(err, "encode ranges")
	}
	return putter.Put(addr, data)
}

func putCheckpoint(putter kv.Putter, height uint32) error {
	var data [4]byte
	binary.BigEndian.PutUint32(data[:], height)
	return putter.Put(checkpointKey, data[:])
}

func decodeRanges(data []byte) ([]tracker.BlockHeightRange, error) {
	var ranges []tracker.BlockHeightRange
	if err := rlp.DecodeBytes(data, &ranges); err != nil {
		return nil, errors.Wrap(err, "decode ranges")
	}
	return ranges, nil
}

func copyRanges(ranges []tracker.BlockHeightRange) []tracker.BlockHeightRange {
	if ranges == nil {
		return nil
	}
	return append([]tracker.BlockHeightRange(nil), ranges...)
}
