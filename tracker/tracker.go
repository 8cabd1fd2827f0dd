// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package tracker maintains the ledger-state index behind cold-staking
// rewards. It digests per-address balance deltas tagged with block heights,
// keeps a compact list of qualification ranges per address, and answers at
// reward heights which addresses held the qualifying balance across the last
// full reward window, and at what multiplier.
//
// The tracker is single-writer. It owns no storage of its own; all state
// lives behind the injected Store.
package tracker

import (
	"encoding/hex"
	"sort"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidArgument marks a mutation or query rejected by a precondition.
// A rejected call leaves persisted state untouched.
var ErrInvalidArgument = errors.New("invalid argument")

// Amount is a balance or balance delta in base units.
type Amount int64

// Address identifies an account. It is an opaque byte sequence, compared
// and hashed as raw bytes.
type Address []byte

// String implements the stringer interface.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a)
}

// Eligibility pairs an address with the reward multiplier it earned.
type Eligibility struct {
	Address    Address
	Multiplier uint32
}

// Tracker is the cold reward tracker.
type Tracker struct {
	store Store
}

// New creates a tracker over the given store.
func New(store Store) *Tracker {
	return &Tracker{store: store}
}

// StartTransaction opens a mutation scope on the underlying store.
// Every Apply and Rollback must happen inside exactly one scope.
func (t *Tracker) StartTransaction() error {
	return t.store.BeginTransaction()
}

// EndTransaction commits the open mutation scope.
func (t *Tracker) EndTransaction() error {
	return t.store.EndTransaction()
}

// Apply folds a signed balance delta at the given block height into the
// address's tracked state.
//
// The mutation is rejected with ErrInvalidArgument when it would drive the
// balance negative, or when checkpoints is non-empty and height is not past
// the last checkpoint at or below it.
//
// A successful apply advances the store's checkpoint marker to the last
// checkpoint at or below height, which is what arms the rollback gate.
func (t *Tracker) Apply(height uint32, addr Address, delta Amount, checkpoints Checkpoints) error {
	balance, err := t.store.Balance(addr)
	if err != nil {
		return errors.Wrap(err, "get balance")
	}
	newBalance := balance + delta
	if newBalance < 0 {
		return errors.Wrapf(ErrInvalidArgument, "balance of %v would drop below zero at block %d", addr, height)
	}

	checkpoint, checkpointed := checkpoints.LastAt(height)
	if len(checkpoints) > 0 && (!checkpointed || height <= checkpoint) {
		return errors.Wrapf(ErrInvalidArgument, "block %d is not past the last checkpoint", height)
	}

	ranges, err := t.store.Ranges(addr)
	if err != nil {
		return errors.Wrap(err, "get ranges")
	}

	oldTier := uint32(balance / MinimumRewardBalance)
	newTier := uint32(newBalance / MinimumRewardBalance)

	changed := false
	// Ranges that all ended at or below the checkpoint can no longer be
	// reached by any future reward window and are dropped, but only while
	// the address is below the qualifying balance: a qualifying address's
	// trailing range is live and carries the continuity of the current
	// qualification interval.
	if len(ranges) > 0 && checkpointed && oldTier == 0 {
		stale := true
		for _, r := range ranges {
			if r.End > checkpoint {
				stale = false
				break
			}
		}
		if stale {
			ranges = ranges[:0]
			changed = true
			metricRangePurges().Add(1)
		}
	}

	switch {
	case newTier == oldTier && newTier > 0:
		if len(ranges) == 0 {
			ranges = append(ranges, NewBlockHeightRange(height, height, newTier, 0))
			changed = true
		} else if last := &ranges[len(ranges)-1]; last.End < height {
			last.End = height
			changed = true
		}
	case newTier != oldTier:
		var lastMultiplier uint32
		if len(ranges) > 0 {
			lastMultiplier = ranges[len(ranges)-1].Multiplier
		}
		ranges = append(ranges, NewBlockHeightRange(height, height, newTier, lastMultiplier))
		changed = true
	}

	if changed {
		if err := t.store.SetRanges(addr, ranges); err != nil {
			return errors.Wrap(err, "set ranges")
		}
	}
	if err := t.store.SetBalance(addr, newBalance); err != nil {
		return errors.Wrap(err, "set balance")
	}
	if checkpointed {
		if err := t.store.SetCheckpoint(checkpoint); err != nil {
			return errors.Wrap(err, "set checkpoint")
		}
	}
	metricMutationCount().AddWithLabel(1, map[string]string{"type": "apply"})
	return nil
}

// Rollback reverses an Apply of the same height, address and delta, for
// chain reorganizations. Heights at or below the persisted checkpoint are
// immutable and rejected with ErrInvalidArgument, as is a rollback that
// would drive the balance negative.
//
// Only the final range is repaired, and only when it ends exactly at the
// rolled-back height: a width-zero range is removed, any other has its end
// pulled back one block. A height no range ends at adjusts the balance only.
func (t *Tracker) Rollback(height uint32, addr Address, delta Amount) error {
	balance, err := t.store.Balance(addr)
	if err != nil {
		return errors.Wrap(err, "get balance")
	}
	newBalance := balance - delta
	if newBalance < 0 {
		return errors.Wrapf(ErrInvalidArgument, "balance of %v would drop below zero at block %d", addr, height)
	}

	checkpoint, err := t.store.Checkpoint()
	if err != nil {
		return errors.Wrap(err, "get checkpoint")
	}
	if height <= checkpoint {
		return errors.Wrapf(ErrInvalidArgument, "block %d is frozen by checkpoint %d", height, checkpoint)
	}

	ranges, err := t.store.Ranges(addr)
	if err != nil {
		return errors.Wrap(err, "get ranges")
	}
	if n := len(ranges); n > 0 && ranges[n-1].End == height {
		if ranges[n-1].Start == ranges[n-1].End {
			ranges = ranges[:n-1]
		} else {
			ranges[n-1].End--
		}
		if err := t.store.SetRanges(addr, ranges); err != nil {
			return errors.Wrap(err, "set ranges")
		}
	}
	if err := t.store.SetBalance(addr, newBalance); err != nil {
		return errors.Wrap(err, "set balance")
	}
	metricMutationCount().AddWithLabel(1, map[string]string{"type": "rollback"})
	return nil
}

// EligibleAddresses walks every tracked address and returns those holding a
// non-zero reward multiplier at the given reward height, ordered by address
// bytes. height must be a positive multiple of RewardRangeSpan; the first
// reward period has no prior window and yields no one.
func (t *Tracker) EligibleAddresses(height uint32) ([]Eligibility, error) {
	if height == 0 || height%RewardRangeSpan != 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "height %d is not a reward height", height)
	}
	if height == RewardRangeSpan {
		return nil, nil
	}

	started := time.Now()
	defer func() {
		metricQueryDuration().Observe(time.Since(started).Milliseconds())
	}()

	all, err := t.store.AllRanges()
	if err != nil {
		return nil, errors.Wrap(err, "get all ranges")
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var eligible []Eligibility
	for _, k := range keys {
		multipliers, err := ExtractRewardMultipliers(height, all[k])
		if err != nil {
			return nil, err
		}
		if len(multipliers) == 0 {
			continue
		}
		m := multipliers[0]
		for _, v := range multipliers[1:] {
			m = min(m, v)
		}
		if m > 0 {
			eligible = append(eligible, Eligibility{Address: Address(k), Multiplier: m})
		}
	}
	metricEligibleCount().Set(int64(len(eligible)))
	return eligible, nil
}
