// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tracker

// Store is the persistence capability set injected into the tracker.
// The tracker treats every mutation as a transactional unit; it is the
// store's job to make the balance and range list of an address update
// atomically within a transaction scope.
//
// Unknown addresses read as zero balance and an empty range list.
type Store interface {
	// Balance returns the tracked balance of an address.
	Balance(addr Address) (Amount, error)
	// SetBalance persists the balance of an address.
	SetBalance(addr Address, balance Amount) error

	// Ranges returns the qualification ranges of an address, ordered by
	// ascending start height. The returned slice is the caller's to mutate.
	Ranges(addr Address) ([]BlockHeightRange, error)
	// SetRanges persists the range list of an address. An empty list is
	// stored as such, not removed.
	SetRanges(addr Address, ranges []BlockHeightRange) error

	// Checkpoint returns the persisted checkpoint marker, 0 if unset.
	Checkpoint() (uint32, error)
	// SetCheckpoint advances the checkpoint marker. Values not above the
	// current marker are silently ignored.
	SetCheckpoint(height uint32) error

	// AllRanges snapshots the range lists of every known address, keyed
	// by the raw address bytes.
	AllRanges() (map[string][]BlockHeightRange, error)

	// BeginTransaction opens a mutation scope. Nesting is not supported.
	BeginTransaction() error
	// EndTransaction commits the open mutation scope.
	EndTransaction() error
}
