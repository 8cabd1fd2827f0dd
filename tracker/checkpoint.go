// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tracker

import "sort"

// Checkpoint pins a block height below which ledger history is frozen.
// The tag is an opaque block identifier, carried through but never validated.
type Checkpoint struct {
	Height uint32
	Tag    [32]byte
}

// Checkpoints is a list of checkpoints ordered by ascending height.
type Checkpoints []Checkpoint

// LastAt returns the greatest checkpoint height not exceeding the given
// height. The second return value is false when no such checkpoint exists.
func (cs Checkpoints) LastAt(height uint32) (uint32, bool) {
	// first index whose height is > height
	i := sort.Search(len(cs), func(i int) bool {
		return cs[i].Height > height
	})
	if i == 0 {
		return 0, false
	}
	return cs[i-1].Height, true
}
