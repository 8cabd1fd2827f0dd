// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tracker

// BlockHeightRange is the closed block interval [Start, End] during which an
// address held a constant reward tier. RLP encoded objects are what the
// persistence layer stores per address.
//
// Multiplier is the tier held across the interval, i.e. balance divided by
// MinimumRewardBalance at the moment the range was recorded. A zero
// multiplier marks the block at which the address fell below the qualifying
// balance. PrevMultiplier is the multiplier of the immediately preceding
// range at the moment this one was opened.
//
// Width-zero ranges are legal, and several ranges may share the same height
// when the balance toggles around a tier boundary within one block.
type BlockHeightRange struct {
	Start          uint32
	End            uint32
	Multiplier     uint32
	PrevMultiplier uint32
}

// NewBlockHeightRange creates a range value. start must not exceed end.
func NewBlockHeightRange(start, end, multiplier, prevMultiplier uint32) BlockHeightRange {
	if start > end {
		panic("tracker: range start exceeds end")
	}
	return BlockHeightRange{
		Start:          start,
		End:            end,
		Multiplier:     multiplier,
		PrevMultiplier: prevMultiplier,
	}
}
