// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tracker

// Constants of the cold reward scheme.
const (
	// COIN is the number of base units per coin.
	COIN Amount = 100_000_000

	// MinimumRewardBalance is the least balance that qualifies an address
	// to accrue reward exposure. It is also the size of one reward tier:
	// the multiplier of a range is balance/MinimumRewardBalance at the
	// time the range is recorded.
	MinimumRewardBalance = 20000 * COIN

	// RewardRangeSpan is the length of one reward window in blocks,
	// about one month at the expected block cadence.
	RewardRangeSpan uint32 = 21600
)
