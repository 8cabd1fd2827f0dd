// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tracker

import "github.com/pkg/errors"

// ExtractRewardMultipliers computes the multipliers an address's range list
// contributes to the reward window (height-RewardRangeSpan, height]. The
// caller takes the minimum of the returned list as the effective multiplier;
// an empty list means the address does not qualify at that height.
//
// height must be a multiple of RewardRangeSpan and at least twice the span,
// since the first reward period has no prior window to inspect.
//
// Ranges are walked from the most recent to the oldest. Let X be the start
// of the window:
//   - ranges at or past the query height describe state not yet settled at
//     the window and are skipped;
//   - a range lying entirely inside the window means the tier changed after
//     the window opened; it contributes the lower of its multiplier and the
//     tier that preceded it, and a zero there proves the balance dropped
//     below the qualifying amount inside the window, disqualifying the
//     address outright;
//   - the first range found covering or touching X settles the tier held at
//     the window start and ends the walk;
//   - a range lying entirely before X fixes the tier only when nothing
//     closer to the window said otherwise.
func ExtractRewardMultipliers(height uint32, ranges []BlockHeightRange) ([]uint32, error) {
	if height%RewardRangeSpan != 0 || height < 2*RewardRangeSpan {
		return nil, errors.Wrapf(ErrInvalidArgument, "height %d is not a reward height past the first period", height)
	}
	windowStart := height - RewardRangeSpan

	var multipliers []uint32
	for i := len(ranges) - 1; i >= 0; i-- {
		r := ranges[i]
		if r.Start >= height || r.End >= height {
			continue
		}
		if r.Start > windowStart {
			m := min(r.Multiplier, r.PrevMultiplier)
			if m == 0 {
				return nil, nil
			}
			multipliers = append(multipliers, m)
			continue
		}
		if r.End >= windowStart {
			if r.Multiplier > 0 {
				multipliers = append(multipliers, r.Multiplier)
			}
		} else if len(multipliers) == 0 && r.Multiplier > 0 {
			multipliers = append(multipliers, r.Multiplier)
		}
		break
	}
	return multipliers, nil
}
