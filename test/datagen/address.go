// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/nixen/coldreward/tracker"
)

// RandAddress returns a random address of 1 to 20 bytes.
func RandAddress() tracker.Address {
	addr := make(tracker.Address, 1+RandIntN(20))
	rand.Read(addr)
	return addr
}
