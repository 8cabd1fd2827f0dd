// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tracker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nixen/coldreward/tracker"
)

func checkpoints(heights ...uint32) tracker.Checkpoints {
	cs := make(tracker.Checkpoints, 0, len(heights))
	for _, h := range heights {
		cs = append(cs, tracker.Checkpoint{Height: h})
	}
	return cs
}

func TestCheckpointsLastAtEmpty(t *testing.T) {
	cs := checkpoints()
	for _, h := range []uint32{0, 10, 100} {
		_, found := cs.LastAt(h)
		assert.False(t, found)
	}
}

func TestCheckpointsLastAt(t *testing.T) {
	cs := checkpoints(10, 20, 30)

	_, found := cs.LastAt(0)
	assert.False(t, found)

	cp, found := cs.LastAt(10)
	assert.True(t, found)
	assert.Equal(t, uint32(10), cp)

	cp, found = cs.LastAt(100)
	assert.True(t, found)
	assert.Equal(t, uint32(30), cp)
}

func TestCheckpointsLastAtZeroHeight(t *testing.T) {
	cs := checkpoints(0, 10, 20, 30)

	cp, found := cs.LastAt(0)
	assert.True(t, found)
	assert.Equal(t, uint32(0), cp)

	cp, found = cs.LastAt(10)
	assert.True(t, found)
	assert.Equal(t, uint32(10), cp)

	cp, found = cs.LastAt(100)
	assert.True(t, found)
	assert.Equal(t, uint32(30), cp)
}

func TestCheckpointsLastAtSweep(t *testing.T) {
	cs := checkpoints(10, 20, 30, 40, 50)

	for h := uint32(0); h < 100; h++ {
		cp, found := cs.LastAt(h)
		if h < 10 {
			assert.False(t, found)
			continue
		}
		assert.True(t, found)
		// LastAt is monotone in h, stepping at each checkpoint
		assert.Equal(t, min(h/10*10, 50), cp)
	}
}
