// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopByDefault(t *testing.T) {
	noop := defaultNoopMetrics()
	assert.Nil(t, noop.GetOrCreateHandler())

	// meters are usable without a backend
	noop.GetOrCreateCountMeter("noop_count").Add(1)
	noop.GetOrCreateGaugeMeter("noop_gauge").Set(42)
	noop.GetOrCreateHistogramMeter("noop_histogram", Bucket10s).Observe(7)
	noop.GetOrCreateCountVecMeter("noop_count_vec", []string{"type"}).AddWithLabel(1, map[string]string{"type": "a"})
}

func TestLazyLoad(t *testing.T) {
	calls := 0
	load := LazyLoad(func() int {
		calls++
		return 7
	})
	assert.Equal(t, 7, load())
	assert.Equal(t, 7, load())
	assert.Equal(t, 1, calls)
}

func TestPrometheusMetrics(t *testing.T) {
	InitializePrometheusMetrics()
	// reinitialization keeps the installed backend
	InitializePrometheusMetrics()

	Counter("test_count").Add(3)
	Gauge("test_gauge").Set(5)
	Histogram("test_histogram", Bucket10s).Observe(250)
	CounterVec("test_count_vec", []string{"type"}).AddWithLabel(2, map[string]string{"type": "apply"})

	handler := HTTPHandler()
	require.NotNil(t, handler)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)

	for _, want := range []string{
		"coldreward_test_count 3",
		"coldreward_test_gauge 5",
		`coldreward_test_count_vec{type="apply"} 2`,
	} {
		assert.True(t, strings.Contains(string(body), want), want)
	}
}
