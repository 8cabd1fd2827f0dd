// Copyright (c) 2026 The ColdReward developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tracker

import "github.com/nixen/coldreward/metrics"

var (
	metricMutationCount = metrics.LazyLoadCounterVec("tracker_mutation_count", []string{"type"})
	metricRangePurges   = metrics.LazyLoadCounter("tracker_range_purge_count")
	metricEligibleCount = metrics.LazyLoadGauge("tracker_eligible_address_count")
	metricQueryDuration = metrics.LazyLoadHistogram("tracker_eligibility_query_duration_ms", metrics.Bucket10s)
)
