// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/orbitchain/orbit/metrics"

var (
	metricRecordCache    = metrics.LazyLoadCounterVec("state_record_cache_count", []string{"event"})
	metricAccountCommits = metrics.LazyLoadCounter("state_account_commit_count")
)
