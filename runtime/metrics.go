// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/orbitchain/orbit/metrics"
	"github.com/orbitchain/orbit/tx"
)

var (
	metricActions = metrics.LazyLoadCounterVec("runtime_action_count", []string{"kind", "result"})
	metricRefunds = metrics.LazyLoadCounter("runtime_refund_count")
	metricBurns   = metrics.LazyLoadCounter("runtime_burn_count")
)

func kindLabel(a tx.Action) string {
	switch a.Kind() {
	case tx.KindCreateAccount:
		return "createAccount"
	case tx.KindTransfer:
		return "transfer"
	case tx.KindTransferV2:
		return "transferV2"
	case tx.KindDeleteAccount:
		return "deleteAccount"
	default:
		return "unknown"
	}
}
