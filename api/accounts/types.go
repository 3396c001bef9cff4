// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"github.com/orbitchain/orbit/orbit"
	"github.com/orbitchain/orbit/state"
)

// Account for marshal account.
// Balances are decimal strings of the u128 values; legacy accounts
// report "0" for the non-refundable part.
type Account struct {
	Amount        string        `json:"amount"`
	Locked        string        `json:"locked"`
	NonRefundable string        `json:"nonrefundable"`
	CodeHash      orbit.Bytes32 `json:"codeHash"`
	HasCode       bool          `json:"hasCode"`
	StorageUsage  uint64        `json:"storageUsage"`
	Version       uint8         `json:"version"`
}

func convertAccount(acc *state.Account) *Account {
	return &Account{
		Amount:        acc.Balance.String(),
		Locked:        acc.Staked.String(),
		NonRefundable: acc.NonRefundable.String(),
		CodeHash:      acc.CodeHash,
		HasCode:       acc.HasCode(),
		StorageUsage:  acc.StorageUsage,
		Version:       acc.Version,
	}
}
