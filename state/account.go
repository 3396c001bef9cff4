// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"math/big"

	"github.com/orbitchain/orbit/orbit"
)

// Account schema versions.
const (
	// VersionLegacy accounts carry no non-refundable balance field on disk.
	VersionLegacy uint8 = 1
	// VersionCurrent accounts are written in the sentinel-prefixed layout.
	VersionCurrent uint8 = 2
)

// Account is the consensus representation of an account.
// Encoded records are stored in the account trie keyed by account id.
type Account struct {
	Balance       *big.Int // refundable balance, freely transferable
	Staked        *big.Int // balance locked by staking
	NonRefundable *big.Int // balance usable only toward storage admission
	CodeHash      orbit.Bytes32
	StorageUsage  uint64
	Version       uint8
}

// NewAccount returns a fresh current-version account with zero balances.
func NewAccount(storageUsage uint64) *Account {
	return &Account{
		Balance:       &big.Int{},
		Staked:        &big.Int{},
		NonRefundable: &big.Int{},
		StorageUsage:  storageUsage,
		Version:       VersionCurrent,
	}
}

// HasCode returns whether the account has code deployed.
func (a *Account) HasCode() bool {
	return !a.CodeHash.IsZero()
}

// TotalBalance returns the sum of all balances, the amount that counts
// toward storage admission.
func (a *Account) TotalBalance() *big.Int {
	total := new(big.Int).Add(a.Balance, a.Staked)
	return total.Add(total, a.NonRefundable)
}

// Copy returns a deep copy of the account.
func (a *Account) Copy() *Account {
	cpy := *a
	cpy.Balance = new(big.Int).Set(a.Balance)
	cpy.Staked = new(big.Int).Set(a.Staked)
	cpy.NonRefundable = new(big.Int).Set(a.NonRefundable)
	return &cpy
}
