// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/pkg/errors"

// Action failure kinds. They are local to the offending action: the
// receipt's remaining actions are aborted, already committed ones stay,
// and attached deposits flow back to the predecessor as compensating
// credits, never as a rollback.
var (
	// ErrAccountAlreadyExists CreateAccount targeting an existing id.
	ErrAccountAlreadyExists = errors.New("account already exists")

	// ErrAccountDoesNotExist the receiver has no record and the action
	// does not qualify for implicit creation.
	ErrAccountDoesNotExist = errors.New("account does not exist")

	// ErrNonRefundableToExisting non-refundable transfer to a receiver
	// that pre-existed the receipt. There is no accumulation path for
	// non-refundable funds onto pre-existing accounts.
	ErrNonRefundableToExisting = errors.New("non-refundable transfer to existing account")

	// ErrStorageAdmissionFailed the post-action storage admission check
	// reported insufficient balance.
	ErrStorageAdmissionFailed = errors.New("insufficient balance to cover storage")

	// ErrDeleteAccountStaked DeleteAccount while a staked balance remains.
	ErrDeleteAccountStaked = errors.New("cannot delete account with staked balance")

	// ErrBalanceOverflow crediting the deposit would overflow u128.
	ErrBalanceOverflow = errors.New("balance overflow")
)
