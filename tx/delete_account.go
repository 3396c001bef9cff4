// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/orbitchain/orbit/orbit"
)

type deleteAccountBody struct {
	Beneficiary string
}

// DeleteAccount removes the receiver's record. The refundable balance
// goes to the beneficiary; any non-refundable balance is extinguished.
type DeleteAccount struct {
	body deleteAccountBody
}

// NewDeleteAccount create a new DeleteAccount action.
func NewDeleteAccount(beneficiary orbit.AccountID) *DeleteAccount {
	return &DeleteAccount{deleteAccountBody{string(beneficiary)}}
}

// Kind implements Action.
func (a *DeleteAccount) Kind() Kind { return KindDeleteAccount }

// Beneficiary returns the id credited with the remaining refundable balance.
func (a *DeleteAccount) Beneficiary() orbit.AccountID {
	return orbit.AccountID(a.body.Beneficiary)
}

func (a *DeleteAccount) encodePayload() ([]byte, error) {
	return rlp.EncodeToBytes(&a.body)
}

func (a *DeleteAccount) String() string {
	return fmt.Sprintf("DeleteAccount(beneficiary: %v)", a.body.Beneficiary)
}
