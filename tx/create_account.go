// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/ethereum/go-ethereum/rlp"
)

type createAccountBody struct{}

// CreateAccount creates a named account at the receipt's receiver id.
type CreateAccount struct {
	body createAccountBody
}

// NewCreateAccount create a new CreateAccount action.
func NewCreateAccount() *CreateAccount {
	return &CreateAccount{}
}

// Kind implements Action.
func (a *CreateAccount) Kind() Kind { return KindCreateAccount }

func (a *CreateAccount) encodePayload() ([]byte, error) {
	return rlp.EncodeToBytes(&a.body)
}

func (a *CreateAccount) String() string { return "CreateAccount()" }
