// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/rlp"
)

type transferBody struct {
	Deposit *big.Int
}

// Transfer deposits tokens into the receiver's refundable balance.
// This is the legacy variant; its wire shape never changes.
type Transfer struct {
	body transferBody
}

// NewTransfer create a new Transfer action.
func NewTransfer(deposit *big.Int) *Transfer {
	return &Transfer{transferBody{new(big.Int).Set(deposit)}}
}

// Kind implements Action.
func (a *Transfer) Kind() Kind { return KindTransfer }

// Deposit returns the attached deposit.
func (a *Transfer) Deposit() *big.Int {
	return new(big.Int).Set(a.body.Deposit)
}

func (a *Transfer) encodePayload() ([]byte, error) {
	return rlp.EncodeToBytes(&a.body)
}

func (a *Transfer) String() string {
	return fmt.Sprintf("Transfer(deposit: %v)", a.body.Deposit)
}

type transferV2Body struct {
	Deposit       *big.Int
	NonRefundable bool
}

// TransferV2 deposits tokens into the receiver's balance, optionally
// marking the deposit non-refundable. Non-refundable funds count only
// toward storage admission and can never leave the account.
type TransferV2 struct {
	body transferV2Body
}

// NewTransferV2 create a new TransferV2 action.
func NewTransferV2(deposit *big.Int, nonRefundable bool) *TransferV2 {
	return &TransferV2{transferV2Body{new(big.Int).Set(deposit), nonRefundable}}
}

// Kind implements Action.
func (a *TransferV2) Kind() Kind { return KindTransferV2 }

// Deposit returns the attached deposit.
func (a *TransferV2) Deposit() *big.Int {
	return new(big.Int).Set(a.body.Deposit)
}

// NonRefundable returns whether the deposit is marked non-refundable.
func (a *TransferV2) NonRefundable() bool {
	return a.body.NonRefundable
}

func (a *TransferV2) encodePayload() ([]byte, error) {
	return rlp.EncodeToBytes(&a.body)
}

func (a *TransferV2) String() string {
	return fmt.Sprintf("TransferV2(deposit: %v, nonRefundable: %v)", a.body.Deposit, a.body.NonRefundable)
}
