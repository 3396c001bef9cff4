// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitchain/orbit/orbit"
)

func TestReceiptRoundTrip(t *testing.T) {
	r := NewReceipt(
		orbit.MustParseAccountID("alice"),
		orbit.MustParseAccountID("bob"),
		7,
		NewCreateAccount(),
		NewTransfer(big.NewInt(500_000)),
		NewTransferV2(big.NewInt(500_000), true),
		NewDeleteAccount(orbit.MustParseAccountID("alice")),
	)

	data, err := rlp.EncodeToBytes(r)
	require.Nil(t, err)

	var decoded Receipt
	require.Nil(t, rlp.DecodeBytes(data, &decoded))

	assert.Equal(t, r.Predecessor(), decoded.Predecessor())
	assert.Equal(t, r.Receiver(), decoded.Receiver())
	assert.Equal(t, r.Nonce(), decoded.Nonce())
	require.Len(t, decoded.Actions(), 4)

	assert.IsType(t, (*CreateAccount)(nil), decoded.Actions()[0])

	transfer := decoded.Actions()[1].(*Transfer)
	assert.Zero(t, transfer.Deposit().Cmp(big.NewInt(500_000)))

	transferV2 := decoded.Actions()[2].(*TransferV2)
	assert.Zero(t, transferV2.Deposit().Cmp(big.NewInt(500_000)))
	assert.True(t, transferV2.NonRefundable())

	del := decoded.Actions()[3].(*DeleteAccount)
	assert.Equal(t, orbit.MustParseAccountID("alice"), del.Beneficiary())

	assert.Equal(t, r.ID(), decoded.ID())
}

func TestActionDiscriminantsFrozen(t *testing.T) {
	// wire compatibility: deployed discriminants must never move, new
	// variants only get appended
	assert.EqualValues(t, 0, KindCreateAccount)
	assert.EqualValues(t, 3, KindTransfer)
	assert.EqualValues(t, 7, KindDeleteAccount)
	assert.EqualValues(t, 8, KindTransferV2)
}

func TestActionsDecodeRejectsUnknownKind(t *testing.T) {
	payload, err := rlp.EncodeToBytes(&transferBody{Deposit: big.NewInt(1)})
	require.Nil(t, err)

	data, err := rlp.EncodeToBytes([]actionEnvelope{{Kind: 200, Payload: payload}})
	require.Nil(t, err)

	var as Actions
	assert.Error(t, rlp.DecodeBytes(data, &as))
}

func TestActionsDecodeRejectsReservedKind(t *testing.T) {
	payload, err := rlp.EncodeToBytes(&createAccountBody{})
	require.Nil(t, err)

	data, err := rlp.EncodeToBytes([]actionEnvelope{{Kind: uint8(KindFunctionCall), Payload: payload}})
	require.Nil(t, err)

	var as Actions
	assert.Error(t, rlp.DecodeBytes(data, &as))
}

func TestLegacyTransferWireShape(t *testing.T) {
	// the legacy variant encodes exactly {deposit}, no flag byte
	a := NewTransfer(big.NewInt(123))
	payload, err := a.encodePayload()
	require.Nil(t, err)

	var body transferBody
	require.Nil(t, rlp.DecodeBytes(payload, &body))
	assert.Zero(t, body.Deposit.Cmp(big.NewInt(123)))

	// and refuses the v2 shape
	v2payload, err := NewTransferV2(big.NewInt(123), false).encodePayload()
	require.Nil(t, err)
	assert.Error(t, rlp.DecodeBytes(v2payload, &body))
}
