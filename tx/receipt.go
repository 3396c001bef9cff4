// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/orbitchain/orbit/orbit"
)

type receiptBody struct {
	Predecessor string
	Receiver    string
	Nonce       uint64
	Actions     Actions
}

// Receipt a batch of actions for one receiving account. Actions are
// applied strictly in order; a failure aborts the remaining ones but
// never rolls back those already committed.
type Receipt struct {
	body receiptBody

	cache struct {
		id atomic.Value
	}
}

// NewReceipt creates a receipt carrying the given actions.
func NewReceipt(predecessor, receiver orbit.AccountID, nonce uint64, actions ...Action) *Receipt {
	return &Receipt{
		body: receiptBody{
			Predecessor: string(predecessor),
			Receiver:    string(receiver),
			Nonce:       nonce,
			Actions:     actions,
		},
	}
}

// Predecessor returns the id the receipt originates from.
func (r *Receipt) Predecessor() orbit.AccountID {
	return orbit.AccountID(r.body.Predecessor)
}

// Receiver returns the id the actions apply to.
func (r *Receipt) Receiver() orbit.AccountID {
	return orbit.AccountID(r.body.Receiver)
}

// Nonce returns the receipt nonce.
func (r *Receipt) Nonce() uint64 {
	return r.body.Nonce
}

// Actions returns the action list.
func (r *Receipt) Actions() Actions {
	return r.body.Actions
}

// ID returns the receipt id, the blake2b hash of its encoding.
func (r *Receipt) ID() (id orbit.Bytes32) {
	if cached := r.cache.id.Load(); cached != nil {
		return cached.(orbit.Bytes32)
	}
	defer func() { r.cache.id.Store(id) }()

	data, err := rlp.EncodeToBytes(r)
	if err != nil {
		return orbit.Bytes32{}
	}
	return orbit.Blake2b(data)
}

// EncodeRLP implements rlp.Encoder
func (r *Receipt) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &r.body)
}

// DecodeRLP implements rlp.Decoder
func (r *Receipt) DecodeRLP(s *rlp.Stream) error {
	var body receiptBody
	if err := s.Decode(&body); err != nil {
		return err
	}
	*r = Receipt{body: body}
	return nil
}

func (r *Receipt) String() string {
	return fmt.Sprintf(`Receipt(%v -> %v, %d actions)`, r.body.Predecessor, r.body.Receiver, len(r.body.Actions))
}
