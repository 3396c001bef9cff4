// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// Kind is the action variant discriminant. Discriminants of already
// deployed variants never change; new variants are appended at the end so
// that transactions signed before a feature existed stay decodable.
type Kind uint8

const (
	KindCreateAccount Kind = iota
	KindDeployContract
	KindFunctionCall
	KindTransfer
	KindStake
	KindAddKey
	KindDeleteKey
	KindDeleteAccount
	// KindTransferV2 transfer with the non-refundable flag, appended
	// after all pre-existing variants.
	KindTransferV2
)

// Action is the basic execution unit of a receipt.
type Action interface {
	Kind() Kind
	encodePayload() ([]byte, error)
}

type actionEnvelope struct {
	Kind    uint8
	Payload rlp.RawValue
}

// Actions slice of actions, RLP-encoded as a list of tagged envelopes.
type Actions []Action

// EncodeRLP implements rlp.Encoder
func (as Actions) EncodeRLP(w io.Writer) error {
	envs := make([]actionEnvelope, 0, len(as))
	for _, a := range as {
		payload, err := a.encodePayload()
		if err != nil {
			return err
		}
		envs = append(envs, actionEnvelope{uint8(a.Kind()), payload})
	}
	return rlp.Encode(w, envs)
}

// DecodeRLP implements rlp.Decoder
func (as *Actions) DecodeRLP(s *rlp.Stream) error {
	var envs []actionEnvelope
	if err := s.Decode(&envs); err != nil {
		return err
	}
	decoded := make(Actions, 0, len(envs))
	for _, env := range envs {
		a, err := decodeAction(Kind(env.Kind), env.Payload)
		if err != nil {
			return err
		}
		decoded = append(decoded, a)
	}
	*as = decoded
	return nil
}

func decodeAction(kind Kind, payload []byte) (Action, error) {
	switch kind {
	case KindCreateAccount:
		var a CreateAccount
		if err := rlp.DecodeBytes(payload, &a.body); err != nil {
			return nil, err
		}
		return &a, nil
	case KindTransfer:
		var a Transfer
		if err := rlp.DecodeBytes(payload, &a.body); err != nil {
			return nil, err
		}
		return &a, nil
	case KindTransferV2:
		var a TransferV2
		if err := rlp.DecodeBytes(payload, &a.body); err != nil {
			return nil, err
		}
		return &a, nil
	case KindDeleteAccount:
		var a DeleteAccount
		if err := rlp.DecodeBytes(payload, &a.body); err != nil {
			return nil, err
		}
		return &a, nil
	case KindDeployContract, KindFunctionCall, KindStake, KindAddKey, KindDeleteKey:
		// reserved discriminants, executed outside this engine
		return nil, errors.Errorf("action kind %d not executable here", kind)
	default:
		return nil, errors.Errorf("unknown action kind %d", kind)
	}
}
