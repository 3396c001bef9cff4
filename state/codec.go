// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/orbitchain/orbit/orbit"
)

// Two record layouts coexist in the trie. Legacy (version 1) records are
// kept byte-for-byte unchanged and are never rewritten in place:
//
//	v1:  balance[16] | staked[16] | codeHash[32] | storageUsage[8]
//	v2+: sentinel[16] | version[1] | balance[16] | staked[16] |
//	     codeHash[32] | storageUsage[8] | nonRefundable[16]
//
// The sentinel is the max u128, a value no real balance can take, so the
// first 16 bytes disambiguate the two layouts deterministically.
const (
	amountLen = 16

	legacyEncodedLen  = amountLen + amountLen + 32 + 8
	currentEncodedLen = amountLen + 1 + legacyEncodedLen + amountLen
)

var encodingSentinel = func() (s [amountLen]byte) {
	orbit.MaxUint128.FillBytes(s[:])
	return
}()

// DecodeError malformed or truncated account record bytes. It signals
// data corruption and must never occur for correctly written records.
type DecodeError struct {
	cause string
}

func (e *DecodeError) Error() string {
	return "account decode: " + e.cause
}

func decodeErrorf(format string, args ...any) *DecodeError {
	return &DecodeError{fmt.Sprintf(format, args...)}
}

func encodeAmount(buf []byte, v *big.Int) error {
	if !orbit.IsU128(v) {
		return fmt.Errorf("account encode: amount out of u128 range")
	}
	v.FillBytes(buf[:amountLen])
	return nil
}

// encodeAccount encodes the account record. The layout is picked from the
// account's schema version; a version-2 field set always goes through the
// sentinel path.
func encodeAccount(a *Account) ([]byte, error) {
	switch {
	case a.Version == VersionLegacy:
		if a.NonRefundable.Sign() != 0 {
			return nil, fmt.Errorf("account encode: non-refundable balance on legacy account")
		}
		if a.Balance.Cmp(orbit.MaxUint128) == 0 {
			// would collide with the sentinel
			return nil, fmt.Errorf("account encode: balance equals encoding sentinel")
		}
		data := make([]byte, legacyEncodedLen)
		if err := encodeAmount(data, a.Balance); err != nil {
			return nil, err
		}
		if err := encodeAmount(data[16:], a.Staked); err != nil {
			return nil, err
		}
		copy(data[32:], a.CodeHash[:])
		binary.BigEndian.PutUint64(data[64:], a.StorageUsage)
		return data, nil

	case a.Version >= VersionCurrent:
		data := make([]byte, currentEncodedLen)
		copy(data, encodingSentinel[:])
		data[16] = a.Version
		if err := encodeAmount(data[17:], a.Balance); err != nil {
			return nil, err
		}
		if err := encodeAmount(data[33:], a.Staked); err != nil {
			return nil, err
		}
		copy(data[49:], a.CodeHash[:])
		binary.BigEndian.PutUint64(data[81:], a.StorageUsage)
		if err := encodeAmount(data[89:], a.NonRefundable); err != nil {
			return nil, err
		}
		return data, nil

	default:
		return nil, fmt.Errorf("account encode: invalid schema version %d", a.Version)
	}
}

// decodeAccount decodes an account record, dispatching on the sentinel in
// the first fixed-width field.
func decodeAccount(data []byte) (*Account, error) {
	if len(data) < amountLen {
		return nil, decodeErrorf("truncated record (%d bytes)", len(data))
	}

	if !bytes.Equal(data[:amountLen], encodingSentinel[:]) {
		// legacy layout, the first field is the balance itself
		if len(data) != legacyEncodedLen {
			return nil, decodeErrorf("invalid legacy record length %d", len(data))
		}
		return &Account{
			Balance:       new(big.Int).SetBytes(data[:16]),
			Staked:        new(big.Int).SetBytes(data[16:32]),
			NonRefundable: &big.Int{},
			CodeHash:      orbit.BytesToBytes32(data[32:64]),
			StorageUsage:  binary.BigEndian.Uint64(data[64:72]),
			Version:       VersionLegacy,
		}, nil
	}

	if len(data) != currentEncodedLen {
		return nil, decodeErrorf("invalid record length %d", len(data))
	}
	version := data[16]
	if version < VersionCurrent {
		return nil, decodeErrorf("sentinel-prefixed record with version %d", version)
	}
	return &Account{
		Balance:       new(big.Int).SetBytes(data[17:33]),
		Staked:        new(big.Int).SetBytes(data[33:49]),
		NonRefundable: new(big.Int).SetBytes(data[89:105]),
		CodeHash:      orbit.BytesToBytes32(data[49:81]),
		StorageUsage:  binary.BigEndian.Uint64(data[81:89]),
		Version:       version,
	}, nil
}
