// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package orbit

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

// Token amounts are unsigned 128-bit integers. They travel through the
// codebase as *big.Int, with the helpers below enforcing the u128 range
// at the boundaries where it matters.

// MaxUint128 the maximum representable 128-bit amount, 2^128 - 1.
// It is reserved as the account codec sentinel and can never be a real
// balance (total token supply is far below it).
var MaxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

var maxUint128 = uint256.MustFromBig(MaxUint128)

// IsU128 returns whether v fits the unsigned 128-bit range.
func IsU128(v *big.Int) bool {
	if v == nil || v.Sign() < 0 {
		return false
	}
	u, overflow := uint256.FromBig(v)
	return !overflow && !u.Gt(maxUint128)
}

// AddU128 returns a + b, or an error when either operand or the sum
// leaves the unsigned 128-bit range.
func AddU128(a, b *big.Int) (*big.Int, error) {
	ua, overflow := uint256.FromBig(a)
	if overflow || a.Sign() < 0 {
		return nil, errors.New("amount: operand out of u128 range")
	}
	ub, overflow := uint256.FromBig(b)
	if overflow || b.Sign() < 0 {
		return nil, errors.New("amount: operand out of u128 range")
	}
	sum, carry := new(uint256.Int).AddOverflow(ua, ub)
	if carry || sum.Gt(maxUint128) {
		return nil, errors.New("amount: u128 overflow")
	}
	return sum.ToBig(), nil
}
