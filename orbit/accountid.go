// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package orbit

import (
	"github.com/pkg/errors"
)

const (
	// MinAccountIDLen minimum length of an account identifier.
	MinAccountIDLen = 2
	// MaxAccountIDLen maximum length of an account identifier.
	MaxAccountIDLen = 64

	implicitIDLen = 64
)

// SystemAccountID predecessor id of protocol-generated receipts, such as
// refunds issued for failed actions. No record ever exists for it.
const SystemAccountID AccountID = "system"

// AccountID human-readable account identifier.
//
// An id consists of dot-separated parts, each part being lowercase
// alphanumeric runs joined by single '-' or '_' separators.
type AccountID string

// ParseAccountID validates s and converts it into AccountID type.
func ParseAccountID(s string) (AccountID, error) {
	if len(s) < MinAccountIDLen || len(s) > MaxAccountIDLen {
		return "", errors.Errorf("account id: invalid length %d", len(s))
	}
	// last significant char, to reject leading/trailing/adjacent separators
	lastSep := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			lastSep = false
		case c == '-', c == '_', c == '.':
			if lastSep {
				return "", errors.Errorf("account id: misplaced separator at %d", i)
			}
			lastSep = true
		default:
			return "", errors.Errorf("account id: invalid char at %d", i)
		}
	}
	if lastSep {
		return "", errors.New("account id: trailing separator")
	}
	return AccountID(s), nil
}

// MustParseAccountID convenience function to parse account id.
// It panics if the id is invalid.
func MustParseAccountID(s string) AccountID {
	id, err := ParseAccountID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// String implements the stringer interface.
func (id AccountID) String() string {
	return string(id)
}

// IsImplicit returns whether the id is an implicit account id, i.e. a
// 64-char lowercase hex string derived from a public key. Implicit ids
// come into existence purely by receiving a qualifying transfer.
func (id AccountID) IsImplicit() bool {
	if len(id) != implicitIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
