// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"fmt"
	"math/big"
)

// StorageAdmissionError reports an account whose total balance no longer
// covers its storage usage.
type StorageAdmissionError struct {
	Required  *big.Int
	Available *big.Int
}

func (e *StorageAdmissionError) Error() string {
	return fmt.Sprintf("insufficient balance for storage: required %v, available %v", e.Required, e.Available)
}

// CheckStorageAdmission verifies that the account holds enough total
// balance (refundable + staked + non-refundable) to cover its storage
// usage at the given per-byte cost. Pure function; it must be called
// after any change to a balance field or to the storage usage.
//
// Legacy accounts take part with their non-refundable balance read as
// zero, which the decoder guarantees.
func CheckStorageAdmission(a *Account, costPerByte *big.Int) error {
	required := new(big.Int).SetUint64(a.StorageUsage)
	required.Mul(required, costPerByte)

	available := a.TotalBalance()
	if available.Cmp(required) < 0 {
		return &StorageAdmissionError{Required: required, Available: available}
	}
	return nil
}
