// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package orbit

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Constants of the chain.
const (
	// AccountStorageOverhead bytes of trie state a bare account record
	// occupies before any keys or code are attached to it.
	AccountStorageOverhead uint64 = 100
)

// InitialStorageCostPerByte balance required per byte of stored state.
var InitialStorageCostPerByte = new(big.Int).Exp(big.NewInt(10), big.NewInt(19), nil)

// Params economic parameters of the chain.
type Params struct {
	// StorageCostPerByte balance an account must hold per byte of state
	// it keeps in the trie.
	StorageCostPerByte *big.Int
	// AccountStorageOverhead storage bytes charged for a bare record.
	AccountStorageOverhead uint64
}

// DefaultParams returns params with mainnet defaults.
func DefaultParams() Params {
	return Params{
		StorageCostPerByte:     new(big.Int).Set(InitialStorageCostPerByte),
		AccountStorageOverhead: AccountStorageOverhead,
	}
}

type paramsYAML struct {
	StorageCostPerByte     string `yaml:"storageCostPerByte"`
	AccountStorageOverhead uint64 `yaml:"accountStorageOverhead"`
}

// LoadParams reads params from the yaml file at path.
// Omitted fields keep their defaults.
func LoadParams(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, errors.Wrap(err, "load params")
	}
	return parseParams(data)
}

func parseParams(data []byte) (Params, error) {
	var y paramsYAML
	if err := yaml.Unmarshal(data, &y); err != nil {
		return Params{}, errors.Wrap(err, "parse params")
	}
	p := DefaultParams()
	if y.StorageCostPerByte != "" {
		cost, ok := new(big.Int).SetString(y.StorageCostPerByte, 10)
		if !ok || cost.Sign() < 0 || !IsU128(cost) {
			return Params{}, errors.Errorf("parse params: invalid storageCostPerByte %q", y.StorageCostPerByte)
		}
		p.StorageCostPerByte = cost
	}
	if y.AccountStorageOverhead != 0 {
		p.AccountStorageOverhead = y.AccountStorageOverhead
	}
	return p, nil
}
