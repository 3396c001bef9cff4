// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/orbitchain/orbit/orbit"
	"github.com/orbitchain/orbit/state"
)

// Alloc describes the initial account set.
// Balances are decimal strings of u128 values.
type Alloc struct {
	Accounts []AllocAccount `yaml:"accounts"`
}

// AllocAccount is one initial account entry.
type AllocAccount struct {
	ID            string `yaml:"id"`
	Balance       string `yaml:"balance"`
	Staked        string `yaml:"staked"`
	NonRefundable string `yaml:"nonRefundable"`
}

// LoadAlloc reads an alloc file in YAML format.
func LoadAlloc(path string) (*Alloc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "read alloc")
	}
	return parseAlloc(data)
}

func parseAlloc(data []byte) (*Alloc, error) {
	var alloc Alloc
	if err := yaml.Unmarshal(data, &alloc); err != nil {
		return nil, errors.WithMessage(err, "parse alloc")
	}
	return &alloc, nil
}

func parseAmount(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, errors.Errorf("invalid amount %q", s)
	}
	if !orbit.IsU128(v) {
		return nil, errors.Errorf("amount %q exceeds u128", s)
	}
	return v, nil
}

// Build writes the alloc accounts into a fresh state and commits it.
// Every account is created with the current record layout and must
// satisfy storage admission under the given params.
func Build(stater *state.Stater, params orbit.Params, alloc *Alloc) error {
	st := stater.NewState()

	for _, entry := range alloc.Accounts {
		id, err := orbit.ParseAccountID(entry.ID)
		if err != nil {
			return errors.WithMessagef(err, "alloc account %q", entry.ID)
		}
		exists, err := st.Exists(id)
		if err != nil {
			return err
		}
		if exists {
			return errors.Errorf("duplicate alloc account %v", id)
		}

		acc := state.NewAccount(params.AccountStorageOverhead)
		if acc.Balance, err = parseAmount(entry.Balance); err != nil {
			return errors.WithMessagef(err, "alloc account %v balance", id)
		}
		if acc.Staked, err = parseAmount(entry.Staked); err != nil {
			return errors.WithMessagef(err, "alloc account %v staked", id)
		}
		if acc.NonRefundable, err = parseAmount(entry.NonRefundable); err != nil {
			return errors.WithMessagef(err, "alloc account %v nonRefundable", id)
		}

		if err := state.CheckStorageAdmission(acc, params.StorageCostPerByte); err != nil {
			return errors.WithMessagef(err, "alloc account %v", id)
		}
		st.UpdateAccount(id, acc)
	}

	stage, err := st.Stage()
	if err != nil {
		return err
	}
	return stage.Commit()
}
