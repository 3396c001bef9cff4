// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/orbitchain/orbit/log"
	"github.com/orbitchain/orbit/orbit"
	"github.com/orbitchain/orbit/state"
	"github.com/orbitchain/orbit/tx"
)

var logger = log.New("pkg", "runtime")

// Runtime applies receipts to account state.
//
// Processing is single-threaded and deterministic: actions within one
// receipt apply strictly in order, each fully committed or fully
// rejected before the next begins.
type Runtime struct {
	state  *state.State
	params orbit.Params
}

// New create a Runtime object.
func New(st *state.State, params orbit.Params) *Runtime {
	return &Runtime{
		state:  st,
		params: params,
	}
}

// State returns the runtime's state.
func (rt *Runtime) State() *state.State { return rt.state }

// Params returns the runtime's chain params.
func (rt *Runtime) Params() orbit.Params { return rt.params }

// Output is the result of applying one receipt.
type Output struct {
	// Receipts generated outgoing receipts: deposit refunds for failed
	// actions and beneficiary credits of account deletion.
	Receipts []*tx.Receipt
	// Burned balance extinguished by account deletion and credited to
	// no one: the non-refundable balance always, plus the refundable
	// balance when the deleted account names itself as beneficiary.
	Burned *big.Int
	// Applied number of successfully committed actions.
	Applied int
	// Failure the failure that aborted the receipt, nil when all
	// actions were applied.
	Failure error
}

// ApplyReceipt applies the receipt's actions to the receiver's account.
//
// A failing action is rolled back atomically, its deposit refunded to
// the predecessor, and the remaining actions aborted; actions already
// committed stay committed. The one exception is a receiver created
// within this very receipt: its creation stands or falls with the whole
// batch that funds it, so a failure reverts the receipt entirely and
// refunds every deposit it carried.
//
// The returned error is non-nil only for store or codec failures, which
// signal corruption and are never user-facing action results.
func (rt *Runtime) ApplyReceipt(receipt *tx.Receipt) (*Output, error) {
	var (
		out      = &Output{Burned: new(big.Int)}
		receiver = receipt.Receiver()
		actions  = receipt.Actions()

		base        = rt.state.NewCheckpoint()
		createdHere bool
		// deposits credited within this receipt, refunded as one
		// credit if a created receiver's batch fails
		depositsHere = new(big.Int)
	)

	for i, action := range actions {
		checkpoint := rt.state.NewCheckpoint()
		receiptsMark := len(out.Receipts)
		deposit, failure, err := rt.applyAction(receipt, i, action, &createdHere, out)
		if err != nil {
			return nil, err
		}

		if failure == nil {
			failure, err = rt.checkAdmission(receiver, createdHere, i == len(actions)-1)
			if err != nil {
				return nil, err
			}
		}

		if failure == nil {
			if deposit != nil {
				depositsHere.Add(depositsHere, deposit)
			}
			out.Applied++
			metricActions().AddWithLabel(1, map[string]string{"kind": kindLabel(action), "result": "applied"})
			continue
		}

		// the action failed; discard its effects and refund
		refund := new(big.Int)
		if deposit != nil {
			refund.Set(deposit)
		}
		if createdHere {
			// the receiver never came into existence; outgoing credits
			// produced by the batch are dropped along with its state
			rt.state.RevertTo(base)
			refund.Add(refund, depositsHere)
			out.Receipts = out.Receipts[:0]
			out.Applied = 0
			out.Burned.SetInt64(0)
		} else {
			rt.state.RevertTo(checkpoint)
			out.Receipts = out.Receipts[:receiptsMark]
		}
		if refund.Sign() > 0 {
			out.Receipts = append(out.Receipts, rt.newCredit(receipt, i, receipt.Predecessor(), refund))
			metricRefunds().Add(1)
		}
		out.Failure = failure
		metricActions().AddWithLabel(1, map[string]string{"kind": kindLabel(action), "result": "failed"})
		logger.Debug("action failed",
			"receipt", receipt.ID(),
			"receiver", receiver,
			"action", action,
			"err", failure,
		)
		break
	}
	return out, nil
}

// applyAction applies a single action. It returns the action's attached
// deposit (nil when none), the action failure (nil on success), and a
// fatal store/codec error.
func (rt *Runtime) applyAction(receipt *tx.Receipt, index int, action tx.Action, createdHere *bool, out *Output) (*big.Int, error, error) {
	receiver := receipt.Receiver()

	switch a := action.(type) {
	case *tx.CreateAccount:
		exists, err := rt.state.Exists(receiver)
		if err != nil {
			return nil, nil, err
		}
		if exists {
			return nil, ErrAccountAlreadyExists, nil
		}
		rt.state.UpdateAccount(receiver, state.NewAccount(rt.params.AccountStorageOverhead))
		*createdHere = true
		return nil, nil, nil

	case *tx.Transfer:
		deposit := a.Deposit()
		failure, err := rt.applyTransfer(receipt, deposit, false, createdHere)
		return deposit, failure, err

	case *tx.TransferV2:
		deposit := a.Deposit()
		failure, err := rt.applyTransfer(receipt, deposit, a.NonRefundable(), createdHere)
		return deposit, failure, err

	case *tx.DeleteAccount:
		failure, err := rt.applyDeleteAccount(receipt, index, a.Beneficiary(), out)
		return nil, failure, err

	default:
		return nil, nil, errors.Errorf("unexpected action kind %d", action.Kind())
	}
}

func (rt *Runtime) applyTransfer(receipt *tx.Receipt, deposit *big.Int, nonRefundable bool, createdHere *bool) (error, error) {
	receiver := receipt.Receiver()
	acc, err := rt.state.GetAccount(receiver)
	if err != nil {
		return nil, err
	}

	if acc == nil {
		// the implicit account path: a sole qualifying transfer brings
		// the id into existence
		if len(receipt.Actions()) != 1 || !receiver.IsImplicit() {
			return ErrAccountDoesNotExist, nil
		}
		acc = state.NewAccount(rt.params.AccountStorageOverhead)
		if nonRefundable {
			acc.NonRefundable.Set(deposit)
		} else {
			acc.Balance.Set(deposit)
		}
		rt.state.UpdateAccount(receiver, acc)
		*createdHere = true
		return nil, nil
	}

	// accounts created earlier in this receipt count as new, not existing
	if nonRefundable && !*createdHere {
		return ErrNonRefundableToExisting, nil
	}

	if nonRefundable {
		sum, err := orbit.AddU128(acc.NonRefundable, deposit)
		if err != nil {
			return ErrBalanceOverflow, nil
		}
		acc.NonRefundable = sum
	} else {
		sum, err := orbit.AddU128(acc.Balance, deposit)
		if err != nil {
			return ErrBalanceOverflow, nil
		}
		acc.Balance = sum
	}
	rt.state.UpdateAccount(receiver, acc)
	return nil, nil
}

func (rt *Runtime) applyDeleteAccount(receipt *tx.Receipt, index int, beneficiary orbit.AccountID, out *Output) (error, error) {
	receiver := receipt.Receiver()
	acc, err := rt.state.GetAccount(receiver)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		return ErrAccountDoesNotExist, nil
	}
	if acc.Staked.Sign() != 0 {
		return ErrDeleteAccountStaked, nil
	}

	// non-refundable balance is extinguished, not refunded to anyone
	if acc.NonRefundable.Sign() > 0 {
		out.Burned.Add(out.Burned, acc.NonRefundable)
		metricBurns().Add(1)
		logger.Debug("non-refundable balance burned",
			"account", receiver,
			"amount", acc.NonRefundable,
		)
	}

	if acc.Balance.Sign() > 0 {
		if beneficiary == receiver {
			// the beneficiary is being deleted too, the balance is
			// extinguished rather than credited
			out.Burned.Add(out.Burned, acc.Balance)
			metricBurns().Add(1)
		} else {
			out.Receipts = append(out.Receipts, rt.newCredit(receipt, index, beneficiary, acc.Balance))
		}
	}
	rt.state.DeleteAccount(receiver)
	return nil, nil
}

// checkAdmission runs the storage admission validator against the
// receiver after a mutating action. For a receiver created within this
// receipt the verdict is deferred to the batch's last action, since
// funding may still arrive in the same batch.
func (rt *Runtime) checkAdmission(receiver orbit.AccountID, createdHere, lastAction bool) (error, error) {
	acc, err := rt.state.GetAccount(receiver)
	if err != nil {
		return nil, err
	}
	if acc == nil {
		// deleted by this action, nothing to admit
		return nil, nil
	}
	if cerr := state.CheckStorageAdmission(acc, rt.params.StorageCostPerByte); cerr != nil {
		if createdHere && !lastAction {
			return nil, nil
		}
		return errors.WithMessage(ErrStorageAdmissionFailed, cerr.Error()), nil
	}
	return nil, nil
}

// newCredit builds the compensating credit receipt for the given amount.
func (rt *Runtime) newCredit(origin *tx.Receipt, index int, to orbit.AccountID, amount *big.Int) *tx.Receipt {
	return tx.NewReceipt(
		orbit.SystemAccountID,
		to,
		origin.Nonce()+uint64(index)+1,
		tx.NewTransfer(amount),
	)
}
