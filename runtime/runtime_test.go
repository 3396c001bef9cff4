// Copyright (c) 2025 The Orbit developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitchain/orbit/kv"
	"github.com/orbitchain/orbit/orbit"
	"github.com/orbitchain/orbit/state"
	"github.com/orbitchain/orbit/tx"
)

var implicitID = orbit.AccountID("deadbeef00112233445566778899aabbccddeeff00112233445566778899aabb")

func testParams() orbit.Params {
	return orbit.Params{
		StorageCostPerByte:     big.NewInt(10),
		AccountStorageOverhead: 100,
	}
}

func newTestRuntime(t *testing.T) *Runtime {
	db, err := kv.NewMem()
	require.Nil(t, err)
	t.Cleanup(func() { db.Close() })
	return New(state.NewStater(db).NewState(), testParams())
}

// checkInvariant asserts the storage admission invariant for every id
// that still has a record.
func checkInvariant(t *testing.T, rt *Runtime, ids ...orbit.AccountID) {
	t.Helper()
	for _, id := range ids {
		acc, err := rt.State().GetAccount(id)
		require.Nil(t, err)
		if acc == nil {
			continue
		}
		assert.Nil(t, state.CheckStorageAdmission(acc, rt.Params().StorageCostPerByte),
			"invariant violated for %v", id)
	}
}

func TestCreateAccountWithFunding(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")
	bob := orbit.MustParseAccountID("bob")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, bob, 1,
		tx.NewCreateAccount(),
		tx.NewTransfer(big.NewInt(500_000)),
		tx.NewTransferV2(big.NewInt(500_000), true),
	))
	require.Nil(t, err)
	assert.Nil(t, out.Failure)
	assert.Equal(t, 3, out.Applied)
	assert.Empty(t, out.Receipts)

	acc, err := rt.State().GetAccount(bob)
	require.Nil(t, err)
	require.NotNil(t, acc)
	assert.Zero(t, acc.Balance.Cmp(big.NewInt(500_000)))
	assert.Zero(t, acc.NonRefundable.Cmp(big.NewInt(500_000)))
	assert.Equal(t, state.VersionCurrent, acc.Version)
	assert.Equal(t, uint64(100), acc.StorageUsage)
	checkInvariant(t, rt, bob)
}

func TestCreateAccountAlreadyExists(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")
	bob := orbit.MustParseAccountID("bob")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, bob, 1,
		tx.NewCreateAccount(), tx.NewTransfer(big.NewInt(10_000))))
	require.Nil(t, err)
	require.Nil(t, out.Failure)

	out, err = rt.ApplyReceipt(tx.NewReceipt(alice, bob, 2, tx.NewCreateAccount()))
	require.Nil(t, err)
	assert.ErrorIs(t, out.Failure, ErrAccountAlreadyExists)
	assert.Zero(t, out.Applied)
}

func TestCreateAccountUnfundedFailsAdmission(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")
	bob := orbit.MustParseAccountID("bob")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, bob, 1, tx.NewCreateAccount()))
	require.Nil(t, err)
	assert.ErrorIs(t, out.Failure, ErrStorageAdmissionFailed)

	exists, err := rt.State().Exists(bob)
	require.Nil(t, err)
	assert.False(t, exists, "underfunded creation must leave no record")
}

func TestCreateAccountUnderfundedRefundsWholeBatch(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")
	bob := orbit.MustParseAccountID("bob")

	// requires 100*10 = 1000, deposits only 600 across two transfers
	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, bob, 1,
		tx.NewCreateAccount(),
		tx.NewTransfer(big.NewInt(400)),
		tx.NewTransferV2(big.NewInt(200), true),
	))
	require.Nil(t, err)
	assert.ErrorIs(t, out.Failure, ErrStorageAdmissionFailed)
	assert.Zero(t, out.Applied)

	exists, err := rt.State().Exists(bob)
	require.Nil(t, err)
	assert.False(t, exists)

	// the whole batch's deposits come back in one credit
	require.Len(t, out.Receipts, 1)
	refund := out.Receipts[0]
	assert.Equal(t, orbit.SystemAccountID, refund.Predecessor())
	assert.Equal(t, alice, refund.Receiver())
	credit := refund.Actions()[0].(*tx.Transfer)
	assert.Zero(t, credit.Deposit().Cmp(big.NewInt(600)))
}

func TestImplicitAccountSplit(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, implicitID, 1,
		tx.NewTransferV2(big.NewInt(1_000_000), true)))
	require.Nil(t, err)
	require.Nil(t, out.Failure)

	acc, err := rt.State().GetAccount(implicitID)
	require.Nil(t, err)
	require.NotNil(t, acc)
	assert.Zero(t, acc.Balance.Sign())
	assert.Zero(t, acc.NonRefundable.Cmp(big.NewInt(1_000_000)))
	checkInvariant(t, rt, implicitID)
}

func TestImplicitAccountRefundable(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, implicitID, 1,
		tx.NewTransfer(big.NewInt(1_000_000))))
	require.Nil(t, err)
	require.Nil(t, out.Failure)

	acc, err := rt.State().GetAccount(implicitID)
	require.Nil(t, err)
	require.NotNil(t, acc)
	assert.Zero(t, acc.Balance.Cmp(big.NewInt(1_000_000)))
	assert.Zero(t, acc.NonRefundable.Sign())
}

func TestImplicitCreationRequiresSoleAction(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, implicitID, 1,
		tx.NewTransfer(big.NewInt(500_000)),
		tx.NewTransfer(big.NewInt(500_000)),
	))
	require.Nil(t, err)
	assert.ErrorIs(t, out.Failure, ErrAccountDoesNotExist)

	exists, err := rt.State().Exists(implicitID)
	require.Nil(t, err)
	assert.False(t, exists)

	require.Len(t, out.Receipts, 1)
	credit := out.Receipts[0].Actions()[0].(*tx.Transfer)
	assert.Zero(t, credit.Deposit().Cmp(big.NewInt(500_000)))
}

func TestTransferToMissingNamedAccount(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")
	ghost := orbit.MustParseAccountID("ghost")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, ghost, 1,
		tx.NewTransfer(big.NewInt(42))))
	require.Nil(t, err)
	assert.ErrorIs(t, out.Failure, ErrAccountDoesNotExist)
	require.Len(t, out.Receipts, 1)
}

func TestNonRefundableToExistingRejected(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")
	bob := orbit.MustParseAccountID("bob")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, bob, 1,
		tx.NewCreateAccount(), tx.NewTransfer(big.NewInt(10_000))))
	require.Nil(t, err)
	require.Nil(t, out.Failure)

	before, err := rt.State().GetAccount(bob)
	require.Nil(t, err)

	out, err = rt.ApplyReceipt(tx.NewReceipt(alice, bob, 2,
		tx.NewTransferV2(big.NewInt(5_000), true)))
	require.Nil(t, err)
	assert.ErrorIs(t, out.Failure, ErrNonRefundableToExisting)

	// receiver balances unchanged, deposit credited back to the sender
	after, err := rt.State().GetAccount(bob)
	require.Nil(t, err)
	assert.Zero(t, before.Balance.Cmp(after.Balance))
	assert.Zero(t, before.Staked.Cmp(after.Staked))
	assert.Zero(t, before.NonRefundable.Cmp(after.NonRefundable))

	require.Len(t, out.Receipts, 1)
	refund := out.Receipts[0]
	assert.Equal(t, alice, refund.Receiver())
	credit := refund.Actions()[0].(*tx.Transfer)
	assert.Zero(t, credit.Deposit().Cmp(big.NewInt(5_000)))
}

func TestRefundableToExistingAccepted(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")
	bob := orbit.MustParseAccountID("bob")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, bob, 1,
		tx.NewCreateAccount(), tx.NewTransfer(big.NewInt(10_000))))
	require.Nil(t, err)
	require.Nil(t, out.Failure)

	out, err = rt.ApplyReceipt(tx.NewReceipt(alice, bob, 2,
		tx.NewTransferV2(big.NewInt(5_000), false)))
	require.Nil(t, err)
	assert.Nil(t, out.Failure)

	acc, err := rt.State().GetAccount(bob)
	require.Nil(t, err)
	assert.Zero(t, acc.Balance.Cmp(big.NewInt(15_000)))
	checkInvariant(t, rt, bob)
}

func TestDeleteAccountBurnsNonRefundable(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")
	bob := orbit.MustParseAccountID("bob")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, bob, 1,
		tx.NewCreateAccount(),
		tx.NewTransfer(big.NewInt(30_000)),
		tx.NewTransferV2(big.NewInt(20_000), true),
	))
	require.Nil(t, err)
	require.Nil(t, out.Failure)

	out, err = rt.ApplyReceipt(tx.NewReceipt(bob, bob, 2,
		tx.NewDeleteAccount(alice)))
	require.Nil(t, err)
	require.Nil(t, out.Failure)

	exists, err := rt.State().Exists(bob)
	require.Nil(t, err)
	assert.False(t, exists)

	// refundable balance flows to the beneficiary, non-refundable to no one
	assert.Zero(t, out.Burned.Cmp(big.NewInt(20_000)))
	require.Len(t, out.Receipts, 1)
	credit := out.Receipts[0]
	assert.Equal(t, alice, credit.Receiver())
	amount := credit.Actions()[0].(*tx.Transfer)
	assert.Zero(t, amount.Deposit().Cmp(big.NewInt(30_000)))
}

func TestDeleteAccountSelfBeneficiaryBurnsBalance(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")
	bob := orbit.MustParseAccountID("bob")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, bob, 1,
		tx.NewCreateAccount(),
		tx.NewTransfer(big.NewInt(30_000)),
		tx.NewTransferV2(big.NewInt(20_000), true),
	))
	require.Nil(t, err)
	require.Nil(t, out.Failure)

	// naming the deleted account as its own beneficiary leaves no one
	// to credit; both balances are burned
	out, err = rt.ApplyReceipt(tx.NewReceipt(bob, bob, 2,
		tx.NewDeleteAccount(bob)))
	require.Nil(t, err)
	require.Nil(t, out.Failure)

	exists, err := rt.State().Exists(bob)
	require.Nil(t, err)
	assert.False(t, exists)

	assert.Empty(t, out.Receipts)
	assert.Zero(t, out.Burned.Cmp(big.NewInt(50_000)))
}

func TestCreatedAccountRevertDropsDeletionCredit(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")
	bob := orbit.MustParseAccountID("bob")
	carol := orbit.MustParseAccountID("carol")

	// bob is created, funded, deleted in carol's favor, then the second
	// delete fails: the whole batch reverts, so carol's credit must be
	// dropped together with bob's state, leaving only alice's refund
	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, bob, 1,
		tx.NewCreateAccount(),
		tx.NewTransfer(big.NewInt(10_000)),
		tx.NewDeleteAccount(carol),
		tx.NewDeleteAccount(carol),
	))
	require.Nil(t, err)
	assert.ErrorIs(t, out.Failure, ErrAccountDoesNotExist)
	assert.Zero(t, out.Applied)
	assert.Zero(t, out.Burned.Sign())

	exists, err := rt.State().Exists(bob)
	require.Nil(t, err)
	assert.False(t, exists)

	// credits out must not exceed the 10_000 that came in
	require.Len(t, out.Receipts, 1)
	refund := out.Receipts[0]
	assert.Equal(t, alice, refund.Receiver())
	credit := refund.Actions()[0].(*tx.Transfer)
	assert.Zero(t, credit.Deposit().Cmp(big.NewInt(10_000)))
}

func TestDeletionCreditSurvivesLaterFailure(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")
	bob := orbit.MustParseAccountID("bob")
	carol := orbit.MustParseAccountID("carol")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, bob, 1,
		tx.NewCreateAccount(), tx.NewTransfer(big.NewInt(30_000))))
	require.Nil(t, err)
	require.Nil(t, out.Failure)

	// bob existed before this receipt, so only the failing transfer is
	// rolled back; the committed deletion and its credit stand
	out, err = rt.ApplyReceipt(tx.NewReceipt(alice, bob, 2,
		tx.NewDeleteAccount(carol),
		tx.NewTransfer(big.NewInt(100)),
	))
	require.Nil(t, err)
	assert.ErrorIs(t, out.Failure, ErrAccountDoesNotExist)
	assert.Equal(t, 1, out.Applied)

	exists, err := rt.State().Exists(bob)
	require.Nil(t, err)
	assert.False(t, exists)

	require.Len(t, out.Receipts, 2)
	assert.Equal(t, carol, out.Receipts[0].Receiver())
	amount := out.Receipts[0].Actions()[0].(*tx.Transfer)
	assert.Zero(t, amount.Deposit().Cmp(big.NewInt(30_000)))

	assert.Equal(t, alice, out.Receipts[1].Receiver())
	refund := out.Receipts[1].Actions()[0].(*tx.Transfer)
	assert.Zero(t, refund.Deposit().Cmp(big.NewInt(100)))
}

func TestDeleteAccountWithStakeRejected(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")
	bob := orbit.MustParseAccountID("bob")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, bob, 1,
		tx.NewCreateAccount(), tx.NewTransfer(big.NewInt(10_000))))
	require.Nil(t, err)
	require.Nil(t, out.Failure)

	// stake some balance out of band
	acc, err := rt.State().GetAccount(bob)
	require.Nil(t, err)
	acc.Staked = big.NewInt(1)
	rt.State().UpdateAccount(bob, acc)

	out, err = rt.ApplyReceipt(tx.NewReceipt(bob, bob, 2,
		tx.NewDeleteAccount(alice)))
	require.Nil(t, err)
	assert.ErrorIs(t, out.Failure, ErrDeleteAccountStaked)

	exists, err := rt.State().Exists(bob)
	require.Nil(t, err)
	assert.True(t, exists)
}

func TestFailureAbortsRemainingButKeepsCommitted(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")
	bob := orbit.MustParseAccountID("bob")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, bob, 1,
		tx.NewCreateAccount(), tx.NewTransfer(big.NewInt(10_000))))
	require.Nil(t, err)
	require.Nil(t, out.Failure)

	out, err = rt.ApplyReceipt(tx.NewReceipt(alice, bob, 2,
		tx.NewTransfer(big.NewInt(1_000)),         // commits
		tx.NewTransferV2(big.NewInt(2_000), true), // fails
		tx.NewTransfer(big.NewInt(4_000)),         // aborted
	))
	require.Nil(t, err)
	assert.ErrorIs(t, out.Failure, ErrNonRefundableToExisting)
	assert.Equal(t, 1, out.Applied)

	acc, err := rt.State().GetAccount(bob)
	require.Nil(t, err)
	assert.Zero(t, acc.Balance.Cmp(big.NewInt(11_000)), "first transfer stays, third never applies")

	require.Len(t, out.Receipts, 1)
	credit := out.Receipts[0].Actions()[0].(*tx.Transfer)
	assert.Zero(t, credit.Deposit().Cmp(big.NewInt(2_000)))
	checkInvariant(t, rt, bob)
}

func TestLegacyAccountTreatedAsZeroNonRefundable(t *testing.T) {
	db, err := kv.NewMem()
	require.Nil(t, err)
	t.Cleanup(func() { db.Close() })
	stater := state.NewStater(db)

	// seed a legacy record directly
	erin := orbit.MustParseAccountID("erin")
	st := stater.NewState()
	legacy := &state.Account{
		Balance:       big.NewInt(50_000),
		Staked:        &big.Int{},
		NonRefundable: &big.Int{},
		StorageUsage:  100,
		Version:       state.VersionLegacy,
	}
	st.UpdateAccount(erin, legacy)
	stage, err := st.Stage()
	require.Nil(t, err)
	require.Nil(t, stage.Commit())

	rt := New(stater.NewState(), testParams())
	alice := orbit.MustParseAccountID("alice")

	// a non-refundable transfer to a legacy account is an existing-account case
	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, erin, 1,
		tx.NewTransferV2(big.NewInt(1_000), true)))
	require.Nil(t, err)
	assert.ErrorIs(t, out.Failure, ErrNonRefundableToExisting)

	// a plain transfer works and keeps the record legacy
	out, err = rt.ApplyReceipt(tx.NewReceipt(alice, erin, 2,
		tx.NewTransfer(big.NewInt(1_000))))
	require.Nil(t, err)
	require.Nil(t, out.Failure)

	acc, err := rt.State().GetAccount(erin)
	require.Nil(t, err)
	assert.Equal(t, state.VersionLegacy, acc.Version)
	assert.Zero(t, acc.Balance.Cmp(big.NewInt(51_000)))
	assert.Zero(t, acc.NonRefundable.Sign())
}

func TestBalanceOverflowRejected(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, implicitID, 1,
		tx.NewTransfer(new(big.Int).Sub(orbit.MaxUint128, big.NewInt(1)))))
	require.Nil(t, err)
	require.Nil(t, out.Failure)

	out, err = rt.ApplyReceipt(tx.NewReceipt(alice, implicitID, 2,
		tx.NewTransfer(big.NewInt(1_000))))
	require.Nil(t, err)
	assert.ErrorIs(t, out.Failure, ErrBalanceOverflow)
}

func TestFailureMessageMentionsStorage(t *testing.T) {
	rt := newTestRuntime(t)
	alice := orbit.MustParseAccountID("alice")
	bob := orbit.MustParseAccountID("bob")

	out, err := rt.ApplyReceipt(tx.NewReceipt(alice, bob, 1, tx.NewCreateAccount()))
	require.Nil(t, err)
	require.NotNil(t, out.Failure)
	assert.True(t, strings.Contains(out.Failure.Error(), "storage"))
}
