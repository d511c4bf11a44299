package event_test

import (
	"TxLedger/internal/event"
	fpmath "TxLedger/internal/math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amountPtr(s string) *fpmath.Decimal {
	d := fpmath.MustParse(s)
	return &d
}

func TestParseTransactionType(t *testing.T) {
	cases := map[string]event.TransactionType{
		"deposit":    event.TransactionTypeDeposit,
		"Deposit":    event.TransactionTypeDeposit,
		"WITHDRAWAL": event.TransactionTypeWithdrawal,
		"dispute":    event.TransactionTypeDispute,
		"Resolve":    event.TransactionTypeResolve,
		"chargeBack": event.TransactionTypeChargeback,
	}

	for in, want := range cases {
		got, err := event.ParseTransactionType(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
		assert.Equal(t, want.String(), got.String())
	}
}

func TestParseTransactionType_Unknown(t *testing.T) {
	for _, in := range []string{"", "transfer", "deposits"} {
		got, err := event.ParseTransactionType(in)
		assert.ErrorIs(t, err, event.ErrUnknownType)
		assert.Equal(t, event.TransactionTypeUnknown, got)
	}
}

func TestNewTransaction_Deposit(t *testing.T) {
	tx, err := event.NewTransaction(event.TransactionTypeDeposit, 7, 42, amountPtr("1.5"))
	require.NoError(t, err)

	dep, ok := tx.(*event.Deposit)
	require.True(t, ok, "expected *event.Deposit, got %T", tx)
	assert.Equal(t, event.TxID(42), dep.TxID())
	assert.Equal(t, event.ClientID(7), dep.ClientID())
	assert.Equal(t, event.TransactionTypeDeposit, dep.Type())
	assert.Equal(t, fpmath.NewDecimal(1, 5000), dep.Amount)
}

func TestNewTransaction_Withdrawal(t *testing.T) {
	tx, err := event.NewTransaction(event.TransactionTypeWithdrawal, 1, 4, amountPtr("0.0001"))
	require.NoError(t, err)

	wd, ok := tx.(*event.Withdrawal)
	require.True(t, ok, "expected *event.Withdrawal, got %T", tx)
	assert.Equal(t, fpmath.FromRaw(1), wd.Amount)
	assert.Equal(t, event.TransactionTypeWithdrawal, wd.Type())
}

func TestNewTransaction_MissingAmount(t *testing.T) {
	for _, tt := range []event.TransactionType{event.TransactionTypeDeposit, event.TransactionTypeWithdrawal} {
		_, err := event.NewTransaction(tt, 1, 1, nil)
		assert.ErrorIs(t, err, event.ErrMissingAmount, "type %s", tt)
	}
}

func TestNewTransaction_NegativeAmount(t *testing.T) {
	_, err := event.NewTransaction(event.TransactionTypeDeposit, 1, 1, amountPtr("-1.0"))
	assert.ErrorIs(t, err, event.ErrNegativeAmount)

	_, err = event.NewTransaction(event.TransactionTypeWithdrawal, 1, 1, amountPtr("-0.0001"))
	assert.ErrorIs(t, err, event.ErrNegativeAmount)
}

func TestNewTransaction_DisputeFamilyIgnoresAmount(t *testing.T) {
	cases := []struct {
		tt   event.TransactionType
		want event.Transaction
	}{
		{event.TransactionTypeDispute, &event.Dispute{Tx: 9, Client: 2}},
		{event.TransactionTypeResolve, &event.Resolve{Tx: 9, Client: 2}},
		{event.TransactionTypeChargeback, &event.Chargeback{Tx: 9, Client: 2}},
	}

	for _, tc := range cases {
		withAmount, err := event.NewTransaction(tc.tt, 2, 9, amountPtr("5.0"))
		require.NoError(t, err)
		assert.Equal(t, tc.want, withAmount)

		without, err := event.NewTransaction(tc.tt, 2, 9, nil)
		require.NoError(t, err)
		assert.Equal(t, tc.want, without)
		assert.Equal(t, tc.tt, without.Type())
	}
}

func TestNewTransaction_UnknownType(t *testing.T) {
	_, err := event.NewTransaction(event.TransactionTypeUnknown, 1, 1, amountPtr("1.0"))
	assert.ErrorIs(t, err, event.ErrUnknownType)
}
