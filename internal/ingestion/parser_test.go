package ingestion_test

import (
	"TxLedger/internal/event"
	"TxLedger/internal/ingestion"
	fpmath "TxLedger/internal/math"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readAll drains the reader, splitting good records from skipped rows.
func readAll(t *testing.T, input string) ([]event.Transaction, []*ingestion.RecordError) {
	t.Helper()
	r := ingestion.NewReader(strings.NewReader(input))

	var txs []event.Transaction
	var bad []*ingestion.RecordError
	for {
		tx, err := r.Next()
		if errors.Is(err, io.EOF) {
			return txs, bad
		}
		var recErr *ingestion.RecordError
		if errors.As(err, &recErr) {
			bad = append(bad, recErr)
			continue
		}
		require.NoError(t, err)
		txs = append(txs, tx)
	}
}

func TestReader_AllTypes(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.5\n" +
		"withdrawal,1,2,0.25\n" +
		"dispute,1,1,\n" +
		"resolve,1,1,\n" +
		"chargeback,1,1,\n"

	txs, bad := readAll(t, input)
	require.Empty(t, bad)
	require.Len(t, txs, 5)

	dep, ok := txs[0].(*event.Deposit)
	require.True(t, ok, "expected *event.Deposit, got %T", txs[0])
	assert.Equal(t, event.ClientID(1), dep.Client)
	assert.Equal(t, event.TxID(1), dep.Tx)
	assert.Equal(t, fpmath.MustParse("1.5"), dep.Amount)

	wd, ok := txs[1].(*event.Withdrawal)
	require.True(t, ok)
	assert.Equal(t, fpmath.MustParse("0.25"), wd.Amount)

	assert.IsType(t, &event.Dispute{}, txs[2])
	assert.IsType(t, &event.Resolve{}, txs[3])
	assert.IsType(t, &event.Chargeback{}, txs[4])
}

func TestReader_WhitespaceAndCase(t *testing.T) {
	input := " Type , Client ,TX, Amount \n" +
		"  DEPOSIT ,  2 ,  7 ,  3.0001  \n" +
		"Dispute, 2, 7\n"

	txs, bad := readAll(t, input)
	require.Empty(t, bad)
	require.Len(t, txs, 2)

	dep := txs[0].(*event.Deposit)
	assert.Equal(t, event.ClientID(2), dep.Client)
	assert.Equal(t, event.TxID(7), dep.Tx)
	assert.Equal(t, fpmath.MustParse("3.0001"), dep.Amount)

	assert.Equal(t, event.TransactionTypeDispute, txs[1].Type())
}

func TestReader_ColumnOrderFromHeader(t *testing.T) {
	input := "tx,amount,type,client\n" +
		"9,2.0,deposit,4\n"

	txs, bad := readAll(t, input)
	require.Empty(t, bad)
	require.Len(t, txs, 1)

	dep := txs[0].(*event.Deposit)
	assert.Equal(t, event.ClientID(4), dep.Client)
	assert.Equal(t, event.TxID(9), dep.Tx)
}

func TestReader_NoAmountColumn(t *testing.T) {
	input := "type,client,tx\n" +
		"dispute,1,1\n" +
		"deposit,1,2\n"

	txs, bad := readAll(t, input)
	require.Len(t, txs, 1)
	require.Len(t, bad, 1)
	assert.ErrorIs(t, bad[0], event.ErrMissingAmount)
	assert.Equal(t, 3, bad[0].Line)
}

func TestReader_AmountTruncated(t *testing.T) {
	txs, bad := readAll(t, "type,client,tx,amount\ndeposit,1,1,2.123456\n")
	require.Empty(t, bad)
	assert.Equal(t, fpmath.MustParse("2.1234"), txs[0].(*event.Deposit).Amount)
}

func TestReader_MalformedRowsSkipped(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.0\n" + // line 2
		"transfer,1,2,1.0\n" + // line 3: unknown type
		"deposit,x,3,1.0\n" + // line 4: bad client
		"deposit,70000,4,1.0\n" + // line 5: client out of range
		"deposit,1,-5,1.0\n" + // line 6: bad tx
		"deposit,1,6,abc\n" + // line 7: bad amount
		"withdrawal,1,7,-1.0\n" + // line 8: negative amount
		"deposit,1,8\n" + // line 9: missing amount
		"deposit,1,9,2.0\n" // line 10

	txs, bad := readAll(t, input)
	require.Len(t, txs, 2)
	require.Len(t, bad, 7)

	lines := make([]int, len(bad))
	for i, e := range bad {
		lines[i] = e.Line
		assert.ErrorIs(t, e, ingestion.ErrMalformedRecord)
	}
	assert.Equal(t, []int{3, 4, 5, 6, 7, 8, 9}, lines)

	assert.ErrorIs(t, bad[0], event.ErrUnknownType)
	assert.ErrorIs(t, bad[4], fpmath.ErrInvalidDecimal)
	assert.ErrorIs(t, bad[5], event.ErrNegativeAmount)
	assert.ErrorIs(t, bad[6], event.ErrMissingAmount)

	assert.Equal(t, event.TxID(9), txs[1].TxID())
}

func TestReader_CSVSyntaxErrorIsRecoverable(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1\"0\n" +
		"deposit,1,2,1.0\n"

	txs, bad := readAll(t, input)
	require.Len(t, bad, 1)
	assert.ErrorIs(t, bad[0], ingestion.ErrMalformedRecord)
	assert.Equal(t, 2, bad[0].Line)
	require.Len(t, txs, 1)
	assert.Equal(t, event.TxID(2), txs[0].TxID())
}

func TestReader_MissingHeaderColumnIsFatal(t *testing.T) {
	r := ingestion.NewReader(strings.NewReader("type,client,amount\ndeposit,1,1.0\n"))

	_, err := r.Next()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ingestion.ErrMalformedRecord)
	assert.NotErrorIs(t, err, io.EOF)
	assert.Contains(t, err.Error(), `"tx"`)
}

func TestReader_EmptyInputIsFatal(t *testing.T) {
	_, err := ingestion.NewReader(strings.NewReader("")).Next()
	require.Error(t, err)
	assert.NotErrorIs(t, err, io.EOF)
}

func TestReader_HeaderOnly(t *testing.T) {
	txs, bad := readAll(t, "type,client,tx,amount\n")
	assert.Empty(t, txs)
	assert.Empty(t, bad)
}

func TestRecordError_Message(t *testing.T) {
	err := &ingestion.RecordError{Line: 12, Err: event.ErrMissingAmount}
	assert.Equal(t, "line 12: missing amount", err.Error())
	assert.ErrorIs(t, err, ingestion.ErrMalformedRecord)
	assert.ErrorIs(t, err, event.ErrMissingAmount)
}
