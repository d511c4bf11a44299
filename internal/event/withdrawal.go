package event

import fpmath "TxLedger/internal/math"

// Withdrawal debits the client's available funds
type Withdrawal struct {
	Tx     TxID
	Client ClientID
	Amount fpmath.Decimal // Non-negative
}

func (w *Withdrawal) TxID() TxID {
	return w.Tx
}

func (w *Withdrawal) ClientID() ClientID {
	return w.Client
}

func (w *Withdrawal) Type() TransactionType {
	return TransactionTypeWithdrawal
}
