// internal/event/deposit.go
package event

import fpmath "TxLedger/internal/math"

// Deposit credits the client's available funds.
type Deposit struct {
	Tx     TxID
	Client ClientID
	Amount fpmath.Decimal // Non-negative
}

func (d *Deposit) TxID() TxID {
	return d.Tx
}

func (d *Deposit) ClientID() ClientID {
	return d.Client
}

func (d *Deposit) Type() TransactionType {
	return TransactionTypeDeposit
}
