package query

import (
	"TxLedger/internal/event"
	"TxLedger/internal/ledger"
	fpmath "TxLedger/internal/math"
	"strconv"
)

// ClientBalance is one row of the account report.
type ClientBalance struct {
	Client    event.ClientID
	Available fpmath.Decimal
	Held      fpmath.Decimal
	Total     fpmath.Decimal // Derived: available + held
	Locked    bool
}

// NewClientBalance derives a report row from an account.
func NewClientBalance(acct ledger.Account) ClientBalance {
	return ClientBalance{
		Client:    acct.ClientID,
		Available: acct.Available,
		Held:      acct.Held,
		Total:     acct.Total(),
		Locked:    acct.Locked,
	}
}

// fields renders the row in header order.
func (b ClientBalance) fields(buf []string) []string {
	return append(buf[:0],
		strconv.FormatUint(uint64(b.Client), 10),
		b.Available.String(),
		b.Held.String(),
		b.Total.String(),
		strconv.FormatBool(b.Locked),
	)
}
