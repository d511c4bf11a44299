package query

import (
	"TxLedger/internal/ledger"
	"encoding/csv"
	"fmt"
	"io"
)

// Header is the first line of the account report.
var Header = []string{"client", "available", "held", "total", "locked"}

// WriteBalances renders one row per account, in the order given.
func WriteBalances(w io.Writer, accounts []ledger.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, 0, len(Header))
	for _, acct := range accounts {
		row = NewClientBalance(acct).fields(row)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write client %d: %w", acct.ClientID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush balances: %w", err)
	}
	return nil
}
