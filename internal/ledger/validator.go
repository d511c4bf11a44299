package ledger

import (
	"TxLedger/internal/event"
	fpmath "TxLedger/internal/math"
	"fmt"
)

// InvariantValidator checks ledger invariants
type InvariantValidator struct {
	book *AccountBook
}

func NewInvariantValidator(book *AccountBook) *InvariantValidator {
	return &InvariantValidator{
		book: book,
	}
}

// ValidateHeldCovers verifies held >= amount before a chargeback.
// Held only grows through a dispute of the same entry, so a failure here is
// a bug in the engine, not bad input.
func (v *InvariantValidator) ValidateHeldCovers(acct *Account, amount fpmath.Decimal) error {
	if acct.Held.LessThan(amount) {
		return fmt.Errorf("client %d held %s does not cover %s", acct.ClientID, acct.Held, amount)
	}
	return nil
}

// ValidateHeldNonNegative checks held >= 0 for every account
func (v *InvariantValidator) ValidateHeldNonNegative() error {
	for _, acct := range v.book.accounts {
		if acct.Held.IsNegative() {
			return fmt.Errorf("client %d has negative held balance: %s", acct.ClientID, acct.Held)
		}
	}
	return nil
}

// ValidateHeldMatchesDisputes verifies that every client's held balance
// equals the sum of its disputed history entries.
func (v *InvariantValidator) ValidateHeldMatchesDisputes(history *History) error {
	expected := make(map[event.ClientID]fpmath.Decimal)
	for _, entry := range history.entries {
		if entry.Disputed {
			expected[entry.ClientID] = expected[entry.ClientID].Add(entry.Amount)
		}
	}

	for cid, acct := range v.book.accounts {
		want := expected[cid]
		if acct.Held != want {
			return fmt.Errorf("client %d held %s, disputed entries sum to %s", cid, acct.Held, want)
		}
	}

	return nil
}
