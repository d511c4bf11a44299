package ledger

import (
	"TxLedger/internal/event"
	fpmath "TxLedger/internal/math"
	"fmt"
)

// Account is a client's balance record.
//
// Total is never stored; it is derived from Available and Held on read.
type Account struct {
	ClientID  event.ClientID
	Available fpmath.Decimal // Spendable, may go negative after a dispute
	Held      fpmath.Decimal // Frozen pending dispute outcome
	Locked    bool           // Terminal, set by chargeback
}

// NewAccount returns an unlocked account with zero balances.
func NewAccount(cid event.ClientID) *Account {
	return &Account{ClientID: cid}
}

// Total returns available + held.
func (a *Account) Total() fpmath.Decimal {
	return a.Available.Add(a.Held)
}

// EnsureUnlocked returns ErrAccountLocked once the account is frozen.
func (a *Account) EnsureUnlocked() error {
	if a.Locked {
		return fmt.Errorf("client %d: %w", a.ClientID, ErrAccountLocked)
	}
	return nil
}

// EnsureAvailable checks that a withdrawal of amount is covered.
func (a *Account) EnsureAvailable(amount fpmath.Decimal) error {
	if a.Available.LessThan(amount) {
		return fmt.Errorf("client %d: %w: have=%s, need=%s",
			a.ClientID, ErrInsufficientFunds, a.Available, amount)
	}
	return nil
}

// CanonicalBytes for deterministic hashing
func (a *Account) CanonicalBytes() []byte {
	buf := make([]byte, 0, 19)

	// client_id (2 bytes LE)
	buf = append(buf, byte(a.ClientID), byte(a.ClientID>>8))

	// available, held (8 bytes LE each)
	buf = appendInt64LE(buf, a.Available.Raw())
	buf = appendInt64LE(buf, a.Held.Raw())

	if a.Locked {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}

	return buf
}

func appendInt64LE(buf []byte, v int64) []byte {
	return append(buf,
		byte(v),
		byte(v>>8),
		byte(v>>16),
		byte(v>>24),
		byte(v>>32),
		byte(v>>40),
		byte(v>>48),
		byte(v>>56),
	)
}
