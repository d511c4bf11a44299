package ledger

import (
	"TxLedger/internal/event"
	fpmath "TxLedger/internal/math"
	"sort"
)

// AccountBook maintains in-memory client accounts
type AccountBook struct {
	accounts map[event.ClientID]*Account
	locked   int
}

func NewAccountBook() *AccountBook {
	return &AccountBook{
		accounts: make(map[event.ClientID]*Account),
	}
}

// Account returns the client's account, creating it with zero balances on
// first reference.
func (b *AccountBook) Account(cid event.ClientID) *Account {
	acct, exists := b.accounts[cid]
	if !exists {
		acct = NewAccount(cid)
		b.accounts[cid] = acct
	}
	return acct
}

// Get returns the account without creating it.
func (b *AccountBook) Get(cid event.ClientID) (*Account, bool) {
	acct, exists := b.accounts[cid]
	return acct, exists
}

// === Mutations (callers validate first) ===

// Credit adds amount to available.
func (b *AccountBook) Credit(acct *Account, amount fpmath.Decimal) {
	acct.Available = acct.Available.Add(amount)
}

// Debit removes amount from available.
func (b *AccountBook) Debit(acct *Account, amount fpmath.Decimal) {
	acct.Available = acct.Available.Sub(amount)
}

// Hold moves amount from available to held.
func (b *AccountBook) Hold(acct *Account, amount fpmath.Decimal) {
	acct.Available = acct.Available.Sub(amount)
	acct.Held = acct.Held.Add(amount)
}

// Release moves amount from held back to available.
func (b *AccountBook) Release(acct *Account, amount fpmath.Decimal) {
	acct.Held = acct.Held.Sub(amount)
	acct.Available = acct.Available.Add(amount)
}

// Reverse removes held funds and freezes the account.
func (b *AccountBook) Reverse(acct *Account, amount fpmath.Decimal) {
	acct.Held = acct.Held.Sub(amount)
	if !acct.Locked {
		acct.Locked = true
		b.locked++
	}
}

// === Queries ===

// Len returns the number of known clients
func (b *AccountBook) Len() int {
	return len(b.accounts)
}

// LockedCount returns the number of frozen accounts
func (b *AccountBook) LockedCount() int {
	return b.locked
}

// Snapshot returns copies of all accounts sorted by client id
func (b *AccountBook) Snapshot() []Account {
	out := make([]Account, 0, len(b.accounts))
	for _, acct := range b.accounts {
		out = append(out, *acct)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ClientID < out[j].ClientID
	})

	return out
}
