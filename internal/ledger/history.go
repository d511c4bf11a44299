package ledger

import (
	"TxLedger/internal/event"
	fpmath "TxLedger/internal/math"
	"fmt"
)

// HistoryEntry is the retained record of an applied deposit or withdrawal.
type HistoryEntry struct {
	ClientID event.ClientID // Owner, cross-checked by the dispute family
	Amount   fpmath.Decimal // Positive for deposits, negative for withdrawals
	Disputed bool
}

// EnsureDeposit rejects withdrawal entries, which are never disputable.
func (h *HistoryEntry) EnsureDeposit() error {
	if h.Amount.IsNegative() {
		return ErrNotDisputable
	}
	return nil
}

// EnsureDisputed returns ErrNotDisputed unless the entry is under dispute.
func (h *HistoryEntry) EnsureDisputed() error {
	if !h.Disputed {
		return ErrNotDisputed
	}
	return nil
}

// EnsureNotDisputed returns ErrAlreadyDisputed if the entry is under dispute.
func (h *HistoryEntry) EnsureNotDisputed() error {
	if h.Disputed {
		return ErrAlreadyDisputed
	}
	return nil
}

// EnsureOwner returns ErrClientMismatch when cid is not the entry's owner.
func (h *HistoryEntry) EnsureOwner(cid event.ClientID) error {
	if h.ClientID != cid {
		return fmt.Errorf("%w: expected %d, got %d", ErrClientMismatch, h.ClientID, cid)
	}
	return nil
}

// History maps tx ids to entries. Entries are never removed, so a tx id stays
// reserved for the lifetime of the engine.
// Not thread-safe; only the engine touches it.
type History struct {
	entries map[event.TxID]*HistoryEntry
}

func NewHistory() *History {
	return &History{
		entries: make(map[event.TxID]*HistoryEntry),
	}
}

// EnsureUnique returns ErrDuplicateTransaction if tx was already recorded.
func (h *History) EnsureUnique(tx event.TxID) error {
	if _, exists := h.entries[tx]; exists {
		return fmt.Errorf("tx %d: %w", tx, ErrDuplicateTransaction)
	}
	return nil
}

// Lookup returns the entry for tx or ErrUnknownTransaction.
func (h *History) Lookup(tx event.TxID) (*HistoryEntry, error) {
	entry, exists := h.entries[tx]
	if !exists {
		return nil, fmt.Errorf("tx %d: %w", tx, ErrUnknownTransaction)
	}
	return entry, nil
}

// Record stores a new entry. The caller must have checked EnsureUnique.
func (h *History) Record(tx event.TxID, cid event.ClientID, amount fpmath.Decimal) {
	h.entries[tx] = &HistoryEntry{
		ClientID: cid,
		Amount:   amount,
	}
}

// Len returns the number of retained entries
func (h *History) Len() int {
	return len(h.entries)
}
