package core

import (
	"TxLedger/internal/event"
	"TxLedger/internal/ledger"
	"TxLedger/internal/observability"
	"errors"
	"fmt"
	"time"
)

// Engine is the single-threaded transaction processor. It exclusively owns
// the client table and the transaction history; nothing else mutates them.
// Not safe for concurrent use.
type Engine struct {
	sequence  int64 // Applied transactions
	rejected  int64
	hasher    *StateHasher
	accounts  *ledger.AccountBook
	history   *ledger.History
	validator *ledger.InvariantValidator
	metrics   *observability.Metrics
}

// Stats summarises a run.
type Stats struct {
	Applied        int64
	Rejected       int64
	Clients        int
	LockedClients  int
	HistoryEntries int
}

// RejectionError reports a transaction dropped by the engine. Err is one of
// the ledger sentinel errors, possibly wrapped with context.
type RejectionError struct {
	Tx     event.TxID
	Client event.ClientID
	Type   event.TransactionType
	Err    error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%s tx=%d client=%d rejected: %v", e.Type, e.Tx, e.Client, e.Err)
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}

// Reason returns the metric label for the rejection.
func (e *RejectionError) Reason() string {
	return ledger.ReasonLabel(e.Err)
}

var errNilTransaction = errors.New("nil transaction")

// NewEngine returns an engine with no accounts. metrics may be nil.
func NewEngine(metrics *observability.Metrics) *Engine {
	accounts := ledger.NewAccountBook()

	return &Engine{
		hasher:    NewStateHasher(),
		accounts:  accounts,
		history:   ledger.NewHistory(),
		validator: ledger.NewInvariantValidator(accounts),
		metrics:   metrics,
	}
}

// ProcessTransaction applies one transaction. A rejected transaction leaves
// balances and history untouched and returns a *RejectionError; the caller
// is expected to log it and carry on.
func (e *Engine) ProcessTransaction(tx event.Transaction) error {
	if tx == nil {
		return errNilTransaction
	}

	var start time.Time
	if e.metrics != nil {
		start = time.Now()
	}
	txType := tx.Type().String()

	acct, err := e.dispatch(tx)
	if err != nil {
		e.rejected++
		rej := &RejectionError{
			Tx:     tx.TxID(),
			Client: tx.ClientID(),
			Type:   tx.Type(),
			Err:    err,
		}
		if e.metrics != nil {
			e.metrics.TransactionsRejected.WithLabelValues(txType, rej.Reason()).Inc()
			e.metrics.SetStateMetrics(e.accounts.Len(), e.accounts.LockedCount(), e.history.Len())
		}
		return rej
	}

	e.hasher.ComputeHash(e.sequence, e.computeStateDigest(tx, acct))
	e.sequence++

	if e.metrics != nil {
		e.metrics.TransactionsApplied.WithLabelValues(txType).Inc()
		e.metrics.ApplyDuration.WithLabelValues(txType).Observe(time.Since(start).Seconds())
		e.metrics.SetStateMetrics(e.accounts.Len(), e.accounts.LockedCount(), e.history.Len())
	}

	return nil
}

func (e *Engine) dispatch(tx event.Transaction) (*ledger.Account, error) {
	switch t := tx.(type) {
	case *event.Deposit:
		return e.handleDeposit(t)
	case *event.Withdrawal:
		return e.handleWithdrawal(t)
	case *event.Dispute:
		return e.handleDispute(t)
	case *event.Resolve:
		return e.handleResolve(t)
	case *event.Chargeback:
		return e.handleChargeback(t)
	default:
		return nil, fmt.Errorf("unknown transaction type: %T", tx)
	}
}

func (e *Engine) handleDeposit(d *event.Deposit) (*ledger.Account, error) {
	if err := e.history.EnsureUnique(d.Tx); err != nil {
		return nil, err
	}

	acct := e.accounts.Account(d.Client)
	if err := acct.EnsureUnlocked(); err != nil {
		return nil, err
	}

	e.accounts.Credit(acct, d.Amount)
	e.history.Record(d.Tx, d.Client, d.Amount)
	return acct, nil
}

func (e *Engine) handleWithdrawal(w *event.Withdrawal) (*ledger.Account, error) {
	if err := e.history.EnsureUnique(w.Tx); err != nil {
		return nil, err
	}

	acct := e.accounts.Account(w.Client)
	if err := acct.EnsureUnlocked(); err != nil {
		return nil, err
	}
	if err := acct.EnsureAvailable(w.Amount); err != nil {
		return nil, err
	}

	e.accounts.Debit(acct, w.Amount)
	// Stored negative: reserves the tx id and can never pass EnsureDeposit.
	e.history.Record(w.Tx, w.Client, w.Amount.Neg())
	return acct, nil
}

func (e *Engine) handleDispute(d *event.Dispute) (*ledger.Account, error) {
	acct := e.accounts.Account(d.Client)
	if err := acct.EnsureUnlocked(); err != nil {
		return nil, err
	}

	entry, err := e.history.Lookup(d.Tx)
	if err != nil {
		return nil, err
	}
	if err := entry.EnsureOwner(d.Client); err != nil {
		return nil, err
	}
	if err := entry.EnsureDeposit(); err != nil {
		return nil, err
	}
	if err := entry.EnsureNotDisputed(); err != nil {
		return nil, err
	}

	// May drive available negative if the funds were already withdrawn.
	entry.Disputed = true
	e.accounts.Hold(acct, entry.Amount)
	return acct, nil
}

func (e *Engine) handleResolve(r *event.Resolve) (*ledger.Account, error) {
	acct := e.accounts.Account(r.Client)
	if err := acct.EnsureUnlocked(); err != nil {
		return nil, err
	}

	entry, err := e.lookupDisputed(r.Tx, r.Client)
	if err != nil {
		return nil, err
	}

	entry.Disputed = false
	e.accounts.Release(acct, entry.Amount)
	return acct, nil
}

func (e *Engine) handleChargeback(c *event.Chargeback) (*ledger.Account, error) {
	acct := e.accounts.Account(c.Client)
	if err := acct.EnsureUnlocked(); err != nil {
		return nil, err
	}

	entry, err := e.lookupDisputed(c.Tx, c.Client)
	if err != nil {
		return nil, err
	}

	if err := e.validator.ValidateHeldCovers(acct, entry.Amount); err != nil {
		panic(fmt.Sprintf("FATAL: invariant violated: %v", err))
	}

	entry.Disputed = false
	e.accounts.Reverse(acct, entry.Amount)
	return acct, nil
}

// lookupDisputed returns the entry for tx if it belongs to cid and is under dispute.
func (e *Engine) lookupDisputed(tx event.TxID, cid event.ClientID) (*ledger.HistoryEntry, error) {
	entry, err := e.history.Lookup(tx)
	if err != nil {
		return nil, err
	}
	if err := entry.EnsureOwner(cid); err != nil {
		return nil, err
	}
	if err := entry.EnsureDisputed(); err != nil {
		return nil, err
	}
	return entry, nil
}

// computeStateDigest creates canonical bytes for the state hash: the applied
// record followed by the affected account after mutation.
func (e *Engine) computeStateDigest(tx event.Transaction, acct *ledger.Account) []byte {
	digest := make([]byte, 0, 24)

	digest = append(digest, byte(tx.Type()))

	id := uint32(tx.TxID())
	digest = append(digest, byte(id), byte(id>>8), byte(id>>16), byte(id>>24))

	return append(digest, acct.CanonicalBytes()...)
}

// CheckInvariants verifies held balances against the disputed history.
// O(clients + history); meant for end-of-run checks, not the hot path.
func (e *Engine) CheckInvariants() error {
	if err := e.validator.ValidateHeldNonNegative(); err != nil {
		return err
	}
	return e.validator.ValidateHeldMatchesDisputes(e.history)
}

// Accounts returns a copy of every client account, sorted by client id.
func (e *Engine) Accounts() []ledger.Account {
	return e.accounts.Snapshot()
}

// Account returns a copy of one client account.
func (e *Engine) Account(cid event.ClientID) (ledger.Account, bool) {
	acct, ok := e.accounts.Get(cid)
	if !ok {
		return ledger.Account{}, false
	}
	return *acct, true
}

// Stats returns run counters.
func (e *Engine) Stats() Stats {
	return Stats{
		Applied:        e.sequence,
		Rejected:       e.rejected,
		Clients:        e.accounts.Len(),
		LockedClients:  e.accounts.LockedCount(),
		HistoryEntries: e.history.Len(),
	}
}

// StateHash returns the current state hash (chain tip).
func (e *Engine) StateHash() [32]byte {
	return e.hasher.GetPrevHash()
}
