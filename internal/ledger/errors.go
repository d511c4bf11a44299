package ledger

import "errors"

// Rejection reasons. The engine drops a transaction that fails any of these
// checks; none of them is fatal to a run.
var (
	// ErrDuplicateTransaction is returned when a deposit or withdrawal reuses
	// a tx id already present in the history.
	ErrDuplicateTransaction = errors.New("duplicate transaction id")

	// ErrAccountLocked is returned for any operation on a charged-back account.
	ErrAccountLocked = errors.New("account is locked")

	// ErrInsufficientFunds is returned when a withdrawal exceeds available funds.
	ErrInsufficientFunds = errors.New("insufficient available funds")

	// ErrUnknownTransaction is returned when a dispute, resolve or chargeback
	// references a tx id with no history entry.
	ErrUnknownTransaction = errors.New("unknown transaction")

	// ErrClientMismatch is returned when the referenced tx belongs to
	// another client.
	ErrClientMismatch = errors.New("client id does not match transaction")

	// ErrNotDisputable is returned when disputing a withdrawal.
	ErrNotDisputable = errors.New("transaction is not a deposit")

	// ErrAlreadyDisputed is returned when disputing a tx under dispute.
	ErrAlreadyDisputed = errors.New("transaction is already disputed")

	// ErrNotDisputed is returned when resolving or charging back a tx that
	// is not under dispute.
	ErrNotDisputed = errors.New("transaction is not disputed")
)

// ReasonLabel returns a short, stable label for a rejection, for metrics
// and logs. Unrecognised errors map to "other".
func ReasonLabel(err error) string {
	switch {
	case errors.Is(err, ErrDuplicateTransaction):
		return "duplicate"
	case errors.Is(err, ErrAccountLocked):
		return "locked"
	case errors.Is(err, ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, ErrUnknownTransaction):
		return "unknown_tx"
	case errors.Is(err, ErrClientMismatch):
		return "client_mismatch"
	case errors.Is(err, ErrNotDisputable):
		return "not_disputable"
	case errors.Is(err, ErrAlreadyDisputed):
		return "already_disputed"
	case errors.Is(err, ErrNotDisputed):
		return "not_disputed"
	default:
		return "other"
	}
}
