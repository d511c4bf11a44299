package event

import (
	fpmath "TxLedger/internal/math"
	"errors"
	"fmt"

	"golang.org/x/text/cases"
)

// ClientID identifies a client account. Assigned upstream.
type ClientID uint16

// TxID is the globally unique transaction id shared by all record kinds.
type TxID uint32

// TransactionType discriminator for transaction records
type TransactionType int32

const (
	TransactionTypeUnknown TransactionType = iota
	TransactionTypeDeposit
	TransactionTypeWithdrawal
	TransactionTypeDispute
	TransactionTypeResolve
	TransactionTypeChargeback
)

var (
	// ErrUnknownType is returned for a type column that names no record kind.
	ErrUnknownType = errors.New("unknown transaction type")

	// ErrMissingAmount is returned for a deposit or withdrawal without an amount.
	ErrMissingAmount = errors.New("missing amount")

	// ErrNegativeAmount is returned for a deposit or withdrawal below zero.
	ErrNegativeAmount = errors.New("negative amount")
)

// Transaction is the interface all transaction records implement
type Transaction interface {
	// TxID returns the transaction id (for disputes, the referenced one)
	TxID() TxID

	// ClientID returns the client the record claims to act on
	ClientID() ClientID

	// Type returns the discriminator
	Type() TransactionType
}

func (tt TransactionType) String() string {
	switch tt {
	case TransactionTypeDeposit:
		return "deposit"
	case TransactionTypeWithdrawal:
		return "withdrawal"
	case TransactionTypeDispute:
		return "dispute"
	case TransactionTypeResolve:
		return "resolve"
	case TransactionTypeChargeback:
		return "chargeback"
	default:
		return "unknown"
	}
}

// ParseTransactionType maps a type column value to its discriminator.
// Matching ignores case (Unicode case folding).
func ParseTransactionType(s string) (TransactionType, error) {
	switch cases.Fold().String(s) {
	case "deposit":
		return TransactionTypeDeposit, nil
	case "withdrawal":
		return TransactionTypeWithdrawal, nil
	case "dispute":
		return TransactionTypeDispute, nil
	case "resolve":
		return TransactionTypeResolve, nil
	case "chargeback":
		return TransactionTypeChargeback, nil
	default:
		return TransactionTypeUnknown, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
}

// NewTransaction builds a validated record. amount is required for deposits
// and withdrawals and ignored for the dispute family.
func NewTransaction(tt TransactionType, client ClientID, tx TxID, amount *fpmath.Decimal) (Transaction, error) {
	switch tt {
	case TransactionTypeDeposit, TransactionTypeWithdrawal:
		if amount == nil {
			return nil, fmt.Errorf("%s tx %d: %w", tt, tx, ErrMissingAmount)
		}
		if amount.IsNegative() {
			return nil, fmt.Errorf("%s tx %d: %w: %s", tt, tx, ErrNegativeAmount, amount)
		}
		if tt == TransactionTypeDeposit {
			return &Deposit{Tx: tx, Client: client, Amount: *amount}, nil
		}
		return &Withdrawal{Tx: tx, Client: client, Amount: *amount}, nil
	case TransactionTypeDispute:
		return &Dispute{Tx: tx, Client: client}, nil
	case TransactionTypeResolve:
		return &Resolve{Tx: tx, Client: client}, nil
	case TransactionTypeChargeback:
		return &Chargeback{Tx: tx, Client: client}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, tt)
	}
}
