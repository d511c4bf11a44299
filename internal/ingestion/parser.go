package ingestion

import (
	"TxLedger/internal/event"
	fpmath "TxLedger/internal/math"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// ErrMalformedRecord is the root of every per-record input error. Callers
// log and skip such records; any other error from Next is fatal.
var ErrMalformedRecord = errors.New("malformed record")

// RecordError describes one unusable input row.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}

// columns holds header positions. amount is -1 when the header lacks it.
type columns struct {
	typ, client, tx, amount int
}

// Reader converts CSV rows into transaction records one at a time. The input
// is never buffered beyond the current row.
type Reader struct {
	csv  *csv.Reader
	cols *columns
}

// NewReader wraps r. The header row is consumed on the first call to Next.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	return &Reader{csv: cr}
}

// Next returns the next record, io.EOF at end of input, a *RecordError for a
// row that should be skipped, or a fatal error.
func (r *Reader) Next() (event.Transaction, error) {
	if r.cols == nil {
		if err := r.readHeader(); err != nil {
			return nil, err
		}
	}

	row, err := r.csv.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, &RecordError{Line: pe.Line, Err: pe.Err}
		}
		return nil, err // io.EOF or I/O failure
	}

	line, _ := r.csv.FieldPos(0)
	tx, err := r.cols.parse(row)
	if err != nil {
		return nil, &RecordError{Line: line, Err: err}
	}
	return tx, nil
}

func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("read header: empty input")
		}
		return fmt.Errorf("read header: %w", err)
	}

	cols := columns{typ: -1, client: -1, tx: -1, amount: -1}
	for i, name := range header {
		switch cases.Fold().String(strings.TrimSpace(name)) {
		case "type":
			cols.typ = i
		case "client":
			cols.client = i
		case "tx":
			cols.tx = i
		case "amount":
			cols.amount = i
		}
	}

	required := []struct {
		name string
		idx  int
	}{{"type", cols.typ}, {"client", cols.client}, {"tx", cols.tx}}
	for _, col := range required {
		if col.idx < 0 {
			return fmt.Errorf("read header: missing column %q", col.name)
		}
	}

	r.cols = &cols
	return nil
}

func (c *columns) parse(row []string) (event.Transaction, error) {
	tt, err := event.ParseTransactionType(field(row, c.typ))
	if err != nil {
		return nil, err
	}

	client, err := strconv.ParseUint(field(row, c.client), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("client: %w", err)
	}

	tx, err := strconv.ParseUint(field(row, c.tx), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("tx: %w", err)
	}

	var amount *fpmath.Decimal
	if raw := field(row, c.amount); raw != "" {
		d, err := fpmath.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("amount: %w", err)
		}
		amount = &d
	}

	return event.NewTransaction(tt, event.ClientID(client), event.TxID(tx), amount)
}

// field returns the trimmed value at idx, or "" if the row is short.
func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
