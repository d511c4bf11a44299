package math

import (
	"errors"
	"fmt"
	stdmath "math"
	"strconv"
	"strings"
)

// DecimalConfig defines fixed-point precision
type DecimalConfig struct {
	DecimalPrecision int   // Number of decimal places
	Scale            int64 // 10^DecimalPrecision
}

// AmountConfig is the single unit of account: 4 fractional digits.
var AmountConfig = DecimalConfig{DecimalPrecision: 4, Scale: 10_000} // 0.0001

// ErrInvalidDecimal is wrapped by every Parse failure.
var ErrInvalidDecimal = errors.New("invalid decimal")

// Decimal is a signed fixed-point amount stored as value * AmountConfig.Scale.
// The zero value is 0.0. Decimals are comparable with ==.
type Decimal struct {
	raw int64
}

// Zero is 0.0.
var Zero = Decimal{}

// NewDecimal returns integral*Scale + fractional, where fractional is already
// expressed in units of 1/Scale (NewDecimal(1, 5000) == 1.5).
func NewDecimal(integral, fractional int64) Decimal {
	return Decimal{raw: integral*AmountConfig.Scale + fractional}
}

// FromRaw wraps an already scaled value.
func FromRaw(raw int64) Decimal {
	return Decimal{raw: raw}
}

// Raw returns the scaled integer representation.
func (d Decimal) Raw() int64 {
	return d.raw
}

func (d Decimal) Add(other Decimal) Decimal {
	return Decimal{raw: d.raw + other.raw}
}

func (d Decimal) Sub(other Decimal) Decimal {
	return Decimal{raw: d.raw - other.raw}
}

func (d Decimal) Neg() Decimal {
	return Decimal{raw: -d.raw}
}

// Cmp returns -1, 0 or +1.
func (d Decimal) Cmp(other Decimal) int {
	switch {
	case d.raw < other.raw:
		return -1
	case d.raw > other.raw:
		return 1
	default:
		return 0
	}
}

func (d Decimal) LessThan(other Decimal) bool {
	return d.raw < other.raw
}

func (d Decimal) GreaterThanOrEqual(other Decimal) bool {
	return d.raw >= other.raw
}

func (d Decimal) IsNegative() bool {
	return d.raw < 0
}

func (d Decimal) IsZero() bool {
	return d.raw == 0
}

// String renders the canonical form: at least one fractional digit, trailing
// fractional zeros trimmed ("0.0", "1.5", "-0.0003").
func (d Decimal) String() string {
	var b strings.Builder

	// uint64 keeps MinInt64 representable after negation
	mag := uint64(d.raw)
	if d.raw < 0 {
		b.WriteByte('-')
		mag = uint64(-d.raw)
	}

	scale := uint64(AmountConfig.Scale)
	b.WriteString(strconv.FormatUint(mag/scale, 10))
	b.WriteByte('.')

	frac := mag % scale
	if frac == 0 {
		b.WriteByte('0')
		return b.String()
	}

	digits := strconv.FormatUint(frac, 10)
	b.WriteString(strings.Repeat("0", AmountConfig.DecimalPrecision-len(digits)))
	b.WriteString(strings.TrimRight(digits, "0"))
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decimal) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Parse reads "[-]digits[.digits]". Fractional digits past the fourth are
// truncated, never rounded.
func Parse(s string) (Decimal, error) {
	s = strings.TrimSpace(s)

	negative := false
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		negative = true
		s = rest
	}

	intPart, fracPart, hasDot := strings.Cut(s, ".")
	if hasDot && strings.Contains(fracPart, ".") {
		return Zero, fmt.Errorf("%w: more than one dot in %q", ErrInvalidDecimal, s)
	}

	if !isDigits(intPart) {
		return Zero, fmt.Errorf("%w: integral part %q is not numeric", ErrInvalidDecimal, intPart)
	}
	integral, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Zero, fmt.Errorf("%w: integral part %q: %v", ErrInvalidDecimal, intPart, err)
	}
	if integral > (stdmath.MaxInt64-AmountConfig.Scale)/AmountConfig.Scale {
		return Zero, fmt.Errorf("%w: %q out of range", ErrInvalidDecimal, intPart)
	}

	fractional, err := parseFraction(fracPart)
	if err != nil {
		return Zero, err
	}

	raw := integral*AmountConfig.Scale + fractional
	if negative {
		raw = -raw
	}
	return Decimal{raw: raw}, nil
}

// MustParse is Parse for literals known to be valid. Panics otherwise.
func MustParse(s string) Decimal {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// parseFraction scales 0..4 digits to 1/Scale units, truncating extra digits.
func parseFraction(frac string) (int64, error) {
	if frac == "" {
		return 0, nil
	}
	if !isDigits(frac) {
		return 0, fmt.Errorf("%w: fractional part %q is not numeric", ErrInvalidDecimal, frac)
	}

	precision := AmountConfig.DecimalPrecision
	if len(frac) > precision {
		frac = frac[:precision]
	}
	v, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: fractional part %q: %v", ErrInvalidDecimal, frac, err)
	}
	for i := len(frac); i < precision; i++ {
		v *= 10
	}
	return v, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
