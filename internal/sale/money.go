package sale

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// Money is an amount in cents.
type Money int64

// Quantity is a fixed-point amount with four decimal places (10000 = 1 unit).
type Quantity int64

// QuantityScale is the number of Quantity steps in one unit.
const QuantityScale = 10000

// One is a quantity of a single unit.
const One Quantity = QuantityScale

// Bounds accepted by the parsers and by AddItem. A line or sale total above
// MaxMoney is rejected.
const (
	MaxMoney    Money    = 99_999_999_999 // 999,999,999.99
	MaxQuantity Quantity = 99_999 * One
)

var decimalRe = regexp.MustCompile(`^-?\d+([.,]\d+)?$`)

// ParseMoney parses a decimal string such as "12.5" or "12,50" into cents,
// rounding half-up beyond two decimals.
func ParseMoney(s string) (Money, error) {
	v, err := parseScaled(s, 100, int64(MaxMoney))
	if err != nil {
		return 0, fmt.Errorf("sale: parse money %q: %w", s, err)
	}
	return Money(v), nil
}

// ParseQuantity parses a decimal string into a Quantity, rounding half-up
// beyond four decimals.
func ParseQuantity(s string) (Quantity, error) {
	v, err := parseScaled(s, QuantityScale, int64(MaxQuantity))
	if err != nil {
		return 0, fmt.Errorf("sale: parse quantity %q: %w", s, err)
	}
	return Quantity(v), nil
}

// String formats m with two decimals.
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// String formats q with the minimum number of decimals, e.g. "1", "0.25".
func (q Quantity) String() string {
	sign := ""
	v := int64(q)
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole, frac := v/QuantityScale, v%QuantityScale
	if frac == 0 {
		return fmt.Sprintf("%s%d", sign, whole)
	}
	return strings.TrimRight(fmt.Sprintf("%s%d.%04d", sign, whole, frac), "0")
}

// Times returns price × q rounded half-up to the cent. A result outside the
// int64 range saturates.
func (m Money) Times(q Quantity) Money {
	n := new(big.Int).Mul(big.NewInt(int64(m)), big.NewInt(int64(q)))
	r := new(big.Rat).SetFrac(n, big.NewInt(QuantityScale))
	return Money(saturate(roundHalfUp(r, 1)))
}

// Percent returns p percent of m rounded half-up to the cent. p is taken at
// its shortest decimal form, so 10.1 means exactly 10.1.
func (m Money) Percent(p float64) Money {
	pr, ok := new(big.Rat).SetString(strconv.FormatFloat(p, 'f', -1, 64))
	if !ok {
		return 0
	}
	r := new(big.Rat).SetInt64(int64(m))
	r.Mul(r, pr)
	r.Quo(r, big.NewRat(100, 1))
	return Money(saturate(roundHalfUp(r, 1)))
}

// parseScaled parses a plain decimal and returns it times scale, rounded
// half-up. Values whose magnitude exceeds limit are rejected.
func parseScaled(s string, scale, limit int64) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty value: %w", ErrInvalid)
	}
	if !decimalRe.MatchString(s) {
		return 0, fmt.Errorf("not a decimal number: %w", ErrInvalid)
	}
	r, ok := new(big.Rat).SetString(strings.ReplaceAll(s, ",", "."))
	if !ok {
		return 0, fmt.Errorf("not a decimal number: %w", ErrInvalid)
	}
	v := roundHalfUp(r, scale)
	if v.CmpAbs(big.NewInt(limit)) > 0 {
		return 0, fmt.Errorf("out of range: %w", ErrInvalid)
	}
	return v.Int64(), nil
}

// roundHalfUp returns r×scale rounded half away from zero.
func roundHalfUp(r *big.Rat, scale int64) *big.Int {
	x := new(big.Rat).Mul(r, big.NewRat(scale, 1))
	neg := x.Sign() < 0
	if neg {
		x.Neg(x)
	}
	x.Add(x, big.NewRat(1, 2))
	q := new(big.Int).Quo(x.Num(), x.Denom())
	if neg {
		q.Neg(q)
	}
	return q
}

func saturate(v *big.Int) int64 {
	switch {
	case v.IsInt64():
		return v.Int64()
	case v.Sign() < 0:
		return math.MinInt64
	default:
		return math.MaxInt64
	}
}
