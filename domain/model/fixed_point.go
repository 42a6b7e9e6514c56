package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v18/arrow/decimal128"
)

// Precision bounds of FixedPoint. Every 18-digit decimal fits in an int64.
const (
	// MinPrecision is the smallest accepted precision
	MinPrecision = 1
	// MaxPrecision is the largest accepted precision
	MaxPrecision = 18
)

var pow10 = [MaxPrecision + 1]uint64{
	1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000,
	1_000_000_000, 10_000_000_000, 100_000_000_000, 1_000_000_000_000,
	10_000_000_000_000, 100_000_000_000_000, 1_000_000_000_000_000,
	10_000_000_000_000_000, 100_000_000_000_000_000, 1_000_000_000_000_000_000,
}

// FixedPoint is an exact decimal of fixed precision and scale (SQL DECIMAL(p,s)).
// The value is raw × 10^-scale. Operations return new values and never mutate
// their operands.
type FixedPoint struct {
	raw       int64
	precision uint8
	scale     uint8
}

// ValidatePrecision checks MinPrecision <= precision <= MaxPrecision and 0 <= scale < precision.
func ValidatePrecision(precision, scale int) error {
	if precision < MinPrecision || precision > MaxPrecision {
		return fmt.Errorf("%w: precision %d is outside [%d, %d]", ErrInvalidPrecision, precision, MinPrecision, MaxPrecision)
	}
	if scale < 0 || scale >= precision {
		return fmt.Errorf("%w: scale %d must be in [0, %d)", ErrInvalidPrecision, scale, precision)
	}
	return nil
}

// NewFixedPoint builds a FixedPoint from its raw integer.
func NewFixedPoint(raw int64, precision, scale int) (FixedPoint, error) {
	if err := ValidatePrecision(precision, scale); err != nil {
		return FixedPoint{}, err
	}
	if n := countDigits(absUint64(raw)); n > precision {
		return FixedPoint{}, fmt.Errorf("%w: raw value %d has %d digits, DECIMAL(%d,%d) allows %d",
			ErrPrecisionOverflow, raw, n, precision, scale, precision)
	}
	return FixedPoint{raw: raw, precision: uint8(precision), scale: uint8(scale)}, nil
}

// FixedPointFromInt scales v by 10^scale.
func FixedPointFromInt[T Integer](v T, precision, scale int) (FixedPoint, error) {
	if err := ValidatePrecision(precision, scale); err != nil {
		return FixedPoint{}, err
	}
	var n decimal128.Num
	if v < 0 {
		n = decimal128.FromI64(int64(v))
	} else {
		n = decimal128.FromU64(uint64(v))
	}
	return fromNum(n.IncreaseScaleBy(int32(scale)), precision, scale)
}

// FixedPointFromFloat converts f using its shortest decimal representation.
// Fractional digits beyond scale are truncated.
func FixedPointFromFloat[T Float](f T, precision, scale int) (FixedPoint, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FixedPoint{}, fmt.Errorf("%w: %v", ErrInvalidDecimal, v)
	}
	bitSize := 64
	if _, ok := any(f).(float32); ok {
		bitSize = 32
	}
	return parseDecimal(strconv.FormatFloat(v, 'f', -1, bitSize), precision, scale, false)
}

// ParseFixedPoint parses a decimal literal such as "-12.50".
//
// The integer part must fit precision-scale digits and the fractional part must fit
// precision digits (leading and trailing zeros are ignored); both fail with
// ErrPrecisionOverflow. The fraction is then truncated, never rounded, to scale digits.
func ParseFixedPoint(s string, precision, scale int) (FixedPoint, error) {
	return parseDecimal(s, precision, scale, true)
}

func parseDecimal(text string, precision, scale int, strictFraction bool) (FixedPoint, error) {
	if err := ValidatePrecision(precision, scale); err != nil {
		return FixedPoint{}, err
	}

	s := strings.TrimSpace(text)
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if (intPart == "" && fracPart == "") || !isDigits(intPart) || !isDigits(fracPart) {
		return FixedPoint{}, fmt.Errorf("%w: %q", ErrInvalidDecimal, text)
	}

	intPart = strings.TrimLeft(intPart, "0")
	if len(intPart) > precision-scale {
		return FixedPoint{}, fmt.Errorf("%w: %q needs %d integer digits, DECIMAL(%d,%d) allows %d",
			ErrPrecisionOverflow, text, len(intPart), precision, scale, precision-scale)
	}
	if n := len(strings.TrimRight(fracPart, "0")); strictFraction && n > precision {
		return FixedPoint{}, fmt.Errorf("%w: %q has %d fractional digits, DECIMAL(%d,%d) allows %d",
			ErrPrecisionOverflow, text, n, precision, scale, precision)
	}
	if len(fracPart) > scale {
		fracPart = fracPart[:scale]
	} else {
		fracPart += strings.Repeat("0", scale-len(fracPart))
	}

	var magnitude uint64
	for _, c := range intPart + fracPart {
		magnitude = magnitude*10 + uint64(c-'0')
	}
	raw := int64(magnitude)
	if negative {
		raw = -raw
	}
	return FixedPoint{raw: raw, precision: uint8(precision), scale: uint8(scale)}, nil
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func absUint64(v int64) uint64 {
	if v < 0 {
		return uint64(-(v + 1)) + 1
	}
	return uint64(v)
}

func countDigits(u uint64) int {
	n := 0
	for u > 0 {
		u /= 10
		n++
	}
	return n
}

func fitsInt64(n decimal128.Num) bool {
	hi, lo := n.HighBits(), n.LowBits()
	return (hi == 0 && lo <= math.MaxInt64) || (hi == -1 && lo > math.MaxInt64)
}

// fromNum narrows a 128-bit raw value to a FixedPoint of the given shape.
func fromNum(n decimal128.Num, precision, scale int) (FixedPoint, error) {
	if !fitsInt64(n) {
		return FixedPoint{}, fmt.Errorf("%w: %s does not fit in 64 bits", ErrIntegerOverflow, n.BigInt().String())
	}
	return NewFixedPoint(int64(n.LowBits()), precision, scale)
}

// FixedPointFromDecimal128 builds a FixedPoint from an Arrow 128-bit decimal
// holding value × 10^scale.
func FixedPointFromDecimal128(n decimal128.Num, precision, scale int) (FixedPoint, error) {
	return fromNum(n, precision, scale)
}

// Raw returns value × 10^scale.
func (f FixedPoint) Raw() int64 { return f.raw }

// Precision returns the total number of significant digits.
func (f FixedPoint) Precision() int { return int(f.precision) }

// Scale returns the number of digits right of the decimal point.
func (f FixedPoint) Scale() int { return int(f.scale) }

// IsZero reports whether the value is zero.
func (f FixedPoint) IsZero() bool { return f.raw == 0 }

// Sign returns -1, 0 or +1.
func (f FixedPoint) Sign() int {
	switch {
	case f.raw < 0:
		return -1
	case f.raw > 0:
		return 1
	default:
		return 0
	}
}

// Int64 returns the integer part (truncated toward zero).
func (f FixedPoint) Int64() int64 { return f.raw / int64(pow10[f.scale]) }

// Int32 returns the integer part converted like a Go int32 conversion.
func (f FixedPoint) Int32() int32 { return int32(f.Int64()) }

// Uint64 returns the integer part converted like a Go uint64 conversion.
func (f FixedPoint) Uint64() uint64 { return uint64(f.Int64()) }

// Uint32 returns the integer part converted like a Go uint32 conversion.
func (f FixedPoint) Uint32() uint32 { return uint32(f.Int64()) }

// Float64 returns the nearest float64.
func (f FixedPoint) Float64() float64 {
	v, _ := strconv.ParseFloat(f.String(), 64)
	return v
}

// Float32 returns the nearest float32.
func (f FixedPoint) Float32() float32 {
	v, _ := strconv.ParseFloat(f.String(), 32)
	return float32(v)
}

// Decimal128 returns the raw value as an Arrow decimal128 number.
func (f FixedPoint) Decimal128() decimal128.Num { return decimal128.FromI64(f.raw) }

// String renders the value with exactly Scale fractional digits.
func (f FixedPoint) String() string {
	digits := strconv.FormatUint(absUint64(f.raw), 10)
	if scale := int(f.scale); scale > 0 {
		if len(digits) <= scale {
			digits = strings.Repeat("0", scale-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-scale] + "." + digits[len(digits)-scale:]
	}
	if f.raw < 0 {
		return "-" + digits
	}
	return digits
}

// Rescale returns the value with another precision and scale.
// Extra fractional digits are truncated.
func (f FixedPoint) Rescale(precision, scale int) (FixedPoint, error) {
	if err := ValidatePrecision(precision, scale); err != nil {
		return FixedPoint{}, err
	}
	return fromNum(rescaleNum(f.Decimal128(), int(f.scale), scale), precision, scale)
}

func rescaleNum(n decimal128.Num, from, to int) decimal128.Num {
	switch {
	case from > to:
		return n.ReduceScaleBy(int32(from-to), false)
	case from < to:
		return n.IncreaseScaleBy(int32(to - from))
	default:
		return n
	}
}

// The result of every arithmetic operator has the precision and scale of the
// left operand. The right operand is brought to that scale first.

// Add returns f + o.
func (f FixedPoint) Add(o FixedPoint) (FixedPoint, error) {
	sum := f.Decimal128().Add(rescaleNum(o.Decimal128(), int(o.scale), int(f.scale)))
	return fromNum(sum, int(f.precision), int(f.scale))
}

// Sub returns f - o.
func (f FixedPoint) Sub(o FixedPoint) (FixedPoint, error) {
	diff := f.Decimal128().Sub(rescaleNum(o.Decimal128(), int(o.scale), int(f.scale)))
	return fromNum(diff, int(f.precision), int(f.scale))
}

// Mul returns f × o truncated toward zero.
func (f FixedPoint) Mul(o FixedPoint) (FixedPoint, error) {
	product := f.Decimal128().Mul(o.Decimal128()).ReduceScaleBy(int32(o.scale), false)
	return fromNum(product, int(f.precision), int(f.scale))
}

// Div returns f ÷ o truncated toward zero.
func (f FixedPoint) Div(o FixedPoint) (FixedPoint, error) {
	if o.raw == 0 {
		return FixedPoint{}, fmt.Errorf("%w: %s / %s", ErrDivisionByZero, f, o)
	}
	quotient, _ := f.Decimal128().IncreaseScaleBy(int32(o.scale)).Div(o.Decimal128())
	return fromNum(quotient, int(f.precision), int(f.scale))
}

// Compare compares values regardless of scale and returns -1, 0 or +1.
func (f FixedPoint) Compare(o FixedPoint) int {
	scale := max(int(f.scale), int(o.scale))
	a := rescaleNum(f.Decimal128(), int(f.scale), scale)
	b := rescaleNum(o.Decimal128(), int(o.scale), scale)
	switch {
	case a.Less(b):
		return -1
	case b.Less(a):
		return 1
	default:
		return 0
	}
}

// Equal reports whether f and o denote the same number.
func (f FixedPoint) Equal(o FixedPoint) bool {
	return f.Compare(o) == 0
}
