package model

import "strconv"

// 24-bit integer bounds
const (
	// MaxInt24 is the largest Int24 value
	MaxInt24 = 1<<23 - 1
	// MinInt24 is the smallest Int24 value
	MinInt24 = -1 << 23
	// MaxUInt24 is the largest UInt24 value
	MaxUInt24 = 1<<24 - 1

	uint24Mask = 0x00FFFFFF
)

// Integer is the set of native integer types.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float is the set of native floating point types.
type Float interface {
	~float32 | ~float64
}

// Int24 is a signed 24-bit two's-complement integer (SQL MEDIUMINT).
// Arithmetic wraps modulo 2^24.
type Int24 struct {
	v int32
}

// UInt24 is an unsigned 24-bit integer (SQL MEDIUMINT UNSIGNED).
// Arithmetic wraps modulo 2^24.
type UInt24 struct {
	v uint32
}

func signExtend24(u uint32) int32 {
	return int32(u<<8) >> 8
}

// ToInt24 keeps the low 24 bits of n and sign-extends them.
func ToInt24[T Integer](n T) Int24 {
	return Int24{v: signExtend24(uint32(n))}
}

// Int24FromFloat truncates f toward zero, then behaves like ToInt24.
func Int24FromFloat[T Float](f T) Int24 {
	return ToInt24(int64(f))
}

// ToUInt24 keeps the low 24 bits of n.
func ToUInt24[T Integer](n T) UInt24 {
	return UInt24{v: uint32(n) & uint24Mask}
}

// UInt24FromFloat truncates f toward zero, then behaves like ToUInt24.
func UInt24FromFloat[T Float](f T) UInt24 {
	return ToUInt24(int64(f))
}

// Int32 returns the sign-extended value.
func (a Int24) Int32() int32 { return a.v }

// Int64 returns the sign-extended value.
func (a Int24) Int64() int64 { return int64(a.v) }

// Uint32 returns the sign-extended value reinterpreted as unsigned.
func (a Int24) Uint32() uint32 { return uint32(a.v) }

// Uint64 returns the sign-extended value reinterpreted as unsigned.
func (a Int24) Uint64() uint64 { return uint64(int64(a.v)) }

// Float32 returns a as float32. Every Int24 is exact in a float32.
func (a Int24) Float32() float32 { return float32(a.v) }

// Float64 returns a as float64.
func (a Int24) Float64() float64 { return float64(a.v) }

// String returns the decimal representation.
func (a Int24) String() string { return strconv.FormatInt(int64(a.v), 10) }

// Add returns a + b modulo 2^24.
func (a Int24) Add(b Int24) Int24 { return ToInt24(a.v + b.v) }

// Sub returns a - b modulo 2^24.
func (a Int24) Sub(b Int24) Int24 { return ToInt24(a.v - b.v) }

// Mul returns a * b modulo 2^24.
func (a Int24) Mul(b Int24) Int24 { return ToInt24(a.v * b.v) }

// Neg returns -a modulo 2^24.
func (a Int24) Neg() Int24 { return ToInt24(-a.v) }

// Shl shifts at 32-bit width, then keeps the low 24 bits.
func (a Int24) Shl(n uint) Int24 { return ToInt24(a.v << n) }

// Shr is an arithmetic shift at 32-bit width.
func (a Int24) Shr(n uint) Int24 { return ToInt24(a.v >> n) }

// Div returns a / b truncated toward zero, modulo 2^24.
// A zero divisor is reported as ErrDivisionByZero only while a fault translator is
// installed; otherwise the division reaches the Go runtime, which panics.
func (a Int24) Div(b Int24) (Int24, error) {
	if b.v == 0 {
		if err := translateFault("Int24.Div"); err != nil {
			return Int24{}, err
		}
	}
	return ToInt24(a.v / b.v), nil
}

// Mod returns the remainder of a / b. Zero divisors behave as in Div.
func (a Int24) Mod(b Int24) (Int24, error) {
	if b.v == 0 {
		if err := translateFault("Int24.Mod"); err != nil {
			return Int24{}, err
		}
	}
	return ToInt24(a.v % b.v), nil
}

// Compare returns -1, 0 or +1.
func (a Int24) Compare(b Int24) int {
	switch {
	case a.v < b.v:
		return -1
	case a.v > b.v:
		return 1
	default:
		return 0
	}
}

// Int32 returns the zero-extended value.
func (a UInt24) Int32() int32 { return int32(a.v) }

// Int64 returns the zero-extended value.
func (a UInt24) Int64() int64 { return int64(a.v) }

// Uint32 returns the zero-extended value.
func (a UInt24) Uint32() uint32 { return a.v }

// Uint64 returns the zero-extended value.
func (a UInt24) Uint64() uint64 { return uint64(a.v) }

// Float32 returns a as float32. Every UInt24 is exact in a float32.
func (a UInt24) Float32() float32 { return float32(a.v) }

// Float64 returns a as float64.
func (a UInt24) Float64() float64 { return float64(a.v) }

// String returns the decimal representation.
func (a UInt24) String() string { return strconv.FormatUint(uint64(a.v), 10) }

// Add returns a + b modulo 2^24.
func (a UInt24) Add(b UInt24) UInt24 { return ToUInt24(a.v + b.v) }

// Sub returns a - b modulo 2^24.
func (a UInt24) Sub(b UInt24) UInt24 { return ToUInt24(a.v - b.v) }

// Mul returns a * b modulo 2^24.
func (a UInt24) Mul(b UInt24) UInt24 { return ToUInt24(a.v * b.v) }

// Shl shifts at 32-bit width, then keeps the low 24 bits.
func (a UInt24) Shl(n uint) UInt24 { return ToUInt24(a.v << n) }

// Shr is a logical shift.
func (a UInt24) Shr(n uint) UInt24 { return ToUInt24(a.v >> n) }

// Div returns a / b. Zero divisors behave as in Int24.Div.
func (a UInt24) Div(b UInt24) (UInt24, error) {
	if b.v == 0 {
		if err := translateFault("UInt24.Div"); err != nil {
			return UInt24{}, err
		}
	}
	return ToUInt24(a.v / b.v), nil
}

// Mod returns the remainder of a / b. Zero divisors behave as in Int24.Div.
func (a UInt24) Mod(b UInt24) (UInt24, error) {
	if b.v == 0 {
		if err := translateFault("UInt24.Mod"); err != nil {
			return UInt24{}, err
		}
	}
	return ToUInt24(a.v % b.v), nil
}

// Compare returns -1, 0 or +1.
func (a UInt24) Compare(b UInt24) int {
	switch {
	case a.v < b.v:
		return -1
	case a.v > b.v:
		return 1
	default:
		return 0
	}
}
