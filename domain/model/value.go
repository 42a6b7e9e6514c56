package model

import (
	"bytes"
	"fmt"
	"time"
)

// Payload is the set of in-memory representations a Value can hold.
type Payload interface {
	bool | int8 | uint8 | int16 | uint16 | Int24 | UInt24 | int32 | uint32 | int64 | uint64 |
		float32 | float64 | FixedPoint | string | WString | []byte | Date | TimeOfDay | time.Time
}

// Value is one typed SQL scalar. It is implemented only by *Scalar[T], one
// instantiation per TypeTag, and is created with NewValue.
type Value interface {
	// Tag returns the type tag the value was created for.
	Tag() TypeTag
	// Infos returns the metadata shared with the owning cell.
	Infos() *ValuedObjectInfos
	// IsNull reports whether the value is null.
	IsNull() bool
	// SetNull clears the value.
	SetNull()
	// RawPointer returns a pointer to the payload. It stays the same for the
	// lifetime of the value, so collaborators can use it as an identity.
	RawPointer() any
	// QueryLiteral renders the value as backend-agnostic SQL literal text.
	QueryLiteral() string
	// QueryLiteralFor renders the value as SQL literal text for a dialect.
	QueryLiteralFor(d Dialect) string

	sealed()
}

// Scalar is the Value holding a payload of type T.
type Scalar[T Payload] struct {
	infos *ValuedObjectInfos
	data  T
	null  bool
}

func newScalar[T Payload](infos *ValuedObjectInfos) *Scalar[T] {
	return &Scalar[T]{infos: infos, null: true}
}

func (s *Scalar[T]) sealed() {}

// Tag returns the type tag the value was created for.
func (s *Scalar[T]) Tag() TypeTag { return s.infos.Tag() }

// Infos returns the metadata shared with the owning cell.
func (s *Scalar[T]) Infos() *ValuedObjectInfos { return s.infos }

// IsNull reports whether the value is null.
func (s *Scalar[T]) IsNull() bool { return s.null }

// SetNull clears the value.
func (s *Scalar[T]) SetNull() {
	var zero T
	s.data = zero
	s.null = true
}

// RawPointer returns &payload.
func (s *Scalar[T]) RawPointer() any { return &s.data }

// Get returns the payload and false when the value is null.
func (s *Scalar[T]) Get() (T, bool) {
	return s.data, !s.null
}

// Set stores v. Character payloads are cut to the length limit in runes, binary
// payloads in bytes, and decimals are brought to the declared precision and scale.
// Datetimes are kept in UTC.
func (s *Scalar[T]) Set(v T) error {
	limit := s.infos.Limit()
	switch x := any(v).(type) {
	case string:
		v = any(truncateRunes(x, limit)).(T)
	case WString:
		if limit > 0 && uint32(len(x)) > limit {
			x = x[:limit]
		}
		v = any(append(WString(nil), x...)).(T)
	case []byte:
		if limit > 0 && uint32(len(x)) > limit {
			x = x[:limit]
		}
		v = any(bytes.Clone(x)).(T)
	case FixedPoint:
		if s.infos != nil {
			fp, err := x.Rescale(s.infos.Precision(), s.infos.Scale())
			if err != nil {
				return err
			}
			v = any(fp).(T)
		}
	case time.Time:
		v = any(x.UTC()).(T)
	}
	s.data = v
	s.null = false
	return nil
}

// QueryLiteral renders the value as backend-agnostic SQL literal text.
func (s *Scalar[T]) QueryLiteral() string {
	return s.QueryLiteralFor(DialectGeneric)
}

// QueryLiteralFor renders the value as SQL literal text for d.
func (s *Scalar[T]) QueryLiteralFor(d Dialect) string {
	if s.null {
		return "NULL"
	}
	return renderLiteral(d, any(s.data))
}

// NewValue creates the null value matching infos.Tag().
func NewValue(infos *ValuedObjectInfos) (Value, error) {
	switch infos.Tag() {
	case TypeBit:
		return newScalar[bool](infos), nil
	case TypeSInt8:
		return newScalar[int8](infos), nil
	case TypeUInt8:
		return newScalar[uint8](infos), nil
	case TypeSInt16:
		return newScalar[int16](infos), nil
	case TypeUInt16:
		return newScalar[uint16](infos), nil
	case TypeSInt24:
		return newScalar[Int24](infos), nil
	case TypeUInt24:
		return newScalar[UInt24](infos), nil
	case TypeSInt32:
		return newScalar[int32](infos), nil
	case TypeUInt32:
		return newScalar[uint32](infos), nil
	case TypeSInt64:
		return newScalar[int64](infos), nil
	case TypeUInt64:
		return newScalar[uint64](infos), nil
	case TypeFloat32:
		return newScalar[float32](infos), nil
	case TypeFloat64:
		return newScalar[float64](infos), nil
	case TypeFixedPoint:
		return newScalar[FixedPoint](infos), nil
	case TypeChar, TypeVarChar, TypeText:
		return newScalar[string](infos), nil
	case TypeNChar, TypeNVarChar, TypeNText:
		return newScalar[WString](infos), nil
	case TypeDate:
		return newScalar[Date](infos), nil
	case TypeTime:
		return newScalar[TimeOfDay](infos), nil
	case TypeDateTime:
		return newScalar[time.Time](infos), nil
	case TypeBinary, TypeVarBinary, TypeBlob:
		return newScalar[[]byte](infos), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, infos.Tag())
	}
}

type numericKind uint8

const (
	numSigned numericKind = iota
	numUnsigned
	numFloat
	numFixed
)

// numeric is the common form numbers take while moving between widths.
type numeric struct {
	kind   numericKind
	i      int64
	u      uint64
	f      float64
	d      FixedPoint
	single bool // f came from a float32
}

func signedNumeric(i int64) numeric { return numeric{kind: numSigned, i: i} }
func unsignedNumeric(u uint64) numeric { return numeric{kind: numUnsigned, u: u} }
func floatNumeric(f float64) numeric { return numeric{kind: numFloat, f: f} }
func fixedNumeric(d FixedPoint) numeric { return numeric{kind: numFixed, d: d} }

func boolNumeric(b bool) numeric {
	if b {
		return unsignedNumeric(1)
	}
	return unsignedNumeric(0)
}

func (n numeric) int64() int64 {
	switch n.kind {
	case numUnsigned:
		return int64(n.u)
	case numFloat:
		return int64(n.f)
	case numFixed:
		return n.d.Int64()
	default:
		return n.i
	}
}

func (n numeric) uint64() uint64 {
	switch n.kind {
	case numSigned:
		return uint64(n.i)
	case numFloat:
		if n.f < 0 {
			return uint64(int64(n.f))
		}
		return uint64(n.f)
	case numFixed:
		return n.d.Uint64()
	default:
		return n.u
	}
}

func (n numeric) float64() float64 {
	switch n.kind {
	case numSigned:
		return float64(n.i)
	case numUnsigned:
		return float64(n.u)
	case numFixed:
		return n.d.Float64()
	default:
		return n.f
	}
}

func (n numeric) nonZero() bool {
	switch n.kind {
	case numSigned:
		return n.i != 0
	case numUnsigned:
		return n.u != 0
	case numFixed:
		return !n.d.IsZero()
	default:
		return n.f != 0
	}
}

func (n numeric) fixed(precision, scale int) (FixedPoint, error) {
	switch n.kind {
	case numSigned:
		return FixedPointFromInt(n.i, precision, scale)
	case numUnsigned:
		return FixedPointFromInt(n.u, precision, scale)
	case numFloat:
		if n.single {
			return FixedPointFromFloat(float32(n.f), precision, scale)
		}
		return FixedPointFromFloat(n.f, precision, scale)
	default:
		return n.d.Rescale(precision, scale)
	}
}

// numericOf reads a numeric cell.
func numericOf(v Value) (numeric, error) {
	switch s := v.(type) {
	case *Scalar[bool]:
		return boolNumeric(s.data), nil
	case *Scalar[int8]:
		return signedNumeric(int64(s.data)), nil
	case *Scalar[uint8]:
		return unsignedNumeric(uint64(s.data)), nil
	case *Scalar[int16]:
		return signedNumeric(int64(s.data)), nil
	case *Scalar[uint16]:
		return unsignedNumeric(uint64(s.data)), nil
	case *Scalar[Int24]:
		return signedNumeric(s.data.Int64()), nil
	case *Scalar[UInt24]:
		return unsignedNumeric(s.data.Uint64()), nil
	case *Scalar[int32]:
		return signedNumeric(int64(s.data)), nil
	case *Scalar[uint32]:
		return unsignedNumeric(uint64(s.data)), nil
	case *Scalar[int64]:
		return signedNumeric(s.data), nil
	case *Scalar[uint64]:
		return unsignedNumeric(s.data), nil
	case *Scalar[float32]:
		return numeric{kind: numFloat, f: float64(s.data), single: true}, nil
	case *Scalar[float64]:
		return floatNumeric(s.data), nil
	case *Scalar[FixedPoint]:
		return fixedNumeric(s.data), nil
	default:
		return numeric{}, fmt.Errorf("%w: %s is not numeric", ErrTypeMismatch, v.Tag())
	}
}

// storeNumeric writes n into a numeric or character cell. Integer widths keep
// the low bits, floats truncate toward zero.
func storeNumeric(v Value, n numeric) error {
	switch s := v.(type) {
	case *Scalar[bool]:
		return s.Set(n.nonZero())
	case *Scalar[int8]:
		return s.Set(int8(n.int64()))
	case *Scalar[uint8]:
		return s.Set(uint8(n.uint64()))
	case *Scalar[int16]:
		return s.Set(int16(n.int64()))
	case *Scalar[uint16]:
		return s.Set(uint16(n.uint64()))
	case *Scalar[Int24]:
		return s.Set(ToInt24(n.int64()))
	case *Scalar[UInt24]:
		return s.Set(ToUInt24(n.uint64()))
	case *Scalar[int32]:
		return s.Set(int32(n.int64()))
	case *Scalar[uint32]:
		return s.Set(uint32(n.uint64()))
	case *Scalar[int64]:
		return s.Set(n.int64())
	case *Scalar[uint64]:
		return s.Set(n.uint64())
	case *Scalar[float32]:
		return s.Set(float32(n.float64()))
	case *Scalar[float64]:
		return s.Set(n.float64())
	case *Scalar[FixedPoint]:
		fp, err := n.fixed(s.infos.Precision(), s.infos.Scale())
		if err != nil {
			return err
		}
		return s.Set(fp)
	case *Scalar[string], *Scalar[WString]:
		return storeText(v, n.text())
	default:
		return fmt.Errorf("%w: cannot store a number in %s", ErrTypeMismatch, v.Tag())
	}
}
