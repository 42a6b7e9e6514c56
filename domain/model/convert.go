package model

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Host is the set of Go types a cell can be read as or written from.
type Host interface {
	Payload | int | uint
}

// HostTag returns the type tag whose payload corresponds to the host type T.
// int and uint map to the 64-bit tags on 64-bit platforms, string to VARCHAR,
// WString to NVARCHAR and []byte to VARBINARY.
func HostTag[T Host]() TypeTag {
	var zero T
	switch any(zero).(type) {
	case bool:
		return TypeBit
	case int8:
		return TypeSInt8
	case uint8:
		return TypeUInt8
	case int16:
		return TypeSInt16
	case uint16:
		return TypeUInt16
	case Int24:
		return TypeSInt24
	case UInt24:
		return TypeUInt24
	case int32:
		return TypeSInt32
	case uint32:
		return TypeUInt32
	case int64:
		return TypeSInt64
	case uint64:
		return TypeUInt64
	case int:
		if strconv.IntSize == 32 {
			return TypeSInt32
		}
		return TypeSInt64
	case uint:
		if strconv.IntSize == 32 {
			return TypeUInt32
		}
		return TypeUInt64
	case float32:
		return TypeFloat32
	case float64:
		return TypeFloat64
	case FixedPoint:
		return TypeFixedPoint
	case string:
		return TypeVarChar
	case WString:
		return TypeNVarChar
	case []byte:
		return TypeVarBinary
	case Date:
		return TypeDate
	case TimeOfDay:
		return TypeTime
	case time.Time:
		return TypeDateTime
	default:
		return TypeNull
	}
}

// ReadAs converts the content of v to T without consulting the compatibility
// matrix. A null value yields the zero value of T.
func ReadAs[T Host](v Value) (T, error) {
	var out T
	err := ReadInto(v, &out)
	return out, err
}

// ReadInto is ReadAs writing into out. out is left untouched on error.
func ReadInto[T Host](v Value, out *T) error {
	if v.IsNull() {
		var zero T
		*out = zero
		return nil
	}

	switch p := any(out).(type) {
	case *string:
		*p = textOf(v)
		return nil
	case *WString:
		*p = WString(textOf(v))
		return nil
	case *[]byte:
		*p = bytesOf(v)
		return nil
	case *FixedPoint:
		if s, ok := v.(*Scalar[FixedPoint]); ok {
			*p = s.data
			return nil
		}
	case *Date, *TimeOfDay, *time.Time:
		t, err := timeOf(v)
		if err != nil {
			return err
		}
		switch p := p.(type) {
		case *Date:
			*p = DateOf(t)
		case *TimeOfDay:
			*p = TimeOfDayOf(t)
		case *time.Time:
			*p = t
		}
		return nil
	}

	n, err := numericOf(v)
	if err != nil {
		return err
	}
	switch p := any(out).(type) {
	case *bool:
		*p = n.nonZero()
	case *int8:
		*p = int8(n.int64())
	case *uint8:
		*p = uint8(n.uint64())
	case *int16:
		*p = int16(n.int64())
	case *uint16:
		*p = uint16(n.uint64())
	case *Int24:
		*p = ToInt24(n.int64())
	case *UInt24:
		*p = ToUInt24(n.uint64())
	case *int32:
		*p = int32(n.int64())
	case *uint32:
		*p = uint32(n.uint64())
	case *int64:
		*p = n.int64()
	case *uint64:
		*p = n.uint64()
	case *int:
		*p = int(n.int64())
	case *uint:
		*p = uint(n.uint64())
	case *float32:
		*p = float32(n.float64())
	case *float64:
		*p = n.float64()
	case *FixedPoint:
		fp, err := n.fixed(MaxPrecision, 0)
		if err != nil {
			return err
		}
		*p = fp
	}
	return nil
}

// WriteFrom stores x into v without consulting the compatibility matrix.
// Numbers are narrowed like Go conversions; text is parsed when v is not a
// character cell.
func WriteFrom[T Host](v Value, x T) error {
	switch h := any(x).(type) {
	case bool:
		return storeNumeric(v, boolNumeric(h))
	case int8:
		return storeNumeric(v, signedNumeric(int64(h)))
	case uint8:
		return storeNumeric(v, unsignedNumeric(uint64(h)))
	case int16:
		return storeNumeric(v, signedNumeric(int64(h)))
	case uint16:
		return storeNumeric(v, unsignedNumeric(uint64(h)))
	case Int24:
		return storeNumeric(v, signedNumeric(h.Int64()))
	case UInt24:
		return storeNumeric(v, unsignedNumeric(h.Uint64()))
	case int32:
		return storeNumeric(v, signedNumeric(int64(h)))
	case uint32:
		return storeNumeric(v, unsignedNumeric(uint64(h)))
	case int64:
		return storeNumeric(v, signedNumeric(h))
	case uint64:
		return storeNumeric(v, unsignedNumeric(h))
	case int:
		return storeNumeric(v, signedNumeric(int64(h)))
	case uint:
		return storeNumeric(v, unsignedNumeric(uint64(h)))
	case float32:
		return storeNumeric(v, numeric{kind: numFloat, f: float64(h), single: true})
	case float64:
		return storeNumeric(v, floatNumeric(h))
	case FixedPoint:
		return storeNumeric(v, fixedNumeric(h))
	case string:
		return storeText(v, h)
	case WString:
		return storeText(v, string(h))
	case []byte:
		return storeBytes(v, h)
	case Date:
		return storeTime(v, h.Time(), TypeDate)
	case TimeOfDay:
		return storeTime(v, h.On(Date{Year: 1, Month: time.January, Day: 1}), TypeTime)
	case time.Time:
		return storeTime(v, h, TypeDateTime)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, x)
	}
}

func (n numeric) text() string {
	switch n.kind {
	case numSigned:
		return strconv.FormatInt(n.i, 10)
	case numUnsigned:
		return strconv.FormatUint(n.u, 10)
	case numFixed:
		return n.d.String()
	default:
		if n.single {
			return strconv.FormatFloat(n.f, 'g', -1, 32)
		}
		return strconv.FormatFloat(n.f, 'g', -1, 64)
	}
}

// textOf renders a non-null value as text. BIT renders as 1 or 0.
func textOf(v Value) string {
	switch s := v.(type) {
	case *Scalar[string]:
		return s.data
	case *Scalar[WString]:
		return s.data.String()
	case *Scalar[[]byte]:
		return string(s.data)
	case *Scalar[Date]:
		return s.data.String()
	case *Scalar[TimeOfDay]:
		return s.data.String()
	case *Scalar[time.Time]:
		return formatDateTime(s.data)
	}
	n, err := numericOf(v)
	if err != nil {
		return ""
	}
	return n.text()
}

// Text renders v for text files: NULL is empty, binary payloads are upper-case hex
// and everything else uses its character rendering.
func Text(v Value) string {
	if v.IsNull() {
		return ""
	}
	if s, ok := v.(*Scalar[[]byte]); ok {
		return strings.ToUpper(hex.EncodeToString(s.data))
	}
	return textOf(v)
}

// ParseText is the inverse of Text for a non-empty field: binary payloads are
// decoded from hex and everything else is parsed by the tag of v.
func ParseText(v Value, text string) error {
	if s, ok := v.(*Scalar[[]byte]); ok {
		raw, err := hex.DecodeString(text)
		if err != nil {
			return fmt.Errorf("%w: %q is not hexadecimal", ErrTypeMismatch, text)
		}
		return s.Set(raw)
	}
	return storeText(v, text)
}

// bytesOf returns a copy of a binary payload, or the UTF-8 text of any other value.
func bytesOf(v Value) []byte {
	if s, ok := v.(*Scalar[[]byte]); ok {
		return bytes.Clone(s.data)
	}
	return []byte(textOf(v))
}

// timeOf reads a temporal value. Character cells are parsed.
func timeOf(v Value) (time.Time, error) {
	switch s := v.(type) {
	case *Scalar[Date]:
		return s.data.Time(), nil
	case *Scalar[TimeOfDay]:
		return s.data.On(Date{Year: 1, Month: time.January, Day: 1}), nil
	case *Scalar[time.Time]:
		return s.data, nil
	case *Scalar[string], *Scalar[WString]:
		t, _, ok := parseTemporal(textOf(v))
		if !ok {
			return time.Time{}, fmt.Errorf("%w: %q is not a date or time", ErrTypeMismatch, textOf(v))
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("%w: %s is not temporal", ErrTypeMismatch, v.Tag())
	}
}

// storeText stores s into v, parsing it for non-character cells.
func storeText(v Value, text string) error {
	switch s := v.(type) {
	case *Scalar[string]:
		return s.Set(text)
	case *Scalar[WString]:
		return s.Set(WString(text))
	case *Scalar[[]byte]:
		return s.Set([]byte(text))
	case *Scalar[Date]:
		d, err := ParseDate(text)
		if err != nil {
			return err
		}
		return s.Set(d)
	case *Scalar[TimeOfDay]:
		tod, err := ParseTimeOfDay(text)
		if err != nil {
			return err
		}
		return s.Set(tod)
	case *Scalar[time.Time]:
		t, err := ParseDateTime(text)
		if err != nil {
			return err
		}
		return s.Set(t)
	case *Scalar[bool]:
		b, err := parseBit(text)
		if err != nil {
			return err
		}
		return s.Set(b)
	case *Scalar[FixedPoint]:
		fp, err := ParseFixedPoint(text, s.infos.Precision(), s.infos.Scale())
		if err != nil {
			return err
		}
		return s.Set(fp)
	}

	tag := v.Tag()
	text = strings.TrimSpace(text)
	switch {
	case tag.IsFloat():
		bits := 64
		if tag == TypeFloat32 {
			bits = 32
		}
		f, err := strconv.ParseFloat(text, bits)
		if err != nil {
			return numberError(err, text, tag)
		}
		return storeNumeric(v, floatNumeric(f))
	case tag.IsSigned():
		i, err := strconv.ParseInt(text, 10, tag.BitWidth())
		if err != nil {
			return numberError(err, text, tag)
		}
		return storeNumeric(v, signedNumeric(i))
	case tag.IsInteger():
		u, err := strconv.ParseUint(text, 10, tag.BitWidth())
		if err != nil {
			return numberError(err, text, tag)
		}
		return storeNumeric(v, unsignedNumeric(u))
	default:
		return fmt.Errorf("%w: cannot store text in %s", ErrTypeMismatch, tag)
	}
}

func numberError(err error, text string, tag TypeTag) error {
	if errors.Is(err, strconv.ErrRange) {
		return fmt.Errorf("%w: %q does not fit %s", ErrIntegerOverflow, text, tag)
	}
	return fmt.Errorf("%w: %q is not a valid %s", ErrTypeMismatch, text, tag)
}

func parseBit(text string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q is not a valid BIT", ErrTypeMismatch, text)
	}
}

// storeBytes stores raw bytes. Non-binary cells receive them as text.
func storeBytes(v Value, b []byte) error {
	if s, ok := v.(*Scalar[[]byte]); ok {
		return s.Set(b)
	}
	return storeText(v, string(b))
}

// storeTime stores a temporal value that originated as the given tag.
func storeTime(v Value, t time.Time, from TypeTag) error {
	switch s := v.(type) {
	case *Scalar[Date]:
		return s.Set(DateOf(t))
	case *Scalar[TimeOfDay]:
		return s.Set(TimeOfDayOf(t))
	case *Scalar[time.Time]:
		return s.Set(t)
	case *Scalar[string], *Scalar[WString]:
		switch from {
		case TypeDate:
			return storeText(v, DateOf(t).String())
		case TypeTime:
			return storeText(v, TimeOfDayOf(t).String())
		default:
			return storeText(v, formatDateTime(t))
		}
	default:
		return fmt.Errorf("%w: cannot store a %s in %s", ErrTypeMismatch, from, v.Tag())
	}
}

// Native returns the value as one of the types database/sql drivers exchange:
// nil, int64, uint64, float64, bool, []byte, string or time.Time.
// Decimals are returned as their exact text.
func Native(v Value) any {
	if v.IsNull() {
		return nil
	}
	switch s := v.(type) {
	case *Scalar[bool]:
		return s.data
	case *Scalar[float32]:
		return float64(s.data)
	case *Scalar[float64]:
		return s.data
	case *Scalar[FixedPoint]:
		return s.data.String()
	case *Scalar[uint64]:
		return s.data
	case *Scalar[string]:
		return s.data
	case *Scalar[WString]:
		return s.data.String()
	case *Scalar[[]byte]:
		return bytes.Clone(s.data)
	case *Scalar[Date]:
		return s.data.Time()
	case *Scalar[TimeOfDay]:
		return s.data.String()
	case *Scalar[time.Time]:
		return s.data
	}
	n, _ := numericOf(v)
	return n.int64()
}
