// Package model provides the typed value engine for sqlcell.
package model

import (
	"fmt"
	"strings"
)

// Header is a row set header.
type Header []string

// NewHeader create new Header.
func NewHeader(h []string) Header {
	return Header(h)
}

// Equal compare Header.
func (h Header) Equal(h2 Header) bool {
	if len(h) != len(h2) {
		return false
	}
	for i, v := range h {
		if v != h2[i] {
			return false
		}
	}
	return true
}

// Record is a row rendered as text.
type Record []string

// NewRecord create new Record.
func NewRecord(r []string) Record {
	return Record(r)
}

// Equal compare Record.
func (r Record) Equal(r2 Record) bool {
	if len(r) != len(r2) {
		return false
	}
	for i, v := range r {
		if v != r2[i] {
			return false
		}
	}
	return true
}

// TypeTag identifies one SQL scalar kind.
type TypeTag int

const (
	// TypeNull is the tag of a cell without type. It is compatible with nothing.
	TypeNull TypeTag = iota
	// TypeBit represents BIT / BOOLEAN
	TypeBit
	// TypeSInt8 represents TINYINT
	TypeSInt8
	// TypeUInt8 represents TINYINT UNSIGNED
	TypeUInt8
	// TypeSInt16 represents SMALLINT
	TypeSInt16
	// TypeUInt16 represents SMALLINT UNSIGNED
	TypeUInt16
	// TypeSInt24 represents MEDIUMINT
	TypeSInt24
	// TypeUInt24 represents MEDIUMINT UNSIGNED
	TypeUInt24
	// TypeSInt32 represents INTEGER
	TypeSInt32
	// TypeUInt32 represents INTEGER UNSIGNED
	TypeUInt32
	// TypeSInt64 represents BIGINT
	TypeSInt64
	// TypeUInt64 represents BIGINT UNSIGNED
	TypeUInt64
	// TypeFloat32 represents FLOAT
	TypeFloat32
	// TypeFloat64 represents DOUBLE
	TypeFloat64
	// TypeFixedPoint represents DECIMAL / NUMERIC
	TypeFixedPoint
	// TypeChar represents CHAR
	TypeChar
	// TypeVarChar represents VARCHAR
	TypeVarChar
	// TypeText represents TEXT
	TypeText
	// TypeNChar represents NCHAR
	TypeNChar
	// TypeNVarChar represents NVARCHAR
	TypeNVarChar
	// TypeNText represents NTEXT
	TypeNText
	// TypeDate represents DATE
	TypeDate
	// TypeDateTime represents DATETIME / TIMESTAMP
	TypeDateTime
	// TypeTime represents TIME
	TypeTime
	// TypeBinary represents BINARY
	TypeBinary
	// TypeVarBinary represents VARBINARY
	TypeVarBinary
	// TypeBlob represents BLOB
	TypeBlob

	typeTagCount
)

var typeTagNames = [typeTagCount]string{
	TypeNull:       "NULL",
	TypeBit:        "BIT",
	TypeSInt8:      "TINYINT",
	TypeUInt8:      "TINYINT UNSIGNED",
	TypeSInt16:     "SMALLINT",
	TypeUInt16:     "SMALLINT UNSIGNED",
	TypeSInt24:     "MEDIUMINT",
	TypeUInt24:     "MEDIUMINT UNSIGNED",
	TypeSInt32:     "INTEGER",
	TypeUInt32:     "INTEGER UNSIGNED",
	TypeSInt64:     "BIGINT",
	TypeUInt64:     "BIGINT UNSIGNED",
	TypeFloat32:    "FLOAT",
	TypeFloat64:    "DOUBLE",
	TypeFixedPoint: "DECIMAL",
	TypeChar:       "CHAR",
	TypeVarChar:    "VARCHAR",
	TypeText:       "TEXT",
	TypeNChar:      "NCHAR",
	TypeNVarChar:   "NVARCHAR",
	TypeNText:      "NTEXT",
	TypeDate:       "DATE",
	TypeDateTime:   "DATETIME",
	TypeTime:       "TIME",
	TypeBinary:     "BINARY",
	TypeVarBinary:  "VARBINARY",
	TypeBlob:       "BLOB",
}

// typeTagAliases maps SQL spellings that are not canonical names to their tag.
var typeTagAliases = map[string]TypeTag{
	"BOOL":              TypeBit,
	"BOOLEAN":           TypeBit,
	"INT1":              TypeSInt8,
	"INT2":              TypeSInt16,
	"INT3":              TypeSInt24,
	"INT":               TypeSInt32,
	"INT4":              TypeSInt32,
	"INT8":              TypeSInt64,
	"SERIAL":            TypeSInt32,
	"BIGSERIAL":         TypeSInt64,
	"REAL":              TypeFloat32,
	"FLOAT4":            TypeFloat32,
	"FLOAT8":            TypeFloat64,
	"DOUBLE PRECISION":  TypeFloat64,
	"NUMERIC":           TypeFixedPoint,
	"DEC":               TypeFixedPoint,
	"CHARACTER":         TypeChar,
	"CHARACTER VARYING": TypeVarChar,
	"LONGVARCHAR":       TypeText,
	"MEDIUMTEXT":        TypeText,
	"LONGTEXT":          TypeText,
	"CLOB":              TypeText,
	"NATIONAL CHAR":     TypeNChar,
	"WCHAR":             TypeNChar,
	"WVARCHAR":          TypeNVarChar,
	"WLONGVARCHAR":      TypeNText,
	"TIMESTAMP":         TypeDateTime,
	"BYTEA":             TypeBlob,
	"LONGVARBINARY":     TypeBlob,
	"LONGBLOB":          TypeBlob,
	"MEDIUMBLOB":        TypeBlob,
}

// String returns the SQL name of the type tag
func (t TypeTag) String() string {
	if t < 0 || t >= typeTagCount {
		return fmt.Sprintf("TypeTag(%d)", int(t))
	}
	return typeTagNames[t]
}

// IsValid reports whether t is one of the enumerated tags.
func (t TypeTag) IsValid() bool {
	return t >= 0 && t < typeTagCount
}

// ParseTypeTag converts an SQL type name to a TypeTag.
// Names are case-insensitive and a trailing UNSIGNED selects the unsigned integer tag.
func ParseTypeTag(name string) (TypeTag, error) {
	normalized := strings.Join(strings.Fields(strings.ToUpper(name)), " ")
	unsigned := false
	if rest, ok := strings.CutSuffix(normalized, " UNSIGNED"); ok {
		unsigned = true
		normalized = rest
	}

	tag, found := TypeNull, false
	for i, n := range typeTagNames {
		if n == normalized {
			tag, found = TypeTag(i), true
			break
		}
	}
	if !found {
		tag, found = typeTagAliases[normalized]
	}
	if !found || tag == TypeNull {
		return TypeNull, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
	}

	if unsigned {
		if !tag.IsInteger() {
			return TypeNull, fmt.Errorf("%w: %q", ErrUnsupportedType, name)
		}
		return tag.unsigned(), nil
	}
	return tag, nil
}

// AllTypeTags returns every tag, TypeNull included, in declaration order.
func AllTypeTags() []TypeTag {
	tags := make([]TypeTag, typeTagCount)
	for i := range tags {
		tags[i] = TypeTag(i)
	}
	return tags
}

// IsInteger reports whether t is one of the signed or unsigned integer widths.
// BIT is not an integer width.
func (t TypeTag) IsInteger() bool {
	return t >= TypeSInt8 && t <= TypeUInt64
}

// IsSigned reports whether t is a signed integer width.
func (t TypeTag) IsSigned() bool {
	switch t {
	case TypeSInt8, TypeSInt16, TypeSInt24, TypeSInt32, TypeSInt64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether t is FLOAT or DOUBLE.
func (t TypeTag) IsFloat() bool {
	return t == TypeFloat32 || t == TypeFloat64
}

// IsNumeric reports whether t holds a number (BIT included).
func (t TypeTag) IsNumeric() bool {
	return t == TypeBit || t.IsInteger() || t.IsFloat() || t == TypeFixedPoint
}

// IsCharacter reports whether t is a narrow or wide character kind.
func (t TypeTag) IsCharacter() bool {
	return t >= TypeChar && t <= TypeNText
}

// IsWide reports whether t is a wide character kind.
func (t TypeTag) IsWide() bool {
	return t >= TypeNChar && t <= TypeNText
}

// IsBinary reports whether t is a binary kind.
func (t TypeTag) IsBinary() bool {
	return t >= TypeBinary && t <= TypeBlob
}

// IsTemporal reports whether t is DATE, DATETIME or TIME.
func (t TypeTag) IsTemporal() bool {
	return t >= TypeDate && t <= TypeTime
}

// HasLimit reports whether t accepts a length limit.
func (t TypeTag) HasLimit() bool {
	return t.IsCharacter() || t.IsBinary()
}

// BitWidth returns the storage width in bits of BIT and integer tags, 0 otherwise.
func (t TypeTag) BitWidth() int {
	switch t {
	case TypeBit:
		return 1
	case TypeSInt8, TypeUInt8:
		return 8
	case TypeSInt16, TypeUInt16:
		return 16
	case TypeSInt24, TypeUInt24:
		return 24
	case TypeSInt32, TypeUInt32:
		return 32
	case TypeSInt64, TypeUInt64:
		return 64
	default:
		return 0
	}
}

func (t TypeTag) unsigned() TypeTag {
	if t.IsSigned() {
		return t + 1
	}
	return t
}
