package model

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Default shape of a DECIMAL declared without precision.
const (
	DefaultPrecision = 10
	DefaultScale     = 0
)

// ValuedObjectInfos is the immutable metadata of a cell: its name, its type tag
// and, depending on the tag, a length limit or a precision and scale.
type ValuedObjectInfos struct {
	name      string
	tag       TypeTag
	limit     uint32
	precision uint8
	scale     uint8
}

// NewValuedObjectInfos returns metadata without length limit.
// DECIMAL gets DefaultPrecision and DefaultScale.
func NewValuedObjectInfos(name string, tag TypeTag) *ValuedObjectInfos {
	infos := &ValuedObjectInfos{name: name, tag: tag}
	if tag == TypeFixedPoint {
		infos.precision, infos.scale = DefaultPrecision, DefaultScale
	}
	return infos
}

// NewValuedObjectInfosWithLimit returns metadata for a character or binary kind
// limited to limit runes or bytes. The limit is ignored for other kinds.
func NewValuedObjectInfosWithLimit(name string, tag TypeTag, limit uint32) *ValuedObjectInfos {
	infos := NewValuedObjectInfos(name, tag)
	if tag.HasLimit() {
		infos.limit = limit
	}
	return infos
}

// NewValuedObjectInfosWithPrecision returns metadata for DECIMAL(precision, scale).
func NewValuedObjectInfosWithPrecision(name string, precision, scale int) (*ValuedObjectInfos, error) {
	if err := ValidatePrecision(precision, scale); err != nil {
		return nil, err
	}
	return &ValuedObjectInfos{
		name:      name,
		tag:       TypeFixedPoint,
		precision: uint8(precision),
		scale:     uint8(scale),
	}, nil
}

var columnDefinitionRegexp = regexp.MustCompile(
	`(?i)^\s*([A-Za-z][A-Za-z0-9 ]*?)\s*(?:\(\s*(\d+)\s*(?:,\s*(\d+)\s*)?\))?\s*(UNSIGNED)?\s*$`)

// ParseInfos parses a column definition such as "DECIMAL(10,2)", "VARCHAR(32)",
// "INT(11) UNSIGNED" or "NVARCHAR". Integer display widths are ignored and
// FLOAT(p) with p > 24 is read as DOUBLE.
func ParseInfos(name, definition string) (*ValuedObjectInfos, error) {
	m := columnDefinitionRegexp.FindStringSubmatch(definition)
	if m == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, definition)
	}
	typeName := m[1]
	if m[4] != "" {
		typeName += " UNSIGNED"
	}
	tag, err := ParseTypeTag(typeName)
	if err != nil {
		return nil, err
	}

	var args []int
	for _, s := range m[2:4] {
		if s == "" {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, definition)
		}
		args = append(args, n)
	}

	switch {
	case tag == TypeFixedPoint:
		precision, scale := DefaultPrecision, DefaultScale
		if len(args) > 0 {
			precision, scale = args[0], 0
		}
		if len(args) > 1 {
			scale = args[1]
		}
		return NewValuedObjectInfosWithPrecision(name, precision, scale)
	case tag.HasLimit():
		if len(args) > 1 {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, definition)
		}
		var limit uint32
		if len(args) == 1 {
			limit = uint32(args[0])
		}
		return NewValuedObjectInfosWithLimit(name, tag, limit), nil
	case tag == TypeFloat32 && len(args) > 0 && args[0] > 24:
		return NewValuedObjectInfos(name, TypeFloat64), nil
	default:
		return NewValuedObjectInfos(name, tag), nil
	}
}

// Name returns the column or parameter name.
func (i *ValuedObjectInfos) Name() string {
	if i == nil {
		return ""
	}
	return i.name
}

// Tag returns the type tag.
func (i *ValuedObjectInfos) Tag() TypeTag {
	if i == nil {
		return TypeNull
	}
	return i.tag
}

// Limit returns the length limit of character and binary kinds. 0 means unlimited.
func (i *ValuedObjectInfos) Limit() uint32 {
	if i == nil {
		return 0
	}
	return i.limit
}

// Precision returns the DECIMAL precision.
func (i *ValuedObjectInfos) Precision() int {
	if i == nil {
		return 0
	}
	return int(i.precision)
}

// Scale returns the DECIMAL scale.
func (i *ValuedObjectInfos) Scale() int {
	if i == nil {
		return 0
	}
	return int(i.scale)
}

// Definition renders the metadata as a column type, e.g. "DECIMAL(10,2)".
func (i *ValuedObjectInfos) Definition() string {
	tag := i.Tag()
	switch {
	case tag == TypeFixedPoint:
		return fmt.Sprintf("%s(%d,%d)", tag, i.precision, i.scale)
	case tag.HasLimit() && i.limit > 0:
		return fmt.Sprintf("%s(%d)", tag, i.limit)
	default:
		return tag.String()
	}
}

// String returns "name DEFINITION".
func (i *ValuedObjectInfos) String() string {
	return strings.TrimSpace(i.Name() + " " + i.Definition())
}

// DefinitionFor renders the column type in the DDL syntax of d. Backends without
// unsigned or three-byte integers get the narrowest signed type holding the range.
func (i *ValuedObjectInfos) DefinitionFor(d Dialect) string {
	tag := i.Tag()
	switch d {
	case DialectPostgreSQL:
		switch tag {
		case TypeBit:
			return "BOOLEAN"
		case TypeSInt8, TypeUInt8, TypeSInt16:
			return "SMALLINT"
		case TypeUInt16, TypeSInt24, TypeUInt24, TypeSInt32:
			return "INTEGER"
		case TypeUInt32, TypeSInt64:
			return "BIGINT"
		case TypeUInt64:
			return "NUMERIC(20,0)"
		case TypeFloat32:
			return "REAL"
		case TypeFloat64:
			return "DOUBLE PRECISION"
		case TypeFixedPoint:
			return fmt.Sprintf("NUMERIC(%d,%d)", i.precision, i.scale)
		case TypeNChar:
			return limited("CHAR", i.limit)
		case TypeNVarChar:
			return limited("VARCHAR", i.limit)
		case TypeNText:
			return "TEXT"
		case TypeDateTime:
			return "TIMESTAMP"
		case TypeBinary, TypeVarBinary, TypeBlob:
			return "BYTEA"
		}
	case DialectMySQL:
		if tag == TypeNText {
			return "TEXT"
		}
		if tag == TypeDateTime {
			return "DATETIME(6)"
		}
	}
	return i.Definition()
}

func limited(name string, limit uint32) string {
	if limit == 0 {
		return name
	}
	return fmt.Sprintf("%s(%d)", name, limit)
}
