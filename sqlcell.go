package sqlcell

import (
	"github.com/nao1215/sqlcell/domain/model"
)

type (
	// TypeTag identifies one SQL scalar kind.
	TypeTag = model.TypeTag
	// Int24 is a signed 24-bit integer (MEDIUMINT).
	Int24 = model.Int24
	// UInt24 is an unsigned 24-bit integer (MEDIUMINT UNSIGNED).
	UInt24 = model.UInt24
	// FixedPoint is an exact decimal of fixed precision and scale.
	FixedPoint = model.FixedPoint
	// Date is a calendar date without time of day.
	Date = model.Date
	// TimeOfDay is a time of day without date.
	TimeOfDay = model.TimeOfDay
	// WString is the payload of wide character kinds.
	WString = model.WString
	// Value is one typed SQL scalar.
	Value = model.Value
	// ValuedObjectInfos is the immutable metadata of a cell.
	ValuedObjectInfos = model.ValuedObjectInfos
	// Dialect selects the SQL literal syntax of a backend.
	Dialect = model.Dialect
	// FaultGuard uninstalls its fault handler when released.
	FaultGuard = model.FaultGuard
	// FaultHandler translates a fault raised by the named operation into an error.
	FaultHandler = model.FaultHandler
	// Host is the set of Go types a cell can be read as or written from.
	Host = model.Host
	// Integer is the set of native integer types.
	Integer = model.Integer
	// Float is the set of native floating point types.
	Float = model.Float
	// Header is the list of column names of a row set.
	Header = model.Header
	// Record is one row rendered as text.
	Record = model.Record
	// FileType is a row set file format recognised by its extension.
	FileType = model.FileType
)

// Type tags
const (
	TypeNull       = model.TypeNull
	TypeBit        = model.TypeBit
	TypeSInt8      = model.TypeSInt8
	TypeUInt8      = model.TypeUInt8
	TypeSInt16     = model.TypeSInt16
	TypeUInt16     = model.TypeUInt16
	TypeSInt24     = model.TypeSInt24
	TypeUInt24     = model.TypeUInt24
	TypeSInt32     = model.TypeSInt32
	TypeUInt32     = model.TypeUInt32
	TypeSInt64     = model.TypeSInt64
	TypeUInt64     = model.TypeUInt64
	TypeFloat32    = model.TypeFloat32
	TypeFloat64    = model.TypeFloat64
	TypeFixedPoint = model.TypeFixedPoint
	TypeChar       = model.TypeChar
	TypeVarChar    = model.TypeVarChar
	TypeText       = model.TypeText
	TypeNChar      = model.TypeNChar
	TypeNVarChar   = model.TypeNVarChar
	TypeNText      = model.TypeNText
	TypeDate       = model.TypeDate
	TypeDateTime   = model.TypeDateTime
	TypeTime       = model.TypeTime
	TypeBinary     = model.TypeBinary
	TypeVarBinary  = model.TypeVarBinary
	TypeBlob       = model.TypeBlob
)

// Dialects
const (
	DialectGeneric    = model.DialectGeneric
	DialectMySQL      = model.DialectMySQL
	DialectPostgreSQL = model.DialectPostgreSQL
	DialectSQLite     = model.DialectSQLite
	DialectODBC       = model.DialectODBC
)

// File types
const (
	FileTypeCSV         = model.FileTypeCSV
	FileTypeTSV         = model.FileTypeTSV
	FileTypeLTSV        = model.FileTypeLTSV
	FileTypeParquet     = model.FileTypeParquet
	FileTypeXLSX        = model.FileTypeXLSX
	FileTypeUnsupported = model.FileTypeUnsupported
)

// Numeric limits
const (
	MaxInt24         = model.MaxInt24
	MinInt24         = model.MinInt24
	MaxUInt24        = model.MaxUInt24
	MinPrecision     = model.MinPrecision
	MaxPrecision     = model.MaxPrecision
	DefaultPrecision = model.DefaultPrecision
	DefaultScale     = model.DefaultScale
)

// NewValuedObjectInfos returns metadata without length limit.
func NewValuedObjectInfos(name string, tag TypeTag) *ValuedObjectInfos {
	return model.NewValuedObjectInfos(name, tag)
}

// NewValuedObjectInfosWithLimit returns metadata for a character or binary kind
// limited to limit runes or bytes.
func NewValuedObjectInfosWithLimit(name string, tag TypeTag, limit uint32) *ValuedObjectInfos {
	return model.NewValuedObjectInfosWithLimit(name, tag, limit)
}

// NewValuedObjectInfosWithPrecision returns metadata for DECIMAL(precision, scale).
func NewValuedObjectInfosWithPrecision(name string, precision, scale int) (*ValuedObjectInfos, error) {
	return model.NewValuedObjectInfosWithPrecision(name, precision, scale)
}

// ParseInfos parses a column definition such as "DECIMAL(10,2)" or "NVARCHAR(40)".
func ParseInfos(name, definition string) (*ValuedObjectInfos, error) {
	return model.ParseInfos(name, definition)
}

// ParseTypeTag converts a SQL type name to a TypeTag.
func ParseTypeTag(name string) (TypeTag, error) {
	return model.ParseTypeTag(name)
}

// AllTypeTags returns every tag including TypeNull.
func AllTypeTags() []TypeTag {
	return model.AllTypeTags()
}

// ParseDialect converts a backend name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	return model.ParseDialect(name)
}

// CanSet reports whether a value of tag from may be stored into a cell of tag to.
func CanSet(from, to TypeTag) bool {
	return model.CanSet(from, to)
}

// CanGet reports whether a cell of tag from may be read as tag to.
func CanGet(from, to TypeTag) bool {
	return model.CanGet(from, to)
}

// HostTag returns the tag a Go type is checked as by the compatibility matrix.
func HostTag[T Host]() TypeTag {
	return model.HostTag[T]()
}

// ToInt24 truncates n to 24 bits and sign-extends it.
func ToInt24[T Integer](n T) Int24 {
	return model.ToInt24(n)
}

// ToUInt24 truncates n to its low 24 bits.
func ToUInt24[T Integer](n T) UInt24 {
	return model.ToUInt24(n)
}

// NewFixedPoint builds a FixedPoint from raw = value × 10^scale.
func NewFixedPoint(raw int64, precision, scale int) (FixedPoint, error) {
	return model.NewFixedPoint(raw, precision, scale)
}

// ParseFixedPoint parses decimal text into DECIMAL(precision, scale).
func ParseFixedPoint(s string, precision, scale int) (FixedPoint, error) {
	return model.ParseFixedPoint(s, precision, scale)
}

// FixedPointFromInt scales v into DECIMAL(precision, scale).
func FixedPointFromInt[T Integer](v T, precision, scale int) (FixedPoint, error) {
	return model.FixedPointFromInt(v, precision, scale)
}

// FixedPointFromFloat converts f into DECIMAL(precision, scale), truncating extra digits.
func FixedPointFromFloat[T Float](f T, precision, scale int) (FixedPoint, error) {
	return model.FixedPointFromFloat(f, precision, scale)
}

// InstallFaultTranslator installs the default fault translator.
// The returned guard must be released on every path.
func InstallFaultTranslator() *FaultGuard {
	return model.InstallFaultTranslator()
}

// InstallFaultHandler installs h as the process-wide fault handler.
func InstallFaultHandler(h FaultHandler) *FaultGuard {
	return model.InstallFaultHandler(h)
}

// FaultTranslatorInstalled reports whether a fault handler is installed.
func FaultTranslatorInstalled() bool {
	return model.FaultTranslatorInstalled()
}
