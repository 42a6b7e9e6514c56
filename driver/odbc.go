package driver

import (
	"fmt"

	"github.com/nao1215/sqlcell"
	"github.com/nao1215/sqlcell/domain/model"
	"golang.org/x/text/encoding/unicode"
)

// SQLType is an ODBC SQL data type code (SQLSMALLINT).
type SQLType int16

// ODBC SQL data type codes
const (
	SQLChar          SQLType = 1
	SQLNumeric       SQLType = 2
	SQLDecimal       SQLType = 3
	SQLInteger       SQLType = 4
	SQLSmallInt      SQLType = 5
	SQLFloat         SQLType = 6
	SQLReal          SQLType = 7
	SQLDouble        SQLType = 8
	SQLDateTime      SQLType = 9 // ODBC 2 SQL_DATE
	SQLTime          SQLType = 10
	SQLTimestamp     SQLType = 11
	SQLVarChar       SQLType = 12
	SQLBoolean       SQLType = 16
	SQLTypeDate      SQLType = 91
	SQLTypeTime      SQLType = 92
	SQLTypeTimestamp SQLType = 93
	SQLLongVarChar   SQLType = -1
	SQLBinary        SQLType = -2
	SQLVarBinary     SQLType = -3
	SQLLongVarBinary SQLType = -4
	SQLBigInt        SQLType = -5
	SQLTinyInt       SQLType = -6
	SQLBit           SQLType = -7
	SQLWChar         SQLType = -8
	SQLWVarChar      SQLType = -9
	SQLWLongVarChar  SQLType = -10
	SQLGUID          SQLType = -11
)

var odbcTags = map[SQLType]sqlcell.TypeTag{
	SQLChar:          model.TypeChar,
	SQLNumeric:       model.TypeFixedPoint,
	SQLDecimal:       model.TypeFixedPoint,
	SQLInteger:       model.TypeSInt32,
	SQLSmallInt:      model.TypeSInt16,
	SQLFloat:         model.TypeFloat64,
	SQLReal:          model.TypeFloat32,
	SQLDouble:        model.TypeFloat64,
	SQLDateTime:      model.TypeDate,
	SQLTime:          model.TypeTime,
	SQLTimestamp:     model.TypeDateTime,
	SQLVarChar:       model.TypeVarChar,
	SQLBoolean:       model.TypeBit,
	SQLTypeDate:      model.TypeDate,
	SQLTypeTime:      model.TypeTime,
	SQLTypeTimestamp: model.TypeDateTime,
	SQLLongVarChar:   model.TypeText,
	SQLBinary:        model.TypeBinary,
	SQLVarBinary:     model.TypeVarBinary,
	SQLLongVarBinary: model.TypeBlob,
	SQLBigInt:        model.TypeSInt64,
	SQLTinyInt:       model.TypeSInt8,
	SQLBit:           model.TypeBit,
	SQLWChar:         model.TypeNChar,
	SQLWVarChar:      model.TypeNVarChar,
	SQLWLongVarChar:  model.TypeNText,
	SQLGUID:          model.TypeChar,
}

var unsignedTags = map[sqlcell.TypeTag]sqlcell.TypeTag{
	model.TypeSInt8:  model.TypeUInt8,
	model.TypeSInt16: model.TypeUInt16,
	model.TypeSInt32: model.TypeUInt32,
	model.TypeSInt64: model.TypeUInt64,
}

// ODBCTypeTag returns the type tag of an ODBC SQL type code. unsigned reports
// the SQL_DESC_UNSIGNED attribute of integer columns.
func ODBCTypeTag(code SQLType, unsigned bool) (sqlcell.TypeTag, error) {
	tag, ok := odbcTags[code]
	if !ok {
		return model.TypeNull, fmt.Errorf("%w: %d", ErrUnknownODBCType, code)
	}
	if unsigned {
		if u, ok := unsignedTags[tag]; ok {
			return u, nil
		}
	}
	return tag, nil
}

// ODBCTypeCode returns the ODBC SQL type code for tag and whether the column
// is unsigned. ODBC has no 24-bit integers, so MEDIUMINT maps to SQL_INTEGER.
func ODBCTypeCode(tag sqlcell.TypeTag) (SQLType, bool, error) {
	switch tag {
	case model.TypeBit:
		return SQLBit, false, nil
	case model.TypeSInt8, model.TypeUInt8:
		return SQLTinyInt, !tag.IsSigned(), nil
	case model.TypeSInt16, model.TypeUInt16:
		return SQLSmallInt, !tag.IsSigned(), nil
	case model.TypeSInt24, model.TypeUInt24, model.TypeSInt32, model.TypeUInt32:
		return SQLInteger, !tag.IsSigned(), nil
	case model.TypeSInt64, model.TypeUInt64:
		return SQLBigInt, !tag.IsSigned(), nil
	case model.TypeFloat32:
		return SQLReal, false, nil
	case model.TypeFloat64:
		return SQLDouble, false, nil
	case model.TypeFixedPoint:
		return SQLDecimal, false, nil
	case model.TypeChar:
		return SQLChar, false, nil
	case model.TypeVarChar:
		return SQLVarChar, false, nil
	case model.TypeText:
		return SQLLongVarChar, false, nil
	case model.TypeNChar:
		return SQLWChar, false, nil
	case model.TypeNVarChar:
		return SQLWVarChar, false, nil
	case model.TypeNText:
		return SQLWLongVarChar, false, nil
	case model.TypeDate:
		return SQLTypeDate, false, nil
	case model.TypeTime:
		return SQLTypeTime, false, nil
	case model.TypeDateTime:
		return SQLTypeTimestamp, false, nil
	case model.TypeBinary:
		return SQLBinary, false, nil
	case model.TypeVarBinary:
		return SQLVarBinary, false, nil
	case model.TypeBlob:
		return SQLLongVarBinary, false, nil
	default:
		return 0, false, fmt.Errorf("%w: %s", sqlcell.ErrUnsupportedType, tag)
	}
}

// wideCharEncoding is SQLWCHAR text: UTF-16, little endian, no byte order mark.
var wideCharEncoding = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// EncodeWideChar encodes s as the UTF-16LE bytes of an SQL_C_WCHAR buffer,
// without a terminator.
func EncodeWideChar(s string) ([]byte, error) {
	b, err := wideCharEncoding.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode wide characters: %w", err)
	}
	return b, nil
}

// DecodeWideChar decodes an SQL_C_WCHAR buffer. Decoding stops at the first
// NUL code unit.
func DecodeWideChar(b []byte) (string, error) {
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			b = b[:i]
			break
		}
	}
	if len(b)%2 != 0 {
		return "", fmt.Errorf("%w: odd wide character buffer length %d", sqlcell.ErrInvalidData, len(b))
	}
	s, err := wideCharEncoding.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("failed to decode wide characters: %w", err)
	}
	return string(s), nil
}

// WideCharValue renders a character cell as an SQL_C_WCHAR buffer. NULL
// returns nil.
func WideCharValue(cell *sqlcell.ValuedObject) ([]byte, error) {
	if cell.IsNull() {
		return nil, nil
	}
	s, err := sqlcell.GetValue[string](cell)
	if err != nil {
		return nil, err
	}
	return EncodeWideChar(s)
}

// ScanWideChar stores an SQL_C_WCHAR buffer into cell. A nil buffer is NULL.
func ScanWideChar(cell *sqlcell.ValuedObject, b []byte) error {
	if b == nil {
		cell.SetNull()
		return nil
	}
	s, err := DecodeWideChar(b)
	if err != nil {
		return err
	}
	return cell.Scan(s)
}
