package driver

import (
	"testing"

	"github.com/nao1215/sqlcell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestODBCTypeTag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code     SQLType
		unsigned bool
		want     sqlcell.TypeTag
	}{
		{SQLBit, false, sqlcell.TypeBit},
		{SQLBoolean, false, sqlcell.TypeBit},
		{SQLTinyInt, false, sqlcell.TypeSInt8},
		{SQLTinyInt, true, sqlcell.TypeUInt8},
		{SQLSmallInt, true, sqlcell.TypeUInt16},
		{SQLInteger, false, sqlcell.TypeSInt32},
		{SQLBigInt, true, sqlcell.TypeUInt64},
		{SQLReal, false, sqlcell.TypeFloat32},
		{SQLFloat, false, sqlcell.TypeFloat64},
		{SQLNumeric, false, sqlcell.TypeFixedPoint},
		{SQLWVarChar, false, sqlcell.TypeNVarChar},
		{SQLLongVarChar, false, sqlcell.TypeText},
		{SQLDateTime, false, sqlcell.TypeDate},
		{SQLTypeTimestamp, false, sqlcell.TypeDateTime},
		{SQLGUID, false, sqlcell.TypeChar},
		{SQLLongVarBinary, false, sqlcell.TypeBlob},
		// unsigned only applies to integers
		{SQLDouble, true, sqlcell.TypeFloat64},
	}

	for _, tt := range tests {
		got, err := ODBCTypeTag(tt.code, tt.unsigned)
		require.NoError(t, err, tt.code)
		assert.Equal(t, tt.want, got, "code %d unsigned %v", tt.code, tt.unsigned)
	}

	_, err := ODBCTypeTag(SQLType(-154), false)
	require.ErrorIs(t, err, ErrUnknownODBCType)
}

func TestODBCTypeCode(t *testing.T) {
	t.Parallel()

	for _, tag := range sqlcell.AllTypeTags() {
		code, unsigned, err := ODBCTypeCode(tag)
		if tag == sqlcell.TypeNull {
			require.ErrorIs(t, err, sqlcell.ErrUnsupportedType)
			continue
		}
		require.NoError(t, err, tag.String())

		back, err := ODBCTypeTag(code, unsigned)
		require.NoError(t, err, tag.String())
		switch tag {
		case sqlcell.TypeSInt24:
			assert.Equal(t, sqlcell.TypeSInt32, back)
		case sqlcell.TypeUInt24:
			assert.Equal(t, sqlcell.TypeUInt32, back)
		default:
			assert.Equal(t, tag, back, tag.String())
		}
	}
}

func TestWideChar(t *testing.T) {
	t.Parallel()

	t.Run("encode", func(t *testing.T) {
		t.Parallel()

		b, err := EncodeWideChar("A")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x41, 0x00}, b)

		b, err = EncodeWideChar("é😀")
		require.NoError(t, err)
		assert.Equal(t, []byte{0xE9, 0x00, 0x3D, 0xD8, 0x00, 0xDE}, b)
	})

	t.Run("decode stops at NUL", func(t *testing.T) {
		t.Parallel()

		s, err := DecodeWideChar([]byte{0x68, 0x00, 0x69, 0x00, 0x00, 0x00, 0x7A, 0x00})
		require.NoError(t, err)
		assert.Equal(t, "hi", s)
	})

	t.Run("odd length", func(t *testing.T) {
		t.Parallel()

		_, err := DecodeWideChar([]byte{0x68, 0x00, 0x69})
		require.ErrorIs(t, err, sqlcell.ErrInvalidData)
	})

	t.Run("cells", func(t *testing.T) {
		t.Parallel()

		cell, err := sqlcell.NewValuedObject(mustInfos(t, "label", "NVARCHAR(8)"))
		require.NoError(t, err)

		b, err := WideCharValue(cell)
		require.NoError(t, err)
		assert.Nil(t, b)

		buf, err := EncodeWideChar("grüße")
		require.NoError(t, err)
		require.NoError(t, ScanWideChar(cell, buf))
		assert.Equal(t, "grüße", cell.String())

		b, err = WideCharValue(cell)
		require.NoError(t, err)
		assert.Equal(t, buf, b)

		require.NoError(t, ScanWideChar(cell, nil))
		assert.True(t, cell.IsNull())
	})
}
