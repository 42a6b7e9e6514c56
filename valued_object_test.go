package sqlcell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValuedObject(t *testing.T) {
	t.Parallel()

	cell := newCell(t, "price", "DECIMAL(8,3)")
	assert.Equal(t, "price", cell.Name())
	assert.Equal(t, TypeFixedPoint, cell.Tag())
	assert.Equal(t, "DECIMAL(8,3)", cell.Infos().Definition())
	assert.True(t, cell.IsNull())
	assert.Equal(t, "NULL", cell.QueryLiteral())

	_, err := NewValuedObject(NewValuedObjectInfos("nothing", TypeNull))
	require.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), "column: nothing")
}

func TestValuedObject_QueryLiteralFor(t *testing.T) {
	t.Parallel()

	flag := newCell(t, "flag", "BIT")
	require.NoError(t, SetValue(flag, true))
	assert.Equal(t, "TRUE", flag.QueryLiteralFor(DialectPostgreSQL))

	name := newCell(t, "name", "NVARCHAR(10)")
	require.NoError(t, SetValue(name, "O'Hara"))
	assert.Equal(t, "N'O''Hara'", name.QueryLiteralFor(DialectMySQL))
	assert.Equal(t, "'O''Hara'", name.QueryLiteralFor(DialectPostgreSQL))

	blob := newCell(t, "data", "VARBINARY")
	require.NoError(t, SetValue(blob, []byte{0xde, 0xad}))
	assert.Equal(t, "X'DEAD'", blob.QueryLiteral())
	assert.Equal(t, `'\xdead'::bytea`, blob.QueryLiteralFor(DialectPostgreSQL))
}

func TestValuedObject_ValueAndScan(t *testing.T) {
	t.Parallel()

	t.Run("decimal is exact text", func(t *testing.T) {
		t.Parallel()

		cell := newCell(t, "price", "DECIMAL(10,2)")
		require.NoError(t, cell.Scan("12.5"))
		v, err := cell.Value()
		require.NoError(t, err)
		assert.Equal(t, "12.50", v)
	})

	t.Run("null", func(t *testing.T) {
		t.Parallel()

		cell := newCell(t, "n", "INTEGER")
		require.NoError(t, cell.Scan(int64(3)))
		require.NoError(t, cell.Scan(nil))
		assert.True(t, cell.IsNull())
		v, err := cell.Value()
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("driver bytes into text", func(t *testing.T) {
		t.Parallel()

		cell := newCell(t, "name", "VARCHAR(20)")
		require.NoError(t, cell.Scan([]byte("alice")))
		assert.Equal(t, "alice", cell.String())
	})

	t.Run("time into date", func(t *testing.T) {
		t.Parallel()

		cell := newCell(t, "born", "DATE")
		require.NoError(t, cell.Scan(time.Date(1999, time.December, 31, 23, 0, 0, 0, time.UTC)))
		assert.Equal(t, "1999-12-31", cell.String())
	})

	t.Run("bad text", func(t *testing.T) {
		t.Parallel()

		cell := newCell(t, "n", "SMALLINT")
		err := cell.Scan("many")
		require.ErrorIs(t, err, ErrTypeMismatch)
		assert.Contains(t, err.Error(), "Scan failed")
	})
}

func TestValuedObject_SetText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		definition string
		text       string
		want       string
		wantNull   bool
		wantErr    error
	}{
		{name: "integer", definition: "INTEGER", text: "42", want: "42"},
		{name: "empty integer is null", definition: "INTEGER", text: "", wantNull: true},
		{name: "empty varchar is empty", definition: "VARCHAR", text: "", want: ""},
		{name: "overflow", definition: "TINYINT", text: "300", wantErr: ErrIntegerOverflow},
		{name: "unsigned overflow", definition: "MEDIUMINT UNSIGNED", text: "16777216", wantErr: ErrIntegerOverflow},
		{name: "binary hex", definition: "VARBINARY", text: "0aff", want: "0AFF"},
		{name: "bit word", definition: "BIT", text: "true", want: "1"},
		{name: "datetime", definition: "DATETIME", text: "2024-01-02 03:04:05", want: "2024-01-02 03:04:05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cell := newCell(t, "c", tt.definition)
			err := cell.SetText(tt.text)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Contains(t, err.Error(), "value "+tt.text)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantNull, cell.IsNull())
			assert.Equal(t, tt.want, cell.String())
		})
	}
}

func TestValuedObject_RawPointer(t *testing.T) {
	t.Parallel()

	cell := newCell(t, "n", "BIGINT")
	p, ok := cell.RawPointer().(*int64)
	require.True(t, ok)
	*p = 9
	require.NoError(t, SetValue(cell, int64(10)))
	assert.Equal(t, int64(10), *p)
}
