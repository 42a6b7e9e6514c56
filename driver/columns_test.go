package driver

import (
	"math"
	"testing"

	"github.com/nao1215/sqlcell"
	"github.com/stretchr/testify/assert"
)

type fakeColumn struct {
	name, typeName   string
	precision, scale int64
	hasDecimal       bool
	length           int64
	hasLength        bool
}

func (c fakeColumn) Name() string             { return c.name }
func (c fakeColumn) DatabaseTypeName() string { return c.typeName }
func (c fakeColumn) DecimalSize() (int64, int64, bool) {
	return c.precision, c.scale, c.hasDecimal
}
func (c fakeColumn) Length() (int64, bool) { return c.length, c.hasLength }

func TestInfosFromColumnType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		backend sqlcell.Dialect
		column  fakeColumn
		want    string
	}{
		{"sqlite declared decimal", sqlcell.DialectSQLite, fakeColumn{typeName: "DECIMAL(12,3)"}, "DECIMAL(12,3)"},
		{"sqlite lower case", sqlcell.DialectSQLite, fakeColumn{typeName: "mediumint  unsigned"}, "MEDIUMINT UNSIGNED"},
		{"sqlite int affinity", sqlcell.DialectSQLite, fakeColumn{typeName: "UNSIGNED BIG INT"}, "BIGINT"},
		{"sqlite text affinity", sqlcell.DialectSQLite, fakeColumn{typeName: "VARYING CHARACTER(20)"}, "TEXT"},
		{"sqlite real affinity", sqlcell.DialectSQLite, fakeColumn{typeName: "DOUBLE REAL8"}, "DOUBLE"},
		// "POINT" contains "INT", so SQLite gives this column integer affinity
		{"sqlite floating point", sqlcell.DialectSQLite, fakeColumn{typeName: "FLOATING POINT"}, "BIGINT"},
		{"sqlite expression", sqlcell.DialectSQLite, fakeColumn{typeName: ""}, "VARCHAR"},
		{"sqlite wide decimal", sqlcell.DialectSQLite, fakeColumn{typeName: "DECIMAL(30,2)"}, "VARCHAR"},
		{"postgres int4", sqlcell.DialectPostgreSQL, fakeColumn{typeName: "INT4"}, "INTEGER"},
		{"postgres bool", sqlcell.DialectPostgreSQL, fakeColumn{typeName: "BOOL"}, "BIT"},
		{"postgres timestamptz", sqlcell.DialectPostgreSQL, fakeColumn{typeName: "TIMESTAMPTZ"}, "DATETIME"},
		{"postgres bpchar", sqlcell.DialectPostgreSQL, fakeColumn{typeName: "BPCHAR", length: 3, hasLength: true}, "CHAR(3)"},
		{"postgres uuid", sqlcell.DialectPostgreSQL, fakeColumn{typeName: "UUID"}, "CHAR(36)"},
		{
			"postgres numeric",
			sqlcell.DialectPostgreSQL,
			fakeColumn{typeName: "NUMERIC", precision: 10, scale: 4, hasDecimal: true},
			"DECIMAL(10,4)",
		},
		{
			"postgres numeric(20,0)",
			sqlcell.DialectPostgreSQL,
			fakeColumn{typeName: "NUMERIC", precision: 20, scale: 0, hasDecimal: true},
			"BIGINT UNSIGNED",
		},
		{
			"postgres unbounded text",
			sqlcell.DialectPostgreSQL,
			fakeColumn{typeName: "TEXT", length: math.MaxInt64, hasLength: true},
			"TEXT",
		},
		{"postgres array", sqlcell.DialectPostgreSQL, fakeColumn{typeName: "_INT4"}, "TEXT"},
		{"mysql unsigned prefix", sqlcell.DialectMySQL, fakeColumn{typeName: "UNSIGNED BIGINT"}, "BIGINT UNSIGNED"},
		{"mysql year", sqlcell.DialectMySQL, fakeColumn{typeName: "YEAR"}, "SMALLINT"},
		{"mysql varchar length", sqlcell.DialectMySQL, fakeColumn{typeName: "VARCHAR", length: 64, hasLength: true}, "VARCHAR(64)"},
		{"mysql json", sqlcell.DialectMySQL, fakeColumn{typeName: "JSON"}, "TEXT"},
		{"odbc prefix", sqlcell.DialectODBC, fakeColumn{typeName: "SQL_WVARCHAR", length: 12, hasLength: true}, "NVARCHAR(12)"},
		{"odbc type timestamp", sqlcell.DialectODBC, fakeColumn{typeName: "SQL_TYPE_TIMESTAMP"}, "DATETIME"},
		{"odbc guid", sqlcell.DialectODBC, fakeColumn{typeName: "GUID"}, "CHAR(36)"},
		{"generic unknown", sqlcell.DialectGeneric, fakeColumn{typeName: "GEOGRAPHY"}, "TEXT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tt.column.name = "c"
			infos := InfosFromColumnType(tt.backend, tt.column)
			assert.Equal(t, "c", infos.Name())
			assert.Equal(t, tt.want, infos.Definition())
		})
	}
}
