// Package driver bridges sqlcell row sets and database/sql.
//
// It has two halves. The first is a database/sql driver, registered as
// "sqlcell", that loads CSV, TSV, LTSV, Parquet and XLSX files (plain or
// compressed) into an in-memory SQLite database with typed columns:
//
//	import _ "github.com/nao1215/sqlcell/driver"
//	db, err := sql.Open("sqlcell", "users.csv;orders.parquet")
//
// The second works with any backend: InfosFromColumnType maps result metadata
// to cell infos, ScanRowSet and QueryRowSet read query results into row sets,
// and CreateTable and InsertRowSet write row sets back in the DDL of a
// backend. PostgreSQL NUMERIC values convert through pgtype.Numeric, and ODBC
// SQL type codes and wide character buffers have their own helpers.
package driver
