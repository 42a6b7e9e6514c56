// Package sqlcell provides a typed value engine for database access layers.
//
// Every SQL scalar is represented uniformly regardless of the backend: a cell
// (ValuedObject) pairs immutable column metadata (ValuedObjectInfos) with a
// typed Value, and the conversions between cells and Go host types are governed
// by two tables, CanSet and CanGet.
//
// # Features
//
//   - 24-bit integers (Int24, UInt24) with two's-complement wrap-around
//   - Exact decimals (FixedPoint) with per-column precision and scale
//   - Dialect-aware SQL literals for MySQL, PostgreSQL, SQLite and ODBC
//   - A process-wide fault translator turning integer faults into errors
//   - Row sets loaded from and dumped to CSV, TSV, LTSV, Parquet, XLSX and SQL,
//     with gzip, bzip2, xz and zstandard compression
//   - database/sql integration: cells are driver.Valuer and sql.Scanner
//
// # Basic Usage
//
//	infos, err := sqlcell.ParseInfos("price", "DECIMAL(10,2)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cell, err := sqlcell.NewValuedObject(infos)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fp, err := sqlcell.ParseFixedPoint("19.90", 10, 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := sqlcell.SetValue(cell, fp); err != nil {
//	    log.Fatal(err)
//	}
//
//	price, err := sqlcell.GetValue[float64](cell)
//
// # Conversions
//
// SetValue accepts a host value when CanSet(HostTag[T](), tag) holds and
// GetValue returns it when CanGet(tag, HostTag[T]()) holds; anything else fails
// with ErrTypeMismatch. Numeric narrowing wraps like a C cast, while text parsed
// into an integer cell is range checked. GetValueFast and SetValueFast skip the
// table lookup for hot loops whose types are known to be compatible.
//
// # Row Sets
//
// A RowSet is a named table of typed rows. LoadFile infers column types from
// the data unless they are declared with LoadOptions:
//
//	rs, err := sqlcell.LoadFile(ctx, "users.csv.gz")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	options := sqlcell.NewDumpOptions().
//	    WithFormat(sqlcell.OutputFormatSQL).
//	    WithDialect(sqlcell.DialectPostgreSQL)
//	path, err := sqlcell.DumpFile(ctx, "./output", rs, options)
//
// Row sets can also be read from and written to a database through the driver
// subpackage.
//
// # Faults
//
// Arithmetic on Int24 and UInt24 panics on division by zero, like the native
// integer types. WithFaultTranslator installs a translator for the duration of a
// function so the fault surfaces as ErrDivisionByZero instead.
package sqlcell
