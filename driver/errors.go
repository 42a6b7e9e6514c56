package driver

import "errors"

// Predefined errors
var (
	// ErrNoPathsProvided is returned when the DSN names no file
	ErrNoPathsProvided = errors.New("sqlcell driver: no paths provided")

	// ErrNoFilesLoaded is returned when no files were loaded
	ErrNoFilesLoaded = errors.New("sqlcell driver: no files were loaded")

	// ErrBeginTxNotSupported is returned when underlying connection does not support BeginTx
	ErrBeginTxNotSupported = errors.New("sqlcell driver: underlying connection does not support BeginTx")

	// ErrPrepareContextNotSupported is returned when underlying connection does not support PrepareContext
	ErrPrepareContextNotSupported = errors.New("sqlcell driver: underlying connection does not support PrepareContext")

	// ErrExecContextNotSupported is returned when underlying connection does not support ExecContext
	ErrExecContextNotSupported = errors.New("sqlcell driver: underlying connection does not support ExecContext")

	// ErrDuplicateTableName is returned when multiple files would create the same table name
	ErrDuplicateTableName = errors.New("sqlcell driver: duplicate table name")

	// ErrUnknownODBCType is returned for an ODBC SQL type code with no type tag
	ErrUnknownODBCType = errors.New("sqlcell driver: unknown ODBC SQL type")

	// ErrInvalidNumeric is returned for a NUMERIC that is NaN, infinite or NULL
	ErrInvalidNumeric = errors.New("sqlcell driver: numeric is not a finite value")
)
