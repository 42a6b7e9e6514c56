package sqlcell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/sqlcell/domain/model"
)

// Engine errors. Every error returned by this package wraps one of them, so
// callers can match with errors.Is.
var (
	// ErrPrecisionOverflow indicates a decimal that needs more digits than its precision
	ErrPrecisionOverflow = model.ErrPrecisionOverflow
	// ErrIntegerOverflow indicates raw 64-bit overflow
	ErrIntegerOverflow = model.ErrIntegerOverflow
	// ErrDivisionByZero indicates a zero divisor
	ErrDivisionByZero = model.ErrDivisionByZero
	// ErrTypeMismatch indicates a get or set rejected by the compatibility matrix
	ErrTypeMismatch = model.ErrTypeMismatch
	// ErrUnsupportedType indicates a tag no value can be built for
	ErrUnsupportedType = model.ErrUnsupportedType
	// ErrValueNotSet indicates an empty optional value was dereferenced
	ErrValueNotSet = model.ErrValueNotSet
	// ErrInvalidPrecision indicates an out-of-range precision or scale
	ErrInvalidPrecision = model.ErrInvalidPrecision
	// ErrInvalidDecimal indicates text or a float that is not a decimal
	ErrInvalidDecimal = model.ErrInvalidDecimal
	// ErrFaultGuardOrder indicates fault guards released out of order
	ErrFaultGuardOrder = model.ErrFaultGuardOrder
	// ErrDuplicateColumnName indicates a row set with duplicate column names
	ErrDuplicateColumnName = model.ErrDuplicateColumnName
)

// Row set errors
var (
	// ErrEmptyData indicates that the data source contains no header
	ErrEmptyData = errors.New("sqlcell: empty data source")

	// ErrUnsupportedFormat indicates an unsupported file format
	ErrUnsupportedFormat = errors.New("sqlcell: unsupported file format")

	// ErrInvalidData indicates malformed or invalid data
	ErrInvalidData = errors.New("sqlcell: invalid data format")

	// ErrColumnNotFound indicates a column name that is not in the row set
	ErrColumnNotFound = errors.New("sqlcell: column not found")
)

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	Table     string
	Column    string
	Type      string
	Details   string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation, column string) *ErrorContext {
	return &ErrorContext{
		Operation: operation,
		Column:    column,
	}
}

// newCellErrorContext describes an operation on a cell.
func newCellErrorContext(operation string, infos *ValuedObjectInfos) *ErrorContext {
	return NewErrorContext(operation, infos.Name()).WithType(infos.Definition())
}

// WithType adds the column type to the error context
func (ec *ErrorContext) WithType(definition string) *ErrorContext {
	ec.Type = definition
	return ec
}

// WithTable adds the row set name to the error context
func (ec *ErrorContext) WithTable(name string) *ErrorContext {
	ec.Table = name
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	var parts []string
	parts = append(parts, fmt.Sprintf("sqlcell: %s failed", ec.Operation))

	if ec.Table != "" {
		parts = append(parts, "table: "+ec.Table)
	}

	if ec.Column != "" {
		parts = append(parts, "column: "+ec.Column)
	}

	if ec.Type != "" {
		parts = append(parts, "type: "+ec.Type)
	}

	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return fmt.Errorf("%s", context)
}
