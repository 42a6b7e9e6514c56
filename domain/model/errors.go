package model

import "errors"

var (
	// ErrPrecisionOverflow is returned when a decimal needs more digits than its declared precision
	ErrPrecisionOverflow = errors.New("precision overflow")

	// ErrIntegerOverflow is returned when raw 64-bit arithmetic overflows
	ErrIntegerOverflow = errors.New("integer overflow")

	// ErrDivisionByZero is returned when a divisor is zero
	ErrDivisionByZero = errors.New("division by zero")

	// ErrTypeMismatch is returned when the compatibility matrix rejects a get or set
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnsupportedType is returned when a value cannot be built for a type tag
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrValueNotSet is returned when reading an empty optional value
	ErrValueNotSet = errors.New("value not set")

	// ErrInvalidPrecision is returned when a precision/scale pair is out of range
	ErrInvalidPrecision = errors.New("invalid precision or scale")

	// ErrInvalidDecimal is returned when text or a float cannot be read as a decimal
	ErrInvalidDecimal = errors.New("invalid decimal")

	// ErrFaultGuardOrder is returned when a fault guard is released while a later one is installed
	ErrFaultGuardOrder = errors.New("fault guard released out of order")

	// ErrDuplicateColumnName is returned when a row set contains duplicate column names
	ErrDuplicateColumnName = errors.New("duplicate column name")
)
