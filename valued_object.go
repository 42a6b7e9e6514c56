package sqlcell

import (
	"database/sql"
	"database/sql/driver"

	"github.com/nao1215/sqlcell/domain/model"
)

// ValuedObject is a named, typed cell: a column of a row, a bound parameter or
// a result field. It owns exactly one Value whose kind is fixed by the tag of
// its infos; changing the type requires a new object.
//
// A ValuedObject is not safe for concurrent mutation.
type ValuedObject struct {
	infos *ValuedObjectInfos
	value Value
}

var (
	_ driver.Valuer = (*ValuedObject)(nil)
	_ sql.Scanner   = (*ValuedObject)(nil)
)

// NewValuedObject creates a null cell for infos.
// It fails with ErrUnsupportedType when no value exists for the tag.
func NewValuedObject(infos *ValuedObjectInfos) (*ValuedObject, error) {
	v, err := model.NewValue(infos)
	if err != nil {
		return nil, newCellErrorContext("NewValuedObject", infos).Error(err)
	}
	return &ValuedObject{infos: infos, value: v}, nil
}

// Infos returns the metadata of the cell.
func (o *ValuedObject) Infos() *ValuedObjectInfos { return o.infos }

// Name returns the column or parameter name.
func (o *ValuedObject) Name() string { return o.infos.Name() }

// Tag returns the type tag.
func (o *ValuedObject) Tag() TypeTag { return o.infos.Tag() }

// Underlying returns the typed value owned by the cell.
func (o *ValuedObject) Underlying() Value { return o.value }

// IsNull reports whether the cell is null.
func (o *ValuedObject) IsNull() bool { return o.value.IsNull() }

// SetNull clears the cell.
func (o *ValuedObject) SetNull() { o.value.SetNull() }

// RawPointer returns a pointer to the payload that stays the same for the life
// of the cell.
func (o *ValuedObject) RawPointer() any { return o.value.RawPointer() }

// QueryLiteral renders the cell as backend-agnostic SQL literal text.
func (o *ValuedObject) QueryLiteral() string { return o.value.QueryLiteral() }

// QueryLiteralFor renders the cell as SQL literal text for d.
func (o *ValuedObject) QueryLiteralFor(d Dialect) string { return o.value.QueryLiteralFor(d) }

// String renders the cell for text files. NULL is empty.
func (o *ValuedObject) String() string { return model.Text(o.value) }

// Value implements driver.Valuer. Decimals are passed as their exact text.
func (o *ValuedObject) Value() (driver.Value, error) {
	return model.Native(o.value), nil
}

// Scan implements sql.Scanner. Text delivered by the driver is parsed according
// to the tag of the cell.
func (o *ValuedObject) Scan(src any) error {
	if err := model.Populate(o.value, src); err != nil {
		return newCellErrorContext("Scan", o.infos).Error(err)
	}
	return nil
}

// SetText stores text read from a file. An empty string is NULL unless the cell
// holds characters, and binary cells expect the hex form String produces.
func (o *ValuedObject) SetText(s string) error {
	if s == "" && !o.Tag().IsCharacter() {
		o.value.SetNull()
		return nil
	}
	if err := model.ParseText(o.value, s); err != nil {
		return newCellErrorContext("SetText", o.infos).WithDetails(quoteDetail(s)).Error(err)
	}
	return nil
}

func quoteDetail(s string) string {
	const maxLen = 32
	r := []rune(s)
	if len(r) > maxLen {
		return "value " + string(r[:maxLen]) + "..."
	}
	return "value " + s
}
