package sqlcell

import (
	"fmt"
	"slices"

	"github.com/nao1215/sqlcell/domain/model"
)

// Row is an ordered list of named cells sharing the columns of a RowSet.
type Row struct {
	cells []*ValuedObject
	index map[string]int
}

// newRow creates a row of null cells.
func newRow(columns []*ValuedObjectInfos, index map[string]int) (*Row, error) {
	cells := make([]*ValuedObject, len(columns))
	for i, infos := range columns {
		cell, err := NewValuedObject(infos)
		if err != nil {
			return nil, err
		}
		cells[i] = cell
	}
	return &Row{cells: cells, index: index}, nil
}

// Len returns the number of cells.
func (r *Row) Len() int { return len(r.cells) }

// Cell returns the i-th cell, or nil when i is out of range.
func (r *Row) Cell(i int) *ValuedObject {
	if i < 0 || i >= len(r.cells) {
		return nil
	}
	return r.cells[i]
}

// Get returns the cell of the named column.
func (r *Row) Get(name string) (*ValuedObject, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.cells[i], true
}

// Cells returns the cells in column order.
func (r *Row) Cells() []*ValuedObject {
	return slices.Clone(r.cells)
}

// Values returns the cells as database/sql driver values, ready to be passed as
// statement arguments.
func (r *Row) Values() []any {
	values := make([]any, len(r.cells))
	for i, cell := range r.cells {
		values[i] = model.Native(cell.value)
	}
	return values
}

// ScanTargets returns the cells as sql.Scanner destinations for rows.Scan.
func (r *Row) ScanTargets() []any {
	targets := make([]any, len(r.cells))
	for i, cell := range r.cells {
		targets[i] = cell
	}
	return targets
}

// Record renders the row as text.
func (r *Row) Record() Record {
	record := make(Record, len(r.cells))
	for i, cell := range r.cells {
		record[i] = cell.String()
	}
	return record
}

// SetTexts stores one text field per cell. See ValuedObject.SetText.
func (r *Row) SetTexts(fields []string) error {
	if len(fields) != len(r.cells) {
		return fmt.Errorf("%w: row has %d fields, want %d", ErrInvalidData, len(fields), len(r.cells))
	}
	for i, field := range fields {
		if err := r.cells[i].SetText(field); err != nil {
			return err
		}
	}
	return nil
}

// RowSet is a named table of typed rows.
type RowSet struct {
	name    string
	columns []*ValuedObjectInfos
	index   map[string]int
	rows    []*Row
}

// NewRowSet creates an empty row set. Column names must be unique.
func NewRowSet(name string, columns []*ValuedObjectInfos) (*RowSet, error) {
	index := make(map[string]int, len(columns))
	for i, infos := range columns {
		if _, ok := index[infos.Name()]; ok {
			return nil, NewErrorContext("NewRowSet", infos.Name()).Error(ErrDuplicateColumnName)
		}
		if _, err := model.NewValue(infos); err != nil {
			return nil, newCellErrorContext("NewRowSet", infos).Error(err)
		}
		index[infos.Name()] = i
	}
	return &RowSet{
		name:    name,
		columns: slices.Clone(columns),
		index:   index,
	}, nil
}

// RowSetFromTable builds a row set from a text table, parsing each field
// according to the column types of the table.
func RowSetFromTable(t *model.Table) (*RowSet, error) {
	rs, err := NewRowSet(t.Name(), t.Columns())
	if err != nil {
		return nil, err
	}
	for _, record := range t.Records() {
		if err := rs.AppendText(record); err != nil {
			return nil, err
		}
	}
	return rs, nil
}

// Name returns the row set name.
func (rs *RowSet) Name() string { return rs.name }

// Columns returns the column metadata.
func (rs *RowSet) Columns() []*ValuedObjectInfos { return slices.Clone(rs.columns) }

// Column returns the index of the named column.
func (rs *RowSet) Column(name string) (int, bool) {
	i, ok := rs.index[name]
	return i, ok
}

// Len returns the number of rows.
func (rs *RowSet) Len() int { return len(rs.rows) }

// Row returns the i-th row, or nil when i is out of range.
func (rs *RowSet) Row(i int) *Row {
	if i < 0 || i >= len(rs.rows) {
		return nil
	}
	return rs.rows[i]
}

// Rows returns the rows in insertion order.
func (rs *RowSet) Rows() []*Row { return slices.Clone(rs.rows) }

// AddRow appends a row of null cells and returns it.
func (rs *RowSet) AddRow() (*Row, error) {
	row, err := newRow(rs.columns, rs.index)
	if err != nil {
		return nil, err
	}
	rs.rows = append(rs.rows, row)
	return row, nil
}

// AppendText appends a row parsed from text fields. Nothing is appended on error.
func (rs *RowSet) AppendText(fields []string) error {
	row, err := newRow(rs.columns, rs.index)
	if err != nil {
		return err
	}
	if err := row.SetTexts(fields); err != nil {
		return err
	}
	rs.rows = append(rs.rows, row)
	return nil
}

// Header returns the column names.
func (rs *RowSet) Header() Header {
	header := make(Header, len(rs.columns))
	for i, infos := range rs.columns {
		header[i] = infos.Name()
	}
	return header
}

// Records renders every row as text.
func (rs *RowSet) Records() []Record {
	records := make([]Record, len(rs.rows))
	for i, row := range rs.rows {
		records[i] = row.Record()
	}
	return records
}

// Cell returns the cell at row i of the named column.
func (rs *RowSet) Cell(i int, name string) (*ValuedObject, error) {
	row := rs.Row(i)
	if row == nil {
		return nil, NewErrorContext("Cell", name).
			WithDetails(fmt.Sprintf("row %d of %d", i, len(rs.rows))).
			Error(ErrInvalidData)
	}
	cell, ok := row.Get(name)
	if !ok {
		return nil, NewErrorContext("Cell", name).Error(ErrColumnNotFound)
	}
	return cell, nil
}
