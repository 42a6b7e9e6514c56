package model

import (
	"path/filepath"
	"strings"
)

// Table is a row set in text form: a header, records and the column metadata
// inferred from the records.
type Table struct {
	// Name is table name derived from file path.
	name string
	// Header is table header.
	header Header
	// Records is table records.
	records []Record
	// columns contains inferred type information for each column
	columns []*ValuedObjectInfos
}

// NewTable create new Table.
func NewTable(
	name string,
	header Header,
	records []Record,
) *Table {
	return &Table{
		name:    name,
		header:  header,
		records: records,
		columns: InferColumnsInfo(header, records),
	}
}

// NewTableWithColumns creates a Table whose column metadata is already known.
func NewTableWithColumns(name string, columns []*ValuedObjectInfos, records []Record) *Table {
	header := make(Header, len(columns))
	for i, c := range columns {
		header[i] = c.Name()
	}
	return &Table{
		name:    name,
		header:  header,
		records: records,
		columns: columns,
	}
}

// Name return table name.
func (t *Table) Name() string {
	return t.name
}

// Header return table header.
func (t *Table) Header() Header {
	return t.header
}

// Records return table records.
func (t *Table) Records() []Record {
	return t.records
}

// Columns returns column metadata
func (t *Table) Columns() []*ValuedObjectInfos {
	return t.columns
}

// Equal compare Table.
func (t *Table) Equal(t2 *Table) bool {
	if t.Name() != t2.Name() {
		return false
	}
	if !t.header.Equal(t2.header) {
		return false
	}
	if len(t.Records()) != len(t2.Records()) {
		return false
	}
	for i, record := range t.Records() {
		if !record.Equal(t2.Records()[i]) {
			return false
		}
	}
	return true
}

// TableFromFilePath creates table name from file path
func TableFromFilePath(filePath string) string {
	fileName := RemoveCompressionExtension(filepath.Base(filePath))
	return strings.TrimSuffix(fileName, filepath.Ext(fileName))
}
