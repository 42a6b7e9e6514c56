package sqlcell

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/nao1215/sqlcell/domain/model"
	"github.com/xuri/excelize/v2"
)

// typesSheet is a hidden sheet listing the column definitions of a dumped row
// set, one "name, definition" row per column.
const typesSheet = "sqlcell_types"

// writeXLSX writes rs to the first sheet of a new workbook.
func writeXLSX(ctx context.Context, w io.Writer, rs *RowSet) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close() // Ignore close error
	}()

	sheet := rs.name
	if sheet == "" {
		sheet = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet %s: %w", sheet, err)
	}

	for col, infos := range rs.columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, infos.Name()); err != nil {
			return err
		}
	}

	for i, row := range rs.rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for col, value := range row.cells {
			if value.IsNull() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, xlsxValue(value)); err != nil {
				return newCellErrorContext("Dump", value.infos).WithTable(rs.name).Error(err)
			}
		}
	}

	if err := writeXLSXTypes(f, rs.columns); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write xlsx: %w", err)
	}
	return nil
}

// xlsxValue keeps numbers numeric in the sheet and writes everything else as
// the text form SetText reads back.
func xlsxValue(cell *ValuedObject) any {
	tag := cell.Tag()
	if tag.IsInteger() || tag.IsFloat() {
		return model.Native(cell.value)
	}
	return cell.String()
}

func writeXLSXTypes(f *excelize.File, columns []*ValuedObjectInfos) error {
	if _, err := f.NewSheet(typesSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", typesSheet, err)
	}
	for i, infos := range columns {
		if err := f.SetSheetRow(typesSheet, fmt.Sprintf("A%d", i+1), &[]any{infos.Name(), infos.Definition()}); err != nil {
			return err
		}
	}
	return f.SetSheetVisible(typesSheet, false)
}

// readXLSXTypes returns the column definitions stored by writeXLSX, or nil
// when the workbook was written by something else.
func readXLSXTypes(f *excelize.File, header Header) []*ValuedObjectInfos {
	rows, err := f.GetRows(typesSheet)
	if err != nil || len(rows) != len(header) {
		return nil
	}
	columns := make([]*ValuedObjectInfos, len(rows))
	for i, row := range rows {
		if len(row) < 2 || row[0] != header[i] {
			return nil
		}
		infos, err := model.ParseInfos(row[0], row[1])
		if err != nil {
			return nil
		}
		columns[i] = infos
	}
	return columns
}

// readXLSX loads the first sheet of a workbook. The first row is the header and
// short rows are padded with empty fields.
func readXLSX(ctx context.Context, r io.Reader, name string, columns []*ValuedObjectInfos) (*RowSet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read xlsx data: %w", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() {
		_ = f.Close() // Ignore close error
	}()

	var sheet string
	for _, s := range f.GetSheetList() {
		if s != typesSheet {
			sheet = s
			break
		}
	}
	if sheet == "" {
		return nil, fmt.Errorf("%w: no sheets found in Excel data %s", ErrEmptyData, name)
	}

	// raw values keep 64-bit integers and doubles exact; formatted values
	// round numbers to 15 significant digits
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: sheet %s is empty", ErrEmptyData, sheet)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	header := model.NewHeader(rows[0])
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(Record, len(header))
		copy(record, row)
		records = append(records, record)
	}

	if columns == nil {
		columns = readXLSXTypes(f, header)
	}
	return rowSetFromText(ctx, name, header, records, columns)
}
