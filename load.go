package sqlcell

import (
	"context"
	"fmt"
	"io"

	"github.com/nao1215/sqlcell/domain/model"
	"github.com/nao1215/sqlcell/internal/logger"
)

func loadOptionsOf(opts []LoadOptions) LoadOptions {
	if len(opts) == 0 {
		return NewLoadOptions()
	}
	return opts[0]
}

// LoadFile reads a CSV, TSV, LTSV, Parquet or XLSX file into a row set.
// Compression is detected from the extension (.gz, .bz2, .xz, .zst), and the
// row set is named after the file unless LoadOptions.TableName is set.
//
// Column types are inferred from the data unless LoadOptions.Columns declares
// them. Files written by Dump in Parquet or XLSX format carry their column
// types and load back with them.
func LoadFile(ctx context.Context, path string, opts ...LoadOptions) (*RowSet, error) {
	options := loadOptionsOf(opts)

	fileType := model.DetectFileType(path)
	if fileType == model.FileTypeUnsupported {
		return nil, NewErrorContext("Load", "").WithDetails(path).Error(ErrUnsupportedFormat)
	}

	reader, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	name := options.TableName
	if name == "" {
		name = model.TableFromFilePath(path)
	}

	rs, err := load(ctx, reader, name, fileType, options.Columns)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return rs, nil
}

// LoadReader reads data of the given file type from r. The reader is
// decompressed according to LoadOptions.Compression.
func LoadReader(ctx context.Context, r io.Reader, name string, fileType FileType, opts ...LoadOptions) (*RowSet, error) {
	options := loadOptionsOf(opts)
	if options.TableName != "" {
		name = options.TableName
	}

	reader, err := decompress(r, options.Compression)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return load(ctx, reader, name, fileType, options.Columns)
}

func load(ctx context.Context, r io.Reader, name string, fileType FileType, columns []*ValuedObjectInfos) (*RowSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rs  *RowSet
		err error
	)
	switch fileType {
	case model.FileTypeCSV, model.FileTypeTSV, model.FileTypeLTSV:
		var table *model.Table
		table, err = model.NewTextParser(fileType, name).ParseFromReader(r)
		if err != nil {
			return nil, err
		}
		if columns == nil {
			columns = table.Columns()
		}
		rs, err = rowSetFromText(ctx, name, table.Header(), table.Records(), columns)
	case model.FileTypeParquet:
		rs, err = readParquet(ctx, r, name, columns)
	case model.FileTypeXLSX:
		rs, err = readXLSX(ctx, r, name, columns)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileType)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("row set loaded", "table", rs.Name(), "format", fileType.String(), "columns", len(rs.columns), "rows", rs.Len())
	return rs, nil
}

// rowSetFromText parses text records into a row set. Columns are inferred when
// nil and must otherwise match the header one to one.
func rowSetFromText(ctx context.Context, name string, header Header, records []Record, columns []*ValuedObjectInfos) (*RowSet, error) {
	if columns == nil {
		columns = model.InferColumnsInfo(header, records)
	}
	if len(columns) != len(header) {
		return nil, NewErrorContext("Load", "").
			WithTable(name).
			WithDetails(fmt.Sprintf("%d columns declared, data has %d", len(columns), len(header))).
			Error(ErrInvalidData)
	}

	rs, err := NewRowSet(name, columns)
	if err != nil {
		return nil, err
	}
	for i, record := range records {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if err := rs.AppendText(record); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return rs, nil
}
