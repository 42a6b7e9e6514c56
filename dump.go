package sqlcell

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/sqlcell/domain/model"
	"github.com/nao1215/sqlcell/internal/logger"
)

func dumpOptionsOf(opts []DumpOptions) DumpOptions {
	if len(opts) == 0 {
		return NewDumpOptions()
	}
	return opts[0]
}

// Dump writes rs to w in the format of the options, compressing text formats
// when a compression is set. Parquet maps the compression onto its own page
// codec and XLSX is never compressed.
func Dump(ctx context.Context, w io.Writer, rs *RowSet, opts ...DumpOptions) error {
	options := dumpOptionsOf(opts)

	if options.Format.IsBinary() {
		return dump(ctx, w, rs, options)
	}

	writer, err := compress(w, options.Compression)
	if err != nil {
		return err
	}
	if err := dump(ctx, writer, rs, options); err != nil {
		_ = writer.Close() // Ignore close error
		return err
	}
	return writer.Close()
}

// DumpFile writes rs into outputDir, creating the directory when needed. The
// file is named after the row set with the extension of the options, for
// example "users.csv.gz". It returns the path of the written file.
func DumpFile(ctx context.Context, outputDir string, rs *RowSet, opts ...DumpOptions) (string, error) {
	options := dumpOptionsOf(opts)
	if rs.name == "" {
		return "", NewErrorContext("Dump", "").WithDetails("row set has no name").Error(ErrInvalidData)
	}

	if err := os.MkdirAll(outputDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	compression := options.Compression
	if options.Format.IsBinary() {
		compression = CompressionNone
	}

	path := filepath.Join(outputDir, rs.name+options.FileExtension())
	writer, err := createFile(path, compression)
	if err != nil {
		return "", err
	}

	if err := dump(ctx, writer, rs, options); err != nil {
		_ = writer.Close() // Ignore close error
		_ = os.Remove(path)
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}

	logger.Debug("row set dumped", "table", rs.name, "path", path, "rows", rs.Len())
	return path, nil
}

// dump writes the uncompressed representation of rs.
func dump(ctx context.Context, w io.Writer, rs *RowSet, options DumpOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch options.Format {
	case OutputFormatCSV:
		return writeDelimited(ctx, w, rs, ',')
	case OutputFormatTSV:
		return writeDelimited(ctx, w, rs, '\t')
	case OutputFormatLTSV:
		return writeLTSV(ctx, w, rs)
	case OutputFormatSQL:
		return writeSQL(ctx, w, rs, options.Dialect)
	case OutputFormatParquet:
		return writeParquet(ctx, w, rs, options)
	case OutputFormatXLSX:
		return writeXLSX(ctx, w, rs)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, options.Format)
	}
}

func writeDelimited(ctx context.Context, w io.Writer, rs *RowSet, comma rune) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = comma

	if err := csvWriter.Write(rs.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rs.rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := csvWriter.Write(row.Record()); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i+1, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// writeLTSV writes one "label:value" line per row. NULL cells are omitted.
// LTSV has no escaping, so values holding a tab or a newline are rejected.
func writeLTSV(ctx context.Context, w io.Writer, rs *RowSet) error {
	bw := bufio.NewWriter(w)
	fields := make([]string, 0, len(rs.columns))

	for i, row := range rs.rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		fields = fields[:0]
		for j, cell := range row.cells {
			if cell.IsNull() {
				continue
			}
			text := cell.String()
			if strings.ContainsAny(text, "\t\r\n") {
				return newCellErrorContext("Dump", rs.columns[j]).
					WithTable(rs.name).
					WithDetails("LTSV values cannot contain tabs or newlines").
					Error(ErrInvalidData)
			}
			fields = append(fields, rs.columns[j].Name()+":"+text)
		}

		if _, err := bw.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// writeSQL writes a CREATE TABLE statement followed by one INSERT per row,
// with literals rendered for dialect.
func writeSQL(ctx context.Context, w io.Writer, rs *RowSet, dialect Dialect) error {
	bw := bufio.NewWriter(w)
	table := model.QuoteIdentifier(dialect, rs.name)

	names := make([]string, len(rs.columns))
	definitions := make([]string, len(rs.columns))
	for i, infos := range rs.columns {
		names[i] = model.QuoteIdentifier(dialect, infos.Name())
		definitions[i] = "  " + names[i] + " " + infos.DefinitionFor(dialect)
	}

	fmt.Fprintf(bw, "CREATE TABLE %s (\n%s\n);\n", table, strings.Join(definitions, ",\n"))

	columnList := strings.Join(names, ", ")
	literals := make([]string, len(rs.columns))
	for i, row := range rs.rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for j, cell := range row.cells {
			literals[j] = cell.QueryLiteralFor(dialect)
		}
		fmt.Fprintf(bw, "INSERT INTO %s (%s) VALUES (%s);\n", table, columnList, strings.Join(literals, ", "))
	}
	return bw.Flush()
}
