package sqlcell

import "github.com/nao1215/sqlcell/domain/model"

type (
	// OutputFormat represents the output file format
	OutputFormat = model.OutputFormat
	// CompressionType represents the compression type
	CompressionType = model.CompressionType
	// DumpOptions configures how row sets are written.
	//
	// Example:
	//
	//	options := sqlcell.NewDumpOptions().
	//		WithFormat(sqlcell.OutputFormatSQL).
	//		WithDialect(sqlcell.DialectPostgreSQL).
	//		WithCompression(sqlcell.CompressionGZ)
	//
	//	path, err := sqlcell.DumpFile(ctx, "./output", rs, options)
	DumpOptions = model.DumpOptions
)

// Output formats
const (
	OutputFormatCSV     = model.OutputFormatCSV
	OutputFormatTSV     = model.OutputFormatTSV
	OutputFormatLTSV    = model.OutputFormatLTSV
	OutputFormatParquet = model.OutputFormatParquet
	OutputFormatXLSX    = model.OutputFormatXLSX
	OutputFormatSQL     = model.OutputFormatSQL
)

// Compression types
const (
	CompressionNone = model.CompressionNone
	CompressionGZ   = model.CompressionGZ
	CompressionBZ2  = model.CompressionBZ2
	CompressionXZ   = model.CompressionXZ
	CompressionZSTD = model.CompressionZSTD
)

// NewDumpOptions creates default export options (CSV, no compression, generic SQL).
//
// Modify with:
//   - WithFormat(): Change file format (CSV, TSV, LTSV, Parquet, XLSX, SQL)
//   - WithCompression(): Add compression (GZ, XZ, ZSTD)
//   - WithDialect(): Choose the literal syntax of SQL output
func NewDumpOptions() DumpOptions {
	return model.NewDumpOptions()
}

// LoadOptions configures how row sets are read.
type LoadOptions struct {
	// TableName overrides the row set name derived from the file name
	TableName string
	// Columns overrides the inferred column types. The count must match the file.
	Columns []*ValuedObjectInfos
	// Compression of a reader passed to LoadReader. LoadFile detects it from the extension.
	Compression CompressionType
}

// NewLoadOptions creates default load options: inferred types, no compression.
func NewLoadOptions() LoadOptions {
	return LoadOptions{Compression: CompressionNone}
}

// WithTableName sets the row set name.
func (o LoadOptions) WithTableName(name string) LoadOptions {
	o.TableName = name
	return o
}

// WithColumns declares the column types instead of inferring them.
func (o LoadOptions) WithColumns(columns ...*ValuedObjectInfos) LoadOptions {
	o.Columns = columns
	return o
}

// WithCompression sets the compression of a reader.
func (o LoadOptions) WithCompression(compression CompressionType) LoadOptions {
	o.Compression = compression
	return o
}

// ParseOutputFormat converts a format name such as "csv" or "parquet".
func ParseOutputFormat(name string) (OutputFormat, bool) {
	return model.ParseOutputFormat(name)
}

// ParseCompressionType converts a compression name such as "gz" or "zstd".
func ParseCompressionType(name string) (CompressionType, bool) {
	return model.ParseCompressionType(name)
}
