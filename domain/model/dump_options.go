package model

// OutputFormat represents the output file format
type OutputFormat int

const (
	// OutputFormatCSV represents CSV output format
	OutputFormatCSV OutputFormat = iota
	// OutputFormatTSV represents TSV output format
	OutputFormatTSV
	// OutputFormatLTSV represents LTSV output format
	OutputFormatLTSV
	// OutputFormatParquet represents Parquet output format
	OutputFormatParquet
	// OutputFormatXLSX represents Excel XLSX output format
	OutputFormatXLSX
	// OutputFormatSQL represents a script of CREATE TABLE and INSERT statements
	OutputFormatSQL
)

// String returns the string representation of OutputFormat
func (f OutputFormat) String() string {
	switch f {
	case OutputFormatCSV:
		return "csv"
	case OutputFormatTSV:
		return "tsv"
	case OutputFormatLTSV:
		return "ltsv"
	case OutputFormatParquet:
		return "parquet"
	case OutputFormatXLSX:
		return "xlsx"
	case OutputFormatSQL:
		return "sql"
	default:
		return "csv"
	}
}

// Extension returns the file extension for the format
func (f OutputFormat) Extension() string {
	switch f {
	case OutputFormatCSV:
		return ExtCSV
	case OutputFormatTSV:
		return ExtTSV
	case OutputFormatLTSV:
		return ExtLTSV
	case OutputFormatParquet:
		return ExtParquet
	case OutputFormatXLSX:
		return ExtXLSX
	case OutputFormatSQL:
		return ExtSQL
	default:
		return ExtCSV
	}
}

// IsBinary reports whether the format carries its own encoding and is never
// wrapped in a compression stream.
func (f OutputFormat) IsBinary() bool {
	return f == OutputFormatParquet || f == OutputFormatXLSX
}

// ParseOutputFormat converts a format name such as "csv" or "parquet".
func ParseOutputFormat(name string) (OutputFormat, bool) {
	for _, f := range []OutputFormat{
		OutputFormatCSV, OutputFormatTSV, OutputFormatLTSV,
		OutputFormatParquet, OutputFormatXLSX, OutputFormatSQL,
	} {
		if f.String() == name {
			return f, true
		}
	}
	return OutputFormatCSV, false
}

// CompressionType represents the compression type
type CompressionType int

const (
	// CompressionNone represents no compression
	CompressionNone CompressionType = iota
	// CompressionGZ represents gzip compression
	CompressionGZ
	// CompressionBZ2 represents bzip2 compression
	CompressionBZ2
	// CompressionXZ represents xz compression
	CompressionXZ
	// CompressionZSTD represents zstd compression
	CompressionZSTD
)

// String returns the string representation of CompressionType
func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionGZ:
		return "gz"
	case CompressionBZ2:
		return "bz2"
	case CompressionXZ:
		return "xz"
	case CompressionZSTD:
		return "zstd"
	default:
		return "none"
	}
}

// Extension returns the file extension for the compression type
func (c CompressionType) Extension() string {
	switch c {
	case CompressionNone:
		return ""
	case CompressionGZ:
		return ExtGZ
	case CompressionBZ2:
		return ExtBZ2
	case CompressionXZ:
		return ExtXZ
	case CompressionZSTD:
		return ExtZSTD
	default:
		return ""
	}
}

// ParseCompressionType converts a compression name such as "gz" or "zstd".
func ParseCompressionType(name string) (CompressionType, bool) {
	for _, c := range []CompressionType{
		CompressionNone, CompressionGZ, CompressionBZ2, CompressionXZ, CompressionZSTD,
	} {
		if c.String() == name {
			return c, true
		}
	}
	return CompressionNone, false
}

// DumpOptions represents options for dumping a row set
type DumpOptions struct {
	// Format specifies the output file format
	Format OutputFormat
	// Compression specifies the compression type
	Compression CompressionType
	// Dialect selects the literal syntax of OutputFormatSQL
	Dialect Dialect
}

// NewDumpOptions creates new DumpOptions with default values (CSV format, no compression)
func NewDumpOptions() DumpOptions {
	return DumpOptions{
		Format:      OutputFormatCSV,
		Compression: CompressionNone,
		Dialect:     DialectGeneric,
	}
}

// WithFormat sets the output format
func (o DumpOptions) WithFormat(format OutputFormat) DumpOptions {
	o.Format = format
	return o
}

// WithCompression sets the compression type
func (o DumpOptions) WithCompression(compression CompressionType) DumpOptions {
	o.Compression = compression
	return o
}

// WithDialect sets the SQL dialect used by OutputFormatSQL
func (o DumpOptions) WithDialect(dialect Dialect) DumpOptions {
	o.Dialect = dialect
	return o
}

// FileExtension returns the complete file extension including compression.
// Parquet and XLSX files are never compressed.
func (o DumpOptions) FileExtension() string {
	if o.Format.IsBinary() {
		return o.Format.Extension()
	}
	return o.Format.Extension() + o.Compression.Extension()
}
