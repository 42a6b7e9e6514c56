package model

import (
	"path/filepath"
	"strings"
)

// FileType represents supported row set file types
type FileType int

const (
	// FileTypeCSV represents CSV file type
	FileTypeCSV FileType = iota
	// FileTypeTSV represents TSV file type
	FileTypeTSV
	// FileTypeLTSV represents LTSV file type
	FileTypeLTSV
	// FileTypeParquet represents Parquet file type
	FileTypeParquet
	// FileTypeXLSX represents Excel XLSX file type
	FileTypeXLSX
	// FileTypeUnsupported represents unsupported file type
	FileTypeUnsupported
)

// File extensions
const (
	// ExtCSV is the CSV file extension
	ExtCSV = ".csv"
	// ExtTSV is the TSV file extension
	ExtTSV = ".tsv"
	// ExtLTSV is the LTSV file extension
	ExtLTSV = ".ltsv"
	// ExtParquet is the Parquet file extension
	ExtParquet = ".parquet"
	// ExtXLSX is the Excel file extension
	ExtXLSX = ".xlsx"
	// ExtSQL is the SQL script file extension
	ExtSQL = ".sql"
	// ExtGZ is the gzip compression extension
	ExtGZ = ".gz"
	// ExtBZ2 is the bzip2 compression extension
	ExtBZ2 = ".bz2"
	// ExtXZ is the xz compression extension
	ExtXZ = ".xz"
	// ExtZSTD is the zstd compression extension
	ExtZSTD = ".zst"
)

var compressionExtensions = []struct {
	ext         string
	compression CompressionType
}{
	{ExtGZ, CompressionGZ},
	{ExtBZ2, CompressionBZ2},
	{ExtXZ, CompressionXZ},
	{ExtZSTD, CompressionZSTD},
}

// String returns the string representation of FileType
func (t FileType) String() string {
	switch t {
	case FileTypeCSV:
		return "csv"
	case FileTypeTSV:
		return "tsv"
	case FileTypeLTSV:
		return "ltsv"
	case FileTypeParquet:
		return "parquet"
	case FileTypeXLSX:
		return "xlsx"
	default:
		return "unsupported"
	}
}

// DetectCompression returns the compression of path from its extension.
func DetectCompression(path string) CompressionType {
	lower := strings.ToLower(path)
	for _, c := range compressionExtensions {
		if strings.HasSuffix(lower, c.ext) {
			return c.compression
		}
	}
	return CompressionNone
}

// RemoveCompressionExtension removes the compression extension from a file path if present
func RemoveCompressionExtension(path string) string {
	lower := strings.ToLower(path)
	for _, c := range compressionExtensions {
		if strings.HasSuffix(lower, c.ext) {
			return path[:len(path)-len(c.ext)]
		}
	}
	return path
}

// DetectFileType detects file type from extension, considering compressed files
func DetectFileType(path string) FileType {
	switch strings.ToLower(filepath.Ext(RemoveCompressionExtension(path))) {
	case ExtCSV:
		return FileTypeCSV
	case ExtTSV:
		return FileTypeTSV
	case ExtLTSV:
		return FileTypeLTSV
	case ExtParquet:
		return FileTypeParquet
	case ExtXLSX:
		return FileTypeXLSX
	default:
		return FileTypeUnsupported
	}
}

// IsSupportedFile checks if the file has a supported extension
func IsSupportedFile(fileName string) bool {
	return DetectFileType(fileName) != FileTypeUnsupported
}
