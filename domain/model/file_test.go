package model

import (
	"testing"
)

func TestDetectFileType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		path     string
		expected FileType
	}{
		{name: "CSV file", path: "test.csv", expected: FileTypeCSV},
		{name: "TSV file", path: "test.tsv", expected: FileTypeTSV},
		{name: "LTSV file", path: "test.ltsv", expected: FileTypeLTSV},
		{name: "Parquet file", path: "test.parquet", expected: FileTypeParquet},
		{name: "XLSX file", path: "/tmp/book.xlsx", expected: FileTypeXLSX},
		{name: "Upper case extension", path: "TEST.CSV", expected: FileTypeCSV},
		{name: "CSV gzip file", path: "test.csv.gz", expected: FileTypeCSV},
		{name: "TSV bzip2 file", path: "test.tsv.bz2", expected: FileTypeTSV},
		{name: "LTSV xz file", path: "test.ltsv.xz", expected: FileTypeLTSV},
		{name: "CSV zstd file", path: "test.csv.zst", expected: FileTypeCSV},
		{name: "Unsupported file", path: "test.txt", expected: FileTypeUnsupported},
		{name: "No extension", path: "test", expected: FileTypeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DetectFileType(tt.path); got != tt.expected {
				t.Errorf("DetectFileType(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestDetectCompression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected CompressionType
	}{
		{"test.csv", CompressionNone},
		{"test.csv.gz", CompressionGZ},
		{"test.csv.GZ", CompressionGZ},
		{"test.tsv.bz2", CompressionBZ2},
		{"test.ltsv.xz", CompressionXZ},
		{"test.csv.zst", CompressionZSTD},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := DetectCompression(tt.path); got != tt.expected {
				t.Errorf("DetectCompression(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestRemoveCompressionExtension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path     string
		expected string
	}{
		{"data.csv.gz", "data.csv"},
		{"data.csv.ZST", "data.csv"},
		{"data.csv", "data.csv"},
		{"archive.gz", "archive"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := RemoveCompressionExtension(tt.path); got != tt.expected {
				t.Errorf("RemoveCompressionExtension(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestIsSupportedFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fileName string
		expected bool
	}{
		{"test.csv", true},
		{"test.tsv.gz", true},
		{"test.parquet", true},
		{"test.xlsx", true},
		{"test.sql", false},
		{"test.txt", false},
		{"test.gz", false},
	}

	for _, tt := range tests {
		t.Run(tt.fileName, func(t *testing.T) {
			t.Parallel()

			if got := IsSupportedFile(tt.fileName); got != tt.expected {
				t.Errorf("IsSupportedFile(%q) = %v, want %v", tt.fileName, got, tt.expected)
			}
		})
	}
}

func TestFileType_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fileType FileType
		expected string
	}{
		{FileTypeCSV, "csv"},
		{FileTypeTSV, "tsv"},
		{FileTypeLTSV, "ltsv"},
		{FileTypeParquet, "parquet"},
		{FileTypeXLSX, "xlsx"},
		{FileTypeUnsupported, "unsupported"},
	}

	for _, tt := range tests {
		if got := tt.fileType.String(); got != tt.expected {
			t.Errorf("FileType.String() = %s, want %s", got, tt.expected)
		}
	}
}
