package driver

import (
	"errors"
	"path/filepath"
	"strings"
	"unicode"
)

// MaxFilesPerDirectory defines the maximum number of files loaded from one directory
const MaxFilesPerDirectory = 1000

// MaxColumnCount defines the maximum number of columns allowed in a table.
// SQLite refuses more than 2000 columns by default.
const MaxColumnCount = 2000

// MaxIdentifierLength is the longest table or column name accepted
const MaxIdentifierLength = 128

var (
	// ErrTooManyFiles is returned when a directory contains too many files
	ErrTooManyFiles = errors.New("too many files in directory")

	// ErrTooManyColumns is returned when a row set has too many columns
	ErrTooManyColumns = errors.New("too many columns")

	// ErrInvalidPath is returned when a path is invalid or potentially dangerous
	ErrInvalidPath = errors.New("invalid or dangerous path")

	// ErrInvalidIdentifier is returned when an SQL identifier is invalid
	ErrInvalidIdentifier = errors.New("invalid SQL identifier")
)

// ValidatePath rejects empty paths, paths holding a NUL byte, traversals that
// climb more than three levels and paths into system directories.
func ValidatePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrInvalidPath
	}
	if strings.Contains(path, "\x00") {
		return ErrInvalidPath
	}

	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") && !isLegitimateRelativePath(path) {
		return ErrInvalidPath
	}

	systemDirs := []string{"/etc/", "/proc/", "/sys/", "/dev/", "/boot/"}
	lowerPath := strings.ToLower(path)
	for _, sysDir := range systemDirs {
		if strings.HasPrefix(lowerPath, sysDir) {
			return ErrInvalidPath
		}
	}

	windowsDirs := []string{
		"c:\\windows\\", "c:/windows/",
		"\\\\?\\", // UNC paths
		"\\\\",    // Network paths
	}
	for _, winDir := range windowsDirs {
		if strings.HasPrefix(lowerPath, winDir) {
			return ErrInvalidPath
		}
	}
	return nil
}

// ValidateColumnCount checks if the number of columns is within acceptable limits
func ValidateColumnCount(columnCount int) error {
	if columnCount > MaxColumnCount {
		return ErrTooManyColumns
	}
	return nil
}

// ValidateFileCount checks if the number of files is within acceptable limits
func ValidateFileCount(fileCount int) error {
	if fileCount > MaxFilesPerDirectory {
		return ErrTooManyFiles
	}
	return nil
}

// ValidateIdentifier checks a table or column name before it is quoted into
// DDL. Names must be non-empty, at most MaxIdentifierLength bytes and free of
// control characters and identifier quotes.
func ValidateIdentifier(name string) error {
	if name == "" || len(name) > MaxIdentifierLength {
		return ErrInvalidIdentifier
	}
	if strings.ContainsAny(name, "\"`") || strings.ContainsFunc(name, unicode.IsControl) {
		return ErrInvalidIdentifier
	}
	return nil
}

// IsValidFileName checks if a filename is safe to process
func IsValidFileName(fileName string) bool {
	// Skip hidden files
	if strings.HasPrefix(fileName, ".") {
		return false
	}
	if strings.Contains(fileName, "\x00") {
		return false
	}
	return !strings.ContainsAny(fileName, "<>:\"|?*")
}

// SanitizeForLog removes sensitive information from strings before logging
func SanitizeForLog(input string) string {
	sensitive := []string{
		"password", "passwd", "secret", "token", "credential", "private",
	}

	lower := strings.ToLower(input)
	for _, pattern := range sensitive {
		if strings.Contains(lower, pattern) {
			return "[REDACTED]"
		}
	}

	// Limit length to prevent log flooding
	const maxLogLength = 200
	if len(input) > maxLogLength {
		return input[:maxLogLength] + "..."
	}
	return input
}

// isLegitimateRelativePath allows at most three leading parent references.
func isLegitimateRelativePath(path string) bool {
	cleanPath := filepath.Clean(path)
	if !strings.HasPrefix(cleanPath, "../") && !strings.HasPrefix(cleanPath, "..\\") && cleanPath != ".." {
		return true
	}

	parts := strings.FieldsFunc(cleanPath, func(c rune) bool {
		return c == '/' || c == '\\'
	})
	upLevels := 0
	for _, part := range parts {
		if part != ".." {
			break
		}
		upLevels++
	}
	return upLevels <= 3
}
