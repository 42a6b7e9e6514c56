package model

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Common datetime patterns to detect
var datetimePatterns = []struct {
	pattern *regexp.Regexp
	formats []string // Multiple formats for the same pattern
	tag     TypeTag  // Kind of temporal value the pattern produces
}{
	// ISO8601 formats with timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?(Z|[+-]\d{2}:\d{2})$`),
		[]string{time.RFC3339, time.RFC3339Nano},
		TypeDateTime,
	},
	// ISO8601 formats without timezone
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02T15:04:05", "2006-01-02T15:04:05.999999999"},
		TypeDateTime,
	},
	// ISO8601 date and time with space
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"2006-01-02 15:04:05", "2006-01-02 15:04:05.999999999"},
		TypeDateTime,
	},
	// ISO8601 date only
	{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		[]string{"2006-01-02"},
		TypeDate,
	},
	// US formats
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4} \d{1,2}:\d{2}:\d{2}( (AM|PM))?$`),
		[]string{"1/2/2006 15:04:05", "1/2/2006 3:04:05 PM", "01/02/2006 15:04:05"},
		TypeDateTime,
	},
	{
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
		[]string{"1/2/2006", "01/02/2006"},
		TypeDate,
	},
	// European formats
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4} \d{1,2}:\d{2}:\d{2}$`),
		[]string{"2.1.2006 15:04:05", "02.01.2006 15:04:05"},
		TypeDateTime,
	},
	{
		regexp.MustCompile(`^\d{1,2}\.\d{1,2}\.\d{4}$`),
		[]string{"2.1.2006", "02.01.2006"},
		TypeDate,
	},
	// Time only
	{
		regexp.MustCompile(`^\d{1,2}:\d{2}:\d{2}(\.\d+)?$`),
		[]string{"15:04:05", "15:04:05.999999999", "3:04:05"},
		TypeTime,
	},
	{
		regexp.MustCompile(`^\d{1,2}:\d{2}$`),
		[]string{"15:04", "3:04"},
		TypeTime,
	},
}

// parseTemporal parses value with the first matching pattern and reports which
// temporal kind it denotes.
func parseTemporal(value string) (time.Time, TypeTag, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, TypeNull, false
	}

	for _, dp := range datetimePatterns {
		if dp.pattern.MatchString(value) {
			// Try each format for this pattern
			for _, format := range dp.formats {
				if t, err := time.Parse(format, value); err == nil {
					return t, dp.tag, true
				}
			}
		}
	}

	return time.Time{}, TypeNull, false
}

// isDatetime checks if a string value represents a date, a time or a datetime
func isDatetime(value string) bool {
	_, _, ok := parseTemporal(value)
	return ok
}

// InferTypeTag infers the type tag of a column from a slice of string values.
//
// Integers become BIGINT, other numbers DOUBLE, temporal text DATE, TIME or DATETIME
// (dates mixed with datetimes become DATETIME), and anything else VARCHAR.
func InferTypeTag(values []string) TypeTag {
	if len(values) == 0 {
		return TypeVarChar
	}

	temporal := make(map[TypeTag]bool)
	hasReal := false
	hasInteger := false

	for _, value := range values {
		// Skip empty values for type inference
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		// Check if it's a datetime first (before checking numbers)
		if _, tag, ok := parseTemporal(value); ok {
			temporal[tag] = true
			continue
		}

		// Try to parse as integer
		if _, err := strconv.ParseInt(value, 10, 64); err == nil {
			hasInteger = true
			continue
		}

		// Try to parse as float
		if _, err := strconv.ParseFloat(value, 64); err == nil {
			hasReal = true
			continue
		}

		// If any value is text, the whole column is text
		return TypeVarChar
	}

	switch {
	case len(temporal) > 0 && (hasReal || hasInteger):
		return TypeVarChar
	case len(temporal) == 1:
		for tag := range temporal {
			return tag
		}
	case len(temporal) == 2 && temporal[TypeDate] && temporal[TypeDateTime]:
		return TypeDateTime
	case len(temporal) > 0:
		return TypeVarChar
	case hasReal:
		return TypeFloat64
	case hasInteger:
		return TypeSInt64
	}

	// Default to VARCHAR if no values were found
	return TypeVarChar
}

// InferColumnsInfo infers column metadata from header and data records
func InferColumnsInfo(header Header, records []Record) []*ValuedObjectInfos {
	columnCount := len(header)
	if columnCount == 0 {
		return nil
	}

	columns := make([]*ValuedObjectInfos, columnCount)
	for i := range columnCount {
		var values []string
		for _, record := range records {
			if i < len(record) {
				values = append(values, record[i])
			}
		}
		columns[i] = NewValuedObjectInfos(header[i], InferTypeTag(values))
	}

	return columns
}
