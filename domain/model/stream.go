package model

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// TextParser reads delimited text (CSV, TSV, LTSV) into a Table.
// The reader it is given must already be decompressed.
type TextParser struct {
	fileType  FileType
	tableName string
}

// NewTextParser creates a new text parser
func NewTextParser(fileType FileType, tableName string) *TextParser {
	return &TextParser{
		fileType:  fileType,
		tableName: tableName,
	}
}

// ParseFromReader parses data from io.Reader and returns a Table
func (p *TextParser) ParseFromReader(reader io.Reader) (*Table, error) {
	switch p.fileType {
	case FileTypeCSV:
		return p.parseDelimited(reader, ',')
	case FileTypeTSV:
		return p.parseDelimited(reader, '\t')
	case FileTypeLTSV:
		return p.parseLTSV(reader)
	default:
		return nil, fmt.Errorf("%w: %s is not a text format", ErrUnsupportedType, p.fileType)
	}
}

// parseDelimited parses CSV or TSV data
func (p *TextParser) parseDelimited(reader io.Reader, comma rune) (*Table, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = comma
	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p.fileType, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("empty %s data", p.fileType)
	}

	header := NewHeader(records[0])
	if err := checkDuplicateColumns(header); err != nil {
		return nil, err
	}

	tableRecords := make([]Record, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		tableRecords = append(tableRecords, NewRecord(records[i]))
	}

	return NewTable(p.tableName, header, tableRecords), nil
}

// parseLTSV parses LTSV data. Columns are ordered by first appearance.
func (p *TextParser) parseLTSV(reader io.Reader) (*Table, error) {
	var header Header
	headerSeen := make(map[string]bool)
	var records []map[string]string

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		record := make(map[string]string)
		for _, pair := range strings.Split(line, "\t") {
			key, value, ok := strings.Cut(pair, ":")
			if !ok {
				continue
			}
			key = strings.TrimSpace(key)
			record[key] = strings.TrimSpace(value)
			if !headerSeen[key] {
				headerSeen[key] = true
				header = append(header, key)
			}
		}
		if len(record) > 0 {
			records = append(records, record)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read LTSV: %w", err)
	}

	if len(records) == 0 {
		return nil, errors.New("no valid LTSV records found")
	}

	tableRecords := make([]Record, 0, len(records))
	for _, record := range records {
		row := make(Record, 0, len(header))
		for _, key := range header {
			row = append(row, record[key])
		}
		tableRecords = append(tableRecords, row)
	}

	return NewTable(p.tableName, header, tableRecords), nil
}

// checkDuplicateColumns reports the first repeated column name
func checkDuplicateColumns(header Header) error {
	columnsSeen := make(map[string]bool, len(header))
	for _, col := range header {
		if columnsSeen[col] {
			return fmt.Errorf("%w: %s", ErrDuplicateColumnName, col)
		}
		columnsSeen[col] = true
	}
	return nil
}
