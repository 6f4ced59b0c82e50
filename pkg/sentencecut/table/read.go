package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/cognicore/sentencecut/pkg/sentencecut/internalerr"
)

// ReadFile parses CSV, TSV or XLSX content based on the filename
// extension. The first row is taken as the header row.
func ReadFile(filename string, content []byte) (*Table, error) {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return ReadCSV(content, ',')
	case strings.HasSuffix(lower, ".tsv"):
		return ReadCSV(content, '\t')
	case strings.HasSuffix(lower, ".xlsx"):
		return ReadXLSX(content)
	}
	return nil, fmt.Errorf("%w: %s", internalerr.ErrUnsupportedFormat, filename)
}

// ReadCSV parses delimited content into a table. Short rows are padded
// to the header width.
func ReadCSV(content []byte, comma rune) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return fromRecords(all)
}

// ReadXLSX parses the first sheet of an XLSX workbook into a table.
func ReadXLSX(content []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, internalerr.ErrEmptyInput
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return fromRecords(rows)
}

func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, internalerr.ErrEmptyInput
	}
	t := New(records[0]...)
	for _, row := range records[1:] {
		t.Append(row...)
	}
	return t, nil
}
