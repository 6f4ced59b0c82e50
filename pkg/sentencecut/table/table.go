// Package table holds the in-memory tabular representation the pipeline
// reads and writes: an ordered header row plus string data rows.
package table

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"io"
)

// Table is a header row plus data rows. Cells are strings; numeric
// interpretation happens at the point of use.
type Table struct {
	Headers []string
	Rows    [][]string
}

// New creates an empty table with the given headers.
func New(headers ...string) *Table {
	return &Table{Headers: headers}
}

// Append adds a data row. Short rows are padded with empty cells so
// every row has one cell per header.
func (t *Table) Append(cells ...string) {
	for len(cells) < len(t.Headers) {
		cells = append(cells, "")
	}
	t.Rows = append(t.Rows, cells)
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Cell returns the cell at (row, col), or "" when col is out of range
// for that row.
func (t *Table) Cell(row, col int) string {
	if col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// WriteCSV writes the table as CSV, headers first.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Headers); err != nil {
		return err
	}
	for _, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Fingerprint returns a stable hex digest of the table contents.
// Cell boundaries are length-prefixed so shifting text between cells
// changes the digest.
func (t *Table) Fingerprint() string {
	h := sha256.New()
	writeRecord := func(cells []string) {
		for _, c := range cells {
			var lenBuf [8]byte
			n := len(c)
			for i := 0; i < 8; i++ {
				lenBuf[i] = byte(n >> (8 * i))
			}
			h.Write(lenBuf[:])
			h.Write([]byte(c))
		}
		h.Write([]byte{0})
	}
	writeRecord(t.Headers)
	for _, row := range t.Rows {
		writeRecord(row)
	}
	return hex.EncodeToString(h.Sum(nil))
}
