// Package table loads row-oriented TSV tables, transparently handling
// gzip-compressed inputs.
package table

import (
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// MalformedInputError reports an input that could not be decompressed or
// parsed, or that held no data rows.
type MalformedInputError struct {
	Path   string
	Reason string
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed input %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed input %s: %s", e.Path, e.Reason)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }

// Table is a row-oriented table of string cells with named columns.
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of a named column, or an error when
// the column is absent.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, col := range t.Columns {
		if col == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("column %q not found (have %s)", name, strings.Join(t.Columns, ", "))
}

// Cell returns the value at a row for a named column.
func (t *Table) Cell(row []string, name string) (string, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return "", err
	}
	if idx >= len(row) {
		return "", fmt.Errorf("row has %d cells, column %q is at %d", len(row), name, idx)
	}
	return row[idx], nil
}

// ReadTSV reads a tab-separated table from path. Files ending in .gz are
// decompressed on the fly. A strict fixed-width parse is attempted first;
// if it fails the file is re-read with a lenient chunked reader that pads
// short rows and truncates long ones, concatenating chunks into the same
// logical table. Zero data rows is a MalformedInputError.
func ReadTSV(path string) (*Table, error) {
	tab, strictErr := readTSVOnce(path, true)
	if strictErr != nil {
		var malformed *MalformedInputError
		if errors.As(strictErr, &malformed) {
			return nil, strictErr
		}
		tab, strictErr = readTSVOnce(path, false)
		if strictErr != nil {
			return nil, strictErr
		}
	}
	if len(tab.Rows) == 0 {
		return nil, &MalformedInputError{Path: path, Reason: "no data rows"}
	}
	return tab, nil
}

const lenientChunkRows = 65536

func readTSVOnce(path string, strict bool) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer func() { _ = file.Close() }()

	var reader io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, &MalformedInputError{Path: path, Reason: "decompress", Err: err}
		}
		defer func() { _ = gz.Close() }()
		reader = gz
	}

	cr := newTSVReader(reader)
	if !strict {
		cr.FieldsPerRecord = -1
	}

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &MalformedInputError{Path: path, Reason: "empty file"}
	}
	if err != nil {
		return nil, &MalformedInputError{Path: path, Reason: "read header", Err: err}
	}

	tab := &Table{Columns: header}
	if strict {
		rows, err := cr.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("strict parse %s: %w", path, err)
		}
		tab.Rows = rows
		return tab, nil
	}

	// Lenient pass: accumulate in chunks, normalizing ragged rows to the
	// header width.
	width := len(header)
	chunk := make([][]string, 0, lenientChunkRows)
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &MalformedInputError{Path: path, Reason: "lenient parse", Err: err}
		}
		chunk = append(chunk, fitWidth(row, width))
		if len(chunk) == lenientChunkRows {
			tab.Rows = append(tab.Rows, chunk...)
			chunk = chunk[:0]
		}
	}
	tab.Rows = append(tab.Rows, chunk...)
	return tab, nil
}

func newTSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	// IMDb dumps do not quote fields; a stray quote character is data.
	cr.LazyQuotes = true
	return cr
}

func fitWidth(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
