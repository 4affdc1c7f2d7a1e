// Package renderer turns statement groups into persisted documents: one
// CSV statement per fund built from a tabular template, plus a markdown
// form for terminal preview.
package renderer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"github.com/ledgerline/bookstmt"
)

// Fixed template geometry. The template is a tabular document laid out as:
//
//	row 0: title cell (stamped)
//	row 1: "As of" label, date cell (stamped)
//	row 2: column headers, driving the header-mapping lookup
//	row 3+: static rows (footnotes, disclaimers) preserved as laid out
//
// Data rows are inserted at the anchor, pushing the static rows down
// rather than overwriting them.
const (
	TitleRow  = 0
	TitleCol  = 0
	DateRow   = 1
	DateCol   = 1
	HeaderRow = 2
	AnchorRow = 3
)

// Template is the statement template document, loaded once per run and
// instantiated fresh for every fund group.
type Template struct {
	rows [][]string
}

// LoadTemplate reads the template document at path. A missing file is a
// *bookstmt.SourceNotFoundError.
func LoadTemplate(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &bookstmt.SourceNotFoundError{Kind: "template", Path: path, Err: err}
		}
		return nil, fmt.Errorf("opening template %q: %w", path, err)
	}
	defer f.Close()
	t, err := DecodeTemplate(f)
	if err != nil {
		return nil, fmt.Errorf("reading template %q: %w", path, err)
	}
	return t, nil
}

// DecodeTemplate decodes a template from CSV data and checks it is tall
// enough to carry the fixed header row.
func DecodeTemplate(r io.Reader) (*Template, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) <= HeaderRow {
		return nil, fmt.Errorf("template too short: %d rows, header expected at row %d", len(rows), HeaderRow+1)
	}
	return &Template{rows: rows}, nil
}

// Headers returns the header row texts that drive the column mapping.
func (t *Template) Headers() []string { return t.rows[HeaderRow] }

// instantiate returns a deep copy of the template rows for one statement.
func (t *Template) instantiate() [][]string {
	rows := make([][]string, len(t.rows))
	for i, row := range t.rows {
		rows[i] = slices.Clone(row)
	}
	return rows
}

// setCell grows the row as needed and sets one cell.
func setCell(rows [][]string, row, col int, value string) {
	for len(rows[row]) <= col {
		rows[row] = append(rows[row], "")
	}
	rows[row][col] = value
}
