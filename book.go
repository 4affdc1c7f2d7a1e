package bookstmt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"
)

// Book is the record store for the trade book: a flat CSV table with a
// header row of named columns. The book is read in full and rewritten in
// full on save; there is no incremental diffing. It is owned by a single
// operator within one process, no locking is provided.
type Book struct {
	columns []string // column order as on disk, preserved across a load/save cycle
	records []TradeRecord
}

// bookColumns is the canonical column order for a book created from scratch.
var bookColumns = []string{FieldTradeID, FieldTradeDate, FieldNotional, FieldSpread, FieldPnL, FieldFund}

// coreColumn reports whether a header belongs to the typed schema, as
// opposed to the pass-through Extra fields.
func coreColumn(name string) bool {
	return slices.Contains(bookColumns, name)
}

// NewBook creates an empty trade book with the canonical columns.
func NewBook() *Book {
	return &Book{columns: slices.Clone(bookColumns)}
}

// LoadBook reads the trade book from path. A missing file is reported as a
// *SourceNotFoundError.
func LoadBook(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceNotFoundError{Kind: "trade book", Path: path, Err: err}
		}
		return nil, fmt.Errorf("opening trade book %q: %w", path, err)
	}
	defer f.Close()
	b, err := DecodeBook(f)
	if err != nil {
		return nil, fmt.Errorf("reading trade book %q: %w", path, err)
	}
	return b, nil
}

// DecodeBook decodes a trade book from CSV data. The first row is the
// header; headers outside the typed schema become pass-through Extra
// fields. An empty trade date or P&L cell is a valid absent value, a
// malformed one is an error.
func DecodeBook(r io.Reader) (*Book, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // rows may be shorter than the header
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return NewBook(), nil
	}

	b := &Book{columns: slices.Clone(rows[0])}
	for n, row := range rows[1:] {
		rec, err := decodeRecord(b.columns, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", n+2, err)
		}
		b.records = append(b.records, rec)
	}
	return b, nil
}

func decodeRecord(columns, row []string) (TradeRecord, error) {
	rec := TradeRecord{}
	for i, col := range columns {
		var cell string
		if i < len(row) {
			cell = row[i]
		}
		switch col {
		case FieldTradeID:
			// trimmed but never truncated; the canonical length cut
			// applies to feed identifiers only
			rec.ID = strings.TrimSpace(cell)
		case FieldTradeDate:
			if cell == "" {
				continue
			}
			d, err := ParseDate(cell)
			if err != nil {
				return rec, fmt.Errorf("column %q: %w", col, err)
			}
			rec.TradeDate = d
		case FieldNotional:
			v, err := parseFloat(cell)
			if err != nil {
				return rec, fmt.Errorf("column %q: invalid number %q", col, cell)
			}
			rec.Notional = v
		case FieldSpread:
			v, err := parseFloat(cell)
			if err != nil {
				return rec, fmt.Errorf("column %q: invalid number %q", col, cell)
			}
			if v != nil {
				rec.Spread = *v
			}
		case FieldPnL:
			v, err := parseFloat(cell)
			if err != nil {
				return rec, fmt.Errorf("column %q: invalid number %q", col, cell)
			}
			rec.RawPnL = v
		case FieldFund:
			rec.Fund = cell
		default:
			if cell != "" {
				if rec.Extra == nil {
					rec.Extra = make(map[string]string)
				}
				rec.Extra[col] = cell
			}
		}
	}
	return rec, nil
}

// SaveBook rewrites the whole trade book to path.
func SaveBook(path string, b *Book) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing trade book %q: %w", path, err)
	}
	defer f.Close()
	if err := EncodeBook(f, b); err != nil {
		return fmt.Errorf("writing trade book %q: %w", path, err)
	}
	return nil
}

// EncodeBook encodes the book as CSV, preserving the column order it was
// loaded with.
func EncodeBook(w io.Writer, b *Book) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(b.columns); err != nil {
		return err
	}
	for _, rec := range b.records {
		if err := cw.Write(encodeRecord(b.columns, rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func encodeRecord(columns []string, rec TradeRecord) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		switch col {
		case FieldTradeID:
			row[i] = rec.ID
		case FieldTradeDate:
			if !rec.TradeDate.IsZero() {
				row[i] = rec.TradeDate.String()
			}
		case FieldNotional:
			if rec.Notional != nil {
				row[i] = formatFloat(*rec.Notional)
			}
		case FieldSpread:
			if rec.Spread != 0 {
				row[i] = formatFloat(rec.Spread)
			}
		case FieldPnL:
			if rec.RawPnL != nil {
				row[i] = formatFloat(*rec.RawPnL)
			}
		case FieldFund:
			row[i] = rec.Fund
		default:
			row[i] = rec.Extra[col]
		}
	}
	return row
}

// Append adds a record at the end of the book. Extra fields with no column
// yet extend the header, so they survive the next save.
func (b *Book) Append(rec TradeRecord) {
	for field := range rec.Extra {
		if !slices.Contains(b.columns, field) {
			b.columns = append(b.columns, field)
		}
	}
	b.records = append(b.records, rec)
}

// Replace substitutes the record at index i.
func (b *Book) Replace(i int, rec TradeRecord) error {
	if i < 0 || i >= len(b.records) {
		return fmt.Errorf("no trade book row at index %d (book has %d rows)", i, len(b.records))
	}
	b.records[i] = rec
	return nil
}

// Records returns the book rows in order. The slice is shared: callers
// that mutate records must go through Replace to keep ownership explicit.
func (b *Book) Records() []TradeRecord { return b.records }

// Len returns the number of rows in the book.
func (b *Book) Len() int { return len(b.records) }

// Row returns the record at index i in its on-disk cell form, following
// the book's column order.
func (b *Book) Row(i int) []string { return encodeRecord(b.columns, b.records[i]) }

// Columns returns the header of the book, in on-disk order.
func (b *Book) Columns() []string { return b.columns }

// HasColumn reports whether the book carries a column with that header.
func (b *Book) HasColumn(name string) bool { return slices.Contains(b.columns, name) }
