package bookstmt

import "slices"

// MergedTable is the transient result of joining the valuation feed onto
// the trade book. It lives for one pipeline run; only rendered statements
// persist.
type MergedTable struct {
	Records []MergedRecord
	columns []string
}

// HasColumn reports whether the merged table carries that column.
func (t *MergedTable) HasColumn(name string) bool { return slices.Contains(t.columns, name) }

// Columns returns the merged table's columns: the book's, then the
// valuation and derived ones.
func (t *MergedTable) Columns() []string { return t.columns }

// derivedColumns are appended to the book's columns by the join and the
// amortization engine.
var derivedColumns = []string{FieldPV, FieldAdjustedPnL, FieldCombined, FieldBid, FieldOffer}

// Merge performs a left join of the valuation feed onto the trade book by
// canonical trade identifier. Every book row is retained whether or not a
// feed row matches.
//
// Pipeline-wide invariant: a missing PV is filled with zero before the
// sign flip, so absence of a valuation update means no mark, never an
// error, and never blocks amortization. The fill-then-negate order makes
// SignedPV == -feedPV hold for matched rows and SignedPV == 0 for
// unmatched ones.
//
// Feed identifiers are truncated to the canonical form before comparison;
// book identifiers never are. A book row with an empty identifier is not
// matchable and joins as unmatched.
func Merge(book *Book, feed *Feed) (*MergedTable, error) {
	if !book.HasColumn(FieldTradeID) {
		return nil, &SchemaError{Source: "trade book", Column: FieldTradeID}
	}
	if !feed.HasColumn(FieldTradeID) {
		return nil, &SchemaError{Source: "valuation feed", Column: FieldTradeID}
	}

	marks := make(map[string]float64, len(feed.Rows()))
	for _, v := range feed.Rows() {
		id := CanonicalID(v.ID)
		if id == "" {
			continue
		}
		marks[id] = v.PV // one row per trade per day; last wins if the feed repeats
	}

	table := &MergedTable{
		Records: make([]MergedRecord, 0, book.Len()),
		columns: append(slices.Clone(book.Columns()), derivedColumns...),
	}
	for _, rec := range book.Records() {
		var pv float64 // zero fill for unmatched rows
		if rec.ID != "" {
			pv = marks[rec.ID]
		}
		table.Records = append(table.Records, MergedRecord{
			TradeRecord: rec,
			SignedPV:    -pv, // the book's sign convention is opposite the feed's
		})
	}
	return table, nil
}
