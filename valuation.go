package bookstmt

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// ValuationRecord is one row of the daily valuation feed: a raw trade
// identifier (possibly longer than the canonical form) and the present
// value marked by the provider.
type ValuationRecord struct {
	ID string
	PV float64
}

// Feed holds one day's valuation records together with the columns the
// source document carried, so the matcher can check the schema before
// joining.
type Feed struct {
	columns []string
	rows    []ValuationRecord
}

// Rows returns the feed records in source order.
func (f *Feed) Rows() []ValuationRecord { return f.rows }

// HasColumn reports whether the feed document carried that column.
func (f *Feed) HasColumn(name string) bool { return slices.Contains(f.columns, name) }

// LoadFeed reads the valuation feed at path, choosing the decoder from the
// file extension: ".json" for the provider's JSON document, CSV otherwise.
// A missing file is reported as a *SourceNotFoundError.
func LoadFeed(path string) (*Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &SourceNotFoundError{Kind: "valuation feed", Path: path, Err: err}
		}
		return nil, fmt.Errorf("opening valuation feed %q: %w", path, err)
	}
	defer f.Close()

	var feed *Feed
	if strings.EqualFold(filepath.Ext(path), ".json") {
		feed, err = DecodeFeedJSON(f)
	} else {
		feed, err = DecodeFeed(f)
	}
	if err != nil {
		return nil, fmt.Errorf("reading valuation feed %q: %w", path, err)
	}
	return feed, nil
}

// DecodeFeed decodes a CSV valuation feed. The first row is the header.
// Identifiers are kept raw here; canonicalization happens in the matcher.
func DecodeFeed(r io.Reader) (*Feed, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &Feed{}, nil
	}

	feed := &Feed{columns: slices.Clone(rows[0])}
	idCol := slices.Index(feed.columns, FieldTradeID)
	pvCol := slices.Index(feed.columns, FieldPV)
	for n, row := range rows[1:] {
		var rec ValuationRecord
		if idCol >= 0 && idCol < len(row) {
			rec.ID = row[idCol]
		}
		if pvCol >= 0 && pvCol < len(row) {
			cell := strings.TrimSpace(row[pvCol])
			if cell != "" {
				v, err := strconv.ParseFloat(strings.ReplaceAll(cell, ",", ""), 64)
				if err != nil {
					return nil, fmt.Errorf("row %d: column %q: invalid number %q", n+2, FieldPV, cell)
				}
				rec.PV = v
			}
		}
		feed.rows = append(feed.rows, rec)
	}
	return feed, nil
}

// JSONPath expressions for the provider's JSON feed layout:
//
//	{"marks": [{"trade": "SWP0012XYZ", "pv": 512.25}, ...]}
const (
	feedTradesPath = "$.marks[*].trade"
	feedPVsPath    = "$.marks[*].pv"
)

// DecodeFeedJSON decodes the provider's JSON valuation document by
// extracting the trade and pv series with JSONPath. The resulting feed
// reports the same logical columns as the CSV form, so the matcher's
// schema check is format-agnostic.
func DecodeFeedJSON(r io.Reader) (*Feed, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, err
	}

	jtrades, err := jsonpath.Get(feedTradesPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("extracting %q: %w", feedTradesPath, err)
	}
	jpvs, err := jsonpath.Get(feedPVsPath, jobj)
	if err != nil {
		return nil, fmt.Errorf("extracting %q: %w", feedPVsPath, err)
	}

	trades, ok := jtrades.([]any)
	if !ok {
		return nil, fmt.Errorf("%q: not a list", feedTradesPath)
	}
	pvs, ok := jpvs.([]any)
	if !ok {
		return nil, fmt.Errorf("%q: not a list", feedPVsPath)
	}
	if len(trades) != len(pvs) {
		return nil, fmt.Errorf("mismatched feed series: %d trades, %d pvs", len(trades), len(pvs))
	}

	feed := &Feed{columns: []string{FieldTradeID, FieldPV}}
	for i := range trades {
		id, ok := trades[i].(string)
		if !ok {
			return nil, fmt.Errorf("mark %d: trade is not a string: %v", i, trades[i])
		}
		pv, ok := pvs[i].(float64)
		if !ok {
			return nil, fmt.Errorf("mark %d: pv is not a number: %v", i, pvs[i])
		}
		feed.rows = append(feed.rows, ValuationRecord{ID: id, PV: pv})
	}
	return feed, nil
}
