package bookstmt

import (
	"strconv"
	"strings"
)

// IDLength is the length of a canonical trade identifier. Externally
// supplied identifiers may carry suffix data beyond it; the canonical form
// is the first IDLength characters.
const IDLength = 7

// Well-known field names. They double as the column headers of the trade
// book and valuation feed files, and as the field side of the renderer's
// header-mapping table.
const (
	FieldTradeID     = "TRADEIDENTIFIER"
	FieldTradeDate   = "TRADE DATE"
	FieldNotional    = "NOTIONAL"
	FieldSpread      = "SPREAD"
	FieldPnL         = "P&L"
	FieldFund        = "FUND ID"
	FieldPV          = "PV"
	FieldAdjustedPnL = "ADJUSTED P&L"
	FieldCombined    = "COMBINED VALUE"
	FieldBid         = "BID"
	FieldOffer       = "OFFER"
)

// CanonicalID normalizes an externally supplied trade identifier to its
// canonical form: surrounding whitespace removed and truncated to the first
// IDLength characters. Matching is exact, case-sensitive string equality on
// this form.
func CanonicalID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > IDLength {
		return id[:IDLength]
	}
	return id
}

// TradeRecord is one row of the trade book.
//
// Nullable semantics matter downstream: a record missing RawPnL or
// TradeDate is excluded from amortization (all derived fields stay null),
// while a missing Spread simply defaults to zero. Extra carries arbitrary
// pass-through fields (counterparty terms, rates, currencies) unchanged.
type TradeRecord struct {
	ID        string
	TradeDate Date     // zero value when the book row has no date
	Notional  *float64 // nil when absent
	Spread    float64  // defaults to 0, never null-propagates
	RawPnL    *float64 // nil when absent
	Fund      string
	Extra     map[string]string
}

// Float is a small helper to build a *float64 from a constant.
func Float(v float64) *float64 { return &v }

// Derived holds the four fields computed by the amortization engine.
// The fields are always populated together: a record that cannot be
// computed carries a nil *Derived, never a partially filled one.
type Derived struct {
	AdjustedPnL   float64
	CombinedValue float64
	Bid           float64
	Offer         float64
}

// MergedRecord is a TradeRecord augmented with the signed present value
// from the valuation feed and, once the amortization engine has run, the
// derived pricing fields. Merged records are transient: they live for one
// pipeline run and are never persisted, only the rendered statements are.
type MergedRecord struct {
	TradeRecord
	SignedPV float64 // feed PV negated; 0 when the feed had no row
	Derived  *Derived
}

// Lookup returns the value of a named field, typed: Date for the trade
// date, float64 for amounts, string for everything else. Unknown names
// fall through to the Extra map. The second return is false when the field
// is absent from this record.
func (m MergedRecord) Lookup(field string) (any, bool) {
	switch field {
	case FieldTradeID:
		return m.ID, m.ID != ""
	case FieldTradeDate:
		return m.TradeDate, !m.TradeDate.IsZero()
	case FieldNotional:
		if m.Notional == nil {
			return nil, false
		}
		return *m.Notional, true
	case FieldSpread:
		return m.Spread, true
	case FieldPnL:
		if m.RawPnL == nil {
			return nil, false
		}
		return *m.RawPnL, true
	case FieldFund:
		return m.Fund, m.Fund != ""
	case FieldPV:
		return m.SignedPV, true
	case FieldAdjustedPnL:
		if m.Derived == nil {
			return nil, false
		}
		return m.Derived.AdjustedPnL, true
	case FieldCombined:
		if m.Derived == nil {
			return nil, false
		}
		return m.Derived.CombinedValue, true
	case FieldBid:
		if m.Derived == nil {
			return nil, false
		}
		return m.Derived.Bid, true
	case FieldOffer:
		if m.Derived == nil {
			return nil, false
		}
		return m.Derived.Offer, true
	}
	v, ok := m.Extra[field]
	return v, ok
}

// parseFloat reads an optional numeric cell. Empty means absent.
func parseFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// formatFloat writes a numeric cell back in its plain form. Rounding is a
// rendering concern, the book keeps full precision.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
