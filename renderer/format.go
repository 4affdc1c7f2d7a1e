package renderer

import (
	"strconv"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/ledgerline/bookstmt"
	"github.com/shopspring/decimal"
)

// StatementDateFormat is the fixed format for date-typed cells.
const StatementDateFormat = "02 Jan 2006"

// currencyFields render with thousands separators and 2 decimals.
var currencyFields = map[string]bool{
	bookstmt.FieldNotional:    true,
	bookstmt.FieldSpread:      true,
	bookstmt.FieldPnL:         true,
	bookstmt.FieldPV:          true,
	bookstmt.FieldAdjustedPnL: true,
	bookstmt.FieldCombined:    true,
}

// percentFields render as percentages, with their decimal precision.
// The pay rate carries an extra decimal by market convention.
var percentFields = map[string]int32{
	bookstmt.FieldBid:   2,
	bookstmt.FieldOffer: 2,
	"PAY RATE":          3,
}

// amountFormatter prints a bare thousands-separated amount, no currency
// grapheme: statements are single-currency documents and carry the
// currency as a pass-through column instead.
var amountFormatter = money.NewFormatter(2, ".", ",", "", "1")

func moneyString(v float64) string {
	minor := decimal.NewFromFloat(v).Round(2).Shift(2).IntPart()
	return amountFormatter.Format(minor)
}

func percentString(v float64, precision int32) string {
	return decimal.NewFromFloat(v).StringFixed(precision) + "%"
}

// formatCell renders one looked-up field value according to its column
// class: dates in the fixed statement format, currency-like amounts with
// thousands separators, rate-like fields as percentages. Everything else
// passes through.
func formatCell(field string, v any) string {
	switch val := v.(type) {
	case bookstmt.Date:
		return val.Format(StatementDateFormat)
	case float64:
		if prec, ok := percentFields[field]; ok {
			return percentString(val, prec)
		}
		if currencyFields[field] {
			return moneyString(val)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		if prec, ok := percentFields[field]; ok {
			if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
				return percentString(f, prec)
			}
		}
		return val
	default:
		return ""
	}
}

// dataRow builds one statement row for a merged record: each template
// header is mapped to a record field, looked up, and formatted. Missing
// fields fall back to the configured default value or an empty cell,
// never an error.
func dataRow(rec bookstmt.MergedRecord, headers []string, cfg bookstmt.Config) []string {
	row := make([]string, len(headers))
	for i, header := range headers {
		field := cfg.MapHeader(header)
		v, ok := rec.Lookup(field)
		if !ok {
			if def, found := cfg.DefaultValue(field); found {
				row[i] = def
			}
			continue
		}
		row[i] = formatCell(field, v)
	}
	return row
}
