// Package bookstmt reconciles a trade book against a daily valuation feed,
// computes amortized profit and loss with derived bid/offer pricing, and
// prepares per-fund statement groups for rendering.
//
// The package is local-first and file-based: the trade book is a flat CSV
// table, the valuation feed is a CSV or JSON document resolved per as-of
// date, and statements are written as one document per fund from a tabular
// template.
//
// The core functionalities include:
//   - RecordStore: loading, saving, appending and replacing trade-book rows.
//   - ValuationMatcher: a left join of the valuation feed onto the book by
//     canonical trade identifier, preserving every book row.
//   - AmortizationEngine: straight-line decay of raw P&L over a 12-month
//     horizon, plus combined value and the asymmetric bid/offer split.
//   - Statement grouping: partitioning computed rows by fund identifier for
//     the renderer package.
package bookstmt
