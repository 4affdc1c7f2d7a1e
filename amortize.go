package bookstmt

// amortizationMonths is the horizon over which raw P&L decays to zero,
// counted from the trade date.
const amortizationMonths = 12.0

// daysPerYear converts calendar-day counts to years. Elapsed time is
// continuous calendar time, not a trading-day count.
const daysPerYear = 365.0

// Amortize computes the derived pricing fields for one merged record as of
// the given date. All arithmetic is plain float64; rounding is a rendering
// concern.
//
// A record without a raw P&L or without a trade date is not computable and
// yields nil. That is the documented policy for incomplete records (for
// example a newly booked trade with no P&L yet), not an error.
//
// The decay multiplier (12 - monthsElapsed) / 12 is clamped to [0, 1]:
// it is 0 once the trade is fully amortized, and a run dated before the
// trade date holds the P&L at its booked value rather than extrapolating
// above it.
func Amortize(rec MergedRecord, asOf Date) *Derived {
	if rec.RawPnL == nil || rec.TradeDate.IsZero() {
		return nil
	}

	yearsElapsed := float64(asOf.DaysSince(rec.TradeDate)) / daysPerYear
	monthsElapsed := yearsElapsed * amortizationMonths
	multiplier := (amortizationMonths - monthsElapsed) / amortizationMonths
	if multiplier < 0 {
		multiplier = 0
	}
	if multiplier > 1 {
		multiplier = 1
	}

	adjusted := *rec.RawPnL * multiplier
	combined := rec.SignedPV + adjusted
	return &Derived{
		AdjustedPnL:   adjusted,
		CombinedValue: combined,
		// Asymmetric split around the combined value: two thirds below,
		// one third above, so offer - bid == spread.
		Bid:   combined - 2.0/3.0*rec.Spread,
		Offer: combined + 1.0/3.0*rec.Spread,
	}
}

// AmortizeTable runs the engine over every row of the merged table,
// populating Derived in place. Rows that cannot be computed keep a nil
// Derived.
func AmortizeTable(t *MergedTable, asOf Date) {
	for i := range t.Records {
		t.Records[i].Derived = Amortize(t.Records[i], asOf)
	}
}
