package bookstmt

import (
	"slices"
	"strings"
)

// StatementGroup is the subset of merged records sharing one fund
// identifier, together with the as-of date of the run. Groups are computed
// once per run and consumed immediately by the renderer.
type StatementGroup struct {
	Fund    string
	AsOf    Date
	Records []MergedRecord
}

// GroupByFund partitions the merged table by fund identifier, one group
// per distinct value, sorted by fund for deterministic output.
//
// It fails with *MissingGroupingColumnError when the merged table has no
// fund column at all: statement generation is all-or-nothing. Rows with an
// empty fund identifier are excluded from every group; their count is
// returned so the caller can report them instead of losing them silently.
func GroupByFund(t *MergedTable, asOf Date) (groups []StatementGroup, dropped int, err error) {
	if !t.HasColumn(FieldFund) {
		return nil, 0, &MissingGroupingColumnError{Column: FieldFund}
	}

	byFund := make(map[string]*StatementGroup)
	for _, rec := range t.Records {
		fund := strings.TrimSpace(rec.Fund)
		if fund == "" {
			dropped++
			continue
		}
		g, ok := byFund[fund]
		if !ok {
			g = &StatementGroup{Fund: fund, AsOf: asOf}
			byFund[fund] = g
		}
		g.Records = append(g.Records, rec)
	}

	for _, g := range byFund {
		groups = append(groups, *g)
	}
	slices.SortFunc(groups, func(a, b StatementGroup) int {
		return strings.Compare(a.Fund, b.Fund)
	})
	return groups, dropped, nil
}
