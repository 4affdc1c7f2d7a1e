package renderer

import (
	"bytes"

	"github.com/ledgerline/bookstmt"
	md "github.com/nao1215/markdown"
)

// StatementMarkdown renders one fund group as a markdown document for
// terminal preview. It carries the same title, as-of stamp and mapped
// columns as the persisted statement, without touching the filesystem.
func StatementMarkdown(g bookstmt.StatementGroup, t *Template, cfg bookstmt.Config) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(StatementTitle(g, cfg))
	doc.PlainText("As of " + g.AsOf.Format(StatementDateFormat))

	headers := t.Headers()
	table := md.TableSet{Header: headers}
	for _, rec := range g.Records {
		table.Rows = append(table.Rows, dataRow(rec, headers, cfg))
	}
	// wrapping would break thousands-separated amounts across lines
	doc.CustomTable(table, md.TableOptions{AutoWrapText: false})

	return doc.String()
}
