package renderer

import (
	"bytes"

	"github.com/ledgerline/bookstmt"
	md "github.com/nao1215/markdown"
)

// BookMarkdown renders the trade book as a markdown table for browsing in
// the terminal. Cells are shown in their on-disk form, unformatted.
func BookMarkdown(b *bookstmt.Book) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Trade Book")
	table := md.TableSet{Header: b.Columns()}
	for i := 0; i < b.Len(); i++ {
		table.Rows = append(table.Rows, b.Row(i))
	}
	doc.Table(table)

	return doc.String()
}
