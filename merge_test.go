package bookstmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBook(t *testing.T, csv string) *Book {
	t.Helper()
	b, err := DecodeBook(strings.NewReader(csv))
	require.NoError(t, err)
	return b
}

func mustFeed(t *testing.T, csv string) *Feed {
	t.Helper()
	f, err := DecodeFeed(strings.NewReader(csv))
	require.NoError(t, err)
	return f
}

func TestMergeLeftJoin(t *testing.T) {
	book := mustBook(t, bookCSV)
	feed := mustFeed(t, "TRADEIDENTIFIER,PV\nSWP0001XYZ,500\nSWP0099,42\n")

	table, err := Merge(book, feed)
	require.NoError(t, err)

	// every book row is retained regardless of match
	require.Len(t, table.Records, 3)

	// matched: feed id truncated to canonical form, PV sign flipped
	assert.Equal(t, -500.0, table.Records[0].SignedPV)

	// unmatched rows get the zero fill, then the flip: still zero
	assert.Equal(t, 0.0, table.Records[1].SignedPV)
	assert.Equal(t, 0.0, table.Records[2].SignedPV)
}

func TestMergeCaseSensitive(t *testing.T) {
	book := mustBook(t, "TRADEIDENTIFIER,FUND ID\nSWP0001,ALPHA\n")
	feed := mustFeed(t, "TRADEIDENTIFIER,PV\nswp0001,500\n")

	table, err := Merge(book, feed)
	require.NoError(t, err)
	// matching is case-sensitive string equality: no match
	assert.Equal(t, 0.0, table.Records[0].SignedPV)
}

func TestMergeBookIDNeverTruncated(t *testing.T) {
	// a book identifier longer than the canonical form does not match a
	// feed row whose truncation would collide with its prefix
	book := mustBook(t, "TRADEIDENTIFIER,FUND ID\nSWP0001LONG,ALPHA\n")
	feed := mustFeed(t, "TRADEIDENTIFIER,PV\nSWP0001,500\n")

	table, err := Merge(book, feed)
	require.NoError(t, err)
	assert.Equal(t, 0.0, table.Records[0].SignedPV)
}

func TestMergePaddedBookID(t *testing.T) {
	// surrounding whitespace in the book cell is trimmed at decode, so the
	// identifier still matches its feed mark
	book := mustBook(t, "TRADEIDENTIFIER,FUND ID\n\" SWP0001 \",ALPHA\n")
	feed := mustFeed(t, "TRADEIDENTIFIER,PV\nSWP0001XYZ,500\n")

	table, err := Merge(book, feed)
	require.NoError(t, err)
	assert.Equal(t, "SWP0001", table.Records[0].ID)
	assert.Equal(t, -500.0, table.Records[0].SignedPV)
}

func TestMergeSchemaErrors(t *testing.T) {
	good := mustBook(t, bookCSV)
	goodFeed := mustFeed(t, "TRADEIDENTIFIER,PV\n")

	_, err := Merge(mustBook(t, "FUND ID\nALPHA\n"), goodFeed)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "trade book", schemaErr.Source)
	assert.Equal(t, FieldTradeID, schemaErr.Column)

	_, err = Merge(good, mustFeed(t, "PV\n500\n"))
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "valuation feed", schemaErr.Source)
}

func TestMergeColumns(t *testing.T) {
	table, err := Merge(mustBook(t, bookCSV), mustFeed(t, "TRADEIDENTIFIER,PV\n"))
	require.NoError(t, err)

	for _, col := range []string{FieldFund, FieldPV, FieldAdjustedPnL, FieldCombined, FieldBid, FieldOffer, "CCY"} {
		assert.True(t, table.HasColumn(col), "missing column %q", col)
	}
}

func TestMergeEmptyBookID(t *testing.T) {
	book := mustBook(t, "TRADEIDENTIFIER,FUND ID\n,ALPHA\n")
	feed := mustFeed(t, "TRADEIDENTIFIER,PV\n,500\n")

	table, err := Merge(book, feed)
	require.NoError(t, err)
	// an empty identifier is not matchable, even against an empty feed id
	assert.Equal(t, 0.0, table.Records[0].SignedPV)
}
