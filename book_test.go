package bookstmt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookCSV = `TRADEIDENTIFIER,TRADE DATE,NOTIONAL,SPREAD,P&L,FUND ID,CCY,PAY RATE
SWP0001,2024-01-01,1000000,30,1200,ALPHA,USD,4.125
SWP0002,2024-03-15,500000,,800,BETA,EUR,3.5
SWP0003,,250000,10,,ALPHA,USD,
`

func TestDecodeBook(t *testing.T) {
	b, err := DecodeBook(strings.NewReader(bookCSV))
	require.NoError(t, err)
	require.Equal(t, 3, b.Len())

	recs := b.Records()

	first := recs[0]
	assert.Equal(t, "SWP0001", first.ID)
	assert.Equal(t, MustParseDate("2024-01-01"), first.TradeDate)
	require.NotNil(t, first.RawPnL)
	assert.Equal(t, 1200.0, *first.RawPnL)
	assert.Equal(t, 30.0, first.Spread)
	assert.Equal(t, "ALPHA", first.Fund)
	// pass-through fields carried unchanged
	assert.Equal(t, "USD", first.Extra["CCY"])
	assert.Equal(t, "4.125", first.Extra["PAY RATE"])

	// absent spread defaults to zero, never null-propagates
	assert.Equal(t, 0.0, recs[1].Spread)

	// absent date and P&L stay null
	third := recs[2]
	assert.True(t, third.TradeDate.IsZero())
	assert.Nil(t, third.RawPnL)
}

func TestDecodeBookBadCells(t *testing.T) {
	_, err := DecodeBook(strings.NewReader("TRADEIDENTIFIER,TRADE DATE\nSWP0001,not-a-date\n"))
	assert.Error(t, err)

	_, err = DecodeBook(strings.NewReader("TRADEIDENTIFIER,P&L\nSWP0001,abc\n"))
	assert.Error(t, err)
}

func TestDecodeBookTrimsID(t *testing.T) {
	// padding is stripped so the identifier matches its feed mark; the
	// identifier itself is never truncated
	b, err := DecodeBook(strings.NewReader("TRADEIDENTIFIER,FUND ID\n\" SWP0001LONG \",ALPHA\n"))
	require.NoError(t, err)
	assert.Equal(t, "SWP0001LONG", b.Records()[0].ID)
}

func TestBookRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tradebook.csv")
	require.NoError(t, os.WriteFile(path, []byte(bookCSV), 0644))

	b, err := LoadBook(path)
	require.NoError(t, err)

	require.NoError(t, SaveBook(path, b))
	again, err := LoadBook(path)
	require.NoError(t, err)

	assert.Equal(t, b.Columns(), again.Columns())
	assert.Equal(t, b.Records(), again.Records())
}

func TestLoadBookMissing(t *testing.T) {
	_, err := LoadBook(filepath.Join(t.TempDir(), "nope.csv"))
	var notFound *SourceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "trade book", notFound.Kind)
}

func TestAppendExtendsColumns(t *testing.T) {
	b := NewBook()
	b.Append(TradeRecord{ID: "SWP0009", Fund: "GAMMA", Extra: map[string]string{"DESK": "NY"}})

	assert.True(t, b.HasColumn("DESK"))
	assert.Equal(t, "NY", b.Row(0)[len(b.Columns())-1])
}

func TestReplace(t *testing.T) {
	b, err := DecodeBook(strings.NewReader(bookCSV))
	require.NoError(t, err)

	rec := b.Records()[1]
	rec.Fund = "DELTA"
	require.NoError(t, b.Replace(1, rec))
	assert.Equal(t, "DELTA", b.Records()[1].Fund)

	assert.Error(t, b.Replace(17, rec))
	assert.Error(t, b.Replace(-1, rec))
}

func TestDecodeBookEmpty(t *testing.T) {
	b, err := DecodeBook(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, b.Len())
	assert.True(t, b.HasColumn(FieldTradeID))
}

func TestSaveBookBadDir(t *testing.T) {
	b := NewBook()
	err := SaveBook(filepath.Join(t.TempDir(), "no", "such", "dir", "book.csv"), b)
	require.Error(t, err)
}
