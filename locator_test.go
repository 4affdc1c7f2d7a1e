package bookstmt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedFileName(t *testing.T) {
	assert.Equal(t, "valuations_20240701.csv", FeedFileName(MustParseDate("2024-07-01")))
}

func TestLocateFeedPrimary(t *testing.T) {
	cfg := Config{PrimaryDir: t.TempDir(), SecondaryDir: t.TempDir()}
	asOf := MustParseDate("2024-07-01")

	want := filepath.Join(cfg.PrimaryDir, FeedFileName(asOf))
	require.NoError(t, os.WriteFile(want, []byte("TRADEIDENTIFIER,PV\n"), 0644))

	got, err := LocateFeed(cfg, asOf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLocateFeedCopiesFromSecondary(t *testing.T) {
	cfg := Config{PrimaryDir: t.TempDir(), SecondaryDir: t.TempDir()}
	asOf := MustParseDate("2024-07-01")

	content := []byte("TRADEIDENTIFIER,PV\nSWP0001,500\n")
	require.NoError(t, os.WriteFile(filepath.Join(cfg.SecondaryDir, FeedFileName(asOf)), content, 0644))

	got, err := LocateFeed(cfg, asOf)
	require.NoError(t, err)

	// the feed is copied into the primary location and resolved from there
	assert.Equal(t, filepath.Join(cfg.PrimaryDir, FeedFileName(asOf)), got)
	copied, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, content, copied)
}

func TestLocateFeedNotFound(t *testing.T) {
	cfg := Config{PrimaryDir: t.TempDir(), SecondaryDir: t.TempDir()}

	_, err := LocateFeed(cfg, MustParseDate("2024-07-01"))
	var notFound *SourceNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "valuation feed", notFound.Kind)
}

func TestLocateFeedNoSecondary(t *testing.T) {
	cfg := Config{PrimaryDir: t.TempDir()}

	_, err := LocateFeed(cfg, MustParseDate("2024-07-01"))
	var notFound *SourceNotFoundError
	require.ErrorAs(t, err, &notFound)
}
