package bookstmt

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// FeedFileName returns the deterministic name the valuation feed is
// published under for a given as-of date.
func FeedFileName(asOf Date) string {
	return fmt.Sprintf("valuations_%s.csv", asOf.Compact())
}

// LocateFeed resolves the valuation feed for the as-of date. It probes the
// primary directory first; when only the secondary directory has the file,
// it is copied into the primary location so later runs find it there. The
// returned path always points into the primary directory.
//
// When neither location has the feed, the error is a
// *SourceNotFoundError, fatal to the run before any computation.
func LocateFeed(cfg Config, asOf Date) (string, error) {
	name := FeedFileName(asOf)
	primary := filepath.Join(cfg.PrimaryDir, name)
	if _, err := os.Stat(primary); err == nil {
		return primary, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("probing %q: %w", primary, err)
	}

	if cfg.SecondaryDir == "" {
		return "", &SourceNotFoundError{Kind: "valuation feed", Path: primary, Err: fs.ErrNotExist}
	}

	secondary := filepath.Join(cfg.SecondaryDir, name)
	if _, err := os.Stat(secondary); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &SourceNotFoundError{Kind: "valuation feed", Path: secondary, Err: err}
		}
		return "", fmt.Errorf("probing %q: %w", secondary, err)
	}

	if err := copyFile(secondary, primary); err != nil {
		return "", fmt.Errorf("copying feed from %q to %q: %w", secondary, primary, err)
	}
	return primary, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
