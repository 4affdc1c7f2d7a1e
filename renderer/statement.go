package renderer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/ledgerline/bookstmt"
	"github.com/rs/zerolog"
)

// StatementFileName returns the artifact name for one fund group:
// fund id plus the compact as-of date, so each fund gets a distinct,
// non-colliding document per run.
func StatementFileName(g bookstmt.StatementGroup) string {
	return fmt.Sprintf("%s_%s.csv", g.Fund, g.AsOf.Compact())
}

// StatementTitle formats the stamped title cell.
func StatementTitle(g bookstmt.StatementGroup, cfg bookstmt.Config) string {
	return fmt.Sprintf("%s - %s %s", cfg.FeedLabel, g.Fund, cfg.ProductLabel)
}

// BuildStatement instantiates a fresh copy of the template for one fund
// group, stamps the title and as-of cells, and inserts one data row per
// merged record at the anchor row. The template's static rows end up
// below the data, untouched.
func BuildStatement(g bookstmt.StatementGroup, t *Template, cfg bookstmt.Config) [][]string {
	rows := t.instantiate()
	setCell(rows, TitleRow, TitleCol, StatementTitle(g, cfg))
	setCell(rows, DateRow, DateCol, g.AsOf.Format(StatementDateFormat))

	headers := t.Headers()
	data := make([][]string, 0, len(g.Records))
	for _, rec := range g.Records {
		data = append(data, dataRow(rec, headers, cfg))
	}
	return slices.Insert(rows, AnchorRow, data...)
}

// WriteStatements writes one statement document per fund group into the
// configured output directory. A failure on one fund is reported as a
// *bookstmt.RenderWriteError and the batch continues with the next fund,
// so the run can end with a partial statement set; all per-fund failures
// are joined into the returned error.
func WriteStatements(groups []bookstmt.StatementGroup, t *Template, cfg bookstmt.Config, log zerolog.Logger) error {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %q: %w", cfg.OutputDir, err)
	}

	var errs []error
	for _, g := range groups {
		path := filepath.Join(cfg.OutputDir, StatementFileName(g))
		if err := writeStatement(g, t, cfg, path); err != nil {
			werr := &bookstmt.RenderWriteError{Fund: g.Fund, Path: path, Err: err}
			log.Error().Err(err).Str("fund", g.Fund).Str("path", path).Msg("statement write failed")
			errs = append(errs, werr)
			continue
		}
		log.Info().Str("fund", g.Fund).Int("trades", len(g.Records)).Str("path", path).Msg("statement written")
	}
	return errors.Join(errs...)
}

func writeStatement(g bookstmt.StatementGroup, t *Template, cfg bookstmt.Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(f)
	if err := cw.WriteAll(BuildStatement(g, t, cfg)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
