package bookstmt

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Config carries everything a pipeline run needs to know about its
// environment: file locations, the renderer's header mapping, and default
// field values. It is built once by LoadConfig and passed explicitly into
// each component; there is no process-wide configuration singleton.
type Config struct {
	BookPath     string // the trade book CSV
	TemplatePath string // the statement template document
	PrimaryDir   string // where valuation feeds are expected
	SecondaryDir string // fallback location feeds are copied from
	OutputDir    string // where per-fund statements are written

	FeedLabel    string // first part of the statement title
	ProductLabel string // last part of the statement title

	// HeaderMapping maps a template header text to the merged-record field
	// it is populated from. Headers absent from the mapping are looked up
	// verbatim against the record. Keys are matched case-insensitively
	// (viper folds configuration keys to lower case).
	HeaderMapping map[string]string

	// DefaultFieldValues supplies a cell value for fields a record does
	// not carry. Fields absent here render as an empty cell. Keys are
	// matched case-insensitively.
	DefaultFieldValues map[string]string
}

// DefaultHeaderMapping is the mapping used when the configuration file
// does not override it. The template's human headers on the left, record
// fields on the right.
var DefaultHeaderMapping = map[string]string{
	"Trade Ref":     FieldTradeID,
	"Trade Date":    FieldTradeDate,
	"Notional":      FieldNotional,
	"Valuation":     FieldPV,
	"Amortised P&L": FieldAdjustedPnL,
	"Total Value":   FieldCombined,
	"Bid":           FieldBid,
	"Offer":         FieldOffer,
}

// MapHeader resolves a template header to a record field, falling back to
// the header text itself when unmapped.
func (c Config) MapHeader(header string) string {
	if field, ok := foldLookup(c.HeaderMapping, header); ok {
		return field
	}
	return header
}

// DefaultValue returns the configured default cell value for a field.
func (c Config) DefaultValue(field string) (string, bool) {
	return foldLookup(c.DefaultFieldValues, field)
}

func foldLookup(m map[string]string, key string) (string, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	v, ok := m[strings.ToLower(key)]
	return v, ok
}

// LoadConfig reads the YAML configuration at path. A missing file yields
// the defaults; a malformed one is an error. Environment variables
// (prefix STMT_, e.g. STMT_OUTPUT_DIR) override file values.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("book", "tradebook.csv")
	v.SetDefault("template", "template.csv")
	v.SetDefault("primary_dir", "feeds")
	v.SetDefault("secondary_dir", "")
	v.SetDefault("output_dir", "statements")
	v.SetDefault("feed_label", "Daily Valuation")
	v.SetDefault("product_label", "Statement")

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("stmt")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Running purely on defaults is fine; a present but broken file is not.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("reading config %q: %w", path, err)
		}
	}

	cfg := Config{
		BookPath:           v.GetString("book"),
		TemplatePath:       v.GetString("template"),
		PrimaryDir:         v.GetString("primary_dir"),
		SecondaryDir:       v.GetString("secondary_dir"),
		OutputDir:          v.GetString("output_dir"),
		FeedLabel:          v.GetString("feed_label"),
		ProductLabel:       v.GetString("product_label"),
		HeaderMapping:      v.GetStringMapString("header_mapping"),
		DefaultFieldValues: v.GetStringMapString("defaults"),
	}
	if len(cfg.HeaderMapping) == 0 {
		cfg.HeaderMapping = DefaultHeaderMapping
	}
	return cfg, nil
}
