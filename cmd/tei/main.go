// Package main provides the tei CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matsen/teiextract/internal/config"
	"github.com/matsen/teiextract/internal/extract"
	"github.com/matsen/teiextract/internal/grobid"
	"github.com/matsen/teiextract/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// verbose enables debug logging regardless of LOG_LEVEL
	verbose bool
	// databasePath overrides the configured store location
	databasePath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tei",
	Short: "Extract structured articles from GROBID TEI XML",
	Long: `tei turns GROBID TEI XML into a structured article: bibliographic
header, abstract, sections with inline references, tables, keywords and the
cited bibliography.

Core features:
  - Parse TEI files produced by GROBID
  - Send PDFs to a GROBID server and parse the result
  - Store articles in SQLite with full-text search
  - Export bibliographies as BibTeX

All commands output JSON by default for agent integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger(verbose)
	},
}

func init() {
	// Load .env file if present (for GROBID_URL and friends)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "", "Article store path (default from config)")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// mustOpenDatabase opens the SQLite store, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenDatabase(cfg *config.Config) *storage.DB {
	path := cfg.Database
	if databasePath != "" {
		path = config.ExpandPath(databasePath)
	}
	db, err := storage.OpenDB(path)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	return db
}

// newGrobidClient builds a client from the effective configuration.
func newGrobidClient(cfg *config.Config) *grobid.Client {
	return grobid.NewClient(
		grobid.WithBaseURL(cfg.GrobidURL),
		grobid.WithTimeout(cfg.Timeout),
		grobid.WithRateLimit(cfg.RateLimit),
		grobid.WithLogger(slog.Default().With("component", "grobid")),
	)
}

// newExtractor builds an extractor that sends PDFs to the configured GROBID.
func newExtractor(cfg *config.Config) *extract.Extractor {
	return extract.New(
		extract.WithGrobid(newGrobidClient(cfg), func(f grobid.File) grobid.Form {
			return newGrobidForm(cfg, f)
		}),
		extract.WithLogger(slog.Default()),
	)
}

// newGrobidForm builds the form options from configuration.
func newGrobidForm(cfg *config.Config, file grobid.File) grobid.Form {
	return grobid.Form{
		File:                   file,
		SegmentSentences:       cfg.SegmentSentences,
		ConsolidateHeader:      cfg.ConsolidateHeader,
		ConsolidateCitations:   cfg.ConsolidateCitations,
		IncludeRawCitations:    cfg.IncludeRawCitations,
		IncludeRawAffiliations: cfg.IncludeRawAffiliations,
		TEICoordinates:         cfg.TEICoordinates,
	}
}
