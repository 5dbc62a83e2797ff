package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/teiextract/internal/config"
)

func init() {
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration: defaults, then the config file, then
environment overrides (GROBID_URL, GROBID_TIMEOUT, TEI_DATABASE).

Usage:
  tei config          # Show all config
  tei config path     # Print the config file location

Config file (~/.config/tei/config.yml):
  grobid_url: http://localhost:8070
  timeout: 1m
  rate_limit: 2
  consolidate_citations: 1
  tei_coordinates: [ref, biblStruct]
  database: ~/.local/share/tei/articles.db
  workers: 4`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	if humanOutput {
		data, err := cfg.Marshal()
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		os.Stdout.Write(data)
		return nil
	}
	return outputJSON(configResponse(cfg))
}

// ConfigResponse is the JSON form of the effective configuration.
type ConfigResponse struct {
	GrobidURL              string   `json:"grobid_url"`
	Timeout                string   `json:"timeout"`
	RateLimit              float64  `json:"rate_limit"`
	ConsolidateHeader      *int     `json:"consolidate_header,omitempty"`
	ConsolidateCitations   *int     `json:"consolidate_citations,omitempty"`
	IncludeRawCitations    *bool    `json:"include_raw_citations,omitempty"`
	IncludeRawAffiliations *bool    `json:"include_raw_affiliations,omitempty"`
	SegmentSentences       *bool    `json:"segment_sentences,omitempty"`
	TEICoordinates         []string `json:"tei_coordinates,omitempty"`
	Database               string   `json:"database"`
	Workers                int      `json:"workers"`
}

func configResponse(cfg *config.Config) ConfigResponse {
	return ConfigResponse{
		GrobidURL:              cfg.GrobidURL,
		Timeout:                cfg.Timeout.String(),
		RateLimit:              cfg.RateLimit,
		ConsolidateHeader:      cfg.ConsolidateHeader,
		ConsolidateCitations:   cfg.ConsolidateCitations,
		IncludeRawCitations:    cfg.IncludeRawCitations,
		IncludeRawAffiliations: cfg.IncludeRawAffiliations,
		SegmentSentences:       cfg.SegmentSentences,
		TEICoordinates:         cfg.TEICoordinates,
		Database:               cfg.Database,
		Workers:                cfg.Workers,
	}
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Path()
		_, err := os.Stat(path)
		exists := err == nil

		if humanOutput {
			if exists {
				fmt.Println(path)
			} else {
				fmt.Printf("%s (not found, using defaults)\n", path)
			}
			return nil
		}
		status := "found"
		if !exists {
			status = "missing"
		}
		return outputJSON(StatusResponse{Status: status, Path: path})
	},
}
