// Package config handles the tei command configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents configuration stored in ~/.config/tei/config.yml.
type Config struct {
	GrobidURL string        `yaml:"grobid_url,omitempty"`
	Timeout   time.Duration `yaml:"timeout,omitempty"`
	RateLimit float64       `yaml:"rate_limit,omitempty"` // Requests per second, 0 = default

	// GROBID form options; unset leaves GROBID's defaults.
	ConsolidateHeader      *int     `yaml:"consolidate_header,omitempty"`
	ConsolidateCitations   *int     `yaml:"consolidate_citations,omitempty"`
	IncludeRawCitations    *bool    `yaml:"include_raw_citations,omitempty"`
	IncludeRawAffiliations *bool    `yaml:"include_raw_affiliations,omitempty"`
	SegmentSentences       *bool    `yaml:"segment_sentences,omitempty"`
	TEICoordinates         []string `yaml:"tei_coordinates,omitempty"`

	Database string `yaml:"database,omitempty"` // SQLite store path
	Workers  int    `yaml:"workers,omitempty"`  // Batch parallelism
}

const (
	// DefaultGrobidURL is where a local GROBID container listens.
	DefaultGrobidURL = "http://localhost:8070"
	// DefaultTimeout is the GROBID request timeout.
	DefaultTimeout = 15 * time.Second
	// DefaultRateLimit is GROBID requests per second.
	DefaultRateLimit = 2.0
	// DefaultWorkers is the batch parallelism.
	DefaultWorkers = 4
	// DBFile is the default store file name under the data directory.
	DBFile = "articles.db"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		GrobidURL: DefaultGrobidURL,
		Timeout:   DefaultTimeout,
		RateLimit: DefaultRateLimit,
		Database:  DefaultDatabasePath(),
		Workers:   DefaultWorkers,
	}
}

// DefaultDatabasePath returns the store location.
// Respects XDG_DATA_HOME, defaults to ~/.local/share/tei/articles.db.
func DefaultDatabasePath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DBFile
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, ConfigDir, DBFile)
}

// merge overlays the set fields of o onto c.
func (c *Config) merge(o *Config) {
	if o.GrobidURL != "" {
		c.GrobidURL = o.GrobidURL
	}
	if o.Timeout != 0 {
		c.Timeout = o.Timeout
	}
	if o.RateLimit != 0 {
		c.RateLimit = o.RateLimit
	}
	if o.ConsolidateHeader != nil {
		c.ConsolidateHeader = o.ConsolidateHeader
	}
	if o.ConsolidateCitations != nil {
		c.ConsolidateCitations = o.ConsolidateCitations
	}
	if o.IncludeRawCitations != nil {
		c.IncludeRawCitations = o.IncludeRawCitations
	}
	if o.IncludeRawAffiliations != nil {
		c.IncludeRawAffiliations = o.IncludeRawAffiliations
	}
	if o.SegmentSentences != nil {
		c.SegmentSentences = o.SegmentSentences
	}
	if o.TEICoordinates != nil {
		c.TEICoordinates = o.TEICoordinates
	}
	if o.Database != "" {
		c.Database = ExpandPath(o.Database)
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.GrobidURL == "" {
		return fmt.Errorf("grobid_url must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %v", c.Timeout)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("invalid rate_limit: %v", c.RateLimit)
	}
	if err := validateConsolidation("consolidate_header", c.ConsolidateHeader); err != nil {
		return err
	}
	if err := validateConsolidation("consolidate_citations", c.ConsolidateCitations); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers: %d (must be at least 1)", c.Workers)
	}
	return nil
}

func validateConsolidation(name string, level *int) error {
	if level == nil {
		return nil
	}
	if *level < 0 || *level > 2 {
		return fmt.Errorf("invalid %s: %d (valid: 0, 1, 2)", name, *level)
	}
	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
