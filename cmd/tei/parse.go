package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/teiextract/internal/extract"
	"github.com/matsen/teiextract/internal/storage"
)

var (
	parsePlain bool
	parseStore bool
)

func init() {
	parseCmd.Flags().BoolVar(&parsePlain, "plain", false, "With --human, print paragraph text without reference markers")
	parseCmd.Flags().BoolVar(&parseStore, "store", false, "Save the article in the store")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a GROBID TEI XML file",
	Long: `Parse a TEI XML file produced by GROBID and print the article as JSON.

Examples:
  tei parse paper.tei.xml
  tei parse paper.tei.xml --human --plain
  tei parse paper.tei.xml --store`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		exitWithError(ExitError, "reading %s: %v", path, err)
	}

	rec, err := parseRecord(data, path)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}

	if parseStore {
		cfg := mustLoadConfig()
		db := mustOpenDatabase(cfg)
		defer db.Close()
		if err := db.Put(*rec); err != nil {
			exitWithError(ExitError, "storing %s: %v", path, err)
		}
		slog.Info("stored article", "id", rec.ID, "source", path)
	}

	if humanOutput {
		printArticleHuman(rec.Article, parsePlain)
		if parseStore {
			fmt.Printf("\nStored as %s\n", rec.ID)
		}
		return nil
	}
	return outputJSON(rec.Article)
}

// parseRecord parses TEI bytes into a store record keyed by content.
func parseRecord(data []byte, source string) (*storage.Record, error) {
	return extract.New(extract.WithLogger(slog.Default())).TEI(data, source)
}
