package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/teiextract/internal/export"
	"github.com/matsen/teiextract/internal/storage"
)

var (
	exportAppend    string
	exportCitations bool
)

func init() {
	exportBibtexCmd.Flags().StringVar(&exportAppend, "append", "", "Append entries not already present to this .bib file")
	exportBibtexCmd.Flags().BoolVar(&exportCitations, "citations-only", false, "Skip the entry for the article itself")
	exportCmd.AddCommand(exportBibtexCmd)
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export articles to other formats",
}

var exportBibtexCmd = &cobra.Command{
	Use:   "bibtex <id|doi|file.xml>",
	Short: "Export an article and its bibliography as BibTeX",
	Long: `Export an article and the works it cites as BibTeX.

The argument is a stored article id or DOI, or a TEI file to parse directly.
With --append, entries already present in the target file (same DOI, or same
key when there is no DOI) are skipped.

Examples:
  tei export bibtex paper.tei.xml
  tei export bibtex 3f2a9c0d41b7e8a6c5d2f1e0 --append refs.bib`,
	Args: cobra.ExactArgs(1),
	RunE: runExportBibtex,
}

// ExportResponse reports the result of an --append export.
type ExportResponse struct {
	Path    string `json:"path"`
	Entries int    `json:"entries"`
	Added   int    `json:"added"`
}

func runExportBibtex(cmd *cobra.Command, args []string) error {
	rec := resolveExportRecord(args[0])

	entries := export.FromArticle(rec.ID, rec.Article)
	if exportCitations {
		entries = entries[1:]
	}

	if exportAppend == "" {
		fmt.Print(export.Format(entries))
		return nil
	}

	added, err := export.AppendNew(exportAppend, entries)
	if err != nil {
		exitWithError(ExitError, "appending to %s: %v", exportAppend, err)
	}
	if humanOutput {
		fmt.Printf("Added %d of %d entries to %s\n", added, len(entries), exportAppend)
		return nil
	}
	return outputJSON(ExportResponse{Path: exportAppend, Entries: len(entries), Added: added})
}

// resolveExportRecord parses arg when it names a file, otherwise looks it up
// in the store.
func resolveExportRecord(arg string) *storage.Record {
	if info, err := os.Stat(arg); err == nil && !info.IsDir() {
		data, err := os.ReadFile(arg)
		if err != nil {
			exitWithError(ExitError, "reading %s: %v", arg, err)
		}
		rec, err := parseRecord(data, arg)
		if err != nil {
			exitWithError(exitCodeFor(err), "%v", err)
		}
		return rec
	}

	db := mustOpenDatabase(mustLoadConfig())
	defer db.Close()
	return mustFindRecord(db, arg)
}
