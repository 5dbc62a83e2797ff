package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/teiextract/internal/article"
	"github.com/matsen/teiextract/internal/extract"
	"github.com/matsen/teiextract/internal/pdf"
)

var (
	processStore  bool
	processTEIOut string
)

func init() {
	processCmd.Flags().BoolVar(&processStore, "store", false, "Save the article in the store")
	processCmd.Flags().StringVar(&processTEIOut, "tei-out", "", "Also write GROBID's TEI XML to this file")
	rootCmd.AddCommand(processCmd)
}

var processCmd = &cobra.Command{
	Use:   "process FILE.pdf",
	Short: "Send a PDF to GROBID and parse the result",
	Long: `Send a PDF to GROBID's processFulltextDocument endpoint and parse the
returned TEI XML. The server comes from grobid_url in the config file or
GROBID_URL.

Examples:
  tei process paper.pdf
  tei process paper.pdf --store --tei-out paper.tei.xml
  GROBID_URL=http://grobid:8070 tei process paper.pdf --human`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

// ProcessResponse is the JSON output of the process command.
type ProcessResponse struct {
	ID      string           `json:"id"`
	PDF     *pdf.Info        `json:"pdf"`
	Stored  bool             `json:"stored"`
	Article *article.Article `json:"article"`
}

func runProcess(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	path := args[0]

	res, err := processPDF(cmd.Context(), newExtractor(cfg), path, processTEIOut)
	if err != nil {
		exitWithError(exitCodeFor(err), "%v", err)
	}
	rec, info := res.Record, res.PDF

	if processStore {
		db := mustOpenDatabase(cfg)
		defer db.Close()
		if err := db.Put(*rec); err != nil {
			exitWithError(ExitError, "storing %s: %v", path, err)
		}
	}

	if humanOutput {
		fmt.Printf("%s: %d pages", path, info.Pages)
		if info.DOI != "" {
			fmt.Printf(", DOI %s", info.DOI)
		}
		fmt.Println()
		printArticleHuman(rec.Article, false)
		if processStore {
			fmt.Printf("\nStored as %s\n", rec.ID)
		}
		return nil
	}
	return outputJSON(ProcessResponse{ID: rec.ID, PDF: info, Stored: processStore, Article: rec.Article})
}

// processPDF reads a PDF and extracts it through GROBID. A non-empty teiOut
// receives the raw TEI.
func processPDF(ctx context.Context, ex *extract.Extractor, path, teiOut string) (*extract.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	res, err := ex.PDF(ctx, data, path)
	if err != nil {
		return nil, err
	}

	if teiOut != "" {
		if err := os.WriteFile(teiOut, res.TEI, 0644); err != nil {
			return nil, fmt.Errorf("writing TEI: %w", err)
		}
	}
	return res, nil
}
