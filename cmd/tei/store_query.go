package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/teiextract/internal/author"
	"github.com/matsen/teiextract/internal/storage"
)

var (
	storeSearchLimit   int
	storeSearchAuthors []string
)

func init() {
	storeSearchCmd.Flags().IntVarP(&storeSearchLimit, "limit", "n", DefaultListLimit, "Maximum number of results")
	storeSearchCmd.Flags().StringArrayVarP(&storeSearchAuthors, "author", "a", nil, "Only articles by this author (repeatable, all must match)")
	storeCmd.AddCommand(storeSearchCmd)
	storeCmd.AddCommand(storeCitationsCmd)
	storeCmd.AddCommand(storeCitedByCmd)
}

var storeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over titles, abstracts, keywords and authors",
	Long: `Full-text search over stored articles.

Plain words are matched with FTS5 semantics; input with punctuation is
searched as a phrase.

Examples:
  tei store search phylogenetics
  tei store search "bayesian inference" --limit 5 --human
  tei store search phylogeny --author "Felsenstein, J"`,
	Args: cobra.ExactArgs(1),
	RunE: runStoreSearch,
}

func runStoreSearch(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase(mustLoadConfig())
	defer db.Close()

	queries := author.ParseQueries(storeSearchAuthors)
	limit := storeSearchLimit
	if len(queries) > 0 {
		limit = 0
	}
	recs, err := db.Search(args[0], limit)
	if err != nil {
		exitWithError(ExitError, "searching: %v", err)
	}
	recs = author.Filter(recs, queries, storage.Record.Authors, storeSearchLimit)

	if humanOutput {
		printSummariesHuman(recs)
		return nil
	}
	return outputJSON(storage.Summaries(recs))
}

var storeCitationsCmd = &cobra.Command{
	Use:   "citations <id|doi>",
	Short: "List the bibliography of a stored article",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreCitations,
}

func runStoreCitations(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase(mustLoadConfig())
	defer db.Close()

	rec := mustFindRecord(db, args[0])
	rows, err := db.Citations(rec.ID)
	if err != nil {
		exitWithError(ExitError, "listing citations: %v", err)
	}

	if humanOutput {
		printCitationRowsHuman(rows)
		return nil
	}
	if rows == nil {
		rows = []storage.CitationRow{}
	}
	return outputJSON(rows)
}

func printCitationRowsHuman(rows []storage.CitationRow) {
	if len(rows) == 0 {
		fmt.Println("No citations")
		return
	}
	for _, row := range rows {
		year := row.Year
		if year == "" {
			year = "----"
		}
		fmt.Printf("%s %s  %s\n", padRight(row.Key, 6), year, truncateString(row.Title, ListTitleMaxLen))
		if row.DOI != "" {
			fmt.Printf("            doi:%s\n", row.DOI)
		}
	}
}

// CitedByResponse lists the stored articles citing a DOI.
type CitedByResponse struct {
	DOI      string            `json:"doi"`
	Articles []storage.Summary `json:"articles"`
}

var storeCitedByCmd = &cobra.Command{
	Use:   "cited-by <doi>",
	Short: "Find stored articles whose bibliography cites a DOI",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreCitedBy,
}

func runStoreCitedBy(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase(mustLoadConfig())
	defer db.Close()

	ids, err := db.CitedBy(args[0])
	if err != nil {
		exitWithError(ExitError, "finding citing articles: %v", err)
	}

	var recs []storage.Record
	for _, id := range ids {
		rec, err := db.Get(id)
		if err != nil {
			exitWithError(ExitError, "loading %s: %v", id, err)
		}
		if rec != nil {
			recs = append(recs, *rec)
		}
	}

	if humanOutput {
		printSummariesHuman(recs)
		return nil
	}
	return outputJSON(CitedByResponse{DOI: args[0], Articles: storage.Summaries(recs)})
}
