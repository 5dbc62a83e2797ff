package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/teiextract/internal/author"
	"github.com/matsen/teiextract/internal/storage"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Query and manage stored articles",
	Long: `Query and manage the SQLite article store.

Articles enter the store through 'tei parse --store', 'tei process --store'
or 'tei batch --store'. The store can be dumped to JSONL and rebuilt from it.

All commands output JSON by default; use --human for readable output.`,
}

var (
	storeListLimit   int
	storeListAuthors []string
)

func init() {
	storeListCmd.Flags().IntVarP(&storeListLimit, "limit", "n", DefaultListLimit, "Maximum number of articles")
	storeListCmd.Flags().StringArrayVarP(&storeListAuthors, "author", "a", nil, "Only articles by this author (repeatable, all must match)")
	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeGetCmd)
	storeCmd.AddCommand(storeDeleteCmd)
	rootCmd.AddCommand(storeCmd)
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored articles in the order they were added",
	Args:  cobra.NoArgs,
	RunE:  runStoreList,
}

func runStoreList(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase(mustLoadConfig())
	defer db.Close()

	queries := author.ParseQueries(storeListAuthors)
	limit := storeListLimit
	if len(queries) > 0 {
		limit = 0
	}
	recs, err := db.List(limit)
	if err != nil {
		exitWithError(ExitError, "listing articles: %v", err)
	}
	recs = author.Filter(recs, queries, storage.Record.Authors, storeListLimit)

	if humanOutput {
		printSummariesHuman(recs)
		return nil
	}
	return outputJSON(storage.Summaries(recs))
}

var storeGetCmd = &cobra.Command{
	Use:   "get <id|doi>",
	Short: "Show a stored article",
	Long: `Show a stored article by id, or by the DOI GROBID extracted for it.

Examples:
  tei store get 3f2a9c0d41b7e8a6c5d2f1e0
  tei store get 10.1093/molbev/msab001 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runStoreGet,
}

func runStoreGet(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase(mustLoadConfig())
	defer db.Close()

	rec := mustFindRecord(db, args[0])
	if humanOutput {
		printArticleHuman(rec.Article, true)
		fmt.Printf("\nID: %s  Source: %s\n", rec.ID, rec.Source)
		return nil
	}
	return outputJSON(rec)
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an article from the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreDelete,
}

func runStoreDelete(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase(mustLoadConfig())
	defer db.Close()

	rec := mustFindRecord(db, args[0])
	if err := db.Delete(rec.ID); err != nil {
		exitWithError(ExitError, "deleting %s: %v", rec.ID, err)
	}

	if humanOutput {
		fmt.Printf("Deleted %s (%s)\n", rec.ID, truncateString(rec.Title(), ListTitleMaxLen))
		return nil
	}
	return outputJSON(StatusResponse{Status: "deleted", Path: rec.ID, Count: 1})
}

// mustFindRecord looks an article up by id, then by DOI. Exits with
// ExitNotFound when neither matches.
func mustFindRecord(db *storage.DB, key string) *storage.Record {
	rec, err := db.Get(key)
	if err != nil {
		exitWithError(ExitError, "looking up %s: %v", key, err)
	}
	if rec == nil {
		rec, err = db.GetByDOI(key)
		if err != nil {
			exitWithError(ExitError, "looking up %s: %v", key, err)
		}
	}
	if rec == nil {
		exitWithError(ExitNotFound, "article %q not found", key)
	}
	return rec
}
