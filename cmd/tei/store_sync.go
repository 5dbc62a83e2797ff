package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matsen/teiextract/internal/storage"
)

func init() {
	storeCmd.AddCommand(storeExportCmd)
	storeCmd.AddCommand(storeImportCmd)
}

var storeExportCmd = &cobra.Command{
	Use:   "export <file.jsonl>",
	Short: "Dump every stored article to a JSONL file",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreExport,
}

func runStoreExport(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase(mustLoadConfig())
	defer db.Close()

	// List with a non-positive limit returns everything.
	recs, err := db.List(0)
	if err != nil {
		exitWithError(ExitError, "listing articles: %v", err)
	}
	if err := storage.WriteJSONL(args[0], recs); err != nil {
		exitWithError(ExitError, "writing %s: %v", args[0], err)
	}

	if humanOutput {
		fmt.Printf("Exported %d articles to %s\n", len(recs), args[0])
		return nil
	}
	return outputJSON(StatusResponse{Status: "exported", Path: args[0], Count: len(recs)})
}

var storeImportCmd = &cobra.Command{
	Use:   "import <file.jsonl>",
	Short: "Replace the store with the articles of a JSONL file",
	Long:  `Clear the store and rebuild it from a JSONL file written by 'tei store export'.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreImport,
}

func runStoreImport(cmd *cobra.Command, args []string) error {
	db := mustOpenDatabase(mustLoadConfig())
	defer db.Close()

	n, err := db.RebuildFromJSONL(args[0])
	if err != nil {
		exitWithError(ExitDataError, "importing %s: %v", args[0], err)
	}

	if humanOutput {
		fmt.Printf("Imported %d articles from %s\n", n, args[0])
		return nil
	}
	return outputJSON(StatusResponse{Status: "imported", Path: args[0], Count: n})
}
