package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/matsen/teiextract/internal/storage"
)

var (
	batchWorkers int
	batchStore   bool
	batchPDF     bool
)

func init() {
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Parallel workers (default from config)")
	batchCmd.Flags().BoolVar(&batchStore, "store", false, "Save parsed articles in the store")
	batchCmd.Flags().BoolVar(&batchPDF, "pdf", false, "Also send *.pdf files to GROBID")
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch DIR",
	Short: "Parse every TEI file under a directory",
	Long: `Parse every *.xml file under DIR in parallel and report one JSON line
per file. With --pdf, PDF files are sent to GROBID first; the configured
rate limit is shared by all workers.

Examples:
  tei batch corpus/
  tei batch corpus/ --workers 8 --store
  tei batch papers/ --pdf --store --human`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

// BatchResult is the per-file status line of the batch command.
type BatchResult struct {
	Path      string `json:"path"`
	Status    string `json:"status"` // ok, error
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	Citations int    `json:"citations,omitempty"`
	Error     string `json:"error,omitempty"`
}

// batchItem is the outcome of one file.
type batchItem struct {
	path string
	rec  *storage.Record
	err  error
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	workers := cfg.Workers
	if batchWorkers > 0 {
		workers = batchWorkers
	}

	paths, err := collectInputs(args[0], batchPDF)
	if err != nil {
		exitWithError(ExitError, "scanning %s: %v", args[0], err)
	}
	slog.Debug("batch start", "dir", args[0], "files", len(paths), "workers", workers)

	ex := newExtractor(cfg)
	handle := func(ctx context.Context, path string) (*storage.Record, error) {
		if isPDF(path) {
			res, err := processPDF(ctx, ex, path, "")
			if err != nil {
				return nil, err
			}
			return res.Record, nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ex.TEI(data, path)
	}

	items := processAll(cmd.Context(), paths, workers, handle)

	var db *storage.DB
	if batchStore {
		db = mustOpenDatabase(cfg)
	}
	results := storeResults(items, db)
	// Close before any os.Exit below, which would skip a deferred Close.
	if db != nil {
		if err := db.Close(); err != nil {
			exitWithError(ExitError, "closing database: %v", err)
		}
	}

	failed := 0
	for _, res := range results {
		if res.Status != "ok" {
			failed++
		}
		if humanOutput {
			if res.Status == "ok" {
				fmt.Printf("ok     %s  %s\n", res.Path, truncateString(res.Title, ListTitleMaxLen))
			} else {
				fmt.Printf("error  %s  %s\n", res.Path, res.Error)
			}
		} else {
			outputJSONCompact(res)
		}
	}

	if humanOutput {
		fmt.Printf("\n%d files, %d failed\n", len(results), failed)
	}
	if failed > 0 {
		os.Exit(ExitDataError)
	}
	return nil
}

// storeResults saves the successful items when db is non-nil and returns
// one status per item. A failed save turns the item into an error.
func storeResults(items []batchItem, db *storage.DB) []BatchResult {
	results := make([]BatchResult, 0, len(items))
	for _, item := range items {
		if item.err == nil && db != nil {
			item.err = db.Put(*item.rec)
		}
		results = append(results, batchResult(item))
	}
	return results
}

func batchResult(item batchItem) BatchResult {
	if item.err != nil {
		return BatchResult{Path: item.path, Status: "error", Error: item.err.Error()}
	}
	return BatchResult{
		Path:      item.path,
		Status:    "ok",
		ID:        item.rec.ID,
		Title:     item.rec.Title(),
		Citations: len(item.rec.Article.Citations),
	}
}

// processAll runs handle over paths with bounded concurrency. Results keep
// the order of paths.
func processAll(ctx context.Context, paths []string, workers int, handle func(context.Context, string) (*storage.Record, error)) []batchItem {
	if workers < 1 {
		workers = 1
	}

	items := make([]batchItem, len(paths))
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i, path := range paths {
		wg.Add(1)
		go func(idx int, p string) {
			defer wg.Done()
			sem <- struct{}{}        // acquire semaphore
			defer func() { <-sem }() // release semaphore

			if err := ctx.Err(); err != nil {
				items[idx] = batchItem{path: p, err: err}
				return
			}
			rec, err := handle(ctx, p)
			items[idx] = batchItem{path: p, rec: rec, err: err}
		}(i, path)
	}

	wg.Wait()
	return items
}

// collectInputs lists the TEI files (and PDFs if asked) under dir, sorted.
func collectInputs(dir string, includePDF bool) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isTEI(path) || (includePDF && isPDF(path)) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func isTEI(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
