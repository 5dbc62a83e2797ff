package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/matsen/teiextract/internal/server"
	"github.com/matsen/teiextract/internal/storage"
)

// shutdownTimeout bounds how long in-flight requests may run after a signal.
const shutdownTimeout = 10 * time.Second

var (
	serveAddr    string
	serveNoStore bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8071", "Address to listen on")
	serveCmd.Flags().BoolVar(&serveNoStore, "no-store", false, "Serve extraction only, without the article store")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve extraction and the article store over HTTP",
	Long: `Serve a JSON API:

  POST /parse                 TEI XML body (?store=true, ?source=NAME)
  POST /process               PDF body, sent to GROBID (?store=true)
  GET  /articles              ?limit=N&author=NAME
  GET  /articles/ID           stored article
  GET  /articles/ID/citations bibliography rows
  GET  /articles/ID/bibtex    BibTeX export
  GET  /search?q=QUERY        full-text search
  GET  /health

Examples:
  tei serve
  tei serve --addr :8071 --no-store`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	opts := []server.Option{
		server.WithExtractor(newExtractor(cfg)),
		server.WithLogger(slog.Default().With("component", "server")),
	}
	var db *storage.DB
	if !serveNoStore {
		db = mustOpenDatabase(cfg)
		defer db.Close()
		opts = append(opts, server.WithStore(db))
	}
	srv := server.New(opts...)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Listen(serveAddr)
	}()

	select {
	case err := <-errc:
		if err != nil {
			exitWithError(ExitError, "serving on %s: %v", serveAddr, err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		exitWithError(ExitError, "shutdown: %v", err)
	}
	return <-errc
}
