package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	grobidCmd.AddCommand(grobidStatusCmd)
	rootCmd.AddCommand(grobidCmd)
}

var grobidCmd = &cobra.Command{
	Use:   "grobid",
	Short: "Inspect the configured GROBID server",
}

// GrobidStatusResponse is the result of a liveness check.
type GrobidStatusResponse struct {
	URL   string `json:"url"`
	Alive bool   `json:"alive"`
	Error string `json:"error,omitempty"`
}

var grobidStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the GROBID server answers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := newGrobidClient(mustLoadConfig())

		resp := GrobidStatusResponse{URL: client.BaseURL()}
		alive, err := client.IsAlive(cmd.Context())
		resp.Alive = alive
		if err != nil {
			resp.Error = err.Error()
		}

		if humanOutput {
			if alive {
				fmt.Printf("GROBID at %s is alive\n", resp.URL)
			} else if resp.Error != "" {
				fmt.Printf("GROBID at %s is unreachable: %s\n", resp.URL, resp.Error)
			} else {
				fmt.Printf("GROBID at %s is not ready\n", resp.URL)
			}
		} else {
			outputJSON(resp)
		}
		if !alive {
			os.Exit(ExitGrobidError)
		}
		return nil
	},
}
