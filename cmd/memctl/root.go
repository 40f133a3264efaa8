// memctl exercises the heapkit collectors with synthetic workloads and
// reports what they do: allocation statistics, object dumps, and cycle
// collection behavior. It is a diagnostic harness for the library, not part
// of the embedder-facing surface.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "memctl",
	Short: "Exercise and inspect the heapkit memory managers",
	Long: `memctl runs synthetic workloads against the heapkit tracing collector
and reference counter and reports allocator statistics, object dumps, and
cycle collection results.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// logger returns the slog logger the workloads hand to the collectors.
func logger() *slog.Logger {
	if verbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
