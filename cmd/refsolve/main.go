// Package main provides the refsolve CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// verbose lowers the log level to debug
var verbose bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "refsolve",
	Short: "Resolve numbered reference lists to DOIs",
	Long: `refsolve turns the numbered reference list of a paper into DOIs.

It parses [n]-marked citation text, queries the Crossref works API for
each entry, scores the candidates against the extracted fields, and
writes one decision row per citation to a resumable CSV. Companion
subcommands review parses offline, join accepted DOIs onto data tables,
reshape tables for ORKG import, and pull reference text out of PDFs.

All commands output JSON by default; use --human for readable output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")
	rootCmd.Version = Version
}
