package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/refsolve/internal/citation"
	"github.com/matsen/refsolve/internal/crossref"
	"github.com/matsen/refsolve/internal/journal"
	"github.com/matsen/refsolve/internal/logger"
	"github.com/matsen/refsolve/internal/match"
	"github.com/matsen/refsolve/internal/resolve"
	"github.com/matsen/refsolve/internal/storage"
)

var (
	resolveInput    string
	resolveOut      string
	resolveMailto   string
	resolveMinScore int
	resolveRows     int
	resolvePause    time.Duration
	resolveLimit    int
	resolveResume   bool
	resolveStartIdx int
	resolveCache    string
	resolveJournals string
)

func init() {
	// Load .env file if present (for CROSSREF_MAILTO)
	_ = godotenv.Load()

	resolveCmd.Flags().StringVar(&resolveInput, "input", "", "Reference list text file ([n]-marked entries)")
	resolveCmd.Flags().StringVar(&resolveOut, "out", "resolved_refs.csv", "Output CSV path")
	resolveCmd.Flags().StringVar(&resolveMailto, "mailto", "", "Contact email for the catalog User-Agent")
	resolveCmd.Flags().IntVar(&resolveMinScore, "min-score", match.DefaultMinScore, "Minimum score to accept a match")
	resolveCmd.Flags().IntVar(&resolveRows, "rows", crossref.DefaultRows, "Candidates to fetch per citation")
	resolveCmd.Flags().DurationVar(&resolvePause, "pause", crossref.DefaultPause, "Pause between catalog requests")
	resolveCmd.Flags().IntVar(&resolveLimit, "limit", 0, "Process at most N new citations (0 = no limit)")
	resolveCmd.Flags().BoolVar(&resolveResume, "resume", false, "Continue after the highest idx already present in --out")
	resolveCmd.Flags().IntVar(&resolveStartIdx, "start-idx", -1, "Start after this idx, ignoring --resume (0 restarts)")
	resolveCmd.Flags().StringVar(&resolveCache, "cache", "", "SQLite response cache path")
	resolveCmd.Flags().StringVar(&resolveJournals, "journals", "", "YAML overlay for the journal abbreviation table")
	resolveCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve a reference list against the Crossref catalog",
	Long: `Resolve a reference list against the Crossref catalog.

Usage:
  refsolve resolve --input refs.txt --mailto you@example.org
  refsolve resolve --input refs.txt --out resolved_refs.csv --resume
  refsolve resolve --input refs.txt --limit 20 --cache crossref.db

Each citation is queried, scored, and written to the output CSV before
the next one starts, so an interrupted run can continue with --resume.`,
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	log, err := logger.New(humanOutput, verbose)
	if err != nil {
		exitWithError(ExitError, "building logger: %v", err)
	}
	defer log.Sync()

	data, err := os.ReadFile(resolveInput)
	if err != nil {
		exitWithError(ExitInputError, "reading %s: %v", resolveInput, err)
	}
	recs := citation.Parse(string(data))
	if len(recs) > 0 {
		log.Info("parsed references",
			zap.Int("count", len(recs)),
			zap.Int("min_idx", recs[0].Index),
			zap.Int("max_idx", recs[len(recs)-1].Index))
	} else {
		log.Info("parsed references", zap.Int("count", 0))
	}

	journals := journal.NewTable()
	if resolveJournals != "" {
		if err := journals.LoadOverlay(resolveJournals); err != nil {
			exitWithError(ExitInputError, "%v", err)
		}
	}

	after := startAfter(resolveStartIdx, resolveResume, resolveOut)
	log.Info("starting", zap.Int("after_idx", after), zap.String("out", resolveOut))

	opts := []crossref.ClientOption{
		crossref.WithRows(resolveRows),
		crossref.WithPause(resolvePause),
	}
	if resolveMailto != "" {
		opts = append(opts, crossref.WithMailto(resolveMailto))
	}
	if resolveCache != "" {
		cache, err := storage.OpenCache(resolveCache)
		if err != nil {
			exitWithError(ExitInputError, "%v", err)
		}
		defer cache.Close()
		opts = append(opts, crossref.WithCache(cache))
	}

	resolver := resolve.NewResolver(crossref.NewClient(opts...), journals,
		resolve.WithMinScore(resolveMinScore),
		resolve.WithLimit(resolveLimit),
		resolve.WithLogger(log),
	)

	sum, err := resolver.Run(cmd.Context(), recs, resolveOut, after)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Processed %d citations: %d accepted, %d low confidence, %d no match\n",
			sum.Processed, sum.Accepted, sum.LowConfidence, sum.NoMatch)
		outputHuman("Wrote %s\n", resolveOut)
	} else {
		outputJSON(sum)
	}
	return nil
}

// startAfter picks the resume point. An explicit --start-idx always wins;
// --resume scans the existing output for the highest written idx; otherwise
// the run is fresh.
func startAfter(startIdx int, useResume bool, outPath string) int {
	switch {
	case startIdx >= 0:
		return startIdx
	case useResume:
		return resolve.LastIndex(outPath)
	default:
		return 0
	}
}
