package main

import (
	"github.com/spf13/cobra"

	"github.com/matsen/refsolve/internal/csvtable"
	"github.com/matsen/refsolve/internal/expand"
)

var (
	expandData     string
	expandResolved string
	expandOut      string
	expandRefsCol  string
	expandDOICol   string
)

func init() {
	expandCmd.Flags().StringVar(&expandData, "data", "", "Data-table CSV whose rows cite references by number")
	expandCmd.Flags().StringVar(&expandResolved, "resolved", "", "Resolution CSV with idx, best_doi, decision columns")
	expandCmd.Flags().StringVar(&expandOut, "out", "", "Output CSV path")
	expandCmd.Flags().StringVar(&expandRefsCol, "refs-col", "Refs.", "Name of the references column in --data")
	expandCmd.Flags().StringVar(&expandDOICol, "doi-col", "", "DOI column to fill (default: existing doi or doi_list, else a new doi column)")
	expandCmd.MarkFlagRequired("data")
	expandCmd.MarkFlagRequired("resolved")
	expandCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(expandCmd)
}

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Attach accepted DOIs to data rows that cite references by number",
	Long: `Attach accepted DOIs to data rows that cite references by number.

Usage:
  refsolve expand --data table.csv --resolved resolved_refs.csv --out out.csv
  refsolve expand --data table.csv --resolved resolved_refs.csv --out out.csv --refs-col "Refs."

A row citing several accepted references becomes one output row per
reference; rows that already carry a DOI pass through unchanged.`,
	RunE: runExpand,
}

// ExpandResult is the JSON payload of the expand command.
type ExpandResult struct {
	expand.Stats
	Rows int    `json:"rows"`
	Out  string `json:"out"`
}

func runExpand(cmd *cobra.Command, args []string) error {
	mapping, err := expand.LoadMapping(expandResolved)
	if err != nil {
		exitWithError(ExitInputError, "%v", err)
	}

	table, err := csvtable.Load(expandData)
	if err != nil {
		exitWithError(ExitInputError, "%v", err)
	}

	out, stats, err := expand.Expand(table, mapping, expandRefsCol, expandDOICol)
	if err != nil {
		exitWithError(ExitInputError, "%v", err)
	}

	if err := out.WriteCSV(expandOut); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		outputHuman("Kept %d, expanded %d, dropped %d\n", stats.Kept, stats.Expanded, stats.Dropped)
		outputHuman("Wrote %d rows to %s\n", len(out.Rows), expandOut)
	} else {
		outputJSON(ExpandResult{Stats: stats, Rows: len(out.Rows), Out: expandOut})
	}
	return nil
}
