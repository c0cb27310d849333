package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/matsen/refsolve/internal/citation"
)

var (
	parseInput string
	parseXLSX  string
)

func init() {
	parseCmd.Flags().StringVar(&parseInput, "input", "", "Reference list text file ([n]-marked entries)")
	parseCmd.Flags().StringVar(&parseXLSX, "xlsx", "", "Also write the records to an Excel workbook")
	parseCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a reference list offline and show the extracted fields",
	Long: `Parse a reference list offline and show the extracted fields.

Usage:
  refsolve parse --input refs.txt
  refsolve parse --input refs.txt --human
  refsolve parse --input refs.txt --xlsx review.xlsx

No network queries are made. Use this to review ambiguous parses before
spending catalog requests on them.`,
	RunE: runParse,
}

// ParseResult is the JSON payload of the parse command.
type ParseResult struct {
	Count   int               `json:"count"`
	Records []citation.Record `json:"records"`
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(parseInput)
	if err != nil {
		exitWithError(ExitInputError, "reading %s: %v", parseInput, err)
	}
	recs := citation.Parse(string(data))

	if parseXLSX != "" {
		if err := writeReviewWorkbook(parseXLSX, recs); err != nil {
			exitWithError(ExitError, "%v", err)
		}
	}

	if humanOutput {
		for _, r := range recs {
			outputHuman("[%d] %s\n", r.Index, r.RawText)
			outputHuman("    authors=%s journal=%q year=%s volume=%s page=%s\n",
				strings.Join(r.Authors, ";"), r.Journal, r.Year, r.Volume, r.PageOrArticle)
		}
		outputHuman("%d records\n", len(recs))
	} else {
		outputJSON(ParseResult{Count: len(recs), Records: recs})
	}
	return nil
}

// reviewHeader names the workbook columns after the resolver's CSV columns
// where the two overlap, so a workbook can be eyeballed next to a
// resolution CSV.
var reviewHeader = []interface{}{"idx", "raw_ref", "authors", "journal", "year", "volume", "page_or_article"}

// writeReviewWorkbook writes one row per parsed record to an xlsx file.
func writeReviewWorkbook(path string, recs []citation.Record) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	if err := f.SetSheetRow(sheet, "A1", &reviewHeader); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for i, rec := range recs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		row := []interface{}{
			rec.Index, rec.RawText, strings.Join(rec.Authors, "; "),
			rec.Journal, rec.Year, rec.Volume, rec.PageOrArticle,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
