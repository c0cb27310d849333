package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/refsolve/internal/pdftext"
)

var (
	extractPDF      string
	extractOut      string
	extractMaxPages int
	extractRefsOnly bool
)

func init() {
	extractCmd.Flags().StringVar(&extractPDF, "pdf", "", "PDF to extract text from")
	extractCmd.Flags().StringVar(&extractOut, "out", "", "Output text file (default: stdout)")
	extractCmd.Flags().IntVar(&extractMaxPages, "max-pages", 0, "Pages to read (0 = all)")
	extractCmd.Flags().BoolVar(&extractRefsOnly, "references-only", false, "Keep only the text from the last References/Bibliography heading on")
	extractCmd.MarkFlagRequired("pdf")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract plain text from a PDF",
	Long: `Extract plain text from a PDF.

Usage:
  refsolve extract --pdf paper.pdf --references-only --out refs.txt
  refsolve extract --pdf paper.pdf --max-pages 5

With --references-only the output starts at the last References or
Bibliography heading, which is usually the list the resolver wants.`,
	RunE: runExtract,
}

// ExtractResult is the JSON payload of the extract command when writing to a file.
type ExtractResult struct {
	Out   string `json:"out"`
	Bytes int    `json:"bytes"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	text, err := pdftext.Extract(extractPDF, extractMaxPages)
	if err != nil {
		exitWithError(ExitInputError, "%v", err)
	}

	if extractRefsOnly {
		section, found := pdftext.ReferencesSection(text)
		if !found {
			fmt.Fprintln(os.Stderr, "warning: no references heading found, writing full text")
		}
		text = section
	}

	if extractOut == "" {
		fmt.Print(text)
		return nil
	}

	if err := os.WriteFile(extractOut, []byte(text), 0o644); err != nil {
		exitWithError(ExitError, "writing %s: %v", extractOut, err)
	}

	if humanOutput {
		outputHuman("Wrote %d bytes to %s\n", len(text), extractOut)
	} else {
		outputJSON(ExtractResult{Out: extractOut, Bytes: len(text)})
	}
	return nil
}
