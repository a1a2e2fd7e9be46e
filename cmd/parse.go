package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zaparse/stmtledger/export"
	"github.com/zaparse/stmtledger/extractor"
	"github.com/zaparse/stmtledger/extractor/common"
	"github.com/zaparse/stmtledger/logger"
	"github.com/zaparse/stmtledger/pdftext"
	"github.com/zaparse/stmtledger/stats"
)

var (
	parseBank   string
	parseFormat string
	parseStats  bool
	parsePretty bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>...",
	Short: "Parse statement files into a ledger",
	Long: `Parses one or more statements. PDF files are read page by page; any other
file is treated as extracted text with form feeds between pages.

Examples:
  stmtledger parse statement.pdf
  stmtledger parse --bank fnb --format csv march.pdf
  stmtledger parse --stats jan.pdf feb.pdf mar.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	addParseFlags(parseCmd)
}

func addParseFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&parseBank, "bank", "b", "", "bank format id, skips detection (see 'stmtledger banks')")
	cmd.Flags().StringVarP(&parseFormat, "format", "f", "json", "output format: json or csv")
	cmd.Flags().BoolVarP(&parseStats, "stats", "s", false, "include coverage, activity and revenue statistics")
	cmd.Flags().BoolVar(&parsePretty, "pretty", false, "indent JSON output")
}

type fileOutput struct {
	File         string                `json:"file"`
	AccountInfo  common.AccountInfo    `json:"account_info"`
	Summary      stats.Summary         `json:"summary"`
	Transactions []common.Transaction  `json:"transactions"`
	Coverage     *stats.Coverage       `json:"coverage,omitempty"`
	Activity     *stats.ActivityVolume `json:"activity,omitempty"`
	Revenue      *stats.Revenue        `json:"revenue,omitempty"`
}

type batchOutput struct {
	Files    []fileOutput          `json:"files"`
	Coverage *stats.Coverage       `json:"coverage,omitempty"`
	Activity *stats.ActivityVolume `json:"activity,omitempty"`
	Revenue  *stats.Revenue        `json:"revenue,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	if parseFormat != "json" && parseFormat != "csv" {
		return fmt.Errorf("unknown output format %q, expected json or csv", parseFormat)
	}
	asm, err := newAssembler()
	if err != nil {
		return err
	}
	if parseBank != "" && !slices.Contains(asm.Registry().IDs(), parseBank) {
		return fmt.Errorf("unknown bank %q, expected one of: %s", parseBank, strings.Join(asm.Registry().IDs(), ", "))
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithContext(ctx, log)

	docs := make([]extractor.Document, 0, len(args))
	for _, path := range args {
		log.Debug().Str("file", path).Msg("reading")
		pages, err := pdftext.File(ctx, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		docs = append(docs, extractor.Document{Name: filepath.Base(path), Bank: parseBank, Pages: pages})
	}

	results := asm.AssembleBatch(ctx, docs)

	var (
		parsed  []extractor.Result
		sources []stats.Source
	)
	for _, res := range results {
		if res.Err != nil {
			if len(results) == 1 {
				return fmt.Errorf("%s: %w", res.Name, res.Err)
			}
			log.Error().Err(res.Err).Str("file", res.Name).Msg("skipping statement")
			continue
		}
		parsed = append(parsed, res)
		sources = append(sources, stats.Source{Label: res.Name, Ledger: res.Ledger})
	}
	if len(parsed) == 0 {
		return fmt.Errorf("no statements could be parsed")
	}

	out := cmd.OutOrStdout()
	if parseFormat == "csv" {
		return writeCSV(out, parsed)
	}

	if len(results) == 1 {
		return export.WriteJSON(out, newFileOutput(parsed[0], parseStats), parsePretty)
	}
	batch := batchOutput{}
	for _, res := range parsed {
		batch.Files = append(batch.Files, newFileOutput(res, false))
	}
	if parseStats {
		combined := stats.Combine(sources...)
		coverage, activity, revenue := combined.Coverage(), combined.Activity(), combined.Revenue()
		batch.Coverage, batch.Activity, batch.Revenue = &coverage, &activity, &revenue
	}
	return export.WriteJSON(out, batch, parsePretty)
}

func newFileOutput(res extractor.Result, withStats bool) fileOutput {
	txs := res.Ledger.Transactions
	o := fileOutput{
		File:         res.Name,
		AccountInfo:  res.Ledger.Account,
		Summary:      stats.Summarize(txs),
		Transactions: txs,
	}
	if withStats {
		coverage, activity, revenue := stats.CoverageOf(txs), stats.ActivityOf(txs), stats.RevenueOf(txs)
		o.Coverage, o.Activity, o.Revenue = &coverage, &activity, &revenue
	}
	return o
}

func writeCSV(out io.Writer, parsed []extractor.Result) error {
	w := &export.CSVWriter{IncludeHeader: len(parsed) == 1}
	for _, res := range parsed {
		if len(parsed) > 1 {
			w.Source = res.Name
		}
		if err := w.Write(out, res.Ledger); err != nil {
			return err
		}
	}
	return nil
}
