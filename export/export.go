// Package export renders ledgers for the command line.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/zaparse/stmtledger/extractor/common"
)

// CSVWriter writes ledger rows as CSV with the columns
// Date, Description, Debit, Credit, Balance. Calling Write again appends
// rows without repeating the column header.
type CSVWriter struct {
	// IncludeHeader prefixes the rows with commented account metadata.
	IncludeHeader bool
	// Source, when set, adds a leading column naming the input file.
	Source string

	wroteColumns bool
}

func (w *CSVWriter) Write(out io.Writer, ledger common.Ledger) error {
	writer := csv.NewWriter(out)

	if w.IncludeHeader {
		meta := [][]string{
			{"# Bank", ledger.Account.Bank},
			{"# Account Number", ledger.Account.AccountNumber},
			{"# Account Type", ledger.Account.AccountType},
		}
		for _, row := range meta {
			if row[1] == "" {
				continue
			}
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV metadata: %w", err)
			}
		}
	}

	if !w.wroteColumns {
		header := []string{"Date", "Description", "Debit", "Credit", "Balance"}
		if w.Source != "" {
			header = append([]string{"Source"}, header...)
		}
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("failed to write CSV header: %w", err)
		}
		w.wroteColumns = true
	}

	for _, tx := range ledger.Transactions {
		row := []string{
			tx.Date.Format(common.DateLayout),
			tx.Description,
			tx.Debit.StringFixed(2),
			tx.Credit.StringFixed(2),
			tx.Balance.StringFixed(2),
		}
		if w.Source != "" {
			row = append([]string{w.Source}, row...)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON encodes v, indented when pretty is set.
func WriteJSON(out io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(out)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
