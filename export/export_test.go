package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaparse/stmtledger/extractor/common"
)

func getTestLedger() common.Ledger {
	return common.Ledger{
		Account: common.AccountInfo{BankID: "absa", Bank: "ABSA", AccountNumber: "40-1234-5678"},
		Transactions: []common.Transaction{
			common.NewTransaction(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "Salary, February",
				decimal.Zero, decimal.NewFromInt(15000), decimal.NewFromInt(15000)),
			common.NewTransaction(time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC), "Groceries",
				decimal.NewFromInt(500), decimal.Zero, decimal.NewFromInt(14500)),
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	require.NoError(t, w.Write(&buf, getTestLedger()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Description,Debit,Credit,Balance", lines[0])
	assert.Equal(t, `01/02/2024,"Salary, February",0.00,15000.00,15000.00`, lines[1])
	assert.Equal(t, "05/02/2024,Groceries,500.00,0.00,14500.00", lines[2])
}

func TestCSVWriter_HeaderAndSource(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeHeader: true, Source: "feb.pdf"}
	require.NoError(t, w.Write(&buf, getTestLedger()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "# Bank,ABSA", lines[0])
	assert.Equal(t, "# Account Number,40-1234-5678", lines[1])
	assert.Equal(t, "Source,Date,Description,Debit,Credit,Balance", lines[2])
	assert.True(t, strings.HasPrefix(lines[4], "feb.pdf,05/02/2024"))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, getTestLedger(), false))
	assert.Contains(t, buf.String(), `"Date":"01/02/2024"`)
	assert.Contains(t, buf.String(), `"account_type":null`)
}

func TestCSVWriter_AppendsWithoutRepeatingColumns(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{Source: "jan.pdf"}
	require.NoError(t, w.Write(&buf, getTestLedger()))
	w.Source = "feb.pdf"
	require.NoError(t, w.Write(&buf, getTestLedger()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Source,Date,Description,Debit,Credit,Balance", lines[0])
	assert.True(t, strings.HasPrefix(lines[3], "feb.pdf,01/02/2024"))
}
