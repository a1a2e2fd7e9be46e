package fnb

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaparse/stmtledger/config"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	f, ok := config.MustDefault().Lookup("fnb")
	require.True(t, ok)
	e, err := New(f)
	require.NoError(t, err)
	e.now = func() time.Time { return time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC) }
	return e
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTransactions_HistoryExport(t *testing.T) {
	pages := []string{
		"FNB Online Banking\n" +
			"Nickname : Business Cheque\n" +
			"Selected Account : 62012345678\n" +
			"Date Description Service Fee Amount Balance\n" +
			"08 Jan 2026 CITIBANK IQVIA1004848 0.00 284.77 CR 1,284.77 CR\n" +
			"09 Jan 2026 DEBIT ORDER INSURE 0.00 CR 1,000.00 DR 284.77 CR\n" +
			"10 Jan 2026 CARD PURCHASE 500.00 DR 215.23 DR\n",
	}
	rows := newTestExtractor(t).Transactions(pages)
	require.Len(t, rows, 3)

	assert.Equal(t, "08/01/2026", rows[0].Date.Format("02/01/2006"))
	assert.Equal(t, "CITIBANK IQVIA1004848 0.00", rows[0].Description)
	assert.True(t, rows[0].Credit.Equal(dec("284.77")))
	assert.True(t, rows[0].Balance.Equal(dec("1284.77")))

	assert.Equal(t, "DEBIT ORDER INSURE", rows[1].Description)
	assert.True(t, rows[1].Debit.Equal(dec("1000")))

	assert.True(t, rows[2].Debit.Equal(dec("500")))
	assert.True(t, rows[2].Balance.Equal(dec("-215.23")))
}

func TestTransactions_StatementUsesPeriodYear(t *testing.T) {
	pages := []string{
		"First National Bank\n" +
			"Statement Period : 01 December 2024 to 31 December 2024\n" +
			"01 Dec Opening 10,000.00\n" +
			"03 Dec ADT Cash Deposit 00072011 800,000 810,000.00\n" +
			"05 Dec Magtape Debit Rent 12,500.00 797,500.00\n" +
			"07 Dec Adjustment 99.00 797,401.00 4.50\n",
		"09 Dec Interest received 1.00 797,402.00\n",
	}
	rows := newTestExtractor(t).Transactions(pages)
	require.Len(t, rows, 4)

	assert.Equal(t, "03/12/2024", rows[0].Date.Format("02/01/2006"))
	assert.Equal(t, "ADT Cash Deposit", rows[0].Description)
	assert.True(t, rows[0].Credit.Equal(dec("800000")))
	assert.True(t, rows[0].Balance.Equal(dec("810000")))

	assert.True(t, rows[1].Debit.Equal(dec("12500")))

	// the trailing accrued charge is read as the balance
	assert.True(t, rows[2].Balance.Equal(dec("4.50")))
	assert.True(t, rows[2].Debit.Equal(dec("797401")))

	assert.Equal(t, "09/12/2024", rows[3].Date.Format("02/01/2006"))
	assert.True(t, rows[3].Credit.Equal(dec("1")))
}

func TestTransactions_NoYearFallsBackToNow(t *testing.T) {
	rows := newTestExtractor(t).Transactions([]string{"15 Mar Salary 1,000.00 1,000.00"})
	require.Len(t, rows, 1)
	assert.Equal(t, 2031, rows[0].Date.Year())
	assert.True(t, rows[0].Credit.Equal(dec("1000")))
}

func TestAccount_SelectedAndNickname(t *testing.T) {
	info := newTestExtractor(t).Account([]string{
		"Nickname : Business Cheque\nSelected Account : 62012345678\n",
	})
	assert.Equal(t, "62012345678", info.AccountNumber)
	assert.Equal(t, "Business Cheque", info.AccountType)
}

func TestAccount_NamedAccountLine(t *testing.T) {
	info := newTestExtractor(t).Account([]string{"Gold Business Account : 63112345678\n"})
	assert.Equal(t, "63112345678", info.AccountNumber)
	assert.Equal(t, "Gold Business Account", info.AccountType)
}
