package african_bank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaparse/stmtledger/config"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	f, ok := config.MustDefault().Lookup("african_bank")
	require.True(t, ok)
	e, err := New(f)
	require.NoError(t, err)
	return e
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func getTestPages() []string {
	return []string{
		"African Bank\n" +
			"Account Number 20008855885\n" +
			"Account Type Savings Pocket\n" +
			"TRANSACTION DATE TRANSACTION DETAILS BANK CHARGES AMOUNT BALANCE\n" +
			"Opening Balance 0.00\n" +
			"2025/04/01 Deposit 1,000.00 1,000.00\n" +
			"2025/04/02 Withdrawal -2.50 -200.00 797.50\n" +
			"2025/04/03 Credit Interest 800.26\n",
	}
}

func TestTransactions(t *testing.T) {
	rows := newTestExtractor(t).Transactions(getTestPages())
	require.Len(t, rows, 3)

	assert.Equal(t, "01/04/2025", rows[0].Date.Format("02/01/2006"))
	assert.Equal(t, "Deposit", rows[0].Description)
	assert.True(t, rows[0].Credit.Equal(dec("1000")))

	assert.Equal(t, "Withdrawal", rows[1].Description)
	assert.True(t, rows[1].Debit.Equal(dec("200")))
	assert.True(t, rows[1].Credit.IsZero())
	assert.True(t, rows[1].Balance.Equal(dec("797.50")))

	assert.Equal(t, "Credit Interest", rows[2].Description)
	assert.True(t, rows[2].Credit.Equal(dec("2.76")))
	assert.True(t, rows[2].Inferred)
}

func TestTransactions_FirstRowBalanceOnly(t *testing.T) {
	rows := newTestExtractor(t).Transactions([]string{"2025/05/01 Credit Interest 35.41"})
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Debit.IsZero())
	assert.True(t, rows[0].Credit.IsZero())
}

func TestAccount(t *testing.T) {
	info := newTestExtractor(t).Account(getTestPages())
	assert.Equal(t, "African Bank", info.Bank)
	assert.Equal(t, "20008855885", info.AccountNumber)
	assert.Equal(t, "Savings Pocket", info.AccountType)
}
