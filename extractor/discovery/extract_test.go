package discovery

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaparse/stmtledger/config"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	f, ok := config.MustDefault().Lookup("discovery_bank")
	require.True(t, ok)
	e, err := New(f)
	require.NoError(t, err)
	return e
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTransactions_HistoryLayout(t *testing.T) {
	pages := []string{
		"Discovery Gold Transaction Account 12345678901\n" +
			"Date Description Card no Debit Credit Balance\n" +
			"Opening balance R 1 000.00\n" +
			"2024-02-01 ***1234 Card purchase - R 120.00 R 0.00 R 880.00\n" +
			"2024-02-03 EFT Salary R 0.00 R 5 000.00 R 5 880.00\n" +
			"2024-02-04 Fee Monthly account fee - R 10.00 R 5 870.00\n" +
			"2024-02-05 Overdraft - R 0.00 R 0.00 - R 30.00\n",
	}
	rows := newTestExtractor(t).Transactions(pages)
	require.Len(t, rows, 4)

	// negative debit column is not a debit
	assert.Equal(t, "Card purchase", rows[0].Description)
	assert.True(t, rows[0].Debit.IsZero())
	assert.True(t, rows[0].Credit.IsZero())
	assert.True(t, rows[0].Balance.Equal(dec("880")))

	assert.Equal(t, "Salary", rows[1].Description)
	assert.True(t, rows[1].Credit.Equal(dec("5000")))

	assert.Equal(t, "Monthly account fee", rows[2].Description)
	assert.True(t, rows[2].Debit.Equal(dec("10")))
	assert.True(t, rows[2].Balance.Equal(dec("5870")))

	assert.True(t, rows[3].Balance.Equal(dec("-30")))
}

func TestTransactions_StatementLayoutDerivesBalance(t *testing.T) {
	pages := []string{
		"1 Mar 2024 Debit order Insurance -R250.00\n" +
			"03 Mar 2024 Refund R100.00\n" +
			"04 Mar 2024 ***9876\tR5.00\n",
	}
	rows := newTestExtractor(t).Transactions(pages)
	require.Len(t, rows, 3)

	assert.Equal(t, "01/03/2024", rows[0].Date.Format("02/01/2006"))
	assert.Equal(t, "Insurance", rows[0].Description)
	assert.True(t, rows[0].Debit.Equal(dec("250")))
	assert.True(t, rows[0].Balance.Equal(dec("-250")))

	assert.True(t, rows[1].Credit.Equal(dec("100")))
	assert.True(t, rows[1].Balance.Equal(dec("-150")))

	assert.Equal(t, "Transaction", rows[2].Description)
	assert.True(t, rows[2].Balance.Equal(dec("-145")))
}

func TestAccount(t *testing.T) {
	info := newTestExtractor(t).Account([]string{"Statement\nDiscovery Gold Transaction Account 12345678901\n"})
	assert.Equal(t, "12345678901", info.AccountNumber)
	assert.Equal(t, "Discovery Gold Transaction Account", info.AccountType)
	assert.Equal(t, "discovery_bank", info.BankID)
}
