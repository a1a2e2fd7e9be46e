package nedbank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaparse/stmtledger/config"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	f, ok := config.MustDefault().Lookup("nedbank")
	require.True(t, ok)
	e, err := New(f)
	require.NoError(t, err)
	return e
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTransactions_DebitCreditBalanceColumns(t *testing.T) {
	pages := []string{
		"Nedbank Ltd\n" +
			"Date Transactions Debits Credits Balance\n" +
			"01/02/2024 Salary 0.00 15000.00 15000.00\n" +
			"05/02/2024 Groceries 500.00 0.00 14500.00\n",
	}
	rows := newTestExtractor(t).Transactions(pages)
	require.Len(t, rows, 2)

	assert.Equal(t, "01/02/2024", rows[0].Date.Format("02/01/2006"))
	assert.Equal(t, "Salary", rows[0].Description)
	assert.True(t, rows[0].Debit.IsZero())
	assert.True(t, rows[0].Credit.Equal(dec("15000")))
	assert.True(t, rows[0].Balance.Equal(dec("15000")))

	assert.Equal(t, "05/02/2024", rows[1].Date.Format("02/01/2006"))
	assert.True(t, rows[1].Debit.Equal(dec("500")))
	assert.True(t, rows[1].Credit.IsZero())
	assert.True(t, rows[1].Balance.Equal(dec("14500")))
}

func TestTransactions_DateLocations(t *testing.T) {
	pages := []string{
		"Opening balance 1,000.00\n" +
			"000123 03/03/2024 Service fee 25.00 975.00\n" +
			"04/03/2024 Transfer in 1,025.00 2,000.00\n" +
			"Ref 05/03/2024 Card purchase 100.00 1,900.00\n" +
			"Balance carried forward 1,900.00\n" +
			"06/03/2024 Interest 1,910.50\n",
	}
	rows := newTestExtractor(t).Transactions(pages)
	require.Len(t, rows, 4)

	assert.Equal(t, "Service fee", rows[0].Description)
	assert.True(t, rows[0].Debit.Equal(dec("25")))

	assert.Equal(t, "Transfer in", rows[1].Description)
	assert.True(t, rows[1].Credit.Equal(dec("1025")))

	assert.Equal(t, "05/03/2024", rows[2].Date.Format("02/01/2006"))
	assert.Equal(t, "Card purchase", rows[2].Description)
	assert.True(t, rows[2].Debit.Equal(dec("100")))

	assert.True(t, rows[3].Credit.Equal(dec("10.50")))
	assert.True(t, rows[3].Inferred)
}

func TestTransactions_FirstRowPositiveBalanceIsCredit(t *testing.T) {
	rows := newTestExtractor(t).Transactions([]string{"10/04/2024 Deposit 300.00 300.00"})
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Credit.Equal(dec("300")))
}

func TestAccount_SummaryLine(t *testing.T) {
	pages := []string{"Account summary\nCurrent account 1234567890 R 1 000.00\n"}
	info := newTestExtractor(t).Account(pages)
	assert.Equal(t, "1234567890", info.AccountNumber)
	assert.Equal(t, "Current Account", info.AccountType)
}

func TestAccount_LabelOnPreviousLine(t *testing.T) {
	pages := []string{"Account number\n1198765432\n"}
	info := newTestExtractor(t).Account(pages)
	assert.Equal(t, "1198765432", info.AccountNumber)
	assert.Empty(t, info.AccountType)
}

func TestAccount_BareFallback(t *testing.T) {
	info := newTestExtractor(t).Account([]string{"Client 5550001112 statement"})
	assert.Equal(t, "5550001112", info.AccountNumber)
}
