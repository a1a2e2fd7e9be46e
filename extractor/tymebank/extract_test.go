package tymebank

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaparse/stmtledger/config"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	f, ok := config.MustDefault().Lookup("tymebank")
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
		"TymeBank\n" +
			"EveryDay account 51012345678\n" +
			"Date Description Fees Money Out Money In Balance\n" +
			"Opening Balance 1 000.00\n" +
			"01 Mar 2024 - Salary 0.00 5 000.00 6 000.00\n",
		"03 Mar 2024 - Card purchase Checkers 250.50 5 749.50\n" +
			"05 Mar 2024 Interest 5 750.25\n",
	}
}

func TestTransactions(t *testing.T) {
	rows := newTestExtractor(t).Transactions(getTestPages())
	require.Len(t, rows, 3)

	assert.Equal(t, "01/03/2024", rows[0].Date.Format("02/01/2006"))
	assert.Equal(t, "Salary", rows[0].Description)
	assert.True(t, rows[0].Credit.Equal(dec("5000")))
	assert.True(t, rows[0].Balance.Equal(dec("6000")))
	assert.False(t, rows[0].Inferred)

	assert.Equal(t, "Card purchase Checkers", rows[1].Description)
	assert.True(t, rows[1].Debit.Equal(dec("250.50")))
	assert.True(t, rows[1].Inferred)

	assert.Equal(t, "Interest", rows[2].Description)
	assert.True(t, rows[2].Credit.Equal(dec("0.75")))
}

func TestTransactions_SingleAmountFirstRow(t *testing.T) {
	rows := newTestExtractor(t).Transactions([]string{"02 Apr 2024 Transfer 300.00"})
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Debit.IsZero())
	assert.True(t, rows[0].Credit.IsZero())
	assert.True(t, rows[0].Balance.Equal(dec("300")))
}

func TestAccount_EveryDay(t *testing.T) {
	info := newTestExtractor(t).Account(getTestPages())
	assert.Equal(t, "tymebank", info.BankID)
	assert.Equal(t, "51012345678", info.AccountNumber)
	assert.Equal(t, "EveryDay Account", info.AccountType)
}

func TestAccount_GoalSave(t *testing.T) {
	info := newTestExtractor(t).Account([]string{"Account Num 61012345678\nYour GoalSave summary\n"})
	assert.Equal(t, "61012345678", info.AccountNumber)
	assert.Equal(t, "GoalSave Account", info.AccountType)
}
