package bidvest

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaparse/stmtledger/config"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	f, ok := config.MustDefault().Lookup("bidvest")
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
		"Bidvest Bank\n" +
			"Account Statement: Business Account  Account No: 03012345678\n" +
			"Transaction Date Effective Date Description Reference Fees Amount Balance\n" +
			"Balance Brought Forward 1 000.00\n" +
			"2024/03/01 2024/03/01 Payment received REFABC 0.00 2 500.00 3 500.00\n" +
			"2024/03/02 2024/03/03 Supplier EFT 7.50 -1 200.00 2 292.50\n" +
			"2024/03/04 Card refund 40.00 2 332.50\n" +
			"2024/03/05 Interest 2 340.10\n",
	}
}

func TestTransactions(t *testing.T) {
	rows := newTestExtractor(t).Transactions(getTestPages())
	require.Len(t, rows, 4)

	assert.Equal(t, "01/03/2024", rows[0].Date.Format("02/01/2006"))
	assert.Equal(t, "Payment received REFABC", rows[0].Description)
	assert.True(t, rows[0].Credit.Equal(dec("2500")))
	assert.True(t, rows[0].Balance.Equal(dec("3500")))

	// fee folds into the debit side
	assert.Equal(t, "Supplier EFT", rows[1].Description)
	assert.True(t, rows[1].Debit.Equal(dec("1207.50")))
	assert.True(t, rows[1].Credit.IsZero())

	assert.Equal(t, "Card refund", rows[2].Description)
	assert.True(t, rows[2].Credit.Equal(dec("40")))

	assert.True(t, rows[3].Credit.Equal(dec("7.60")))
	assert.True(t, rows[3].Inferred)
}

func TestTransactions_NegativeBalanceKeepsSign(t *testing.T) {
	rows := newTestExtractor(t).Transactions([]string{"2024/04/01 Debit order -150.00 -50.00"})
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Debit.Equal(dec("150")))
	assert.True(t, rows[0].Balance.Equal(dec("-50")))
}

func TestAccount(t *testing.T) {
	info := newTestExtractor(t).Account(getTestPages())
	assert.Equal(t, "03012345678", info.AccountNumber)
	assert.Equal(t, "Business Account", info.AccountType)
}
