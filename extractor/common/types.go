package common

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the canonical day-first rendering of a transaction date.
const DateLayout = "02/01/2006"

// AccountInfo describes the account a statement belongs to.
type AccountInfo struct {
	BankID        string
	Bank          string
	AccountNumber string
	AccountType   string
}

func (a AccountInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		BankID        string  `json:"bank_id"`
		Bank          string  `json:"bank"`
		AccountNumber *string `json:"account_number"`
		AccountType   *string `json:"account_type"`
	}{
		BankID:        a.BankID,
		Bank:          a.Bank,
		AccountNumber: nullable(a.AccountNumber),
		AccountType:   nullable(a.AccountType),
	})
}

// Transaction is one row of a ledger. At most one of Debit and Credit is non-zero.
type Transaction struct {
	Date        time.Time
	Description string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal

	// Inferred is set when the direction was guessed from a balance delta
	// or a first-row heuristic rather than read from the line.
	Inferred bool
}

// NewTransaction builds a row, netting a line that carries both a debit and
// a credit into a single movement.
func NewTransaction(date time.Time, description string, debit, credit, balance decimal.Decimal) Transaction {
	debit, credit = debit.Abs(), credit.Abs()
	if debit.IsPositive() && credit.IsPositive() {
		net := credit.Sub(debit)
		debit, credit = decimal.Zero, decimal.Zero
		if net.IsNegative() {
			debit = net.Abs()
		} else {
			credit = net
		}
	}
	return Transaction{
		Date:        date,
		Description: description,
		Debit:       debit,
		Credit:      credit,
		Balance:     balance,
	}
}

// Amount is the signed movement of the row, credits positive.
func (t Transaction) Amount() decimal.Decimal {
	return t.Credit.Sub(t.Debit)
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date        string      `json:"Date"`
		Description string      `json:"Description"`
		Debit       json.Number `json:"Debit"`
		Credit      json.Number `json:"Credit"`
		Balance     json.Number `json:"Balance"`
		Inferred    bool        `json:"Inferred,omitempty"`
	}{
		Date:        t.Date.Format(DateLayout),
		Description: t.Description,
		Debit:       Fixed(t.Debit),
		Credit:      Fixed(t.Credit),
		Balance:     Fixed(t.Balance),
		Inferred:    t.Inferred,
	})
}

// Ledger is the normalized result of one statement document.
type Ledger struct {
	Account      AccountInfo   `json:"account_info"`
	Transactions []Transaction `json:"transactions"`
}

// Fixed renders d with two fractional digits as a JSON number.
func Fixed(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
