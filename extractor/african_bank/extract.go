package african_bank

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zaparse/stmtledger/config"
	"github.com/zaparse/stmtledger/extractor/common"
)

type rules struct {
	Date          *regexp.Regexp
	Amount        *regexp.Regexp
	AccountNumber *regexp.Regexp
	AccountType   *regexp.Regexp
}

func loadRules(f config.Format) (rules, error) {
	p := f.Patterns()
	r := rules{
		Date:          p.Get("date"),
		Amount:        p.Get("amount"),
		AccountNumber: p.Get("account_number"),
		AccountType:   p.Get("account_type"),
	}
	return r, p.Err()
}

// Extractor reads African Bank statements laid out as
// TRANSACTION DATE | TRANSACTION DETAILS | BANK CHARGES | AMOUNT | BALANCE.
type Extractor struct {
	format config.Format
	rules  rules
}

func New(f config.Format) (*Extractor, error) {
	r, err := loadRules(f)
	if err != nil {
		return nil, err
	}
	return &Extractor{format: f, rules: r}, nil
}

func isNoise(line string) bool {
	if common.ContainsAny(line, "TRANSACTION DATE", "TRANSACTION DETAILS") {
		return true
	}
	if strings.Contains(line, "Opening Balance") && !strings.Contains(line, "TRANSACTION") {
		return true
	}
	return common.ContainsAny(line, "BANK CHARGES", "AMOUNT", "BALANCE")
}

// Transactions reads the signed amount column. A row printing only its
// balance is inferred from the previous balance.
func (e *Extractor) Transactions(pages []string) []common.Transaction {
	r := e.rules
	var rows []common.Transaction

	for _, line := range common.Lines(pages) {
		if isNoise(line) {
			continue
		}
		m := r.Date.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		date, ok := common.DateYMD(line[m[2]:m[3]], "/")
		if !ok {
			continue
		}
		tokens := r.Amount.FindAllString(line, -1)
		if len(tokens) < 1 {
			continue
		}
		description := common.DescriptionBefore(line[m[1]:], r.Amount)

		n := len(tokens)
		balance := common.CleanAmount(tokens[n-1])
		debit, credit := decimal.Zero, decimal.Zero
		inferred := false

		switch {
		case n >= 2:
			debit, credit = common.Signed(common.CleanAmount(tokens[n-2]))
		case len(rows) > 0:
			debit, credit = common.BalanceDelta(rows[len(rows)-1].Balance, balance)
			inferred = true
		}

		tx := common.NewTransaction(date, description, debit, credit, balance)
		tx.Inferred = inferred
		rows = append(rows, tx)
	}
	return rows
}

func (e *Extractor) Account(pages []string) common.AccountInfo {
	first := common.FirstPage(pages)
	return common.AccountInfo{
		BankID:        e.format.ID,
		Bank:          e.format.Name,
		AccountNumber: common.Submatch(e.rules.AccountNumber, first),
		AccountType:   common.Submatch(e.rules.AccountType, first),
	}
}
