package absa

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zaparse/stmtledger/config"
	"github.com/zaparse/stmtledger/extractor/common"
)

type rules struct {
	Date               *regexp.Regexp
	Amount             *regexp.Regexp
	DescriptionSuffix  *regexp.Regexp
	AccountNumber      *regexp.Regexp
	AccountNumberPlain *regexp.Regexp
	AccountType        *regexp.Regexp
}

func loadRules(f config.Format) (rules, error) {
	p := f.Patterns()
	r := rules{
		Date:               p.Get("date"),
		Amount:             p.Get("amount"),
		DescriptionSuffix:  p.Get("description_suffix"),
		AccountNumber:      p.Get("account_number"),
		AccountNumberPlain: p.Get("account_number_plain"),
		AccountType:        p.Get("account_type"),
	}
	return r, p.Err()
}

// Extractor reads ABSA cheque and savings statements.
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
	upper := strings.ToUpper(line)
	return common.ContainsAll(line, "Date", "Transaction") ||
		common.ContainsAny(line, "Bal Brought Forward", "Balance Brought Forward") ||
		common.ContainsAny(upper, "YOUR PRICING PLAN", "INTEREST RATE")
}

// Transactions scans every line. Columns are debit, credit and balance, but
// empty columns are not printed, so direction comes from the balance delta
// once a previous row exists.
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
		date, ok := common.DateDMY(line[m[2]:m[3]], "/")
		if !ok {
			continue
		}
		tokens := r.Amount.FindAllString(line, -1)
		if len(tokens) < 1 {
			continue
		}
		amounts := make([]decimal.Decimal, len(tokens))
		for i, tok := range tokens {
			amounts[i] = common.CleanAmount(tok)
		}

		description := common.DescriptionBefore(line[m[1]:], r.Amount)
		description = strings.TrimSpace(r.DescriptionSuffix.ReplaceAllString(description, ""))

		balance := amounts[len(amounts)-1]
		debit, credit := decimal.Zero, decimal.Zero
		inferred := false

		if len(amounts) >= 2 {
			others := amounts[:len(amounts)-1]
			switch {
			case len(rows) > 0:
				debit, credit = common.BalanceDelta(rows[len(rows)-1].Balance, balance)
				inferred = true
			case len(others) == 1:
				debit = others[0]
				inferred = true
			default:
				debit, credit = others[len(others)-2], others[len(others)-1]
			}
		}

		tx := common.NewTransaction(date, description, debit, credit, balance)
		tx.Inferred = inferred
		rows = append(rows, tx)
	}
	return rows
}

// Account reads the account number and type from the first page.
func (e *Extractor) Account(pages []string) common.AccountInfo {
	r := e.rules
	first := common.FirstPage(pages)
	info := common.AccountInfo{BankID: e.format.ID, Bank: e.format.Name}

	info.AccountNumber = common.Submatch(r.AccountNumber, first)
	if info.AccountNumber == "" {
		info.AccountNumber = common.Submatch(r.AccountNumberPlain, first)
	}

	lower := strings.ToLower(first)
	switch {
	case strings.Contains(lower, "cheque account"):
		info.AccountType = "Cheque Account"
	case strings.Contains(lower, "savings account"):
		info.AccountType = "Savings Account"
	}
	if t := common.Submatch(r.AccountType, first); t != "" {
		info.AccountType = t
	}
	return info
}
