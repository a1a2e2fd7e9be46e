package standard_bank

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

// Extractor reads Standard Bank statements laid out as
// Date | Description | Payments | Deposits | Balance.
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
	return common.ContainsAll(line, "Date", "Description") ||
		common.ContainsAll(line, "Payments", "Deposits") ||
		strings.Contains(strings.ToUpper(line), "STATEMENT OPENING BALANCE")
}

// Transactions reads signed payment and deposit columns. Payments print
// negative; a positive payment or negative deposit is taken at its sign.
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
		tokens := r.Amount.FindAllString(line, -1)
		if len(tokens) < 1 {
			continue
		}
		date, ok := common.DateDayMonth(line[m[2]:m[3]], line[m[4]:m[5]], line[m[6]:m[7]])
		if !ok {
			continue
		}

		description := common.DescriptionBefore(line[m[1]:], r.Amount)
		balance := common.CleanAmount(tokens[len(tokens)-1])
		debit, credit := decimal.Zero, decimal.Zero

		switch len(tokens) {
		case 3:
			payment := common.CleanAmount(tokens[0])
			deposit := common.CleanAmount(tokens[1])
			if payment.IsNegative() {
				debit = payment.Abs()
			} else if payment.IsPositive() {
				credit = payment
			}
			if deposit.IsPositive() {
				credit = deposit
			} else if deposit.IsNegative() {
				debit = deposit.Abs()
			}
		case 2:
			debit, credit = common.Signed(common.CleanAmount(tokens[0]))
		}

		rows = append(rows, common.NewTransaction(date, description, debit, credit, balance))
	}
	return rows
}

// Account reads "Account number" and "Product name" from the first page.
func (e *Extractor) Account(pages []string) common.AccountInfo {
	first := common.FirstPage(pages)
	return common.AccountInfo{
		BankID:        e.format.ID,
		Bank:          e.format.Name,
		AccountNumber: common.Submatch(e.rules.AccountNumber, first),
		AccountType:   common.Submatch(e.rules.AccountType, first),
	}
}
