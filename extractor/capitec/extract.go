package capitec

import (
	"regexp"
	"strings"

	"github.com/zaparse/stmtledger/config"
	"github.com/zaparse/stmtledger/extractor/common"
)

type rules struct {
	Date          *regexp.Regexp
	Amount        *regexp.Regexp
	AccountNumber *regexp.Regexp
}

func loadRules(f config.Format) (rules, error) {
	p := f.Patterns()
	r := rules{
		Date:          p.Get("date"),
		Amount:        p.Get("amount"),
		AccountNumber: p.Get("account_number"),
	}
	return r, p.Err()
}

// Extractor reads Capitec statements. Amounts group thousands with a space,
// e.g. -1 234.56.
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

// Transactions takes the first row's direction from the sign of its amount.
// Every later row is inferred from the balance delta.
func (e *Extractor) Transactions(pages []string) []common.Transaction {
	r := e.rules
	var rows []common.Transaction

	for _, line := range common.Lines(pages) {
		if !r.Date.MatchString(line) || len(line) < 11 {
			continue
		}
		tokens := r.Amount.FindAllString(line, -1)
		if len(tokens) < 2 {
			continue
		}
		date, ok := common.DateDMY(line[:10], "/")
		if !ok {
			continue
		}

		description := common.DescriptionBefore(line[11:], r.Amount)

		balance := common.CleanAmount(tokens[len(tokens)-1])
		var tx common.Transaction
		if len(rows) == 0 {
			debit, credit := common.Signed(common.CleanAmount(tokens[0]))
			tx = common.NewTransaction(date, description, debit, credit, balance)
		} else {
			debit, credit := common.BalanceDelta(rows[len(rows)-1].Balance, balance)
			tx = common.NewTransaction(date, description, debit, credit, balance)
			tx.Inferred = true
		}
		rows = append(rows, tx)
	}
	return rows
}

// Account reads the digits on, or directly below, an "account number"
// label of the first page. The last such label wins.
func (e *Extractor) Account(pages []string) common.AccountInfo {
	info := common.AccountInfo{BankID: e.format.ID, Bank: e.format.Name}
	lines := strings.Split(common.FirstPage(pages), "\n")
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), "account number") {
			continue
		}
		if n := e.rules.AccountNumber.FindString(line); n != "" {
			info.AccountNumber = n
		} else if i+1 < len(lines) {
			if n := e.rules.AccountNumber.FindString(lines[i+1]); n != "" {
				info.AccountNumber = n
			}
		}
	}
	return info
}
