package investec

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

// Extractor reads Investec Private Bank statements, which print an action
// date and a transaction date on each row.
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
	return common.ContainsAny(line, "Action date", "Trans date", "Balance brought forward")
}

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
		date, ok := common.DateDayMonthText(line[m[2]:m[3]])
		if !ok {
			continue
		}
		tokens := r.Amount.FindAllString(line, -1)
		if len(tokens) < 1 {
			continue
		}

		rest := strings.TrimSpace(line[m[1]:])
		if loc := r.Date.FindStringIndex(rest); loc != nil {
			rest = rest[loc[1]:]
		}
		description := common.DescriptionBefore(rest, r.Amount)

		n := len(tokens)
		balance := common.CleanAmount(tokens[n-1])
		debit, credit := decimal.Zero, decimal.Zero
		inferred := false

		if n >= 2 {
			if len(rows) > 0 {
				debit, credit = common.BalanceDelta(rows[len(rows)-1].Balance, balance)
			} else {
				debit = common.CleanAmount(tokens[0])
			}
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
	info := common.AccountInfo{
		BankID:        e.format.ID,
		Bank:          e.format.Name,
		AccountNumber: common.Submatch(e.rules.AccountNumber, first),
	}
	if strings.Contains(strings.ToLower(first), "private bank") {
		info.AccountType = "Private Bank Account"
	}
	return info
}
