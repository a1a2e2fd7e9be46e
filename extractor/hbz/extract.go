package hbz

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zaparse/stmtledger/config"
	"github.com/zaparse/stmtledger/extractor/common"
)

// creditColumnStart is the fraction of the line width after which a lone
// amount is read as sitting in the credit column.
var creditColumnStart = decimal.RequireFromString("0.6")

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

// Extractor reads HBZ Bank statements. HBZ prints debit and credit columns
// but no usable running balance, so the balance is rebuilt from the
// previous balance line.
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

func (e *Extractor) Transactions(pages []string) []common.Transaction {
	r := e.rules
	var rows []common.Transaction
	current := decimal.Zero

	for _, line := range common.Lines(pages) {
		if common.ContainsAll(line, "Date", "Particulars") {
			continue
		}
		if common.ContainsAny(line, "Previous Balance", "Balance (CR)") {
			if tokens := r.Amount.FindAllString(line, -1); len(tokens) > 0 {
				current = common.CleanAmount(tokens[len(tokens)-1])
			}
			continue
		}

		m := r.Date.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		date, ok := common.DateMonthDay(line[m[2]:m[3]])
		if !ok {
			continue
		}
		tokens := r.Amount.FindAllString(line, -1)
		if len(tokens) < 1 {
			continue
		}

		description := common.DescriptionBefore(line[m[1]:], r.Amount)
		debit, credit := decimal.Zero, decimal.Zero
		inferred := false

		if len(tokens) >= 2 {
			debit = common.CleanAmount(tokens[0])
			credit = common.CleanAmount(tokens[1])
		} else {
			amount := common.CleanAmount(tokens[0])
			pos := decimal.NewFromInt(int64(strings.LastIndex(line, tokens[0])))
			if pos.GreaterThan(creditColumnStart.Mul(decimal.NewFromInt(int64(len(line))))) {
				credit = amount
			} else {
				debit = amount
			}
			inferred = true
		}

		current = current.Sub(debit).Add(credit)
		tx := common.NewTransaction(date, description, debit, credit, current)
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
