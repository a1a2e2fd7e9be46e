package bidvest

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zaparse/stmtledger/config"
	"github.com/zaparse/stmtledger/extractor/common"
)

type rules struct {
	Date          *regexp.Regexp
	EffectiveDate *regexp.Regexp
	Amount        *regexp.Regexp
	AccountNumber *regexp.Regexp
	AccountType   *regexp.Regexp
}

func loadRules(f config.Format) (rules, error) {
	p := f.Patterns()
	r := rules{
		Date:          p.Get("date"),
		EffectiveDate: p.Get("effective_date"),
		Amount:        p.Get("amount"),
		AccountNumber: p.Get("account_number"),
		AccountType:   p.Get("account_type"),
	}
	return r, p.Err()
}

// Extractor reads Bidvest Bank statements laid out as
// Transaction Date | Effective Date | Description | Reference | Fees | Amount | Balance.
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
	return common.ContainsAll(line, "Transaction", "Date") ||
		common.ContainsAny(line, "Effective Date", "Description", "Balance Brought Forward") ||
		common.ContainsAll(line, "NEDLINK", "Reference")
}

type token struct {
	value    decimal.Decimal
	negative bool
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
		date, ok := common.DateYMD(line[m[2]:m[3]], "/")
		if !ok {
			continue
		}
		raw := r.Amount.FindAllString(line, -1)
		if len(raw) < 1 {
			continue
		}
		tokens := make([]token, len(raw))
		for i, s := range raw {
			v, neg := common.SignedAmount(s)
			tokens[i] = token{value: v, negative: neg}
		}

		rest := strings.TrimSpace(line[m[1]:])
		if loc := r.EffectiveDate.FindStringIndex(rest); loc != nil {
			rest = rest[loc[1]:]
		}
		description := common.DescriptionBefore(rest, r.Amount)

		n := len(tokens)
		last := tokens[n-1]
		balance := last.value
		if last.negative {
			balance = balance.Neg()
		}
		debit, credit := decimal.Zero, decimal.Zero
		inferred := false

		switch {
		case n >= 3:
			amount := tokens[n-2]
			if amount.negative {
				debit = amount.value
			} else {
				credit = amount.value
			}
			if fee := tokens[n-3].value; fee.IsPositive() {
				debit = debit.Add(fee)
			}
		case n == 2:
			if tokens[0].negative {
				debit = tokens[0].value
			} else {
				credit = tokens[0].value
			}
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
