package nedbank

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zaparse/stmtledger/config"
	"github.com/zaparse/stmtledger/extractor/common"
)

type rules struct {
	DateTran          *regexp.Regexp
	Date              *regexp.Regexp
	DateInline        *regexp.Regexp
	Amount            *regexp.Regexp
	AccountNumber     *regexp.Regexp
	AccountNumberBare *regexp.Regexp
}

func loadRules(f config.Format) (rules, error) {
	p := f.Patterns()
	r := rules{
		DateTran:          p.Get("date_tran"),
		Date:              p.Get("date"),
		DateInline:        p.Get("date_inline"),
		Amount:            p.Get("amount"),
		AccountNumber:     p.Get("account_number"),
		AccountNumberBare: p.Get("account_number_bare"),
	}
	return r, p.Err()
}

// Extractor reads Nedbank statements: Date | Transactions | Debits | Credits | Balance.
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
	switch {
	case common.ContainsAny(line, "Tran list no", "Narrative Description"):
		return true
	case strings.Contains(line, "Date") && common.ContainsAny(line, "Transactions", "Description"):
		return true
	case common.ContainsAll(line, "Debits", "Credits"):
		return true
	case common.ContainsAny(line, "Opening balance", "Balance carried forward", "BROUGHT FORWARD", "CARRIED FORWARD"):
		return true
	}
	return false
}

// locateDate finds the transaction date: after a six digit list number,
// at the start of the line, or anywhere between spaces.
func (e *Extractor) locateDate(line string) (string, int, bool) {
	for _, re := range []*regexp.Regexp{e.rules.DateTran, e.rules.Date, e.rules.DateInline} {
		if m := re.FindStringSubmatchIndex(line); m != nil {
			return line[m[2]:m[3]], m[1], true
		}
	}
	return "", 0, false
}

func (e *Extractor) Transactions(pages []string) []common.Transaction {
	r := e.rules
	var rows []common.Transaction

	for _, line := range common.Lines(pages) {
		if isNoise(line) {
			continue
		}
		raw, restStart, ok := e.locateDate(line)
		if !ok {
			continue
		}
		date, ok := common.DateDMY(raw, "/")
		if !ok {
			continue
		}
		tokens := r.Amount.FindAllString(line, -1)
		if len(tokens) < 1 {
			continue
		}

		description := common.DescriptionBefore(line[restStart:], r.Amount)
		balance := common.CleanAmount(tokens[len(tokens)-1])
		debit, credit := decimal.Zero, decimal.Zero
		inferred := false

		switch len(tokens) {
		case 3:
			debit = common.CleanAmount(tokens[0])
			credit = common.CleanAmount(tokens[1])
		case 2:
			amount := common.CleanAmount(tokens[0])
			inferred = true
			if len(rows) > 0 {
				if balance.Sub(rows[len(rows)-1].Balance).IsPositive() {
					credit = amount
				} else {
					debit = amount
				}
				break
			}
			lower := strings.ToLower(description)
			if strings.Contains(lower, "fee") || strings.Contains(lower, "debit") || !balance.IsPositive() {
				debit = amount
			} else {
				credit = amount
			}
		case 1:
			if len(rows) > 0 {
				debit, credit = common.BalanceDelta(rows[len(rows)-1].Balance, balance)
				inferred = true
			}
		}

		tx := common.NewTransaction(date, description, debit, credit, balance)
		tx.Inferred = inferred
		rows = append(rows, tx)
	}
	return rows
}

// Account looks for the number on the account summary line, then next to an
// "Account number" label, then any ten digit number on the first page.
func (e *Extractor) Account(pages []string) common.AccountInfo {
	r := e.rules
	first := common.FirstPage(pages)
	info := common.AccountInfo{BankID: e.format.ID, Bank: e.format.Name}

	kinds := []struct{ marker, name string }{
		{"current account", "Current Account"},
		{"savings account", "Savings Account"},
		{"business account", "Business Account"},
	}
	lines := strings.Split(first, "\n")

summary:
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, k := range kinds {
			if !strings.Contains(lower, k.marker) {
				continue
			}
			if n := common.Submatch(r.AccountNumber, line); n != "" {
				info.AccountNumber, info.AccountType = n, k.name
				break summary
			}
			// only the first matching kind is tried on a line
			break
		}
	}

	if info.AccountNumber == "" {
		for i, line := range lines {
			if !strings.Contains(strings.ToLower(line), "account number") {
				continue
			}
			if n := common.Submatch(r.AccountNumber, line); n != "" {
				info.AccountNumber = n
				break
			}
			if i+1 < len(lines) {
				if n := common.Submatch(r.AccountNumber, lines[i+1]); n != "" {
					info.AccountNumber = n
					break
				}
			}
		}
	}

	if info.AccountNumber == "" {
		info.AccountNumber = common.Submatch(r.AccountNumberBare, first)
	}
	return info
}
