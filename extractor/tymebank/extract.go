package tymebank

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zaparse/stmtledger/config"
	"github.com/zaparse/stmtledger/extractor/common"
)

type rules struct {
	Date              *regexp.Regexp
	Amount            *regexp.Regexp
	DescriptionPrefix *regexp.Regexp
	AccountNumber     *regexp.Regexp
	AccountEveryDay   *regexp.Regexp
}

func loadRules(f config.Format) (rules, error) {
	p := f.Patterns()
	r := rules{
		Date:              p.Get("date"),
		Amount:            p.Get("amount"),
		DescriptionPrefix: p.Get("description_prefix"),
		AccountNumber:     p.Get("account_number"),
		AccountEveryDay:   p.Get("account_everyday"),
	}
	return r, p.Err()
}

// Extractor reads TymeBank EveryDay and GoalSave statements.
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

// Transactions relies on the balance delta for every row after the first.
// The first row reads its debit and credit columns when all three are printed.
func (e *Extractor) Transactions(pages []string) []common.Transaction {
	r := e.rules
	var rows []common.Transaction

	for _, line := range common.Lines(pages) {
		if common.ContainsAll(line, "Date", "Description") {
			continue
		}
		m := r.Date.FindStringSubmatchIndex(line)
		if m == nil {
			// also drops an undated "Opening Balance" row
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

		description := common.DescriptionBefore(line[m[1]:], r.Amount)
		description = strings.TrimSpace(r.DescriptionPrefix.ReplaceAllString(description, ""))

		n := len(tokens)
		balance := common.CleanAmount(tokens[n-1])
		debit, credit := decimal.Zero, decimal.Zero
		inferred := false

		switch {
		case len(rows) > 0:
			debit, credit = common.BalanceDelta(rows[len(rows)-1].Balance, balance)
			inferred = true
		case n >= 3:
			debit = common.CleanAmount(tokens[n-3])
			credit = common.CleanAmount(tokens[n-2])
		}

		tx := common.NewTransaction(date, description, debit, credit, balance)
		tx.Inferred = inferred
		rows = append(rows, tx)
	}
	return rows
}

// Account searches the whole document for the account number.
func (e *Extractor) Account(pages []string) common.AccountInfo {
	r := e.rules
	text := common.FullText(pages)
	info := common.AccountInfo{BankID: e.format.ID, Bank: e.format.Name}

	info.AccountNumber = common.Submatch(r.AccountNumber, text)
	if info.AccountNumber == "" {
		if n := common.Submatch(r.AccountEveryDay, text); n != "" {
			info.AccountNumber = n
			info.AccountType = "EveryDay Account"
		}
	}
	if info.AccountType == "" {
		lower := strings.ToLower(text)
		switch {
		case strings.Contains(lower, "everyday"):
			info.AccountType = "EveryDay Account"
		case strings.Contains(lower, "goalsave"):
			info.AccountType = "GoalSave Account"
		}
	}
	return info
}
