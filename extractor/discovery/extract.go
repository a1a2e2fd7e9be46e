package discovery

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zaparse/stmtledger/config"
	"github.com/zaparse/stmtledger/extractor/common"
)

type rules struct {
	DateISO       *regexp.Regexp
	DateText      *regexp.Regexp
	Amount        *regexp.Regexp
	CardPrefix    *regexp.Regexp
	KindPrefix    *regexp.Regexp
	AccountNumber *regexp.Regexp
	AccountType   *regexp.Regexp
}

func loadRules(f config.Format) (rules, error) {
	p := f.Patterns()
	r := rules{
		DateISO:       p.Get("date_iso"),
		DateText:      p.Get("date_text"),
		Amount:        p.Get("amount"),
		CardPrefix:    p.Get("card_prefix"),
		KindPrefix:    p.Get("kind_prefix"),
		AccountNumber: p.Get("account_number"),
		AccountType:   p.Get("account_type"),
	}
	return r, p.Err()
}

// Extractor handles both Discovery layouts: the transaction history export
// (ISO dates, debit/credit/balance columns) and the monthly statement
// (day month year, one signed amount).
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
	if strings.Contains(line, "Date") && common.ContainsAny(line, "Description", "Card no") {
		return true
	}
	return strings.Contains(line, "Opening balance") || common.ContainsAll(line, "Debit", "Credit")
}

func (e *Extractor) date(line string) (time.Time, string, bool) {
	r := e.rules
	if m := r.DateISO.FindStringSubmatchIndex(line); m != nil {
		d, ok := common.DateYMD(line[m[0]:m[1]], "-")
		return d, line[m[1]:], ok
	}
	if m := r.DateText.FindStringSubmatchIndex(line); m != nil {
		d, ok := common.DateDayMonthText(line[m[2]:m[3]])
		return d, line[m[1]:], ok
	}
	return time.Time{}, "", false
}

func (e *Extractor) Transactions(pages []string) []common.Transaction {
	r := e.rules
	var rows []common.Transaction

	for _, line := range common.Lines(pages) {
		if isNoise(line) {
			continue
		}
		date, rest, ok := e.date(line)
		if !ok {
			continue
		}
		tokens := r.Amount.FindAllString(line, -1)
		if len(tokens) < 1 {
			continue
		}

		description := common.DescriptionBefore(rest, r.Amount)
		description = strings.TrimSpace(r.CardPrefix.ReplaceAllString(description, ""))
		description = strings.TrimSpace(r.KindPrefix.ReplaceAllString(description, ""))
		if description == "" {
			description = "Transaction"
		}

		debit, credit, balance := decimal.Zero, decimal.Zero, decimal.Zero

		switch n := len(tokens); {
		case n >= 3:
			d, dNeg := common.SignedAmount(tokens[n-3])
			c, cNeg := common.SignedAmount(tokens[n-2])
			if d.IsPositive() && !dNeg {
				debit = d
			}
			if c.IsPositive() && !cNeg {
				credit = c
			}
			balance = signed(common.SignedAmount(tokens[n-1]))
		case n == 2:
			amt, neg := common.SignedAmount(tokens[0])
			if neg {
				debit = amt
			} else {
				credit = amt
			}
			balance = signed(common.SignedAmount(tokens[1]))
		default:
			amt, neg := common.SignedAmount(tokens[0])
			if neg {
				debit = amt
			} else {
				credit = amt
			}
			previous := decimal.Zero
			if len(rows) > 0 {
				previous = rows[len(rows)-1].Balance
			}
			balance = previous.Sub(debit).Add(credit)
		}

		rows = append(rows, common.NewTransaction(date, description, debit, credit, balance))
	}
	return rows
}

func signed(amount decimal.Decimal, negative bool) decimal.Decimal {
	if negative {
		return amount.Neg()
	}
	return amount
}

// Account reads the account number and product name from the first page.
func (e *Extractor) Account(pages []string) common.AccountInfo {
	first := common.FirstPage(pages)
	return common.AccountInfo{
		BankID:        e.format.ID,
		Bank:          e.format.Name,
		AccountNumber: common.Submatch(e.rules.AccountNumber, first),
		AccountType:   common.Submatch(e.rules.AccountType, first),
	}
}
