package fnb

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zaparse/stmtledger/config"
	"github.com/zaparse/stmtledger/extractor/common"
)

// matchTolerance is how close a balance delta must be to the printed amount
// for the amount to be taken as the delta.
var matchTolerance = decimal.RequireFromString("0.01")

type rules struct {
	DateYear         *regexp.Regexp
	DateShort        *regexp.Regexp
	AmountMarked     *regexp.Regexp
	AmountPlain      *regexp.Regexp
	AmountPlainStart *regexp.Regexp
	AccountSelected  *regexp.Regexp
	AccountNickname  *regexp.Regexp
	AccountNamed     *regexp.Regexp
	AccountNumber    *regexp.Regexp
}

func loadRules(f config.Format) (rules, error) {
	p := f.Patterns()
	r := rules{
		DateYear:         p.Get("date_year"),
		DateShort:        p.Get("date_short"),
		AmountMarked:     p.Get("amount_marked"),
		AmountPlain:      p.Get("amount_plain"),
		AmountPlainStart: p.Get("amount_plain_start"),
		AccountSelected:  p.Get("account_selected"),
		AccountNickname:  p.Get("account_nickname"),
		AccountNamed:     p.Get("account_named"),
		AccountNumber:    p.Get("account_number"),
	}
	return r, p.Err()
}

// Extractor reads both FNB layouts: the transaction history export, where
// every amount carries a CR or DR marker, and the bank statement, where
// amounts are plain and dates omit the year.
type Extractor struct {
	format config.Format
	rules  rules
	now    func() time.Time
}

func New(f config.Format) (*Extractor, error) {
	r, err := loadRules(f)
	if err != nil {
		return nil, err
	}
	return &Extractor{format: f, rules: r, now: time.Now}, nil
}

func isNoise(line string) bool {
	return common.ContainsAll(line, "Date", "Description") ||
		common.ContainsAll(line, "Balance", "Amount") ||
		strings.Contains(line, "Service Fee")
}

func (e *Extractor) Transactions(pages []string) []common.Transaction {
	r := e.rules
	var rows []common.Transaction
	var previous *decimal.Decimal
	year := 0

	for _, page := range pages {
		if year == 0 {
			year = common.YearFromText(page, e.now())
		}
		for _, line := range common.Lines([]string{page}) {
			if isNoise(line) {
				continue
			}

			var day, month, yearText string
			var end int
			if m := r.DateYear.FindStringSubmatchIndex(line); m != nil {
				day, month, yearText, end = line[m[2]:m[3]], line[m[4]:m[5]], line[m[6]:m[7]], m[1]
			} else if m := r.DateShort.FindStringSubmatchIndex(line); m != nil {
				day, month, yearText, end = line[m[2]:m[3]], line[m[4]:m[5]], strconv.Itoa(year), m[1]
			} else {
				continue
			}
			date, ok := common.DateDayMonth(day, month, yearText)
			if !ok {
				continue
			}
			rest := strings.TrimSpace(line[end:])

			if r.AmountMarked.MatchString(rest) {
				if tx, ok := e.markedLine(date, rest); ok {
					rows = append(rows, tx)
				}
				continue
			}
			if tx, ok := e.plainLine(date, rest, previous); ok {
				rows = append(rows, tx)
				balance := tx.Balance
				previous = &balance
			}
		}
	}
	return rows
}

// markedLine parses "Description [fee] amount balance", each amount
// suffixed CR or DR. The running balance used by plain lines is not updated.
func (e *Extractor) markedLine(date time.Time, rest string) (common.Transaction, bool) {
	r := e.rules
	tokens := r.AmountMarked.FindAllString(rest, -1)
	if len(tokens) < 2 {
		return common.Transaction{}, false
	}
	loc := r.AmountMarked.FindStringIndex(rest)
	description := strings.TrimSpace(rest[:loc[0]])

	balance, balanceCredit := common.ParseAmountWithCr(tokens[len(tokens)-1])
	if !balanceCredit {
		balance = balance.Neg()
	}
	amount, credit := common.ParseAmountWithCr(tokens[len(tokens)-2])
	if credit {
		return common.NewTransaction(date, description, decimal.Zero, amount, balance), true
	}
	return common.NewTransaction(date, description, amount, decimal.Zero, balance), true
}

// plainLine parses "Description amount balance [accrued charges]".
func (e *Extractor) plainLine(date time.Time, rest string, previous *decimal.Decimal) (common.Transaction, bool) {
	r := e.rules
	var tokens []string
	for _, tok := range r.AmountPlain.FindAllString(rest, -1) {
		// short integers are usually reference fragments
		if strings.Contains(tok, ".") || len(tok) >= 3 {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) < 2 {
		return common.Transaction{}, false
	}
	loc := r.AmountPlainStart.FindStringIndex(rest)
	if loc == nil {
		return common.Transaction{}, false
	}
	description := strings.TrimSpace(rest[:loc[0]])

	balance := common.CleanAmount(tokens[len(tokens)-1])
	amount := common.CleanAmount(tokens[len(tokens)-2])

	isCredit := balance.IsPositive()
	if previous != nil {
		diff := balance.Sub(*previous)
		switch {
		case diff.Sub(amount).Abs().LessThan(matchTolerance):
			isCredit = true
		case diff.Add(amount).Abs().LessThan(matchTolerance):
			isCredit = false
		default:
			isCredit = diff.IsPositive()
		}
	}

	var tx common.Transaction
	if isCredit {
		tx = common.NewTransaction(date, description, decimal.Zero, amount, balance)
	} else {
		tx = common.NewTransaction(date, description, amount, decimal.Zero, balance)
	}
	tx.Inferred = true
	return tx, true
}

// Account searches the whole document: the selected account and nickname
// of the online export first, then a named account line, then an
// "Account Number" label.
func (e *Extractor) Account(pages []string) common.AccountInfo {
	r := e.rules
	text := common.FullText(pages)
	info := common.AccountInfo{BankID: e.format.ID, Bank: e.format.Name}

	info.AccountNumber = common.Submatch(r.AccountSelected, text)
	info.AccountType = common.Submatch(r.AccountNickname, text)

	if info.AccountNumber == "" {
		if m := r.AccountNamed.FindStringSubmatch(text); m != nil {
			info.AccountType = strings.TrimSpace(m[1])
			info.AccountNumber = strings.TrimSpace(m[2])
		}
	}
	if info.AccountNumber == "" {
		info.AccountNumber = common.Submatch(r.AccountNumber, text)
	}
	return info
}
