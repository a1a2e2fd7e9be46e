package stats

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zaparse/stmtledger/extractor/common"
)

// Entry is one transaction of a combined ledger, tagged with the document
// it came from.
type Entry struct {
	Source      string
	Transaction common.Transaction
}

// Source labels one ledger for combination.
type Source struct {
	Label  string
	Ledger common.Ledger
}

// CombinedLedger concatenates ledgers in the order given. Balances are kept
// as printed per document and never recomputed.
type CombinedLedger struct {
	Entries []Entry
}

func Combine(sources ...Source) CombinedLedger {
	var c CombinedLedger
	for _, s := range sources {
		for _, tx := range s.Ledger.Transactions {
			c.Entries = append(c.Entries, Entry{Source: s.Label, Transaction: tx})
		}
	}
	return c
}

func entries(txs []common.Transaction) []Entry {
	out := make([]Entry, len(txs))
	for i, tx := range txs {
		out[i] = Entry{Transaction: tx}
	}
	return out
}

type Summary struct {
	TotalDebits      decimal.Decimal
	TotalCredits     decimal.Decimal
	NetMovement      decimal.Decimal
	EndingBalance    decimal.Decimal
	TransactionCount int
}

func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalDebits      json.Number `json:"total_debits"`
		TotalCredits     json.Number `json:"total_credits"`
		NetMovement      json.Number `json:"net_movement"`
		EndingBalance    json.Number `json:"ending_balance"`
		TransactionCount int         `json:"transaction_count"`
	}{
		TotalDebits:      common.Fixed(s.TotalDebits),
		TotalCredits:     common.Fixed(s.TotalCredits),
		NetMovement:      common.Fixed(s.NetMovement),
		EndingBalance:    common.Fixed(s.EndingBalance),
		TransactionCount: s.TransactionCount,
	})
}

// Coverage describes the date range a set of transactions spans. StartDate
// and EndDate are zero when there are no transactions.
type Coverage struct {
	StartDate        time.Time
	EndDate          time.Time
	DaysCovered      int
	MonthsCovered    int
	TransactionCount int
	AccountsDetected int
	MissingDateGaps  int
}

func (c Coverage) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		StartDate        *string `json:"start_date"`
		EndDate          *string `json:"end_date"`
		DaysCovered      int     `json:"days_covered"`
		MonthsCovered    int     `json:"months_covered"`
		TransactionCount int     `json:"transaction_count"`
		AccountsDetected int     `json:"accounts_detected"`
		MissingDateGaps  int     `json:"missing_date_gaps"`
	}{
		StartDate:        dateOrNull(c.StartDate),
		EndDate:          dateOrNull(c.EndDate),
		DaysCovered:      c.DaysCovered,
		MonthsCovered:    c.MonthsCovered,
		TransactionCount: c.TransactionCount,
		AccountsDetected: c.AccountsDetected,
		MissingDateGaps:  c.MissingDateGaps,
	})
}

type ActivityVolume struct {
	CreditCount        int
	DebitCount         int
	AvgCreditsPerMonth decimal.Decimal
	AvgDebitsPerMonth  decimal.Decimal
}

func (a ActivityVolume) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CreditCount        int         `json:"credit_count"`
		DebitCount         int         `json:"debit_count"`
		AvgCreditsPerMonth json.Number `json:"avg_credits_per_month"`
		AvgDebitsPerMonth  json.Number `json:"avg_debits_per_month"`
	}{
		CreditCount:        a.CreditCount,
		DebitCount:         a.DebitCount,
		AvgCreditsPerMonth: common.Fixed(a.AvgCreditsPerMonth),
		AvgDebitsPerMonth:  common.Fixed(a.AvgDebitsPerMonth),
	})
}

// Revenue describes incoming money. VolatilityPct is null when the monthly
// average is zero and ConcentrationPct is null when there are no credits.
type Revenue struct {
	TotalCredits        decimal.Decimal
	AvgMonthlyCredits   decimal.Decimal
	LowestMonthCredits  decimal.Decimal
	HighestMonthCredits decimal.Decimal
	VolatilityPct       decimal.NullDecimal
	ConcentrationPct    decimal.NullDecimal
	LargestSingleCredit decimal.Decimal
}

func (r Revenue) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalCredits        json.Number  `json:"total_credits"`
		AvgMonthlyCredits   json.Number  `json:"avg_monthly_credits"`
		LowestMonthCredits  json.Number  `json:"lowest_month_credits"`
		HighestMonthCredits json.Number  `json:"highest_month_credits"`
		VolatilityPct       *json.Number `json:"revenue_volatility_pct"`
		ConcentrationPct    *json.Number `json:"top5_concentration_pct"`
		LargestSingleCredit json.Number  `json:"largest_single_credit"`
	}{
		TotalCredits:        common.Fixed(r.TotalCredits),
		AvgMonthlyCredits:   common.Fixed(r.AvgMonthlyCredits),
		LowestMonthCredits:  common.Fixed(r.LowestMonthCredits),
		HighestMonthCredits: common.Fixed(r.HighestMonthCredits),
		VolatilityPct:       fixedOrNull(r.VolatilityPct),
		ConcentrationPct:    fixedOrNull(r.ConcentrationPct),
		LargestSingleCredit: common.Fixed(r.LargestSingleCredit),
	})
}

func dateOrNull(t time.Time) *string {
	if t.IsZero() {
		return nil
	}
	s := t.Format(common.DateLayout)
	return &s
}

func fixedOrNull(d decimal.NullDecimal) *json.Number {
	if !d.Valid {
		return nil
	}
	n := common.Fixed(d.Decimal)
	return &n
}
