// Package stats computes totals, date coverage, activity and revenue over
// one ledger or several combined. None of the functions fail: empty input
// yields zero values and undefined ratios are null.
package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zaparse/stmtledger/extractor/common"
)

var hundred = decimal.NewFromInt(100)

type monthKey struct {
	year  int
	month time.Month
}

func monthOf(t time.Time) monthKey {
	return monthKey{year: t.Year(), month: t.Month()}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func Summarize(txs []common.Transaction) Summary {
	return summarize(entries(txs))
}

func CoverageOf(txs []common.Transaction) Coverage {
	return coverage(entries(txs))
}

func ActivityOf(txs []common.Transaction) ActivityVolume {
	return activity(entries(txs))
}

func RevenueOf(txs []common.Transaction) Revenue {
	return revenue(entries(txs))
}

func (c CombinedLedger) Summary() Summary         { return summarize(c.Entries) }
func (c CombinedLedger) Coverage() Coverage       { return coverage(c.Entries) }
func (c CombinedLedger) Activity() ActivityVolume { return activity(c.Entries) }
func (c CombinedLedger) Revenue() Revenue         { return revenue(c.Entries) }

func summarize(es []Entry) Summary {
	s := Summary{TransactionCount: len(es)}
	for _, e := range es {
		s.TotalDebits = s.TotalDebits.Add(e.Transaction.Debit)
		s.TotalCredits = s.TotalCredits.Add(e.Transaction.Credit)
		s.NetMovement = s.NetMovement.Add(e.Transaction.Amount())
	}
	if len(es) > 0 {
		s.EndingBalance = es[len(es)-1].Transaction.Balance
	}
	return s
}

func coverage(es []Entry) Coverage {
	if len(es) == 0 {
		return Coverage{}
	}

	days := make(map[time.Time]struct{})
	months := make(map[monthKey]struct{})
	sources := make(map[string]struct{})
	start, end := dayOf(es[0].Transaction.Date), dayOf(es[0].Transaction.Date)

	for _, e := range es {
		d := dayOf(e.Transaction.Date)
		if d.Before(start) {
			start = d
		}
		if d.After(end) {
			end = d
		}
		days[d] = struct{}{}
		months[monthOf(d)] = struct{}{}
		if e.Source != "" {
			sources[e.Source] = struct{}{}
		}
	}

	span := int(end.Sub(start).Hours()/24) + 1
	accounts := len(sources)
	if accounts == 0 {
		accounts = 1
	}
	return Coverage{
		StartDate:        start,
		EndDate:          end,
		DaysCovered:      span,
		MonthsCovered:    len(months),
		TransactionCount: len(es),
		AccountsDetected: accounts,
		MissingDateGaps:  span - len(days),
	}
}

func activity(es []Entry) ActivityVolume {
	var a ActivityVolume
	months := make(map[monthKey]struct{})
	for _, e := range es {
		months[monthOf(e.Transaction.Date)] = struct{}{}
		if e.Transaction.Credit.IsPositive() {
			a.CreditCount++
		}
		if e.Transaction.Debit.IsPositive() {
			a.DebitCount++
		}
	}
	if n := len(months); n > 0 {
		a.AvgCreditsPerMonth = perMonth(a.CreditCount, n)
		a.AvgDebitsPerMonth = perMonth(a.DebitCount, n)
	}
	return a
}

func perMonth(count, months int) decimal.Decimal {
	return decimal.NewFromInt(int64(count)).Div(decimal.NewFromInt(int64(months))).Round(2)
}

// revenue groups credits by every month that has activity, so a month with
// only debits counts as a zero-revenue month.
func revenue(es []Entry) Revenue {
	monthly := make(map[monthKey]decimal.Decimal)
	var credits []decimal.Decimal
	var r Revenue

	for _, e := range es {
		key := monthOf(e.Transaction.Date)
		credit := e.Transaction.Credit
		monthly[key] = monthly[key].Add(credit)
		if credit.IsPositive() {
			credits = append(credits, credit)
			r.TotalCredits = r.TotalCredits.Add(credit)
		}
	}
	if len(monthly) == 0 {
		return r
	}

	first := true
	for _, total := range monthly {
		if first || total.LessThan(r.LowestMonthCredits) {
			r.LowestMonthCredits = total
		}
		if first || total.GreaterThan(r.HighestMonthCredits) {
			r.HighestMonthCredits = total
		}
		first = false
	}

	r.AvgMonthlyCredits = r.TotalCredits.Div(decimal.NewFromInt(int64(len(monthly))))
	if !r.AvgMonthlyCredits.IsZero() {
		spread := r.HighestMonthCredits.Sub(r.LowestMonthCredits)
		r.VolatilityPct = decimal.NewNullDecimal(spread.Div(r.AvgMonthlyCredits).Mul(hundred).Round(2))
	}

	if len(credits) > 0 {
		sort.Slice(credits, func(i, j int) bool { return credits[i].GreaterThan(credits[j]) })
		r.LargestSingleCredit = credits[0]
		top := credits
		if len(top) > 5 {
			top = top[:5]
		}
		topSum := decimal.Sum(top[0], top[1:]...)
		r.ConcentrationPct = decimal.NewNullDecimal(topSum.Div(r.TotalCredits).Mul(hundred).Round(2))
	}
	r.AvgMonthlyCredits = r.AvgMonthlyCredits.Round(2)
	return r
}
