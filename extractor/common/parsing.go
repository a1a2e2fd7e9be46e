package common

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	amountNoise     = strings.NewReplacer(" ", "", ",", "", "R", "", "Cr", "")
	looseMinusRegex = regexp.MustCompile(`-\s+`)

	periodYearRegex    = regexp.MustCompile(`(?i)(?:statement\s*period|period)[:\s]*.*?(20\d{2})`)
	monthNameYearRegex = regexp.MustCompile(`(?i)(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+(20\d{2})`)
	bareYearRegex      = regexp.MustCompile(`\b(20\d{2})\b`)
)

var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March, "apr": time.April,
	"may": time.May, "jun": time.June, "jul": time.July, "aug": time.August,
	"sep": time.September, "oct": time.October, "nov": time.November, "dec": time.December,
}

// CleanAmount parses a raw amount token. Thousands separators, the rand
// glyph and a Cr marker are dropped, and a leading "-" (optionally followed
// by whitespace) makes the value negative. Unparsable input yields zero.
func CleanAmount(text string) decimal.Decimal {
	clean := strings.TrimSpace(amountNoise.Replace(text))
	clean = looseMinusRegex.ReplaceAllString(clean, "-")
	amount, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return amount
}

// ParseAmountWithCr returns the absolute value of a token and whether it
// carries a Cr marker. Cr and Dr markers are matched in any case.
func ParseAmountWithCr(text string) (decimal.Decimal, bool) {
	upper := strings.ToUpper(strings.TrimSpace(text))
	isCredit := strings.Contains(upper, "CR")
	clean := strings.NewReplacer("CR", "", "DR", "", ",", "").Replace(upper)
	amount, err := decimal.NewFromString(strings.TrimSpace(clean))
	if err != nil {
		return decimal.Zero, false
	}
	return amount.Abs(), isCredit
}

// SignedAmount strips spaces, the rand glyph and any minus signs from a
// token and reports whether it was negative.
func SignedAmount(text string) (decimal.Decimal, bool) {
	clean := strings.TrimSpace(strings.NewReplacer("R", "", " ", "", ",", "").Replace(text))
	negative := strings.HasPrefix(clean, "-")
	amount, err := decimal.NewFromString(strings.ReplaceAll(clean, "-", ""))
	if err != nil {
		return decimal.Zero, negative
	}
	return amount, negative
}

// MonthNumber looks up a three letter month abbreviation, case-insensitively.
func MonthNumber(abbr string) (time.Month, bool) {
	m, ok := months[strings.ToLower(abbr)]
	return m, ok
}

// NewDate validates a calendar day. A date such as 31/02 is rejected.
func NewDate(year int, month time.Month, day int) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// DateDMY parses a day-first numeric date separated by sep, e.g. 1/2/2024.
func DateDMY(value, sep string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(value), sep)
	if len(parts) != 3 {
		return time.Time{}, false
	}
	return numericDate(parts[2], parts[1], parts[0])
}

// DateYMD parses a year-first numeric date separated by sep, e.g. 2024/02/01.
func DateYMD(value, sep string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(value), sep)
	if len(parts) != 3 {
		return time.Time{}, false
	}
	return numericDate(parts[0], parts[1], parts[2])
}

// DateDayMonth parses "day month-abbreviation year" components. Two digit
// years are promoted to 20YY.
func DateDayMonth(day, month, year string) (time.Time, bool) {
	m, ok := MonthNumber(month)
	if !ok {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}
	y, ok := fullYear(year)
	if !ok {
		return time.Time{}, false
	}
	return NewDate(y, m, d)
}

// DateDayMonthText parses a single "1 Feb 2024" token.
func DateDayMonthText(value string) (time.Time, bool) {
	fields := strings.Fields(value)
	if len(fields) != 3 {
		return time.Time{}, false
	}
	return DateDayMonth(fields[0], fields[1], fields[2])
}

// DateMonthDay parses a "Feb 1, 2024" token.
func DateMonthDay(value string) (time.Time, bool) {
	fields := strings.Fields(strings.ReplaceAll(value, ",", " "))
	if len(fields) != 3 {
		return time.Time{}, false
	}
	return DateDayMonth(fields[1], fields[0], fields[2])
}

// YearFromText recovers the statement year from document text. The lookups
// run in a fixed order: a statement period label, a full month name, any
// bare 20xx token, and finally the year of now.
func YearFromText(text string, now time.Time) int {
	for _, re := range []*regexp.Regexp{periodYearRegex, monthNameYearRegex, bareYearRegex} {
		if m := re.FindStringSubmatch(text); m != nil {
			if y, err := strconv.Atoi(m[1]); err == nil {
				return y
			}
		}
	}
	return now.Year()
}

func numericDate(year, month, day string) (time.Time, bool) {
	y, ok := fullYear(year)
	if !ok {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}
	return NewDate(y, time.Month(m), d)
}

func fullYear(year string) (int, bool) {
	y, err := strconv.Atoi(strings.TrimSpace(year))
	if err != nil {
		return 0, false
	}
	switch len(strings.TrimSpace(year)) {
	case 2:
		return 2000 + y, true
	case 4:
		return y, true
	}
	return 0, false
}
