package common

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// BalanceDelta infers the movement between two running balances. A drop is
// a debit, anything else a credit.
func BalanceDelta(previous, balance decimal.Decimal) (debit, credit decimal.Decimal) {
	diff := balance.Sub(previous)
	if diff.IsNegative() {
		return diff.Abs(), decimal.Zero
	}
	return decimal.Zero, diff
}

// Signed splits a signed amount into its debit or credit side.
func Signed(amount decimal.Decimal) (debit, credit decimal.Decimal) {
	if amount.IsNegative() {
		return amount.Abs(), decimal.Zero
	}
	return decimal.Zero, amount
}

// Lines flattens pages into trimmed lines, preserving document order.
func Lines(pages []string) []string {
	var lines []string
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			lines = append(lines, strings.TrimSpace(line))
		}
	}
	return lines
}

// FullText joins pages the same way they are scanned, one trailing newline per page.
func FullText(pages []string) string {
	var b strings.Builder
	for _, page := range pages {
		if page == "" {
			continue
		}
		b.WriteString(page)
		b.WriteByte('\n')
	}
	return b.String()
}

// FirstPage returns the first page, or the empty string.
func FirstPage(pages []string) string {
	if len(pages) == 0 {
		return ""
	}
	return pages[0]
}

// DescriptionBefore returns rest trimmed up to the first match of amount.
func DescriptionBefore(rest string, amount *regexp.Regexp) string {
	rest = strings.TrimSpace(rest)
	if loc := amount.FindStringIndex(rest); loc != nil {
		return strings.TrimSpace(rest[:loc[0]])
	}
	return rest
}

// ContainsAll reports whether line contains every part.
func ContainsAll(line string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(line, p) {
			return false
		}
	}
	return true
}

// ContainsAny reports whether line contains at least one part.
func ContainsAny(line string, parts ...string) bool {
	for _, p := range parts {
		if strings.Contains(line, p) {
			return true
		}
	}
	return false
}

// Submatch returns the trimmed first capture group of re in text.
func Submatch(re *regexp.Regexp, text string) string {
	if re == nil {
		return ""
	}
	if m := re.FindStringSubmatch(text); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}
