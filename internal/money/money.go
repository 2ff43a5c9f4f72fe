// Package money formats and parses whole-dollar amounts.
package money

import (
	"strconv"
	"strings"
)

// FormatDollars renders a non-negative dollar amount as "$" plus a
// comma-grouped integer. The domain tracks whole dollars only.
func FormatDollars(amount int) string {
	return "$" + groupThousands(amount)
}

func groupThousands(n int) string {
	if n < 0 {
		return "-" + groupThousands(-n)
	}

	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// ParseDollarInput extracts a non-negative dollar amount from free-form
// input. Every non-digit character is stripped before parsing, so "$12.50"
// reads as 1250. Empty input, input without digits, and overflow all map
// to 0; this is a total function and never fails.
func ParseDollarInput(raw string) int {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}
