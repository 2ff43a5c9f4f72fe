package money

import "testing"

func TestFormatDollars(t *testing.T) {
	cases := map[int]string{
		0:       "$0",
		5:       "$5",
		400:     "$400",
		1000:    "$1,000",
		12500:   "$12,500",
		1234567: "$1,234,567",
	}
	for amount, want := range cases {
		if got := FormatDollars(amount); got != want {
			t.Errorf("FormatDollars(%d) = %q, want %q", amount, got, want)
		}
	}
}

func TestParseDollarInput(t *testing.T) {
	cases := map[string]int{
		"":          0,
		"abc":       0,
		"$":         0,
		"400":       400,
		"$400":      400,
		"$12.50":    1250, // decimal point is stripped, not interpreted
		"1,000":     1000,
		"  35  ":    35,
		"-20":       20, // sign is not a digit
		"99999999999999999999": 0, // overflow falls back to 0
	}
	for raw, want := range cases {
		if got := ParseDollarInput(raw); got != want {
			t.Errorf("ParseDollarInput(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 42, 400, 999, 1000, 65536, 1234567} {
		if got := ParseDollarInput(FormatDollars(n)); got != n {
			t.Errorf("round trip %d: got %d", n, got)
		}
	}
}
