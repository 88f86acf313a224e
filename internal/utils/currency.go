package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount with two decimal places and
// thousands separators, e.g. 3600 -> "3,600.00".
func FormatAmount(amount float64) string {
	s := decimal.NewFromFloat(amount).StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + "." + parts[1]
	if neg {
		out = "-" + out
	}
	return out
}

// FormatINR renders an amount as rupees, e.g. "₹3,600.00"
func FormatINR(amount float64) string {
	return "₹" + FormatAmount(amount)
}
