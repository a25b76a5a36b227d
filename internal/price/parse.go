package price

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// amountPattern matches an integer part with an optional one or two digit fraction.
var amountPattern = regexp.MustCompile(`\d+(?:\.\d{1,2})?`)

// Parse extracts the leading numeric amount from a display price such as
// "$1,234.56". Thousands separators are dropped. Text without a number
// yields an invalid NullDecimal; Parse never fails.
func Parse(raw string) decimal.NullDecimal {
	cleaned := strings.ReplaceAll(raw, ",", "")

	m := amountPattern.FindString(cleaned)
	if m == "" {
		return decimal.NullDecimal{}
	}

	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

// LooksLikePrice reports whether text is currency-shaped: it starts with a
// currency symbol, optionally preceded by a short letter prefix (US$, R$),
// and contains at least one digit.
func LooksLikePrice(text string) bool {
	s := strings.TrimSpace(text)

	letters := 0
	for i, r := range s {
		switch {
		case unicode.Is(unicode.Sc, r):
			return strings.IndexFunc(s[i:], unicode.IsDigit) >= 0
		case unicode.IsLetter(r) && letters < 3:
			letters++
		default:
			return false
		}
	}
	return false
}
