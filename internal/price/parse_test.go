package price

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		raw   string
		want  string
		valid bool
	}{
		{"$1,234.56", "1234.56", true},
		{"1234.56", "1234.56", true},
		{"$19", "19", true},
		{"$19.9", "19.9", true},
		{"€ 7,50", "750", true},
		{"US$12.345", "12.34", true},
		{"  $0.99 ", "0.99", true},
		{"", "", false},
		{"Price not found", "", false},
		{"$", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := Parse(tt.raw)
			require.Equal(t, tt.valid, got.Valid)
			if tt.valid {
				assert.True(t, decimal.RequireFromString(tt.want).Equal(got.Decimal), "got %s", got.Decimal)
			}
		})
	}
}

func TestParse_Idempotent(t *testing.T) {
	for _, v := range []string{"0", "1", "19.99", "19.9", "1234.56", "100000"} {
		d := decimal.RequireFromString(v)

		got := Parse("$" + d.String())
		require.True(t, got.Valid, v)
		assert.True(t, d.Equal(got.Decimal), "value %s reparsed as %s", d, got.Decimal)

		again := Parse("$" + got.Decimal.String())
		assert.True(t, got.Decimal.Equal(again.Decimal))
	}
}

func TestLooksLikePrice(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"$19.99", true},
		{" $19.99 ", true},
		{"€12", true},
		{"£3.50", true},
		{"US$12.00", true},
		{"CA$5", true},
		{"R$ 10,00", true},
		{"19.99", false},
		{"$", false},
		{"Currently unavailable.", false},
		{"ABCD$1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikePrice(tt.text))
		})
	}
}
