package money_test

import (
	"testing"

	dec "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"transport-backend/internal/money"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain integer", "100", "100"},
		{"fractional", "12.5", "12.5"},
		{"leading whitespace", "  42.75", "42.75"},
		{"empty", "", "0"},
		{"whitespace only", "   ", "0"},
		{"non-numeric", "abc", "0"},
		{"trailing decimal point", "12.", "12"},
		{"negative", "-50", "-50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.Parse(tt.input)
			assert.True(t, got.Equal(dec.RequireFromString(tt.want)),
				"Parse(%q) = %s, want %s", tt.input, got, tt.want)
		})
	}
}

func TestItemAmount(t *testing.T) {
	tests := []struct {
		name     string
		qty      string
		rate     string
		expected string
	}{
		{"whole numbers", "100", "12.5", "1250.00"},
		{"fractional kilometers", "10.5", "14", "147.00"},
		{"rounds to paise", "3", "0.333", "1.00"},
		{"empty quantity", "", "12.5", "0.00"},
		{"malformed rate", "100", "x", "0.00"},
		{"both empty", "", "", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := money.ItemAmount(tt.qty, tt.rate)
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestSumAccumulatesUnrounded(t *testing.T) {
	// Per-item rounding before summing would give 0.33+0.33+0.33 = 0.99
	// here; the sum keeps full precision and rounds once.
	values := []dec.Decimal{
		dec.RequireFromString("0.333"),
		dec.RequireFromString("0.333"),
		dec.RequireFromString("0.334"),
	}
	assert.Equal(t, "1.00", money.Sum(values).Round(2).StringFixed(2))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "1550.00", money.Format(dec.RequireFromString("1550")))
	assert.Equal(t, "0.50", money.Format(dec.RequireFromString("0.5")))
}

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0.00"},
		{"999", "999.00"},
		{"1550", "1,550.00"},
		{"123456.78", "1,23,456.78"},
		{"12345678.9", "1,23,45,678.90"},
		{"-1550", "-1,550.00"},
	}

	for _, tt := range tests {
		got := money.FormatDisplay(dec.RequireFromString(tt.input))
		assert.Equal(t, tt.want, got)
	}
}
