package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDefaultNaira(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{name: "zero", amount: 0, want: "₦0"},
		{name: "small", amount: 500, want: "₦500"},
		{name: "thousands grouped", amount: 1000, want: "₦1,000"},
		{name: "millions grouped", amount: 1234567, want: "₦1,234,567"},
		{name: "negative keeps sign", amount: -500, want: "-₦500"},
		{name: "negative grouped", amount: -25000, want: "-₦25,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount))
		})
	}
}

func TestFormatMinInt64DoesNotOverflow(t *testing.T) {
	got := Format(math.MinInt64)
	assert.Equal(t, "-₦9,223,372,036,854,775,808", got)
}

func TestNewFormatterUnknownCurrencyUsesCode(t *testing.T) {
	f, err := NewFormatter("xyz", "en")
	require.NoError(t, err)

	assert.Equal(t, "XYZ", f.Currency())
	assert.Equal(t, "XYZ 1,000", f.Format(1000))
}

func TestNewFormatterRejectsBadLocale(t *testing.T) {
	_, err := NewFormatter("NGN", "not a locale!")
	assert.Error(t, err)
}
