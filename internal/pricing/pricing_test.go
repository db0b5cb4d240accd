package pricing_test

import (
	"strings"
	"testing"

	"storefront-service/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_USD(t *testing.T) {
	a := pricing.Amount{DZD: 15000, EUR: 9900, USD: 10900}

	s, err := pricing.Format(a, pricing.USD)
	require.NoError(t, err)
	assert.Equal(t, "$109.00", s)

	s, err = pricing.FormatMinor(pricing.USD, 123450)
	require.NoError(t, err)
	assert.Equal(t, "$1,234.50", s)
}

func TestFormat_DZDTrailingSymbol(t *testing.T) {
	a := pricing.Amount{DZD: 15000, EUR: 9900, USD: 10900}

	s, err := pricing.Format(a, pricing.DZD)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(s, " د.ج"), "got %q", s)
	assert.False(t, strings.HasPrefix(s, "د.ج"))
}

func TestFormat_EURLeadingSymbol(t *testing.T) {
	s, err := pricing.Format(pricing.Amount{EUR: 9900}, pricing.EUR)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s, "€"), "got %q", s)
	assert.True(t, strings.HasSuffix(s, ",00"), "got %q", s)
}

func TestFormat_CurrencySwitchLeavesRecord(t *testing.T) {
	a := pricing.Amount{DZD: 15000, EUR: 9900, USD: 10900}
	before := a

	dzd, err := pricing.Format(a, pricing.DZD)
	require.NoError(t, err)
	usd, err := pricing.Format(a, pricing.USD)
	require.NoError(t, err)

	assert.NotEqual(t, dzd, usd)
	assert.Equal(t, before, a)

	again, err := pricing.Format(a, pricing.DZD)
	require.NoError(t, err)
	assert.Equal(t, dzd, again)
}

func TestFormat_LargeAmountsExact(t *testing.T) {
	s, err := pricing.FormatMinor(pricing.USD, 900719925474099399)
	require.NoError(t, err)
	assert.Equal(t, "$9,007,199,254,740,993.99", s)

	s, err = pricing.FormatMinor(pricing.EUR, 900719925474099399)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(s, "993,99"), "got %q", s)

	s, err = pricing.FormatMinor(pricing.USD, -50)
	require.NoError(t, err)
	assert.Equal(t, "$-0.50", s)
}

func TestFormat_UnknownCurrency(t *testing.T) {
	_, err := pricing.Format(pricing.Amount{}, pricing.Currency("GBP"))
	require.ErrorIs(t, err, pricing.ErrUnknownCurrency)
}

func TestAmountArithmetic(t *testing.T) {
	a := pricing.Amount{DZD: 15000, EUR: 9900, USD: 10900}
	b := pricing.Amount{DZD: 8000, EUR: 5300, USD: 5900}

	sum := a.Add(b.Mul(2))
	assert.Equal(t, pricing.Amount{DZD: 31000, EUR: 20500, USD: 22700}, sum)
	assert.Equal(t, int64(31500), sum.Add(pricing.ShippingFee).DZD)
}

func TestFromMajor(t *testing.T) {
	cases := []struct {
		cur  pricing.Currency
		in   string
		want int64
		err  bool
	}{
		{pricing.DZD, "15000", 15000, false},
		{pricing.EUR, "99", 9900, false},
		{pricing.USD, "5.5", 550, false},
		{pricing.USD, "1.005", 0, true},
		{pricing.DZD, "1.5", 0, true},
		{pricing.EUR, "abc", 0, true},
	}
	for _, tc := range cases {
		got, err := pricing.FromMajor(tc.cur, tc.in)
		if tc.err {
			assert.ErrorIs(t, err, pricing.ErrInvalidAmount, "%s %s", tc.cur, tc.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "%s %s", tc.cur, tc.in)
	}
}

func TestMajorAmount(t *testing.T) {
	a, err := pricing.MajorAmount{DZD: "8000", EUR: "53", USD: "59.90"}.Amount()
	require.NoError(t, err)
	assert.Equal(t, pricing.Amount{DZD: 8000, EUR: 5300, USD: 5990}, a)

	_, err = pricing.MajorAmount{DZD: "-1", EUR: "1", USD: "1"}.Amount()
	require.ErrorIs(t, err, pricing.ErrInvalidAmount)

	m := pricing.Major(a)
	assert.Equal(t, "8000", m.DZD)
	assert.Equal(t, "53.00", m.EUR)
	assert.Equal(t, "59.90", m.USD)
}

func TestParseCurrency(t *testing.T) {
	c, err := pricing.ParseCurrency(" eur ")
	require.NoError(t, err)
	assert.Equal(t, pricing.EUR, c)

	_, err = pricing.ParseCurrency("GBP")
	require.ErrorIs(t, err, pricing.ErrUnknownCurrency)
}
