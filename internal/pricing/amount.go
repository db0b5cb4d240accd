package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	DZD Currency = "DZD"
	EUR Currency = "EUR"
	USD Currency = "USD"
)

const DefaultCurrency = DZD

var Supported = []Currency{DZD, EUR, USD}

var (
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidAmount   = errors.New("invalid amount")
)

// ParseCurrency принимает код валюты в любом регистре.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case DZD, EUR, USD:
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
}

// Exponent is the number of minor-unit digits stored for the currency.
func Exponent(c Currency) int32 {
	if c == DZD {
		return 0
	}
	return 2
}

// Amount holds one fixed price per supported currency, in minor units.
// There is no conversion between the fields.
type Amount struct {
	DZD int64 `json:"DZD"`
	EUR int64 `json:"EUR"`
	USD int64 `json:"USD"`
}

func (a Amount) Get(c Currency) (int64, error) {
	switch c {
	case DZD:
		return a.DZD, nil
	case EUR:
		return a.EUR, nil
	case USD:
		return a.USD, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCurrency, string(c))
}

func (a Amount) Add(b Amount) Amount {
	return Amount{DZD: a.DZD + b.DZD, EUR: a.EUR + b.EUR, USD: a.USD + b.USD}
}

func (a Amount) Mul(n int64) Amount {
	return Amount{DZD: a.DZD * n, EUR: a.EUR * n, USD: a.USD * n}
}

func (a Amount) IsNegative() bool {
	return a.DZD < 0 || a.EUR < 0 || a.USD < 0
}

func (a Amount) IsZero() bool { return a == Amount{} }

// ShippingFee is the flat delivery fee added once per order.
var ShippingFee = Amount{DZD: 500, EUR: 500, USD: 600}

// FromMajor converts a decimal string in major units ("99", "5.5") to minor units.
// Values with more fraction digits than the currency keeps are rejected.
func FromMajor(c Currency, s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}
	shifted := d.Shift(Exponent(c))
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("%w: too many fraction digits for %s", ErrInvalidAmount, c)
	}
	return shifted.IntPart(), nil
}

// ToMajor returns the amount in major units.
func ToMajor(c Currency, minor int64) decimal.Decimal {
	return decimal.New(minor, -Exponent(c))
}

// MajorAmount is the admin-facing form of Amount: one decimal string per currency.
type MajorAmount struct {
	DZD string `json:"DZD" binding:"required"`
	EUR string `json:"EUR" binding:"required"`
	USD string `json:"USD" binding:"required"`
}

func (m MajorAmount) Amount() (Amount, error) {
	var (
		out Amount
		err error
	)
	if out.DZD, err = FromMajor(DZD, m.DZD); err != nil {
		return Amount{}, fmt.Errorf("DZD: %w", err)
	}
	if out.EUR, err = FromMajor(EUR, m.EUR); err != nil {
		return Amount{}, fmt.Errorf("EUR: %w", err)
	}
	if out.USD, err = FromMajor(USD, m.USD); err != nil {
		return Amount{}, fmt.Errorf("USD: %w", err)
	}
	if out.IsNegative() {
		return Amount{}, fmt.Errorf("%w: negative price", ErrInvalidAmount)
	}
	return out, nil
}

// Major renders a back into admin-facing major-unit strings.
func Major(a Amount) MajorAmount {
	return MajorAmount{
		DZD: ToMajor(DZD, a.DZD).String(),
		EUR: ToMajor(EUR, a.EUR).StringFixed(2),
		USD: ToMajor(USD, a.USD).StringFixed(2),
	}
}
