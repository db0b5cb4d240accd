package pricing

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type style struct {
	locale   language.Tag
	symbol   string
	trailing bool
}

var styles = map[Currency]style{
	DZD: {locale: language.MustParse("ar-DZ"), symbol: "د.ج", trailing: true},
	EUR: {locale: language.MustParse("fr-FR"), symbol: "€"},
	USD: {locale: language.MustParse("en-US"), symbol: "$"},
}

// Format renders the field of a that matches c. It depends only on its arguments.
func Format(a Amount, c Currency) (string, error) {
	minor, err := a.Get(c)
	if err != nil {
		return "", err
	}
	return FormatMinor(c, minor)
}

func FormatMinor(c Currency, minor int64) (string, error) {
	st, ok := styles[c]
	if !ok {
		return "", ErrUnknownCurrency
	}
	exp := Exponent(c)
	p := message.NewPrinter(st.locale)

	var digits string
	if exp == 0 {
		digits = p.Sprint(number.Decimal(minor))
	} else {
		digits = splitDigits(p, minor, int(exp))
	}

	if st.trailing {
		return digits + " " + st.symbol, nil
	}
	return st.symbol + digits, nil
}

// splitDigits prints the integer part and the fraction separately so int64
// amounts stay exact; only the integer part goes through grouping.
func splitDigits(p *message.Printer, minor int64, exp int) string {
	sign := ""
	abs := uint64(minor)
	if minor < 0 {
		sign = "-"
		abs = -abs
	}
	unit := uint64(1)
	for range exp {
		unit *= 10
	}

	zero := p.Sprint(number.Decimal(0))
	zeroScaled := p.Sprint(number.Decimal(0, number.Scale(exp)))
	sep := zeroScaled[len(zero) : len(zeroScaled)-exp*len(zero)]

	return sign + p.Sprint(number.Decimal(abs/unit)) + sep + fmt.Sprintf("%0*d", exp, abs%unit)
}
