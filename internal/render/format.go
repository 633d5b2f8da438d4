// Package render turns derived views into text: pt-BR money strings with
// optional masking, Markdown documents and their terminal rendering.
package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/govalues/decimal"
	"github.com/govalues/money"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Mask replaces every amount while values are hidden.
const Mask = "••••"

// DateLayout is the day/month/year layout used in tables.
const DateLayout = "02/01/2006"

var symbols = map[string]string{
	"BRL": "R$",
	"USD": "US$",
	"EUR": "€",
	"GBP": "£",
}

// Formatter prints amounts in one currency.
type Formatter struct {
	curr    money.Currency
	visible bool
}

// NewFormatter returns a formatter for the ISO 4217 code. When visible is
// false every amount prints as Mask.
func NewFormatter(code string, visible bool) (Formatter, error) {
	curr, err := money.ParseCurr(code)
	if err != nil {
		return Formatter{}, fmt.Errorf("currency %q: %w", code, err)
	}
	return Formatter{curr: curr, visible: visible}, nil
}

// Visible reports whether amounts are printed.
func (f Formatter) Visible() bool { return f.visible }

// Symbol is the prefix printed before amounts.
func (f Formatter) Symbol() string {
	if s, ok := symbols[f.curr.Code()]; ok {
		return s
	}
	return f.curr.Code()
}

// Money formats d as "R$ 1.234,56", rounded to the currency's minor unit.
func (f Formatter) Money(d decimal.Decimal) string {
	if !f.visible {
		return f.Symbol() + " " + Mask
	}
	amt, err := money.NewAmountFromDecimal(f.curr, d)
	if err != nil {
		return f.Symbol() + " " + d.String()
	}
	units, _ := amt.RoundToCurr().MinorUnits()
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	return sign + f.Symbol() + " " + groupMinor(units, f.curr.Scale())
}

// Signed prefixes income with "+" and expenses with "-".
func (f Formatter) Signed(d decimal.Decimal, income bool) string {
	if income {
		return "+" + f.Money(d)
	}
	return "-" + f.Money(d)
}

// Percent prints p with one decimal place and a comma separator.
func Percent(p decimal.Decimal) string {
	s := p.Round(1).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return strings.Replace(s, ".", ",", 1) + "%"
}

// Date prints t as day/month/year in its own location.
func Date(t time.Time) string { return t.Format(DateLayout) }

// ptBR groups thousands with "." as Brazilian amounts are written.
var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// groupMinor renders non-negative minor units with "." thousands and ","
// decimals.
func groupMinor(units int64, scale int) string {
	if scale <= 0 {
		return ptBR.Sprintf("%d", units)
	}
	unit := int64(math.Pow10(scale))
	return ptBR.Sprintf("%d", units/unit) + "," + fmt.Sprintf("%0*d", scale, units%unit)
}
