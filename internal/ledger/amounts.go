package ledger

import "github.com/govalues/decimal"

// Arithmetic helpers over decimal amounts. Overflow needs more than 19
// significant digits, far outside personal-finance magnitudes; when it does
// happen the left operand is returned unchanged.

var hundred = decimal.MustNew(100, 0)

// Add returns a+b.
func Add(a, b decimal.Decimal) decimal.Decimal {
    if v, err := a.Add(b); err == nil { return v }
    return a
}

// Sub returns a-b.
func Sub(a, b decimal.Decimal) decimal.Decimal {
    if v, err := a.Sub(b); err == nil { return v }
    return a
}

// Percent returns part/total*100 rounded to two decimal places, or zero when
// total is not positive.
func Percent(part, total decimal.Decimal) decimal.Decimal {
    if total.Sign() <= 0 { return decimal.Zero }
    q, err := part.Quo(total)
    if err != nil { return decimal.Zero }
    p, err := q.Mul(hundred)
    if err != nil { return decimal.Zero }
    return p.Round(2)
}

// Positive reports whether d > 0.
func Positive(d decimal.Decimal) bool { return d.Sign() > 0 }
