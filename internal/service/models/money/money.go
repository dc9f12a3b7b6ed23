package money

import (
	"github.com/shopspring/decimal"
)

// Amount is an exact decimal monetary value.
type Amount = decimal.Decimal

// Zero returns a zero amount.
func Zero() Amount {
	return decimal.Zero
}

// FromInt converts an integer number of currency units to an Amount.
func FromInt(v int64) Amount {
	return decimal.NewFromInt(v)
}

// Line returns the subtotal of a cart line: unit price times quantity.
func Line(unitPrice Amount, quantity int) Amount {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// TruncInt returns the integer part of an amount, discarding fractions.
// Buyer spend counters are kept as whole units.
func TruncInt(a Amount) int64 {
	return a.IntPart()
}
