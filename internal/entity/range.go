package entity

import "github.com/shopspring/decimal"

// AmountRange is the historically observed amount band of a recurring
// template. Min == Max when only one observation exists. Nil bounds mean the
// template has no usable history yet.
type AmountRange struct {
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`
}

// NewAmountRange builds a single-observation range.
func NewAmountRange(amount decimal.Decimal) AmountRange {
	lo, hi := amount, amount
	return AmountRange{Min: &lo, Max: &hi}
}

// Complete reports whether both bounds are known.
func (r AmountRange) Complete() bool { return r.Min != nil && r.Max != nil }

// Contains reports whether amount falls inside the closed interval.
func (r AmountRange) Contains(amount decimal.Decimal) bool {
	if !r.Complete() {
		return false
	}
	return amount.GreaterThanOrEqual(*r.Min) && amount.LessThanOrEqual(*r.Max)
}

// Midpoint returns (min+max)/2, false when either bound is absent.
func (r AmountRange) Midpoint() (decimal.Decimal, bool) {
	if !r.Complete() {
		return decimal.Zero, false
	}
	return r.Min.Add(*r.Max).Div(decimal.NewFromInt(2)), true
}

// Widen extends the range so that it covers amount.
func (r AmountRange) Widen(amount decimal.Decimal) AmountRange {
	if !r.Complete() {
		return NewAmountRange(amount)
	}
	out := AmountRange{Min: r.Min, Max: r.Max}
	if amount.LessThan(*r.Min) {
		a := amount
		out.Min = &a
	}
	if amount.GreaterThan(*r.Max) {
		a := amount
		out.Max = &a
	}
	return out
}
