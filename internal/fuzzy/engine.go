// Package fuzzy classifies a newly extracted amount against the amount range
// previously observed for a recurring payment template.
package fuzzy

import (
	"github.com/shopspring/decimal"

	"github.com/thepesz/dueasy-sub004/internal/entity"
)

// MatchCategory is the three-way outcome of amount classification.
type MatchCategory string

const (
	// AutoMatch: the new amount clearly belongs to the template.
	AutoMatch MatchCategory = "AUTO_MATCH"
	// FuzzyZone: neither clearly the same payment nor clearly a different
	// one; a human has to confirm.
	FuzzyZone MatchCategory = "FUZZY_ZONE"
	// AutoCreateNew: the difference is large enough to spawn a new template.
	AutoCreateNew MatchCategory = "AUTO_CREATE_NEW"
)

// Band boundaries; each band is inclusive on its lower bound.
const (
	fuzzyZoneLower = 0.30
	createNewLower = 0.50
)

// PercentDifference relates newAmount to the template's observed range.
// An incomplete range or a zero midpoint yields 1.0, the maximal difference,
// forcing a conservative outcome. An amount inside the range is 0.0;
// otherwise the distance from the range midpoint, relative to the midpoint.
func PercentDifference(newAmount decimal.Decimal, r entity.AmountRange) float64 {
	mid, ok := r.Midpoint()
	if !ok || mid.IsZero() {
		return 1.0
	}
	if r.Contains(newAmount) {
		return 0.0
	}
	diff, _ := newAmount.Sub(mid).Abs().Div(mid.Abs()).Float64()
	return diff
}

// Categorize maps a percent difference onto a match category.
func Categorize(percentDifference float64) MatchCategory {
	switch {
	case percentDifference < fuzzyZoneLower:
		return AutoMatch
	case percentDifference < createNewLower:
		return FuzzyZone
	default:
		return AutoCreateNew
	}
}

// Classify is PercentDifference followed by Categorize.
func Classify(newAmount decimal.Decimal, r entity.AmountRange) MatchCategory {
	return Categorize(PercentDifference(newAmount, r))
}
