package entity

import "github.com/shopspring/decimal"

// AmountLabel classifies the wording found near a detected amount.
type AmountLabel int

const (
	// AmountUnlabeled means no recognized keyword sits near the amount.
	AmountUnlabeled AmountLabel = iota
	// AmountTotal covers subtotal / gross total / net total wording.
	AmountTotal
	// AmountDue covers "amount due" wording; these outrank everything else.
	AmountDue
)

// AmountCandidate is one monetary value detected in the text.
type AmountCandidate struct {
	Value      decimal.Decimal `json:"value"`
	Raw        string          `json:"raw"`
	Offset     int             `json:"offset"`
	Currency   string          `json:"currency,omitempty"`
	Label      AmountLabel     `json:"label"`
	Confidence float64         `json:"confidence"`
}
