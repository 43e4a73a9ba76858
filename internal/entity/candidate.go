package entity

import "github.com/thepesz/dueasy-sub004/constants"

// Span marks the byte range in the source OCR text a candidate was read from.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FieldCandidate is one possible value for a field. Candidates are immutable
// after construction; the slice they live in is ordered by descending
// confidence and index 0 is the accepted value.
type FieldCandidate struct {
	DisplayValue string             `json:"display_value"`
	Confidence   float64            `json:"confidence"`
	Method       constants.Provider `json:"method"`
	Span         *Span              `json:"span,omitempty"`
}

// NewFieldCandidate builds a candidate with the confidence clamped to [0,1].
func NewFieldCandidate(value string, confidence float64, method constants.Provider) FieldCandidate {
	return FieldCandidate{
		DisplayValue: value,
		Confidence:   ClampConfidence(confidence),
		Method:       method,
	}
}

// WithSpan returns a copy of the candidate annotated with its evidence span.
func (c FieldCandidate) WithSpan(start, end int) FieldCandidate {
	c.Span = &Span{Start: start, End: end}
	return c
}

// ClampConfidence bounds a confidence score to [0,1].
func ClampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
