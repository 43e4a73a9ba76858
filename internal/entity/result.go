package entity

import (
	"sort"

	"github.com/thepesz/dueasy-sub004/constants"
)

// Field holds the ranked candidate list for one document field. The accepted
// value, when any candidate exists, is the candidate at index 0.
type Field struct {
	Candidates []FieldCandidate `json:"candidates,omitempty"`
}

// Accepted returns the top-ranked candidate.
func (f Field) Accepted() (FieldCandidate, bool) {
	if len(f.Candidates) == 0 {
		return FieldCandidate{}, false
	}
	return f.Candidates[0], true
}

// Value returns the accepted display value, or "" when the field is absent.
func (f Field) Value() string {
	if c, ok := f.Accepted(); ok {
		return c.DisplayValue
	}
	return ""
}

// Confidence returns the accepted candidate's confidence, or 0 when absent.
func (f Field) Confidence() float64 {
	if c, ok := f.Accepted(); ok {
		return c.Confidence
	}
	return 0
}

// Present reports whether any candidate was extracted for the field.
func (f Field) Present() bool { return len(f.Candidates) > 0 }

// Sort orders candidates by descending confidence, keeping the relative order
// of equal-confidence candidates stable.
func (f *Field) Sort() {
	sort.SliceStable(f.Candidates, func(i, j int) bool {
		return f.Candidates[i].Confidence > f.Candidates[j].Confidence
	})
}

// DocumentAnalysisResult is the complete outcome of one extraction attempt.
// A remote-escalated result replaces a local one wholesale; results are never
// merged field by field.
type DocumentAnalysisResult struct {
	VendorName     Field `json:"vendor_name"`
	VendorAddress  Field `json:"vendor_address"`
	TaxID          Field `json:"tax_id"`
	Amount         Field `json:"amount"`
	Currency       Field `json:"currency"`
	IssueDate      Field `json:"issue_date"`
	DueDate        Field `json:"due_date"`
	DocumentNumber Field `json:"document_number"`
	BankAccount    Field `json:"bank_account"`

	OverallConfidence float64            `json:"overall_confidence"`
	Provider          constants.Provider `json:"provider"`
	SchemaVersion     int                `json:"schema_version"`

	// Escalation is set by the router when a remote upgrade was attempted;
	// it is nil on the local fast path.
	Escalation *Escalation `json:"escalation,omitempty"`
}

// NewDocumentAnalysisResult returns an empty result for the given provider.
// All fields absent and zero confidence is the representation of an
// unparseable document, not an error.
func NewDocumentAnalysisResult(provider constants.Provider) *DocumentAnalysisResult {
	return &DocumentAnalysisResult{
		Provider:      provider,
		SchemaVersion: constants.ResultSchemaVersion,
	}
}

// FieldByName returns the candidate list for a field key, used by exports.
func (r *DocumentAnalysisResult) FieldByName(name constants.FieldName) Field {
	switch name {
	case constants.FieldVendorName:
		return r.VendorName
	case constants.FieldVendorAddress:
		return r.VendorAddress
	case constants.FieldTaxID:
		return r.TaxID
	case constants.FieldAmount:
		return r.Amount
	case constants.FieldCurrency:
		return r.Currency
	case constants.FieldIssueDate:
		return r.IssueDate
	case constants.FieldDueDate:
		return r.DueDate
	case constants.FieldDocumentNumber:
		return r.DocumentNumber
	case constants.FieldBankAccount:
		return r.BankAccount
	}
	return Field{}
}
