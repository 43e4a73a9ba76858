package constants

// FieldName identifies one extractable field of a financial document.
type FieldName string

// Stable values (used as column keys in exports and as JSON keys on the wire).
const (
	FieldVendorName     FieldName = "vendor_name"
	FieldVendorAddress  FieldName = "vendor_address"
	FieldTaxID          FieldName = "tax_id"
	FieldAmount         FieldName = "amount"
	FieldCurrency       FieldName = "currency"
	FieldIssueDate      FieldName = "issue_date"
	FieldDueDate        FieldName = "due_date"
	FieldDocumentNumber FieldName = "document_number"
	FieldBankAccount    FieldName = "bank_account"
)

// AllFields lists every field in presentation order.
var AllFields = []FieldName{
	FieldVendorName,
	FieldVendorAddress,
	FieldTaxID,
	FieldAmount,
	FieldCurrency,
	FieldIssueDate,
	FieldDueDate,
	FieldDocumentNumber,
	FieldBankAccount,
}
