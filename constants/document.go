package constants

import "strings"

// DocumentType is the canonical kind of a scanned financial document.
type DocumentType string

// Stable values (sent to the remote service as-is).
const (
	DocTypeInvoice DocumentType = "INVOICE"
	DocTypeReceipt DocumentType = "RECEIPT"
	DocTypeBill    DocumentType = "BILL"
	DocTypeUnknown DocumentType = "UNKNOWN"
)

var allDocumentTypes = []DocumentType{
	DocTypeInvoice,
	DocTypeReceipt,
	DocTypeBill,
	DocTypeUnknown,
}

// CanonicalDocumentType maps free-form input to a known document type.
func CanonicalDocumentType(input string) DocumentType {
	normalized := strings.ToUpper(strings.TrimSpace(input))
	for _, dt := range allDocumentTypes {
		if normalized == string(dt) {
			return dt
		}
	}
	return DocTypeUnknown
}
