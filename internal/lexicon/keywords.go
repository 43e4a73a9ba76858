package lexicon

// KeywordClass groups the phrases that label a value in a document.
type KeywordClass int

const (
	// KeywordAmountDue labels the final payable amount ("do zapłaty").
	KeywordAmountDue KeywordClass = iota
	// KeywordAmountTotal labels subtotals and gross/net totals.
	KeywordAmountTotal
	// KeywordDueDate labels the payment deadline ("termin płatności").
	KeywordDueDate
	// KeywordIssueDate labels the issue date ("data wystawienia").
	KeywordIssueDate
	// KeywordDeduction labels discounts, advances and other reductions.
	KeywordDeduction
	// KeywordDocumentNumber labels the invoice/document number.
	KeywordDocumentNumber
)

// Native spellings only; folded variants are derived on access.
var keywordTable = map[string]map[KeywordClass][]string{
	"pl": {
		KeywordAmountDue:      {"do zapłaty", "razem do zapłaty", "kwota do zapłaty", "pozostało do zapłaty", "należność", "zapłacono"},
		KeywordAmountTotal:    {"suma", "razem", "wartość brutto", "brutto", "netto", "podsumowanie", "wartość"},
		KeywordDueDate:        {"termin płatności", "termin zapłaty", "płatne do", "zapłać do", "data płatności"},
		KeywordIssueDate:      {"data wystawienia", "wystawiono", "data sprzedaży", "wystawiona dnia"},
		KeywordDeduction:      {"rabat", "upust", "zaliczka", "potrącenie", "zniżka"},
		KeywordDocumentNumber: {"faktura nr", "faktura vat nr", "nr faktury", "numer faktury", "nr dokumentu", "paragon nr"},
	},
	"en": {
		KeywordAmountDue:      {"amount due", "total due", "balance due", "amount payable", "to pay", "please pay"},
		KeywordAmountTotal:    {"subtotal", "sub-total", "total", "gross total", "net total", "grand total", "sum"},
		KeywordDueDate:        {"due date", "payment due", "pay by", "payable by", "payment date"},
		KeywordIssueDate:      {"invoice date", "issue date", "date of issue", "issued", "date"},
		KeywordDeduction:      {"discount", "deduction", "advance", "prepaid", "credit"},
		KeywordDocumentNumber: {"invoice no", "invoice number", "invoice #", "document no", "receipt no", "reference no"},
	},
	"de": {
		KeywordAmountDue:      {"zu zahlen", "zahlbetrag", "offener betrag", "zahlung fällig"},
		KeywordAmountTotal:    {"summe", "gesamt", "zwischensumme", "gesamtbetrag", "bruttobetrag", "nettobetrag"},
		KeywordDueDate:        {"fällig am", "zahlungsziel", "zahlbar bis", "fälligkeitsdatum"},
		KeywordIssueDate:      {"rechnungsdatum", "ausstellungsdatum", "datum"},
		KeywordDeduction:      {"rabatt", "skonto", "abzug", "anzahlung"},
		KeywordDocumentNumber: {"rechnungsnummer", "rechnung nr", "belegnummer"},
	},
}

// Document-type headers that must never be accepted as a vendor name.
var documentHeaders = map[string][]string{
	"pl": {"faktura", "faktura vat", "faktura proforma", "paragon", "rachunek", "nota księgowa", "duplikat"},
	"en": {"invoice", "vat invoice", "tax invoice", "proforma invoice", "receipt", "bill", "credit note", "statement"},
	"de": {"rechnung", "quittung", "gutschrift", "mahnung", "proforma-rechnung"},
}

// Keywords returns the lowercased, diacritic-folded phrases of a class for
// the given languages, deduplicated, longest first so that multi-word
// phrases win over their prefixes during scanning.
func Keywords(class KeywordClass, langs []string) []string {
	return collect(func(lang string) []string { return keywordTable[lang][class] }, langs)
}

// DocumentHeaders returns the folded document-type header lexicon.
func DocumentHeaders(langs []string) []string {
	return collect(func(lang string) []string { return documentHeaders[lang] }, langs)
}

func collect(source func(lang string) []string, langs []string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 16)
	for _, lang := range NormalizeLanguages(langs) {
		for _, phrase := range source(lang) {
			folded := NormalizeToken(phrase)
			if _, dup := seen[folded]; dup {
				continue
			}
			seen[folded] = struct{}{}
			out = append(out, folded)
		}
	}
	// longest-first keeps "razem do zapłaty" ahead of "razem"
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j]) > len(out[j-1]); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
