// Package amounts detects monetary amounts in document text and ranks them
// by the wording found around them, so "amount due" lines outrank subtotals
// and unlabeled figures.
package amounts

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/thepesz/dueasy-sub004/internal/entity"
	"github.com/thepesz/dueasy-sub004/internal/lexicon"
)

// Confidence assigned per label class; candidates keep these so callers can
// present alternatives.
const (
	confidenceDue       = 0.9
	confidenceTotal     = 0.7
	confidenceUnlabeled = 0.5
)

// Matches both separator conventions: 1 230,00 / 1.230,00 / 1,230.00 / 1230.00.
var reAmount = regexp.MustCompile(`\d{1,3}(?:[ .,]\d{3})+(?:[.,]\d{1,2})?|\d+(?:[.,]\d{1,2})?`)

// Extractor scans text with the keyword tables of a fixed language set.
// Immutable after construction, safe for concurrent use.
type Extractor struct {
	dueKeywords       []string
	totalKeywords     []string
	deductionKeywords []string
}

// New builds an extractor for the given language hints.
func New(langs []string) *Extractor {
	return &Extractor{
		dueKeywords:       lexicon.Keywords(lexicon.KeywordAmountDue, langs),
		totalKeywords:     lexicon.Keywords(lexicon.KeywordAmountTotal, langs),
		deductionKeywords: lexicon.Keywords(lexicon.KeywordDeduction, langs),
	}
}

// Extract returns every detected amount ranked best-first: due-labeled
// before total-labeled before unlabeled, larger amounts first within a
// class. Bare integers with neither a currency marker nor a label are
// dropped; they are usually document numbers.
func (e *Extractor) Extract(text string, currencyHints []string) []entity.AmountCandidate {
	markers := lexicon.CurrencyMarkers(currencyHints)

	var out []entity.AmountCandidate
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		out = append(out, e.scanLine(line, offset, markers)...)
		offset += len(line)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Label != out[j].Label {
			return out[i].Label > out[j].Label
		}
		return out[i].Value.GreaterThan(out[j].Value)
	})
	return out
}

func (e *Extractor) scanLine(line string, base int, markers map[string]string) []entity.AmountCandidate {
	folded := lexicon.NormalizeToken(line)
	label := e.classifyLine(folded)

	var out []entity.AmountCandidate
	for _, m := range reAmount.FindAllStringIndex(line, -1) {
		start, end := m[0], m[1]
		if partOfLargerToken(line, start, end) {
			continue
		}
		raw := line[start:end]
		value, ok := ParseDecimal(raw)
		if !ok {
			continue
		}
		currency := adjacentCurrency(line, start, end, markers)
		hasDecimals := strings.ContainsAny(raw, ".,") && !isGroupedInteger(raw)
		if label == entity.AmountUnlabeled && currency == "" && !hasDecimals {
			continue
		}
		out = append(out, entity.AmountCandidate{
			Value:      value,
			Raw:        raw,
			Offset:     base + start,
			Currency:   currency,
			Label:      label,
			Confidence: labelConfidence(label),
		})
	}
	return out
}

// classifyLine maps the wording of a line to an amount label. A deduction
// keyword neutralizes the line: a discounted subtotal must not win anything.
func (e *Extractor) classifyLine(folded string) entity.AmountLabel {
	for _, kw := range e.deductionKeywords {
		if strings.Contains(folded, kw) {
			return entity.AmountUnlabeled
		}
	}
	for _, kw := range e.dueKeywords {
		if strings.Contains(folded, kw) {
			return entity.AmountDue
		}
	}
	for _, kw := range e.totalKeywords {
		if strings.Contains(folded, kw) {
			return entity.AmountTotal
		}
	}
	return entity.AmountUnlabeled
}

func labelConfidence(label entity.AmountLabel) float64 {
	switch label {
	case entity.AmountDue:
		return confidenceDue
	case entity.AmountTotal:
		return confidenceTotal
	}
	return confidenceUnlabeled
}

// partOfLargerToken rejects matches glued to date separators or digits, like
// the "15.01" inside "15.01.2024".
func partOfLargerToken(line string, start, end int) bool {
	if start > 0 {
		prev := line[start-1]
		if prev == '.' || prev == ',' || prev == '/' || prev == '-' || isDigit(prev) {
			return true
		}
	}
	if end < len(line) {
		next := line[end]
		if (next == '.' || next == '/' || next == '-') && end+1 < len(line) && isDigit(line[end+1]) {
			return true
		}
		if isDigit(next) {
			return true
		}
	}
	return false
}

// adjacentCurrency looks for a currency marker directly before or after the
// amount, a few bytes either way.
func adjacentCurrency(line string, start, end int, markers map[string]string) string {
	const window = 6
	after := line[end:min(end+window, len(line))]
	before := line[max(start-window, 0):start]
	for _, zone := range []string{after, before} {
		for _, tok := range strings.Fields(lexicon.NormalizeToken(zone)) {
			tok = strings.Trim(tok, ".,:;()")
			if code, ok := markers[tok]; ok {
				return code
			}
		}
	}
	return ""
}

// isGroupedInteger reports whether every separator in raw groups thousands,
// so "1 230" carries no decimal part.
func isGroupedInteger(raw string) bool {
	i := strings.LastIndexAny(raw, ".,")
	if i < 0 {
		return true
	}
	return len(raw)-i-1 == 3
}

// ParseDecimal normalizes both separator conventions and parses the amount.
// The last dot or comma is the decimal separator when followed by one or two
// digits; everything else is grouping.
func ParseDecimal(raw string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), " ", "")
	if cleaned == "" {
		return decimal.Zero, false
	}
	last := strings.LastIndexAny(cleaned, ".,")
	var normalized string
	if last >= 0 && len(cleaned)-last-1 <= 2 {
		intPart := strings.Map(dropSeparators, cleaned[:last])
		normalized = intPart + "." + cleaned[last+1:]
	} else {
		normalized = strings.Map(dropSeparators, cleaned)
	}
	d, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func dropSeparators(r rune) rune {
	if r == '.' || r == ',' {
		return -1
	}
	return r
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
