package extract

import (
	"regexp"
	"strings"

	"github.com/thepesz/dueasy-sub004/constants"
	"github.com/thepesz/dueasy-sub004/internal/entity"
	"github.com/thepesz/dueasy-sub004/internal/lexicon"
	"github.com/thepesz/dueasy-sub004/internal/validate"
)

// How many leading non-empty lines may carry the vendor block.
const vendorLineWindow = 12

// maxCandidatesPerField keeps candidate lists presentable.
const maxCandidatesPerField = 5

var (
	reIBANRun  = regexp.MustCompile(`\b[A-Z]{2}\d{2}[0-9A-Z](?:[ -]?[0-9A-Z]){10,30}|\b\d{2}(?:[ -]?\d{4}){6}\b`)
	reNIPRun   = regexp.MustCompile(`(?i)\bNIP\b[:.\s]*([0-9][0-9 \-]{8,14}[0-9])`)
	reBareNIP  = regexp.MustCompile(`\b\d{3}[- ]?\d{3}[- ]?\d{2}[- ]?\d{2}\b`)
	reWordOnly = regexp.MustCompile(`^\p{L}[\p{L} .&\-']*$`)
)

type fieldScan struct {
	vendor         entity.Field
	address        entity.Field
	documentNumber entity.Field
	bankAccount    entity.Field
	taxID          entity.Field
}

type scannedLine struct {
	text   string
	folded string
	offset int
	index  int // position among non-empty lines
}

// scanFields walks the text line by line and harvests every field that the
// date and amount extractors do not own.
func scanFields(text string, tools *toolset) fieldScan {
	var scan fieldScan

	lines := make([]scannedLine, 0, 64)
	offset := 0
	nonEmpty := 0
	for _, raw := range strings.SplitAfter(text, "\n") {
		line := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, scannedLine{
				text:   line,
				folded: lexicon.NormalizeToken(line),
				offset: offset,
				index:  nonEmpty,
			})
			nonEmpty++
		}
		offset += len(raw)
	}

	scan.vendor = vendorCandidates(lines, tools)
	scan.address = addressCandidates(lines, tools)
	scan.documentNumber = documentNumberCandidates(lines, tools)
	scan.bankAccount = bankAccountCandidates(lines)
	scan.taxID = taxIDCandidates(lines)

	for _, f := range []*entity.Field{&scan.vendor, &scan.address, &scan.documentNumber, &scan.bankAccount, &scan.taxID} {
		f.Sort()
		if len(f.Candidates) > maxCandidatesPerField {
			f.Candidates = f.Candidates[:maxCandidatesPerField]
		}
	}
	return scan
}

// vendorCandidates favors the top of the document: invoices carry the issuer
// in the header block. A legal-entity suffix boosts an otherwise ambiguous
// line.
func vendorCandidates(lines []scannedLine, tools *toolset) entity.Field {
	var out entity.Field
	for _, ln := range lines {
		if ln.index >= vendorLineWindow {
			break
		}
		candidate := strings.TrimSpace(ln.text)
		if !tools.validator.IsValidVendorName(candidate) {
			continue
		}
		if containsAny(ln.folded, tools.docNumKw) || containsAny(ln.folded, tools.dueDateKw) {
			continue
		}
		conf := 0.5 + tools.validator.VendorNameConfidenceBoost(candidate)
		// earlier lines are likelier to be the issuer
		conf += 0.12 - 0.01*float64(ln.index)
		if !reWordOnly.MatchString(candidate) {
			conf -= 0.1
		}
		fc := entity.NewFieldCandidate(candidate, conf, constants.ProviderLocal).
			WithSpan(ln.offset, ln.offset+len(ln.text))
		out.Candidates = append(out.Candidates, fc)
	}
	return out
}

func addressCandidates(lines []scannedLine, tools *toolset) entity.Field {
	var out entity.Field
	for _, ln := range lines {
		if ln.index >= vendorLineWindow+4 {
			break
		}
		candidate := strings.TrimSpace(ln.text)
		if !tools.validator.IsValidAddressComponent(candidate) {
			continue
		}
		fc := entity.NewFieldCandidate(candidate, 0.6, constants.ProviderLocal).
			WithSpan(ln.offset, ln.offset+len(ln.text))
		out.Candidates = append(out.Candidates, fc)
	}
	return out
}

func documentNumberCandidates(lines []scannedLine, tools *toolset) entity.Field {
	var out entity.Field
	for _, ln := range lines {
		if !containsAny(ln.folded, tools.docNumKw) && !containsAny(ln.folded, tools.headers) {
			continue
		}
		for _, tok := range strings.Fields(ln.text) {
			tok = strings.Trim(tok, ":;,.()")
			if !tools.validator.ValidateInvoiceNumber(tok) {
				continue
			}
			if validate.LooksLikeDate(tok) || validate.LooksLikeAmount(tok) {
				continue
			}
			conf := 0.6
			if containsAny(ln.folded, tools.docNumKw) {
				conf = 0.8
			}
			fc := entity.NewFieldCandidate(tok, conf, constants.ProviderLocal).
				WithSpan(ln.offset, ln.offset+len(ln.text))
			out.Candidates = append(out.Candidates, fc)
			break
		}
	}
	return out
}

// bankAccountCandidates accepts only checksum-proven account numbers.
func bankAccountCandidates(lines []scannedLine) entity.Field {
	var out entity.Field
	for _, ln := range lines {
		upper := strings.ToUpper(ln.text)
		for _, m := range reIBANRun.FindAllStringIndex(upper, -1) {
			raw := upper[m[0]:m[1]]
			if !validate.ValidateIBAN(raw) {
				continue
			}
			display := strings.ToUpper(strings.Join(strings.FieldsFunc(raw, func(r rune) bool {
				return r == ' ' || r == '-'
			}), ""))
			fc := entity.NewFieldCandidate(display, 0.95, constants.ProviderLocal).
				WithSpan(ln.offset+m[0], ln.offset+m[1])
			out.Candidates = append(out.Candidates, fc)
		}
	}
	return out
}

func taxIDCandidates(lines []scannedLine) entity.Field {
	var out entity.Field
	seen := make(map[string]bool)
	add := func(ln scannedLine, raw string, conf float64, start, end int) {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, raw)
		if seen[digits] || !validate.ValidateNIPChecksum(raw) {
			return
		}
		seen[digits] = true
		fc := entity.NewFieldCandidate(digits, conf, constants.ProviderLocal).
			WithSpan(ln.offset+start, ln.offset+end)
		out.Candidates = append(out.Candidates, fc)
	}

	for _, ln := range lines {
		if m := reNIPRun.FindStringSubmatchIndex(ln.text); m != nil {
			add(ln, ln.text[m[2]:m[3]], 0.95, m[2], m[3])
			continue
		}
		for _, m := range reBareNIP.FindAllStringIndex(ln.text, -1) {
			add(ln, ln.text[m[0]:m[1]], 0.7, m[0], m[1])
		}
	}
	return out
}

func containsAny(folded string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}
