// Package dates locates and parses date-like substrings in multilingual
// document text. Numeric forms are tried before verbal forms; the day-first
// convention resolves ambiguous numeric dates.
package dates

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/thepesz/dueasy-sub004/internal/entity"
	"github.com/thepesz/dueasy-sub004/internal/lexicon"
)

// Accepted window around "now": parsed dates outside it are discarded
// silently, they are non-matches rather than errors.
const (
	maxYearsPast   = 5
	maxYearsFuture = 2
)

type numericPattern struct {
	re                      *regexp.Regexp
	dayIdx, monthIdx, yearIdx int
}

// Ordered: ISO first so "2026-02-15" never half-matches the day-first dashed
// form, then dotted, dashed, slashed. One- and two-digit day/month accepted.
var numericPatterns = []numericPattern{
	{regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`), 3, 2, 1},
	{regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{4})\b`), 1, 2, 3},
	{regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})-(\d{4})\b`), 1, 2, 3},
	{regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`), 1, 2, 3},
}

type verbalPattern struct {
	re                      *regexp.Regexp
	dayIdx, nameIdx, yearIdx int
}

// Extractor parses dates for a fixed language set. Immutable after
// construction, safe for concurrent use.
type Extractor struct {
	now    func() time.Time
	months map[string]time.Month
	verbal []verbalPattern
}

// New builds an extractor for the given language hints (empty hints enable
// every supported language).
func New(langs []string) *Extractor {
	normalized := lexicon.NormalizeLanguages(langs)
	names := lexicon.MonthNames(normalized)
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	alternation := strings.Join(quoted, "|")

	verbal := []verbalPattern{
		// 31 stycznia 2024, 31 sty 2024, 31. Januar 2024
		{
			re:      regexp.MustCompile(`(?i)\b(\d{1,2})\.?\s+(` + alternation + `)\.?,?\s+(\d{4})\b`),
			dayIdx:  1,
			nameIdx: 2,
			yearIdx: 3,
		},
	}
	for _, lang := range normalized {
		if lexicon.MonthFirst(lang) {
			// January 31, 2024 and Jan 31 2024
			verbal = append(verbal, verbalPattern{
				re:      regexp.MustCompile(`(?i)(` + alternation + `)\.?\s+(\d{1,2})(?:st|nd|rd|th)?,?\s+(\d{4})\b`),
				dayIdx:  2,
				nameIdx: 1,
				yearIdx: 3,
			})
			break
		}
	}

	return &Extractor{
		now:    time.Now,
		months: lexicon.MonthLookup(normalized),
		verbal: verbal,
	}
}

// ParseDate returns the first parseable, in-window date in text.
func (e *Extractor) ParseDate(text string) (time.Time, bool) {
	c, ok := e.ParseDateWithPattern(text)
	return c.Date, ok
}

// ParseDateWithPattern additionally reports the matched substring and its
// offset. Numeric patterns win over verbal ones; the first successful
// pattern wins overall.
func (e *Extractor) ParseDateWithPattern(text string) (entity.DateCandidate, bool) {
	for _, p := range numericPatterns {
		if c, ok := e.firstNumeric(text, p); ok {
			return c, true
		}
	}
	for _, p := range e.verbal {
		if c, ok := e.firstVerbal(text, p); ok {
			return c, true
		}
	}
	return entity.DateCandidate{}, false
}

// ExtractAll scans the whole text and returns every non-overlapping match in
// left-to-right order. Earlier patterns claim overlapping spans.
func (e *Extractor) ExtractAll(text string) []entity.DateCandidate {
	type span struct{ start, end int }
	var claimed []span
	overlaps := func(start, end int) bool {
		for _, s := range claimed {
			if start < s.end && end > s.start {
				return true
			}
		}
		return false
	}

	var out []entity.DateCandidate
	add := func(c entity.DateCandidate) {
		end := c.Offset + len(c.Matched)
		if overlaps(c.Offset, end) {
			return
		}
		claimed = append(claimed, span{c.Offset, end})
		out = append(out, c)
	}

	for _, p := range numericPatterns {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			if c, ok := e.numericCandidate(text, p, m); ok {
				add(c)
			}
		}
	}
	for _, p := range e.verbal {
		for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
			if c, ok := e.verbalCandidate(text, p, m); ok {
				add(c)
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

func (e *Extractor) firstNumeric(text string, p numericPattern) (entity.DateCandidate, bool) {
	for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
		if c, ok := e.numericCandidate(text, p, m); ok {
			return c, true
		}
	}
	return entity.DateCandidate{}, false
}

func (e *Extractor) firstVerbal(text string, p verbalPattern) (entity.DateCandidate, bool) {
	for _, m := range p.re.FindAllStringSubmatchIndex(text, -1) {
		if c, ok := e.verbalCandidate(text, p, m); ok {
			return c, true
		}
	}
	return entity.DateCandidate{}, false
}

func (e *Extractor) numericCandidate(text string, p numericPattern, m []int) (entity.DateCandidate, bool) {
	day := atoi(group(text, m, p.dayIdx))
	month := atoi(group(text, m, p.monthIdx))
	year := atoi(group(text, m, p.yearIdx))
	return e.candidate(text, m, day, month, year)
}

func (e *Extractor) verbalCandidate(text string, p verbalPattern, m []int) (entity.DateCandidate, bool) {
	month, ok := e.months[lexicon.NormalizeToken(group(text, m, p.nameIdx))]
	if !ok {
		return entity.DateCandidate{}, false
	}
	day := atoi(group(text, m, p.dayIdx))
	year := atoi(group(text, m, p.yearIdx))
	return e.candidate(text, m, day, int(month), year)
}

func (e *Extractor) candidate(text string, m []int, day, month, year int) (entity.DateCandidate, bool) {
	d, ok := buildDate(day, month, year)
	if !ok || !e.inWindow(d) {
		return entity.DateCandidate{}, false
	}
	return entity.DateCandidate{
		Date:    d,
		Matched: text[m[0]:m[1]],
		Offset:  m[0],
	}, true
}

// buildDate rejects values time.Date would silently normalize (Feb 30).
func buildDate(day, month, year int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != time.Month(month) || d.Year() != year {
		return time.Time{}, false
	}
	return d, true
}

func (e *Extractor) inWindow(d time.Time) bool {
	now := e.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(today.AddDate(-maxYearsPast, 0, 0)) && !d.After(today.AddDate(maxYearsFuture, 0, 0))
}

func group(text string, m []int, idx int) string {
	if 2*idx+1 >= len(m) || m[2*idx] < 0 {
		return ""
	}
	return text[m[2*idx]:m[2*idx+1]]
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
