// Package extract orchestrates the date, amount, and free-text field
// extractors over one document's recognized text and aggregates their output
// into a single ranked-candidate result with an overall confidence score.
package extract

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/thepesz/dueasy-sub004/constants"
	"github.com/thepesz/dueasy-sub004/internal/amounts"
	"github.com/thepesz/dueasy-sub004/internal/dates"
	"github.com/thepesz/dueasy-sub004/internal/entity"
	"github.com/thepesz/dueasy-sub004/internal/lexicon"
	"github.com/thepesz/dueasy-sub004/internal/validate"
)

// Field weights for the overall confidence. Amount and vendor are required
// for downstream automation, so their weights stay in the denominator even
// when the field is missing; optional fields only count when present.
var (
	requiredWeights = map[constants.FieldName]float64{
		constants.FieldAmount:     0.35,
		constants.FieldVendorName: 0.30,
	}
	optionalWeights = map[constants.FieldName]float64{
		constants.FieldDueDate:        0.10,
		constants.FieldIssueDate:      0.05,
		constants.FieldDocumentNumber: 0.10,
		constants.FieldBankAccount:    0.05,
		constants.FieldTaxID:          0.05,
	}
)

// toolset bundles the language-specific workers for one language set.
type toolset struct {
	dates     *dates.Extractor
	amounts   *amounts.Extractor
	validator *validate.Validator

	dueDateKw   []string
	issueDateKw []string
	docNumKw    []string
	headers     []string
}

// Engine is the local extraction engine. Analyze never fails: an
// unparseable document yields an all-absent result with zero confidence.
type Engine struct {
	logger *slog.Logger

	mu    sync.RWMutex
	tools map[string]*toolset
}

// NewEngine builds the engine.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger, tools: make(map[string]*toolset)}
}

// Analyze runs all extractors over the request text. The returned error is
// always nil; it exists to satisfy the Analyzer contract shared with the
// router.
func (e *Engine) Analyze(ctx context.Context, req Request) (*entity.DocumentAnalysisResult, error) {
	res := entity.NewDocumentAnalysisResult(constants.ProviderLocal)
	text := req.OCRText
	if strings.TrimSpace(text) == "" {
		return res, nil
	}

	tools := e.toolsFor(req.LanguageHints)

	var (
		dateCands   []entity.DateCandidate
		amountCands []entity.AmountCandidate
		scan        fieldScan
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		dateCands = tools.dates.ExtractAll(text)
		return nil
	})
	g.Go(func() error {
		amountCands = tools.amounts.Extract(text, req.CurrencyHints)
		return nil
	})
	g.Go(func() error {
		scan = scanFields(text, tools)
		return nil
	})
	// the workers are pure and return no errors
	_ = g.Wait()

	issue, due := classifyDates(text, dateCands, tools)
	res.IssueDate = issue
	res.DueDate = due
	res.Amount, res.Currency = amountFields(amountCands)
	res.VendorName = scan.vendor
	res.VendorAddress = scan.address
	res.DocumentNumber = scan.documentNumber
	res.BankAccount = scan.bankAccount
	res.TaxID = scan.taxID

	res.OverallConfidence = overallConfidence(res)

	e.logger.Info("extract.analyze",
		"doc_type", req.DocumentType,
		"dates", len(dateCands),
		"amounts", len(amountCands),
		"vendor_candidates", len(res.VendorName.Candidates),
		"overall_confidence", res.OverallConfidence,
	)
	return res, nil
}

func (e *Engine) toolsFor(langHints []string) *toolset {
	langs := lexicon.NormalizeLanguages(langHints)
	key := strings.Join(langs, ",")

	e.mu.RLock()
	t, ok := e.tools[key]
	e.mu.RUnlock()
	if ok {
		return t
	}

	t = &toolset{
		dates:       dates.New(langs),
		amounts:     amounts.New(langs),
		validator:   validate.New(langs),
		dueDateKw:   lexicon.Keywords(lexicon.KeywordDueDate, langs),
		issueDateKw: lexicon.Keywords(lexicon.KeywordIssueDate, langs),
		docNumKw:    lexicon.Keywords(lexicon.KeywordDocumentNumber, langs),
		headers:     lexicon.DocumentHeaders(langs),
	}
	e.mu.Lock()
	e.tools[key] = t
	e.mu.Unlock()
	return t
}

// keywordWindow is how far back from a date match labeling wording may sit.
const keywordWindow = 48

// classifyDates fills the issue- and due-date slots: the date nearest a
// due-date keyword wins the due slot, then the date nearest an issue-date
// keyword wins the issue slot, and as a last resort the earliest date by
// position becomes the issue date.
func classifyDates(text string, cands []entity.DateCandidate, tools *toolset) (issue, due entity.Field) {
	used := make(map[int]bool, len(cands))

	pick := func(keywords []string) (int, bool) {
		for i, c := range cands {
			if used[i] {
				continue
			}
			start := c.Offset - keywordWindow
			if start < 0 {
				start = 0
			}
			window := lexicon.NormalizeToken(text[start:c.Offset])
			for _, kw := range keywords {
				if strings.Contains(window, kw) {
					return i, true
				}
			}
		}
		return 0, false
	}

	if i, ok := pick(tools.dueDateKw); ok {
		used[i] = true
		c := entity.NewFieldCandidate(formatDate(cands[i].Date), 0.85, constants.ProviderLocal).
			WithSpan(cands[i].Offset, cands[i].Offset+len(cands[i].Matched))
		due.Candidates = append(due.Candidates, c)
	}
	if i, ok := pick(tools.issueDateKw); ok {
		used[i] = true
		c := entity.NewFieldCandidate(formatDate(cands[i].Date), 0.85, constants.ProviderLocal).
			WithSpan(cands[i].Offset, cands[i].Offset+len(cands[i].Matched))
		issue.Candidates = append(issue.Candidates, c)
	}
	if !issue.Present() {
		for i, c := range cands {
			if used[i] {
				continue
			}
			fc := entity.NewFieldCandidate(formatDate(c.Date), 0.5, constants.ProviderLocal).
				WithSpan(c.Offset, c.Offset+len(c.Matched))
			issue.Candidates = append(issue.Candidates, fc)
			used[i] = true
			break
		}
	}
	return issue, due
}

func formatDate(d time.Time) string {
	return d.Format("2006-01-02")
}

// amountFields converts ranked amount candidates into the amount and
// currency fields. Candidates arrive pre-ranked from the amount extractor.
func amountFields(cands []entity.AmountCandidate) (amount, currency entity.Field) {
	for _, c := range cands {
		fc := entity.NewFieldCandidate(c.Value.StringFixed(2), c.Confidence, constants.ProviderLocal).
			WithSpan(c.Offset, c.Offset+len(c.Raw))
		amount.Candidates = append(amount.Candidates, fc)
	}
	for _, c := range cands {
		if c.Currency != "" {
			currency.Candidates = append(currency.Candidates,
				entity.NewFieldCandidate(c.Currency, c.Confidence, constants.ProviderLocal))
			break
		}
	}
	return amount, currency
}

// overallConfidence blends per-field confidences. Fields are capped at a
// handful of candidates upstream, so this is a straight weighted mean over
// the accepted values.
func overallConfidence(res *entity.DocumentAnalysisResult) float64 {
	num := 0.0
	den := 0.0
	for field, w := range requiredWeights {
		den += w
		num += w * res.FieldByName(field).Confidence()
	}
	for field, w := range optionalWeights {
		if f := res.FieldByName(field); f.Present() {
			den += w
			num += w * f.Confidence()
		}
	}
	if den == 0 {
		return 0
	}
	return entity.ClampConfidence(num / den)
}
