package extract

import (
	"context"

	"github.com/thepesz/dueasy-sub004/constants"
	"github.com/thepesz/dueasy-sub004/internal/entity"
)

// Request carries one document's recognized text plus the caller's hints.
type Request struct {
	OCRText       string
	DocumentType  constants.DocumentType
	LanguageHints []string
	CurrencyHints []string
}

// Analyzer is the text -> structured-fields contract shared by the local
// engine and the escalation router.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*entity.DocumentAnalysisResult, error)
}
