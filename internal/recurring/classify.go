package recurring

import (
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/thepesz/dueasy-sub004/internal/fuzzy"
)

// Classifier decides whether a newly extracted amount belongs to an existing
// template, needs human confirmation, or should spawn a new template.
type Classifier struct {
	store  *Store
	logger *slog.Logger
}

// NewClassifier builds a classifier over a template store.
func NewClassifier(store *Store, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{store: store, logger: logger}
}

// Classify compares amount against the template's observed range.
func (c *Classifier) Classify(t *Template, amount decimal.Decimal) fuzzy.MatchCategory {
	diff := fuzzy.PercentDifference(amount, t.Amounts)
	category := fuzzy.Categorize(diff)
	c.logger.Info("recurring.classify",
		"template_id", t.ID,
		"vendor", t.Vendor,
		"amount", amount.StringFixed(2),
		"percent_difference", diff,
		"category", category,
	)
	return category
}
