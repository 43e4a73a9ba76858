package recurring

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thepesz/dueasy-sub004/internal/common"
	"github.com/thepesz/dueasy-sub004/internal/fuzzy"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "templates.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Create("Miejski Zakład Wodociągów", "5260250274", decimal.RequireFromString("89.50"))
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 1, created.Observations)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Vendor, got.Vendor)
	assert.Equal(t, created.TaxID, got.TaxID)
	require.True(t, got.Amounts.Complete())
	assert.True(t, got.Amounts.Min.Equal(decimal.RequireFromString("89.50")))
	assert.True(t, got.Amounts.Max.Equal(decimal.RequireFromString("89.50")))
}

func TestGetMissing(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Create("Vendor", "", decimal.RequireFromString("10"))
	require.NoError(t, err)
	require.NoError(t, store.Delete(created.ID))

	_, err = store.Get(created.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestObserveAmountWidens(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Create("Vendor", "", decimal.RequireFromString("100"))
	require.NoError(t, err)

	updated, err := store.ObserveAmount(created.ID, decimal.RequireFromString("120"))
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Observations)
	assert.True(t, updated.Amounts.Min.Equal(decimal.RequireFromString("100")))
	assert.True(t, updated.Amounts.Max.Equal(decimal.RequireFromString("120")))

	updated, err = store.ObserveAmount(created.ID, decimal.RequireFromString("80"))
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Observations)
	assert.True(t, updated.Amounts.Min.Equal(decimal.RequireFromString("80")))
	assert.True(t, updated.Amounts.Max.Equal(decimal.RequireFromString("120")))

	// the widened range survives a reload
	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.True(t, got.Amounts.Max.Equal(decimal.RequireFromString("120")))
}

func TestList(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create("A", "", decimal.RequireFromString("1"))
	require.NoError(t, err)
	_, err = store.Create("B", "", decimal.RequireFromString("2"))
	require.NoError(t, err)

	templates, err := store.List()
	require.NoError(t, err)
	assert.Len(t, templates, 2)
}

func TestClassifierAgainstTemplate(t *testing.T) {
	store := newTestStore(t)
	classifier := NewClassifier(store, nil)

	template, err := store.Create("Vendor", "", decimal.RequireFromString("100"))
	require.NoError(t, err)
	_, err = store.ObserveAmount(template.ID, decimal.RequireFromString("110"))
	require.NoError(t, err)
	template, err = store.Get(template.ID)
	require.NoError(t, err)

	assert.Equal(t, fuzzy.AutoMatch, classifier.Classify(template, decimal.RequireFromString("105")))
	assert.Equal(t, fuzzy.FuzzyZone, classifier.Classify(template, decimal.RequireFromString("140")))
	assert.Equal(t, fuzzy.AutoCreateNew, classifier.Classify(template, decimal.RequireFromString("300")))
}
