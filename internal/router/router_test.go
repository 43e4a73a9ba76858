package router

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/thepesz/dueasy-sub004/constants"
	"github.com/thepesz/dueasy-sub004/internal/common"
	"github.com/thepesz/dueasy-sub004/internal/entity"
	"github.com/thepesz/dueasy-sub004/internal/extract"
	"github.com/thepesz/dueasy-sub004/internal/quota"
)

type fakeRemote struct {
	fn    func(ctx context.Context, req extract.Request) (*entity.DocumentAnalysisResult, error)
	calls int
}

func (f *fakeRemote) Extract(ctx context.Context, req extract.Request) (*entity.DocumentAnalysisResult, error) {
	f.calls++
	return f.fn(ctx, req)
}

type fakeQuota struct {
	decision quota.Decision
	err      error
	checks   int
	refunds  int
}

func (f *fakeQuota) CheckAndIncrement(context.Context, string) (quota.Decision, error) {
	f.checks++
	return f.decision, f.err
}

func (f *fakeQuota) Refund(context.Context, string) error {
	f.refunds++
	return nil
}

var defaultCfg = common.RouterConfig{AcceptThreshold: 0.85, EscalateThreshold: 0.60}

func allowedQuota() *fakeQuota {
	return &fakeQuota{decision: quota.Decision{Allowed: true, Used: 1, Limit: 10}}
}

func remoteResult(conf float64) *entity.DocumentAnalysisResult {
	res := entity.NewDocumentAnalysisResult(constants.ProviderRemote)
	res.OverallConfidence = conf
	res.VendorName.Candidates = []entity.FieldCandidate{
		entity.NewFieldCandidate("ACME Industries Ltd.", 0.97, constants.ProviderRemote),
	}
	return res
}

// lowConfidenceRequest yields a local result far below the escalation
// threshold.
func lowConfidenceRequest() extract.Request {
	return extract.Request{OCRText: "unreadable smudge"}
}

func TestAnalyzeFastPath(t *testing.T) {
	remote := &fakeRemote{fn: func(context.Context, extract.Request) (*entity.DocumentAnalysisResult, error) {
		t.Fatal("remote must not be called on the fast path")
		return nil, nil
	}}
	q := allowedQuota()
	cfg := common.RouterConfig{AcceptThreshold: 0.0, EscalateThreshold: 0.0}
	r := New(extract.NewEngine(nil), remote, q, cfg, nil)

	res, err := r.Analyze(context.Background(), lowConfidenceRequest(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, constants.ProviderLocal, res.Provider)
	assert.Nil(t, res.Escalation)
	assert.Zero(t, remote.calls)
	assert.Zero(t, q.checks)
}

func TestAnalyzeEscalationDisabledWithoutRemote(t *testing.T) {
	r := New(extract.NewEngine(nil), nil, nil, defaultCfg, nil)

	res, err := r.Analyze(context.Background(), lowConfidenceRequest(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, constants.ProviderLocal, res.Provider)
	assert.Nil(t, res.Escalation)
}

func TestAnalyzeEscalationReplacesLocalResult(t *testing.T) {
	want := remoteResult(0.95)
	remote := &fakeRemote{fn: func(context.Context, extract.Request) (*entity.DocumentAnalysisResult, error) {
		return want, nil
	}}
	q := allowedQuota()
	r := New(extract.NewEngine(nil), remote, q, defaultCfg, nil)

	res, err := r.Analyze(context.Background(), lowConfidenceRequest(), "user-1")
	require.NoError(t, err)

	assert.Same(t, want, res, "a successful escalation replaces the local result wholesale")
	assert.Equal(t, constants.ProviderRemote, res.Provider)
	require.NotNil(t, res.Escalation)
	assert.True(t, res.Escalation.Attempted)
	assert.True(t, res.Escalation.Succeeded)
	assert.Equal(t, 1, q.checks)
	assert.Zero(t, q.refunds)
}

func TestAnalyzeQuotaDenied(t *testing.T) {
	remote := &fakeRemote{fn: func(context.Context, extract.Request) (*entity.DocumentAnalysisResult, error) {
		t.Fatal("remote must not be called when quota is denied")
		return nil, nil
	}}
	q := &fakeQuota{decision: quota.Decision{Allowed: false, Used: 10, Limit: 10}}
	r := New(extract.NewEngine(nil), remote, q, defaultCfg, nil)

	res, err := r.Analyze(context.Background(), lowConfidenceRequest(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, constants.ProviderLocal, res.Provider)
	require.NotNil(t, res.Escalation)
	assert.True(t, res.Escalation.Attempted)
	assert.False(t, res.Escalation.Succeeded)
	assert.Equal(t, codes.ResourceExhausted.String(), res.Escalation.FailureCode)
	assert.True(t, res.Escalation.ActionRequired)
	assert.Zero(t, remote.calls)
	assert.Zero(t, q.refunds, "a denied check consumed nothing, so nothing is refunded")
}

func TestAnalyzeRemoteFailureFallsBackAndRefunds(t *testing.T) {
	remote := &fakeRemote{fn: func(context.Context, extract.Request) (*entity.DocumentAnalysisResult, error) {
		return nil, common.UnavailableError("upstream down")
	}}
	q := allowedQuota()
	r := New(extract.NewEngine(nil), remote, q, defaultCfg, nil)

	res, err := r.Analyze(context.Background(), lowConfidenceRequest(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, constants.ProviderLocal, res.Provider)
	require.NotNil(t, res.Escalation)
	assert.False(t, res.Escalation.Succeeded)
	assert.Equal(t, codes.Unavailable.String(), res.Escalation.FailureCode)
	assert.False(t, res.Escalation.ActionRequired)
	assert.Equal(t, 1, q.refunds)
}

func TestAnalyzePermissionDeniedIsActionable(t *testing.T) {
	remote := &fakeRemote{fn: func(context.Context, extract.Request) (*entity.DocumentAnalysisResult, error) {
		return nil, common.PermissionDeniedError("no active entitlement")
	}}
	r := New(extract.NewEngine(nil), remote, allowedQuota(), defaultCfg, nil)

	res, err := r.Analyze(context.Background(), lowConfidenceRequest(), "user-1")
	require.NoError(t, err)

	require.NotNil(t, res.Escalation)
	assert.Equal(t, codes.PermissionDenied.String(), res.Escalation.FailureCode)
	assert.True(t, res.Escalation.ActionRequired)
	assert.Contains(t, res.Escalation.Message, "no active entitlement")
}

func TestAnalyzeQuotaErrorFallsBack(t *testing.T) {
	q := &fakeQuota{err: common.InternalError("quota store down")}
	remote := &fakeRemote{fn: func(context.Context, extract.Request) (*entity.DocumentAnalysisResult, error) {
		t.Fatal("remote must not be called when the quota check errors")
		return nil, nil
	}}
	r := New(extract.NewEngine(nil), remote, q, defaultCfg, nil)

	res, err := r.Analyze(context.Background(), lowConfidenceRequest(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, constants.ProviderLocal, res.Provider)
	require.NotNil(t, res.Escalation)
	assert.Equal(t, codes.Internal.String(), res.Escalation.FailureCode)
	assert.Zero(t, remote.calls)
}

func TestAnalyzeCancelledBeforeStart(t *testing.T) {
	r := New(extract.NewEngine(nil), nil, nil, defaultCfg, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Analyze(ctx, lowConfidenceRequest(), "user-1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeCancelledMidEscalationReturnsLocal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	remote := &fakeRemote{fn: func(ctx context.Context, _ extract.Request) (*entity.DocumentAnalysisResult, error) {
		cancel()
		return nil, ctx.Err()
	}}
	q := allowedQuota()
	r := New(extract.NewEngine(nil), remote, q, defaultCfg, nil)

	res, err := r.Analyze(ctx, lowConfidenceRequest(), "user-1")
	require.NoError(t, err, "a cancellation after local extraction still returns the local result")

	assert.Equal(t, constants.ProviderLocal, res.Provider)
	require.NotNil(t, res.Escalation)
	assert.False(t, res.Escalation.Succeeded)
	assert.Equal(t, codes.Canceled.String(), res.Escalation.FailureCode)
	assert.Equal(t, 1, q.refunds, "the refund runs even though the context is gone")
}

func TestAnalyzeDeadlineMidEscalation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := New(extract.NewEngine(nil), nil, nil, defaultCfg, nil).Analyze(ctx, lowConfidenceRequest(), "user-1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
