// Package router decides, per document, whether the local extraction result
// is good enough or whether the request should be escalated to the remote
// extraction service. Escalation failure is never fatal: every failure path
// falls back to the local result.
package router

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"

	"github.com/thepesz/dueasy-sub004/constants"
	"github.com/thepesz/dueasy-sub004/internal/common"
	"github.com/thepesz/dueasy-sub004/internal/entity"
	"github.com/thepesz/dueasy-sub004/internal/extract"
	"github.com/thepesz/dueasy-sub004/internal/quota"
)

// State names the phase a request is in; it shows up in logs only.
type State string

const (
	StateLocalOnly  State = "LOCAL_ONLY"
	StateEscalating State = "ESCALATING"
	StateResolved   State = "RESOLVED"
)

// RemoteExtractor is the escalation target.
type RemoteExtractor interface {
	Extract(ctx context.Context, req extract.Request) (*entity.DocumentAnalysisResult, error)
}

// Router routes between local extraction and remote escalation.
type Router struct {
	engine *extract.Engine
	remote RemoteExtractor
	quota  quota.Service
	cfg    common.RouterConfig
	logger *slog.Logger
}

// New builds a router. remote and quotaSvc may be nil, which disables
// escalation entirely (local results are returned as-is).
func New(engine *extract.Engine, remote RemoteExtractor, quotaSvc quota.Service, cfg common.RouterConfig, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		engine: engine,
		remote: remote,
		quota:  quotaSvc,
		cfg:    cfg,
		logger: logger,
	}
}

// Analyze runs local extraction and escalates when the overall confidence
// falls below the escalation threshold. A successful escalation replaces the
// local result wholesale; any remote failure falls back to the local result,
// annotated so the caller can surface a retry or upgrade prompt. The
// returned error is non-nil only when the context is cancelled before a
// local result exists.
func (r *Router) Analyze(ctx context.Context, req extract.Request, userID string) (*entity.DocumentAnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	local, err := r.engine.Analyze(ctx, req)
	if err != nil || local == nil {
		// the engine contract says this cannot happen; degrade to an empty
		// local result rather than surfacing it
		r.logger.Error("router.local_failed", "error", err)
		local = entity.NewDocumentAnalysisResult(constants.ProviderLocal)
	}

	conf := local.OverallConfidence
	switch {
	case conf >= r.cfg.AcceptThreshold:
		r.logger.Info("router.decision", "state", StateLocalOnly, "confidence", conf, "fast_path", true)
		return local, nil
	case conf >= r.cfg.EscalateThreshold:
		r.logger.Info("router.decision", "state", StateLocalOnly, "confidence", conf, "fast_path", false)
		return local, nil
	}

	if r.remote == nil || r.quota == nil {
		r.logger.Info("router.decision", "state", StateLocalOnly, "confidence", conf, "escalation", "unconfigured")
		return local, nil
	}

	r.logger.Info("router.decision", "state", StateEscalating, "confidence", conf)
	return r.escalate(ctx, req, userID, local), nil
}

func (r *Router) escalate(ctx context.Context, req extract.Request, userID string, local *entity.DocumentAnalysisResult) *entity.DocumentAnalysisResult {
	decision, err := r.quota.CheckAndIncrement(ctx, userID)
	if err != nil {
		r.logger.Warn("router.quota_check_failed", "error", err)
		return annotate(local, err)
	}
	if !decision.Allowed {
		quotaErr := common.ResourceExhaustedError("monthly extraction quota exhausted")
		r.logger.Info("router.quota_denied", "used", decision.Used, "limit", decision.Limit, "reset", decision.ResetDate)
		return annotate(local, quotaErr)
	}

	remote, err := r.remote.Extract(ctx, req)
	if err != nil {
		// the attempt failed, so the consumed slot is given back; refund
		// errors are logged and swallowed, the local fallback still stands
		if refundErr := r.quota.Refund(context.WithoutCancel(ctx), userID); refundErr != nil {
			r.logger.Warn("router.quota_refund_failed", "error", refundErr)
		}
		if ctx.Err() != nil {
			// cancelled mid-flight: abandon the remote call, apply nothing
			r.logger.Info("router.escalation_cancelled")
			return annotate(local, ctx.Err())
		}
		r.logger.Warn("router.escalation_failed", "code", common.StatusCode(err).String(), "error", err)
		return annotate(local, err)
	}

	r.logger.Info("router.decision", "state", StateResolved, "remote_confidence", remote.OverallConfidence)
	remote.Escalation = &entity.Escalation{Attempted: true, Succeeded: true}
	return remote
}

// annotate marks the local result with the escalation outcome. Terminal,
// user-actionable failures (no entitlement, quota) are flagged so the UI
// can show an upgrade path instead of silently degrading.
func annotate(local *entity.DocumentAnalysisResult, err error) *entity.DocumentAnalysisResult {
	code := common.StatusCode(err)
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if code == codes.OK {
		code = codes.Unknown
	}
	local.Escalation = &entity.Escalation{
		Attempted:      true,
		Succeeded:      false,
		FailureCode:    code.String(),
		Message:        msg,
		ActionRequired: common.IsActionable(err),
	}
	return local
}
