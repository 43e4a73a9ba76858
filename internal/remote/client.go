package remote

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/thepesz/dueasy-sub004/constants"
	"github.com/thepesz/dueasy-sub004/internal/common"
	"github.com/thepesz/dueasy-sub004/internal/entity"
	"github.com/thepesz/dueasy-sub004/internal/extract"
)

// Client talks to the remote extraction service.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	maxBytes   int
	logger     *slog.Logger
	schema     map[string]any
}

// NewClient builds a client from the remote configuration.
func NewClient(cfg common.RemoteConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		maxBytes:   cfg.MaxTextBytes,
		logger:     logger,
		schema:     BuildAnalysisJSONSchema(),
	}
}

type wireRequest struct {
	OCRText       string   `json:"ocr_text"`
	DocumentType  string   `json:"document_type"`
	LanguageHints []string `json:"language_hints,omitempty"`
	CurrencyHints []string `json:"currency_hints,omitempty"`
}

type wireCandidate struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}

type wireField struct {
	Value      string          `json:"value"`
	Confidence float64         `json:"confidence"`
	Candidates []wireCandidate `json:"candidates,omitempty"`
}

type wireResponse struct {
	VendorName     *wireField `json:"vendor_name"`
	VendorAddress  *wireField `json:"vendor_address"`
	TaxID          *wireField `json:"tax_id"`
	Amount         *wireField `json:"amount"`
	Currency       *wireField `json:"currency"`
	IssueDate      *wireField `json:"issue_date"`
	DueDate        *wireField `json:"due_date"`
	DocumentNumber *wireField `json:"document_number"`
	BankAccount    *wireField `json:"bank_account"`

	OverallConfidence float64 `json:"overall_confidence"`
	SchemaVersion     int     `json:"schema_version"`
}

type wireError struct {
	Error struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// Extract sends the document text for remote analysis. Failures come back as
// gRPC status errors so the router can tell a quota denial from a transient
// fault.
func (c *Client) Extract(ctx context.Context, req extract.Request) (*entity.DocumentAnalysisResult, error) {
	if c.endpoint == "" {
		return nil, common.UnavailableError("remote extraction not configured")
	}
	if c.maxBytes > 0 && len(req.OCRText) > c.maxBytes {
		return nil, common.InvalidArgumentErrorf("input text too long: %d bytes (limit %d)", len(req.OCRText), c.maxBytes)
	}

	payload := wireRequest{
		OCRText:       req.OCRText,
		DocumentType:  string(req.DocumentType),
		LanguageHints: req.LanguageHints,
		CurrencyHints: req.CurrencyHints,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.apiKey}

	raw, statusCode, err := sendJSON(ctx, c.httpClient, c.endpoint, payload, headers, c.logger)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, common.UnavailableError(err.Error())
	}
	if statusCode/100 != 2 {
		return nil, decodeError(raw, statusCode)
	}

	if err := validateJSONAgainstSchema(c.schema, raw); err != nil {
		c.logger.Warn("remote.extract.malformed_response", "error", err)
		return nil, common.InternalError("malformed extraction response")
	}
	var resp wireResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, common.InternalError("malformed extraction response")
	}
	return resp.toResult(), nil
}

// decodeError prefers the service's own status string and falls back to the
// HTTP status class.
func decodeError(raw []byte, httpStatus int) error {
	var we wireError
	if err := json.Unmarshal(raw, &we); err == nil && we.Error.Status != "" {
		if code, ok := wireStatusCodes[we.Error.Status]; ok {
			return status.Error(code, we.Error.Message)
		}
	}
	switch httpStatus {
	case http.StatusUnauthorized:
		return common.UnauthenticatedError("authentication failed")
	case http.StatusForbidden:
		return common.PermissionDeniedError("no active entitlement")
	case http.StatusTooManyRequests:
		return common.ResourceExhaustedError("extraction quota exhausted")
	case http.StatusBadRequest:
		return common.InvalidArgumentError("rejected extraction request")
	}
	return common.InternalErrorf("extraction service error: http %d", httpStatus)
}

var wireStatusCodes = map[string]codes.Code{
	"UNAUTHENTICATED":    codes.Unauthenticated,
	"PERMISSION_DENIED":  codes.PermissionDenied,
	"RESOURCE_EXHAUSTED": codes.ResourceExhausted,
	"INVALID_ARGUMENT":   codes.InvalidArgument,
	"INTERNAL":           codes.Internal,
}

func (w *wireResponse) toResult() *entity.DocumentAnalysisResult {
	res := entity.NewDocumentAnalysisResult(constants.ProviderRemote)
	if w.SchemaVersion > 0 {
		res.SchemaVersion = w.SchemaVersion
	}
	res.OverallConfidence = entity.ClampConfidence(w.OverallConfidence)
	res.VendorName = toField(w.VendorName)
	res.VendorAddress = toField(w.VendorAddress)
	res.TaxID = toField(w.TaxID)
	res.Amount = toField(w.Amount)
	res.Currency = toField(w.Currency)
	res.IssueDate = toField(w.IssueDate)
	res.DueDate = toField(w.DueDate)
	res.DocumentNumber = toField(w.DocumentNumber)
	res.BankAccount = toField(w.BankAccount)
	return res
}

// toField keeps the accepted value at index 0 even when the candidate array
// repeats or omits it.
func toField(w *wireField) entity.Field {
	var f entity.Field
	if w == nil || w.Value == "" {
		return f
	}
	f.Candidates = append(f.Candidates, entity.NewFieldCandidate(w.Value, w.Confidence, constants.ProviderRemote))
	for _, c := range w.Candidates {
		if c.Value == w.Value {
			continue
		}
		f.Candidates = append(f.Candidates, entity.NewFieldCandidate(c.Value, c.Confidence, constants.ProviderRemote))
	}
	return f
}
