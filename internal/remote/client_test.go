package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"github.com/thepesz/dueasy-sub004/constants"
	"github.com/thepesz/dueasy-sub004/internal/common"
	"github.com/thepesz/dueasy-sub004/internal/extract"
)

func newTestClient(endpoint string) *Client {
	return NewClient(common.RemoteConfig{
		Endpoint:     endpoint,
		APIKey:       "test-key",
		Timeout:      5 * time.Second,
		MaxTextBytes: 1024,
	}, nil)
}

func TestExtractSuccess(t *testing.T) {
	var gotAuth string
	var gotBody wireRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"vendor_name": {
				"value": "ACME Industries Ltd.",
				"confidence": 0.97,
				"candidates": [
					{"value": "ACME Industries Ltd.", "confidence": 0.97},
					{"value": "ACME Ind.", "confidence": 0.41}
				]
			},
			"amount": {"value": "1230.00", "confidence": 0.95},
			"due_date": {"value": "2026-02-15", "confidence": 0.93},
			"overall_confidence": 0.94,
			"schema_version": 2
		}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	res, err := client.Extract(context.Background(), extract.Request{
		OCRText:       "Faktura ...",
		DocumentType:  constants.DocTypeInvoice,
		LanguageHints: []string{"pl"},
	})
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "Faktura ...", gotBody.OCRText)
	assert.Equal(t, "INVOICE", gotBody.DocumentType)

	assert.Equal(t, constants.ProviderRemote, res.Provider)
	assert.InDelta(t, 0.94, res.OverallConfidence, 1e-9)
	assert.Equal(t, "ACME Industries Ltd.", res.VendorName.Value())
	// the accepted value stays at index 0 and is not duplicated
	require.Len(t, res.VendorName.Candidates, 2)
	assert.Equal(t, "ACME Ind.", res.VendorName.Candidates[1].DisplayValue)
	assert.Equal(t, "1230.00", res.Amount.Value())
	assert.Equal(t, "2026-02-15", res.DueDate.Value())
	assert.False(t, res.IssueDate.Present())
}

func TestExtractServiceErrorPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"status":"PERMISSION_DENIED","message":"no active entitlement"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Extract(context.Background(), extract.Request{OCRText: "x"})
	require.Error(t, err)
	assert.Equal(t, codes.PermissionDenied, common.StatusCode(err))
	assert.True(t, common.IsActionable(err))
	assert.Contains(t, err.Error(), "no active entitlement")
}

func TestExtractHTTPStatusFallback(t *testing.T) {
	tests := []struct {
		status int
		want   codes.Code
	}{
		{http.StatusUnauthorized, codes.Unauthenticated},
		{http.StatusForbidden, codes.PermissionDenied},
		{http.StatusTooManyRequests, codes.ResourceExhausted},
		{http.StatusBadRequest, codes.InvalidArgument},
		{http.StatusInternalServerError, codes.Internal},
	}
	for _, tc := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))
		_, err := newTestClient(srv.URL).Extract(context.Background(), extract.Request{OCRText: "x"})
		srv.Close()
		require.Error(t, err)
		assert.Equal(t, tc.want, common.StatusCode(err), "http %d", tc.status)
	}
}

func TestExtractMalformedResponse(t *testing.T) {
	payloads := []string{
		`{"unexpected":"shape"}`,
		`{"overall_confidence": 1.4, "schema_version": 2}`,
		`{"overall_confidence": 0.9}`,
		`{"vendor_name": {"value": ""}, "overall_confidence": 0.9, "schema_version": 2}`,
		`not json at all`,
	}
	for _, payload := range payloads {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(payload))
		}))
		_, err := newTestClient(srv.URL).Extract(context.Background(), extract.Request{OCRText: "x"})
		srv.Close()
		require.Error(t, err, "payload %q must be rejected", payload)
		assert.Equal(t, codes.Internal, common.StatusCode(err))
	}
}

func TestExtractInputTooLong(t *testing.T) {
	client := NewClient(common.RemoteConfig{
		Endpoint:     "http://localhost:1",
		APIKey:       "k",
		Timeout:      time.Second,
		MaxTextBytes: 4,
	}, nil)

	_, err := client.Extract(context.Background(), extract.Request{OCRText: "too long"})
	require.Error(t, err)
	assert.Equal(t, codes.InvalidArgument, common.StatusCode(err))
}

func TestExtractUnconfigured(t *testing.T) {
	client := NewClient(common.RemoteConfig{Timeout: time.Second}, nil)

	_, err := client.Extract(context.Background(), extract.Request{OCRText: "x"})
	require.Error(t, err)
	assert.Equal(t, codes.Unavailable, common.StatusCode(err))
}

func TestExtractCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).Extract(ctx, extract.Request{OCRText: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
