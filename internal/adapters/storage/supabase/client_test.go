package supabase_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FleetScanHQ/fuel_tax_app/internal/adapters/storage/supabase"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *supabase.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return supabase.NewClient(supabase.Config{
		ProjectURL: srv.URL,
		APIKey:     "anon-key",
		Bucket:     "fuel-receipts",
	}, nil)
}

func TestUploadReceiptImage(t *testing.T) {
	var gotPath, gotUpsert, gotAuth, gotContentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUpsert = r.Header.Get("x-upsert")
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	})

	url, err := client.UploadReceiptImage(context.Background(), "TRK-7", "receipt.jpeg", "image/jpeg", []byte{0xFF, 0xD8})

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^/storage/v1/object/fuel-receipts/receipts/TRK-7/\d+\.jpeg$`), gotPath)
	assert.Equal(t, "false", gotUpsert, "primary uploads must never overwrite")
	assert.Equal(t, "Bearer anon-key", gotAuth)
	assert.Equal(t, "image/jpeg", gotContentType)
	assert.Regexp(t, regexp.MustCompile(`/storage/v1/object/public/fuel-receipts/receipts/TRK-7/\d+\.jpeg$`), url)
}

func TestUploadReceiptImage_Defaults(t *testing.T) {
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})

	// no truck id, no extension on the filename
	_, err := client.UploadReceiptImage(context.Background(), "", "receipt", "image/jpeg", []byte{0x01})

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`/receipts/unknown/\d+\.jpg$`), gotPath)
}

func TestUploadReceiptImage_ServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Bucket not found"}`))
	})

	_, err := client.UploadReceiptImage(context.Background(), "TRK-1", "r.png", "image/png", []byte{0x01})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bucket not found")
}

func TestHealthCheck_UploadsAndDeletes(t *testing.T) {
	var methods []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		if r.Method == http.MethodPost {
			assert.Equal(t, "true", r.Header.Get("x-upsert"), "health objects use upsert")
		}
		w.WriteHeader(http.StatusOK)
	})

	err := client.HealthCheck(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{http.MethodPost, http.MethodDelete}, methods)
}

func TestHealthCheck_CleanupFailureTolerated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	// the write succeeded, so the bucket is healthy
	assert.NoError(t, client.HealthCheck(context.Background()))
}
