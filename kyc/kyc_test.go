package kyc_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/needhomes/needhomes-go/client"
	"github.com/needhomes/needhomes-go/kvstore/kvfakes"
	"github.com/needhomes/needhomes-go/kyc"
	"github.com/needhomes/needhomes-go/session"
)

func setup(t *testing.T, handler http.Handler) (*kyc.Service, *session.Store) {
	t.Helper()

	store, err := session.NewStore(kvfakes.NewFakeKV())
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := client.New(server.URL, store, client.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	service, err := kyc.New(c, store)
	require.NoError(t, err)
	return service, store
}

func TestStatusWritesStore(t *testing.T) {
	service, store := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":    "ok",
			"data":       map[string]any{"status": "VERIFIED", "documentType": "passport"},
			"statusCode": 200,
			"path":       r.URL.Path,
		})
	}))

	record, err := service.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, session.VerificationVerified, record.Status)

	stored := store.Verification()
	require.NotNil(t, stored)
	require.Equal(t, session.VerificationVerified, stored.Status)
	require.Equal(t, "passport", stored.DocumentType)
}

func TestSubmitRecordsPendingState(t *testing.T) {
	var gotDocumentType string
	service, store := setup(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body kyc.SubmitParams
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotDocumentType = body.DocumentType

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":    "submitted",
			"data":       map[string]any{"status": "PENDING", "documentType": body.DocumentType},
			"statusCode": 201,
			"path":       r.URL.Path,
		})
	}))

	record, err := service.Submit(context.Background(), kyc.SubmitParams{
		DocumentType:   "drivers-license",
		DocumentNumber: "ABC-123",
		FrontImageURL:  "https://cdn.example/front.png",
	})
	require.NoError(t, err)
	require.Equal(t, "drivers-license", gotDocumentType)
	require.Equal(t, session.VerificationPending, record.Status)
	require.Equal(t, session.VerificationPending, store.Verification().Status)
}
