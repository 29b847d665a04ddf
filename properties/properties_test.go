package properties_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/needhomes/needhomes-go/client"
	"github.com/needhomes/needhomes-go/kvstore/kvfakes"
	"github.com/needhomes/needhomes-go/properties"
	"github.com/needhomes/needhomes-go/session"
)

func setupService(t *testing.T, handler http.Handler) *properties.Service {
	t.Helper()

	store, err := session.NewStore(kvfakes.NewFakeKV())
	require.NoError(t, err)
	require.NoError(t, store.SetSession(&session.Session{
		User:         session.User{ID: "user-1"},
		AccessToken:  "A1",
		RefreshToken: "R1",
		SessionID:    "sess-1",
	}))

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := client.New(server.URL, store, client.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	service, err := properties.New(c)
	require.NoError(t, err)
	return service
}

func TestListSendsPaginationQuery(t *testing.T) {
	var gotPage, gotLimit string
	service := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPage = r.URL.Query().Get("page")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message": "ok",
			"data": map[string]any{
				"items": []map[string]any{{"id": "p1", "title": "Ikoyi Terrace"}},
				"total": 14,
				"page":  2,
				"limit": 10,
			},
			"statusCode": 200,
			"path":       r.URL.Path,
		})
	}))

	page, err := service.List(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Equal(t, "2", gotPage)
	require.Equal(t, "10", gotLimit)
	require.Equal(t, 14, page.Total)
	require.Len(t, page.Items, 1)
	require.Equal(t, "Ikoyi Terrace", page.Items[0].Title)
}

func TestGetNotFound(t *testing.T) {
	service := setupService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"message":    "property not found",
			"statusCode": 404,
			"path":       r.URL.Path,
		})
	}))

	_, err := service.Get(context.Background(), "missing")
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, "property not found", apiErr.Message)
}
