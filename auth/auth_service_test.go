package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/needhomes/needhomes-go/auth"
	"github.com/needhomes/needhomes-go/client"
	apperrors "github.com/needhomes/needhomes-go/internal/errors"
	"github.com/needhomes/needhomes-go/kvstore/kvfakes"
	"github.com/needhomes/needhomes-go/session"
)

type testFixture struct {
	store       *session.Store
	service     *auth.Service
	navigations atomic.Int64
}

func setupTestFixture(t *testing.T, handler http.Handler) *testFixture {
	t.Helper()

	store, err := session.NewStore(kvfakes.NewFakeKV())
	require.NoError(t, err)

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := client.New(server.URL, store, client.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	f := &testFixture{store: store}
	f.service, err = auth.New(c, store,
		auth.WithNavigator(client.NavigatorFunc(func() { f.navigations.Add(1) })),
	)
	require.NoError(t, err)

	return f
}

func writeEnvelope(w http.ResponseWriter, r *http.Request, status int, message, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"message":    message,
		"data":       data,
		"statusCode": status,
		"path":       r.URL.Path,
	})
}

func TestLoginStoresFullSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "ada@example.com" || body.Password != "hunter22" {
			writeEnvelope(w, r, http.StatusBadRequest, "invalid credentials", nil)
			return
		}
		writeEnvelope(w, r, http.StatusOK, "ok", map[string]any{
			"user": map[string]any{
				"id":    "user-1",
				"email": "ada@example.com",
				"roles": []string{"investor"},
			},
			"accessToken":  "A1",
			"refreshToken": "R1",
			"sessionId":    "sess-1",
		})
	})

	f := setupTestFixture(t, mux)

	sess, err := f.service.Login(context.Background(), "ada@example.com", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "user-1", sess.User.ID)
	require.Equal(t, "A1", sess.AccessToken)

	stored := f.store.Session()
	require.NotNil(t, stored)
	require.Equal(t, "sess-1", stored.SessionID)
}

func TestLoginFailureLeavesStoreEmpty(t *testing.T) {
	f := setupTestFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, r, http.StatusBadRequest, "invalid credentials", nil)
	}))

	_, err := f.service.Login(context.Background(), "ada@example.com", "wrong")
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "invalid credentials", apiErr.Message)
	require.Nil(t, f.store.Session())
}

func TestLogoutDeletesServerSessionAndClearsStore(t *testing.T) {
	var deletedSession string
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /auth/sessions/{id}", func(w http.ResponseWriter, r *http.Request) {
		deletedSession = r.PathValue("id")
		writeEnvelope(w, r, http.StatusOK, "session ended", nil)
	})

	f := setupTestFixture(t, mux)
	require.NoError(t, f.store.SetSession(&session.Session{
		User:         session.User{ID: "user-1"},
		AccessToken:  "A1",
		RefreshToken: "R1",
		SessionID:    "sess-1",
	}))
	require.NoError(t, f.store.SetVerification(&session.VerificationRecord{Status: session.VerificationVerified}))

	require.NoError(t, f.service.Logout(context.Background()))
	require.Equal(t, "sess-1", deletedSession)
	require.Nil(t, f.store.Session())
	require.Nil(t, f.store.Verification())
	require.Equal(t, int64(1), f.navigations.Load())
}

func TestLogoutIsBestEffortWhenServerFails(t *testing.T) {
	f := setupTestFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, r, http.StatusInternalServerError, "boom", nil)
	}))
	require.NoError(t, f.store.SetSession(&session.Session{
		User:         session.User{ID: "user-1"},
		AccessToken:  "A1",
		RefreshToken: "R1",
		SessionID:    "sess-1",
	}))

	require.NoError(t, f.service.Logout(context.Background()))
	require.Nil(t, f.store.Session())
	require.Equal(t, int64(1), f.navigations.Load())
}

func TestRegisterParksEmailForVerification(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, r, http.StatusCreated, "account created", nil)
	})
	var verified struct {
		Email string `json:"email"`
		Code  string `json:"code"`
	}
	mux.HandleFunc("POST /auth/verify-email", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&verified)
		writeEnvelope(w, r, http.StatusOK, "email verified", nil)
	})

	f := setupTestFixture(t, mux)

	require.NoError(t, f.service.Register(context.Background(), auth.RegisterParams{
		FirstName:   "Ada",
		Email:       "ada@example.com",
		Password:    "hunter22",
		AccountType: "individual",
	}))

	email, ok := f.store.TempUser()
	require.True(t, ok)
	require.Equal(t, "ada@example.com", email)

	require.NoError(t, f.service.VerifyEmail(context.Background(), "123456"))
	require.Equal(t, "ada@example.com", verified.Email)
	require.Equal(t, "123456", verified.Code)

	_, ok = f.store.TempUser()
	require.False(t, ok)
}

func TestVerifyEmailWithoutPendingRegistration(t *testing.T) {
	f := setupTestFixture(t, http.NewServeMux())

	err := f.service.VerifyEmail(context.Background(), "123456")
	require.ErrorIs(t, err, apperrors.ErrNoPendingVerification)
}

func TestProfileRefreshesVerificationRecord(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/profile", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, r, http.StatusOK, "ok", map[string]any{
			"user": map[string]any{"id": "user-1", "email": "ada@example.com"},
			"kyc":  map[string]any{"status": "REJECTED", "rejectionReason": "document unreadable"},
		})
	})

	f := setupTestFixture(t, mux)
	require.NoError(t, f.store.SetSession(&session.Session{
		User:         session.User{ID: "user-1"},
		AccessToken:  "A1",
		RefreshToken: "R1",
		SessionID:    "sess-1",
	}))

	profile, err := f.service.Profile(context.Background())
	require.NoError(t, err)
	require.Equal(t, "user-1", profile.User.ID)

	record := f.store.Verification()
	require.NotNil(t, record)
	require.Equal(t, session.VerificationRejected, record.Status)
	require.Equal(t, "document unreadable", record.RejectionReason)
}
