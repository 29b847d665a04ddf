package client

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	apperrors "github.com/needhomes/needhomes-go/internal/errors"
)

const refreshPath = "auth/refresh"

// sessionExpiredNotice is shown exactly once per session termination.
const sessionExpiredNotice = "Your session has expired, please log in again"

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshData struct {
	AccessToken string `json:"accessToken"`
}

// handleUnauthorized is the refresh coordinator. For a request on its first
// attempt with a session present it performs one token refresh and replays
// the request; in every other case the 401 propagates to the caller.
//
// Concurrent 401s share a single in-flight refresh: each waiter still replays
// its own request with the resulting token, and the termination side effects
// on failure run inside the shared call so they fire once per storm.
func (c *Client) handleUnauthorized(ctx context.Context, req request, raw []byte, out any) error {
	authErr := c.finish(http.StatusUnauthorized, raw, req.path, nil)

	if req.attempt > 0 {
		// Already retried once with a fresh token; never refresh again
		c.logger.Debug().Str("request_id", req.id).Str("path", req.path).Msg("retried request unauthorized, propagating")
		return authErr
	}

	if c.store.Session() == nil {
		// No refresh token available, nothing to refresh
		return authErr
	}

	if _, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		return nil, c.refreshSession(ctx)
	}); err != nil {
		// The session is gone; the original 401 still belongs to the caller
		return authErr
	}

	retry := req
	retry.attempt++
	return c.do(ctx, retry, out)
}

// refreshSession exchanges the stored refresh token for a new access token,
// writing it into the store with all other session fields preserved. Any
// failure is fatal to the session, not to the process.
func (c *Client) refreshSession(ctx context.Context) error {
	sess := c.store.Session()
	if sess == nil {
		c.terminateSession()
		return errors.Wrap(apperrors.ErrRefreshFailed, "[Client refreshSession] session absent")
	}

	body, err := json.Marshal(refreshRequest{RefreshToken: sess.RefreshToken})
	if err != nil {
		c.terminateSession()
		return errors.Wrap(apperrors.ErrRefreshFailed, "[Client refreshSession] marshal")
	}

	// attempt starts at 1 so a 401 from the refresh endpoint itself
	// propagates instead of recursing
	req := request{
		id:      uuid.NewString(),
		method:  http.MethodPost,
		path:    refreshPath,
		body:    body,
		attempt: 1,
	}

	status, raw, err := c.dispatch(ctx, req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("token refresh call failed")
		c.terminateSession()
		return errors.Wrap(apperrors.ErrRefreshFailed, err.Error())
	}
	if status < 200 || status >= 300 {
		c.logger.Warn().Int("status", status).Msg("token refresh rejected")
		c.terminateSession()
		return errors.Wrapf(apperrors.ErrRefreshFailed, "refresh endpoint returned %d", status)
	}

	var data refreshData
	if err := c.finish(status, raw, refreshPath, &data); err != nil || data.AccessToken == "" {
		c.logger.Warn().Msg("token refresh response missing access token")
		c.terminateSession()
		return errors.Wrap(apperrors.ErrRefreshFailed, "missing access token in refresh response")
	}

	updated := *sess
	updated.AccessToken = data.AccessToken
	if err := c.store.SetSession(&updated); err != nil {
		c.terminateSession()
		return errors.Wrap(apperrors.ErrRefreshFailed, err.Error())
	}

	c.logger.Debug().Msg("access token refreshed")
	return nil
}

// terminateSession performs the session-ended fallout: clear the store,
// surface the notice, force navigation to login.
func (c *Client) terminateSession() {
	c.logger.Warn().Msg("terminating session")
	if err := c.store.ClearSession(); err != nil {
		c.logger.Error().Err(err).Msg("failed to clear session store")
	}
	if err := c.store.ClearVerification(); err != nil {
		c.logger.Error().Err(err).Msg("failed to clear verification record")
	}
	c.notifier.Notify(sessionExpiredNotice)
	c.navigator.NavigateToLogin()
}
