package auth

import (
	"context"

	"github.com/pkg/errors"
)

// Logout ends the session. The server-side session deletion is best-effort:
// its failure is logged but local state is cleared and the navigator runs
// regardless.
func (s *Service) Logout(ctx context.Context) error {
	if sess := s.store.Session(); sess != nil {
		if err := s.client.Delete(ctx, "auth/sessions/"+sess.SessionID, nil); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sess.SessionID).Msg("server-side session deletion failed")
		}
	}

	if err := s.store.ClearSession(); err != nil {
		return errors.Wrap(err, "[Service Logout] clear session")
	}
	if err := s.store.ClearVerification(); err != nil {
		return errors.Wrap(err, "[Service Logout] clear verification")
	}

	s.navigator.NavigateToLogin()
	return nil
}
