package auth

import (
	"context"

	"github.com/pkg/errors"

	"github.com/needhomes/needhomes-go/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginData struct {
	User         session.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	SessionID    string       `json:"sessionId"`
}

// Login authenticates against the backend and writes the resulting session
// into the store.
func (s *Service) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var data loginData
	if err := s.client.Post(ctx, "auth/login", loginRequest{Email: email, Password: password}, &data); err != nil {
		return nil, errors.Wrap(err, "[Service Login]")
	}

	sess := &session.Session{
		User:         data.User,
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
		SessionID:    data.SessionID,
	}
	if err := s.store.SetSession(sess); err != nil {
		return nil, errors.Wrap(err, "[Service Login] store session")
	}

	s.logger.Info().Str("user_id", sess.User.ID).Msg("logged in")
	return sess, nil
}
