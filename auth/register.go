package auth

import (
	"context"

	"github.com/pkg/errors"
)

// RegisterParams are the fields collected at sign-up.
type RegisterParams struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccountType string `json:"accountType"`
}

// Register creates an account and parks the email address for the follow-up
// verification step. No session exists until the email is verified and the
// user logs in.
func (s *Service) Register(ctx context.Context, params RegisterParams) error {
	if err := s.client.Post(ctx, "auth/register", params, nil); err != nil {
		return errors.Wrap(err, "[Service Register]")
	}

	if err := s.store.SetTempUser(params.Email); err != nil {
		return errors.Wrap(err, "[Service Register] park pending email")
	}
	return nil
}
