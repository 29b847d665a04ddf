package auth

import (
	"context"

	"github.com/pkg/errors"

	apperrors "github.com/needhomes/needhomes-go/internal/errors"
)

type verifyEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type resendVerificationRequest struct {
	Email string `json:"email"`
}

// VerifyEmail completes the registration flow using the parked email address
// and the code the user received. The parked address is consumed on success.
func (s *Service) VerifyEmail(ctx context.Context, code string) error {
	email, ok := s.store.TempUser()
	if !ok {
		return errors.Wrap(apperrors.ErrNoPendingVerification, "[Service VerifyEmail]")
	}

	if err := s.client.Post(ctx, "auth/verify-email", verifyEmailRequest{Email: email, Code: code}, nil); err != nil {
		return errors.Wrap(err, "[Service VerifyEmail]")
	}

	return s.store.ClearTempUser()
}

// ResendVerification asks the backend to send a fresh code to the parked
// email address.
func (s *Service) ResendVerification(ctx context.Context) error {
	email, ok := s.store.TempUser()
	if !ok {
		return errors.Wrap(apperrors.ErrNoPendingVerification, "[Service ResendVerification]")
	}

	if err := s.client.Post(ctx, "auth/resend-verification", resendVerificationRequest{Email: email}, nil); err != nil {
		return errors.Wrap(err, "[Service ResendVerification]")
	}
	return nil
}
