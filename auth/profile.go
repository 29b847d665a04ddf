package auth

import (
	"context"

	"github.com/pkg/errors"

	"github.com/needhomes/needhomes-go/session"
)

// Profile is the backend's view of the current account, including the KYC
// verification record the UI gates actions on.
type Profile struct {
	User         session.User                `json:"user"`
	Verification *session.VerificationRecord `json:"kyc"`
}

// Profile fetches the current account and refreshes the stored verification
// record on the way through.
func (s *Service) Profile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := s.client.Get(ctx, "auth/profile", nil, &profile); err != nil {
		return nil, errors.Wrap(err, "[Service Profile]")
	}

	if profile.Verification != nil {
		if err := s.store.SetVerification(profile.Verification); err != nil {
			return nil, errors.Wrap(err, "[Service Profile] store verification")
		}
	}

	return &profile, nil
}
