// Package kyc wraps the verification endpoints. Verification itself happens
// server-side; this service submits documents and keeps the store's
// verification record current.
package kyc

import (
	"context"

	"github.com/pkg/errors"

	"github.com/needhomes/needhomes-go/client"
	"github.com/needhomes/needhomes-go/session"
)

// SubmitParams are the document details sent for review.
type SubmitParams struct {
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`
	FrontImageURL  string `json:"frontImageUrl"`
	BackImageURL   string `json:"backImageUrl,omitempty"`
}

type Service struct {
	client *client.Client
	store  *session.Store
}

func New(c *client.Client, store *session.Store) (*Service, error) {
	if c == nil {
		return nil, errors.New("[kyc.New] client is required")
	}
	if store == nil {
		return nil, errors.New("[kyc.New] session store is required")
	}
	return &Service{client: c, store: store}, nil
}

// Status fetches the current verification record and writes it into the
// store.
func (s *Service) Status(ctx context.Context) (*session.VerificationRecord, error) {
	var record session.VerificationRecord
	if err := s.client.Get(ctx, "kyc/status", nil, &record); err != nil {
		return nil, errors.Wrap(err, "[Service Status]")
	}

	if err := s.store.SetVerification(&record); err != nil {
		return nil, errors.Wrap(err, "[Service Status] store verification")
	}
	return &record, nil
}

// Submit sends documents for review and records the resulting (typically
// PENDING) state.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (*session.VerificationRecord, error) {
	var record session.VerificationRecord
	if err := s.client.Post(ctx, "kyc", params, &record); err != nil {
		return nil, errors.Wrap(err, "[Service Submit]")
	}

	if err := s.store.SetVerification(&record); err != nil {
		return nil, errors.Wrap(err, "[Service Submit] store verification")
	}
	return &record, nil
}
