// Package admin wraps the super-admin endpoints: sub-admin management and
// promotions. The backend enforces the role checks; these calls simply fail
// with 403 for anyone else.
package admin

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/needhomes/needhomes-go/client"
)

// SubAdmin is a staff account with a scoped dashboard.
type SubAdmin struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	InvitedAt time.Time `json:"invitedAt"`
}

// Promotion is a marketing campaign entry shown on the storefront.
type Promotion struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Code      string    `json:"code"`
	Discount  int       `json:"discount"` // Percentage
	ExpiresAt time.Time `json:"expiresAt"`
}

// PromotionParams are the fields required to create a promotion.
type PromotionParams struct {
	Title     string    `json:"title"`
	Code      string    `json:"code"`
	Discount  int       `json:"discount"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type inviteRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type Service struct {
	client *client.Client
}

func New(c *client.Client) (*Service, error) {
	if c == nil {
		return nil, errors.New("[admin.New] client is required")
	}
	return &Service{client: c}, nil
}

// ListSubAdmins fetches all sub-admin accounts.
func (s *Service) ListSubAdmins(ctx context.Context) ([]SubAdmin, error) {
	var result []SubAdmin
	if err := s.client.Get(ctx, "admin/sub-admins", nil, &result); err != nil {
		return nil, errors.Wrap(err, "[Service ListSubAdmins]")
	}
	return result, nil
}

// InviteSubAdmin creates a sub-admin account and triggers the invite email.
func (s *Service) InviteSubAdmin(ctx context.Context, firstName, lastName, email string) (*SubAdmin, error) {
	var result SubAdmin
	body := inviteRequest{FirstName: firstName, LastName: lastName, Email: email}
	if err := s.client.Post(ctx, "admin/sub-admins", body, &result); err != nil {
		return nil, errors.Wrap(err, "[Service InviteSubAdmin]")
	}
	return &result, nil
}

// RemoveSubAdmin revokes a sub-admin account.
func (s *Service) RemoveSubAdmin(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "admin/sub-admins/"+id, nil); err != nil {
		return errors.Wrap(err, "[Service RemoveSubAdmin]")
	}
	return nil
}

// ListPromotions fetches all promotions.
func (s *Service) ListPromotions(ctx context.Context) ([]Promotion, error) {
	var result []Promotion
	if err := s.client.Get(ctx, "admin/promotions", nil, &result); err != nil {
		return nil, errors.Wrap(err, "[Service ListPromotions]")
	}
	return result, nil
}

// CreatePromotion publishes a promotion.
func (s *Service) CreatePromotion(ctx context.Context, params PromotionParams) (*Promotion, error) {
	var result Promotion
	if err := s.client.Post(ctx, "admin/promotions", params, &result); err != nil {
		return nil, errors.Wrap(err, "[Service CreatePromotion]")
	}
	return &result, nil
}

// DeletePromotion removes a promotion.
func (s *Service) DeletePromotion(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "admin/promotions/"+id, nil); err != nil {
		return errors.Wrap(err, "[Service DeletePromotion]")
	}
	return nil
}
