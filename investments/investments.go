// Package investments wraps the investment endpoints: funding units of a
// property and tracking the resulting positions. All accounting is
// server-side; amounts here are read-only echoes.
package investments

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/needhomes/needhomes-go/client"
)

// Investment is a funded position in a property.
type Investment struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	UserID     string    `json:"userId"`
	Units      int       `json:"units"`
	Amount     int64     `json:"amount"` // Minor currency units
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Page is one page of positions.
type Page struct {
	Items []Investment `json:"items"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type createRequest struct {
	PropertyID string `json:"propertyId"`
	Units      int    `json:"units"`
}

type Service struct {
	client *client.Client
}

func New(c *client.Client) (*Service, error) {
	if c == nil {
		return nil, errors.New("[investments.New] client is required")
	}
	return &Service{client: c}, nil
}

// List fetches one page of the caller's positions.
func (s *Service) List(ctx context.Context, page, limit int) (*Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var result Page
	if err := s.client.Get(ctx, "investments", query, &result); err != nil {
		return nil, errors.Wrap(err, "[Service List]")
	}
	return &result, nil
}

// Get fetches a single position.
func (s *Service) Get(ctx context.Context, id string) (*Investment, error) {
	var result Investment
	if err := s.client.Get(ctx, "investments/"+id, nil, &result); err != nil {
		return nil, errors.Wrap(err, "[Service Get]")
	}
	return &result, nil
}

// Create funds units of a property.
func (s *Service) Create(ctx context.Context, propertyID string, units int) (*Investment, error) {
	var result Investment
	if err := s.client.Post(ctx, "investments", createRequest{PropertyID: propertyID, Units: units}, &result); err != nil {
		return nil, errors.Wrap(err, "[Service Create]")
	}
	return &result, nil
}
