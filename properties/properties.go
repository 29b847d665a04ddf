// Package properties wraps the property listing endpoints. Listings are
// created by partners and super-admins; investors browse and fund them.
package properties

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/needhomes/needhomes-go/client"
)

// Property is a co-investable real-estate listing.
type Property struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	Description    string    `json:"description"`
	Price          int64     `json:"price"` // Minor currency units
	TotalUnits     int       `json:"totalUnits"`
	AvailableUnits int       `json:"availableUnits"`
	ImageURLs      []string  `json:"imageUrls"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Page is one page of listings.
type Page struct {
	Items []Property `json:"items"`
	Total int        `json:"total"`
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
}

// CreateParams are the fields required to publish a listing.
type CreateParams struct {
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Price       int64    `json:"price"`
	TotalUnits  int      `json:"totalUnits"`
	ImageURLs   []string `json:"imageUrls,omitempty"`
}

type Service struct {
	client *client.Client
}

func New(c *client.Client) (*Service, error) {
	if c == nil {
		return nil, errors.New("[properties.New] client is required")
	}
	return &Service{client: c}, nil
}

// List fetches one page of listings.
func (s *Service) List(ctx context.Context, page, limit int) (*Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var result Page
	if err := s.client.Get(ctx, "properties", query, &result); err != nil {
		return nil, errors.Wrap(err, "[Service List]")
	}
	return &result, nil
}

// Get fetches a single listing.
func (s *Service) Get(ctx context.Context, id string) (*Property, error) {
	var result Property
	if err := s.client.Get(ctx, "properties/"+id, nil, &result); err != nil {
		return nil, errors.Wrap(err, "[Service Get]")
	}
	return &result, nil
}

// Create publishes a listing.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Property, error) {
	var result Property
	if err := s.client.Post(ctx, "properties", params, &result); err != nil {
		return nil, errors.Wrap(err, "[Service Create]")
	}
	return &result, nil
}

// Delete removes a listing.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.client.Delete(ctx, "properties/"+id, nil); err != nil {
		return errors.Wrap(err, "[Service Delete]")
	}
	return nil
}
