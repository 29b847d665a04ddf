// Package withdrawals wraps the payout endpoints. Requests are created by
// investors and approved by admins; payment rails are entirely server-side.
package withdrawals

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/needhomes/needhomes-go/client"
)

// Withdrawal is a payout request and its review state.
type Withdrawal struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	Amount        int64      `json:"amount"` // Minor currency units
	BankAccountID string     `json:"bankAccountId"`
	Status        string     `json:"status"`
	RequestedAt   time.Time  `json:"requestedAt"`
	ReviewedAt    *time.Time `json:"reviewedAt,omitempty"`
}

// Page is one page of withdrawal requests.
type Page struct {
	Items []Withdrawal `json:"items"`
	Total int          `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type requestBody struct {
	Amount        int64  `json:"amount"`
	BankAccountID string `json:"bankAccountId"`
}

type Service struct {
	client *client.Client
}

func New(c *client.Client) (*Service, error) {
	if c == nil {
		return nil, errors.New("[withdrawals.New] client is required")
	}
	return &Service{client: c}, nil
}

// List fetches one page of withdrawal requests; admins see everyone's,
// investors see their own.
func (s *Service) List(ctx context.Context, page, limit int) (*Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var result Page
	if err := s.client.Get(ctx, "withdrawals", query, &result); err != nil {
		return nil, errors.Wrap(err, "[Service List]")
	}
	return &result, nil
}

// Request asks for a payout to a saved bank account.
func (s *Service) Request(ctx context.Context, amount int64, bankAccountID string) (*Withdrawal, error) {
	var result Withdrawal
	if err := s.client.Post(ctx, "withdrawals", requestBody{Amount: amount, BankAccountID: bankAccountID}, &result); err != nil {
		return nil, errors.Wrap(err, "[Service Request]")
	}
	return &result, nil
}

// Approve marks a request approved; admin only.
func (s *Service) Approve(ctx context.Context, id string) (*Withdrawal, error) {
	var result Withdrawal
	if err := s.client.Put(ctx, "withdrawals/"+id+"/approve", nil, &result); err != nil {
		return nil, errors.Wrap(err, "[Service Approve]")
	}
	return &result, nil
}
