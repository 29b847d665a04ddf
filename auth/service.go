// Package auth drives the authentication flows of the NeedHomes backend:
// login, logout, registration, email verification, and profile refresh. The
// service owns writing the resulting state into the session store; business
// rules (password policy, verification emails) stay server-side.
package auth

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/needhomes/needhomes-go/client"
	"github.com/needhomes/needhomes-go/session"
)

// Service wraps the authentication endpoints.
type Service struct {
	client    *client.Client
	store     *session.Store
	navigator client.Navigator
	logger    zerolog.Logger
}

// Option defines a function type to modify the Service instance.
type Option func(*Service)

// WithNavigator sets the callback invoked after an explicit logout.
func WithNavigator(n client.Navigator) Option {
	return func(s *Service) {
		s.navigator = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates an auth Service over the given client and store.
func New(c *client.Client, store *session.Store, options ...Option) (*Service, error) {
	if c == nil {
		return nil, errors.New("[auth.New] client is required")
	}
	if store == nil {
		return nil, errors.New("[auth.New] session store is required")
	}

	s := &Service{
		client:    c,
		store:     store,
		navigator: client.NavigatorFunc(func() {}),
		logger:    zerolog.Nop(),
	}

	for _, opt := range options {
		opt(s)
	}

	return s, nil
}
