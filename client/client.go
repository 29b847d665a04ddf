// Package client dispatches authenticated requests to the NeedHomes backend.
// It attaches the session store's current bearer token to every request,
// decodes the backend's response envelope, and on a 401 hands control to the
// refresh coordinator before the caller sees a result.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/needhomes/needhomes-go/session"
	"github.com/needhomes/needhomes-go/token"
)

// Notifier surfaces user-visible notices (e.g., "session expired").
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Navigator forces navigation to the login entry point after session
// termination. Injected so the core stays independent of any routing
// mechanism.
type Navigator interface {
	NavigateToLogin()
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func()

func (f NavigatorFunc) NavigateToLogin() { f() }

// Client is the HTTP client wrapper. All requests share one base address and
// one credential-attachment policy.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store
	notifier   Notifier
	navigator  Navigator
	logger     zerolog.Logger

	// Coalesces concurrent refresh attempts into a single in-flight call
	refreshGroup singleflight.Group
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (timeout policy lives
// there; a timed-out refresh counts as a refresh failure).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithNotifier sets the user-notice sink.
func WithNotifier(n Notifier) Option {
	return func(c *Client) {
		c.notifier = n
	}
}

// WithNavigator sets the forced-navigation callback.
func WithNavigator(n Navigator) Option {
	return func(c *Client) {
		c.navigator = n
	}
}

// New creates a Client bound to baseURL and the given session store.
func New(baseURL string, store *session.Store, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[client.New] base URL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errors.Wrap(err, "[client.New] invalid base URL")
	}
	if store == nil {
		return nil, errors.New("[client.New] session store is required")
	}

	// One credential-forwarding policy for all requests: session cookies ride
	// alongside the bearer token
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, errors.Wrap(err, "[client.New] cookie jar")
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second, Jar: jar},
		store:      store,
		notifier:   NotifierFunc(func(string) {}),
		navigator:  NavigatorFunc(func() {}),
		logger:     zerolog.Nop(),
	}

	for _, opt := range options {
		opt(c)
	}

	return c, nil
}

// request is an immutable descriptor of one logical call. The body is held as
// bytes so the request can be replayed after a token refresh, and the attempt
// counter carries the retried-once mark (it is incremented, never reset).
type request struct {
	id      string
	method  string
	path    string
	query   url.Values
	body    []byte
	attempt int
}

// Do issues a request with a JSON body (may be nil) and unmarshals the
// envelope's data field into out (may be nil).
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "[Client Do] marshal body for %s %s", method, path)
		}
	}

	req := request{
		id:     uuid.NewString(),
		method: method,
		path:   strings.TrimPrefix(path, "/"),
		query:  query,
		body:   raw,
	}
	return c.do(ctx, req, out)
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, req request, out any) error {
	status, raw, err := c.dispatch(ctx, req)
	if err != nil {
		// Transient network failure: propagated, never retried here
		return errors.Wrapf(err, "[Client do] %s %s", req.method, req.path)
	}

	if status == http.StatusUnauthorized {
		return c.handleUnauthorized(ctx, req, raw, out)
	}

	return c.finish(status, raw, req.path, out)
}

// dispatch builds the wire request, attaches the bearer token read from the
// store at this moment, and returns the response status and body.
func (c *Client) dispatch(ctx context.Context, req request) (int, []byte, error) {
	target := c.baseURL + "/" + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return 0, nil, err
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("X-Request-ID", req.id)

	if sess := c.store.Session(); sess != nil {
		httpReq.Header.Set("Authorization", "Bearer "+sess.AccessToken)
		// Parsing the token is only worth it when the debug line can be seen
		if c.logger.GetLevel() <= zerolog.DebugLevel {
			if claims, err := token.Inspect(sess.AccessToken); err == nil && claims.Expired(time.Now()) {
				c.logger.Debug().Str("request_id", req.id).Str("path", req.path).Msg("attaching expired access token")
			}
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, raw, nil
}

// finish decodes the envelope: 2xx unmarshals data into out, anything else
// becomes an APIError with the extracted message.
func (c *Client) finish(status int, raw []byte, path string, out any) error {
	var env Envelope
	// A missing or malformed envelope falls back to the HTTP status text
	_ = json.Unmarshal(raw, &env)

	if status >= 200 && status < 300 {
		if out == nil || len(env.Data) == 0 {
			return nil
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Wrapf(err, "[Client finish] decode data for %s", path)
		}
		return nil
	}

	if env.Path != "" {
		path = env.Path
	}
	return &APIError{
		StatusCode: status,
		Message:    env.ExtractMessage(http.StatusText(status)),
		Path:       path,
	}
}
