// Package httpclient performs authenticated requests against the
// school-management backend, transparently recovering from token expiry: a
// 401 clears the session cache, runs the auth-failure handler, and retries
// the original request once with the refreshed token.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	interrors "github.com/classpoint/classpoint-go/internal/errors"
	"github.com/classpoint/classpoint-go/session"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// maxBodyBytes bounds response body reads.
const maxBodyBytes = 4 << 20

// FailureHandler runs the refresh flow after a 401. True means the caller
// should retry with a re-read session. *auth.FailureHandler satisfies it.
type FailureHandler interface {
	HandleAuthFailure(ctx context.Context) bool
}

// Client is the authenticated fetch wrapper shared by the API clients.
type Client struct {
	baseURL    string
	sessions   *session.Cache
	handler    FailureHandler
	httpClient *http.Client
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New initializes an authenticated client. handler may be nil, in which case
// a 401 is surfaced without a refresh attempt.
func New(baseURL string, sessions *session.Cache, handler FailureHandler, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[httpclient.New] baseURL is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errors.Wrap(err, "[httpclient.New] invalid baseURL")
	}
	if sessions == nil {
		return nil, errors.New("[httpclient.New] session cache is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		sessions:   sessions,
		handler:    handler,
		httpClient: http.DefaultClient,
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// RequestOption mutates an outgoing request before it is sent.
type RequestOption func(*http.Request)

// WithHeader sets a header on the request. Caller-supplied headers take
// precedence over the client's defaults.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// Response is a completed backend response with its body fully read.
type Response struct {
	StatusCode int
	Body       []byte
}

// Decode unmarshals the response body into v. A 204 or empty body is a no-op.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Wrap(err, "[Response.Decode] unmarshal body")
	}
	return nil
}

// Do performs an authenticated request. body, when non-nil, is JSON encoded.
// Returns interrors.ErrNoSession when no token is available, an *APIError for
// non-2xx responses, and interrors.ErrAuthExpired when refresh-and-retry
// failed (the handler has already signed the user out).
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, errors.Wrapf(err, "[Client.Do] marshal %s %s body", method, path)
		}
	}

	current, err := c.sessions.Get(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Do] session lookup")
	}
	if !current.HasAccessToken() {
		return nil, interrors.ErrNoSession
	}

	resp, err := c.send(ctx, method, path, payload, current.AccessToken, opts)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return c.recoverAuth(ctx, method, path, payload, opts)
	}

	return c.finish(resp)
}

// recoverAuth handles a 401: drop the cached session, run the failure
// handler, and retry the original request exactly once with the refreshed
// token.
func (c *Client) recoverAuth(ctx context.Context, method, path string, payload []byte, opts []RequestOption) (*Response, error) {
	c.sessions.Clear()

	if c.handler == nil || !c.handler.HandleAuthFailure(ctx) {
		return nil, interrors.ErrAuthExpired
	}

	refreshed, err := c.sessions.Get(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.recoverAuth] session re-read")
	}
	if !refreshed.HasAccessToken() {
		return nil, interrors.ErrAuthExpired
	}

	log.Debug().Str("method", method).Str("path", path).Msg("Retrying request with refreshed token")
	resp, err := c.send(ctx, method, path, payload, refreshed.AccessToken, opts)
	if err != nil {
		return nil, err
	}
	return c.finish(resp)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, accessToken string, opts []RequestOption) (*Response, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, errors.Wrapf(err, "[Client.send] %s %s", method, path)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("X-Request-ID", uuid.New().String())
	for _, opt := range opts {
		opt(req)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "[Client.send] %s %s", method, path)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "[Client.send] read %s %s response", method, path)
	}

	return &Response{StatusCode: httpResp.StatusCode, Body: respBody}, nil
}

// finish converts non-2xx responses into APIErrors.
func (c *Client) finish(resp *Response) (*Response, error) {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	return nil, &APIError{
		StatusCode: resp.StatusCode,
		Message:    ErrorMessage(resp.Body),
	}
}

// Get performs an authenticated GET and decodes the body into out when out is
// non-nil.
func (c *Client) Get(ctx context.Context, path string, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, out, opts)
}

// Post performs an authenticated POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, in, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPost, path, in, out, opts)
}

// Put performs an authenticated PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, in, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPut, path, in, out, opts)
}

// Patch performs an authenticated PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, in, out any, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodPatch, path, in, out, opts)
}

// Delete performs an authenticated DELETE.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) error {
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil, opts)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out any, opts []RequestOption) error {
	resp, err := c.Do(ctx, method, path, in, opts...)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return resp.Decode(out)
}
