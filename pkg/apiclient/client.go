package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxAuthRetries caps refresh-and-replay attempts per request.
const maxAuthRetries = 1

// TokenProvider supplies the current access token. An empty string
// means no token is attached (pre-login requests).
type TokenProvider interface {
	AccessToken() string
}

// Refresher performs one token refresh and returns the new access
// token. The session manager implements this; concurrent calls are
// coalesced there, not here.
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
}

// Meta is the pagination block the backend attaches to list responses.
type Meta struct {
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Total int `json:"total"`
	Limit int `json:"limit"`
}

// Client issues JSON requests against the back-office API. It is safe
// for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenProvider
	refresher  Refresher
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTokenProvider sets the source of bearer tokens.
func WithTokenProvider(p TokenProvider) Option {
	return func(c *Client) {
		c.tokens = p
	}
}

// WithRefresher enables the single refresh-and-replay on 401.
func WithRefresher(r Refresher) Option {
	return func(c *Client) {
		c.refresher = r
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request is the replayable form of an outgoing call. The body is
// held as bytes so a retry gets a fresh reader, and the retry count
// travels with the value instead of hiding on a shared object.
type request struct {
	method  string
	path    string
	query   url.Values
	body    []byte
	retries int
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Meta    *Meta           `json:"meta"`
}

type errorBody struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Code       string `json:"code"`
	StatusCode int    `json:"statusCode"`
}

// Get issues a GET and unmarshals the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	_, err := c.do(ctx, request{method: http.MethodGet, path: path, query: query}, out)
	return err
}

// GetWithMeta is Get plus the pagination meta of list responses.
func (c *Client) GetWithMeta(ctx context.Context, path string, query url.Values, out any) (Meta, error) {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodPut, path, body, out)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.send(ctx, http.MethodPatch, path, body, out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: path}, nil)
	return err
}

func (c *Client) send(ctx context.Context, method, path string, body, out any) error {
	var data []byte
	if body != nil {
		var err error
		data, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}
	_, err := c.do(ctx, request{method: method, path: path, body: data}, out)
	return err
}

// do performs one attempt, refreshing and replaying at most once on a
// 401. The override token, when set, takes precedence over the token
// provider so the replay is guaranteed to carry the refreshed token
// even if provider state lags.
func (c *Client) do(ctx context.Context, req request, out any) (Meta, error) {
	token := ""
	if c.tokens != nil {
		token = c.tokens.AccessToken()
	}

	for {
		resp, err := c.attempt(ctx, req, token)
		if err != nil {
			return Meta{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}

		if resp.StatusCode == http.StatusUnauthorized && c.refresher != nil && req.retries < maxAuthRetries {
			apiErr := drainError(resp)
			req.retries++

			fresh, refreshErr := c.refresher.Refresh(ctx)
			if refreshErr != nil {
				// Propagate the original 401; the session manager has
				// already decided what the refresh failure means.
				return Meta{}, apiErr
			}
			token = fresh
			continue
		}

		return c.finish(resp, out)
	}
}

func (c *Client) attempt(ctx context.Context, req request, token string) (*http.Response, error) {
	u := c.baseURL + req.path
	if len(req.query) > 0 {
		u += "?" + req.query.Encode()
	}

	var reader io.Reader
	if req.body != nil {
		reader = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u, reader)
	if err != nil {
		return nil, err
	}
	if req.body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	return c.httpClient.Do(httpReq)
}

func (c *Client) finish(resp *http.Response, out any) (Meta, error) {
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Meta{}, parseError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return Meta{}, nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return Meta{}, fmt.Errorf("parse response: %w", err)
	}
	meta := Meta{}
	if env.Meta != nil {
		meta = *env.Meta
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return meta, nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return Meta{}, fmt.Errorf("parse response data: %w", err)
	}
	return meta, nil
}

// drainError reads and closes an error response so the connection can
// be reused by the replay.
func drainError(resp *http.Response) *APIError {
	defer resp.Body.Close()
	return parseError(resp)
}

func parseError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	var eb errorBody
	if json.Unmarshal(body, &eb) != nil {
		return apiErr
	}
	apiErr.Code = eb.Code
	apiErr.Message = eb.Error
	if apiErr.Message == "" {
		apiErr.Message = eb.Message
	}
	return apiErr
}
