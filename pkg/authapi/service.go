package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Service issues requests against the /auth endpoints. It is safe for
// concurrent use.
type Service struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Service.
type Option func(*Service)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		s.httpClient = client
	}
}

// NewService creates a Service for the backend at baseURL.
func NewService(baseURL string, opts ...Option) *Service {
	s := &Service{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// envelope is the backend response wrapper shared by every endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// errorBody is the backend error wrapper. Older deployments put the
// message under "message" instead of "error", so both are read.
type errorBody struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	Code       string `json:"code"`
	StatusCode int    `json:"statusCode"`
}

// Login exchanges credentials for a token pair and the user summary.
// A 401 yields an *Error wrapping ErrInvalidCredentials whose message
// is safe to show on the login form.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	resp, err := s.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		code, msg := readError(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, newError(ErrInvalidCredentials, code, msg, genericLoginMessage)
		}
		return nil, unexpectedStatus(resp.StatusCode, "login")
	}

	var result LoginResult
	if err := decodeData(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("parse login response: %w", err)
	}
	return &result, nil
}

// Refresh exchanges a refresh token for a new access token. Some
// deployments rotate the refresh token as well; when the response
// omits it, the caller keeps using the old one.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	resp, err := s.do(ctx, http.MethodPost, "/auth/refresh", "", refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		code, msg := readError(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, newError(ErrInvalidRefreshToken, code, msg, genericRefreshMessage)
		}
		return nil, unexpectedStatus(resp.StatusCode, "refresh")
	}

	var pair TokenPair
	if err := decodeData(resp.Body, &pair); err != nil {
		return nil, fmt.Errorf("parse refresh response: %w", err)
	}
	return &pair, nil
}

// Logout tells the backend to drop the session. Callers treat failure
// as non-fatal; local state is cleared regardless.
func (s *Service) Logout(ctx context.Context, accessToken string) error {
	resp, err := s.do(ctx, http.MethodPost, "/auth/logout", accessToken, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		code, msg := readError(resp)
		return newError(ErrUnauthenticated, code, msg, genericAuthMessage)
	default:
		return unexpectedStatus(resp.StatusCode, "logout")
	}
}

// CurrentUser fetches the authoritative user summary for the given
// access token.
func (s *Service) CurrentUser(ctx context.Context, accessToken string) (*User, error) {
	resp, err := s.do(ctx, http.MethodGet, "/auth/me", accessToken, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		code, msg := readError(resp)
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, newError(ErrUnauthenticated, code, msg, genericAuthMessage)
		}
		return nil, unexpectedStatus(resp.StatusCode, "current user")
	}

	var user User
	if err := decodeData(resp.Body, &user); err != nil {
		return nil, fmt.Errorf("parse current user response: %w", err)
	}
	return &user, nil
}

func (s *Service) do(ctx context.Context, method, path, accessToken string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// decodeData unwraps the response envelope and unmarshals its data
// field into out.
func decodeData(r io.Reader, out any) error {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return err
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("response has no data")
	}
	return json.Unmarshal(env.Data, out)
}

// readError extracts the error code and message from a failure
// response. Unstructured bodies yield empty strings and the caller
// falls back to a generic message.
func readError(resp *http.Response) (code, message string) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", ""
	}
	var eb errorBody
	if json.Unmarshal(body, &eb) != nil {
		return "", ""
	}
	message = eb.Error
	if message == "" {
		message = eb.Message
	}
	return eb.Code, message
}

func unexpectedStatus(status int, op string) error {
	if status >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s failed with HTTP %d", ErrUnavailable, op, status)
	}
	return fmt.Errorf("%s failed: HTTP %d", op, status)
}
