package mockhttp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Handler is a function that handles an HTTP request and returns true if it handled it.
type Handler func(w http.ResponseWriter, r *http.Request) bool

// ServerBuilder builds mock HTTP servers with configurable behavior.
type ServerBuilder struct {
	handlers    []Handler
	defaultCode int
	capture     *Capture
}

// New creates a new ServerBuilder.
func New() *ServerBuilder {
	return &ServerBuilder{
		defaultCode: http.StatusNotFound,
	}
}

// DefaultStatus sets the status code returned when no handler matches.
func (b *ServerBuilder) DefaultStatus(code int) *ServerBuilder {
	b.defaultCode = code
	return b
}

// Handler adds a custom handler function.
func (b *ServerBuilder) Handler(h Handler) *ServerBuilder {
	b.handlers = append(b.handlers, h)
	return b
}

// Envelope returns a success envelope response for requests matching
// the given path: {"success": true, "data": <data>}.
func (b *ServerBuilder) Envelope(path string, data any) *ServerBuilder {
	return b.JSONWithStatus(path, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	})
}

// EnvelopeWithMeta returns a success envelope carrying pagination metadata.
func (b *ServerBuilder) EnvelopeWithMeta(path string, data, meta any) *ServerBuilder {
	return b.JSONWithStatus(path, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
		"meta":    meta,
	})
}

// EnvelopeError returns an error envelope with the given HTTP status:
// {"success": false, "error": <message>, "code": <code>, "statusCode": <status>}.
func (b *ServerBuilder) EnvelopeError(path string, status int, code, message string) *ServerBuilder {
	return b.JSONWithStatus(path, status, map[string]any{
		"success":    false,
		"error":      message,
		"code":       code,
		"statusCode": status,
	})
}

// JSON returns a JSON response for requests matching the given path.
// Uses HTTP 200 status code.
func (b *ServerBuilder) JSON(path string, response any) *ServerBuilder {
	return b.JSONWithStatus(path, http.StatusOK, response)
}

// JSONWithStatus returns a JSON response with a specific status code.
func (b *ServerBuilder) JSONWithStatus(path string, code int, response any) *ServerBuilder {
	return b.Handler(func(w http.ResponseWriter, r *http.Request) bool {
		if !matchPath(r.URL.Path, path) {
			return false
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(response)
		return true
	})
}

// Status returns an empty response with the given status code.
func (b *ServerBuilder) Status(path string, code int) *ServerBuilder {
	return b.Handler(func(w http.ResponseWriter, r *http.Request) bool {
		if !matchPath(r.URL.Path, path) {
			return false
		}
		w.WriteHeader(code)
		return true
	})
}

// Sequence returns responses in order for successive requests to the
// same path, repeating the last one once exhausted. Used to script a
// 401 followed by a 200 on retry.
func (b *ServerBuilder) Sequence(path string, responses ...SequencedResponse) *ServerBuilder {
	var mu sync.Mutex
	var calls int
	return b.Handler(func(w http.ResponseWriter, r *http.Request) bool {
		if !matchPath(r.URL.Path, path) {
			return false
		}
		mu.Lock()
		i := calls
		calls++
		mu.Unlock()
		if i >= len(responses) {
			i = len(responses) - 1
		}
		resp := responses[i]
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.Status)
		if resp.Body != nil {
			json.NewEncoder(w).Encode(resp.Body)
		}
		return true
	})
}

// SequencedResponse is one scripted response in a Sequence.
type SequencedResponse struct {
	Status int
	Body   any
}

// Ok builds a success-envelope sequenced response.
func Ok(data any) SequencedResponse {
	return SequencedResponse{
		Status: http.StatusOK,
		Body:   map[string]any{"success": true, "data": data},
	}
}

// Err builds an error-envelope sequenced response.
func Err(status int, code, message string) SequencedResponse {
	return SequencedResponse{
		Status: status,
		Body: map[string]any{
			"success":    false,
			"error":      message,
			"code":       code,
			"statusCode": status,
		},
	}
}

// RequireBearer enforces a bearer token on all requests except the
// listed exempt paths. Returns 401 with an error envelope on mismatch.
func (b *ServerBuilder) RequireBearer(token string, exempt ...string) *ServerBuilder {
	return b.Handler(func(w http.ResponseWriter, r *http.Request) bool {
		for _, p := range exempt {
			if matchPath(r.URL.Path, p) {
				return false
			}
		}
		if r.Header.Get("Authorization") != "Bearer "+token {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"success":    false,
				"error":      "invalid or expired token",
				"code":       "UNAUTHORIZED",
				"statusCode": http.StatusUnauthorized,
			})
			return true
		}
		return false
	})
}

// RequireHeader ensures a specific header is present with an expected value.
// Returns 400 if header is missing or doesn't match.
func (b *ServerBuilder) RequireHeader(name, value string) *ServerBuilder {
	return b.Handler(func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get(name) != value {
			w.WriteHeader(http.StatusBadRequest)
			return true
		}
		return false
	})
}

// Capture enables request capture for inspection in tests.
// Returns the Capture object for accessing captured requests.
func (b *ServerBuilder) Capture() *Capture {
	if b.capture == nil {
		b.capture = &Capture{}
		b.Handler(func(w http.ResponseWriter, r *http.Request) bool {
			b.capture.record(r)
			return false // Continue to next handler
		})
	}
	return b.capture
}

// Route adds a handler that matches both method and path.
func (b *ServerBuilder) Route(method, path string, handler http.HandlerFunc) *ServerBuilder {
	return b.Handler(func(w http.ResponseWriter, r *http.Request) bool {
		if r.Method != method || !matchPath(r.URL.Path, path) {
			return false
		}
		handler(w, r)
		return true
	})
}

// RouteFunc adds a handler that matches path with a custom response function.
func (b *ServerBuilder) RouteFunc(path string, handler http.HandlerFunc) *ServerBuilder {
	return b.Handler(func(w http.ResponseWriter, r *http.Request) bool {
		if !matchPath(r.URL.Path, path) {
			return false
		}
		handler(w, r)
		return true
	})
}

// Build creates the httptest.Server with all configured handlers.
func (b *ServerBuilder) Build() *httptest.Server {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, h := range b.handlers {
			if h(w, r) {
				return
			}
		}
		// No handler matched
		w.WriteHeader(b.defaultCode)
	})
	return httptest.NewServer(handler)
}

// BuildURL creates the server and returns its URL plus a close func.
func (b *ServerBuilder) BuildURL() (string, func()) {
	server := b.Build()
	return server.URL, server.Close
}

// matchPath checks if the request path matches the pattern.
// Supports exact match and prefix match with "*" suffix.
func matchPath(requestPath, pattern string) bool {
	if strings.HasSuffix(pattern, "*") {
		prefix := strings.TrimSuffix(pattern, "*")
		return strings.HasPrefix(requestPath, prefix)
	}
	return requestPath == pattern
}

// Capture stores captured HTTP requests for test assertions.
type Capture struct {
	mu       sync.Mutex
	requests []CapturedRequest
}

// CapturedRequest holds data from a captured HTTP request.
type CapturedRequest struct {
	Method  string
	Path    string
	Headers http.Header
	Body    []byte
	Query   map[string][]string
}

func (c *Capture) record(r *http.Request) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var body []byte
	if r.Body != nil {
		body, _ = readAndRestore(r)
	}

	c.requests = append(c.requests, CapturedRequest{
		Method:  r.Method,
		Path:    r.URL.Path,
		Headers: r.Header.Clone(),
		Body:    body,
		Query:   r.URL.Query(),
	})
}

// Count returns the number of captured requests.
func (c *Capture) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

// CountPath returns the number of captured requests for a path.
func (c *Capture) CountPath(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, r := range c.requests {
		if matchPath(r.Path, path) {
			n++
		}
	}
	return n
}

// Last returns the most recent captured request, or nil if none.
func (c *Capture) Last() *CapturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		return nil
	}
	return &c.requests[len(c.requests)-1]
}

// All returns all captured requests.
func (c *Capture) All() []CapturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]CapturedRequest, len(c.requests))
	copy(result, c.requests)
	return result
}

// Get returns the request at index i, or nil if out of bounds.
func (c *Capture) Get(i int) *CapturedRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.requests) {
		return nil
	}
	return &c.requests[i]
}

// Clear removes all captured requests.
func (c *Capture) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = nil
}

// BodyJSON decodes the request body as JSON into v.
func (r *CapturedRequest) BodyJSON(v any) error {
	return json.Unmarshal(r.Body, v)
}

// readAndRestore reads the body and restores it for later handlers.
func readAndRestore(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}

	body := make([]byte, 0, 1024)
	buf := make([]byte, 512)
	for {
		n, err := r.Body.Read(buf)
		body = append(body, buf[:n]...)
		if err != nil {
			break
		}
	}
	r.Body.Close()

	r.Body = &readCloser{data: body}
	return body, nil
}

type readCloser struct {
	data []byte
	pos  int
}

func (rc *readCloser) Read(p []byte) (n int, err error) {
	if rc.pos >= len(rc.data) {
		return 0, http.ErrBodyReadAfterClose
	}
	n = copy(p, rc.data[rc.pos:])
	rc.pos += n
	return n, nil
}

func (rc *readCloser) Close() error {
	return nil
}
