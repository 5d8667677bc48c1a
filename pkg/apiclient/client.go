package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
)

const (
	headerContentType = "Content-Type"
	headerAccept      = "Accept"
	mimeJSON          = "application/json"
)

var ErrMalformedBody = errors.New("malformed json response body")

// FailedRequest is returned for every response with status >= 400.
// Body holds the server payload when it is a JSON object; its shape is not
// fixed by the API, so callers should only read it through Reason or by key.
type FailedRequest struct {
	Status int
	Body   map[string]any
	Raw    json.RawMessage
}

func (e *FailedRequest) Error() string {
	if e.Body != nil {
		if b, err := json.Marshal(e.Body); err == nil {
			return string(b)
		}
	}
	if len(e.Raw) > 0 {
		return string(e.Raw)
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Reason gives a short message suitable for showing next to a form.
func (e *FailedRequest) Reason() string {
	for _, key := range []string{"error", "code", "message"} {
		if v, ok := e.Body[key].(string); ok && v != "" {
			return v
		}
	}
	return e.Error()
}

// Response is a normalized successful outcome. A 204 carries no Body.
type Response struct {
	Status int
	Body   json.RawMessage
}

func (r *Response) HasData() bool {
	return r != nil && r.Body != nil
}

// Decode unmarshals the body into v. It is a no-op for responses without data.
func (r *Response) Decode(v any) error {
	if !r.HasData() {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedBody, err)
	}
	return nil
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  *slog.Logger

	jar http.CookieJar
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client. A client without a cookie
// jar is copied and the copy gets one, so the session cookie is always
// carried and hc itself is left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.HTTP = hc
	}
}

// WithCookieJar sets the jar that holds the session cookie, for example one
// opened with OpenCookieJar so the session outlives the process.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

func New(baseURL string, logger *slog.Logger, opts ...Option) (*Client, error) {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
		Logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}

	if c.jar == nil && c.HTTP.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		c.jar = jar
	}
	if c.jar != nil {
		hc := *c.HTTP
		hc.Jar = c.jar
		c.HTTP = &hc
	}

	return c, nil
}

type RequestOption func(http.Header)

func WithHeader(key, value string) RequestOption {
	return func(h http.Header) {
		h.Set(key, value)
	}
}

// Do performs a single request against BaseURL+path. There are no retries.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	headers := http.Header{}
	for _, opt := range opts {
		opt(headers)
	}
	if headers.Get(headerContentType) == "" {
		headers.Set(headerContentType, mimeJSON)
	}
	if headers.Get(headerAccept) == "" {
		headers.Set(headerAccept, mimeJSON)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		headers.Set(headerContentType, mimeJSON)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	req.Header = headers

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.Logger.Debug("api request", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode == http.StatusNoContent {
		return &Response{Status: resp.StatusCode}, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		failed := &FailedRequest{Status: resp.StatusCode, Raw: raw}
		var parsed map[string]any
		if json.Unmarshal(raw, &parsed) == nil {
			failed.Body = parsed
		}
		return nil, failed
	}

	if !json.Valid(raw) {
		return nil, fmt.Errorf("%s %s: %w", method, path, ErrMalformedBody)
	}

	return &Response{Status: resp.StatusCode, Body: raw}, nil
}
