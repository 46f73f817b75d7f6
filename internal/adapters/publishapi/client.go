// Package publishapi talks to the remote publish endpoint over HTTP and
// provides an in-process endpoint for hosts without one.
package publishapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-microsite/internal/logging"
	"github.com/goliatone/go-microsite/pkg/interfaces"
	"github.com/goliatone/go-microsite/website"
)

var (
	// ErrBaseURLRequired indicates the client was built without an endpoint.
	ErrBaseURLRequired = errors.New("publishapi: base url is required")
	// ErrEmptyResponse indicates a 2xx response without a url.
	ErrEmptyResponse = errors.New("publishapi: response missing url")
)

const (
	defaultTimeout  = 30 * time.Second
	maxErrorPayload = 4096
)

// Request is the wire payload sent to the endpoint.
type Request struct {
	OwnerID   string           `json:"ownerId"`
	WeddingID string           `json:"weddingId"`
	Document  website.Document `json:"document"`
}

type errorPayload struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// StatusError carries the endpoint's message verbatim.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return e.Message
}

// Client implements interfaces.PublishEndpoint over HTTP.
type Client struct {
	baseURL string
	path    string
	token   string
	http    *http.Client
	logger  interfaces.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithBearerToken sends an Authorization header with every request.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.token = strings.TrimSpace(token)
	}
}

// WithPath overrides the publish path appended to the base URL.
func WithPath(path string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			c.path = "/" + strings.Trim(trimmed, "/")
		}
	}
}

// WithLogger overrides the client logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient builds a client for the endpoint at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, ErrBaseURLRequired
	}
	if _, err := url.ParseRequestURI(trimmed); err != nil {
		return nil, fmt.Errorf("publishapi: invalid base url: %w", err)
	}
	c := &Client{
		baseURL: trimmed,
		path:    "/publish",
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Publish posts the document and decodes {slug, url}. Non-2xx responses
// become a *StatusError whose message is the endpoint's own text.
func (c *Client) Publish(ctx context.Context, ownerID, weddingID string, doc website.Document) (interfaces.PublishResponse, error) {
	body, err := json.Marshal(Request{OwnerID: ownerID, WeddingID: weddingID, Document: doc})
	if err != nil {
		return interfaces.PublishResponse{}, fmt.Errorf("publishapi: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.path, bytes.NewReader(body))
	if err != nil {
		return interfaces.PublishResponse{}, fmt.Errorf("publishapi: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return interfaces.PublishResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := statusError(resp)
		c.logger.Warn("publishapi.rejected", "status", resp.StatusCode, "error", err)
		return interfaces.PublishResponse{}, err
	}

	var out interfaces.PublishResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return interfaces.PublishResponse{}, fmt.Errorf("publishapi: decode response: %w", err)
	}
	if strings.TrimSpace(out.URL) == "" {
		return interfaces.PublishResponse{}, ErrEmptyResponse
	}
	c.logger.Debug("publishapi.published", "slug", out.Slug, "url", out.URL)
	return out, nil
}

func statusError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorPayload))
	message := strings.TrimSpace(string(raw))

	var payload errorPayload
	if json.Unmarshal(raw, &payload) == nil {
		switch {
		case strings.TrimSpace(payload.Message) != "":
			message = strings.TrimSpace(payload.Message)
		case strings.TrimSpace(payload.Error) != "":
			message = strings.TrimSpace(payload.Error)
		}
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: message}
}
