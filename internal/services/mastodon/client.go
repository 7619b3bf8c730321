package mastodon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	mediaPath    = "/api/v1/media"
	statusPath   = "/api/v1/statuses"
	instancePath = "/api/v1/instance"

	uploadTimeout = 2 * time.Minute
)

// HTTPDoer describes the HTTP client used by the Mastodon service.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Media mirrors the subset of a media attachment response the bot needs.
type Media struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Status mirrors the subset of a created status response the bot needs.
type Status struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// APIError reports a non-2xx response with enough context to diagnose it
// from logs.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, body)
}

// Client calls the Mastodon-compatible HTTP API of a single instance.
type Client struct {
	baseURL string
	token   string
	http    HTTPDoer

	newIdempotencyKey func() string
}

// Option customizes a client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithIdempotencyKeyFunc overrides idempotency key generation (used in tests).
func WithIdempotencyKeyFunc(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.newIdempotencyKey = fn
		}
	}
}

// NewClient constructs a client for the given instance base URL and access
// token. An empty token is allowed; requests will simply be rejected by the
// server.
func NewClient(baseURL, token string, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		http: &http.Client{
			Timeout: uploadTimeout,
		},
		newIdempotencyKey: uuid.NewString,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// UploadMedia posts the file bytes as a multipart upload and returns the
// created media attachment. The description becomes the attachment's alt
// text when non-empty.
func (c *Client) UploadMedia(ctx context.Context, filename string, content []byte, description string) (Media, error) {
	if c.baseURL == "" {
		return Media{}, fmt.Errorf("mastodon: instance url not configured")
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	field, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return Media{}, fmt.Errorf("mastodon: create file field: %w", err)
	}
	if _, err := field.Write(content); err != nil {
		return Media{}, fmt.Errorf("mastodon: write file field: %w", err)
	}
	if strings.TrimSpace(description) != "" {
		if err := writer.WriteField("description", description); err != nil {
			return Media{}, fmt.Errorf("mastodon: write description field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return Media{}, fmt.Errorf("mastodon: close multipart writer: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+mediaPath, body)
	if err != nil {
		return Media{}, fmt.Errorf("mastodon: build upload request: %w", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())
	c.authorize(request)

	payload, err := c.do(request)
	if err != nil {
		return Media{}, fmt.Errorf("mastodon: upload media: %w", err)
	}

	var media Media
	if err := json.Unmarshal(payload, &media); err != nil {
		return Media{}, fmt.Errorf("mastodon: decode media response: %w", err)
	}
	if strings.TrimSpace(media.ID) == "" {
		return Media{}, fmt.Errorf("mastodon: media response missing id")
	}
	return media, nil
}

// CreateStatus posts a new status referencing the given media IDs. Every
// call carries a fresh Idempotency-Key so an applied-but-timed-out request
// is not duplicated by a rerun.
func (c *Client) CreateStatus(ctx context.Context, caption string, mediaIDs []string, visibility string) (Status, error) {
	if c.baseURL == "" {
		return Status{}, fmt.Errorf("mastodon: instance url not configured")
	}

	params := map[string]any{
		"status":    caption,
		"media_ids": mediaIDs,
	}
	if strings.TrimSpace(visibility) != "" {
		params["visibility"] = visibility
	}
	encoded, err := json.Marshal(params)
	if err != nil {
		return Status{}, fmt.Errorf("mastodon: encode status payload: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+statusPath, bytes.NewReader(encoded))
	if err != nil {
		return Status{}, fmt.Errorf("mastodon: build status request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Idempotency-Key", c.newIdempotencyKey())
	c.authorize(request)

	payload, err := c.do(request)
	if err != nil {
		return Status{}, fmt.Errorf("mastodon: create status: %w", err)
	}

	var status Status
	if err := json.Unmarshal(payload, &status); err != nil {
		return Status{}, fmt.Errorf("mastodon: decode status response: %w", err)
	}
	return status, nil
}

// CheckInstance probes the instance endpoint to verify reachability.
func (c *Client) CheckInstance(ctx context.Context) error {
	if c.baseURL == "" {
		return fmt.Errorf("mastodon: instance url not configured")
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+instancePath, nil)
	if err != nil {
		return fmt.Errorf("mastodon: build instance request: %w", err)
	}
	if _, err := c.do(request); err != nil {
		return fmt.Errorf("mastodon: instance check: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(payload)}
	}
	return payload, nil
}
