// Package upstream implements HTTP clients for the reporting platform's
// remote API: the authentication endpoints and the AI inference endpoints.
// Every call is bounded by a per-request timeout and failures are classified
// into the domain error taxonomy (auth, transient, rejection).
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/esgview/admin-gateway/internal/api/metrics"
	"github.com/esgview/admin-gateway/internal/core/domain"
)

const (
	defaultRequestTimeout = 15 * time.Second
	defaultUploadTimeout  = 30 * time.Second
)

// Config captures the settings shared by all upstream clients.
type Config struct {
	// BaseURL is the platform API root, e.g. http://localhost:8002.
	BaseURL string
	// RequestTimeout bounds JSON calls.
	RequestTimeout time.Duration
	// UploadTimeout bounds multipart and report calls, which need more
	// server-side work.
	UploadTimeout time.Duration
}

// Client carries the shared transport for the typed upstream clients.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	requestTimeout time.Duration
	uploadTimeout  time.Duration
	logger         zerolog.Logger
}

func NewClient(cfg Config, logger zerolog.Logger) *Client {
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}
	uploadTimeout := cfg.UploadTimeout
	if uploadTimeout <= 0 {
		uploadTimeout = defaultUploadTimeout
	}
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:     &http.Client{},
		requestTimeout: requestTimeout,
		uploadTimeout:  uploadTimeout,
		logger:         logger,
	}
}

func (c *Client) endpoint(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// do executes the request and decodes a 2xx JSON body into out. Transport
// errors and timeouts are transient; 401/403 map to the auth sentinels;
// 5xx is transient; any other non-2xx status is a rejection carrying the
// upstream message.
func (c *Client) do(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", req.URL.Path).Msg("upstream request failed")
		c.observe(req.URL.Path, "transient", start)
		return &domain.UpstreamError{Transient: true, Message: err.Error()}
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	c.logger.Debug().
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("upstream request")

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		c.observe(req.URL.Path, "auth", start)
		return &domain.UpstreamError{Status: resp.StatusCode, Message: apiMessage(body, "unauthorized")}
	case resp.StatusCode >= 500:
		c.observe(req.URL.Path, "transient", start)
		return &domain.UpstreamError{Status: resp.StatusCode, Transient: true, Message: apiMessage(body, "upstream error")}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		c.observe(req.URL.Path, "rejected", start)
		return &domain.UpstreamError{Status: resp.StatusCode, Message: apiMessage(body, "request failed")}
	}
	c.observe(req.URL.Path, "ok", start)

	if readErr != nil {
		return &domain.UpstreamError{Transient: true, Message: fmt.Sprintf("read response: %v", readErr)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &domain.UpstreamError{Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, token, path string, payload, out any, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	setBearer(req, token)

	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, token, path string, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	setBearer(req, token)

	return c.do(req, out)
}

func (c *Client) postForm(ctx context.Context, path string, values url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return c.do(req, out)
}

func (c *Client) postMultipart(ctx context.Context, token, path string, fields map[string]string, fileField, filename string, content io.Reader, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("encode field %s: %w", key, err)
		}
	}
	part, err := writer.CreateFormFile(fileField, filename)
	if err != nil {
		return fmt.Errorf("encode file part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), &buf)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	setBearer(req, token)

	return c.do(req, out)
}

func (c *Client) observe(path, outcome string, start time.Time) {
	metrics.UpstreamRequestDuration.WithLabelValues(path, outcome).Observe(time.Since(start).Seconds())
}

func setBearer(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// apiMessage extracts the upstream error message. The platform API reports
// failures as {"detail": "..."}; {"error": "..."} and plain text are
// accepted for robustness.
func apiMessage(body []byte, fallback string) string {
	var envelope struct {
		Detail string `json:"detail"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Detail != "" {
			return envelope.Detail
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) < 256 {
		return text
	}
	return fallback
}
