package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/agrovia/agroexport-web/pkg/config"
	pkgerrors "github.com/agrovia/agroexport-web/pkg/errors"
	"github.com/agrovia/agroexport-web/pkg/logger"
	"github.com/agrovia/agroexport-web/pkg/metrics"
)

const responseBodyReadLimit int64 = 1 << 20

// Client wraps the marketplace REST API this frontend consumes. It is the
// only component that talks to the network; everything above it works with
// typed results.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logg       *logger.Logger
	metrics    *metrics.UpstreamMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithMetrics attaches upstream call metrics.
func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds the marketplace API client.
func NewClient(cfg config.UpstreamConfig, logg *logger.Logger, opts ...Option) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("upstream base url is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logg:       logg,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}

	return client, nil
}

// envelope is the success wrapper the marketplace API uses. Endpoints that
// answer with a bare object are tolerated by falling back to the whole body.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) getJSON(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodGet, path, token, "", nil, out)
}

func (c *Client) postJSON(ctx context.Context, path, token string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request")
	}
	return c.do(ctx, http.MethodPost, path, token, "application/json", bytes.NewReader(body), out)
}

func (c *Client) putJSON(ctx context.Context, path, token string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding request")
	}
	return c.do(ctx, http.MethodPut, path, token, "application/json", bytes.NewReader(body), out)
}

func (c *Client) deleteJSON(ctx context.Context, path, token string, out any) error {
	return c.do(ctx, http.MethodDelete, path, token, "", nil, out)
}

// MultipartField is one part of a multipart form submission.
type MultipartField struct {
	Name     string
	Value    string
	Filename string
	Reader   io.Reader
}

func (c *Client) postMultipart(ctx context.Context, method, path, token string, fields []MultipartField, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, field := range fields {
		if field.Reader != nil {
			part, err := writer.CreateFormFile(field.Name, field.Filename)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building multipart form")
			}
			if _, err := io.Copy(part, field.Reader); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "copying multipart file")
			}
			continue
		}
		if err := writer.WriteField(field.Name, field.Value); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building multipart form")
		}
	}
	if err := writer.Close(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "closing multipart form")
	}
	return c.do(ctx, method, path, token, writer.FormDataContentType(), &buf, out)
}

func (c *Client) do(ctx context.Context, method, path, token, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "building request")
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(path, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(path)
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "marketplace API unreachable")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		c.metrics.IncFailure(path)
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "reading marketplace API response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.IncFailure(path)
		apiErr := decodeAPIError(path, resp.StatusCode, raw)
		if c.logg != nil {
			logCtx := c.logg.WithFields(ctx, map[string]any{
				"endpoint": path,
				"status":   resp.StatusCode,
			})
			c.logg.Warn(logCtx, "upstream.call_failed")
		}
		return apiErr.toTyped()
	}

	c.metrics.IncSuccess(path)

	if out == nil || len(raw) == 0 {
		return nil
	}

	var wrapped envelope
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Data) > 0 {
		raw = wrapped.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeUpstream, err, "decoding marketplace API response")
	}
	return nil
}
