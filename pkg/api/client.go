package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"strings"
	"time"

	"github.com/cafeorder/cafe-client/pkg/errors"
	"github.com/cafeorder/cafe-client/pkg/logger"
	"github.com/cafeorder/cafe-client/pkg/metrics"
	"github.com/google/uuid"
)

const (
	defaultBaseURL             = "http://localhost:8080"
	defaultTimeout             = 10 * time.Second
	errorBodyReadLimit   int64 = 4096
	requestIDHeader            = "X-Request-ID"
)

// Client wraps the cafe ordering REST API. Identity travels as a session
// cookie held in the client's jar; callers never see tokens.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logg       *logger.Logger
	metrics    *metrics.RequestMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client. The cookie jar is
// preserved unless the provided client carries its own.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			if client.Jar == nil {
				client.Jar = c.httpClient.Jar
			}
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured backend base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithCookieJar replaces the default in-memory jar, letting sessions
// outlive the process.
func WithCookieJar(jar http.CookieJar) Option {
	return func(c *Client) {
		if jar != nil {
			c.httpClient.Jar = jar
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithLogger attaches a structured logger to the client.
func WithLogger(logg *logger.Logger) Option {
	return func(c *Client) {
		c.logg = logg
	}
}

// WithMetrics attaches request metrics to the client.
func WithMetrics(m *metrics.RequestMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds an API client rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout, Jar: jar},
	}
	if trimmed := strings.TrimSpace(baseURL); trimmed != "" {
		client.baseURL = trimmed
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	return client, nil
}

// rsData is the response envelope every backend endpoint emits.
type rsData struct {
	ResultCode int             `json:"resultCode"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

// doJSON issues a JSON request and decodes the envelope's data into out.
// A nil out discards the data payload.
func (c *Client) doJSON(ctx context.Context, operation, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("marshal %s request", operation))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), reader)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("build %s request", operation))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.execute(ctx, operation, req, out)
}

// doMultipart issues a multipart request with a JSON "data" part and an
// optional "file" part, the shape the admin product endpoints expect.
func (c *Client) doMultipart(ctx context.Context, operation, method, path string, data any, fileName string, file io.Reader, out any) error {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	payload, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("marshal %s request", operation))
	}
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="data"`)
	header.Set("Content-Type", "application/json")
	part, err := writer.CreatePart(header)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("encode %s request", operation))
	}
	if _, err := part.Write(payload); err != nil {
		return errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("encode %s request", operation))
	}

	if file != nil {
		filePart, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			return errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("attach %s file", operation))
		}
		if _, err := io.Copy(filePart, file); err != nil {
			return errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("attach %s file", operation))
		}
	}
	if err := writer.Close(); err != nil {
		return errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("finalize %s request", operation))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), buf)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, fmt.Sprintf("build %s request", operation))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.execute(ctx, operation, req, out)
}

func (c *Client) execute(ctx context.Context, operation string, req *http.Request, out any) error {
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")

	if c.logg != nil {
		logCtx := c.logg.WithRequestID(ctx, requestID)
		logCtx = c.logg.WithEndpoint(logCtx, req.Method, req.URL.Path)
		c.logg.Debug(logCtx, "api request")
		ctx = logCtx
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveDuration(operation, time.Since(start))
	if err != nil {
		c.metrics.IncFailure(operation)
		if c.logg != nil {
			c.logg.Error(ctx, "api request failed", err)
		}
		return errors.Wrap(errors.CodeDependency, err, fmt.Sprintf("execute %s request", operation))
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.IncFailure(operation)
		return c.errorFromResponse(ctx, operation, resp)
	}

	c.metrics.IncSuccess(operation)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	var envelope rsData
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return errors.Wrap(errors.CodeDependency, err, fmt.Sprintf("decode %s response", operation))
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return errors.New(errors.CodeDependency, fmt.Sprintf("%s response carried no data", operation))
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return errors.Wrap(errors.CodeDependency, err, fmt.Sprintf("decode %s payload", operation))
	}
	return nil
}

// errorFromResponse turns a non-2xx response into a typed error carrying the
// backend's human-readable message when the envelope provides one.
func (c *Client) errorFromResponse(ctx context.Context, operation string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))

	msg := fmt.Sprintf("%s failed with status %d", operation, resp.StatusCode)
	var envelope rsData
	if err := json.Unmarshal(raw, &envelope); err == nil && strings.TrimSpace(envelope.Msg) != "" {
		msg = envelope.Msg
	}

	err := errors.New(errors.FromHTTPStatus(resp.StatusCode), msg)
	if c.logg != nil {
		c.logg.Warn(c.logg.WithField(ctx, "status", resp.StatusCode), msg)
	}
	return err
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}
