// Package client executes materialized requests over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/blackcoderx/apistudio/pkg/core"
	"github.com/blackcoderx/apistudio/pkg/model"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// Options configures a Client.
type Options struct {
	Timeout time.Duration
	Logger  logrus.FieldLogger
	// Transport overrides the HTTP transport, mainly for tests.
	Transport http.RoundTripper
}

// Client sends one request at a time and normalizes the outcome.
type Client struct {
	http *http.Client
	log  logrus.FieldLogger
}

// New creates a new Client
func New(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Client{
		http: &http.Client{
			Timeout:   timeout,
			Transport: opts.Transport,
		},
		log: logger,
	}
}

// Send materializes req against vars and executes it.
func (c *Client) Send(ctx context.Context, req model.Request, vars []model.EnvironmentVariable) (*model.Response, error) {
	m, err := core.Materialize(req, vars)
	if err != nil {
		return nil, err
	}
	return c.Execute(ctx, req.Method, m)
}

// Execute performs the call described by m. It returns either a complete
// Response or an error, never both.
func (c *Client) Execute(ctx context.Context, method model.Method, m core.Materialized) (*model.Response, error) {
	log := c.log.WithFields(logrus.Fields{"method": method, "url": m.URL})
	startTime := time.Now()

	var bodyReader io.Reader
	if m.HasBody {
		bodyReader = strings.NewReader(m.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, string(method), m.URL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header = m.Headers.HTTP()
	if host, ok := m.Headers.Get("Host"); ok {
		httpReq.Host = host
	}

	log.Debug("sending request")
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return nil, fmt.Errorf("request failed: %w", unwrapURLError(err))
	}
	defer httpResp.Body.Close()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	elapsed := time.Since(startTime).Milliseconds()

	headers := make(map[string]string, len(httpResp.Header))
	for key, values := range httpResp.Header {
		headers[key] = strings.Join(values, ", ")
	}

	resp := &model.Response{
		Status:     httpResp.StatusCode,
		StatusText: statusText(httpResp),
		Headers:    headers,
		Data:       decodeData(bodyBytes),
		Time:       elapsed,
		Size:       len(bodyBytes),
	}
	log.WithFields(logrus.Fields{
		"status":     resp.Status,
		"elapsed_ms": resp.Time,
		"size":       resp.Size,
	}).Debug("request completed")

	return resp, nil
}

// statusText returns the reason phrase without the numeric code.
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// decodeData returns the decoded JSON value when the whole body is one JSON
// document, otherwise the body as text.
func decodeData(body []byte) interface{} {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return string(body)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return string(body)
	}
	return v
}

// unwrapURLError drops the "Get \"url\":" prefix net/http adds, since the
// caller already knows the URL.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
