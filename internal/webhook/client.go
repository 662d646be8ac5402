// Package webhook posts validated appointment requests to the configured
// external endpoint and hands back whatever confirmation payload it returns.
package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wolfman30/patient-intake-gateway/internal/confirmation"
	"github.com/wolfman30/patient-intake-gateway/internal/intake"
	"github.com/wolfman30/patient-intake-gateway/internal/observability/metrics"
	"github.com/wolfman30/patient-intake-gateway/pkg/logging"
)

// maxResponseBytes caps how much of a confirmation body is read. The
// endpoint is external; an unbounded body must not be.
const maxResponseBytes = 1 << 20

// payload is the wire body the webhook receives. Names are part of the
// contract with downstream receivers.
type payload struct {
	Name          string `json:"name"`
	Age           int    `json:"age"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contactNumber"`
	Email         string `json:"email"`
	Problem       string `json:"problem"`
	SubmittedAt   string `json:"submittedAt"`
}

// Client submits appointment requests to a fixed webhook URL. Each call is
// independent and at-most-once: no retry, no idempotency key.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *logging.Logger
	metrics    *metrics.IntakeMetrics
	tracer     trace.Tracer
	now        func() time.Time
}

// ClientOption is a functional option for configuring the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics records webhook latency and response counts.
func WithMetrics(m *metrics.IntakeMetrics) ClientOption {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTimeout bounds each submission. Zero keeps the default of no timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithClock sets the time source used for submittedAt stamps.
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a webhook client for the given submission URL. The
// default HTTP client enforces no timeout: a submission waits as long as the
// endpoint takes, and deployments opt into a bound via WithTimeout.
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{},
		logger:     logging.Default(),
		tracer:     otel.Tracer("intake.internal.webhook"),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var _ intake.Submitter = (*Client)(nil)

// Submit serializes the request with a submittedAt timestamp, posts it, and
// parses the response body as a free-form JSON object. Non-2xx statuses and
// unparseable bodies both come back as errors; the caller treats them the
// same way.
func (c *Client) Submit(ctx context.Context, req intake.Request) (confirmation.Record, error) {
	ctx, span := c.tracer.Start(ctx, "webhook.submit", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.String("intake.webhook_url", c.url))

	body, err := json.Marshal(payload{
		Name:          req.Name,
		Age:           req.Age,
		Gender:        req.Gender,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Problem:       req.Problem,
		SubmittedAt:   c.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("webhook: marshal submission: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("webhook: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	c.logger.Debug("submitting appointment request", "url", c.url)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	c.metrics.ObserveWebhookLatency(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		c.metrics.ObserveWebhookResponse("transport_error")
		return nil, fmt.Errorf("webhook: request failed: %w", err)
	}
	defer resp.Body.Close()

	c.metrics.ObserveWebhookResponse(strconv.Itoa(resp.StatusCode))
	span.SetAttributes(attribute.Int("intake.webhook_status", resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("webhook: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("webhook rejected submission", "status", resp.StatusCode, "body_bytes", len(raw))
		err := fmt.Errorf("%w: status %d", ErrBadStatus, resp.StatusCode)
		span.RecordError(err)
		return nil, err
	}

	var record confirmation.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		c.logger.Warn("webhook returned unparseable confirmation", "status", resp.StatusCode, "error", err)
		span.RecordError(err)
		return nil, fmt.Errorf("%w: %v", ErrBadBody, err)
	}
	if record == nil {
		record = confirmation.Record{}
	}

	c.logger.Info("appointment request submitted", "status", resp.StatusCode, "confirmation_keys", len(record))

	return record, nil
}
