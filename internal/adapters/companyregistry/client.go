// Package companyregistry checks companies against the public VAT taxpayer
// white-list registry.
package companyregistry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/bank_demo_app/internal/core/domain"
	"github.com/SscSPs/bank_demo_app/internal/middleware"
	"github.com/SscSPs/bank_demo_app/internal/platform/metrics"
)

// ActiveVATStatus is the status the registry reports for an active VAT payer.
const ActiveVATStatus = "Czynny"

const maxResponseBytes = 1 << 20

// Subject is the registry entry for a single taxpayer.
type Subject struct {
	Name      string `json:"name"`
	NIP       string `json:"nip"`
	StatusVat string `json:"statusVat"`
	Regon     string `json:"regon"`
}

// IsActive reports whether the subject is an active VAT payer.
func (s *Subject) IsActive() bool {
	return s != nil && s.StatusVat == ActiveVATStatus
}

type searchResponse struct {
	Result struct {
		Subject   *Subject `json:"subject"`
		RequestID string   `json:"requestId"`
	} `json:"result"`
}

// Client talks to the registry over HTTP. One attempt per lookup, no retries.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	metrics    *metrics.Metrics
}

var _ domain.CompanyVerifier = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its Timeout is left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithMetrics records lookup results and durations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a registry client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches the registry entry for taxNumber as of the given date.
// A nil subject with a nil error means the registry has no entry.
func (c *Client) Lookup(ctx context.Context, taxNumber string, on time.Time) (*Subject, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := fmt.Sprintf("%s/api/search/nip/%s?date=%s",
		c.baseURL, url.PathEscape(taxNumber), on.Format(time.DateOnly))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &LookupError{Category: CategoryNetwork, TaxNumber: taxNumber, Underlying: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &LookupError{Category: classifyTransportError(err), TaxNumber: taxNumber, Underlying: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &LookupError{Category: classifyTransportError(err), TaxNumber: taxNumber, Underlying: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &LookupError{Category: CategoryBadStatus, TaxNumber: taxNumber, StatusCode: resp.StatusCode}
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, &LookupError{Category: CategoryParse, TaxNumber: taxNumber, Underlying: err}
	}

	return parsed.Result.Subject, nil
}

// VerifyCompany reports whether taxNumber belongs to an active VAT payer on the given date.
func (c *Client) VerifyCompany(ctx context.Context, taxNumber string, on time.Time) (bool, error) {
	start := time.Now()
	logger := middleware.LoggerOrDefault(ctx)

	subject, err := c.Lookup(ctx, taxNumber, on)
	if err != nil {
		category := CategoryOf(err)
		c.metrics.ObserveRegistryLookup(string(category), start)
		logger.Warn("Company registry lookup failed",
			slog.String("category", string(category)),
			slog.String("error", err.Error()))
		return false, err
	}

	active := subject.IsActive()
	result := "inactive"
	if active {
		result = "active"
	}
	c.metrics.ObserveRegistryLookup(result, start)
	logger.Debug("Company registry lookup completed",
		slog.Bool("active", active),
		slog.Duration("latency", time.Since(start)))
	return active, nil
}

func classifyTransportError(err error) Category {
	if errors.Is(err, context.DeadlineExceeded) {
		return CategoryTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CategoryTimeout
	}
	return CategoryNetwork
}

// Static is a verifier that confirms every company. Used for local development.
type Static struct {
	Active bool
}

var _ domain.CompanyVerifier = Static{}

func (s Static) VerifyCompany(context.Context, string, time.Time) (bool, error) {
	return s.Active, nil
}
