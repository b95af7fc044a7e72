// Package client talks to the findability HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Company is the API's company representation.
type Company struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Website  *string `json:"website,omitempty"`
	Country  *string `json:"country,omitempty"`
	State    *string `json:"state,omitempty"`
	City     *string `json:"city,omitempty"`
	Industry *string `json:"industry,omitempty"`
	Niche    *string `json:"niche,omitempty"`
}

// NewCompany is the create payload. Empty optional fields are omitted.
type NewCompany struct {
	Name     string `json:"name"`
	Website  string `json:"website,omitempty"`
	Country  string `json:"country,omitempty"`
	State    string `json:"state,omitempty"`
	City     string `json:"city,omitempty"`
	Industry string `json:"industry,omitempty"`
	Niche    string `json:"niche,omitempty"`
}

// EvaluateRequest uses the API's verbose flag names.
type EvaluateRequest struct {
	CompanyID                     int64 `json:"company_id"`
	HasContactPage                bool  `json:"has_contact_page"`
	HasClearServicesPage          bool  `json:"has_clear_services_page"`
	HasGMBOrMapsListing           bool  `json:"has_gmb_or_maps_listing"`
	HasRecentUpdates              bool  `json:"has_recent_updates"`
	HasReviewsOrTestimonials      bool  `json:"has_reviews_or_testimonials"`
	HasOnlineBookingOrForm        bool  `json:"has_online_booking_or_form"`
	UsesBasicSchemaMarkup         bool  `json:"uses_basic_schema_markup"`
	HasConsistentNameAddressPhone bool  `json:"has_consistent_name_address_phone"`
	HasFastLoadTimeClaim          bool  `json:"has_fast_load_time_claim"`
	ContentMatchesIntent          bool  `json:"content_matches_intent"`
}

type Evaluation struct {
	ID        int64     `json:"id"`
	CompanyID int64     `json:"company_id"`
	Score     float64   `json:"score"`
	Badge     string    `json:"badge"`
	Evidence  []string  `json:"evidence"`
	CreatedAt time.Time `json:"created_at"`
}

// APIError is a non-2xx response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.Status, e.Body)
}

type Client struct {
	base       string
	http       *http.Client
	maxRetries uint64
	initial    time.Duration
}

type Option func(*Client)

// DefaultHTTPClient returns a client with the given overall request timeout.
func DefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(c *http.Client) Option { return func(cl *Client) { cl.http = c } }

// WithRetry sets how often idempotent requests are retried and the first backoff interval.
func WithRetry(maxRetries uint64, initial time.Duration) Option {
	return func(cl *Client) {
		cl.maxRetries = maxRetries
		cl.initial = initial
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:       strings.TrimRight(baseURL, "/"),
		http:       DefaultHTTPClient(10 * time.Second),
		maxRetries: 3,
		initial:    200 * time.Millisecond,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) ListCompanies(ctx context.Context) ([]Company, error) {
	var out []Company
	err := c.retry(ctx, func() error {
		return c.do(ctx, http.MethodGet, "/companies", nil, http.StatusOK, &out)
	})
	return out, err
}

func (c *Client) CreateCompany(ctx context.Context, in NewCompany) (Company, error) {
	var out Company
	err := c.do(ctx, http.MethodPost, "/companies", in, http.StatusCreated, &out)
	return out, err
}

func (c *Client) Evaluate(ctx context.Context, in EvaluateRequest) (Evaluation, error) {
	var out Evaluation
	err := c.do(ctx, http.MethodPost, "/evaluate", in, http.StatusCreated, &out)
	return out, err
}

// retry reruns op on transport errors and 5xx responses. Other API errors
// are returned immediately.
func (c *Client) retry(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.initial
	b.MaxInterval = 2 * time.Second
	policy := backoff.WithContext(backoff.WithMaxRetries(b, c.maxRetries), ctx)

	return backoff.Retry(func() error {
		err := op()
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

func (c *Client) do(ctx context.Context, method, path string, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != want {
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
