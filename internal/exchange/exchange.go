// Package exchange resolves transaction amounts into the reference currency
// via an external rate-lookup API.
//
// Rates are fetched per call and never cached: a stale rate is worse than a
// second lookup for this workload. All arithmetic is done in decimals; the
// result is rounded to cents half-up only after the multiply.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bankview-dev/bankview/internal/model"
)

// DefaultReference is the currency conversions resolve to.
const DefaultReference = "RUB"

// requestTimeout bounds a single rate lookup.
const requestTimeout = 10 * time.Second

// Configuration errors, raised at construction so a misconfigured client
// never reaches a record.
var (
	ErrMissingAPIKey  = errors.New("exchange API key is not configured")
	ErrMissingBaseURL = errors.New("exchange API base URL is not configured")
)

// ErrUnsupportedCurrency marks a source currency outside the supported set.
// It is never silently defaulted to a rate.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// RateLookupError reports a failed rate fetch: transport failure, bad
// status, malformed body, or a missing rate field.
type RateLookupError struct {
	Currency string
	Err      error
}

func (e *RateLookupError) Error() string {
	return fmt.Sprintf("rate lookup for %s: %v", e.Currency, e.Err)
}

func (e *RateLookupError) Unwrap() error { return e.Err }

// Config holds the two required settings for the rate-lookup API.
type Config struct {
	APIKey  string
	BaseURL string
}

// Client converts amounts to the reference currency.
type Client struct {
	apiKey    string
	baseURL   string
	reference string
	supported map[string]bool
	http      *http.Client
}

// Option adjusts a Client at construction.
type Option func(*Client)

// WithHTTPClient substitutes the HTTP client used for rate lookups.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithReference changes the reference currency.
func WithReference(code string) Option {
	return func(c *Client) { c.reference = code }
}

// New validates cfg and returns a Client. Missing configuration fails here,
// before any conversion is attempted.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		return nil, ErrMissingBaseURL
	}

	c := &Client{
		apiKey:    cfg.APIKey,
		baseURL:   cfg.BaseURL,
		reference: DefaultReference,
		http:      &http.Client{Timeout: requestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.supported = map[string]bool{c.reference: true, "USD": true, "EUR": true}
	return c, nil
}

// Reference returns the reference currency code.
func (c *Client) Reference() string { return c.reference }

// Convert returns amount expressed in the reference currency.
//
// The reference currency short-circuits without a network call. Currencies
// outside the supported set fail with ErrUnsupportedCurrency; any fetch or
// parse problem fails with a *RateLookupError. There is no partial result:
// on error the returned amount is zero.
func (c *Client) Convert(ctx context.Context, amount decimal.Decimal, code string) (decimal.Decimal, error) {
	if code == c.reference {
		return amount, nil
	}
	if !c.supported[code] {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, code)
	}

	rate, err := c.fetchRate(ctx, code)
	if err != nil {
		return decimal.Decimal{}, &RateLookupError{Currency: code, Err: err}
	}

	// Decimal multiply first, then round half-up to cents. Rounding a float
	// product instead can misround exact .005 boundaries.
	return amount.Mul(rate).Round(2), nil
}

// TransactionAmount is the absence-style adapter over Convert: it returns
// the transaction's amount in the reference currency, or false when the
// record lacks monetary fields or the conversion fails for any reason.
func (c *Client) TransactionAmount(ctx context.Context, txn model.Transaction) (decimal.Decimal, bool) {
	if !txn.HasAmount || txn.CurrencyCode == "" {
		return decimal.Decimal{}, false
	}
	converted, err := c.Convert(ctx, txn.Amount, txn.CurrencyCode)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return converted, true
}

// fetchRate issues one GET <baseURL>?base=<code>&symbols=<reference> and
// extracts rates.<reference> from the JSON body.
func (c *Client) fetchRate(ctx context.Context, code string) (decimal.Decimal, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing base URL: %w", err)
	}
	q := u.Query()
	q.Set("base", code)
	q.Set("symbols", c.reference)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("requesting rate: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decimal.Decimal{}, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("reading response: %w", err)
	}

	// The rate arrives as a numeric-as-string field; decimal accepts both
	// quoted and bare numbers.
	var parsed struct {
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return decimal.Decimal{}, fmt.Errorf("decoding response: %w", err)
	}

	rate, ok := parsed.Rates[c.reference]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("response missing rates.%s", c.reference)
	}
	return rate, nil
}
