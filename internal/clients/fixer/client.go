// Package fixer provides a client for the fixer.io-style exchange rate API.
package fixer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/mresults/fxconvert/internal/apperrors"
	"github.com/mresults/fxconvert/internal/core/domain"
	"github.com/mresults/fxconvert/internal/core/ports/sources"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

// DefaultEndpoint is the public fixer.io latest-rates endpoint.
const DefaultEndpoint = "https://api.fixer.io/latest"

// Client fetches exchange rates over HTTP. The endpoint answers
// `?base=X&symbols=A,B` with the rates for one base, and with no query
// parameters it enumerates every currency it supports.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

var _ sources.RateSource = (*Client)(nil)

// NewClient creates a rate service client. An empty endpoint falls back to
// DefaultEndpoint. The timeout bounds each fetch; exceeding it reads as a
// remote fetch failure.
func NewClient(endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ratesResponse is the JSON body of a rate lookup.
type ratesResponse struct {
	Base  string                     `json:"base"`
	Date  string                     `json:"date"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRates performs one rate lookup for base restricted to symbols.
func (c *Client) FetchRates(ctx context.Context, base string, symbols []string) (*domain.RateSet, error) {
	query := url.Values{}
	query.Set("base", base)
	if len(symbols) > 0 {
		query.Set("symbols", strings.Join(symbols, ","))
	}

	body, err := c.get(ctx, c.endpoint+"?"+query.Encode())
	if err != nil {
		return nil, err
	}

	var parsed ratesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: rate response: %v", apperrors.ErrParse, err)
	}
	if parsed.Base == "" || parsed.Rates == nil {
		return nil, fmt.Errorf("%w: rate response missing base or rates", apperrors.ErrParse)
	}

	return &domain.RateSet{
		Base:      parsed.Base,
		Rates:     parsed.Rates,
		FetchedAt: time.Now(),
	}, nil
}

// ListCodes enumerates every currency code the rate service supports by
// reading the keys of the `rates` object from a parameterless request.
func (c *Client) ListCodes(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, c.endpoint)
	if err != nil {
		return nil, err
	}

	rates := gjson.GetBytes(body, "rates")
	if !rates.Exists() || !rates.IsObject() {
		return nil, fmt.Errorf("%w: rate listing missing rates object", apperrors.ErrParse)
	}

	var codes []string
	rates.ForEach(func(key, _ gjson.Result) bool {
		codes = append(codes, key.String())
		return true
	})
	sort.Strings(codes)
	return codes, nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", apperrors.ErrRemoteFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteFetch, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", apperrors.ErrRemoteFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", apperrors.ErrRemoteFetch, resp.StatusCode)
	}
	return body, nil
}
