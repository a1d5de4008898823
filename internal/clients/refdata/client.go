// Package refdata fetches the reference currency-code CSV that supplies
// each currency's display name and symbol.
package refdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/mresults/fxconvert/internal/apperrors"
	"github.com/mresults/fxconvert/internal/core/domain"
	"github.com/mresults/fxconvert/internal/core/ports/sources"
)

// Client fetches currency metadata from a CSV listing with rows of
// code,name,symbol and a header row that is discarded.
type Client struct {
	listingURL string
	httpClient *http.Client
}

var _ sources.MetadataSource = (*Client)(nil)

// NewClient creates a metadata client for the given CSV listing URL.
func NewClient(listingURL string, timeout time.Duration) *Client {
	return &Client{
		listingURL: listingURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchCurrencyMeta downloads and parses the listing into a code-keyed map.
// Rows with fewer than three fields are skipped rather than failing the
// whole fetch; the catalog merge drops unknown codes anyway.
func (c *Client) FetchCurrencyMeta(ctx context.Context) (map[string]domain.Currency, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.listingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", apperrors.ErrRemoteFetch, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrRemoteFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", apperrors.ErrRemoteFetch, resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1 // listing rows carry trailing extras

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: currency metadata CSV: %v", apperrors.ErrParse, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: currency metadata CSV is empty", apperrors.ErrParse)
	}

	meta := make(map[string]domain.Currency, len(rows)-1)
	for _, row := range rows[1:] { // first row is the header
		if len(row) < 3 {
			continue
		}
		code := row[0]
		meta[code] = domain.Currency{
			Code:   code,
			Name:   row[1],
			Symbol: row[2],
		}
	}
	return meta, nil
}
