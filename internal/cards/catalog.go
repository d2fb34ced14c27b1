package cards

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Catalog fetches card records from a remote card API. Requests run
// through a rate limiter so bulk lookups stay within the API's limits.
type Catalog struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	log     *zap.Logger
}

// NewCatalog builds a catalog client. requestsPerSecond caps the
// request rate; zero or negative disables limiting.
func NewCatalog(baseURL string, requestsPerSecond float64, log *zap.Logger) *Catalog {
	var limiter *rate.Limiter
	if requestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
	return &Catalog{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
		limiter: limiter,
		log:     log,
	}
}

// FetchByName fetches a single card by exact name.
func (c *Catalog) FetchByName(ctx context.Context, name string) (*RawCard, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	endpoint := c.baseURL + "/cards/named?exact=" + url.QueryEscape(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch card %q: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned %s for %q", resp.Status, name)
	}

	var card RawCard
	if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	c.log.Debug("fetched card from catalog", zap.String("name", card.Name))
	return &card, nil
}
