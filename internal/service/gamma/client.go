package gamma

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/nicgenovese/polymarket-signal-service/internal/domain/models"
	"github.com/nicgenovese/polymarket-signal-service/pkg/cache"
	xhttp "github.com/nicgenovese/polymarket-signal-service/pkg/http"
	"github.com/nicgenovese/polymarket-signal-service/pkg/logger"
)

const DefaultBaseURL = "https://gamma-api.polymarket.com"

// Client fetches trending markets from the gamma API. It implements
// repository.MarketSource.
type Client struct {
	baseURL string
	limit   int
	http    *xhttp.Client
	cache   cache.Service
	ttl     time.Duration
	logger  *logger.Logger
}

// Option configures Client.
type Option func(*Client)

// WithCache enables caching of the fetched market list for ttl. The cache
// sits in front of the remote call only; downstream consumers always see the
// same normalized records either way.
func WithCache(svc cache.Service, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = svc
		c.ttl = ttl
	}
}

// WithLogger sets the client logger.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

// WithLimit sets how many markets one fetch requests.
func WithLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// NewClient creates a gamma API client.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		limit:   50,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchTrending returns the top markets by volume, normalized into
// MarketRecords.
func (c *Client) FetchTrending(ctx context.Context) ([]models.MarketRecord, error) {
	key := cache.GenerateKey("gamma", "trending")

	if c.cache != nil {
		var cached []models.MarketRecord
		if err := c.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	var raws []rawMarket
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: http.MethodGet,
		URL:    c.baseURL + "/markets",
		QueryParams: map[string][]string{
			"_sort":  {"volume"},
			"_limit": {strconv.Itoa(c.limit)},
		},
	}, &raws)
	if err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}

	records := make([]models.MarketRecord, 0, len(raws))
	for _, raw := range raws {
		records = append(records, normalize(raw))
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, key, records, c.ttl); err != nil && c.logger != nil {
			c.logger.Warn("failed to cache market list", logger.Error(err))
		}
	}

	return records, nil
}
