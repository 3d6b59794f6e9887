package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/avoskres/aiso/internal/cache"
	"github.com/avoskres/aiso/internal/model"
)

// SearchClient implements Searcher against a JSON web-search API. Consecutive
// calls are throttled client-side (token bucket plus a fixed inter-call
// delay) to stay under the provider's rate limit, and identical queries are
// served from a TTL cache.
type SearchClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	delay      time.Duration
	cache      cache.Cache
	cacheTTL   time.Duration
}

type searchAPIResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Snippet string `json:"snippet"`
	} `json:"results"`
}

// NewSearchClient creates a search-oracle client from configuration.
func NewSearchClient(cfg model.SearchConfig) (*SearchClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("search base URL is required")
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	perSec := cfg.RatePerSec
	if perSec <= 0 {
		perSec = 2
	}

	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = 15 * time.Minute
	}

	return &SearchClient{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(perSec), 1),
		delay:      cfg.Delay,
		cache:      cache.NewMemoryCache(ttl, 2*ttl),
		cacheTTL:   ttl,
	}, nil
}

// Search runs a query and returns at most max results. Transport and
// non-2xx failures are ErrUnavailable; an unparseable body is
// ErrMalformedResponse.
func (c *SearchClient) Search(ctx context.Context, query string, max int) ([]model.Source, error) {
	if max <= 0 {
		max = 5
	}

	key := cache.Key("search:" + query)
	var cached []model.Source
	if cache.GetJSON(c.cache, key, &cached) {
		return bound(cached, max), nil
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	reqURL := fmt.Sprintf("%s/search?q=%s&count=%d", c.baseURL, url.QueryEscape(query), max)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, unavailable("search request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, unavailable("read search response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: search API status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed searchAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, malformed("decode search response", err)
	}

	sources := make([]model.Source, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if r.URL == "" {
			continue
		}
		sources = append(sources, model.Source{Title: r.Title, URL: r.URL, Snippet: r.Snippet})
	}

	_ = cache.SetJSON(c.cache, key, sources, c.cacheTTL)

	return bound(sources, max), nil
}

// wait blocks for rate-limit clearance plus the fixed inter-call delay.
func (c *SearchClient) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if c.delay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.delay):
		}
	}
	return nil
}

func bound(sources []model.Source, max int) []model.Source {
	if len(sources) > max {
		return sources[:max]
	}
	return sources
}
