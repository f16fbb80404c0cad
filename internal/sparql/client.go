// Package sparql is a thin proxy client for the Wikidata Query Service.
// It templates queries, retries transient failures with exponential
// backoff, shapes results into domain.Case records and memoizes responses
// for a short TTL.
package sparql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/caselens/caselens/internal/domain"
	"github.com/caselens/caselens/internal/logger"
	"github.com/caselens/caselens/internal/utils"
)

// Options configures the client.
type Options struct {
	Endpoint   string        // e.g. https://query.wikidata.org/sparql
	UserAgent  string        // WDQS policy requires an identifying UA
	Timeout    time.Duration // per-request timeout
	MaxRetries int           // retries after the first attempt
	RetryBase  time.Duration // first backoff, doubled per retry
	CacheTTL   time.Duration // response cache TTL, 0 disables caching
}

// Client executes SPARQL queries against a single endpoint.
type Client struct {
	endpoint   string
	userAgent  string
	http       *http.Client
	log        logger.Logger
	cache      *gocache.Cache
	maxRetries int
	retryBase  time.Duration
}

// New creates a client. Zero option fields get conservative defaults.
func New(opts Options, log logger.Logger) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = 500 * time.Millisecond
	}

	var cache *gocache.Cache
	if opts.CacheTTL > 0 {
		cache = gocache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}

	return &Client{
		endpoint:   opts.Endpoint,
		userAgent:  opts.UserAgent,
		http:       &http.Client{Timeout: opts.Timeout},
		log:        log,
		cache:      cache,
		maxRetries: opts.MaxRetries,
		retryBase:  opts.RetryBase,
	}
}

// Search runs a full-text case search and returns normalized records.
func (c *Client) Search(ctx context.Context, term, lang string, limit int) ([]domain.Case, error) {
	rs, err := c.query(ctx, BuildSearchQuery(term, lang, limit))
	if err != nil {
		return nil, err
	}
	return MapCases(rs), nil
}

// Browse lists cases that are instances of a topic class.
func (c *Client) Browse(ctx context.Context, classQID, lang string, limit int) ([]domain.Case, error) {
	rs, err := c.query(ctx, BuildBrowseQuery(classQID, lang, limit))
	if err != nil {
		return nil, err
	}
	return MapCases(rs), nil
}

// Translations fetches case title labels in the target language.
func (c *Client) Translations(ctx context.Context, caseIDs []string, lang string) (map[string]string, error) {
	if len(caseIDs) == 0 {
		return map[string]string{}, nil
	}
	rs, err := c.query(ctx, BuildTranslationsQuery(caseIDs, lang))
	if err != nil {
		return nil, err
	}
	return MapLabels(rs), nil
}

// query executes one SPARQL query, serving from and filling the response
// cache, and retrying transient failures.
func (c *Client) query(ctx context.Context, sparqlQuery string) (*resultSet, error) {
	if c.cache != nil {
		if hit, ok := c.cache.Get(sparqlQuery); ok {
			c.log.Debug("sparql cache hit")
			return hit.(*resultSet), nil
		}
	}

	var rs *resultSet
	var lastErr error
	wait := c.retryBase

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.log.Warn("retrying sparql query",
				logger.Int("attempt", attempt),
				logger.Duration("wait", wait),
				logger.Error(lastErr))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			wait *= 2
		}

		var retryable bool
		rs, retryable, lastErr = c.execute(ctx, sparqlQuery)
		if lastErr == nil {
			break
		}
		if !retryable {
			return nil, lastErr
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	if c.cache != nil {
		c.cache.SetDefault(sparqlQuery, rs)
	}
	return rs, nil
}

// execute performs a single request. The second return reports whether the
// failure is worth retrying (network errors, 429, 5xx).
func (c *Client) execute(ctx context.Context, sparqlQuery string) (*resultSet, bool, error) {
	params := url.Values{}
	params.Set("query", sparqlQuery)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("failed to build sparql request: %w", err)
	}
	req.Header.Set("Accept", "application/sparql-results+json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("sparql request failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		utils.Close(resp.Body)
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fallthrough to decode
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, true, fmt.Errorf("sparql endpoint returned %d", resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("sparql endpoint returned %d", resp.StatusCode)
	}

	var rs resultSet
	if err := json.NewDecoder(resp.Body).Decode(&rs); err != nil {
		return nil, false, fmt.Errorf("failed to decode sparql response: %w", err)
	}
	return &rs, false, nil
}
