// SPDX-FileCopyrightText: 2025 The Karei Authors
// SPDX-License-Identifier: EUPL-1.2

// Package network implements the recommendation service transport.
package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	json "github.com/goccy/go-json"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/janderssonse/cinerec/internal/domain"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// Circuit breaker tuning.
const (
	breakerName        = "recommend-api"
	breakerMaxRequests = 2
	breakerInterval    = time.Minute
	breakerTimeout     = 30 * time.Second
	breakerMinRequests = 6
	breakerTripRatio   = 0.6
	retryDelay         = 200 * time.Millisecond
)

// StatusError reports a non-success HTTP status from the service.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("recommend request failed with status %d", e.Code)
}

// ClientConfig configures a RecommendClient. Zero values select defaults.
type ClientConfig struct {
	BaseURL    string
	Timeout    time.Duration // zero means no timeout
	Retries    uint          // extra attempts on transient failures
	RateLimit  float64       // requests per second, zero means unlimited
	RateBurst  int
	CacheSize  int // zero disables the response cache
	CacheTTL   time.Duration
	Logger     zerolog.Logger
	HTTPClient *http.Client
}

// RecommendClient implements domain.Recommender over HTTP.
type RecommendClient struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]domain.Movie]
	cache   *expirable.LRU[string, []domain.Movie]
	retries uint
	logger  zerolog.Logger
}

type recommendPayload struct {
	Recommendations []domain.Movie `json:"recommendations"`
}

// NewHTTPClient creates an HTTP client with timeout that honours proxy settings.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
		},
	}
}

// NewRecommendClient creates a client for the service at cfg.BaseURL.
func NewRecommendClient(cfg ClientConfig) (*RecommendClient, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid api base %q", cfg.BaseURL)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = NewHTTPClient(cfg.Timeout)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 1
	}

	c := &RecommendClient{
		baseURL: strings.TrimRight(base.String(), "/"),
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
		retries: cfg.Retries,
		logger:  cfg.Logger,
	}

	if cfg.CacheSize > 0 {
		c.cache = expirable.NewLRU[string, []domain.Movie](cfg.CacheSize, nil, cfg.CacheTTL)
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]domain.Movie](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: breakerMaxRequests,
		Interval:    breakerInterval,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < breakerMinRequests {
				return false
			}

			return float64(counts.TotalFailures)/float64(counts.Requests) >= breakerTripRatio
		},
		// An unknown title is a valid answer, not an outage.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrTitleNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})

	return c, nil
}

// Recommend fetches the recommendations for title. Every failure wraps
// domain.ErrTitleNotFound, or domain.ErrUpstreamUnavailable when the circuit
// breaker is open.
func (c *RecommendClient) Recommend(ctx context.Context, title string) ([]domain.Movie, error) {
	key := domain.TitleKey(strings.TrimSpace(title))

	if c.cache != nil {
		if movies, ok := c.cache.Get(key); ok {
			return movies, nil
		}
	}

	movies, err := c.breaker.Execute(func() ([]domain.Movie, error) {
		return retry.DoWithData(
			func() ([]domain.Movie, error) {
				return c.fetch(ctx, title)
			},
			retry.Context(ctx),
			retry.Attempts(c.retries+1),
			retry.Delay(retryDelay),
			retry.DelayType(retry.BackOffDelay),
			retry.LastErrorOnly(true),
			retry.RetryIf(isTransient),
		)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
		}

		if !errors.Is(err, domain.ErrTitleNotFound) {
			err = fmt.Errorf("%w: %w", domain.ErrTitleNotFound, err)
		}

		c.logger.Debug().Err(err).Str("title", title).Msg("recommend lookup failed")

		return nil, err
	}

	if c.cache != nil {
		c.cache.Add(key, movies)
	}

	return movies, nil
}

func (c *RecommendClient) fetch(ctx context.Context, title string) ([]domain.Movie, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("rate limiter: %w", err))
	}

	endpoint := c.baseURL + "/recommend/" + url.PathEscape(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach recommendation service: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{Code: resp.StatusCode}
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %w", domain.ErrTitleNotFound, statusErr)
		}

		return nil, statusErr
	}

	var payload recommendPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", domain.ErrTitleNotFound, err)
	}

	if payload.Recommendations == nil {
		return []domain.Movie{}, nil
	}

	return payload.Recommendations, nil
}

// isTransient reports whether a failed attempt is worth repeating.
func isTransient(err error) bool {
	if errors.Is(err, domain.ErrTitleNotFound) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= http.StatusInternalServerError || statusErr.Code == http.StatusTooManyRequests
	}

	var netErr net.Error

	return errors.As(err, &netErr)
}
