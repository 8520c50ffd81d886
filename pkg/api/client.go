// Package api is the HTTP client for the recipe backend: JSON requests
// against a fixed base URL with bearer auth, retries, client-side rate
// limiting and an optional Redis response cache.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kerbaras/recipebook/pkg/cache"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// TokenSource supplies the bearer token at request time.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string

	// RateLimit is requests per second; zero or negative disables limiting.
	RateLimit float64
	Burst     int

	Retry RetryConfig
}

func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:   baseURL,
		Timeout:   30 * time.Second,
		UserAgent: "recipebook/1.0",
		RateLimit: 10,
		Burst:     5,
		Retry:     DefaultRetryConfig(),
	}
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	retry      RetryConfig
	cache      *cache.Manager
	tokens     TokenSource
	logger     zerolog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache enables the Redis response cache for cacheable GETs.
func WithCache(m *cache.Manager) Option {
	return func(c *Client) { c.cache = m }
}

func WithTokens(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func New(cfg Config, opts ...Option) (*Client, error) {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base,
		userAgent:  cfg.UserAgent,
		limiter:    rate.NewLimiter(limit, burst),
		retry:      cfg.Retry,
		logger:     log.With().Str("component", "api-client").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Request describes one API call.
type Request struct {
	// Name labels metrics and logs, e.g. "recipe.details".
	Name   string
	Method string
	Path   string
	Query  url.Values
	Body   any

	// Auth attaches the stored bearer token and fails early without one.
	Auth bool

	// Cacheable GETs are served from and written to the response cache.
	Cacheable bool

	// UserID scopes the cache entry for personalised responses.
	UserID string
}

func (r Request) endpoint() string {
	if r.Name != "" {
		return r.Name
	}
	return r.Method + " " + r.Path
}

func (c *Client) url(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// Do performs req and decodes the JSON response body into out (if non-nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if req.Method == "" {
		req.Method = http.MethodGet
	}
	endpoint := req.endpoint()

	start := time.Now()
	defer func() {
		apiRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	cacheable := req.Cacheable && req.Method == http.MethodGet && c.cache != nil
	key := cache.Key{Endpoint: req.Path, Query: req.Query, UserID: req.UserID}
	if cacheable {
		entry, err := c.cache.Get(ctx, key)
		switch {
		case err == nil:
			c.logger.Debug().Str("endpoint", endpoint).Msg("Serving response from cache")
			apiRequestsTotal.WithLabelValues(endpoint, "cached").Inc()
			return decode(entry.Data, out)
		case !errors.Is(err, cache.ErrCacheMiss):
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Cache get error")
		}
	}

	var body []byte
	if req.Body != nil {
		var err error
		body, err = json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", endpoint, err)
		}
	}

	var token string
	if req.Auth {
		var err error
		token, err = c.token(ctx)
		if err != nil {
			apiErrorsTotal.WithLabelValues(string(ErrorClassUnauthorized)).Inc()
			return err
		}
	}

	target := c.url(req.Path, req.Query)
	var data []byte
	err := retryWithBackoff(ctx, c.retry, c.logger, func() error {
		var attemptErr error
		data, attemptErr = c.attempt(ctx, req.Method, target, endpoint, body, token)
		return attemptErr
	})
	if err != nil {
		if class := ClassOf(err); class != "" {
			apiErrorsTotal.WithLabelValues(string(class)).Inc()
		}
		return err
	}

	if err := decode(data, out); err != nil {
		apiErrorsTotal.WithLabelValues(string(ErrorClassDecode)).Inc()
		return err
	}

	if cacheable {
		if err := c.cache.Set(ctx, key, c.cache.NewEntry(data, http.StatusOK)); err != nil {
			c.logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Failed to cache response")
		}
	}
	return nil
}

func (c *Client) attempt(ctx context.Context, method, target, endpoint string, body []byte, token string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("method", method).
		Msg("Executing API request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Error().Err(err).Str("endpoint", endpoint).Msg("HTTP request failed")
		apiRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, &APIError{Class: ErrorClassNetwork, Message: "network error", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		apiRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		return nil, &APIError{StatusCode: resp.StatusCode, Class: ErrorClassNetwork, Message: "reading response", Err: err}
	}

	apiRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode >= 400 {
		class := classifyStatus(resp.StatusCode)
		c.logger.Warn().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode).
			Str("error_class", string(class)).
			Msg("API request error")
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Class:      class,
			Message:    errorMessage(resp.StatusCode, data),
		}
	}

	return data, nil
}

func (c *Client) token(ctx context.Context) (string, error) {
	if c.tokens == nil {
		return "", &APIError{Class: ErrorClassUnauthorized, Message: "not signed in"}
	}
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if token == "" {
		return "", &APIError{Class: ErrorClassUnauthorized, Message: "not signed in"}
	}
	return token, nil
}

func decode(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &APIError{StatusCode: http.StatusOK, Class: ErrorClassDecode, Message: "unexpected response", Err: err}
	}
	return nil
}

// Invalidate drops a cached GET response, e.g. after a like changed it.
func (c *Client) Invalidate(ctx context.Context, path string, query url.Values, userID string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, cache.Key{Endpoint: path, Query: query, UserID: userID}); err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("Failed to invalidate cache")
	}
}
