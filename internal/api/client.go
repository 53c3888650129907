package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/ygelfand/studentctl/internal/cache"
	"github.com/ygelfand/studentctl/internal/config"
)

const (
	studentsPath = "/students"
	filterPath   = "/students/filter"
)

type Client struct {
	baseURL  string
	http     *http.Client
	cache    *cache.Manager
	cacheTTL time.Duration
}

type Option func(*Client)

// WithCache caches page loads for ttl
func WithCache(m *cache.Manager, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = m
		c.cacheTTL = ttl
	}
}

// WithHTTPClient replaces the logging HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// NewClient builds a backend client from the configuration
func NewClient(cfg *config.Config, opts ...Option) (*Client, error) {
	base := strings.TrimSuffix(cfg.BaseURL, "/")
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = config.DefaultTimeout
	}

	c := &Client{
		baseURL: base,
		http: &http.Client{
			Transport: &loggingTransport{
				base: http.DefaultTransport,
				cfg:  cfg,
			},
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	slog.Debug("NewClient: Initialized", "base_url", base, "timeout", timeout, "cache_ttl", c.cacheTTL)
	return c, nil
}

// BaseURL returns the backend root without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListStudents fetches one server page
func (c *Client) ListStudents(ctx context.Context, params PageParams) (*StudentsResponse, error) {
	var res StudentsResponse
	err := cache.AutoCache(c.cache, c.baseURL+studentsPath, params, c.cacheTTL, &res, func() (*StudentsResponse, error) {
		return c.get(ctx, studentsPath, params)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// FollowNext fetches the page behind an opaque next cursor
func (c *Client) FollowNext(ctx context.Context, next string) (*StudentsResponse, error) {
	if next == "" {
		return nil, fmt.Errorf("empty next cursor")
	}
	return c.fetch(ctx, c.resolve(next))
}

// Filter queries the server-side filter endpoint
func (c *Client) Filter(ctx context.Context, params FilterParams) (*StudentsResponse, error) {
	if params.Comparison != "" && !params.Comparison.Valid() {
		return nil, fmt.Errorf("invalid comparison %q", params.Comparison)
	}
	return c.get(ctx, filterPath, params)
}

// Ping checks that the backend answers the students endpoint
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, studentsPath, PageParams{Page: 1, Size: 1})
	return err
}

func (c *Client) resolve(next string) string {
	if strings.HasPrefix(next, "http://") || strings.HasPrefix(next, "https://") {
		return next
	}
	if !strings.HasPrefix(next, "/") {
		next = "/" + next
	}
	return c.baseURL + next
}

func (c *Client) get(ctx context.Context, path string, params any) (*StudentsResponse, error) {
	values, err := query.Values(params)
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	target := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return c.fetch(ctx, target)
}

func (c *Client) fetch(ctx context.Context, target string) (*StudentsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &RequestError{Method: http.MethodGet, URL: target, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", config.UserAgent())

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Method: req.Method, URL: target, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, &RequestError{
			Method:     req.Method,
			URL:        target,
			StatusCode: res.StatusCode,
			Err:        fmt.Errorf("%s", res.Status),
		}
	}

	dec := json.NewDecoder(res.Body)
	dec.UseNumber()
	var out StudentsResponse
	if err := dec.Decode(&out); err != nil {
		return nil, &RequestError{Method: req.Method, URL: target, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	return &out, nil
}
