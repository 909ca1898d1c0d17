// Package tmdb adapts The Movie Database HTTP API to the catalog ports.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/alexanderramin/moodflix/internal/catalog"
	"github.com/alexanderramin/moodflix/internal/metrics"
)

const breakerName = "tmdb-api"

// Config holds the TMDB connection settings.
type Config struct {
	APIKey            string
	BaseURL           string
	Language          string
	Region            string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns Spanish results for Argentina.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://api.themoviedb.org/3",
		Language:          "es-AR",
		Region:            "AR",
		Timeout:           10 * time.Second,
		RequestsPerSecond: 20,
		Burst:             10,
	}
}

// errClientStatus marks 4xx answers. They do not count against the breaker.
var errClientStatus = errors.New("tmdb rejected request")

// Client performs rate-limited, circuit-broken GETs against TMDB.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[[]byte]
	logger  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}

	metrics.SetCircuitBreakerState(breakerName, 0)
	c.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errClientStatus) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state transition", "breaker", name, "from", from.String(), "to", to.String())
			metrics.SetCircuitBreakerState(name, stateToFloat(to))
		},
	})
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// get fetches path with params and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, metricLabel, path string, params url.Values, out any) error {
	if !c.Configured() {
		return catalog.ErrNotConfigured
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %w", catalog.ErrUnavailable, err)
	}

	body, err := c.cb.Execute(func() ([]byte, error) {
		return c.do(ctx, path, params)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordCatalogRequest(metricLabel, "rejected")
		return fmt.Errorf("%w: %s", catalog.ErrCircuitOpen, path)
	case errors.Is(err, errClientStatus):
		metrics.RecordCatalogRequest(metricLabel, "rejected")
		if strings.Contains(err.Error(), "status 404") {
			return fmt.Errorf("%w: %s", catalog.ErrNotFound, path)
		}
		return err
	case err != nil:
		metrics.RecordCatalogRequest(metricLabel, "failure")
		return fmt.Errorf("%w: %w", catalog.ErrUnavailable, err)
	}
	metrics.RecordCatalogRequest(metricLabel, "success")

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decoding %s: %w", catalog.ErrUnavailable, path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string, params url.Values) ([]byte, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("api_key", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	c.logger.Debug("tmdb request", "path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	switch {
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d", errClientStatus, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("tmdb returned status %d", resp.StatusCode)
	}
	return data, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
