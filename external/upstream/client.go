package upstream

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/fantasy-baseball/internal/platform/logging"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/metrics"
	"github.com/riskibarqy/fantasy-baseball/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-baseball/internal/usecase"
)

const (
	DefaultUserAgent = "YahooFantasyBot/1.0"
	maxBodyBytes     = 6 << 20
)

var (
	errUpstreamTransient = crerr.New("upstream transient failure")
	errBodyTooLarge      = crerr.New("upstream response body too large")
)

type Config struct {
	HTTPClient     *http.Client
	Source         string
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	Metrics        *metrics.Metrics
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches from one upstream data source. Requests for the same URL
// in flight at the same time share a single round trip.
type Client struct {
	httpClient *http.Client
	source     string
	baseURL    string
	userAgent  string
	maxRetries int
	logger     *logging.Logger
	metrics    *metrics.Metrics
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight[[]byte]
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	source := strings.TrimSpace(cfg.Source)
	logger = logger.With("source", source)

	return &Client{
		httpClient: httpClient,
		source:     source,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		userAgent:  userAgent,
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		metrics:    cfg.Metrics,
		breaker: resilience.NewSourceBreaker(source, cfg.CircuitBreaker, func(name string, from, to resilience.CircuitState) {
			logger.Warn("upstream circuit breaker state changed", "from", from, "to", to)
		}),
	}
}

func (c *Client) Source() string {
	return c.source
}

func (c *Client) Logger() *logging.Logger {
	return c.logger
}

// GetJSON fetches path and decodes the body into target.
func (c *Client) GetJSON(ctx context.Context, path string, query map[string]string, target any) error {
	raw, err := c.GetBytes(ctx, path, query)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", c.source, err)
	}
	return nil
}

// GetBytes fetches path and returns the raw body of a 2xx response.
func (c *Client) GetBytes(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "upstream circuit breaker rejected request", "state", c.breaker.State())
		c.metrics.UpstreamRequest(c.source, "rejected", 0)
		return nil, fmt.Errorf("%w: %s is temporarily unavailable", usecase.ErrDependencyUnavailable, c.source)
	}

	fullURL := c.buildURL(path, query)
	raw, err, _ := c.flight.Do(fullURL, func() ([]byte, error) {
		started := time.Now()
		raw, reqErr := c.executeRequest(ctx, fullURL)
		switch {
		case reqErr == nil:
			c.breaker.RecordSuccess()
			c.metrics.UpstreamRequest(c.source, "ok", time.Since(started))
		case isCircuitFailure(reqErr):
			c.breaker.RecordFailure()
			c.metrics.UpstreamRequest(c.source, "transient", time.Since(started))
		default:
			c.breaker.RecordSuccess()
			c.metrics.UpstreamRequest(c.source, "error", time.Since(started))
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// buildURL sorts query keys so identical requests share one flight key.
func (c *Client) buildURL(path string, query map[string]string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	if path != "" && !strings.HasPrefix(path, "/") {
		_ = buf.WriteByte('/')
	}
	_, _ = buf.WriteString(path)

	if len(query) > 0 {
		keys := make([]string, 0, len(query))
		for key := range query {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for i, key := range keys {
			if i == 0 {
				_ = buf.WriteByte('?')
			} else {
				_ = buf.WriteByte('&')
			}
			_, _ = buf.WriteString(url.QueryEscape(key))
			_ = buf.WriteByte('=')
			_, _ = buf.WriteString(url.QueryEscape(query[key]))
		}
	}
	return buf.String()
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json, text/csv;q=0.9, */*;q=0.8")
		req.Header.Set("user-agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errUpstreamTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = crerr.Wrapf(errUpstreamTransient, "read response body: %v", readErr)
			} else if len(raw) > maxBodyBytes {
				return nil, crerr.Wrapf(errBodyTooLarge, "%s body exceeds %d bytes", c.source, maxBodyBytes)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = crerr.Wrapf(errUpstreamTransient, "%s status=%d body=%s", c.source, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("%s status=%d body=%s", c.source, resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%s request failed", c.source)
	}
	c.logger.WarnContext(ctx, "upstream request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errUpstreamTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
