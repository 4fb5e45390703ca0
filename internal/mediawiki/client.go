package mediawiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// ClientConfig controls API client behavior.
type ClientConfig struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Client issues GET requests against MediaWiki API endpoints with a
// fixed identifying User-Agent and a flat retry policy: every transport
// failure and every non-200 status is retried after the same fixed
// delay, with no status-code differentiation. That mirrors the original
// crawl tool and is a known simplification, not a bug.
type Client struct {
	cfg           ClientConfig
	baseCollector *colly.Collector
	logger        *zap.Logger
}

// Endpoint returns the api.php URL for a language edition.
func Endpoint(lang string) string {
	return fmt.Sprintf("https://%s.wikipedia.org/w/api.php", lang)
}

// NewClient constructs a Client backed by a Colly collector.
func NewClient(cfg ClientConfig, logger *zap.Logger) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, errors.New("user agent must be set")
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	base := colly.NewCollector(colly.UserAgent(cfg.UserAgent))
	// Retries re-issue identical URLs, so the revisit guard must be off.
	base.AllowURLRevisit = true
	// api.php is the sanctioned access path; robots.txt governs page
	// scraping, not API clients.
	base.IgnoreRobotsTxt = true
	base.SetRequestTimeout(cfg.Timeout)

	return &Client{
		cfg:           cfg,
		baseCollector: base,
		logger:        logger,
	}, nil
}

// get fetches endpoint with params and decodes the JSON body into out.
// A malformed body fails immediately with a *DecodeError; everything
// else is retried up to MaxRetries before escalating to *ExhaustedError.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	fullURL := endpoint + "?" + params.Encode()

	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		requestsTotal.Inc()
		body, status, err := c.fetchOnce(ctx, fullURL)
		switch {
		case err == nil && status == http.StatusOK:
			if derr := json.Unmarshal(body, out); derr != nil {
				return &DecodeError{URL: endpoint, Err: derr}
			}
			return nil
		case status > 0:
			lastErr = &StatusError{Code: status, URL: endpoint}
		case err != nil:
			lastErr = fmt.Errorf("request failed: %w", err)
		default:
			lastErr = errors.New("collector produced no result")
		}

		requestFailuresTotal.Inc()
		c.logger.Warn("API request failed",
			zap.String("url", endpoint),
			zap.Int("attempt", attempt),
			zap.Int("max_retries", c.cfg.MaxRetries),
			zap.Error(lastErr),
		)
		if attempt < c.cfg.MaxRetries {
			retriesTotal.Inc()
			if werr := waitFor(ctx, c.cfg.RetryDelay); werr != nil {
				return werr
			}
		}
	}
	return &ExhaustedError{URL: endpoint, Params: params, Attempts: c.cfg.MaxRetries, Last: lastErr}
}

type fetchResult struct {
	body   []byte
	status int
	err    error
}

// fetchOnce performs a single GET via a cloned collector.
func (c *Client) fetchOnce(ctx context.Context, fullURL string) ([]byte, int, error) {
	collector := c.baseCollector.Clone()

	resultCh := make(chan fetchResult, 1)
	var once sync.Once
	send := func(res fetchResult) {
		once.Do(func() {
			resultCh <- res
		})
	}

	collector.OnResponse(func(r *colly.Response) {
		send(fetchResult{
			body:   append([]byte(nil), r.Body...),
			status: r.StatusCode,
		})
	})

	collector.OnError(func(r *colly.Response, err error) {
		status := 0
		if r != nil {
			status = r.StatusCode
		}
		if err == nil {
			err = errors.New("unknown collector error")
		}
		send(fetchResult{status: status, err: err})
	})

	if err := collector.Visit(fullURL); err != nil {
		// Visit surfaces OnError failures as its own return value; the
		// status the hook captured is in resultCh, so prefer that.
		select {
		case res := <-resultCh:
			return res.body, res.status, res.err
		default:
			return nil, 0, err
		}
	}
	collector.Wait()

	select {
	case res := <-resultCh:
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		return res.body, res.status, res.err
	default:
		return nil, 0, errors.New("collector produced no result")
	}
}

// waitFor sleeps for delay unless the context ends first.
func waitFor(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
