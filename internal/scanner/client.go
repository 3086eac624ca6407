package scanner

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"growthlens/internal/config"
)

// Client fetches site pages with a timeout, rate limiting and bounded
// retries on transient upstream errors.
type Client struct {
	httpClient *http.Client
	limiter    *RateLimiter
	userAgent  string
}

type FetchResult struct {
	Body     []byte
	FinalURL string
	HTTPS    bool
	Elapsed  time.Duration
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: time.Duration(cfg.ScanTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.ScanRateLimitRPS),
		userAgent:  cfg.ScanUserAgent,
	}
}

const maxFetchAttempts = 3

// FetchPage downloads one page. Elapsed covers the successful attempt only,
// since it feeds the load-time score.
func (c *Client) FetchPage(rawURL string) (FetchResult, error) {
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	var lastErr error
	for attempt := 1; attempt <= maxFetchAttempts; attempt++ {
		c.limiter.WaitTurn()

		req, err := http.NewRequest(http.MethodGet, rawURL, nil)
		if err != nil {
			return FetchResult{}, err
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "text/html,application/xhtml+xml")

		started := time.Now()
		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 5<<20))
		elapsed := time.Since(started)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < maxFetchAttempts {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = fmt.Errorf("fetch status %d", resp.StatusCode)
				continue
			}
			return FetchResult{}, fmt.Errorf("fetch %s: status=%d", rawURL, resp.StatusCode)
		}

		finalURL := rawURL
		if resp.Request != nil && resp.Request.URL != nil {
			finalURL = resp.Request.URL.String()
		}
		return FetchResult{
			Body:     body,
			FinalURL: finalURL,
			HTTPS:    strings.HasPrefix(finalURL, "https://"),
			Elapsed:  elapsed,
		}, nil
	}

	if lastErr == nil {
		lastErr = errors.New("fetch failed")
	}
	return FetchResult{}, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}
