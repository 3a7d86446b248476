package nationstates

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/s0up4200/nsping/notices"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the request timeout. It applies to a copy of the HTTP
// client, whichever order the options come in.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRateTracker shares a tracker between clients.
func WithRateTracker(tracker *RateTracker) Option {
	return func(c *Client) {
		c.tracker = tracker
	}
}

// WithPacing spreads requests evenly over the rate-limit window instead of
// only sleeping once the backoff threshold is reached.
func WithPacing() Option {
	return func(c *Client) {
		c.pacing = true
	}
}

// WithLimiter replaces the request pacing limiter.
func WithLimiter(limiter *rate.Limiter) Option {
	return func(c *Client) {
		c.limiter = limiter
	}
}

// WithNoticeFilter sets the filter applied to returned notices.
func WithNoticeFilter(filter *notices.Filter) Option {
	return func(c *Client) {
		c.filter = filter
	}
}
