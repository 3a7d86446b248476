package nationstates

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/s0up4200/nsping/notices"
)

// DefaultBaseURL is the NationStates API endpoint.
const DefaultBaseURL = "https://www.nationstates.net/cgi-bin/api.cgi"

// AgentSuffix identifies this tool in every User-Agent.
const AgentSuffix = "(nsping autologin script)"

// Request and response headers used by the API.
const (
	HeaderPassword     = "X-Password"
	HeaderAutologin    = "X-Autologin"
	HeaderPin          = "X-Pin"
	HeaderRequestsSeen = "X-Ratelimit-Requests-Seen"
	HeaderRetryAfter   = "Retry-After"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 4 << 20

// UserAgent appends the tool suffix to the user-supplied agent.
func UserAgent(agent string) string {
	return fmt.Sprintf("%s %s", strings.TrimSpace(agent), AgentSuffix)
}

// Client logs nations into the NationStates API.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	tracker    *RateTracker
	limiter    *rate.Limiter
	pacing     bool
	timeout    time.Duration
	filter     *notices.Filter
	logger     zerolog.Logger
}

// NewClient creates a new client sending agent (plus the tool suffix) as its
// User-Agent.
func NewClient(agent string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if strings.TrimSpace(agent) == "" {
		return nil, ErrNoAgent
	}

	tracker := NewRateTracker(DefaultWindow, DefaultMargin, DefaultPause)
	c := &Client{
		baseURL:    DefaultBaseURL,
		userAgent:  UserAgent(agent),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		tracker:    tracker,
		filter:     notices.Default(),
		logger:     logger,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	if c.limiter == nil {
		c.limiter = rate.NewLimiter(rate.Inf, 1)
		if c.pacing {
			c.limiter = PacingLimiter(c.tracker)
		}
	}

	return c, nil
}

// PacingLimiter spreads requests evenly over the tracker's window, allowing a
// burst up to the backoff threshold.
func PacingLimiter(t *RateTracker) *rate.Limiter {
	if t.window <= 0 || t.pause <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(t.pause/time.Duration(t.window)), t.Threshold())
}

// Tracker returns the client's rate tracker.
func (c *Client) Tracker() *RateTracker {
	return c.tracker
}

// UserAgent returns the User-Agent header sent with every request.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// Login pings the notices shard for nation with the given credentials.
//
// Remote outcomes (bad credential, not found, rate limited, ...) are reported
// in the Result. An error is returned only for invalid input and for failures
// to talk to the API at all.
func (c *Client) Login(ctx context.Context, nation string, creds Credentials) (*Result, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	id, err := NormalizeNation(nation)
	if err != nil {
		return nil, err
	}

	slept, err := c.tracker.Wait(ctx)
	if slept > 0 {
		c.logger.Info().Dur("slept", slept).Msg("Slept to avoid the rate limit")
	}
	if err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := c.newRequest(ctx, id, creds)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Str("nation", id).Msg("Logging in")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	// Runs before anything else can fail so every response feeds the tracker.
	seen := c.observe(resp.Header)

	res := &Result{
		Outcome:      Classify(resp.StatusCode),
		Status:       resp.StatusCode,
		Nation:       id,
		RequestsSeen: seen,
	}

	switch res.Outcome {
	case OutcomeSuccess:
		res.Autologin = resp.Header.Get(HeaderAutologin)
		if err := c.readNotices(resp, res); err != nil {
			// Notices are informational only; the login itself succeeded.
			c.logger.Warn().Err(err).Str("nation", id).Msg("Could not read notices")
		}
	case OutcomeRateLimited:
		res.RetryAfter = retryAfter(resp.Header)
	default:
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	}

	c.logger.Debug().
		Str("nation", id).
		Int("status", res.Status).
		Str("outcome", res.Outcome.String()).
		Int("requests_seen", seen).
		Msg("Login finished")

	return res, nil
}

func (c *Client) newRequest(ctx context.Context, id string, creds Credentials) (*http.Request, error) {
	params := url.Values{
		"nation": {id},
		"q":      {"notices"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	creds.apply(req.Header)

	return req, nil
}

// observe feeds the requests-seen counter to the tracker.
func (c *Client) observe(h http.Header) int {
	seen := requestsSeen(h)
	if c.tracker.Observe(seen) {
		c.logger.Debug().
			Int("requests_seen", seen).
			Int("threshold", c.tracker.Threshold()).
			Msg("Close to the rate limit, pausing before the next request")
	}
	return seen
}

func (c *Client) readNotices(resp *http.Response, res *Result) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	nation, err := notices.Parse(body)
	if err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if id, err := NormalizeNation(nation.ID); err == nil {
		res.Nation = id
	}
	res.Notices = c.filter.Apply(nation)
	return nil
}
