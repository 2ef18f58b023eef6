package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/sirupsen/logrus"

	"github.com/kehao95/gh-activity/internal/event"
)

const apiVersion = "2022-11-28"

// Config holds the client settings. Zero values fall back to the public API
// defaults.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client fetches public activity feeds from the GitHub REST API. Requests are
// unauthenticated; expect the 60 requests/hour anonymous quota.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	userAgent  string
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "gh-activity"
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		timeout:    timeout,
		userAgent:  userAgent,
	}
}

// FetchEvents performs a single GET for the user's most recent public events
// (one page, up to 30 events, most recent first). Failures come back as one
// of the classified error types in this package.
func (c *Client) FetchEvents(ctx context.Context, username string) ([]event.Event, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &InvalidInputError{Reason: "username must not be empty"}
	}

	endpoint := fmt.Sprintf("%s/users/%s/events", c.baseURL, url.PathEscape(username))
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	// GitHub rejects requests without a User-Agent outright.
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	log := logrus.WithField("url", endpoint)
	log.Debug("fetching activity feed...")
	startTime := time.Now()

	res, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Debug("activity feed request failed")
		return nil, &NetworkError{Err: err}
	}
	defer res.Body.Close()

	log.WithFields(logrus.Fields{
		"status":    res.StatusCode,
		"remaining": res.Header.Get("X-Ratelimit-Remaining"),
		"elapsed":   time.Since(startTime),
	}).Debug("activity feed request completed")

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, &UserNotFoundError{Username: username}
	case http.StatusForbidden, http.StatusTooManyRequests:
		// Anonymous reads of this endpoint only 403 when rate limited
		// (secondary limits use 429).
		return nil, &RateLimitedError{ResetAt: rateLimitReset(res.Header)}
	default:
		return nil, &APIError{StatusCode: res.StatusCode}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	events, err := event.DecodeFeed(body)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return events, nil
}

func rateLimitReset(header http.Header) time.Time {
	raw := header.Get("X-Ratelimit-Reset")
	if raw == "" {
		return time.Time{}
	}
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}
