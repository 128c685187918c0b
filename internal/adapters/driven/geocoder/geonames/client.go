package geonames

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/placepick/internal/core/domain"
	"github.com/custodia-labs/placepick/internal/core/ports/driven"
	"github.com/custodia-labs/placepick/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.Geocoder = (*Client)(nil)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// Client queries the GeoNames search endpoint.
type Client struct {
	baseURL  string
	username string
	timeout  time.Duration

	http    *retryablehttp.Client
	limiter *RateLimiter
	policy  *bluemonday.Policy
	group   singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithRateLimiter replaces the limiter built from the settings.
func WithRateLimiter(l *RateLimiter) Option {
	return func(c *Client) {
		c.limiter = l
	}
}

// WithRetryWait sets the minimum and maximum wait between retries.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(c *Client) {
		c.http.RetryWaitMin = minWait
		c.http.RetryWaitMax = maxWait
	}
}

// NewClient creates a GeoNames client from settings.
// Zero values in settings fall back to the defaults.
func NewClient(settings domain.GeoNamesSettings, opts ...Option) *Client {
	defaults := domain.DefaultAppSettings().GeoNames
	if settings.BaseURL == "" {
		settings.BaseURL = defaults.BaseURL
	}
	if settings.TimeoutSeconds <= 0 {
		settings.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if settings.MaxRetries < 0 {
		settings.MaxRetries = 0
	}

	timeout := time.Duration(settings.TimeoutSeconds) * time.Second

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = settings.MaxRetries
	httpClient.RetryWaitMin = 200 * time.Millisecond
	httpClient.RetryWaitMax = 2 * time.Second
	httpClient.HTTPClient.Timeout = timeout
	httpClient.CheckRetry = retryablehttp.DefaultRetryPolicy
	httpClient.Backoff = retryablehttp.DefaultBackoff
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	httpClient.Logger = logger.Leveled{Component: "geonames"}

	c := &Client{
		baseURL:  settings.BaseURL,
		username: strings.TrimSpace(settings.Username),
		timeout:  timeout * time.Duration(settings.MaxRetries+1),
		http:     httpClient,
		limiter:  NewRateLimiter(float64(settings.RequestsPerSecond), settings.Burst),
		policy:   bluemonday.StrictPolicy(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Search returns the GeoNames records matching query, in provider order.
// Concurrent calls with the same query and filters share one request.
func (c *Client) Search(ctx context.Context, query string, filters domain.SearchFilters) ([]domain.GeoRecord, error) {
	if c.username == "" {
		return nil, domain.ErrMissingCredentials
	}

	requestURL, err := c.buildURL(query, filters)
	if err != nil {
		return nil, err
	}

	// The shared fetch must outlive any single caller giving up.
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(requestURL, func() (any, error) {
		return c.fetch(fetchCtx, requestURL)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logger.Debug("geonames: shared result for %q", query)
		}
		return slices.Clone(res.Val.([]domain.GeoRecord)), nil
	}
}

// buildURL renders the request URL for query and filters.
func (c *Client) buildURL(query string, filters domain.SearchFilters) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: base url %q: %v", domain.ErrTransport, c.baseURL, err)
	}

	queryType := filters.QueryType
	if queryType == "" {
		queryType = domain.QueryTypeNameStartsWith
	}

	params := u.Query()
	params.Set(queryType.String(), query)
	for _, class := range filters.FeatureClasses {
		params.Add("featureClass", class)
	}
	for _, code := range filters.FeatureCodes {
		params.Add("featureCode", code)
	}
	params.Set("type", "json")
	params.Set("username", c.username)
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// fetch performs one throttled request and decodes it.
func (c *Client) fetch(ctx context.Context, requestURL string) ([]domain.GeoRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTransport, redact(err, c.username))
	}
	defer resp.Body.Close()

	logger.Debug("geonames: HTTP %d in %s", resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode == http.StatusTooManyRequests {
		c.limiter.Backoff(retryAfter(resp.Header))
		return nil, fmt.Errorf("%w: %w: HTTP %d", domain.ErrTransport, domain.ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: HTTP %d", domain.ErrTransport, resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrTransport, err)
	}

	if body.Status != nil {
		return nil, c.statusError(*body.Status)
	}

	return c.records(body.Geonames), nil
}

// statusError converts a GeoNames status report into an error.
func (c *Client) statusError(status statusReport) error {
	message := c.clean(status.Message)
	if status.rateLimited() {
		c.limiter.Backoff(DefaultQuotaBackoff)
		return fmt.Errorf("%w: %w: %s (status %d)", domain.ErrUpstream, domain.ErrRateLimited, message, status.Value)
	}
	return fmt.Errorf("%w: %s (status %d)", domain.ErrUpstream, message, status.Value)
}

// records converts and sanitises provider records, dropping those without a name.
func (c *Client) records(items []geoName) []domain.GeoRecord {
	out := make([]domain.GeoRecord, 0, len(items))
	for _, item := range items {
		name := c.clean(item.Name)
		if name == "" {
			continue
		}
		out = append(out, domain.GeoRecord{
			GeonameID:   item.GeonameID,
			Name:        name,
			AdminName1:  c.clean(item.AdminName1),
			CountryName: c.clean(item.CountryName),
			Lat:         string(item.Lat),
			Lng:         string(item.Lng),
		})
	}
	return out
}

// clean strips markup and decodes entities.
func (c *Client) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(c.policy.Sanitize(s)))
}

// retryAfter reads a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	var seconds int
	if _, err := fmt.Sscanf(h.Get("Retry-After"), "%d", &seconds); err != nil || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// redact removes the account name from transport errors, which embed the URL.
func redact(err error, username string) string {
	msg := err.Error()
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg = urlErr.Op + ": " + urlErr.Err.Error()
	}
	if username != "" {
		msg = strings.ReplaceAll(msg, url.QueryEscape(username), "***")
		msg = strings.ReplaceAll(msg, username, "***")
	}
	return msg
}
