package directory

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/userdir/internal/common"
	"github.com/dmitrijs2005/userdir/internal/netx"
)

// Fetcher loads one page of the directory. Implementations must honor
// context cancellation.
type Fetcher interface {
	FetchPage(ctx context.Context, limit, skip int) (Page, error)
}

// DefaultBaseURL is the public directory the application was built against.
const DefaultBaseURL = "https://dummyjson.com/users"

// errMissingUsers marks a 2xx response without a "users" array.
var errMissingUsers = errors.New(`response has no "users" array`)

// HTTPClient is the Fetcher backed by the directory's REST endpoint.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	metrics    *Metrics
	now        func() time.Time
}

// Option customises client instantiation.
type Option func(*HTTPClient)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout bounds every fetch. Zero means no deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.timeout = d
	}
}

// WithMetrics records fetch outcomes into m.
func WithMetrics(m *Metrics) Option {
	return func(c *HTTPClient) {
		c.metrics = m
	}
}

// NewHTTPClient constructs a client for the given base URL. An empty base
// falls back to DefaultBaseURL.
func NewHTTPClient(base string, opts ...Option) (*HTTPClient, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("invalid directory url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid directory url %q: scheme must be http or https", trimmed)
	}

	c := &HTTPClient{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the endpoint the client queries.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Query builds the query string for one page request.
func Query(limit, skip int) url.Values {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("skip", strconv.Itoa(skip))
	q.Set("select", SelectParam())
	return q
}

type pageResponse struct {
	Users *[]Person `json:"users"`
	Total int       `json:"total"`
	Skip  int       `json:"skip"`
	Limit int       `json:"limit"`
}

// FetchPage requests limit records starting at skip.
func (c *HTTPClient) FetchPage(ctx context.Context, limit, skip int) (Page, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := c.now()
	var resp pageResponse
	err := netx.GetJSON(ctx, c.httpClient, c.baseURL, Query(limit, skip), &resp)
	if err == nil && resp.Users == nil {
		err = errMissingUsers
	}
	if err != nil {
		c.metrics.Observe(OutcomeFailure, c.now().Sub(start))
		return Page{}, fmt.Errorf("%w: %w", common.ErrFetchFailed, err)
	}
	c.metrics.Observe(OutcomeSuccess, c.now().Sub(start))

	return Page{
		Users: *resp.Users,
		Total: resp.Total,
		Skip:  resp.Skip,
		Limit: resp.Limit,
	}, nil
}
