package seatsaero

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	EndpointRoutes       = "routes"
	EndpointAvailability = "availability"
)

var (
	ErrRateLimit                    = errors.New("rate limit error")
	ErrRateLimitWouldExceedDeadline = errors.New("rate limit wait would deadline")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type ResponseStatusErr struct {
	StatusCode int
	Status     string
}

func (e ResponseStatusErr) Error() string {
	return e.Status
}

// ResponseHook is invoked once per upstream request.
// statusCode is 0 if no response was received.
type ResponseHook func(endpoint string, statusCode int, d time.Duration)

type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	hook       ResponseHook
	apiKey     string
	baseUrl    string
}

type ClientOption func(c *Client)

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithRateLimiter(limiter *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = limiter
	}
}

func WithBaseUrl(baseUrl string) ClientOption {
	return func(c *Client) {
		c.baseUrl = strings.TrimSuffix(baseUrl, "/")
	}
}

func WithResponseHook(hook ResponseHook) ClientOption {
	return func(c *Client) {
		c.hook = hook
	}
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{apiKey: apiKey}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = cmp.Or(c.httpClient, http.DefaultClient)
	c.baseUrl = cmp.Or(c.baseUrl, "https://seats.aero")

	return c
}

func (c *Client) Routes(ctx context.Context) ([]Route, error) {
	return doRequest[[]Route](ctx, c, EndpointRoutes, nil)
}

// Availability returns every cached availability of the given mileage program.
func (c *Client) Availability(ctx context.Context, source string) ([]Availability, error) {
	q := make(url.Values)
	q.Set("source", source)

	return doRequest[[]Availability](ctx, c, EndpointAvailability, q)
}

func (c *Client) doRequest(ctx context.Context, method, surl string, q url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, surl, nil)
	if err != nil {
		return nil, err
	}

	if q != nil {
		fullQuery := req.URL.Query()
		maps.Copy(fullQuery, q)
		req.URL.RawQuery = fullQuery.Encode()
	}

	req.Header.Set("Partner-Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	if c.limiter != nil {
		if err = c.limiter.Wait(ctx); err != nil {
			return nil, decorateLimiterErr(err)
		}
	}

	return c.httpClient.Do(req)
}

func doRequest[T any](ctx context.Context, c *Client, endpoint string, q url.Values) (T, error) {
	var res T
	surl := c.baseUrl + "/api/" + endpoint

	start := time.Now()
	resp, err := c.doRequest(ctx, http.MethodGet, surl, q)
	if err != nil {
		c.observe(endpoint, 0, start)
		return res, err
	}

	defer resp.Body.Close()
	c.observe(endpoint, resp.StatusCode, start)

	if resp.StatusCode != http.StatusOK {
		return res, ResponseStatusErr{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return res, fmt.Errorf("failed to parse %s response: %w", endpoint, err)
	}

	return res, nil
}

func (c *Client) observe(endpoint string, statusCode int, start time.Time) {
	if c.hook != nil {
		c.hook(endpoint, statusCode, time.Since(start))
	}
}
