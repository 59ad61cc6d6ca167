// Package api is the client for the remote listings service.
package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/carsawa/site/cache"
	"github.com/carsawa/site/filter"
	"github.com/carsawa/site/listing"
	"github.com/carsawa/site/logger"
)

// Client talks to the listings service. It is safe for concurrent use.
type Client struct {
	baseURL  string
	http     *fasthttp.Client
	timeout  time.Duration
	cache    *cache.Cache[[]byte]
	cacheTTL time.Duration
	log      *zap.Logger

	shared    SharedCache
	sharedTTL time.Duration
}

// SharedCache is a second cache level shared between site instances.
type SharedCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

type Option func(*Client)

// WithCache caches successful response bodies for ttl. A zero ttl disables caching.
func WithCache(c *cache.Cache[[]byte], ttl time.Duration) Option {
	return func(cl *Client) {
		if ttl > 0 {
			cl.cache, cl.cacheTTL = c, ttl
		}
	}
}

// WithSharedCache consults s after the in-process cache misses. Shared cache
// errors are logged and otherwise ignored.
func WithSharedCache(s SharedCache, ttl time.Duration) Option {
	return func(cl *Client) {
		if ttl > 0 {
			cl.shared, cl.sharedTTL = s, ttl
		}
	}
}

func WithHTTPClient(hc *fasthttp.Client) Option {
	return func(cl *Client) { cl.http = hc }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		timeout: timeout,
		http: &fasthttp.Client{
			Name:                "carsawa-site",
			MaxConnsPerHost:     64,
			MaxIdleConnDuration: 30 * time.Second,
		},
		log: logger.Named("api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query serializes params for a request. Nil values and empty strings are
// skipped; everything else is formatted as its plain text form.
func Query(params map[string]any) url.Values {
	q := url.Values{}
	for k, v := range params {
		if s, ok := format(v); ok {
			q.Set(k, s)
		}
	}
	return q
}

func format(v any) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	case *int:
		if v == nil {
			return "", false
		}
		return strconv.Itoa(*v), true
	case *int64:
		if v == nil {
			return "", false
		}
		return strconv.FormatInt(*v, 10), true
	case *string:
		if v == nil || *v == "" {
			return "", false
		}
		return *v, true
	case fmt.Stringer:
		s := v.String()
		return s, s != ""
	default:
		s := fmt.Sprint(v)
		return s, s != ""
	}
}

func withPage(q url.Values, page, pageSize int) url.Values {
	q.Set("page", strconv.Itoa(max(page, 1)))
	if pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(pageSize))
	}
	return q
}

// SearchCars fetches one page of listings matching params.
func (c *Client) SearchCars(ctx context.Context, params map[string]any, page, pageSize int) (listing.Page[listing.Listing], error) {
	res, err := load(ctx, c, "/api/cars", withPage(Query(params), page, pageSize), func(body []byte) (listing.Page[listing.Listing], error) {
		return decodePage(body, page, pageSize, validateListing)
	})
	if err != nil {
		return listing.Page[listing.Listing]{Items: []listing.Listing{}}, err
	}
	return res, nil
}

// FindCars is SearchCars for filter criteria.
func (c *Client) FindCars(ctx context.Context, criteria filter.Criteria, page, pageSize int) (listing.Page[listing.Listing], error) {
	return c.SearchCars(ctx, criteria.Params(), page, pageSize)
}

func (c *Client) GetCar(ctx context.Context, id string) (listing.Listing, error) {
	return load(ctx, c, "/api/cars/"+url.PathEscape(id), nil, func(body []byte) (listing.Listing, error) {
		return decodeOne(body, "car", validateListing)
	})
}

func (c *Client) ListDealers(ctx context.Context, page, pageSize int) (listing.Page[listing.Dealer], error) {
	res, err := load(ctx, c, "/api/dealers", withPage(url.Values{}, page, pageSize), func(body []byte) (listing.Page[listing.Dealer], error) {
		return decodePage(body, page, pageSize, validateDealer)
	})
	if err != nil {
		return listing.Page[listing.Dealer]{Items: []listing.Dealer{}}, err
	}
	return res, nil
}

func (c *Client) GetDealer(ctx context.Context, id string) (listing.Dealer, error) {
	return load(ctx, c, "/api/dealers/"+url.PathEscape(id), nil, func(body []byte) (listing.Dealer, error) {
		return decodeOne(body, "dealer", validateDealer)
	})
}

func (c *Client) ListDealerCars(ctx context.Context, id string, page, pageSize int) (listing.Page[listing.Listing], error) {
	path := "/api/dealers/" + url.PathEscape(id) + "/cars"
	res, err := load(ctx, c, path, withPage(url.Values{}, page, pageSize), func(body []byte) (listing.Page[listing.Listing], error) {
		return decodePage(body, page, pageSize, validateListing)
	})
	if err != nil {
		return listing.Page[listing.Listing]{Items: []listing.Listing{}}, err
	}
	return res, nil
}

// Ping checks that the service answers a minimal listings request. It bypasses the cache.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, c.url("/api/cars", withPage(url.Values{}, 1, 1)))
	return err
}

// CacheStats reports the response cache counters, or nil when caching is off.
func (c *Client) CacheStats() *cache.Stats {
	if c.cache == nil {
		return nil
	}
	s := c.cache.Stats()
	return &s
}

func (c *Client) url(path string, q url.Values) string {
	u := c.baseURL + path
	if len(q) > 0 {
		// Encode sorts by key, so equal queries give equal cache keys.
		u += "?" + q.Encode()
	}
	return u
}

// origin is where get found a body, and so which caches still lack it.
type origin int

const (
	fromNetwork origin = iota
	fromShared
	fromLocal
)

// load fetches path and decodes the body. A body is cached only once it
// decodes, so a malformed reply is requested again on the next try.
func load[T any](ctx context.Context, c *Client, path string, q url.Values, decode func([]byte) (T, error)) (T, error) {
	u := c.url(path, q)
	body, from, err := c.get(ctx, u)
	if err != nil {
		var zero T
		return zero, err
	}
	v, err := decode(body)
	if err != nil {
		c.log.Warn("malformed response", zap.String("url", u), zap.Error(err))
		return v, err
	}
	c.remember(ctx, u, body, from)
	return v, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, origin, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(u); ok {
			return body, fromLocal, nil
		}
	}
	if c.shared != nil {
		body, ok, err := c.shared.Get(ctx, u)
		if err != nil {
			c.log.Warn("shared cache get failed", zap.String("url", u), zap.Error(err))
		} else if ok {
			return body, fromShared, nil
		}
	}

	body, err := c.do(ctx, u)
	if err != nil {
		return nil, fromNetwork, err
	}
	return body, fromNetwork, nil
}

// remember stores a decoded body in the caches that do not have it yet.
func (c *Client) remember(ctx context.Context, u string, body []byte, from origin) {
	if from == fromLocal {
		return
	}
	if c.cache != nil {
		c.cache.Set(u, body, c.cacheTTL)
	}
	if from == fromShared || c.shared == nil {
		return
	}
	if err := c.shared.Set(ctx, u, body, c.sharedTTL); err != nil {
		c.log.Warn("shared cache set failed", zap.String("url", u), zap.Error(err))
	}
}

func (c *Client) do(ctx context.Context, u string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(u)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	req.Header.SetContentType("application/json")

	start := time.Now()
	var deadline time.Time
	if c.timeout > 0 {
		deadline = start.Add(c.timeout)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}

	var err error
	if deadline.IsZero() {
		err = c.http.Do(req, resp)
	} else {
		err = c.http.DoDeadline(req, resp, deadline)
	}
	if err != nil {
		c.log.Warn("request failed", zap.String("url", u), zap.Error(err))
		return nil, fmt.Errorf("%w: %s: %w", ErrTransport, u, err)
	}

	code := resp.StatusCode()
	body := append([]byte(nil), resp.Body()...)
	c.log.Debug("request",
		zap.String("url", u),
		zap.Int("status", code),
		zap.Duration("took", time.Since(start)),
	)

	if code < 200 || code > 299 {
		return nil, &StatusError{Code: code, Body: string(body)}
	}
	return body, nil
}
