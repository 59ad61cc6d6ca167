package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carsawa/site/cache"
	"github.com/carsawa/site/filter"
	"github.com/carsawa/site/listing"
	"github.com/carsawa/site/redis"
)

// recorder serves fixed responses and remembers the last request URL.
type recorder struct {
	status int
	body   string
	delay  time.Duration
	hits   atomic.Int32
	last   atomic.Value
}

func (r *recorder) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hits.Add(1)
	r.last.Store(req.URL.String())
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.status)
	_, _ = w.Write([]byte(r.body))
}

func (r *recorder) lastURL(t *testing.T) *url.URL {
	t.Helper()
	u, err := url.Parse(r.last.Load().(string))
	require.NoError(t, err)
	return u
}

func serve(t *testing.T, status int, body string) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{status: status, body: body}
	srv := httptest.NewServer(rec)
	t.Cleanup(srv.Close)
	return New(srv.URL, 2*time.Second), rec
}

const carsEnvelope = `{
	"cars": [
		{"id": "1", "make": "Toyota", "model": "Land Cruiser", "year": 2024, "price": 15000000, "status": "available", "dealer": {"id": "d1", "name": "Premium Motors"}},
		{"id": "2", "make": "BMW", "model": "X5", "year": 2022, "price": 7000000, "status": "SOLD"}
	],
	"page": 2,
	"pages": 3,
	"total": 20
}`

func TestQuerySkipsEmptyValues(t *testing.T) {
	year := 2020
	var none *int
	q := Query(map[string]any{
		"query":    "",
		"make":     "Toyota",
		"minYear":  &year,
		"maxYear":  none,
		"maxPrice": int64(999_999),
		"nothing":  nil,
		"ratio":    1.5,
		"status":   listing.StatusAvailable,
	})

	assert.Equal(t, "make=Toyota&maxPrice=999999&minYear=2020&ratio=1.5&status=available", q.Encode())
}

func TestSearchCars(t *testing.T) {
	client, rec := serve(t, http.StatusOK, carsEnvelope)

	page, err := client.SearchCars(context.Background(), map[string]any{"make": "Toyota", "query": ""}, 2, 9)
	require.NoError(t, err)

	u := rec.lastURL(t)
	assert.Equal(t, "/api/cars", u.Path)
	assert.Equal(t, "Toyota", u.Query().Get("make"))
	assert.Equal(t, "2", u.Query().Get("page"))
	assert.Equal(t, "9", u.Query().Get("pageSize"))
	assert.False(t, u.Query().Has("query"))

	require.Len(t, page.Items, 2)
	assert.Equal(t, 20, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "d1", page.Items[0].DealerID)
	assert.Equal(t, listing.StatusSold, page.Items[1].Status)
}

func TestFindCarsSendsCriteria(t *testing.T) {
	client, rec := serve(t, http.StatusOK, `{"cars": []}`)

	var c filter.Criteria
	require.NoError(t, c.SetBudget("1M-2M"))
	c.Make = "BMW"
	_, err := client.FindCars(context.Background(), c, 1, 9)
	require.NoError(t, err)

	q := rec.lastURL(t).Query()
	assert.Equal(t, "BMW", q.Get("make"))
	assert.Equal(t, "1000000", q.Get("minPrice"))
	assert.Equal(t, "1999999", q.Get("maxPrice"))
}

func TestEnvelopeVariants(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		items      int
		total      int
		totalPages int
	}{
		{"items key", `{"items": [{"id": "1"}], "total": 1, "totalPages": 1}`, 1, 1, 1},
		{"data key", `{"data": [{"id": "1"}, {"id": "2"}], "total": 12, "page": 1}`, 2, 12, 2},
		{"empty object", `{}`, 0, 0, 0},
		{"null items", `{"cars": null}`, 0, 0, 0},
		{"bare array", `[{"id": "1"}, {"id": "2"}, {"id": "3"}]`, 3, 3, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := serve(t, http.StatusOK, tt.body)

			page, err := client.SearchCars(context.Background(), nil, 1, 9)
			require.NoError(t, err)
			assert.NotNil(t, page.Items)
			assert.Len(t, page.Items, tt.items)
			assert.Equal(t, tt.total, page.Total)
			assert.Equal(t, tt.totalPages, page.TotalPages)
			assert.Equal(t, 1, page.Page)
		})
	}
}

func TestServerErrorSurfacesMessage(t *testing.T) {
	client, _ := serve(t, http.StatusInternalServerError, `{"error":"database down"}`)

	page, err := client.SearchCars(context.Background(), nil, 1, 9)

	require.Error(t, err)
	assert.NotEmpty(t, err.Error())
	assert.Contains(t, err.Error(), "500")
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Contains(t, se.Body, "database down")
	assert.True(t, IsStatus(err, 500))
}

func TestStatusErrorWithoutBody(t *testing.T) {
	err := &StatusError{Code: http.StatusBadGateway}
	assert.Equal(t, "api error: 502 Bad Gateway", err.Error())
}

func TestMalformedJSON(t *testing.T) {
	client, _ := serve(t, http.StatusOK, `{"cars": [`)

	_, err := client.SearchCars(context.Background(), nil, 1, 9)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestInvalidRecordIsDecodeError(t *testing.T) {
	client, _ := serve(t, http.StatusOK, `{"cars": [{"id": "1", "price": -5}]}`)

	page, err := client.SearchCars(context.Background(), nil, 1, 9)
	assert.ErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, listing.ErrNegativePrice)
	assert.Empty(t, page.Items)
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := New(base, time.Second).SearchCars(context.Background(), nil, 1, 9)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestTimeout(t *testing.T) {
	rec := &recorder{status: http.StatusOK, body: `{}`, delay: 300 * time.Millisecond}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	_, err := New(srv.URL, 50*time.Millisecond).SearchCars(context.Background(), nil, 1, 9)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestCancelledContext(t *testing.T) {
	client, rec := serve(t, http.StatusOK, `{}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SearchCars(ctx, nil, 1, 9)
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, rec.hits.Load())
}

func TestGetCar(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare", `{"id": "abc", "make": "BMW", "model": "X5", "dealer": {"id": "d3", "name": "Car City"}}`},
		{"wrapped", `{"car": {"id": "abc", "make": "BMW", "model": "X5", "dealer": {"id": "d3", "name": "Car City"}}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := serve(t, http.StatusOK, tt.body)

			car, err := client.GetCar(context.Background(), "abc")
			require.NoError(t, err)
			assert.Equal(t, "/api/cars/abc", rec.lastURL(t).Path)
			assert.Equal(t, "BMW X5", car.Name())
			assert.Equal(t, "d3", car.DealerID)
		})
	}
}

func TestGetDealer(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare", `{"id": "d1", "name": "Premium Motors", "verified": true}`},
		{"wrapped", `{"dealer": {"id": "d1", "name": "Premium Motors", "verified": true}}`},
		{"data", `{"data": {"id": "d1", "name": "Premium Motors", "verified": true}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := serve(t, http.StatusOK, tt.body)

			d, err := client.GetDealer(context.Background(), "d1")
			require.NoError(t, err)
			assert.Equal(t, "/api/dealers/d1", rec.lastURL(t).Path)
			assert.Equal(t, "Premium Motors", d.Name)
			assert.True(t, d.Verified)
		})
	}
}

func TestGetDealerWithoutID(t *testing.T) {
	client, _ := serve(t, http.StatusOK, `{"name": "Nameless"}`)

	_, err := client.GetDealer(context.Background(), "x")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestListDealersBareArrayIsPagedLocally(t *testing.T) {
	body := `[{"id":"1","name":"a"},{"id":"2","name":"b"},{"id":"3","name":"c"},
		{"id":"4","name":"d"},{"id":"5","name":"e"},{"id":"6","name":"f"},{"id":"7","name":"g"}]`
	client, _ := serve(t, http.StatusOK, body)

	page, err := client.ListDealers(context.Background(), 2, 6)
	require.NoError(t, err)

	assert.Equal(t, 7, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "g", page.Items[0].Name)
}

func TestListDealersEnvelope(t *testing.T) {
	client, _ := serve(t, http.StatusOK, `{"dealers": [{"id":"1","name":"a"}], "total": 13, "totalPages": 3, "page": 3}`)

	page, err := client.ListDealers(context.Background(), 3, 6)
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.Page)
}

func TestListDealerCars(t *testing.T) {
	client, rec := serve(t, http.StatusOK, carsEnvelope)

	page, err := client.ListDealerCars(context.Background(), "d-1", 1, 9)
	require.NoError(t, err)

	assert.Equal(t, "/api/dealers/d-1/cars", rec.lastURL(t).Path)
	assert.Len(t, page.Items, 2)
}

func TestResponseCache(t *testing.T) {
	rec := &recorder{status: http.StatusOK, body: carsEnvelope}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	c, err := cache.New("api", 1<<20, func(b []byte) int64 { return int64(len(b)) })
	require.NoError(t, err)
	defer c.Close()
	client := New(srv.URL, time.Second, WithCache(c, time.Minute))

	_, err = client.SearchCars(context.Background(), map[string]any{"make": "BMW"}, 1, 9)
	require.NoError(t, err)
	c.Wait()
	_, err = client.SearchCars(context.Background(), map[string]any{"make": "BMW"}, 1, 9)
	require.NoError(t, err)
	assert.Equal(t, int32(1), rec.hits.Load())

	_, err = client.SearchCars(context.Background(), map[string]any{"make": "BMW"}, 2, 9)
	require.NoError(t, err)
	assert.Equal(t, int32(2), rec.hits.Load())

	require.NotNil(t, client.CacheStats())
	assert.Equal(t, uint64(1), client.CacheStats().Hits)
}

func TestErrorsAreNotCached(t *testing.T) {
	rec := &recorder{status: http.StatusServiceUnavailable, body: "busy"}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	c, err := cache.New("api", 1<<20, func(b []byte) int64 { return int64(len(b)) })
	require.NoError(t, err)
	defer c.Close()
	client := New(srv.URL, time.Second, WithCache(c, time.Minute))

	for i := 0; i < 2; i++ {
		_, err = client.SearchCars(context.Background(), nil, 1, 9)
		require.Error(t, err)
		c.Wait()
	}
	assert.Equal(t, int32(2), rec.hits.Load())
}

// flakyServer answers the first request with an HTML error page and every
// later one with a valid listings envelope.
func flakyServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Bad gateway</body></html>"))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(carsEnvelope))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestMalformedResponsesAreNotCached(t *testing.T) {
	srv, hits := flakyServer(t)

	c, err := cache.New("api", 1<<20, func(b []byte) int64 { return int64(len(b)) })
	require.NoError(t, err)
	defer c.Close()
	client := New(srv.URL, time.Second, WithCache(c, time.Minute))

	_, err = client.SearchCars(context.Background(), nil, 1, 9)
	require.ErrorIs(t, err, ErrDecode)
	c.Wait()

	page, err := client.SearchCars(context.Background(), nil, 1, 9)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, int32(2), hits.Load())

	c.Wait()
	_, err = client.SearchCars(context.Background(), nil, 1, 9)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestMalformedResponsesAreNotShared(t *testing.T) {
	srv, hits := flakyServer(t)
	mr := miniredis.RunT(t)
	shared := redis.New(mr.Addr(), "")
	defer shared.Close()

	client := New(srv.URL, time.Second, WithSharedCache(shared, time.Minute))

	_, err := client.GetCar(context.Background(), "1")
	require.ErrorIs(t, err, ErrDecode)
	assert.Empty(t, mr.Keys())

	_, err = client.SearchCars(context.Background(), nil, 1, 9)
	require.NoError(t, err)
	assert.Len(t, mr.Keys(), 1)
	assert.Equal(t, int32(2), hits.Load())
}

func TestZeroTTLDisablesCache(t *testing.T) {
	c, err := cache.New("api", 1<<20, func(b []byte) int64 { return int64(len(b)) })
	require.NoError(t, err)
	defer c.Close()

	client := New("http://example.invalid", time.Second, WithCache(c, 0))
	assert.Nil(t, client.CacheStats())
}

func TestPing(t *testing.T) {
	client, rec := serve(t, http.StatusOK, `{"cars": []}`)

	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "1", rec.lastURL(t).Query().Get("pageSize"))
}

func TestSharedCacheServesOtherInstances(t *testing.T) {
	rec := &recorder{status: http.StatusOK, body: carsEnvelope}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	shared := redis.New(miniredis.RunT(t).Addr(), "")
	defer shared.Close()

	first := New(srv.URL, time.Second, WithSharedCache(shared, time.Minute))
	second := New(srv.URL, time.Second, WithSharedCache(shared, time.Minute))

	a, err := first.SearchCars(context.Background(), map[string]any{"make": "BMW"}, 1, 9)
	require.NoError(t, err)
	b, err := second.SearchCars(context.Background(), map[string]any{"make": "BMW"}, 1, 9)
	require.NoError(t, err)

	assert.Equal(t, int32(1), rec.hits.Load())
	assert.Equal(t, a, b)
}

func TestSharedCacheOutageFallsThrough(t *testing.T) {
	rec := &recorder{status: http.StatusOK, body: carsEnvelope}
	srv := httptest.NewServer(rec)
	defer srv.Close()

	mr := miniredis.RunT(t)
	shared := redis.New(mr.Addr(), "")
	defer shared.Close()
	mr.Close()

	client := New(srv.URL, time.Second, WithSharedCache(shared, time.Minute))
	_, err := client.SearchCars(context.Background(), nil, 1, 9)
	require.NoError(t, err)
	assert.Equal(t, int32(1), rec.hits.Load())
}
