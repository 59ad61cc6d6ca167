package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carsawa/site/browse"
	"github.com/carsawa/site/config"
	"github.com/carsawa/site/filter"
	"github.com/carsawa/site/listing"
	"github.com/carsawa/site/pagination"
)

const testSession = "5b0e6f8e-3c1a-4d55-9b1e-2f7d9a4c8e10"

type fakeSource struct {
	mu    sync.Mutex
	pages []int

	cars    []listing.Listing
	dealers []listing.Dealer

	findErr       error
	carErr        error
	dealerErr     error
	dealerCarsErr error
	pingErr       error

	onFind func()
}

func (f *fakeSource) paginate(all []listing.Listing, page, size int) listing.Page[listing.Listing] {
	total := len(all)
	items := []listing.Listing{}
	if from := (page - 1) * size; from < total {
		items = all[from:min(from+size, total)]
	}
	return listing.Page[listing.Listing]{Items: items, Total: total, Page: page, TotalPages: pagination.TotalPages(total, size)}
}

func (f *fakeSource) FindCars(_ context.Context, c filter.Criteria, page, size int) (listing.Page[listing.Listing], error) {
	f.mu.Lock()
	f.pages = append(f.pages, page)
	hook := f.onFind
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if f.findErr != nil {
		return listing.Page[listing.Listing]{}, f.findErr
	}
	return f.paginate(filter.Apply(f.cars, c), page, size), nil
}

func (f *fakeSource) GetCar(_ context.Context, id string) (listing.Listing, error) {
	if f.carErr != nil {
		return listing.Listing{}, f.carErr
	}
	for _, c := range f.cars {
		if c.ID == id {
			return c, nil
		}
	}
	return listing.Listing{}, errors.New("not found")
}

func (f *fakeSource) ListDealers(_ context.Context, page, size int) (listing.Page[listing.Dealer], error) {
	if f.dealerErr != nil {
		return listing.Page[listing.Dealer]{}, f.dealerErr
	}
	from, to := pagination.Bounds(page, size, len(f.dealers))
	return listing.Page[listing.Dealer]{
		Items:      f.dealers[from:to],
		Total:      len(f.dealers),
		Page:       page,
		TotalPages: pagination.TotalPages(len(f.dealers), size),
	}, nil
}

func (f *fakeSource) GetDealer(_ context.Context, id string) (listing.Dealer, error) {
	if f.dealerErr != nil {
		return listing.Dealer{}, f.dealerErr
	}
	for _, d := range f.dealers {
		if d.ID == id {
			return d, nil
		}
	}
	return listing.Dealer{}, errors.New("not found")
}

func (f *fakeSource) ListDealerCars(_ context.Context, id string, page, size int) (listing.Page[listing.Listing], error) {
	if f.dealerCarsErr != nil {
		return listing.Page[listing.Listing]{}, f.dealerCarsErr
	}
	var own []listing.Listing
	for _, c := range f.cars {
		if c.DealerID == id {
			own = append(own, c)
		}
	}
	return f.paginate(own, page, size), nil
}

func (f *fakeSource) Ping(context.Context) error { return f.pingErr }

func (f *fakeSource) requestedPages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.pages...)
}

func newFakeSource() *fakeSource {
	src := &fakeSource{
		dealers: []listing.Dealer{
			{ID: "d1", Name: "Premium Motors", Location: "Nairobi", WhatsAppNumber: "+254 700 000 001", Verified: true},
		},
	}
	for i := 0; i < 25; i++ {
		carMake, condition := "Mazda", "New"
		if i%2 == 0 {
			carMake = "Toyota"
		}
		if i%3 == 0 {
			condition = "Used"
		}
		src.cars = append(src.cars, listing.Listing{
			ID:        fmt.Sprint(i + 1),
			Make:      carMake,
			Model:     "Model" + fmt.Sprint(i+1),
			Year:      2015 + i%8,
			Price:     int64(500000 + i*100000),
			Condition: condition,
			Status:    listing.StatusAvailable,
			DealerID:  "d1",
		})
	}
	return src
}

func newTestApp(t *testing.T, src *fakeSource) *fiber.App {
	t.Helper()
	config.CarsPageSize = 9
	config.DealersPageSize = 6
	config.DealerCarsPageSize = 9
	config.FeaturedCarsCount = 6
	config.SessionTTL = time.Minute
	config.SiteName = "CarSawa"
	config.SiteURL = "https://example.test"

	Init(src, browse.NewStore(time.Minute))

	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/", HandleHome)
	app.Get("/cars", HandleCars)
	app.Get("/cars/results", HandleCarResults)
	app.Get("/cars/:id", HandleCar)
	app.Get("/used-cars", HandleUsedCars)
	app.Get("/dealers", HandleDealers)
	app.Get("/dealers/:id", HandleDealer)
	app.Get("/health", HandleHealth)
	app.Get("/sitemap.xml", HandleSitemap)
	return app
}

func get(t *testing.T, app *fiber.App, target string, htmx bool) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Cookie", "browse_session="+testSession)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHandleCarResultsFirstPage(t *testing.T) {
	app := newTestApp(t, newFakeSource())

	resp, body := get(t, app, "/cars/results", true)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `id="results"`)
	assert.Contains(t, body, "Showing 1-9 of 25 cars")
	assert.Equal(t, "/cars", resp.Header.Get("HX-Push-Url"))
}

func TestHandleCarResultsClampsPastEnd(t *testing.T) {
	src := newFakeSource()
	app := newTestApp(t, src)

	resp, body := get(t, app, "/cars/results?page=9", true)

	assert.Equal(t, []int{9, 3}, src.requestedPages())
	assert.Contains(t, body, "Showing 19-25 of 25 cars")
	assert.Equal(t, "/cars?page=3", resp.Header.Get("HX-Push-Url"))
}

func TestHandleCarResultsFailure(t *testing.T) {
	src := newFakeSource()
	src.findErr = errors.New("api error: 500 Internal Server Error")
	app := newTestApp(t, src)

	resp, body := get(t, app, "/cars/results?make=Toyota", true)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, browse.FailureMessage)
	assert.Contains(t, body, "Try Again")
	assert.NotContains(t, body, "Internal Server Error")
	assert.Empty(t, resp.Header.Get("HX-Push-Url"))
}

func TestHandleCarResultsStaleResponseIsNotSwapped(t *testing.T) {
	src := newFakeSource()
	app := newTestApp(t, src)
	src.onFind = func() {
		// A newer request from the same session starts while this one is in flight.
		sessions.Dispatch(testSession, browse.FilterChanged{Criteria: filter.Criteria{Make: "Mazda"}})
	}

	resp, body := get(t, app, "/cars/results?make=Toyota", true)

	assert.Equal(t, "none", resp.Header.Get("HX-Reswap"))
	assert.Empty(t, body)
	assert.Equal(t, "Mazda", sessions.Get(testSession).Criteria.Make)
}

func TestHandleCarResultsTabsInOneSessionAreIndependent(t *testing.T) {
	src := newFakeSource()
	app := newTestApp(t, src)
	const tabA = "0d7c7a52-9a0e-4c57-8d0f-6f1e2b3c4d5e"
	const tabB = "8e2f4b61-1c3d-4e5f-a6b7-c8d9e0f1a2b3"
	keyB, _ := browseKey(testSession, tabB)

	var once sync.Once
	src.onFind = func() {
		// Tab B changes its filters while tab A's fetch is in flight.
		once.Do(func() {
			sessions.Dispatch(keyB, browse.FilterChanged{Criteria: filter.Criteria{Make: "Mazda"}})
		})
	}

	resp, body := get(t, app, "/cars/results?make=Toyota&browse="+tabA, true)
	assert.Empty(t, resp.Header.Get("HX-Reswap"))
	assert.Contains(t, body, "Showing 1-9 of 13 cars")
	assert.Contains(t, body, "browse="+tabA)

	_, body = get(t, app, "/cars/results?make=Mazda&browse="+tabB, true)
	assert.Contains(t, body, "Showing 1-9 of 12 cars")

	// Paging in tab A keeps tab A's criteria and page.
	_, body = get(t, app, "/cars/results?make=Toyota&page=2&browse="+tabA, true)
	assert.Contains(t, body, "Showing 10-13 of 13 cars")
	assert.Equal(t, "Toyota", sessions.Get(testSession+":"+tabA).Criteria.Make)
	assert.Equal(t, "Mazda", sessions.Get(keyB).Criteria.Make)
}

func TestHandleCarsIssuesBrowseID(t *testing.T) {
	app := newTestApp(t, newFakeSource())

	_, first := get(t, app, "/cars", false)
	_, second := get(t, app, "/cars", false)

	assert.Contains(t, first, `name="browse"`)
	assert.Regexp(t, `browse=[0-9a-f-]{36}`, first)
	assert.NotEqual(t, browseIDIn(t, first), browseIDIn(t, second))
}

func browseIDIn(t *testing.T, body string) string {
	t.Helper()
	m := regexp.MustCompile(`name="browse" value="([0-9a-f-]{36})"`).FindStringSubmatch(body)
	require.Len(t, m, 2)
	return m[1]
}

func TestHandleUsedCarsFormStaysOnUsedCars(t *testing.T) {
	app := newTestApp(t, newFakeSource())

	_, body := get(t, app, "/used-cars", false)

	assert.Contains(t, body, `action="/used-cars"`)
	assert.NotContains(t, body, `action="/cars"`)
}

func TestHandleCarResultsFilterChangeResetsPage(t *testing.T) {
	src := newFakeSource()
	app := newTestApp(t, src)

	_, body := get(t, app, "/cars/results?page=2", true)
	assert.Contains(t, body, "Showing 10-18 of 25 cars")

	_, body = get(t, app, "/cars/results?make=Toyota", true)
	pages := src.requestedPages()
	assert.Equal(t, 1, pages[len(pages)-1])
	assert.Contains(t, body, "Showing 1-9 of 13 cars")
}

func TestHandleCarResultsPageWithChangedCriteriaResetsPage(t *testing.T) {
	src := newFakeSource()
	app := newTestApp(t, src)

	get(t, app, "/cars/results?page=2", true)
	_, body := get(t, app, "/cars/results?make=Toyota&page=2", true)

	pages := src.requestedPages()
	assert.Equal(t, 1, pages[len(pages)-1])
	assert.Contains(t, body, "Showing 1-9 of 13 cars")
}

func TestHandleCarResultsSubmitResetsPage(t *testing.T) {
	src := newFakeSource()
	app := newTestApp(t, src)

	get(t, app, "/cars/results?page=2", true)
	_, body := get(t, app, "/cars/results?page=2&submit=1", true)

	pages := src.requestedPages()
	assert.Equal(t, 1, pages[len(pages)-1])
	assert.Contains(t, body, "Showing 1-9 of 25 cars")
}

func TestHandleCarResultsIgnoresMalformedFilters(t *testing.T) {
	app := newTestApp(t, newFakeSource())

	_, body := get(t, app, "/cars/results?min_year=abc&budget=lots", true)

	assert.Contains(t, body, "Showing 1-9 of 25 cars")
}

func TestHandleCarsFullPageHonoursPage(t *testing.T) {
	src := newFakeSource()
	app := newTestApp(t, src)

	get(t, app, "/cars/results?make=Mazda", true)
	resp, body := get(t, app, "/cars?make=Toyota&page=2", false)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<html")
	assert.Contains(t, body, "Showing 10-13 of 13 cars")
}

func TestHandleUsedCars(t *testing.T) {
	app := newTestApp(t, newFakeSource())

	_, body := get(t, app, "/used-cars", false)

	assert.Contains(t, body, "Used cars")
	assert.Contains(t, body, "Showing 1-9 of 9 cars")
}

func TestHandleCar(t *testing.T) {
	src := newFakeSource()
	app := newTestApp(t, src)

	_, body := get(t, app, "/cars/1", false)
	assert.Contains(t, body, "2015 Toyota Model1")
	assert.Contains(t, body, "Premium Motors")
	assert.Contains(t, body, "https://wa.me/254700000001")

	src.carErr = errors.New("boom")
	resp, body := get(t, app, "/cars/1", false)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Failed to load this car")
}

func TestHandleCarWithoutDealer(t *testing.T) {
	src := newFakeSource()
	src.dealerErr = errors.New("boom")
	app := newTestApp(t, src)

	_, body := get(t, app, "/cars/2", false)

	assert.Contains(t, body, "Mazda Model2")
	assert.NotContains(t, body, "wa.me")
}

func TestHandleDealer(t *testing.T) {
	src := newFakeSource()
	app := newTestApp(t, src)

	_, body := get(t, app, "/dealers/d1?page=3", false)
	assert.Contains(t, body, "Premium Motors")
	assert.Contains(t, body, "Showing 19-25 of 25 cars")

	src.dealerCarsErr = errors.New("boom")
	_, body = get(t, app, "/dealers/d1", false)
	assert.Contains(t, body, "Premium Motors")
	assert.Contains(t, body, "Failed to load cars")

	src.dealerErr = errors.New("boom")
	_, body = get(t, app, "/dealers/d1", false)
	assert.Contains(t, body, "Failed to load this dealer")
}

func TestHandleDealers(t *testing.T) {
	src := newFakeSource()
	app := newTestApp(t, src)

	_, body := get(t, app, "/dealers", false)
	assert.Contains(t, body, "Premium Motors")

	src.dealerErr = errors.New("boom")
	_, body = get(t, app, "/dealers", false)
	assert.Contains(t, body, "Failed to load dealers")
}

func TestHandleHome(t *testing.T) {
	src := newFakeSource()
	app := newTestApp(t, src)

	_, body := get(t, app, "/", false)
	assert.Contains(t, body, "Featured cars")
	assert.Contains(t, body, `href="/cars/6"`)
	assert.NotContains(t, body, `href="/cars/7"`)
}

func TestHandleHealth(t *testing.T) {
	src := newFakeSource()
	app := newTestApp(t, src)

	resp, body := get(t, app, "/health", false)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"ok"`)

	src.pingErr = errors.New("down")
	resp, body = get(t, app, "/health", false)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, body, `"source":"down"`)
}

func TestHandleSitemap(t *testing.T) {
	app := newTestApp(t, newFakeSource())

	_, body := get(t, app, "/sitemap.xml", false)

	assert.Contains(t, body, "<loc>https://example.test/cars/25</loc>")
	assert.Contains(t, body, "<loc>https://example.test/dealers/d1</loc>")
}

func TestCustomErrorHandler(t *testing.T) {
	app := newTestApp(t, newFakeSource())
	app.Get("/missing", func(c *fiber.Ctx) error { return fiber.ErrNotFound })
	app.Get("/broken", func(c *fiber.Ctx) error { return errors.New("database exploded") })

	resp, body := get(t, app, "/missing", false)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Error 404")

	resp, body = get(t, app, "/broken", false)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, body, "database exploded")
}
