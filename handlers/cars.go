package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carsawa/site/browse"
	"github.com/carsawa/site/config"
	"github.com/carsawa/site/cookie"
	"github.com/carsawa/site/filter"
	"github.com/carsawa/site/ui"
)

const defaultCarsPageSize = 9

// browseAction turns a request into the action it represents: the search
// button, a pagination control, or a filter change.
func browseAction(c *fiber.Ctx, criteria filter.Criteria) browse.Action {
	if c.Query("submit") != "" {
		return browse.Submitted{Criteria: criteria}
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			page = 1
		}
		return browse.PageRequested{Criteria: criteria, Page: page}
	}
	return browse.FilterChanged{Criteria: criteria}
}

// browseCars runs one fetch through the reducer stored under key. It returns the
// state to render and whether a newer request overtook this one. When the
// requested page turns out to be past the end, the clamped page is fetched
// once more.
func browseCars(c *fiber.Ctx, key string, action browse.Action) (browse.State, bool) {
	size := sizeOr(config.CarsPageSize, defaultCarsPageSize)
	st := sessions.Dispatch(key, action)

	for refetched := false; ; refetched = true {
		gen := st.Generation
		res, err := source.FindCars(c.UserContext(), st.Criteria, st.Page, size)

		var next browse.State
		if err != nil {
			hlog().Warn("find cars failed",
				zap.String("browse", key),
				zap.Uint64("generation", gen),
				zap.Int("page", st.Page),
				zap.Error(err))
			next = sessions.Dispatch(key, browse.LoadFailed{Generation: gen, Err: err})
		} else {
			next = sessions.Dispatch(key, browse.Loaded{Generation: gen, Result: res})
		}

		if next.Stale(gen) {
			return next, true
		}
		if next.Phase == browse.Success && next.Page != st.Page && !refetched {
			st = sessions.Dispatch(key, browse.PageRequested{Criteria: st.Criteria, Page: next.Page})
			continue
		}
		return next, false
	}
}

// query adapts c.Query to the getter filter.FromValues expects.
func query(c *fiber.Ctx) func(string) string {
	return func(key string) string { return c.Query(key) }
}

func carsView(c *fiber.Ctx) string {
	if v := c.Query("view"); v != "" {
		view := ui.ParseView(v)
		cookie.SetLastView(c, view)
		return view
	}
	return ui.ParseView(cookie.GetLastView(c))
}

// renderCarsPage serves a full car browser. Every render gets its own browse
// id, so each tab keeps its own generation counter and criteria.
func renderCarsPage(c *fiber.Ctx, path, title string, criteria filter.Criteria) error {
	key, browseID := browseKey(sessionID(c), uuid.NewString())
	action := browseAction(c, criteria)
	if _, ok := action.(browse.PageRequested); ok {
		// A full page load is a fresh start: adopt its criteria before
		// honouring its page number.
		sessions.Dispatch(key, browse.FilterChanged{Criteria: criteria})
	}
	st, _ := browseCars(c, key, action)
	return render(c, ui.CarsPage(ui.CarsView{
		Path:     path,
		Title:    title,
		State:    st,
		PageSize: sizeOr(config.CarsPageSize, defaultCarsPageSize),
		View:     carsView(c),
		BrowseID: browseID,
	}))
}

func HandleCars(c *fiber.Ctx) error {
	return renderCarsPage(c, "/cars", "Cars for sale", filter.FromValues(query(c)))
}

// HandleUsedCars is the car browser with the condition preset to used.
func HandleUsedCars(c *fiber.Ctx) error {
	criteria := filter.FromValues(func(key string) string {
		v := c.Query(key)
		if key == filter.ParamCondition && v == "" {
			return "Used"
		}
		return v
	})
	return renderCarsPage(c, "/used-cars", "Used cars", criteria)
}

// HandleCarResults serves the #results fragment for htmx. A response that has
// been overtaken by a newer request tells htmx not to swap.
func HandleCarResults(c *fiber.Ctx) error {
	key, browseID := browseKey(sessionID(c), c.Query(ui.BrowseParam))
	st, stale := browseCars(c, key, browseAction(c, filter.FromValues(query(c))))
	if stale {
		c.Set("HX-Reswap", "none")
		return render(c, ui.EmptyResponse())
	}
	if st.Phase == browse.Success {
		c.Set("HX-Push-Url", ui.BrowseURL("/cars", st.Criteria, st.Page))
	}
	return render(c, ui.CarResults(ui.CarsView{
		Path:     "/cars",
		State:    st,
		PageSize: sizeOr(config.CarsPageSize, defaultCarsPageSize),
		View:     carsView(c),
		BrowseID: browseID,
	}))
}

func HandleCar(c *fiber.Ctx) error {
	id := c.Params("id")
	ctx := c.UserContext()

	car, err := source.GetCar(ctx, id)
	if err != nil {
		hlog().Warn("get car failed", zap.String("id", id), zap.Error(err))
		return render(c, ui.CarLoadError(id))
	}

	dealer := car.Dealer
	if dealer == nil && car.DealerID != "" {
		d, err := source.GetDealer(ctx, car.DealerID)
		if err != nil {
			hlog().Warn("get dealer for car failed", zap.String("car", id), zap.String("dealer", car.DealerID), zap.Error(err))
		} else {
			dealer = &d
		}
	}
	return render(c, ui.CarPage(car, dealer))
}
