// Package browse holds the listing-browser state machine. State snapshots are
// immutable values; every change goes through Reduce.
package browse

import (
	"github.com/carsawa/site/filter"
	"github.com/carsawa/site/listing"
	"github.com/carsawa/site/pagination"
)

type Phase int

const (
	Idle Phase = iota
	Loading
	Success
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "idle"
	}
}

// FailureMessage is shown for every kind of load failure.
const FailureMessage = "Failed to load cars. Please try again later."

// State is one snapshot of a browsing session.
type State struct {
	Phase    Phase
	Criteria filter.Criteria
	Page     int

	// Generation identifies the latest fetch. Results carrying an older
	// generation are ignored.
	Generation uint64

	Items      []listing.Listing
	Total      int
	TotalPages int

	Message string
	Cause   error
}

// Initial is the state of a session that has not fetched anything yet.
func Initial() State {
	return State{Phase: Idle, Page: 1}
}

// Pager returns the pagination view model for the loaded results.
func (s State) Pager(pageSize int) pagination.Pager {
	return pagination.New(s.Page, pageSize, s.Total, s.TotalPages)
}

type Action interface {
	isAction()
}

// FilterChanged is sent when any filter field changes. The page resets to 1.
type FilterChanged struct {
	Criteria filter.Criteria
}

// PageRequested is sent when a pagination control is used.
type PageRequested struct {
	Criteria filter.Criteria
	Page     int
}

// Submitted is sent by the explicit search button.
type Submitted struct {
	Criteria filter.Criteria
}

// Loaded delivers a successful fetch for the given generation.
type Loaded struct {
	Generation uint64
	Result     listing.Page[listing.Listing]
}

// LoadFailed delivers a failed fetch for the given generation.
type LoadFailed struct {
	Generation uint64
	Err        error
}

func (FilterChanged) isAction() {}
func (PageRequested) isAction() {}
func (Submitted) isAction()     {}
func (Loaded) isAction()        {}
func (LoadFailed) isAction()    {}

// Reduce returns the state that follows s after a. It never mutates s.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case FilterChanged:
		return startLoading(s, a.Criteria, 1)

	case Submitted:
		return startLoading(s, a.Criteria, 1)

	case PageRequested:
		page := a.Page
		// A page number only means something for the criteria it was computed with.
		if s.Generation > 0 && !s.Criteria.Equal(a.Criteria) {
			page = 1
		}
		return startLoading(s, a.Criteria, max(page, 1))

	case Loaded:
		if a.Generation != s.Generation || s.Phase != Loading {
			return s
		}
		next := s
		next.Phase = Success
		next.Items = a.Result.Items
		next.Total = a.Result.Total
		next.TotalPages = a.Result.TotalPages
		next.Page = pagination.Clamp(s.Page, next.TotalPages)
		next.Message, next.Cause = "", nil
		return next

	case LoadFailed:
		if a.Generation != s.Generation || s.Phase != Loading {
			return s
		}
		next := s
		next.Phase = Failed
		next.Items = []listing.Listing{}
		next.Total, next.TotalPages = 0, 0
		next.Message = FailureMessage
		next.Cause = a.Err
		return next
	}
	return s
}

func startLoading(s State, c filter.Criteria, page int) State {
	return State{
		Phase:      Loading,
		Criteria:   c,
		Page:       page,
		Generation: s.Generation + 1,
		Items:      s.Items,
		Total:      s.Total,
		TotalPages: s.TotalPages,
	}
}

// Stale reports whether a result for generation gen would be ignored by s.
func (s State) Stale(gen uint64) bool {
	return gen != s.Generation
}
