package pagination

// MaxButtons is the number of page buttons shown at once.
const MaxButtons = 5

// TotalPages returns ceil(total / pageSize). A non-positive page size yields 0.
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Clamp keeps page within [1, totalPages]. A totalPages below 1 is treated as 1.
func Clamp(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Window returns the page numbers to render as buttons. All pages are shown
// when they fit. Near either end the first or last MaxButtons pages are shown;
// otherwise the window is centred on current.
func Window(current, totalPages int) []int {
	if totalPages < 1 {
		return nil
	}
	current = Clamp(current, totalPages)

	n := min(MaxButtons, totalPages)
	start := 1
	switch {
	case totalPages <= MaxButtons:
	case current <= 3:
	case current >= totalPages-2:
		start = totalPages - MaxButtons + 1
	default:
		start = current - 2
	}

	pages := make([]int, n)
	for i := range pages {
		pages[i] = start + i
	}
	return pages
}

// Bounds returns the [from, to) slice offsets of page within total items.
func Bounds(page, pageSize, total int) (from, to int) {
	if pageSize <= 0 || total <= 0 {
		return 0, 0
	}
	page = Clamp(page, TotalPages(total, pageSize))
	from = (page - 1) * pageSize
	to = min(from+pageSize, total)
	return from, to
}

// Pager is the view model behind pagination controls.
type Pager struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// New builds a Pager, clamping page. When totalPages is 0 it is derived from total.
func New(page, pageSize, total, totalPages int) Pager {
	if totalPages <= 0 {
		totalPages = TotalPages(total, pageSize)
	}
	return Pager{
		Page:       Clamp(page, totalPages),
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

func (p Pager) HasPrev() bool { return p.Page > 1 }

func (p Pager) HasNext() bool { return p.Page < p.TotalPages }

func (p Pager) Prev() int { return Clamp(p.Page-1, p.TotalPages) }

func (p Pager) Next() int { return Clamp(p.Page+1, p.TotalPages) }

// Buttons is Window for the current page.
func (p Pager) Buttons() []int { return Window(p.Page, p.TotalPages) }

// Visible reports whether the controls are worth rendering at all.
func (p Pager) Visible() bool { return p.TotalPages > 1 }

// ShowingFrom is the 1-based index of the first item on the page, 0 when empty.
func (p Pager) ShowingFrom() int {
	if p.Total == 0 || p.PageSize <= 0 {
		return 0
	}
	return (p.Page-1)*p.PageSize + 1
}

// ShowingTo is the 1-based index of the last item on the page.
func (p Pager) ShowingTo() int {
	if p.Total == 0 || p.PageSize <= 0 {
		return 0
	}
	return min(p.Page*p.PageSize, p.Total)
}
