package listview

import "time"

// Accessors wires an entity's fields into the generic predicates. Only
// ID and SearchFields are mandatory; a dimension with a nil accessor is
// simply never filtered on.
type Accessors[T any] struct {
	ID           func(T) string
	Status       func(T) string
	PlanName     func(T) string
	CreatedAt    func(T) time.Time
	SearchFields func(T) []string
}

// ViewState is the immutable render-ready snapshot a page consumes.
type ViewState[T any] struct {
	Rows              []T      `json:"rows"`
	Page              int      `json:"page"`
	TotalPages        int      `json:"totalPages"`
	TotalCount        int      `json:"totalCount"`
	SelectedIDs       []string `json:"selectedIds"`
	AllOnPageSelected bool     `json:"allOnPageSelected"`
	HasSelection      bool     `json:"hasSelection"`
}

// Controller owns one page's ViewQuery and Selection and turns raw
// input events into recomputed view state. Every transition is a single
// synchronous recompute; there are no intermediate states and nothing
// here blocks or performs I/O.
type Controller[T any] struct {
	records  []T
	acc      Accessors[T]
	mode     Predicate[T]
	pageSize int
	now      func() time.Time

	query ViewQuery
	sel   *Selection
}

// Option configures a Controller at construction time.
type Option[T any] func(*Controller[T])

// WithMode bakes a page-level implicit filter into the view. It is
// ANDed before every user-adjustable filter and the user-facing "All
// Statuses" option cannot remove it.
func WithMode[T any](pred Predicate[T]) Option[T] {
	return func(c *Controller[T]) { c.mode = pred }
}

func WithPageSize[T any](size int) Option[T] {
	return func(c *Controller[T]) { c.pageSize = size }
}

func WithSelectionPolicy[T any](policy SelectionPolicy) Option[T] {
	return func(c *Controller[T]) { c.sel = NewSelection(policy) }
}

// WithClock overrides the time source for the date-range cutoff.
func WithClock[T any](now func() time.Time) Option[T] {
	return func(c *Controller[T]) { c.now = now }
}

// NewController builds a view over a read-only record collection. The
// controller never mutates records.
func NewController[T any](records []T, acc Accessors[T], opts ...Option[T]) *Controller[T] {
	c := &Controller[T]{
		records:  records,
		acc:      acc,
		pageSize: DefaultPageSize,
		now:      time.Now,
		query:    DefaultQuery(),
		sel:      NewSelection(SelectPerPage),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Query returns a copy of the current view parameters.
func (c *Controller[T]) Query() ViewQuery {
	return c.query
}

// SetSearch replaces the free-text query and resets to page 1.
// Re-applying the same value is idempotent apart from that reset.
func (c *Controller[T]) SetSearch(q string) {
	c.query.Search = q
	c.query.Page = 1
}

// SetStatus replaces the status dimension and resets to page 1.
func (c *Controller[T]) SetStatus(f ChoiceFilter) {
	c.query.Status = f
	c.query.Page = 1
}

// SetCategory replaces the plan-category dimension and resets to page 1.
func (c *Controller[T]) SetCategory(f PlanCategory) {
	c.query.Category = f
	c.query.Page = 1
}

// SetDateRange replaces the created-within dimension and resets to page 1.
func (c *Controller[T]) SetDateRange(r DateRange) {
	c.query.Range = r
	c.query.Page = 1
}

// SetPage navigates without touching any filter.
func (c *Controller[T]) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.query.Page = page
}

// ToggleRow toggles a single row checkbox.
func (c *Controller[T]) ToggleRow(id string, checked bool) {
	c.sel.ToggleOne(id, checked)
}

// ToggleAllOnPage applies the header checkbox to the currently visible
// rows.
func (c *Controller[T]) ToggleAllOnPage(checked bool) {
	c.sel.ToggleAllOnPage(c.pageIDs(), checked)
}

// ClearSelection empties the selection (after a bulk action).
func (c *Controller[T]) ClearSelection() {
	c.sel.Clear()
}

// SelectedIDs returns the ids a bulk action would apply to.
func (c *Controller[T]) SelectedIDs() []string {
	return c.sel.IDs()
}

func (c *Controller[T]) predicate() Predicate[T] {
	preds := []Predicate[T]{c.mode}
	if c.acc.Status != nil {
		preds = append(preds, ChoicePredicate(c.query.Status, c.acc.Status))
	}
	if c.acc.PlanName != nil {
		preds = append(preds, CategoryPredicate(c.query.Category, c.acc.PlanName))
	}
	if c.acc.CreatedAt != nil {
		preds = append(preds, CreatedWithin(c.query.Range, c.now(), c.acc.CreatedAt))
	}
	if c.acc.SearchFields != nil {
		preds = append(preds, SearchPredicate(c.query.Search, c.acc.SearchFields))
	}
	return And(preds...)
}

func (c *Controller[T]) page() PageResult[T] {
	filtered := Evaluate(c.records, c.predicate())
	return Paginate(filtered, c.query.Page, c.pageSize)
}

func (c *Controller[T]) pageIDs() []string {
	page := c.page()
	ids := make([]string, 0, len(page.Rows))
	for _, rec := range page.Rows {
		ids = append(ids, c.acc.ID(rec))
	}
	return ids
}

// State re-evaluates the pipeline (mode filter, then user filters, then
// search, then pagination) and intersects the selection with the
// visible slice for the header checkbox.
func (c *Controller[T]) State() ViewState[T] {
	page := c.page()
	ids := make([]string, 0, len(page.Rows))
	for _, rec := range page.Rows {
		ids = append(ids, c.acc.ID(rec))
	}
	return ViewState[T]{
		Rows:              page.Rows,
		Page:              page.Page,
		TotalPages:        page.TotalPages,
		TotalCount:        page.TotalCount,
		SelectedIDs:       c.sel.IDs(),
		AllOnPageSelected: c.sel.AllOnPageSelected(ids),
		HasSelection:      c.sel.Len() > 0,
	}
}
