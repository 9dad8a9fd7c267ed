package listview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmwangi/netbill-golang/internal/models"
)

func subscriberAccessors() Accessors[models.Subscriber] {
	return Accessors[models.Subscriber]{
		ID:           func(s models.Subscriber) string { return s.ID },
		Status:       func(s models.Subscriber) string { return s.Status },
		PlanName:     func(s models.Subscriber) string { return s.CurrentPlan },
		CreatedAt:    func(s models.Subscriber) time.Time { return s.CreatedAt },
		SearchFields: subscriberSearchFields,
	}
}

func newTestController(records []models.Subscriber, opts ...Option[models.Subscriber]) *Controller[models.Subscriber] {
	opts = append([]Option[models.Subscriber]{
		WithClock[models.Subscriber](func() time.Time { return testNow }),
	}, opts...)
	return NewController(records, subscriberAccessors(), opts...)
}

func TestControllerDefaultViewShowsEverything(t *testing.T) {
	c := newTestController(testSubscribers())

	state := c.State()
	assert.Equal(t, 3, state.TotalCount)
	assert.Equal(t, 1, state.TotalPages)
	assert.Equal(t, 1, state.Page)
	require.Len(t, state.Rows, 3)
	assert.Equal(t, "sub-1", state.Rows[0].ID)
	assert.Equal(t, "sub-2", state.Rows[1].ID)
	assert.Equal(t, "sub-3", state.Rows[2].ID)
	assert.False(t, state.HasSelection)
}

func TestControllerModeCannotBeOverridden(t *testing.T) {
	// Page variant /subscribers/expired: the mode predicate is ANDed
	// unconditionally, so asking for active rows on it yields nothing.
	c := newTestController(testSubscribers(),
		WithMode(StatusIs(models.SubscriberStatusExpired, func(s models.Subscriber) string { return s.Status })))

	state := c.State()
	require.Len(t, state.Rows, 1)
	assert.Equal(t, "sub-2", state.Rows[0].ID)

	c.SetStatus(ChoiceFilter(models.SubscriberStatusActive))
	state = c.State()
	assert.Empty(t, state.Rows)
	assert.Equal(t, 0, state.TotalCount)
}

func TestControllerFilterChangeResetsPage(t *testing.T) {
	many := make([]models.Subscriber, 0, 60)
	for i := 0; i < 60; i++ {
		s := testSubscribers()[i%3]
		s.ID = s.ID + "-" + string(rune('a'+i/3))
		many = append(many, s)
	}
	c := newTestController(many)

	c.SetPage(3)
	assert.Equal(t, 3, c.State().Page)

	c.SetSearch("john")
	assert.Equal(t, 1, c.Query().Page)

	// Idempotent: re-applying the same filter value stays on page 1.
	c.SetSearch("john")
	assert.Equal(t, 1, c.Query().Page)
}

func TestControllerPagingDoesNotResetFilters(t *testing.T) {
	c := newTestController(testSubscribers())
	c.SetCategory(CategoryHome)

	c.SetPage(1)
	assert.Equal(t, CategoryHome, c.Query().Category)
	assert.Len(t, c.State().Rows, 2)
}

func TestControllerDateFilterFailsOpen(t *testing.T) {
	subs := testSubscribers()
	subs[2].CreatedAt = time.Time{}
	c := newTestController(subs)

	c.SetDateRange(Range7d)
	state := c.State()

	ids := []string{}
	for _, s := range state.Rows {
		ids = append(ids, s.ID)
	}
	assert.Contains(t, ids, "sub-1") // inside the window
	assert.Contains(t, ids, "sub-3") // no usable created-at, retained
	assert.NotContains(t, ids, "sub-2")
}

func TestControllerShrinkingFilterClampsPage(t *testing.T) {
	many := make([]models.Subscriber, 0, 30)
	for i := 0; i < 30; i++ {
		s := testSubscribers()[0]
		s.ID = s.ID + "-" + string(rune('a'+i))
		many = append(many, s)
	}
	c := newTestController(many, WithPageSize[models.Subscriber](10))

	c.SetPage(3)
	require.Equal(t, 3, c.State().Page)

	// Shrink the result set below page 3; the view clamps rather
	// than rendering an empty page.
	c.records = many[:5]
	state := c.State()
	assert.Equal(t, 1, state.Page)
	assert.Len(t, state.Rows, 5)
}

func TestControllerSelectionAcrossPages(t *testing.T) {
	subs := make([]models.Subscriber, 0, 4)
	for i, id := range []string{"sub-1", "sub-2", "sub-3", "sub-4"} {
		s := testSubscribers()[i%3]
		s.ID = id
		subs = append(subs, s)
	}
	c := newTestController(subs, WithPageSize[models.Subscriber](2))

	c.ToggleAllOnPage(true)
	c.SetPage(2)
	c.ToggleAllOnPage(true)
	assert.Equal(t, 4, c.State().TotalCount)
	assert.Len(t, c.SelectedIDs(), 4)

	c.SetPage(1)
	c.ToggleAllOnPage(false)
	selected := c.SelectedIDs()
	assert.Len(t, selected, 2)
	assert.ElementsMatch(t, []string{"sub-3", "sub-4"}, selected)
}

func TestControllerHeaderCheckboxTracksVisibleRows(t *testing.T) {
	c := newTestController(testSubscribers())

	c.ToggleRow("sub-1", true)
	assert.False(t, c.State().AllOnPageSelected)

	c.ToggleAllOnPage(true)
	state := c.State()
	assert.True(t, state.AllOnPageSelected)
	assert.True(t, state.HasSelection)

	c.ClearSelection()
	assert.False(t, c.State().HasSelection)
}
