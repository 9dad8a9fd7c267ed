// Package listview implements the table view engine behind the admin
// console list pages (subscribers, subscriptions, payments): composable
// filter predicates, a stable query pipeline, fixed-size pagination with
// page clamping, and cross-page row selection.
//
// The engine is deliberately dumb about entities. Each page wires its
// own field accessors into the generic predicates, so the same rules
// (filters only narrow, malformed data fails open, filter changes reset
// paging) hold for every table in the console.
package listview

import (
	"fmt"
	"strconv"
	"time"
)

// DefaultPageSize matches the console tables (25 rows per page).
const DefaultPageSize = 25

// ChoiceFilter is an exact-match filter dimension (status, payment
// method). The zero value / "all" matches everything; any other value
// must come from the closed set given to ParseChoiceFilter, so an
// invalid value can never reach the predicate builder.
type ChoiceFilter string

// ChoiceAll disables the dimension.
const ChoiceAll ChoiceFilter = "all"

// ParseChoiceFilter validates raw user input against the allowed set
// for this dimension. Empty input means "all".
func ParseChoiceFilter(raw string, allowed ...string) (ChoiceFilter, error) {
	if raw == "" || raw == string(ChoiceAll) {
		return ChoiceAll, nil
	}
	for _, a := range allowed {
		if raw == a {
			return ChoiceFilter(raw), nil
		}
	}
	return ChoiceAll, fmt.Errorf("invalid filter value %q", raw)
}

// PlanCategory is the loose plan-type dimension. Matching is substring
// containment on the plan name, not a join against the plans table.
type PlanCategory string

const (
	CategoryAll      PlanCategory = "all"
	CategoryHome     PlanCategory = "home"
	CategoryBusiness PlanCategory = "business"
)

func ParsePlanCategory(raw string) (PlanCategory, error) {
	switch PlanCategory(raw) {
	case "", CategoryAll:
		return CategoryAll, nil
	case CategoryHome:
		return CategoryHome, nil
	case CategoryBusiness:
		return CategoryBusiness, nil
	}
	return CategoryAll, fmt.Errorf("invalid plan category %q", raw)
}

// DateRange is the created-within dimension (last 7/30/90 days).
type DateRange string

const (
	RangeAll DateRange = "all"
	Range7d  DateRange = "7d"
	Range30d DateRange = "30d"
	Range90d DateRange = "90d"
)

func ParseDateRange(raw string) (DateRange, error) {
	switch DateRange(raw) {
	case "", RangeAll:
		return RangeAll, nil
	case Range7d, Range30d, Range90d:
		return DateRange(raw), nil
	}
	return RangeAll, fmt.Errorf("invalid date range %q", raw)
}

// Cutoff returns the earliest created-at a record may have and still
// pass the filter. ok is false when the dimension is disabled.
func (r DateRange) Cutoff(now time.Time) (cutoff time.Time, ok bool) {
	var days int
	switch r {
	case Range7d:
		days = 7
	case Range30d:
		days = 30
	case Range90d:
		days = 90
	default:
		return time.Time{}, false
	}
	return now.AddDate(0, 0, -days), true
}

// ParsePage parses a 1-based page number. Anything missing or malformed
// falls back to page 1; clamping against the real page count happens
// later in Paginate.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ViewQuery is the full set of user-controlled view parameters for one
// table. It is owned by a single Controller and never shared.
type ViewQuery struct {
	Search   string
	Status   ChoiceFilter
	Category PlanCategory
	Range    DateRange
	Page     int
}

// DefaultQuery is the state of a freshly opened page.
func DefaultQuery() ViewQuery {
	return ViewQuery{
		Status:   ChoiceAll,
		Category: CategoryAll,
		Range:    RangeAll,
		Page:     1,
	}
}
