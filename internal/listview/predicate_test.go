package listview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmwangi/netbill-golang/internal/models"
)

var testNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func testSubscribers() []models.Subscriber {
	return []models.Subscriber{
		{
			ID:            "sub-1",
			Name:          "John Doe",
			Phone:         "+254700000001",
			Email:         "john@example.com",
			PPPoEUsername: "john.pppoe",
			CurrentPlan:   "Home 10Mbps",
			Status:        models.SubscriberStatusActive,
			CreatedAt:     time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "sub-2",
			Name:          "Jane Smith",
			Phone:         "+254700000002",
			Email:         "jane@example.com",
			PPPoEUsername: "jane.pppoe",
			CurrentPlan:   "Business 50Mbps",
			Status:        models.SubscriberStatusExpired,
			CreatedAt:     time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:            "sub-3",
			Name:          "Grace User",
			Phone:         "+254700000003",
			Email:         "grace@example.com",
			PPPoEUsername: "grace.pppoe",
			CurrentPlan:   "Home 20Mbps",
			Status:        models.SubscriberStatusSuspended,
			CreatedAt:     time.Date(2023, 12, 28, 0, 0, 0, 0, time.UTC),
		},
	}
}

func subscriberSearchFields(s models.Subscriber) []string {
	return []string{s.Name, s.PPPoEUsername, s.Phone}
}

func TestEvaluatePreservesOrder(t *testing.T) {
	subs := testSubscribers()

	out := Evaluate(subs, All[models.Subscriber]())

	require.Len(t, out, 3)
	assert.Equal(t, "sub-1", out[0].ID)
	assert.Equal(t, "sub-2", out[1].ID)
	assert.Equal(t, "sub-3", out[2].ID)
}

func TestEvaluateDoesNotMutateInput(t *testing.T) {
	subs := testSubscribers()

	Evaluate(subs, StatusIs(models.SubscriberStatusActive, func(s models.Subscriber) string { return s.Status }))

	require.Len(t, subs, 3)
	assert.Equal(t, "sub-2", subs[1].ID)
}

func TestChoicePredicateAllIsNoOp(t *testing.T) {
	pred := ChoicePredicate(ChoiceAll, func(s models.Subscriber) string { return s.Status })
	assert.Nil(t, pred)

	out := Evaluate(testSubscribers(), And(pred))
	assert.Len(t, out, 3)
}

func TestChoicePredicateExactMatch(t *testing.T) {
	f, err := ParseChoiceFilter("expired",
		models.SubscriberStatusActive, models.SubscriberStatusExpired, models.SubscriberStatusSuspended)
	require.NoError(t, err)

	pred := ChoicePredicate(f, func(s models.Subscriber) string { return s.Status })
	out := Evaluate(testSubscribers(), pred)

	require.Len(t, out, 1)
	assert.Equal(t, "sub-2", out[0].ID)
}

func TestParseChoiceFilterRejectsUnknownValues(t *testing.T) {
	_, err := ParseChoiceFilter("deleted",
		models.SubscriberStatusActive, models.SubscriberStatusExpired, models.SubscriberStatusSuspended)
	assert.Error(t, err)
}

func TestCategoryPredicateSubstringMatch(t *testing.T) {
	planName := func(s models.Subscriber) string { return s.CurrentPlan }

	home := Evaluate(testSubscribers(), CategoryPredicate(CategoryHome, planName))
	require.Len(t, home, 2)
	assert.Equal(t, "sub-1", home[0].ID)
	assert.Equal(t, "sub-3", home[1].ID)

	business := Evaluate(testSubscribers(), CategoryPredicate(CategoryBusiness, planName))
	require.Len(t, business, 1)
	assert.Equal(t, "sub-2", business[0].ID)
}

func TestSearchPredicateCaseInsensitive(t *testing.T) {
	out := Evaluate(testSubscribers(), SearchPredicate("JANE", subscriberSearchFields))
	require.Len(t, out, 1)
	assert.Equal(t, "sub-2", out[0].ID)
}

func TestSearchPredicateMatchesAnyField(t *testing.T) {
	byPhone := Evaluate(testSubscribers(), SearchPredicate("0000003", subscriberSearchFields))
	require.Len(t, byPhone, 1)
	assert.Equal(t, "sub-3", byPhone[0].ID)

	byUsername := Evaluate(testSubscribers(), SearchPredicate("john.pppoe", subscriberSearchFields))
	require.Len(t, byUsername, 1)
	assert.Equal(t, "sub-1", byUsername[0].ID)
}

func TestSearchPredicateEmptyQueryPassesEverything(t *testing.T) {
	assert.Nil(t, SearchPredicate("", subscriberSearchFields))
	assert.Nil(t, SearchPredicate("   ", subscriberSearchFields))
}

func TestCreatedWithinCutoff(t *testing.T) {
	createdAt := func(s models.Subscriber) time.Time { return s.CreatedAt }

	// Only sub-1 (Jan 5) is inside the last 30 days from Jan 15; sub-3
	// (Dec 28) is inside 30 days too, sub-2 (Nov 20) is not.
	out := Evaluate(testSubscribers(), CreatedWithin(Range30d, testNow, createdAt))
	require.Len(t, out, 2)
	assert.Equal(t, "sub-1", out[0].ID)
	assert.Equal(t, "sub-3", out[1].ID)

	out = Evaluate(testSubscribers(), CreatedWithin(Range7d, testNow, createdAt))
	require.Len(t, out, 1)
	assert.Equal(t, "sub-1", out[0].ID)
}

func TestCreatedWithinFailsOpenOnZeroTime(t *testing.T) {
	subs := testSubscribers()
	subs[1].CreatedAt = time.Time{} // unparseable source date

	createdAt := func(s models.Subscriber) time.Time { return s.CreatedAt }
	out := Evaluate(subs, CreatedWithin(Range7d, testNow, createdAt))

	// sub-2 is retained despite having no usable created-at.
	ids := []string{}
	for _, s := range out {
		ids = append(ids, s.ID)
	}
	assert.Contains(t, ids, "sub-2")
}

func TestPredicateOrderIndependent(t *testing.T) {
	status := func(s models.Subscriber) string { return s.Status }
	f, err := ParseChoiceFilter("active", models.SubscriberStatusActive, models.SubscriberStatusExpired, models.SubscriberStatusSuspended)
	require.NoError(t, err)

	statusPred := ChoicePredicate(f, status)
	searchPred := SearchPredicate("john", subscriberSearchFields)

	a := Evaluate(testSubscribers(), And(statusPred, searchPred))
	b := Evaluate(testSubscribers(), And(searchPred, statusPred))

	assert.Equal(t, a, b)
}

func TestParsePlanCategoryPredicate(t *testing.T) {
	cat, err := ParsePlanCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, cat)

	cat, err = ParsePlanCategory("business")
	require.NoError(t, err)
	assert.Equal(t, CategoryBusiness, cat)

	_, err = ParsePlanCategory("enterprise")
	assert.Error(t, err)
}

func TestParseDateRangePredicate(t *testing.T) {
	r, err := ParseDateRange("30d")
	require.NoError(t, err)
	assert.Equal(t, Range30d, r)

	_, err = ParseDateRange("365d")
	assert.Error(t, err)

	_, ok := RangeAll.Cutoff(testNow)
	assert.False(t, ok)
}
