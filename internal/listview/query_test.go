package listview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChoiceFilter(t *testing.T) {
	allowed := []string{"active", "expired", "suspended"}

	f, err := ParseChoiceFilter("", allowed...)
	require.NoError(t, err)
	assert.Equal(t, ChoiceAll, f)

	f, err = ParseChoiceFilter("all", allowed...)
	require.NoError(t, err)
	assert.Equal(t, ChoiceAll, f)

	f, err = ParseChoiceFilter("expired", allowed...)
	require.NoError(t, err)
	assert.Equal(t, ChoiceFilter("expired"), f)

	_, err = ParseChoiceFilter("EXPIRED", allowed...)
	assert.Error(t, err, "matching is exact, not case-folded")

	_, err = ParseChoiceFilter("deleted", allowed...)
	assert.Error(t, err)
}

func TestParsePlanCategory(t *testing.T) {
	cat, err := ParsePlanCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, cat)

	cat, err = ParsePlanCategory("business")
	require.NoError(t, err)
	assert.Equal(t, CategoryBusiness, cat)

	_, err = ParsePlanCategory("enterprise")
	assert.Error(t, err)
}

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("30d")
	require.NoError(t, err)
	assert.Equal(t, Range30d, r)

	_, err = ParseDateRange("1y")
	assert.Error(t, err)
}

func TestDateRangeCutoff(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	cutoff, ok := Range7d.Cutoff(now)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 8, 12, 0, 0, 0, time.UTC), cutoff)

	_, ok = RangeAll.Cutoff(now)
	assert.False(t, ok, "disabled dimension has no cutoff")
}

func TestParsePage(t *testing.T) {
	assert.Equal(t, 1, ParsePage(""))
	assert.Equal(t, 1, ParsePage("abc"))
	assert.Equal(t, 1, ParsePage("0"))
	assert.Equal(t, 1, ParsePage("-3"))
	assert.Equal(t, 7, ParsePage("7"))
}

func TestDefaultQuery(t *testing.T) {
	q := DefaultQuery()
	assert.Equal(t, ChoiceAll, q.Status)
	assert.Equal(t, CategoryAll, q.Category)
	assert.Equal(t, RangeAll, q.Range)
	assert.Equal(t, 1, q.Page)
	assert.Empty(t, q.Search)
}
