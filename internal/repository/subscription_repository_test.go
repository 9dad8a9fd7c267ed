package repository

import (
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmwangi/netbill-golang/internal/listview"
)

func buildSubscriptionViewSQL(t *testing.T, mode string, q listview.ViewQuery) (string, []interface{}) {
	t.Helper()
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	sqlStr, args, err := applySubscriptionView(
		sq.Select(subscriptionColumns...).From("subscriptions"), mode, q, now,
	).PlaceholderFormat(sq.Question).ToSql()
	require.NoError(t, err)
	return sqlStr, args
}

func TestApplySubscriptionViewModes(t *testing.T) {
	q := listview.DefaultQuery()

	t.Run("status-locked modes narrow", func(t *testing.T) {
		for _, mode := range []string{"active", "expired", "grace"} {
			sqlStr, args := buildSubscriptionViewSQL(t, mode, q)
			assert.Contains(t, sqlStr, "status = ?")
			assert.Contains(t, args, mode)
		}
	})

	t.Run("renewals shows every status", func(t *testing.T) {
		sqlStr, _ := buildSubscriptionViewSQL(t, "renewals", q)
		assert.NotContains(t, sqlStr, "status")
	})

	t.Run("history shows every status", func(t *testing.T) {
		sqlStr, _ := buildSubscriptionViewSQL(t, "history", q)
		assert.NotContains(t, sqlStr, "status")
	})
}

func TestApplySubscriptionViewDateRange(t *testing.T) {
	q := listview.DefaultQuery()
	q.Range = listview.Range30d

	sqlStr, _ := buildSubscriptionViewSQL(t, "history", q)
	// Fail-open: rows with no start date stay visible.
	assert.Contains(t, sqlStr, "start_date >= ?")
	assert.Contains(t, sqlStr, "start_date IS NULL")
}

func TestApplySubscriptionViewSearch(t *testing.T) {
	q := listview.DefaultQuery()
	q.Search = "  John  "

	sqlStr, args := buildSubscriptionViewSQL(t, "history", q)
	assert.Contains(t, sqlStr, "LOWER(subscriber_name) LIKE ?")
	assert.Contains(t, args, "%john%", "search is trimmed and case-folded")
}
