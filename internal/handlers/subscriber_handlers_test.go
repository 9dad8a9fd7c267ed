package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmwangi/netbill-golang/internal/listview"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestParseSubscriberView(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, _ := newTestContext(t, http.MethodGet, "/api/v1/subscribers", nil)

		q, ok := parseSubscriberView(c)
		require.True(t, ok)
		assert.Equal(t, listview.DefaultQuery(), q)
	})

	t.Run("full query", func(t *testing.T) {
		c, _ := newTestContext(t, http.MethodGet,
			"/api/v1/subscribers?q=john&status=expired&plan=business&range=30d&page=3", nil)

		q, ok := parseSubscriberView(c)
		require.True(t, ok)
		assert.Equal(t, "john", q.Search)
		assert.Equal(t, listview.ChoiceFilter("expired"), q.Status)
		assert.Equal(t, listview.CategoryBusiness, q.Category)
		assert.Equal(t, listview.Range30d, q.Range)
		assert.Equal(t, 3, q.Page)
	})

	t.Run("invalid status is rejected at the boundary", func(t *testing.T) {
		c, w := newTestContext(t, http.MethodGet, "/api/v1/subscribers?status=deleted", nil)

		_, ok := parseSubscriberView(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid range is rejected at the boundary", func(t *testing.T) {
		c, w := newTestContext(t, http.MethodGet, "/api/v1/subscribers?range=1y", nil)

		_, ok := parseSubscriberView(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed page falls back to 1", func(t *testing.T) {
		c, _ := newTestContext(t, http.MethodGet, "/api/v1/subscribers?page=abc", nil)

		q, ok := parseSubscriberView(c)
		require.True(t, ok)
		assert.Equal(t, 1, q.Page)
	})
}

func TestGetSubscribersInvalidMode(t *testing.T) {
	h := &Handlers{}
	c, w := newTestContext(t, http.MethodGet, "/api/v1/subscribers?mode=suspended", nil)

	h.GetSubscribers(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid mode")
}

func TestBulkActionValidation(t *testing.T) {
	h := &Handlers{}

	t.Run("unknown action", func(t *testing.T) {
		body := []byte(`{"action":"delete","ids":["sub-1"]}`)
		c, w := newTestContext(t, http.MethodPost, "/api/v1/subscribers/bulk", body)

		h.BulkAction(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty id list", func(t *testing.T) {
		body := []byte(`{"action":"suspend","ids":[]}`)
		c, w := newTestContext(t, http.MethodPost, "/api/v1/subscribers/bulk", body)

		h.BulkAction(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("assign_plan requires plan_id", func(t *testing.T) {
		body := []byte(`{"action":"assign_plan","ids":["sub-1"]}`)
		c, w := newTestContext(t, http.MethodPost, "/api/v1/subscribers/bulk", body)

		h.BulkAction(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "planId")
	})
}
