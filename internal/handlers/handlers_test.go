package handlers

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmwangi/netbill-golang/internal/models"
)

// An empty page must serialize as an empty array, never null; the
// console maps over the rows unconditionally.
func TestNonNilRowsSerialization(t *testing.T) {
	var subscribers []models.Subscriber

	raw, err := json.Marshal(gin.H{"subscribers": subscribers})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"subscribers":null`, "nil slice renders null without normalization")

	raw, err = json.Marshal(gin.H{"subscribers": nonNilRows(subscribers)})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"subscribers":[]`)
}

func TestNonNilRowsPreservesData(t *testing.T) {
	rows := []models.Subscription{{ID: "subn-1"}}
	assert.Equal(t, rows, nonNilRows(rows))

	nonEmpty := nonNilRows[models.Subscription](nil)
	assert.NotNil(t, nonEmpty)
	assert.Empty(t, nonEmpty)
}
