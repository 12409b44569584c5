package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(RequestIDKey, "req-1")

	ok := Success(c, 0, []string{"a"}, "listed", map[string]int{"total": 1})
	assert.Equal(t, http.StatusOK, ok.Status)
	assert.True(t, ok.Success)
	assert.Equal(t, "req-1", ok.RequestID)

	failed := Error[any](c, 0, "bad", nil)
	assert.Equal(t, http.StatusBadRequest, failed.Status)
	assert.False(t, failed.Success)

	// a degraded health report is still data, not an error
	degraded := Success(c, http.StatusServiceUnavailable, "x", "degraded", nil)
	assert.False(t, degraded.Success)
}

func TestAbort(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Abort(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "rate limit exceeded", body["message"])
	assert.NotContains(t, body, "data")
}
