package logger

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestWithContext(t *testing.T) {
	t.Run("anonymous when no user", func(t *testing.T) {
		l := WithContext(context.Background())
		assert.Equal(t, "anonymous", l.Data["user"])
		_, hasRequestID := l.Data["request_id"]
		assert.False(t, hasRequestID)
	})

	t.Run("user and request id fields", func(t *testing.T) {
		ctx := ContextWithUserID(context.Background(), "acc-1")
		ctx = ContextWithRequestID(ctx, "req-9")

		l := WithContext(ctx)
		assert.Equal(t, "acc-1", l.Data["user"])
		assert.Equal(t, "req-9", l.Data["request_id"])
	})
}

func TestFromGinContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest("GET", "/", nil)
	c.Request = req.WithContext(ContextWithUserID(req.Context(), "acc-2"))

	l := FromGinContext(c)
	assert.Equal(t, "acc-2", l.Data["user"])
}

func TestWithFields(t *testing.T) {
	l := New().WithFields(map[string]interface{}{"team_id": "t1"}).WithField("count", 3)
	assert.Equal(t, "t1", l.Data["team_id"])
	assert.Equal(t, 3, l.Data["count"])
}
