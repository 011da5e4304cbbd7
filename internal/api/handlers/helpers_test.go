package handlers_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// asUser stands in for the session guard and marks the request as authenticated
func asUser(id uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Next()
	}
}

func invalidJSONRequest(router *gin.Engine, method, url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, bytes.NewBufferString("invalid json"))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}
