package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"choicefiction/internal/handler"
	"choicefiction/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRateLimiter_InMemory(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(handler.NewRateLimiter(handler.NewMemoryRateLimitStore(1), zap.NewNop()))
	router.POST("/ai", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/ai", nil)
		req.RemoteAddr = ip + ":5555"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1").Code)

	w := call("10.0.0.1")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"`+models.MsgTooManyRequests+`"}`, w.Body.String())
	retry, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.Positive(t, retry)

	assert.Equal(t, http.StatusOK, call("10.0.0.2").Code, "limit is tracked per client IP")
}
