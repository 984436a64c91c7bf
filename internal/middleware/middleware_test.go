package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tira/backend/internal/apperrors"
	"tira/backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestErrorHandlerTranslatesAttachedError(t *testing.T) {
	router := gin.New()
	router.Use(middleware.ErrorHandler(zap.NewNop().Sugar()))
	router.GET("/boom", func(c *gin.Context) {
		c.Error(apperrors.NotFound("Task"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "Task not found", payload["error"])
}

func TestErrorHandlerHidesInternalDetail(t *testing.T) {
	router := gin.New()
	router.Use(middleware.ErrorHandler(zap.NewNop().Sugar()))
	router.GET("/boom", func(c *gin.Context) {
		c.Error(assertableError{})
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Something went wrong")
	assert.NotContains(t, rec.Body.String(), "connection string")
}

type assertableError struct{}

func (assertableError) Error() string { return "pq: connection string rejected" }

func TestErrorHandlerLeavesWrittenResponsesAlone(t *testing.T) {
	router := gin.New()
	router.Use(middleware.ErrorHandler(zap.NewNop().Sugar()))
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"fine": true})
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fine")
}

func TestRateLimiterThrottlesBurst(t *testing.T) {
	router := gin.New()
	rl := middleware.NewRateLimiter(1, 2)
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	codes := make(map[int]int)
	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(rec, req)
		codes[rec.Code]++
	}

	assert.Equal(t, 2, codes[http.StatusOK])
	assert.Equal(t, 3, codes[http.StatusTooManyRequests])
}

func TestRateLimiterIsPerClient(t *testing.T) {
	router := gin.New()
	rl := middleware.NewRateLimiter(1, 1)
	router.Use(rl.Middleware())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = addr
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, addr)
	}
}
