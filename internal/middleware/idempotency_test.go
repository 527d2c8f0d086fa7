package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-payroll/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
)

func idempotencyRouter(t *testing.T, userID string) (*gin.Engine, redismock.ClientMock, *int) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rdb, redisMock := redismock.NewClientMock()
	handled := 0

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	})
	router.Use(middleware.Idempotency(rdb))
	router.POST("/api/v1/payrolls", func(c *gin.Context) {
		handled++
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	return router, redisMock, &handled
}

func postWithKey(router *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payrolls", nil)
	if key != "" {
		req.Header.Set("Idempotency-Key", key)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestIdempotency(t *testing.T) {
	t.Run("cache key is scoped to the authenticated user", func(t *testing.T) {
		routerA, mockA, _ := idempotencyRouter(t, "user-a")
		routerB, mockB, _ := idempotencyRouter(t, "user-b")

		mockA.ExpectGet("idemp:/api/v1/payrolls:user-a:req-1").RedisNil()
		mockA.ExpectSetNX("idemp:/api/v1/payrolls:user-a:req-1:lock", "locked", 30*time.Second).SetVal(true)
		mockB.ExpectGet("idemp:/api/v1/payrolls:user-b:req-1").RedisNil()
		mockB.ExpectSetNX("idemp:/api/v1/payrolls:user-b:req-1:lock", "locked", 30*time.Second).SetVal(true)

		recA := postWithKey(routerA, "req-1")
		recB := postWithKey(routerB, "req-1")

		assert.Equal(t, http.StatusCreated, recA.Code)
		assert.Equal(t, http.StatusCreated, recB.Code)
		assert.NoError(t, mockA.ExpectationsWereMet())
		assert.NoError(t, mockB.ExpectationsWereMet())
	})

	t.Run("replays cached response without invoking the handler", func(t *testing.T) {
		router, redisMock, handled := idempotencyRouter(t, "user-a")

		redisMock.ExpectGet("idemp:/api/v1/payrolls:user-a:req-2").
			SetVal(`{"id":"cached-payroll"}`)

		rec := postWithKey(router, "req-2")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "cached-payroll")
		assert.Equal(t, 0, *handled)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected while the lock is held", func(t *testing.T) {
		router, redisMock, handled := idempotencyRouter(t, "user-a")

		redisMock.ExpectGet("idemp:/api/v1/payrolls:user-a:req-3").RedisNil()
		redisMock.ExpectSetNX("idemp:/api/v1/payrolls:user-a:req-3:lock", "locked", 30*time.Second).SetVal(false)

		rec := postWithKey(router, "req-3")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "PROCESSING")
		assert.Equal(t, 0, *handled)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("request without a key passes straight through", func(t *testing.T) {
		router, redisMock, handled := idempotencyRouter(t, "user-a")

		rec := postWithKey(router, "")

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, 1, *handled)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})
}
