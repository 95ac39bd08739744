package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(rate.Limit(1), 2))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := cache.New(time.Minute, time.Minute)

	hits := 0
	r := gin.New()
	r.Use(Cache(store, time.Minute))
	r.GET("/data", func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, "fresh")
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/data", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "fresh", w.Body.String())
	}

	assert.Equal(t, 1, hits, "second request is served from cache")
}

func TestCache_SkipsNonGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := cache.New(time.Minute, time.Minute)

	hits := 0
	r := gin.New()
	r.Use(Cache(store, time.Minute))
	r.POST("/data", func(c *gin.Context) {
		hits++
		c.String(http.StatusOK, "posted")
	})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/data", nil))
	}

	assert.Equal(t, 2, hits)
}
