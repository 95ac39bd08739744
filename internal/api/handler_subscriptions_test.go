package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupSubscriptionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(nil, nil, nil, nil)
	r.PUT("/api/subscriptions", handler.PutSubscription)
	r.GET("/api/subscriptions", handler.GetSubscription)
	return r
}

func TestPutSubscription_InvalidBody(t *testing.T) {
	router := setupSubscriptionRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetSubscription_MissingEndpoint(t *testing.T) {
	router := setupSubscriptionRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/subscriptions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRawQueryParam(t *testing.T) {
	endpoint := "https://push.example.com/v2/abc%2Fdef"
	raw, ok := rawQueryParam("endpoint="+endpoint+"&other=1", "endpoint")
	assert.True(t, ok)
	assert.Equal(t, endpoint, raw, "the value must come back without URL decoding")

	_, ok = rawQueryParam("other=1", "endpoint")
	assert.False(t, ok)
}
