package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"station-advisor-backend/internal/booking"
	"station-advisor-backend/internal/model"
)

type stubStore struct {
	booking.Store
	StationsInBoundsFunc func(ctx context.Context, b booking.Bounds) ([]model.Station, error)
}

func (s *stubStore) StationsInBounds(ctx context.Context, b booking.Bounds) ([]model.Station, error) {
	return s.StationsInBoundsFunc(ctx, b)
}

func (s *stubStore) DB() *gorm.DB { return nil }

func setupStationsRouter(store booking.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handler := NewHandler(store, nil, nil, nil)
	r.POST("/api/stations/nearby", handler.PostNearbyStations)
	return r
}

func TestPostNearbyStations(t *testing.T) {
	var gotBounds booking.Bounds
	store := &stubStore{
		StationsInBoundsFunc: func(ctx context.Context, b booking.Bounds) ([]model.Station, error) {
			gotBounds = b
			return []model.Station{{ID: "st-1", Name: "Central Plaza"}}, nil
		},
	}
	router := setupStationsRouter(store)

	w := httptest.NewRecorder()
	body := `{"path_points": [
		{"lat": 25.0, "lng": 121.5},
		{"lat": 25.2, "lng": 121.7}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/api/stations/nearby", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 24.9, gotBounds.MinLat, 0.0001)
	assert.InDelta(t, 25.3, gotBounds.MaxLat, 0.0001)
	assert.InDelta(t, 121.4, gotBounds.MinLng, 0.0001)
	assert.InDelta(t, 121.8, gotBounds.MaxLng, 0.0001)
	assert.Contains(t, w.Body.String(), "st-1")
}

func TestPostNearbyStations_NoPoints(t *testing.T) {
	router := setupStationsRouter(&stubStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/stations/nearby", bytes.NewBufferString(`{"path_points": []}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
