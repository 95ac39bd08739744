package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"station-advisor-backend/internal/booking"
)

// boundsPadding widens the bounding box around the route so stations just off
// the path are still considered.
const boundsPadding = 0.1

type pathPoint struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

type nearbyStationsRequest struct {
	PathPoints []pathPoint `json:"path_points" binding:"required,min=1"`
}

// PostNearbyStations returns the stations inside the padded bounding box of
// the submitted route points.
func (h *Handler) PostNearbyStations(c *gin.Context) {
	var req nearbyStationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bounds := booking.Bounds{
		MinLat: *req.PathPoints[0].Lat,
		MaxLat: *req.PathPoints[0].Lat,
		MinLng: *req.PathPoints[0].Lng,
		MaxLng: *req.PathPoints[0].Lng,
	}
	for _, p := range req.PathPoints[1:] {
		if *p.Lat < bounds.MinLat {
			bounds.MinLat = *p.Lat
		}
		if *p.Lat > bounds.MaxLat {
			bounds.MaxLat = *p.Lat
		}
		if *p.Lng < bounds.MinLng {
			bounds.MinLng = *p.Lng
		}
		if *p.Lng > bounds.MaxLng {
			bounds.MaxLng = *p.Lng
		}
	}
	bounds.MinLat -= boundsPadding
	bounds.MaxLat += boundsPadding
	bounds.MinLng -= boundsPadding
	bounds.MaxLng += boundsPadding

	stations, err := h.store.StationsInBounds(c.Request.Context(), bounds)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stations": stations})
}
