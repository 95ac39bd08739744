package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"station-advisor-backend/internal/advisor"
	"station-advisor-backend/internal/distance"
)

type originParam struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}

type recommendRequest struct {
	ConversationID string                 `json:"conversation_id"`
	Origin         originParam            `json:"origin" binding:"required"`
	Stations       []advisor.StationInput `json:"stations" binding:"required"`
	HorizonHours   float64                `json:"horizon_hours"`
}

// PostRecommendation ranks the submitted stations and returns the best
// charger. When a conversation id is supplied the result is kept for later
// retrieval.
func (h *Handler) PostRecommendation(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.advisor.Recommend(c.Request.Context(), advisor.Request{
		Origin:       distance.Coordinate{Lat: *req.Origin.Lat, Lng: *req.Origin.Lng},
		Stations:     req.Stations,
		HorizonHours: req.HorizonHours,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if req.ConversationID != "" {
		h.sessions.Put(req.ConversationID, result)
	}

	c.JSON(http.StatusOK, result)
}

// GetRecommendation replays a previously computed recommendation for a
// conversation.
func (h *Handler) GetRecommendation(c *gin.Context) {
	conversationID := c.Param("conversation_id")

	result, ok := h.sessions.Get(conversationID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found or expired"})
		return
	}

	c.JSON(http.StatusOK, result)
}
