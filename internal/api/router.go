package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"station-advisor-backend/config"
	"station-advisor-backend/internal/booking"
	"station-advisor-backend/internal/mw"
	"station-advisor-backend/internal/session"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s booking.Store, rec Recommender, sessions *session.Store, cfg *config.ServerConfig, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, rec, sessions, webpushOptions)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	cacheTTL := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.POST("/recommendations", handler.PostRecommendation)
		api.GET("/recommendations/:conversation_id", handler.GetRecommendation)

		api.POST("/stations/nearby", handler.PostNearbyStations)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", caching, handler.GetVAPIDPublicKey)
	}

	return r
}
