package api

import (
	"context"

	"github.com/SherClockHolmes/webpush-go"

	"station-advisor-backend/internal/advisor"
	"station-advisor-backend/internal/booking"
	"station-advisor-backend/internal/session"
)

// Recommender produces a ranked recommendation for a set of stations.
type Recommender interface {
	Recommend(ctx context.Context, req advisor.Request) (*advisor.Result, error)
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store    booking.Store
	advisor  Recommender
	sessions *session.Store
	webpush  *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s booking.Store, rec Recommender, sessions *session.Store, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:    s,
		advisor:  rec,
		sessions: sessions,
		webpush:  webpushOptions,
	}
}
