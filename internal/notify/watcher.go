package notify

import (
	"context"
	"log"
	"time"

	"station-advisor-backend/config"
	"station-advisor-backend/internal/booking"
)

// releaseSource yields chargers that went free since the last sweep.
type releaseSource interface {
	ReleasedChargers(ctx context.Context, since, now time.Time) ([]booking.Release, error)
}

// Watcher periodically scans for chargers whose bookings just ended and
// dispatches one notification job per affected station.
type Watcher struct {
	cfg  *config.WatcherConfig
	src  releaseSource
	pool *WorkerPool
}

// NewWatcher creates an availability watcher.
func NewWatcher(cfg *config.WatcherConfig, src releaseSource, pool *WorkerPool) *Watcher {
	return &Watcher{cfg: cfg, src: src, pool: pool}
}

// Run loops until the context is cancelled. It is a no-op when the watcher is
// disabled in configuration.
func (w *Watcher) Run(ctx context.Context) {
	if !w.cfg.Enabled {
		log.Println("Availability watcher is disabled")
		return
	}

	log.Printf("Availability watcher started, sweeping every %s", w.cfg.Interval)
	timer := time.NewTimer(w.cfg.Interval)
	defer timer.Stop()

	last := time.Now().UTC()
	for {
		select {
		case <-ctx.Done():
			log.Println("Availability watcher shutting down")
			return
		case <-timer.C:
			last = w.sweep(ctx, last)
			timer.Reset(w.cfg.Interval)
		}
	}
}

// sweep dispatches a job per station with a freshly released charger. The
// low-water mark only advances on a successful query so transient database
// errors do not drop releases.
func (w *Watcher) sweep(ctx context.Context, since time.Time) time.Time {
	now := time.Now().UTC()
	releases, err := w.src.ReleasedChargers(ctx, since, now)
	if err != nil {
		log.Printf("Availability sweep failed: %v", err)
		return since
	}

	notified := make(map[string]bool)
	for _, rel := range releases {
		if notified[rel.StationID] {
			continue
		}
		notified[rel.StationID] = true
		log.Printf("Charger %s at station %s released, dispatching notifications", rel.ChargerID, rel.StationID)
		w.pool.Dispatch(rel.StationID)
	}
	return now
}
