package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"station-advisor-backend/config"
	"station-advisor-backend/internal/advisor"
	"station-advisor-backend/internal/api"
	"station-advisor-backend/internal/booking"
	"station-advisor-backend/internal/db"
	"station-advisor-backend/internal/distance"
	"station-advisor-backend/internal/notify"
	"station-advisor-backend/internal/session"
)

func main() {
	logger := log.New(os.Stdout, "station-advisor ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	// Push notifications are optional. Without VAPID keys the watcher stays
	// off and the subscription endpoints report keys as unconfigured.
	var webpushOptions *webpush.Options
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
	} else {
		logger.Println("VAPID keys are not configured, push notifications disabled")
		cfg.Watcher.Enabled = false
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := booking.NewGormStore(gormDB)
	logger.Println("booking store initialized")

	distanceClient := distance.NewClient(&cfg.Distance)
	advisorSvc := advisor.NewService(store, distanceClient, &cfg.Ranking, logger)
	sessions := session.NewStore(time.Duration(cfg.Ranking.SessionTTLSeconds) * time.Second)

	if webpushOptions != nil {
		pool := notify.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		pool.Start(ctx)

		watcher := notify.NewWatcher(&cfg.Watcher, store, pool)
		go watcher.Run(ctx)
	}

	router := api.NewRouter(store, advisorSvc, sessions, &cfg.Server, webpushOptions)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
