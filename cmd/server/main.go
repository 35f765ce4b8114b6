package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cricbytes/cricbytes/internal/api"
	"github.com/cricbytes/cricbytes/internal/config"
	"github.com/cricbytes/cricbytes/internal/logger"
	"github.com/cricbytes/cricbytes/internal/repository/postgres"
	"github.com/cricbytes/cricbytes/internal/service"
	"github.com/cricbytes/cricbytes/internal/storage"
	"github.com/cricbytes/cricbytes/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Log.Fatalw("failed to connect to database", "error", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Initialize blob storage
	var (
		blobs     storage.BlobStore
		diskStore *storage.DiskStore
		s3Store   *storage.S3Store
	)
	switch cfg.MediaBackend {
	case "s3":
		s3Store, err = storage.NewS3Store(context.Background(), storage.S3Options{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			BaseEndpoint: cfg.S3BaseEndpoint,
		})
		if err != nil {
			logger.Log.Fatalw("failed to initialize S3 storage", "error", err)
		}
		blobs = s3Store
	default:
		diskStore, err = storage.NewDiskStore(cfg.UploadDir)
		if err != nil {
			logger.Log.Fatalw("failed to initialize disk storage", "error", err)
		}
		blobs = diskStore
	}

	// Initialize live score hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize services
	services := service.NewServices(repos, blobs, hub, cfg)

	// Background match refresh
	pollerCtx, cancelPoller := context.WithCancel(context.Background())
	go services.Cricket.RunPoller(pollerCtx, cfg.CricketRefreshInterval)

	// Initialize router
	router := api.NewRouter(api.RouterDeps{
		Services: services,
		Hub:      hub,
		DB:       db,
		Disk:     diskStore,
		S3:       s3Store,
		Cfg:      cfg,
	})

	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Log.Infow("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalw("failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down server...")

	cancelPoller()
	hub.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatalw("server forced to shutdown", "error", err)
	}

	logger.Log.Info("server stopped")
}
