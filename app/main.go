package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scbizu/umbreon/app/ai"
	"github.com/scbizu/umbreon/app/api"
	"github.com/scbizu/umbreon/app/cfg"
	"github.com/scbizu/umbreon/app/database"
	"github.com/scbizu/umbreon/app/feed"
	"github.com/scbizu/umbreon/app/summarizer"
	"github.com/scbizu/umbreon/app/timeline"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	if appConfig.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Printf("Starting umbreon feed engine (version: %s)...", appConfig.Version)

	// Database connection
	db, err := database.NewConnection(appConfig.DBPath)
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	log.Printf("Database ready at %s (migration version: %d, dirty: %t)", appConfig.DBPath, version, dirty)

	// Repositories
	itemRepo := database.NewItemRepository(db)
	settingsRepo := database.NewSettingsRepository(db)

	// Core pipeline components
	sanitizer := feed.NewSanitizer()
	parser := feed.NewParser()
	normalizer := feed.NewNormalizer(sanitizer)
	fetcher := feed.NewFetcher(&http.Client{}, appConfig.UserAgent)
	syncer := feed.NewSyncer(fetcher, parser, normalizer)

	scheduler := summarizer.NewScheduler(sanitizer, func(endpoint, apiKey, model string) (summarizer.ChatClient, error) {
		return ai.NewClient(endpoint, apiKey, model)
	})

	service := timeline.NewService(syncer, scheduler, itemRepo, settingsRepo,
		func(endpoint, apiKey string) (timeline.ModelLister, error) {
			return ai.NewClient(endpoint, apiKey, "")
		}, appConfig.FeedServerURL)

	bootstrap := service.Bootstrap()
	log.Printf("Loaded %d cached feed items", len(bootstrap.Items))
	if bootstrap.StaleCache {
		log.Println("Cached items predate tagging, scheduling one re-sync...")
		go service.Sync(context.Background(), bootstrap.FeedServerURL)
	}

	// HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(service, settingsRepo)
	server := api.NewServer(apiHandler, appConfig.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appConfig.Port)
		log.Printf("API endpoints available:")
		log.Printf("  Timeline:       http://localhost:%s/timeline", appConfig.Port)
		log.Printf("  Trigger sync:   http://localhost:%s/sync (POST)", appConfig.Port)
		log.Printf("  Refresh models: http://localhost:%s/models/refresh (POST)", appConfig.Port)
		log.Printf("  Settings:       http://localhost:%s/settings (PUT)", appConfig.Port)
		log.Printf("  Health check:   http://localhost:%s/health", appConfig.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("umbreon feed engine started successfully!")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("umbreon feed engine stopped")
}
