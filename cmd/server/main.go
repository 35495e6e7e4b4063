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

	"github.com/soundzyworld/site-backend/pkg/chatbot"
	"github.com/soundzyworld/site-backend/pkg/sitecontent/api"
	"github.com/soundzyworld/site-backend/pkg/sitecontent/config"
	"github.com/soundzyworld/site-backend/pkg/sitecontent/feed"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load(config.WithEnv())
	if err != nil {
		log.Fatalf("Failed to load server configuration: %v", err)
	}

	// Change feed hub: every content mutation fans out through it to the
	// websocket/SSE subscribers.
	hub := feed.New()

	// Build service from configuration
	svc, err := cfg.BuildService(hub)
	if err != nil {
		log.Fatalf("Failed to build service: %v", err)
	}

	serverOpts := []api.ServerOption{
		api.WithEnvironment(cfg.Environment),
	}

	store, err := cfg.BuildBlobStore()
	if err != nil {
		log.Fatalf("Failed to build blob store: %v", err)
	}
	if store != nil {
		serverOpts = append(serverOpts, api.WithBlobStore(store))
	}

	if cfg.JWTSecret != "" {
		serverOpts = append(serverOpts, api.WithJWTSecret(cfg.JWTSecret))
	} else if cfg.Environment != "development" {
		log.Fatalf("JWT_SECRET is required outside development")
	}

	if cfg.GeminiAPIKey != "" {
		responder, err := chatbot.NewGeminiResponder(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to build chat responder: %v", err)
		}
		serverOpts = append(serverOpts, api.WithChat(chatbot.NewService(svc, responder, slog.Default())))
	} else {
		slog.Warn("GEMINI_API_KEY not set, chat endpoint will answer with the contact fallback")
	}

	server := api.NewServer(svc, hub, serverOpts...)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: server.Routes(),
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Soundzy site server starting on port %s (env: %s)", cfg.Port, cfg.Environment)
		log.Printf("Database: %s, storage: %s", cfg.DatabaseType, cfg.StorageType)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
