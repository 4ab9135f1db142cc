package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/aouiniamine/bookmarks/docs"

	"github.com/aouiniamine/bookmarks/internal/config"
	"github.com/aouiniamine/bookmarks/internal/features/greeting"
	"github.com/aouiniamine/bookmarks/internal/features/health"
	"github.com/aouiniamine/bookmarks/internal/metrics"
	"github.com/aouiniamine/bookmarks/internal/middleware"
	"github.com/aouiniamine/bookmarks/internal/server"
	"github.com/joho/godotenv"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title Bookmarks API
// @version 1.0
// @description Greeting endpoint read by the Bookmarks status page.

// @host localhost:8080
// @BasePath /

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	m := metrics.New()

	srv := server.New(cfg.Server.Host, cfg.Server.Port, m, cfg.IsDevelopment())

	srv.Echo().GET("/swagger/*", echoSwagger.WrapHandler)

	healthFeature := health.New(nil)
	healthFeature.RegisterRoutes(srv.Echo())

	cors := middleware.CORS(middleware.OriginPolicy{
		Allowed:       cfg.Greeting.AllowedOrigins,
		PreviewSuffix: cfg.Greeting.PreviewOriginSuffix,
	}, m)

	greetingFeature := greeting.New(cfg.Greeting.Message)
	greetingFeature.RegisterRoutes(srv.Echo(), cors)

	go func() {
		log.Printf("Starting API server on %s", srv.Addr())
		if err := srv.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
