package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aouiniamine/bookmarks/internal/cache"
	"github.com/aouiniamine/bookmarks/internal/config"
	"github.com/aouiniamine/bookmarks/internal/features/health"
	healthservice "github.com/aouiniamine/bookmarks/internal/features/health/service"
	"github.com/aouiniamine/bookmarks/internal/features/status"
	"github.com/aouiniamine/bookmarks/internal/features/status/client"
	"github.com/aouiniamine/bookmarks/internal/features/status/store"
	"github.com/aouiniamine/bookmarks/internal/metrics"
	"github.com/aouiniamine/bookmarks/internal/server"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	m := metrics.New()

	var viewStore store.Store
	if cfg.UsesRedis() {
		redisCache, err := cache.NewRedis(context.Background(), cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   "bookmarks:",
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		viewStore = store.NewRedis(redisCache, cfg.ViewStore.TTL)
	} else {
		viewStore = store.NewMemory(cfg.ViewStore.TTL)
	}

	srv := server.New(cfg.Web.Host, cfg.Web.Port, m, cfg.IsDevelopment())

	healthFeature := health.New(map[string]healthservice.Pinger{
		"view_store": viewStore,
	})
	healthFeature.RegisterRoutes(srv.Echo())

	endpoint := client.New(cfg.Endpoint.URL, cfg.Endpoint.Timeout)
	statusFeature := status.New(endpoint, viewStore, m, cfg.ViewStore.TTL)
	statusFeature.RegisterRoutes(srv.Echo())

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go statusFeature.Service.Run(ctx, min(cfg.ViewStore.TTL, time.Minute))

	go func() {
		log.Printf("Starting web server on %s (endpoint %s, view store %s)", srv.Addr(), endpoint.URL(), cfg.ViewStore.Backend)
		if err := srv.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	stop()
	statusFeature.Service.Shutdown()

	log.Println("Server exited gracefully")
}
