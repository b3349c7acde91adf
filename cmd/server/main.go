package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dinetrack/backend/config"
	"github.com/dinetrack/backend/internal/cart"
	"github.com/dinetrack/backend/internal/catalog"
	httpDelivery "github.com/dinetrack/backend/internal/delivery/http"
	"github.com/dinetrack/backend/internal/infrastructure/cache"
	"github.com/dinetrack/backend/internal/infrastructure/catalogfile"
	"github.com/dinetrack/backend/internal/infrastructure/dining"
	"github.com/dinetrack/backend/internal/pkg/logger"
	"github.com/dinetrack/backend/internal/usecase"
)

func main() {
	// Load .env before config so env overrides pick it up
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Server.Environment)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting dinetrack backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("feed", cfg.Feed.BaseURL),
		zap.String("catalog", cfg.Catalog.Path))

	// Catalog snapshot
	root, err := catalogfile.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatal("failed to load catalog", zap.Error(err))
	}
	index := catalog.NewIndex(root)
	log.Info("catalog loaded",
		zap.Int("items", index.Len()),
		zap.Int("categories", len(index.Categories())))

	// Infrastructure
	feedClient := dining.NewClient(dining.Config{
		BaseURL:   cfg.Feed.BaseURL,
		Timeout:   cfg.Feed.Timeout,
		RateLimit: cfg.Feed.RateLimit,
		Burst:     cfg.Feed.Burst,
	}, log)
	detailCache := cache.NewMemoryCache(cfg.Cache.DetailTTL)
	cartStore := cart.NewStore()

	// Usecase layer
	menuService := usecase.NewMenuService(index, feedClient, cartStore, detailCache, log,
		usecase.MenuServiceConfig{
			DetailCacheTTL: cfg.Cache.DetailTTL,
			NutrientMode:   cfg.Feed.NutrientMode,
			RoundingMethod: cfg.Feed.RoundingMethod,
			SearchDebug:    cfg.Matching.EnableDebugLogging,
		})

	// HTTP delivery
	handler := httpDelivery.NewHandler(menuService)
	router := httpDelivery.SetupRouter(cfg, handler, log)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server exited")
}
