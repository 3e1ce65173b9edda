package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/XavierBriggs/Themis/adapters/balldontlie"
	"github.com/XavierBriggs/Themis/adapters/espn"
	"github.com/XavierBriggs/Themis/adapters/theoddsapi"
	"github.com/XavierBriggs/Themis/internal/aggregator"
	"github.com/XavierBriggs/Themis/internal/config"
	"github.com/XavierBriggs/Themis/internal/httpapi"
	"github.com/XavierBriggs/Themis/internal/progress"
	"github.com/XavierBriggs/Themis/internal/registry"
	"github.com/XavierBriggs/Themis/internal/scheduler"
	"github.com/XavierBriggs/Themis/internal/settle"
	"github.com/XavierBriggs/Themis/internal/store"
	"github.com/XavierBriggs/Themis/sports/basketball_nba"
	"github.com/XavierBriggs/Themis/sports/football_nfl"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx := context.Background()

	// Load configuration from environment
	cfg := config.Load()

	// Initialize Alexandria DB connection
	db, err := sql.Open("postgres", cfg.AlexandriaDSN)
	if err != nil {
		fmt.Printf("failed to connect to Alexandria DB: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	wagerStore := store.NewPostgresStore(db)
	if err := wagerStore.Ping(ctx); err != nil {
		fmt.Printf("failed to ping Alexandria DB: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Connected to Alexandria DB")

	// Initialize Redis connection
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		fmt.Printf("failed to connect to Redis: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Connected to Redis")

	// Initialize sport registry and register active sports
	sportRegistry := registry.NewSportRegistry()

	nbaModule := basketball_nba.NewModule()
	if overrides, err := config.LoadSportsFile(cfg.SportsFile); err != nil {
		fmt.Printf("⚠ sports file: %v (using defaults)\n", err)
	} else {
		applyNBAOverrides(nbaModule, overrides)
	}
	if err := sportRegistry.Register(nbaModule); err != nil {
		fmt.Printf("failed to register NBA module: %v\n", err)
		os.Exit(1)
	}
	if err := sportRegistry.Register(football_nfl.NewModule()); err != nil {
		fmt.Printf("failed to register NFL module: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Registered %d sport(s)\n", sportRegistry.Count())

	// Initialize provider adapters and the aggregator
	oddsAPI := theoddsapi.NewClient(cfg.OddsAPIKey)
	agg := aggregator.New(sportRegistry, aggregator.NewRedisCache(redisClient))
	agg.RegisterAdapter(espn.NewClient())
	agg.RegisterAdapter(balldontlie.NewClient(cfg.BalldontlieKey))
	agg.RegisterAdapter(oddsAPI)

	fmt.Println("✓ Initialized provider adapters (espn, balldontlie, theoddsapi)")

	// Initialize evaluator and scheduler
	evaluator := settle.New(agg, sportRegistry)
	sched := scheduler.NewScheduler(
		wagerStore, evaluator, oddsAPI, redisClient,
		cfg.DefaultUserID, cfg.SettleInterval, cfg.CLVInterval,
	)
	sched.Start(ctx)

	// HTTP surface: slip import, live progress, health, metrics
	server := httpapi.NewServer(wagerStore, progress.New(agg), cfg.DefaultUserID)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: server.Router(),
	}
	go func() {
		fmt.Printf("✓ HTTP API listening on %s\n", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("http server error: %v\n", err)
		}
	}()

	fmt.Println("✓ Themis started - tracking wagers")
	fmt.Printf("  Settle interval: %v\n", cfg.SettleInterval)
	fmt.Printf("  CLV interval: %v\n", cfg.CLVInterval)
	fmt.Println()

	for _, sport := range sportRegistry.GetAll() {
		fmt.Printf("  [%s]\n", sport.GetDisplayName())
		fmt.Printf("    Providers: %v\n", sport.GetProviderChain())
		fmt.Printf("    Live TTL: %v\n", sport.GetSnapshotTTL(true))
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	fmt.Println("\n✓ Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Printf("✗ HTTP shutdown error: %v\n", err)
	}
	sched.Stop()

	fmt.Println("✓ Themis stopped")
}

// applyNBAOverrides merges on-disk tuning into the NBA module config.
func applyNBAOverrides(module *basketball_nba.Module, file *config.SportsFile) {
	override, ok := file.Sports["basketball_nba"]
	if !ok {
		return
	}
	cfg := basketball_nba.DefaultConfig()
	if len(override.ProviderChain) > 0 {
		cfg.ProviderChain = override.ProviderChain
	}
	if override.LiveSnapshotTTL > 0 {
		cfg.LiveSnapshotTTL = override.LiveSnapshotTTL
	}
	if override.IdleSnapshotTTL > 0 {
		cfg.IdleSnapshotTTL = override.IdleSnapshotTTL
	}
	*module = *basketball_nba.NewModuleWithConfig(cfg)
}
