package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CoinCast/internal/assembler"
	"CoinCast/internal/collector"
	"CoinCast/internal/config"
	"CoinCast/internal/scheduler"
	"CoinCast/internal/server"
	"CoinCast/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CoinCast starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init storage
	sqlStore, err := store.Open(store.Options{
		Driver:       cfg.Database.Driver,
		SQLitePath:   cfg.Database.SQLitePath,
		PostgresDSN:  cfg.Database.PostgresDSN,
		QueryTimeout: cfg.Database.QueryTimeout,
	})
	if err != nil {
		log.Fatalf("[FATAL] open %s store: %v", cfg.Database.Driver, err)
	}
	log.Printf("[INFO] storage: %s", cfg.Database.Driver)

	var (
		st    store.Store = sqlStore
		cache scheduler.Refresher
	)
	if cfg.Cache.RedisAddr != "" {
		client, err := store.NewRedisClient(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			log.Printf("[WARN] redis unavailable, ticker cache disabled: %v", err)
		} else {
			cached := store.NewCachedStore(sqlStore, client, cfg.Cache.TickerTTL)
			st, cache = cached, cached
			log.Printf("[INFO] ticker cache: redis %s", cfg.Cache.RedisAddr)
		}
	}
	defer st.Close()

	// Init ingestion
	fetcher := collector.NewYahooFetcher(cfg.Ingest.Proxy, cfg.Ingest.SymbolMap)
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, st, cfg.Ingest.Tickers, cfg.Ingest.Range)

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, cache)
	if err := sched.RegisterAll(cfg.Ingest.DailyCron, cfg.Ingest.CacheCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if cfg.Ingest.RunOnStart {
		log.Println("[INFO] RUN_ON_START enabled, executing ingest now")
		go sched.RunIngestNow()
	}

	// Start HTTP server
	handler := server.NewHandler(assembler.NewService(st), st)
	srv := server.NewServer(cfg.Server.Addr, handler.Routes(), cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Println("[INFO] CoinCast is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	cancel()
	log.Println("[INFO] CoinCast stopped")
}
