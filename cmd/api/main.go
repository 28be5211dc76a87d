package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/porsenia/sportreg/internal/config"
	"github.com/porsenia/sportreg/internal/db"
	httpx "github.com/porsenia/sportreg/internal/http"
	"github.com/porsenia/sportreg/internal/ledger"
	"github.com/porsenia/sportreg/internal/observability"
	memorystore "github.com/porsenia/sportreg/internal/store/memory"
	postgresstore "github.com/porsenia/sportreg/internal/store/postgres"
	redisstore "github.com/porsenia/sportreg/internal/store/redis"
)

func main() {
	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)

	// tracing (optional in dev: empty endpoint still points at localhost)
	shutdownTracer, err := observability.InitTracer(context.Background(), "sportreg", cfg.OTLPEndpoint)

	if err != nil {
		log.Warn("tracer init failed, continuing without traces", "err", err)
		shutdownTracer = func(context.Context) error { return nil }
	}

	// metrics
	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(collectors.NewGoCollector())
	prom := observability.NewProm(promRegistry)

	// pick the progress store backend
	var (
		store     ledger.Store
		storePing func(context.Context) error
	)

	switch cfg.Backend {
	case "redis":
		rs := redisstore.New(redisstore.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.RedisTTL,
		}, prom)
		defer rs.Close()

		store = rs
		storePing = rs.Ping

	case "postgres":
		pool, err := db.NewPool(cfg.DBURL)

		if err != nil {
			log.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		ps := postgresstore.New(pool, prom)

		ctx, cancel := config.WithTimeout(5 * time.Second)
		err = ps.Migrate(ctx)
		cancel()

		if err != nil {
			log.Error("store migration failed", "err", err)
			os.Exit(1)
		}

		store = ps
		storePing = ps.Ping

	default:
		store = memorystore.New()
	}

	led := ledger.New(store, log, prom)

	// set up routers with the log
	router := httpx.NewRouter(log, cfg, httpx.Deps{
		Ledger:       led,
		Prom:         prom,
		PromRegistry: promRegistry,
		StorePing:    storePing,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "backend", cfg.Backend)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "err", err)
		}

		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
