package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FellowDalton/foodplan-ingest/internal/api"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/config"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/logger"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/store"
	"github.com/FellowDalton/foodplan-ingest/internal/pkg/store/xpgx"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	if err := logger.Init(cfg.LogLevel); err != nil {
		logger.Fatal(ctx, err)
	}

	pool, err := xpgx.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal(ctx, err)
	}
	defer pool.Close()

	svc, err := api.NewAPIService(store.NewStore(pool), cfg)
	if err != nil {
		logger.Fatal(ctx, err)
	}

	go svc.Serve(cfg.ListenAddr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(shutdownCtx, "shutdown: %s", err.Error())
	}
}
