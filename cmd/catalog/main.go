package main

import (
	"fmt"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"ShopFront/internal/catalog"
	"ShopFront/internal/config"
	"ShopFront/pkg/kit"
)

const service = "catalog"

func main() {
	cfg, err := config.Load(getenv("CONFIG_FILE", "configs/config.yaml"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := kit.NewLogger(service, cfg.Log.Level)
	defer func() { _ = logger.Sync() }()

	logger.Info("configuration loaded", zap.String("config", cfg.String()))

	registry := prometheus.NewRegistry()
	store := catalog.NewFileStore(cfg.Data.Dir)

	s := &catalog.Server{Store: store, Log: logger}
	h := catalog.NewHandler(s, catalog.HTTPDeps{
		Log:      logger,
		Service:  service,
		Registry: registry,

		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,

		StaticDir:         cfg.Static.Dir,
		SubmitLimitPerMin: cfg.Submit.LimitPerMin,
	})

	timeouts := kit.ServerTimeouts{
		Read:       cfg.Server.Timeout.Read,
		Write:      cfg.Server.Timeout.Write,
		Idle:       cfg.Server.Timeout.Idle,
		ReadHeader: cfg.Server.Timeout.ReadHeader,
	}

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	if err := kit.RunHTTPServer(addr, h, timeouts, logger); err != nil {
		logger.Fatal("http server stopped", zap.Error(err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
