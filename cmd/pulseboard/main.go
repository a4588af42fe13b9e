package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulseboard-lab/pulseboard/internal/core/analytics"
	corecfg "github.com/pulseboard-lab/pulseboard/internal/core/config"
	"github.com/pulseboard-lab/pulseboard/internal/core/storage/postgres"
	"github.com/pulseboard-lab/pulseboard/internal/dashboard"
	"github.com/pulseboard-lab/pulseboard/internal/ingestion"
	"github.com/pulseboard-lab/pulseboard/internal/migrations"
	"github.com/pulseboard-lab/pulseboard/internal/server"
)

func main() {
	configPath := flag.String("config", "pulseboard.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	refreshInterval, err := time.ParseDuration(cfg.Analytics.RefreshInterval)
	if err != nil {
		slog.Error("Invalid refresh interval", "value", cfg.Analytics.RefreshInterval, "error", err)
		os.Exit(1)
	}

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	// 3. Initialize Analytics Engine
	builder := analytics.NewBuilder(
		cfg.Panels,
		cfg.Analytics.MonthLabeler(),
		cfg.Analytics.ColorAssigner(),
	)
	slog.Info("Analytics engine initialized",
		"panels", len(cfg.Panels),
		"color_mode", cfg.Analytics.ColorMode,
		"month_format", cfg.Analytics.MonthFormat,
	)

	// 4. Initialize Ingestion (write path)
	ingestionSvc := ingestion.NewService(dbAdapter, cfg.Server.MaxBodySizeMB)

	// 5. Initialize Dashboard (read path) and periodic refresher
	dashboardSvc := dashboard.NewService(dbAdapter, builder)
	refresher := dashboard.NewRefresher(refreshInterval, dashboardSvc)

	// 6. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter.DB(), cfg.Server.Mode)
	ingestionSvc.RegisterRoutes(srv.Engine)
	dashboardSvc.RegisterRoutes(srv.Engine)

	// 7. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := refresher.Start(ctx); err != nil {
			slog.Error("Refresher stopped with error", "error", err)
		}
	}()

	// Signal handler → triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
