package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fortunaspin/fortuna/internal/chain"
	"github.com/fortunaspin/fortuna/internal/config"
	"github.com/fortunaspin/fortuna/internal/database"
	"github.com/fortunaspin/fortuna/internal/database/postgres"
	"github.com/fortunaspin/fortuna/internal/domain"
	"github.com/fortunaspin/fortuna/internal/handler"
	"github.com/fortunaspin/fortuna/internal/ledger"
	"github.com/fortunaspin/fortuna/internal/notify"
	"github.com/fortunaspin/fortuna/internal/server"
	"github.com/fortunaspin/fortuna/internal/session"
	"github.com/fortunaspin/fortuna/internal/stats"
	"github.com/fortunaspin/fortuna/internal/wheel"
	"github.com/fortunaspin/fortuna/internal/worker"
)

// Pool sizing for the API workload.
const (
	dbMaxConnections = 10
	dbMaxIdleTime    = 5 * time.Minute
	dbMaxLifetime    = time.Hour
)

// shutdownTimeout bounds the whole graceful shutdown sequence.
const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile := initLogger(cfg)
	if logFile != nil {
		defer logFile.Close()
	}
	handler.InitValidator()

	connString := cfg.GetDBConnString()
	if err := database.Migrate(connString); err != nil {
		slog.Error("Migrations failed", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(connString, dbMaxConnections, dbMaxIdleTime, dbMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	resetLocation, err := time.LoadLocation(cfg.ResetTimezone)
	if err != nil {
		slog.Error("Invalid reset timezone", "zone", cfg.ResetTimezone, "error", err)
		os.Exit(1)
	}

	// Repositories
	statsRepo := postgres.NewStatsRepository(dbPool)
	ledgerStore := postgres.NewLedgerStore(dbPool)
	notifyRepo := postgres.NewNotifyRepository(dbPool)

	cachedLedger := ledger.NewCachedStore(ledgerStore, ledger.DefaultCacheSize, ledger.DefaultCacheTTL)

	// Chain gateway, only when commits are enabled
	var gateway chain.Gateway
	if cfg.ChainEnabled {
		client := chain.NewClient(cfg.ChainRPCURL, cfg.ContractAddress)
		gateway = chain.NewGateway(client, cfg.SpinFee)
		slog.Info("Chain commits enabled", "chain_id", cfg.ChainID, "contract", cfg.ContractAddress)
	}

	// Services
	statsService := stats.NewService(statsRepo)
	notifyService := notify.NewService(notifyRepo, cfg.NotifyTargetURL)

	var policy session.Policy
	if cfg.DailySpinCap > 0 {
		policy = session.NewDailyCappedPolicy(cachedLedger, cfg.DailySpinCap, resetLocation)
	}

	sessionService := session.NewService(
		domain.DefaultWheel(),
		wheel.NewSelector(),
		cachedLedger,
		statsService,
		gateway,
		policy,
		cfg.ChainEnabled,
	)

	// Background workers
	resetWorker := worker.NewDailyResetWorker(ledgerStore, resetLocation)
	resetWorker.Start()

	var reminderWorker *notify.ReminderWorker
	if cfg.NotifyEnabled {
		reminderWorker = notify.NewReminderWorker(notifyService, cfg.NotifyHourUTC)
		reminderWorker.Start()
		slog.Info("Spin reminders enabled", "hour_utc", cfg.NotifyHourUTC)
	}

	srv := server.NewServer(
		cfg.Port,
		cfg.APIKey,
		cfg.TrustedProxies,
		dbPool,
		sessionService,
		statsService,
		notifyService,
		gateway,
	)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	gracefulShutdown(ctx, srv, resetWorker, reminderWorker, sessionService)
}

// gracefulShutdown stops components in dependency order: the HTTP server
// first so no new spins start, then the timer workers, then the session
// service so in-flight settlements drain before the pool closes.
func gracefulShutdown(
	ctx context.Context,
	srv *server.Server,
	resetWorker *worker.DailyResetWorker,
	reminderWorker *notify.ReminderWorker,
	sessionService session.Service,
) {
	slog.Info("Shutting down")

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}

	if err := resetWorker.Shutdown(ctx); err != nil {
		slog.Error("Daily reset worker shutdown failed", "error", err)
	}

	if reminderWorker != nil {
		if err := reminderWorker.Shutdown(ctx); err != nil {
			slog.Error("Reminder worker shutdown failed", "error", err)
		}
	}

	if err := sessionService.Shutdown(ctx); err != nil {
		slog.Error("Session service shutdown failed", "error", err)
	}

	slog.Info("Shutdown complete")
}
