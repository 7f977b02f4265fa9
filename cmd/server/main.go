package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/fintrack/fintrack-backend/internal/adapter/advisor"
	"github.com/fintrack/fintrack-backend/internal/adapter/httpapi"
	"github.com/fintrack/fintrack-backend/internal/adapter/repository/memory"
	"github.com/fintrack/fintrack-backend/internal/adapter/repository/postgres"
	"github.com/fintrack/fintrack-backend/internal/config"
	"github.com/fintrack/fintrack-backend/internal/domain"
	applog "github.com/fintrack/fintrack-backend/internal/log"
	"github.com/fintrack/fintrack-backend/internal/usecase/account"
	"github.com/fintrack/fintrack-backend/internal/usecase/insight"
	"github.com/fintrack/fintrack-backend/internal/usecase/ledger"
	"github.com/fintrack/fintrack-backend/internal/usecase/summary"
	"github.com/fintrack/fintrack-backend/internal/usecase/transfer"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := applog.New(applog.Config{})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Storage backend
	var (
		accountRepo domain.AccountRepository
		recordRepo  domain.RecordRepository
		ledgerStore domain.LedgerStore
	)
	switch cfg.DataBackend {
	case "postgres":
		db, err := postgres.NewDB(cfg.ConnectionString())
		if err != nil {
			logger.Error("failed to connect to database", applog.FieldError, err)
			os.Exit(1)
		}
		defer db.Close()

		if err := postgres.RunMigrations(db); err != nil {
			logger.Error("failed to run migrations", applog.FieldError, err)
			os.Exit(1)
		}

		accountRepo = postgres.NewAccountRepository(db)
		recordRepo = postgres.NewRecordRepository(db)
		ledgerStore = postgres.NewLedgerStore(db)
	case "memory":
		store := memory.New()
		accountRepo = store.Accounts()
		recordRepo = store.Records()
		ledgerStore = store
	}

	// 2. Advisory categorization (best-effort, optional)
	var suggester domain.CategorySuggester = advisor.Noop{}
	var generator insight.Generator
	if cfg.AdvisorEnabled {
		gemini, err := advisor.NewGemini(ctx, cfg.AdvisorModel, logger)
		if err != nil {
			logger.Warn("advisor unavailable, using fallback categories", applog.FieldError, err)
		} else {
			suggester = gemini
			generator = gemini
		}
	}

	// 3. Services
	accountService := account.NewService(accountRepo)
	ledgerService := ledger.NewService(ledgerStore, recordRepo, suggester, cfg.AdvisorTimeout, logger)
	transferService := transfer.NewService(ledgerStore, logger)
	summaryService := summary.NewService(recordRepo)
	insightService := insight.NewService(recordRepo, generator)

	// 4. HTTP server
	owners, err := cfg.TokenOwners()
	if err != nil {
		logger.Error("invalid token configuration", applog.FieldError, err)
		os.Exit(1)
	}

	api := httpapi.NewServer(
		accountService,
		ledgerService,
		transferService,
		summaryService,
		insightService,
		httpapi.NewTokenResolver(owners),
		logger,
	)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", "addr", server.Addr, "backend", cfg.DataBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
