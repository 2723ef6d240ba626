// Package app wires the engine together at startup: config, persisted
// state, collaborator clients, executor, scheduler and facade.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"dexbot/internal/clients"
	"dexbot/internal/domain"
	"dexbot/internal/executor"
	"dexbot/internal/infra"
	"dexbot/internal/pricing"
	"dexbot/internal/scheduler"
	"dexbot/internal/service"
	"dexbot/internal/storage"
)

// stateKey is the metadata key holding the persisted application state.
const stateKey = "app_state"

// App is the fully wired engine.
type App struct {
	Config    *infra.Config
	Store     *storage.Store
	State     *domain.AppState
	Service   *service.Service
	Scheduler *scheduler.Scheduler
	Oracle    *pricing.Oracle
}

// Bootstrap performs the startup sequence and returns the wired engine.
func Bootstrap(ctx context.Context) (*App, error) {
	cfg, err := infra.LoadConfig(infra.ResolveConfigPath())
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	setLogLevel(cfg.Logging.Level)
	infra.PrintBanner(cfg)

	dbPath := cfg.Storage.DBPath
	if !filepath.IsAbs(dbPath) {
		dir := infra.GetWorkspaceDir()
		if err := infra.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("create workspace dir: %w", err)
		}
		dbPath = filepath.Join(dir, dbPath)
	}
	store, err := storage.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open task store: %w", err)
	}

	state, err := restoreOrInitState(ctx, store, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}

	exchange := clients.NewHTTPExchange(cfg.Exchange.Gateway, state.Exchange)
	ledgers := map[domain.Currency]clients.LedgerClient{
		domain.CurrencyXTC:  clients.NewHTTPLedger(cfg.Tokens.XTC.Gateway, state.XTCToken),
		domain.CurrencyWICP: clients.NewHTTPLedger(cfg.Tokens.WICP.Gateway, state.WICPToken),
	}

	oracle := pricing.NewOracle(exchange)

	exec, err := executor.New(executor.Mode(cfg.Trading.Mode), state, exchange, oracle)
	if err != nil {
		store.Close()
		return nil, err
	}

	sched := scheduler.New(store, oracle, exec, state, scheduler.Config{
		RecheckInterval:    time.Duration(cfg.Scheduler.RecheckIntervalSec) * time.Second,
		MaxPending:         cfg.Scheduler.MaxPending,
		TriggeredTolerance: decimal.NewFromFloat(cfg.Trading.TriggeredTolerance),
		ConsumeOnFailure:   *cfg.Scheduler.ConsumeOnFailure,
	})

	svc := service.New(
		service.NewControllerGuard(state),
		exec,
		sched,
		oracle,
		state,
		exchange,
		ledgers,
		decimal.NewFromFloat(cfg.Trading.MarketTolerance),
	)

	probeExchange(ctx, oracle, state)

	pending, err := sched.PendingCount(ctx)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("read pending orders: %w", err)
	}
	slog.Info("🚀 dexbot bootstrapped",
		slog.String("mode", cfg.Trading.Mode),
		slog.Int("pending_orders", pending))

	return &App{
		Config:    cfg,
		Store:     store,
		State:     state,
		Service:   svc,
		Scheduler: sched,
		Oracle:    oracle,
	}, nil
}

// Close releases the engine's resources.
func (a *App) Close() error {
	return a.Store.Close()
}

// restoreOrInitState loads the persisted application state, or persists the
// configured one on first deploy. After a restart the persisted record wins
// over edited YAML; drift is logged, not applied.
func restoreOrInitState(ctx context.Context, store *storage.Store, cfg *infra.Config) (*domain.AppState, error) {
	fromConfig := &domain.AppState{
		XTCToken:   cfg.Tokens.XTC.ID,
		WICPToken:  cfg.Tokens.WICP.ID,
		Exchange:   cfg.Exchange.ID,
		Controller: cfg.Identity.Controller,
		Self:       cfg.Identity.Self,
	}

	raw, err := store.GetMetadata(ctx, stateKey)
	if err != nil {
		return nil, fmt.Errorf("read persisted state: %w", err)
	}

	if raw == "" {
		if err := fromConfig.Validate(); err != nil {
			return nil, err
		}
		encoded, err := json.Marshal(fromConfig)
		if err != nil {
			return nil, fmt.Errorf("encode state: %w", err)
		}
		if err := store.UpsertMetadata(ctx, stateKey, string(encoded), time.Now().Unix()); err != nil {
			return nil, fmt.Errorf("persist state: %w", err)
		}
		slog.Info("application state initialized (first deploy)")
		return fromConfig, nil
	}

	var restored domain.AppState
	if err := json.Unmarshal([]byte(raw), &restored); err != nil {
		return nil, fmt.Errorf("persisted state is corrupt: %w", err)
	}
	if err := restored.Validate(); err != nil {
		return nil, fmt.Errorf("persisted state is corrupt: %w", err)
	}

	if restored != *fromConfig {
		slog.Warn("config drifted from persisted state; keeping persisted record",
			slog.String("persisted_exchange", restored.Exchange),
			slog.String("config_exchange", fromConfig.Exchange))
	}
	slog.Info("application state restored")
	return &restored, nil
}

// probeExchange checks the exchange is reachable before the tick loop
// starts, with exponential backoff. Best effort: a dead exchange at boot is
// logged, not fatal, since pending orders keep re-arming until it returns.
func probeExchange(ctx context.Context, oracle *pricing.Oracle, state *domain.AppState) {
	const attempts = 4
	for i := 0; i < attempts; i++ {
		_, err := oracle.Price(ctx, state.XTCToken, state.WICPToken)
		if err == nil {
			slog.Info("exchange reachable")
			return
		}
		delay := infra.CalculateBackoff(i)
		slog.Warn("exchange probe failed",
			slog.Int("attempt", i+1),
			slog.Duration("retry_in", delay),
			slog.Any("error", err))
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
	slog.Warn("exchange unreachable after probing; continuing anyway")
}

func setLogLevel(level string) {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetLogLoggerLevel(l)
}
