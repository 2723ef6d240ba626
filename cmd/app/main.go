package main

import (
	"context"
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dexbot/internal/app"
)

func main() {
	go func() {
		// pprof only binds loopback; not exposed beyond the host.
		if err := http.ListenAndServe("localhost:6060", nil); err != nil {
			slog.Warn("pprof server stopped", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := app.Bootstrap(ctx)
	if err != nil {
		slog.Error("bootstrap failed", slog.Any("error", err))
		os.Exit(1)
	}
	defer engine.Close()

	tick := time.Duration(engine.Config.Scheduler.TickIntervalSec) * time.Second
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	slog.Info("⏱️ tick loop running", slog.Duration("interval", tick))

	for {
		select {
		case <-ctx.Done():
			slog.Info("shutdown signal received, draining")
			pending, err := engine.Scheduler.PendingCount(context.Background())
			if err == nil {
				slog.Info("👋 dexbot stopped", slog.Int("pending_orders", pending))
			} else {
				slog.Info("👋 dexbot stopped")
			}
			return
		case <-ticker.C:
			engine.Scheduler.OnTick(ctx)
		}
	}
}
