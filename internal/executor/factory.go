package executor

import (
	"fmt"
	"log/slog"
	"os"

	"dexbot/internal/clients"
	"dexbot/internal/domain"
	"dexbot/internal/pricing"
)

// Mode selects the execution backend.
type Mode string

const (
	ModePaper Mode = "PAPER"
	ModeReal  Mode = "REAL"
)

// New returns the executor for the configured trading mode.
func New(mode Mode, state *domain.AppState, exchange clients.ExchangeClient, oracle *pricing.Oracle) (Executor, error) {
	slog.Info("Initializing execution backend", "mode", mode)

	switch mode {
	case ModePaper:
		return NewPaperExecutor(state, oracle), nil

	case ModeReal:
		// SAFETY LATCH: real mode moves funds on its own.
		if os.Getenv("DEXBOT_CONFIRM_REAL") != "true" {
			return nil, fmt.Errorf("SAFETY_GUARD: real mode requires DEXBOT_CONFIRM_REAL=true")
		}
		slog.Info("🚨 REAL execution enabled: trades will move custody 🚨")
		return NewSwapExecutor(state, exchange, oracle), nil

	default:
		return nil, fmt.Errorf("unknown trading mode: %s", mode)
	}
}
