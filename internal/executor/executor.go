// Package executor settles market orders against the exchange.
package executor

import (
	"context"
	"math/big"

	"github.com/shopspring/decimal"

	"dexbot/internal/domain"
)

// Tolerance presets. An unconditional market order accepts the looser
// bound; an order that has just satisfied a limit condition already waited
// for favorable pricing and can afford less slippage.
var (
	DefaultMarketTolerance    = decimal.RequireFromString("0.99")
	DefaultTriggeredTolerance = decimal.RequireFromString("0.995")
)

// Executor executes a market order once, at the current price, within the
// given slippage tolerance, and returns the settled counter-amount.
//
// Not idempotent: calling twice executes two trades. Never retries; retry
// policy belongs to the caller (the scheduler retries limit orders, a bare
// market order is not retried at all).
type Executor interface {
	Execute(ctx context.Context, order domain.MarketOrder, tolerance decimal.Decimal) (*big.Int, error)
}
