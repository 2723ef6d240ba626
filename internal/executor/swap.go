package executor

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"dexbot/internal/clients"
	"dexbot/internal/domain"
	"dexbot/internal/pricing"
)

// swapDeadline is how long the exchange may hold a swap before it must
// reject the trade instead of executing at a stale price.
const swapDeadline = 30 * time.Second

// SwapExecutor settles orders against the live exchange. Side effect: moves
// asset custody between the engine and the exchange.
type SwapExecutor struct {
	state    *domain.AppState
	exchange clients.ExchangeClient
	oracle   *pricing.Oracle
	now      func() time.Time
}

func NewSwapExecutor(state *domain.AppState, exchange clients.ExchangeClient, oracle *pricing.Oracle) *SwapExecutor {
	return &SwapExecutor{
		state:    state,
		exchange: exchange,
		oracle:   oracle,
		now:      time.Now,
	}
}

func (e *SwapExecutor) Execute(ctx context.Context, order domain.MarketOrder, tolerance decimal.Decimal) (*big.Int, error) {
	if err := order.Validate(); err != nil {
		return nil, err
	}

	giveToken, err := e.state.TokenFor(order.Give)
	if err != nil {
		return nil, err
	}
	takeToken, err := e.state.TokenFor(order.Take)
	if err != nil {
		return nil, err
	}

	price, err := e.oracle.Price(ctx, giveToken, takeToken)
	if err != nil {
		return nil, fmt.Errorf("resolve price: %w", err)
	}

	bound, err := pricing.BoundedCounterAmount(order.Directive, price, tolerance)
	if err != nil {
		return nil, fmt.Errorf("compute slippage bound: %w", err)
	}

	deadline := e.now().Add(swapDeadline)
	path := []string{giveToken, takeToken}

	var settled *big.Int
	switch order.Directive.Kind {
	case domain.GiveExact:
		settled, err = e.exchange.SwapExactIn(ctx, order.Directive.Amount, bound, path, e.state.Self, deadline)
	case domain.TakeExact:
		settled, err = e.exchange.SwapExactOut(ctx, order.Directive.Amount, bound, path, e.state.Self, deadline)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: swap %s->%s: %w", domain.ErrSettlementFailed, order.Give, order.Take, err)
	}

	slog.Info("order settled",
		slog.String("give", string(order.Give)),
		slog.String("take", string(order.Take)),
		slog.String("directive", order.Directive.Kind.String()),
		slog.String("amount", order.Directive.Amount.String()),
		slog.String("settled", settled.String()),
		slog.String("price", price.String()))

	return settled, nil
}
