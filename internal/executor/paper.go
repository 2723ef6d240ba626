package executor

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"sync"

	"github.com/shopspring/decimal"

	"dexbot/internal/domain"
	"dexbot/internal/pricing"
)

// PaperExecutor fills orders virtually at the live oracle price. No custody
// moves and no swap call is issued; useful for dry-running order flow
// against real reserves.
type PaperExecutor struct {
	state  *domain.AppState
	oracle *pricing.Oracle

	mu    sync.Mutex
	fills int
}

func NewPaperExecutor(state *domain.AppState, oracle *pricing.Oracle) *PaperExecutor {
	return &PaperExecutor{state: state, oracle: oracle}
}

func (e *PaperExecutor) Execute(ctx context.Context, order domain.MarketOrder, tolerance decimal.Decimal) (*big.Int, error) {
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

	// Validate the bound exactly like the real path would, then settle at
	// the naive price (a paper fill has no adverse movement).
	if _, err := pricing.BoundedCounterAmount(order.Directive, price, tolerance); err != nil {
		return nil, fmt.Errorf("compute slippage bound: %w", err)
	}

	amount := decimal.NewFromBigInt(order.Directive.Amount, 0)
	var settled *big.Int
	switch order.Directive.Kind {
	case domain.GiveExact:
		settled = amount.Div(price).Floor().BigInt()
	case domain.TakeExact:
		settled = amount.Mul(price).Ceil().BigInt()
	}

	e.mu.Lock()
	e.fills++
	fills := e.fills
	e.mu.Unlock()

	slog.Info("PAPER FILL",
		slog.String("give", string(order.Give)),
		slog.String("take", string(order.Take)),
		slog.String("settled", settled.String()),
		slog.String("price", price.String()),
		slog.Int("total_fills", fills))

	return settled, nil
}

// Fills returns how many paper fills happened so far.
func (e *PaperExecutor) Fills() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fills
}
