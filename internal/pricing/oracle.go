// Package pricing derives spot prices from live pair reserves and computes
// slippage-bounded counter-amounts for swaps.
//
// The single canonical price convention everywhere in the engine is
// give-per-take: how many give-units one take-unit costs. Callers must not
// invert it implicitly.
package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"dexbot/internal/clients"
	"dexbot/internal/domain"
)

// Oracle answers give-per-take spot prices for trading pairs. Read-only:
// safe to call concurrently and repeatedly, though the answer tracks the
// live reserves.
type Oracle struct {
	exchange clients.ExchangeClient
}

func NewOracle(exchange clients.ExchangeClient) *Oracle {
	return &Oracle{exchange: exchange}
}

// Price fetches both tokens' decimal precisions and the pair reserves, then
// returns normalized_give_reserve / normalized_take_reserve. Fails with
// domain.ErrPairNotFound when the exchange reports no pair for the tuple.
func (o *Oracle) Price(ctx context.Context, giveToken, takeToken string) (decimal.Decimal, error) {
	giveDecimals, err := o.exchange.Decimals(ctx, giveToken)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch decimals of %s: %w", giveToken, err)
	}
	takeDecimals, err := o.exchange.Decimals(ctx, takeToken)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch decimals of %s: %w", takeToken, err)
	}

	pair, err := o.exchange.GetPair(ctx, giveToken, takeToken)
	if err != nil {
		return decimal.Zero, fmt.Errorf("fetch pair %s/%s: %w", giveToken, takeToken, err)
	}
	if pair == nil {
		return decimal.Zero, fmt.Errorf("%s/%s: %w", giveToken, takeToken, domain.ErrPairNotFound)
	}

	giveReserve, takeReserve := pair.Reserve0, pair.Reserve1
	if pair.Token0 != giveToken {
		giveReserve, takeReserve = takeReserve, giveReserve
	}
	if giveReserve == nil || takeReserve == nil || takeReserve.Sign() == 0 {
		return decimal.Zero, fmt.Errorf("pair %s/%s has empty reserves: %w", giveToken, takeToken, domain.ErrPairNotFound)
	}

	// Normalize each reserve by its own precision so the ratio compares
	// real quantities, not raw native units.
	normGive := decimal.NewFromBigInt(giveReserve, -int32(giveDecimals))
	normTake := decimal.NewFromBigInt(takeReserve, -int32(takeDecimals))

	return normGive.Div(normTake), nil
}
