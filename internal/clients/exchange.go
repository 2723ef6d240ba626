package clients

import (
	"context"
	"math/big"
	"time"
)

// PairInfo is the live state of a trading pair as reported by the exchange.
// Reserves are in each token's native unit.
type PairInfo struct {
	Token0   string   `json:"token0"`
	Token1   string   `json:"token1"`
	Reserve0 *big.Int `json:"reserve0"`
	Reserve1 *big.Int `json:"reserve1"`
}

// SwapError is an application-level rejection from the exchange, carrying
// its reason string (slippage exceeded, deadline passed, ...).
type SwapError struct {
	Reason string
}

func (e *SwapError) Error() string {
	return "exchange rejected: " + e.Reason
}

// ExchangeClient is the swap-exchange contract the engine consumes.
//
// GetPair returns nil (not an error) when no pair exists for the tuple.
// Swap calls return the settled counter-amount; after the deadline the
// exchange must reject the trade rather than execute at a stale price.
type ExchangeClient interface {
	GetPair(ctx context.Context, token0, token1 string) (*PairInfo, error)
	SwapExactIn(ctx context.Context, amountIn, minOut *big.Int, path []string, to string, deadline time.Time) (*big.Int, error)
	SwapExactOut(ctx context.Context, amountOut, maxIn *big.Int, path []string, to string, deadline time.Time) (*big.Int, error)

	Deposit(ctx context.Context, token string, amount *big.Int) (*big.Int, error)
	Withdraw(ctx context.Context, token string, amount *big.Int) (*big.Int, error)
	Transfer(ctx context.Context, token, to string, amount *big.Int) (bool, error)
	Approve(ctx context.Context, token, spender string, amount *big.Int) (bool, error)

	BalanceOf(ctx context.Context, token, owner string) (*big.Int, error)
	Decimals(ctx context.Context, token string) (uint8, error)
}
