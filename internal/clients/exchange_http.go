package clients

import (
	"context"
	"errors"
	"math/big"
	"time"
)

// HTTPExchange adapts the swap exchange endpoint to ExchangeClient.
type HTTPExchange struct {
	rpc        *rpcClient
	exchangeID string
}

// NewHTTPExchange builds an exchange client for the swap endpoint identified
// by exchangeID, reachable through the gateway at baseURL.
func NewHTTPExchange(baseURL, exchangeID string) *HTTPExchange {
	return &HTTPExchange{
		rpc:        newRPCClient(baseURL, "exchange:"+exchangeID),
		exchangeID: exchangeID,
	}
}

func mapSwapErr(err error) error {
	var app *errApp
	if errors.As(err, &app) {
		return &SwapError{Reason: app.reason}
	}
	return err
}

func (e *HTTPExchange) receiptCall(ctx context.Context, method string, args []any) (*big.Int, error) {
	out := new(big.Int)
	if err := e.rpc.call(ctx, e.exchangeID, method, args, out); err != nil {
		return nil, mapSwapErr(err)
	}
	return out, nil
}

func (e *HTTPExchange) GetPair(ctx context.Context, token0, token1 string) (*PairInfo, error) {
	// The exchange answers null for an unknown tuple; that decodes into a
	// nil pointer, which is the no-pair signal.
	var out *PairInfo
	if err := e.rpc.call(ctx, e.exchangeID, "getPair", []any{token0, token1}, &out); err != nil {
		return nil, mapSwapErr(err)
	}
	return out, nil
}

func (e *HTTPExchange) SwapExactIn(ctx context.Context, amountIn, minOut *big.Int, path []string, to string, deadline time.Time) (*big.Int, error) {
	return e.receiptCall(ctx, "swapExactTokensForTokens",
		[]any{amountIn, minOut, path, to, deadline.Unix()})
}

func (e *HTTPExchange) SwapExactOut(ctx context.Context, amountOut, maxIn *big.Int, path []string, to string, deadline time.Time) (*big.Int, error) {
	return e.receiptCall(ctx, "swapTokensForExactTokens",
		[]any{amountOut, maxIn, path, to, deadline.Unix()})
}

func (e *HTTPExchange) Deposit(ctx context.Context, token string, amount *big.Int) (*big.Int, error) {
	return e.receiptCall(ctx, "deposit", []any{token, amount})
}

func (e *HTTPExchange) Withdraw(ctx context.Context, token string, amount *big.Int) (*big.Int, error) {
	return e.receiptCall(ctx, "withdraw", []any{token, amount})
}

func (e *HTTPExchange) Transfer(ctx context.Context, token, to string, amount *big.Int) (bool, error) {
	var out bool
	if err := e.rpc.call(ctx, e.exchangeID, "transfer", []any{token, to, amount}, &out); err != nil {
		return false, mapSwapErr(err)
	}
	return out, nil
}

func (e *HTTPExchange) Approve(ctx context.Context, token, spender string, amount *big.Int) (bool, error) {
	var out bool
	if err := e.rpc.call(ctx, e.exchangeID, "approve", []any{token, spender, amount}, &out); err != nil {
		return false, mapSwapErr(err)
	}
	return out, nil
}

func (e *HTTPExchange) BalanceOf(ctx context.Context, token, owner string) (*big.Int, error) {
	return e.receiptCall(ctx, "balanceOf", []any{token, owner})
}

func (e *HTTPExchange) Decimals(ctx context.Context, token string) (uint8, error) {
	var out uint8
	if err := e.rpc.call(ctx, e.exchangeID, "decimals", []any{token}, &out); err != nil {
		return 0, mapSwapErr(err)
	}
	return out, nil
}
