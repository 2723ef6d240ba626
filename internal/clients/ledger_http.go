package clients

import (
	"context"
	"errors"
	"math/big"
)

// HTTPLedger adapts one token ledger endpoint to LedgerClient.
type HTTPLedger struct {
	rpc     *rpcClient
	tokenID string
}

// NewHTTPLedger builds a ledger client for the token identified by tokenID,
// reachable through the gateway at baseURL.
func NewHTTPLedger(baseURL, tokenID string) *HTTPLedger {
	return &HTTPLedger{
		rpc:     newRPCClient(baseURL, "ledger:"+tokenID),
		tokenID: tokenID,
	}
}

// mapLedgerErr turns an application rejection into the ledger's typed error
// and leaves transport failures untouched.
func mapLedgerErr(err error) error {
	var app *errApp
	if errors.As(err, &app) {
		return TxError(app.reason)
	}
	return err
}

func (l *HTTPLedger) txCall(ctx context.Context, method string, args []any) (*big.Int, error) {
	out := new(big.Int)
	if err := l.rpc.call(ctx, l.tokenID, method, args, out); err != nil {
		return nil, mapLedgerErr(err)
	}
	return out, nil
}

func (l *HTTPLedger) Transfer(ctx context.Context, to string, amount *big.Int) (*big.Int, error) {
	return l.txCall(ctx, "transfer", []any{to, amount})
}

func (l *HTTPLedger) TransferFrom(ctx context.Context, from, to string, amount *big.Int) (*big.Int, error) {
	return l.txCall(ctx, "transferFrom", []any{from, to, amount})
}

func (l *HTTPLedger) Approve(ctx context.Context, spender string, amount *big.Int) (*big.Int, error) {
	return l.txCall(ctx, "approve", []any{spender, amount})
}

func (l *HTTPLedger) Mint(ctx context.Context, to string, amount *big.Int) (*big.Int, error) {
	return l.txCall(ctx, "mint", []any{to, amount})
}

func (l *HTTPLedger) Burn(ctx context.Context, from string, amount *big.Int) (*big.Int, error) {
	return l.txCall(ctx, "burn", []any{from, amount})
}

func (l *HTTPLedger) BalanceOf(ctx context.Context, owner string) (*big.Int, error) {
	return l.txCall(ctx, "balanceOf", []any{owner})
}

func (l *HTTPLedger) Allowance(ctx context.Context, owner, spender string) (*big.Int, error) {
	return l.txCall(ctx, "allowance", []any{owner, spender})
}

func (l *HTTPLedger) Decimals(ctx context.Context) (uint8, error) {
	var out uint8
	if err := l.rpc.call(ctx, l.tokenID, "decimals", nil, &out); err != nil {
		return 0, mapLedgerErr(err)
	}
	return out, nil
}

func (l *HTTPLedger) TotalSupply(ctx context.Context) (*big.Int, error) {
	return l.txCall(ctx, "totalSupply", nil)
}
