// Package clients holds the contracts for the engine's remote collaborators
// (token ledgers and the swap exchange) plus HTTP adapters for both.
//
// Error discipline: a collaborator can fail two ways. A transport failure
// (the call never completed) surfaces as a plain wrapped error. An
// application rejection (the collaborator answered with an error value)
// surfaces as a typed error (TxError for ledgers, *SwapError for the
// exchange) so callers can tell the two apart with errors.As.
package clients

import (
	"context"
	"math/big"
)

// TxError is the closed set of application-level rejections a token ledger
// can return.
type TxError string

const (
	TxInsufficientAllowance TxError = "InsufficientAllowance"
	TxInsufficientBalance   TxError = "InsufficientBalance"
	TxErrorOperationStyle   TxError = "ErrorOperationStyle"
	TxUnauthorized          TxError = "Unauthorized"
	TxLedgerTrap            TxError = "LedgerTrap"
	TxErrorTo               TxError = "ErrorTo"
	TxBlockUsed             TxError = "BlockUsed"
	TxAmountTooSmall        TxError = "AmountTooSmall"
	TxOther                 TxError = "Other"
)

func (e TxError) Error() string {
	return "ledger rejected: " + string(e)
}

// LedgerClient is the token-ledger contract the engine consumes. Mutating
// methods return the transaction index assigned by the ledger.
type LedgerClient interface {
	Transfer(ctx context.Context, to string, amount *big.Int) (*big.Int, error)
	TransferFrom(ctx context.Context, from, to string, amount *big.Int) (*big.Int, error)
	Approve(ctx context.Context, spender string, amount *big.Int) (*big.Int, error)
	Mint(ctx context.Context, to string, amount *big.Int) (*big.Int, error)
	Burn(ctx context.Context, from string, amount *big.Int) (*big.Int, error)

	BalanceOf(ctx context.Context, owner string) (*big.Int, error)
	Allowance(ctx context.Context, owner, spender string) (*big.Int, error)
	Decimals(ctx context.Context) (uint8, error)
	TotalSupply(ctx context.Context) (*big.Int, error)
}
