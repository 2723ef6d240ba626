// Package service is the caller-facing facade: order submission, treasury
// operations, and read-only queries. Every mutating operation is gated by
// the guard before any collaborator call; read-only price and balance
// queries are open.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/shopspring/decimal"

	"dexbot/internal/clients"
	"dexbot/internal/domain"
	"dexbot/internal/executor"
	"dexbot/internal/pricing"
	"dexbot/internal/scheduler"
)

// Service wires the guard, executor, scheduler and collaborator clients
// behind one API.
type Service struct {
	guard    Guard
	exec     executor.Executor
	sched    *scheduler.Scheduler
	oracle   *pricing.Oracle
	state    *domain.AppState
	exchange clients.ExchangeClient
	ledgers  map[domain.Currency]clients.LedgerClient

	marketTolerance decimal.Decimal
}

func New(
	guard Guard,
	exec executor.Executor,
	sched *scheduler.Scheduler,
	oracle *pricing.Oracle,
	state *domain.AppState,
	exchange clients.ExchangeClient,
	ledgers map[domain.Currency]clients.LedgerClient,
	marketTolerance decimal.Decimal,
) *Service {
	return &Service{
		guard:           guard,
		exec:            exec,
		sched:           sched,
		oracle:          oracle,
		state:           state,
		exchange:        exchange,
		ledgers:         ledgers,
		marketTolerance: marketTolerance,
	}
}

// Submit accepts a new order. A market order settles synchronously and
// returns no handle, since it has no pending identity. A limit order
// registers with the scheduler and returns the task id for future
// cancellation.
func (s *Service) Submit(ctx context.Context, caller string, order domain.Order) (string, error) {
	if err := s.guard.Check(caller); err != nil {
		return "", err
	}
	if err := order.Validate(); err != nil {
		return "", err
	}

	if order.Market != nil {
		if _, err := s.exec.Execute(ctx, *order.Market, s.marketTolerance); err != nil {
			return "", err
		}
		return "", nil
	}
	return s.sched.Enqueue(ctx, *order.Limit)
}

// CancelOrder removes a pending limit order by its task id.
func (s *Service) CancelOrder(ctx context.Context, caller, taskID string) error {
	if err := s.guard.Check(caller); err != nil {
		return err
	}
	return s.sched.Cancel(ctx, taskID)
}

// Deposit approves the exchange on the token ledger, then moves the amount
// into the exchange balance.
func (s *Service) Deposit(ctx context.Context, caller string, c domain.Currency, amount *big.Int) (*big.Int, error) {
	if err := s.guard.Check(caller); err != nil {
		return nil, err
	}
	ledger, token, err := s.ledgerFor(c)
	if err != nil {
		return nil, err
	}
	if _, err := ledger.Approve(ctx, s.state.Exchange, amount); err != nil {
		return nil, fmt.Errorf("approve %s deposit: %w", c, err)
	}
	receipt, err := s.exchange.Deposit(ctx, token, amount)
	if err != nil {
		return nil, fmt.Errorf("deposit %s: %w", c, err)
	}
	slog.Info("deposited", slog.String("currency", string(c)), slog.String("amount", amount.String()))
	return receipt, nil
}

// Withdraw moves the amount from the exchange balance back to the ledger.
func (s *Service) Withdraw(ctx context.Context, caller string, c domain.Currency, amount *big.Int) (*big.Int, error) {
	if err := s.guard.Check(caller); err != nil {
		return nil, err
	}
	_, token, err := s.ledgerFor(c)
	if err != nil {
		return nil, err
	}
	receipt, err := s.exchange.Withdraw(ctx, token, amount)
	if err != nil {
		return nil, fmt.Errorf("withdraw %s: %w", c, err)
	}
	slog.Info("withdrawn", slog.String("currency", string(c)), slog.String("amount", amount.String()))
	return receipt, nil
}

// TransferLedger sends tokens from the engine's ledger balance to a
// recipient.
func (s *Service) TransferLedger(ctx context.Context, caller string, c domain.Currency, to string, amount *big.Int) (*big.Int, error) {
	if err := s.guard.Check(caller); err != nil {
		return nil, err
	}
	ledger, _, err := s.ledgerFor(c)
	if err != nil {
		return nil, err
	}
	receipt, err := ledger.Transfer(ctx, to, amount)
	if err != nil {
		return nil, fmt.Errorf("transfer %s to %s: %w", c, to, err)
	}
	return receipt, nil
}

// Approve lets a spender move the engine's ledger balance.
func (s *Service) Approve(ctx context.Context, caller string, c domain.Currency, spender string, amount *big.Int) (*big.Int, error) {
	if err := s.guard.Check(caller); err != nil {
		return nil, err
	}
	ledger, _, err := s.ledgerFor(c)
	if err != nil {
		return nil, err
	}
	receipt, err := ledger.Approve(ctx, spender, amount)
	if err != nil {
		return nil, fmt.Errorf("approve %s for %s: %w", c, spender, err)
	}
	return receipt, nil
}

// Mint creates tokens on ledgers that support it.
func (s *Service) Mint(ctx context.Context, caller string, c domain.Currency, to string, amount *big.Int) (*big.Int, error) {
	if err := s.guard.Check(caller); err != nil {
		return nil, err
	}
	ledger, _, err := s.ledgerFor(c)
	if err != nil {
		return nil, err
	}
	receipt, err := ledger.Mint(ctx, to, amount)
	if err != nil {
		return nil, fmt.Errorf("mint %s: %w", c, err)
	}
	return receipt, nil
}

// Burn destroys tokens on ledgers that support it.
func (s *Service) Burn(ctx context.Context, caller string, c domain.Currency, from string, amount *big.Int) (*big.Int, error) {
	if err := s.guard.Check(caller); err != nil {
		return nil, err
	}
	ledger, _, err := s.ledgerFor(c)
	if err != nil {
		return nil, err
	}
	receipt, err := ledger.Burn(ctx, from, amount)
	if err != nil {
		return nil, fmt.Errorf("burn %s: %w", c, err)
	}
	return receipt, nil
}

// QuotePrice returns the current give-per-take rate for a pair. Read-only,
// not guarded.
func (s *Service) QuotePrice(ctx context.Context, give, take domain.Currency) (float64, error) {
	giveToken, err := s.state.TokenFor(give)
	if err != nil {
		return 0, err
	}
	takeToken, err := s.state.TokenFor(take)
	if err != nil {
		return 0, err
	}
	price, err := s.oracle.Price(ctx, giveToken, takeToken)
	if err != nil {
		return 0, err
	}
	return price.InexactFloat64(), nil
}

// Balance returns an owner's ledger balance. Read-only, not guarded.
func (s *Service) Balance(ctx context.Context, c domain.Currency, owner string) (*big.Int, error) {
	ledger, _, err := s.ledgerFor(c)
	if err != nil {
		return nil, err
	}
	return ledger.BalanceOf(ctx, owner)
}

func (s *Service) ledgerFor(c domain.Currency) (clients.LedgerClient, string, error) {
	token, err := s.state.TokenFor(c)
	if err != nil {
		return nil, "", err
	}
	ledger, ok := s.ledgers[c]
	if !ok {
		return nil, "", fmt.Errorf("no ledger client for %s: %w", c, domain.ErrUnknownCurrency)
	}
	return ledger, token, nil
}
