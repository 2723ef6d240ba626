// Package scheduler owns pending limit orders: it re-evaluates each one's
// trigger condition on every tick and hands satisfied orders to the
// executor.
//
// Lifecycle per order:
//
//	PendingEvaluation -> Triggered -> Executing -> Settled | Failed
//	PendingEvaluation -> PendingEvaluation (re-armed, fixed delay)
//
// A task is consumed the moment it is dequeued; re-arming inserts a fresh
// task (new id) with the identical payload. The pending store is SQLite, so
// orders survive a process restart.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"dexbot/internal/domain"
	"dexbot/internal/executor"
	"dexbot/internal/pricing"
	"dexbot/internal/storage"
)

// Config tunes the scheduler.
type Config struct {
	// RecheckInterval is the fixed delay before a non-triggered order is
	// evaluated again.
	RecheckInterval time.Duration

	// MaxPending bounds the task store; Enqueue fails with
	// domain.ErrSchedulerFull beyond it.
	MaxPending int

	// TriggeredTolerance is the slippage tolerance applied to orders that
	// just satisfied their limit condition.
	TriggeredTolerance decimal.Decimal

	// ConsumeOnFailure controls what happens when a triggered order fails
	// to settle: true terminates the order (the settled default), false
	// re-arms it like a non-trigger.
	ConsumeOnFailure bool
}

// Scheduler drives the limit-order state machine. All mutation of the task
// store flows through it, under one mutex: no two ticks interleave, and an
// enqueue or cancel never races a drain.
type Scheduler struct {
	store  *storage.Store
	oracle *pricing.Oracle
	exec   executor.Executor
	state  *domain.AppState
	cfg    Config

	mu  sync.Mutex
	now func() time.Time
}

func New(store *storage.Store, oracle *pricing.Oracle, exec executor.Executor, state *domain.AppState, cfg Config) *Scheduler {
	return &Scheduler{
		store:  store,
		oracle: oracle,
		exec:   exec,
		state:  state,
		cfg:    cfg,
		now:    time.Now,
	}
}

// Enqueue registers a limit order for evaluation starting at the next tick
// (zero initial delay). Each registration fires exactly once; re-arming is
// an explicit re-enqueue, not a repeating timer.
func (s *Scheduler) Enqueue(ctx context.Context, order domain.LimitOrder) (string, error) {
	if err := order.Order.Validate(); err != nil {
		return "", err
	}

	payload, err := json.Marshal(order)
	if err != nil {
		return "", fmt.Errorf("encode limit order: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.store.CountTasks(ctx)
	if err != nil {
		return "", fmt.Errorf("count pending tasks: %w", err)
	}
	if s.cfg.MaxPending > 0 && count >= s.cfg.MaxPending {
		return "", fmt.Errorf("%d pending: %w", count, domain.ErrSchedulerFull)
	}

	now := s.now()
	row := storage.TaskRow{
		ID:          uuid.NewString(),
		Payload:     payload,
		NextFireAt:  now.Unix(),
		IntervalSec: int64(s.cfg.RecheckInterval / time.Second),
		CreatedAt:   now.Unix(),
	}
	if err := s.store.InsertTask(ctx, row); err != nil {
		return "", fmt.Errorf("persist limit order: %w", err)
	}

	slog.Info("limit order enqueued",
		slog.String("task", row.ID),
		slog.String("give", string(order.Order.Give)),
		slog.String("take", string(order.Order.Take)),
		slog.String("condition", order.Target.Kind.String()),
		slog.Float64("threshold", order.Target.Threshold))

	return row.ID, nil
}

// Cancel removes a pending order. It wins only if observed before the task
// is dequeued for evaluation; the mutex makes that ordering exact.
func (s *Scheduler) Cancel(ctx context.Context, taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.store.DeleteTask(ctx, taskID)
	if err != nil {
		return fmt.Errorf("cancel task: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%s: %w", taskID, domain.ErrTaskNotFound)
	}
	slog.Info("limit order cancelled", slog.String("task", taskID))
	return nil
}

// PendingCount reports how many orders are waiting.
func (s *Scheduler) PendingCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.CountTasks(ctx)
}

// OnTick drains every due task to completion. The mutex is held for the
// whole drain, so a tick that fires while the previous one is still working
// simply waits: tick re-entrancy cannot happen. Tasks due in the same tick
// are evaluated sequentially and each re-fetches its own price.
func (s *Scheduler) OnTick(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	due, err := s.store.DueTasks(ctx, now.Unix())
	if err != nil {
		panic(fmt.Sprintf("PENDING_STORE_READ_FAILURE: %v", err))
	}

	for _, row := range due {
		s.evaluate(ctx, row, now)
	}
}

// evaluate runs one order's evaluate-or-reschedule sequence. The row is
// consumed first; whatever happens next either terminates the order or
// re-inserts the identical payload under a fresh id.
func (s *Scheduler) evaluate(ctx context.Context, row storage.TaskRow, now time.Time) {
	if _, err := s.store.DeleteTask(ctx, row.ID); err != nil {
		panic(fmt.Sprintf("PENDING_STORE_WRITE_FAILURE: %v", err))
	}

	var order domain.LimitOrder
	if err := json.Unmarshal(row.Payload, &order); err != nil {
		// A corrupt persisted payload is a programming error, not a
		// runtime condition. Halt loudly instead of dropping it.
		panic(fmt.Sprintf("MALFORMED_TASK_PAYLOAD %s: %v", row.ID, err))
	}

	giveToken, err := s.state.TokenFor(order.Order.Give)
	if err != nil {
		panic(fmt.Sprintf("MALFORMED_TASK_PAYLOAD %s: %v", row.ID, err))
	}
	takeToken, err := s.state.TokenFor(order.Order.Take)
	if err != nil {
		panic(fmt.Sprintf("MALFORMED_TASK_PAYLOAD %s: %v", row.ID, err))
	}

	price, err := s.oracle.Price(ctx, giveToken, takeToken)
	if err != nil {
		// Transient: retry the whole evaluate-and-maybe-execute
		// sequence on the next due tick.
		slog.Warn("price fetch failed, re-arming",
			slog.String("task", row.ID),
			slog.Any("error", err))
		s.rearm(ctx, row, now)
		return
	}

	observed := price.InexactFloat64()
	if !order.Target.Satisfied(observed) {
		s.rearm(ctx, row, now)
		return
	}

	slog.Info("limit condition satisfied",
		slog.String("task", row.ID),
		slog.Float64("observed", observed),
		slog.String("condition", order.Target.Kind.String()),
		slog.Float64("threshold", order.Target.Threshold))

	if _, err := s.exec.Execute(ctx, order.Order, s.cfg.TriggeredTolerance); err != nil {
		slog.Error("post-trigger settlement failed",
			slog.String("task", row.ID),
			slog.Any("error", err))
		if !s.cfg.ConsumeOnFailure {
			s.rearm(ctx, row, now)
		}
		return
	}
}

// rearm re-inserts the unchanged payload with a fresh id, due one recheck
// interval from now.
func (s *Scheduler) rearm(ctx context.Context, row storage.TaskRow, now time.Time) {
	next := storage.TaskRow{
		ID:          uuid.NewString(),
		Payload:     row.Payload,
		NextFireAt:  now.Add(time.Duration(row.IntervalSec) * time.Second).Unix(),
		IntervalSec: row.IntervalSec,
		CreatedAt:   row.CreatedAt,
	}
	if err := s.store.InsertTask(ctx, next); err != nil {
		panic(fmt.Sprintf("PENDING_STORE_WRITE_FAILURE: %v", err))
	}
}
