package domain

import "errors"

// Sentinel errors shared across the engine. Remote-call failures are wrapped
// with context and propagate verbatim to the entry point; these sentinels
// classify them for callers via errors.Is.
var (
	// ErrPairNotFound: the exchange reports no trading pair for the tuple.
	ErrPairNotFound = errors.New("no trading pair for currency tuple")

	// ErrAmountOutOfRange: slippage arithmetic produced a value outside the
	// representable amount range (bad tolerance, negative result).
	ErrAmountOutOfRange = errors.New("amount out of representable range")

	// ErrSettlementFailed: the swap call failed, either in transport or by
	// explicit exchange rejection. Never retried by the executor.
	ErrSettlementFailed = errors.New("settlement failed")

	// ErrSchedulerFull: the pending-order store reached its capacity bound.
	ErrSchedulerFull = errors.New("scheduler is full")

	// ErrTaskNotFound: no pending task with the given id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrAccessDenied: the caller does not hold the controller capability.
	ErrAccessDenied = errors.New("access denied")

	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidOrder    = errors.New("invalid order")
)
