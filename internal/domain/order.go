package domain

import (
	"fmt"
	"math/big"
)

// Currency identifies a supported asset. The set is closed and known at
// build time; each currency maps to exactly one token ledger.
type Currency string

const (
	CurrencyXTC  Currency = "XTC"
	CurrencyWICP Currency = "WICP"
)

// ParseCurrency converts a caller-supplied symbol into a Currency.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(s)
	if !c.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownCurrency)
	}
	return c, nil
}

// Valid reports whether the currency is one of the supported assets.
func (c Currency) Valid() bool {
	return c == CurrencyXTC || c == CurrencyWICP
}

// DirectiveKind selects which side of a swap the caller fixes.
type DirectiveKind uint8

const (
	// GiveExact fixes the amount offered; the counter-amount is a
	// minimum floor on what must be received.
	GiveExact DirectiveKind = iota + 1
	// TakeExact fixes the amount desired; the counter-amount is a
	// maximum ceiling on what may be spent.
	TakeExact
)

func (k DirectiveKind) String() string {
	switch k {
	case GiveExact:
		return "GIVE_EXACT"
	case TakeExact:
		return "TAKE_EXACT"
	default:
		return "UNKNOWN"
	}
}

// OrderDirective is the caller's quantity intent. Amount is in the asset's
// native unit and must be non-negative.
type OrderDirective struct {
	Kind   DirectiveKind `json:"kind"`
	Amount *big.Int      `json:"amount"`
}

// MarketOrder converts Give into Take at the current price, within a
// slippage bound. Immutable; consumed exactly once by the executor.
type MarketOrder struct {
	Give      Currency       `json:"give"`
	Take      Currency       `json:"take"`
	Directive OrderDirective `json:"directive"`
}

// Validate rejects orders the executor could never settle.
func (m MarketOrder) Validate() error {
	if !m.Give.Valid() {
		return fmt.Errorf("give %q: %w", m.Give, ErrUnknownCurrency)
	}
	if !m.Take.Valid() {
		return fmt.Errorf("take %q: %w", m.Take, ErrUnknownCurrency)
	}
	if m.Give == m.Take {
		return fmt.Errorf("give and take are both %s: %w", m.Give, ErrInvalidOrder)
	}
	if m.Directive.Kind != GiveExact && m.Directive.Kind != TakeExact {
		return fmt.Errorf("directive kind %d: %w", m.Directive.Kind, ErrInvalidOrder)
	}
	if m.Directive.Amount == nil || m.Directive.Amount.Sign() < 0 {
		return fmt.Errorf("directive amount must be a non-negative integer: %w", ErrInvalidOrder)
	}
	return nil
}

// ConditionKind selects the direction of a limit trigger.
type ConditionKind uint8

const (
	MoreThan ConditionKind = iota + 1
	LessThan
)

func (k ConditionKind) String() string {
	switch k {
	case MoreThan:
		return "MORE_THAN"
	case LessThan:
		return "LESS_THAN"
	default:
		return "UNKNOWN"
	}
}

// TargetPrice is a trigger condition over the give-per-take exchange rate.
type TargetPrice struct {
	Kind      ConditionKind `json:"kind"`
	Threshold float64       `json:"threshold"`
}

// Satisfied reports whether the observed give-per-take rate meets the
// condition. The comparison is non-strict: boundary-equal triggers.
func (tp TargetPrice) Satisfied(observed float64) bool {
	switch tp.Kind {
	case MoreThan:
		return observed >= tp.Threshold
	case LessThan:
		return observed <= tp.Threshold
	default:
		return false
	}
}

// LimitOrder defers a market order until its target price condition holds.
// The value never mutates: each re-check either consumes it or re-enqueues
// it unchanged.
type LimitOrder struct {
	Target TargetPrice `json:"target"`
	Order  MarketOrder `json:"order"`
}

// Order is a caller submission. Exactly one of Market or Limit must be set.
type Order struct {
	Market *MarketOrder `json:"market,omitempty"`
	Limit  *LimitOrder  `json:"limit,omitempty"`
}

// Validate checks the exactly-one-variant rule and the inner order.
func (o Order) Validate() error {
	switch {
	case o.Market != nil && o.Limit == nil:
		return o.Market.Validate()
	case o.Limit != nil && o.Market == nil:
		return o.Limit.Order.Validate()
	default:
		return fmt.Errorf("exactly one of market or limit must be set: %w", ErrInvalidOrder)
	}
}
