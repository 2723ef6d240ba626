package pricing

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"dexbot/internal/domain"
)

var one = decimal.NewFromInt(1)

// BoundedCounterAmount computes the slippage bound for a swap at the given
// give-per-take price. Tolerance is the fraction of the naive counter-amount
// that must still be achievable, in (0, 1].
//
// GiveExact: minimum acceptable take amount, floor(give / price * tolerance).
// TakeExact: maximum acceptable give amount, ceil(take * price / tolerance).
//
// Minimums floor and maximums ceil. The asymmetry is load-bearing: both
// roundings relax the bound, never tighten it.
func BoundedCounterAmount(d domain.OrderDirective, price, tolerance decimal.Decimal) (*big.Int, error) {
	if !tolerance.IsPositive() || tolerance.GreaterThan(one) {
		return nil, fmt.Errorf("tolerance %s not in (0, 1]: %w", tolerance, domain.ErrAmountOutOfRange)
	}
	if !price.IsPositive() {
		return nil, fmt.Errorf("price %s not positive: %w", price, domain.ErrAmountOutOfRange)
	}
	if d.Amount == nil || d.Amount.Sign() < 0 {
		return nil, fmt.Errorf("directive amount missing or negative: %w", domain.ErrAmountOutOfRange)
	}

	amount := decimal.NewFromBigInt(d.Amount, 0)

	switch d.Kind {
	case domain.GiveExact:
		return amount.Div(price).Mul(tolerance).Floor().BigInt(), nil
	case domain.TakeExact:
		return amount.Mul(price).Div(tolerance).Ceil().BigInt(), nil
	default:
		return nil, fmt.Errorf("directive kind %d: %w", d.Kind, domain.ErrInvalidOrder)
	}
}
