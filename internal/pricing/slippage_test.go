package pricing

import (
	"errors"
	"math/big"
	"testing"

	"github.com/shopspring/decimal"

	"dexbot/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBoundedCounterAmountGiveExact(t *testing.T) {
	tests := []struct {
		name      string
		amount    int64
		price     string
		tolerance string
		want      int64
	}{
		// give 1000 at 2 give-per-take: naive take is 500, bound 495.
		{"two give per take", 1000, "2", "0.99", 495},
		{"full tolerance keeps naive", 1000, "2", "1", 500},
		{"fractional result floors", 1000, "4", "0.99", 247},
		{"sub-unit price", 100, "0.5", "0.99", 198},
		{"zero amount", 0, "2", "0.99", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := domain.OrderDirective{Kind: domain.GiveExact, Amount: big.NewInt(tt.amount)}
			got, err := BoundedCounterAmount(d, dec(tt.price), dec(tt.tolerance))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Int64() != tt.want {
				t.Errorf("minimum take = %s, want %d", got, tt.want)
			}
		})
	}
}

func TestBoundedCounterAmountTakeExact(t *testing.T) {
	tests := []struct {
		name      string
		amount    int64
		price     string
		tolerance string
		want      int64
	}{
		// take 500 at 2 give-per-take: naive give is 1000, bound ceils up.
		{"two give per take", 500, "2", "0.99", 1011},
		{"full tolerance keeps naive", 500, "2", "1", 1000},
		{"fractional result ceils", 100, "3", "0.99", 304},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := domain.OrderDirective{Kind: domain.TakeExact, Amount: big.NewInt(tt.amount)}
			got, err := BoundedCounterAmount(d, dec(tt.price), dec(tt.tolerance))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Int64() != tt.want {
				t.Errorf("maximum give = %s, want %d", got, tt.want)
			}
		})
	}
}

// The minimum never exceeds the naive amount and the maximum never falls
// below it: rounding always relaxes the bound.
func TestBoundedCounterAmountRoundingDirection(t *testing.T) {
	price := dec("1.37")
	tolerance := dec("0.97")

	for _, amount := range []int64{1, 7, 99, 1000, 123457} {
		give := domain.OrderDirective{Kind: domain.GiveExact, Amount: big.NewInt(amount)}
		minTake, err := BoundedCounterAmount(give, price, tolerance)
		if err != nil {
			t.Fatalf("give-exact %d: %v", amount, err)
		}
		naiveTake := decimal.NewFromInt(amount).Div(price)
		if decimal.NewFromBigInt(minTake, 0).GreaterThan(naiveTake) {
			t.Errorf("amount %d: minimum %s exceeds naive take %s", amount, minTake, naiveTake)
		}

		take := domain.OrderDirective{Kind: domain.TakeExact, Amount: big.NewInt(amount)}
		maxGive, err := BoundedCounterAmount(take, price, tolerance)
		if err != nil {
			t.Fatalf("take-exact %d: %v", amount, err)
		}
		naiveGive := decimal.NewFromInt(amount).Mul(price)
		if decimal.NewFromBigInt(maxGive, 0).LessThan(naiveGive) {
			t.Errorf("amount %d: maximum %s below naive give %s", amount, maxGive, naiveGive)
		}
	}
}

func TestBoundedCounterAmountRejects(t *testing.T) {
	valid := domain.OrderDirective{Kind: domain.GiveExact, Amount: big.NewInt(100)}

	tests := []struct {
		name      string
		directive domain.OrderDirective
		price     decimal.Decimal
		tolerance decimal.Decimal
		sentinel  error
	}{
		{"zero tolerance", valid, dec("2"), decimal.Zero, domain.ErrAmountOutOfRange},
		{"negative tolerance", valid, dec("2"), dec("-0.5"), domain.ErrAmountOutOfRange},
		{"tolerance above one", valid, dec("2"), dec("1.01"), domain.ErrAmountOutOfRange},
		{"zero price", valid, decimal.Zero, dec("0.99"), domain.ErrAmountOutOfRange},
		{"negative price", valid, dec("-2"), dec("0.99"), domain.ErrAmountOutOfRange},
		{
			"nil amount",
			domain.OrderDirective{Kind: domain.GiveExact},
			dec("2"), dec("0.99"), domain.ErrAmountOutOfRange,
		},
		{
			"negative amount",
			domain.OrderDirective{Kind: domain.TakeExact, Amount: big.NewInt(-10)},
			dec("2"), dec("0.99"), domain.ErrAmountOutOfRange,
		},
		{
			"unknown kind",
			domain.OrderDirective{Kind: 0, Amount: big.NewInt(10)},
			dec("2"), dec("0.99"), domain.ErrInvalidOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BoundedCounterAmount(tt.directive, tt.price, tt.tolerance)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v does not match sentinel %v", err, tt.sentinel)
			}
		})
	}
}
