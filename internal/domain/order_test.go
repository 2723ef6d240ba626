package domain

import (
	"errors"
	"math/big"
	"testing"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		input   string
		want    Currency
		wantErr bool
	}{
		{"XTC", CurrencyXTC, false},
		{"WICP", CurrencyWICP, false},
		{"xtc", "", true},
		{"BTC", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCurrency(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCurrency(%q): expected error, got %q", tt.input, got)
			} else if !errors.Is(err, ErrUnknownCurrency) {
				t.Errorf("ParseCurrency(%q): error %v is not ErrUnknownCurrency", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCurrency(%q): unexpected error %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCurrency(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTargetPriceSatisfied(t *testing.T) {
	tests := []struct {
		name     string
		target   TargetPrice
		observed float64
		want     bool
	}{
		{"more_than above", TargetPrice{MoreThan, 100.0}, 100.01, true},
		{"more_than boundary equal", TargetPrice{MoreThan, 100.0}, 100.0, true},
		{"more_than below", TargetPrice{MoreThan, 100.0}, 99.99, false},
		{"less_than below", TargetPrice{LessThan, 100.0}, 99.99, true},
		{"less_than boundary equal", TargetPrice{LessThan, 100.0}, 100.0, true},
		{"less_than above", TargetPrice{LessThan, 100.0}, 100.01, false},
		{"zero kind never satisfied", TargetPrice{0, 100.0}, 100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.target.Satisfied(tt.observed); got != tt.want {
				t.Errorf("Satisfied(%v) = %v, want %v", tt.observed, got, tt.want)
			}
		})
	}
}

func TestMarketOrderValidate(t *testing.T) {
	valid := MarketOrder{
		Give:      CurrencyXTC,
		Take:      CurrencyWICP,
		Directive: OrderDirective{Kind: GiveExact, Amount: big.NewInt(1000)},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid order rejected: %v", err)
	}

	tests := []struct {
		name     string
		mutate   func(m *MarketOrder)
		sentinel error
	}{
		{"unknown give", func(m *MarketOrder) { m.Give = "BTC" }, ErrUnknownCurrency},
		{"unknown take", func(m *MarketOrder) { m.Take = "ETH" }, ErrUnknownCurrency},
		{"same currency", func(m *MarketOrder) { m.Take = m.Give }, ErrInvalidOrder},
		{"zero directive kind", func(m *MarketOrder) { m.Directive.Kind = 0 }, ErrInvalidOrder},
		{"nil amount", func(m *MarketOrder) { m.Directive.Amount = nil }, ErrInvalidOrder},
		{"negative amount", func(m *MarketOrder) { m.Directive.Amount = big.NewInt(-1) }, ErrInvalidOrder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			err := m.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("error %v does not match sentinel %v", err, tt.sentinel)
			}
		})
	}

	// Zero amount is allowed; rejecting it is the exchange's call.
	zero := valid
	zero.Directive.Amount = big.NewInt(0)
	if err := zero.Validate(); err != nil {
		t.Errorf("zero amount rejected: %v", err)
	}
}

func TestOrderValidateExactlyOneVariant(t *testing.T) {
	market := &MarketOrder{
		Give:      CurrencyWICP,
		Take:      CurrencyXTC,
		Directive: OrderDirective{Kind: TakeExact, Amount: big.NewInt(5)},
	}
	limit := &LimitOrder{
		Target: TargetPrice{Kind: LessThan, Threshold: 2.5},
		Order:  *market,
	}

	tests := []struct {
		name    string
		order   Order
		wantErr bool
	}{
		{"market only", Order{Market: market}, false},
		{"limit only", Order{Limit: limit}, false},
		{"neither", Order{}, true},
		{"both", Order{Market: market, Limit: limit}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidOrder) {
				t.Errorf("expected ErrInvalidOrder, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAppStateTokenFor(t *testing.T) {
	state := &AppState{
		XTCToken:   "xtc-ledger",
		WICPToken:  "wicp-ledger",
		Exchange:   "exchange",
		Controller: "ctl",
		Self:       "self",
	}

	if tok, err := state.TokenFor(CurrencyXTC); err != nil || tok != "xtc-ledger" {
		t.Errorf("TokenFor(XTC) = %q, %v", tok, err)
	}
	if tok, err := state.TokenFor(CurrencyWICP); err != nil || tok != "wicp-ledger" {
		t.Errorf("TokenFor(WICP) = %q, %v", tok, err)
	}
	if _, err := state.TokenFor("DOGE"); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("TokenFor(DOGE) error = %v, want ErrUnknownCurrency", err)
	}
}

func TestAppStateValidate(t *testing.T) {
	state := AppState{
		XTCToken:   "a",
		WICPToken:  "b",
		Exchange:   "c",
		Controller: "d",
		Self:       "e",
	}
	if err := state.Validate(); err != nil {
		t.Fatalf("valid state rejected: %v", err)
	}

	missing := state
	missing.Controller = ""
	if err := missing.Validate(); err == nil {
		t.Error("state with empty controller accepted")
	}
}
