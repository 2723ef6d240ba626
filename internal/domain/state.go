package domain

import "fmt"

// AppState is the process-wide configuration record: collaborator identities
// plus the privileged controller. Initialized from config on first deploy,
// persisted, and restored before first use after a restart. Components read
// it; only the bootstrap writes it.
type AppState struct {
	// XTCToken and WICPToken are the token ledger identities, used both to
	// address the ledgers and as path elements in swap calls.
	XTCToken  string `json:"xtc_token"`
	WICPToken string `json:"wicp_token"`

	// Exchange is the swap endpoint identity.
	Exchange string `json:"exchange"`

	// Controller is the only identity allowed to invoke privileged
	// operations.
	Controller string `json:"controller"`

	// Self is the identity trades settle to.
	Self string `json:"self"`
}

// TokenFor resolves a currency to its ledger identity. The mapping is a
// closed lookup; an unknown currency here means a corrupt payload upstream.
func (s *AppState) TokenFor(c Currency) (string, error) {
	switch c {
	case CurrencyXTC:
		return s.XTCToken, nil
	case CurrencyWICP:
		return s.WICPToken, nil
	default:
		return "", fmt.Errorf("%q: %w", c, ErrUnknownCurrency)
	}
}

// Validate rejects a state record with missing identities.
func (s *AppState) Validate() error {
	for name, v := range map[string]string{
		"xtc_token":  s.XTCToken,
		"wicp_token": s.WICPToken,
		"exchange":   s.Exchange,
		"controller": s.Controller,
		"self":       s.Self,
	} {
		if v == "" {
			return fmt.Errorf("app state: %s is empty", name)
		}
	}
	return nil
}
