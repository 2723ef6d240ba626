package service

import (
	"fmt"

	"dexbot/internal/domain"
)

// Guard gates privileged entry points.
type Guard interface {
	Check(caller string) error
}

// ControllerGuard admits only the controller recorded in the application
// state.
type ControllerGuard struct {
	state *domain.AppState
}

func NewControllerGuard(state *domain.AppState) *ControllerGuard {
	return &ControllerGuard{state: state}
}

func (g *ControllerGuard) Check(caller string) error {
	if caller != g.state.Controller {
		return fmt.Errorf("caller %q: %w", caller, domain.ErrAccessDenied)
	}
	return nil
}
