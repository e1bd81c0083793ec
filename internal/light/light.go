package light

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/xpwu/go-log/log"
)

// Pin drives the physical output the light hangs off.
type Pin interface {
	Set(ctx context.Context, on bool) error
}

// State is the shared on/off flag. It is safe for concurrent use.
type State struct {
	on  atomic.Bool
	pin Pin
}

// NewState returns a State driving pin, initially set to on.
func NewState(pin Pin, on bool) *State {
	s := &State{pin: pin}
	s.on.Store(on)
	return s
}

// On reports the last state that was set.
func (s *State) On() bool {
	return s.on.Load()
}

// Set records the new state and drives the pin. The flag is updated even if
// the pin fails so status reads reflect what was requested.
func (s *State) Set(ctx context.Context, on bool) error {
	s.on.Store(on)
	if s.pin == nil {
		return nil
	}
	if err := s.pin.Set(ctx, on); err != nil {
		return fmt.Errorf("set light pin: %w", err)
	}
	return nil
}

// LogPin is a Pin for hosts without GPIO; it only logs.
type LogPin struct {
	Name string
}

func (p LogPin) Set(ctx context.Context, on bool) error {
	_, logger := log.WithCtx(ctx)
	logger.Debug(fmt.Sprintf("pin %s -> %t", p.Name, on))
	return nil
}
