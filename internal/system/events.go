package system

import (
	"time"

	"github.com/peachworld/server/internal/core/event"
	coresys "github.com/peachworld/server/internal/core/system"
	"github.com/peachworld/server/internal/world"
)

// EventDispatchSystem delivers the events raised during the previous tick.
// Phase 0 (PreUpdate).
type EventDispatchSystem struct {
	bus *event.Bus
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) world.Status {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
	return world.StatusContinue
}
