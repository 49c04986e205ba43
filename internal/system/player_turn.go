package system

import (
	"time"

	coresys "github.com/peachworld/server/internal/core/system"
	"github.com/peachworld/server/internal/world"
)

// PlayerSystem gives the player singleton its one turn per tick, after the
// sweep. Phase 2 (PostUpdate).
type PlayerSystem struct {
	world *world.World
}

func NewPlayerSystem(w *world.World) *PlayerSystem {
	return &PlayerSystem{world: w}
}

func (s *PlayerSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *PlayerSystem) Update(_ time.Duration) world.Status {
	s.world.BehavePlayer()
	return terminal(s.world, nil)
}
