package system

import (
	"time"

	"github.com/peachworld/server/internal/world"
)

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhasePreUpdate  Phase = iota // 0: deliver last tick's events
	PhaseUpdate                  // 1: entity sweep
	PhasePostUpdate              // 2: player turn
	PhaseCleanup                 // 3: reap dead entities
)

// System is one step of a tick. A non-continue status ends the tick.
type System interface {
	Phase() Phase
	Update(dt time.Duration) world.Status
}
