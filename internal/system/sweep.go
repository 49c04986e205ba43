package system

import (
	"time"

	coresys "github.com/peachworld/server/internal/core/system"
	"github.com/peachworld/server/internal/world"
)

// BehaviorSystem walks the index in order and runs every live entity.
// The sweep stops at once when the player dies or a goalpost is taken.
// Phase 1 (Update).
type BehaviorSystem struct {
	world *world.World
}

func NewBehaviorSystem(w *world.World) *BehaviorSystem {
	return &BehaviorSystem{world: w}
}

func (s *BehaviorSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *BehaviorSystem) Update(_ time.Duration) world.Status {
	w := s.world
	w.AdvanceTick()
	idx := w.Index()
	// Len is re-read every step: priority entities spawned during the
	// sweep are appended and get their turn this tick.
	for i := 0; i < idx.Len(); i++ {
		e := idx.At(i)
		if !e.Alive() {
			continue
		}
		w.Behave(e)
		if st := terminal(w, e); st != world.StatusContinue {
			return st
		}
	}
	return world.StatusContinue
}

// terminal inspects the world right after e has acted.
func terminal(w *world.World, e *world.Entity) world.Status {
	if p := w.Player(); p != nil && !p.Alive() {
		w.PlayerDied()
		return world.StatusPlayerDied
	}
	if e != nil && e.Goalpost() && !e.Alive() {
		won := w.FinalLevel()
		w.LevelCompleted(won)
		if won {
			return world.StatusPlayerWon
		}
		return world.StatusLevelFinished
	}
	return world.StatusContinue
}
