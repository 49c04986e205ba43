package system

import (
	"sort"
	"time"

	"github.com/peachworld/server/internal/world"
)

// Runner executes systems in phase order each tick.
type Runner struct {
	systems []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 8),
	}
}

func (r *Runner) Register(s System) {
	r.systems = append(r.systems, s)
	r.sorted = false
}

// Tick runs every system once and stops at the first terminal status.
// Systems of equal phase keep registration order.
func (r *Runner) Tick(dt time.Duration) world.Status {
	r.ensureSorted()
	for _, s := range r.systems {
		if st := s.Update(dt); st != world.StatusContinue {
			return st
		}
	}
	return world.StatusContinue
}

func (r *Runner) ensureSorted() {
	if !r.sorted {
		sort.SliceStable(r.systems, func(i, j int) bool {
			return r.systems[i].Phase() < r.systems[j].Phase()
		})
		r.sorted = true
	}
}
