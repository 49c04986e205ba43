package system

import (
	"time"

	coresys "github.com/peachworld/server/internal/core/system"
	"github.com/peachworld/server/internal/world"
	"go.uber.org/zap"
)

// CleanupSystem reaps dead entities at tick end and, when asked to, checks
// the index invariants afterwards. Phase 3 (Cleanup).
type CleanupSystem struct {
	world *world.World
	check bool
	log   *zap.Logger
}

func NewCleanupSystem(w *world.World, checkInvariants bool, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{world: w, check: checkInvariants, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) world.Status {
	if n := s.world.Reap(); n > 0 {
		s.log.Debug("reaped", zap.Int("count", n), zap.Uint64("tick", s.world.TickCount()))
	}
	if s.check {
		if err := s.world.Check(); err != nil {
			s.log.Error("index invariant broken", zap.Uint64("tick", s.world.TickCount()), zap.Error(err))
		}
	}
	return world.StatusContinue
}
