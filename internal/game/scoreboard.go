package game

import (
	"fmt"
	"strings"

	"github.com/peachworld/server/internal/core/event"
	"github.com/peachworld/server/internal/world"
)

// Scoreboard is the score and lives ledger. It outlives levels.
type Scoreboard struct {
	bus   *event.Bus
	score int
	lives int
	level int
}

func NewScoreboard(lives int, bus *event.Bus) *Scoreboard {
	return &Scoreboard{bus: bus, lives: lives}
}

func (s *Scoreboard) IncreaseScore(points int) {
	s.score += points
	event.Emit(s.bus, event.ScoreChanged{Delta: points, Total: s.score})
}

func (s *Scoreboard) DecLives() {
	if s.lives > 0 {
		s.lives--
	}
	event.Emit(s.bus, event.LivesChanged{Lives: s.lives})
}

func (s *Scoreboard) Score() int { return s.score }
func (s *Scoreboard) Lives() int { return s.lives }
func (s *Scoreboard) Level() int { return s.level }

// StatusText composes the status line shown above the playfield.
func (s *Scoreboard) StatusText(p *world.Player) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Lives: %d  Level: %02d  Points: %06d", s.lives, s.level, s.score)
	if p != nil {
		if p.StarPower() {
			b.WriteString(" StarPower!")
		}
		if p.ShootPower() {
			b.WriteString(" ShootPower!")
		}
		if p.JumpPower() {
			b.WriteString(" JumpPower!")
		}
	}
	return b.String()
}

// BusPresenter forwards cues to the event bus, stamped with the tick.
type BusPresenter struct {
	bus   *event.Bus
	world *world.World
}

func (p *BusPresenter) Play(cue world.Cue) {
	var tick uint64
	if p.world != nil {
		tick = p.world.TickCount()
	}
	event.Emit(p.bus, event.CuePlayed{Cue: cue, Tick: tick})
}
