package event

import "github.com/peachworld/server/internal/world"

// CuePlayed is a presentation cue raised by the simulation.
type CuePlayed struct {
	Cue  world.Cue
	Tick uint64
}

// ScoreChanged follows every score increment.
type ScoreChanged struct {
	Delta int
	Total int
}

// LivesChanged follows every life lost.
type LivesChanged struct {
	Lives int
}

// LevelEnded is raised once per level run with its outcome.
type LevelEnded struct {
	Level  int
	Status world.Status
	Score  int
	Ticks  uint64
}
