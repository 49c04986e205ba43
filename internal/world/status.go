package world

// Status is the outcome of initializing a level or running one tick.
type Status int

const (
	StatusContinue Status = iota
	StatusPlayerDied
	StatusLevelFinished
	StatusPlayerWon
	StatusLevelLoadError // init only
)

func (s Status) String() string {
	switch s {
	case StatusContinue:
		return "continue"
	case StatusPlayerDied:
		return "player_died"
	case StatusLevelFinished:
		return "level_finished"
	case StatusPlayerWon:
		return "player_won"
	case StatusLevelLoadError:
		return "level_load_error"
	}
	return "unknown"
}

// Terminal reports whether the status ends the current level.
func (s Status) Terminal() bool { return s != StatusContinue }
