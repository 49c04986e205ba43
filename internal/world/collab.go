package world

// Cue names a fire-and-forget presentation event (sound, effect).
type Cue string

const (
	CuePlayerHurt     Cue = "player-hurt"
	CuePlayerDied     Cue = "player-died"
	CuePlayerBonk     Cue = "player-bonk"
	CuePlayerJump     Cue = "player-jump"
	CuePlayerFire     Cue = "player-fire"
	CuePlayerKick     Cue = "player-kick"
	CuePlayerPowerup  Cue = "player-powerup"
	CuePowerupAppears Cue = "powerup-appears"
	CuePiranhaFire    Cue = "piranha-fire"
	CueFinishedLevel  Cue = "finished-level"
	CueGameOver       Cue = "game-over"
)

// Presenter accepts cues. Implementations must not block.
type Presenter interface {
	Play(cue Cue)
}

// Ledger keeps score and lives for the running game.
type Ledger interface {
	IncreaseScore(points int)
	DecLives()
}

// Key is one player command for a tick.
type Key int

const (
	KeyNone Key = iota
	KeyLeft
	KeyRight
	KeyUp
	KeySpace
)

// Input supplies at most one key per tick to the player.
type Input interface {
	NextKey(tick uint64, p *Player) (Key, bool)
}

type nopPresenter struct{}

func (nopPresenter) Play(Cue) {}

type nopLedger struct{}

func (nopLedger) IncreaseScore(int) {}
func (nopLedger) DecLives()         {}

type nopInput struct{}

func (nopInput) NextKey(uint64, *Player) (Key, bool) { return KeyNone, false }
