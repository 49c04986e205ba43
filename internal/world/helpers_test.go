package world

import (
	"testing"

	"github.com/peachworld/server/internal/core/ecs"
)

type cueLog struct{ cues []Cue }

func (c *cueLog) Play(cue Cue) { c.cues = append(c.cues, cue) }

func (c *cueLog) count(cue Cue) int {
	n := 0
	for _, got := range c.cues {
		if got == cue {
			n++
		}
	}
	return n
}

type tally struct {
	score int
	lost  int
}

func (t *tally) IncreaseScore(points int) { t.score += points }
func (t *tally) DecLives()                { t.lost++ }

// keys feeds one key per tick from a fixed script.
type keys []Key

func (k *keys) NextKey(uint64, *Player) (Key, bool) {
	if len(*k) == 0 {
		return KeyNone, false
	}
	key := (*k)[0]
	*k = (*k)[1:]
	return key, key != KeyNone
}

type fixture struct {
	w     *World
	cues  *cueLog
	score *tally
	keys  *keys
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{cues: &cueLog{}, score: &tally{}, keys: &keys{}}
	f.w = New(Options{
		Footprint: Footprint{W: 8, H: 8},
		Presenter: f.cues,
		Ledger:    f.score,
		Input:     f.keys,
	})
	return f
}

func (f *fixture) place(t *testing.T, kind Kind, x, y int) *Entity {
	t.Helper()
	e, err := f.w.Place(kind, x, y)
	if err != nil {
		t.Fatalf("Place(%v, %d, %d): %v", kind, x, y, err)
	}
	return e
}

func (f *fixture) player(t *testing.T, x, y int) *Player {
	t.Helper()
	p, err := f.w.PlacePlayer(x, y)
	if err != nil {
		t.Fatalf("PlacePlayer: %v", err)
	}
	return p
}

// floor lays blocks under [x0, x1] at row y.
func (f *fixture) floor(t *testing.T, x0, x1, y int) {
	t.Helper()
	for x := x0; x <= x1; x += f.w.Footprint().W {
		f.place(t, KindBlock, x, y)
	}
}

// detached builds entities with real handles for index-only tests.
type detached struct {
	ecs *ecs.World
}

func newDetached() *detached { return &detached{ecs: ecs.NewWorld()} }

func (d *detached) make(kind Kind, x, y int) *Entity {
	return &Entity{ID: d.ecs.CreateEntity(), Kind: kind, X: x, Y: y, Dir: DirRight}
}
