package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/peachworld/server/internal/config"
	"github.com/peachworld/server/internal/core/event"
	coresys "github.com/peachworld/server/internal/core/system"
	"github.com/peachworld/server/internal/data"
	"github.com/peachworld/server/internal/system"
	"github.com/peachworld/server/internal/world"
	"go.uber.org/zap"
)

// ErrLevelLoad wraps every failure to build a level.
var ErrLevelLoad = errors.New("level load failed")

// LevelSource yields the grid for a level number.
type LevelSource interface {
	Load(level int) (*data.Level, error)
}

type cellSpec struct {
	kind   world.Kind
	reward world.Reward
}

// cellKinds maps level-file names to what gets built there. The player
// ("peach") is handled separately.
var cellKinds = map[string]cellSpec{
	"block":          {kind: world.KindBlock},
	"mushroom_block": {kind: world.KindBlock, reward: world.RewardMushroom},
	"flower_block":   {kind: world.KindBlock, reward: world.RewardFlower},
	"star_block":     {kind: world.KindBlock, reward: world.RewardStar},
	"pipe":           {kind: world.KindPipe},
	"flag":           {kind: world.KindFlag},
	"mario":          {kind: world.KindMario},
	"goomba":         {kind: world.KindGoomba},
	"koopa":          {kind: world.KindKoopa},
	"piranha":        {kind: world.KindPiranha},
}

type Options struct {
	Sim    config.SimConfig
	Levels LevelSource
	Input  world.Input
	Bus    *event.Bus
	Log    *zap.Logger
	Seed   int64 // initial enemy facing
}

// Game runs one level at a time: Init builds it, Tick advances it, and
// Teardown releases it. The scoreboard carries over between levels.
type Game struct {
	opts   Options
	bus    *event.Bus
	log    *zap.Logger
	rng    *rand.Rand
	board  *Scoreboard
	world  *world.World
	runner *coresys.Runner
	level  int
	status world.Status
}

func New(opts Options) *Game {
	if opts.Bus == nil {
		opts.Bus = event.NewBus()
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Sim.TickRate <= 0 {
		opts.Sim.TickRate = DefaultTickRate
	}
	if opts.Sim.StartLives <= 0 {
		opts.Sim.StartLives = 3
	}
	return &Game{
		opts:  opts,
		bus:   opts.Bus,
		log:   opts.Log,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		board: NewScoreboard(opts.Sim.StartLives, opts.Bus),
	}
}

func (g *Game) World() *world.World      { return g.world }
func (g *Game) Scoreboard() *Scoreboard  { return g.board }
func (g *Game) Bus() *event.Bus          { return g.bus }
func (g *Game) Level() int               { return g.level }
func (g *Game) LastStatus() world.Status { return g.status }

// Init loads and builds level n. Any previous level is torn down first.
// On failure it returns StatusLevelLoadError and an error wrapping
// ErrLevelLoad; the game is left empty.
func (g *Game) Init(n int) (world.Status, error) {
	g.Teardown()
	g.level = n
	g.board.level = n

	if g.opts.Levels == nil {
		return g.loadFailed(n, errors.New("no level source"))
	}
	lvl, err := g.opts.Levels.Load(n)
	if err != nil {
		return g.loadFailed(n, err)
	}

	pres := &BusPresenter{bus: g.bus}
	w := world.New(world.Options{
		Footprint: world.Footprint{W: g.opts.Sim.SpriteWidth, H: g.opts.Sim.SpriteHeight},
		Tuning:    tuning(g.opts.Sim),
		Presenter: pres,
		Ledger:    g.board,
		Input:     g.opts.Input,
		Log:       g.log,
	})
	pres.world = w

	if err := g.build(w, lvl); err != nil {
		w.Teardown()
		return g.loadFailed(n, err)
	}
	if err := w.Check(); err != nil {
		w.Teardown()
		return g.loadFailed(n, err)
	}

	runner := coresys.NewRunner()
	runner.Register(system.NewEventDispatchSystem(g.bus))
	runner.Register(system.NewBehaviorSystem(w))
	runner.Register(system.NewPlayerSystem(w))
	runner.Register(system.NewCleanupSystem(w, g.opts.Sim.CheckInvariants, g.log))

	g.world = w
	g.runner = runner
	g.status = world.StatusContinue
	g.log.Info("level loaded",
		zap.Int("level", n),
		zap.String("name", lvl.Name),
		zap.Int("entities", w.Index().Len()),
	)
	return world.StatusContinue, nil
}

func (g *Game) loadFailed(n int, err error) (world.Status, error) {
	g.status = world.StatusLevelLoadError
	g.log.Error("level load failed", zap.Int("level", n), zap.Error(err))
	return world.StatusLevelLoadError, fmt.Errorf("%w: level %d: %w", ErrLevelLoad, n, err)
}

func (g *Game) build(w *world.World, lvl *data.Level) error {
	fp := w.Footprint()
	placedPlayer := false
	for col := 0; col < lvl.Width; col++ {
		for row := 0; row < lvl.Height; row++ {
			name := lvl.ContentsOf(col, row)
			if name == "" {
				continue
			}
			x, y := col*fp.W, row*fp.H
			if name == "peach" {
				if _, err := w.PlacePlayer(x, y); err != nil {
					return fmt.Errorf("cell (%d,%d): %w", col, row, err)
				}
				placedPlayer = true
				continue
			}
			spec, ok := cellKinds[name]
			if !ok {
				return fmt.Errorf("cell (%d,%d): unknown kind %q", col, row, name)
			}
			e, err := w.Place(spec.kind, x, y)
			if err != nil {
				return fmt.Errorf("cell (%d,%d): %w", col, row, err)
			}
			e.Reward = spec.reward
			if spec.kind == world.KindGoomba || spec.kind == world.KindKoopa {
				e.Dir = world.DirRight
				if g.rng.Intn(2) == 0 {
					e.Dir = world.DirLeft
				}
			}
		}
	}
	if !placedPlayer {
		return errors.New("level has no peach")
	}
	return nil
}

func tuning(sim config.SimConfig) world.Tuning {
	t := world.Tuning{
		InvulnerabilityTicks: sim.InvulnerabilityTicks,
		StarPowerTicks:       sim.StarPowerTicks,
		FireCooldownTicks:    sim.FireCooldownTicks,
		PiranhaFireDelay:     sim.PiranhaFireDelay,
		JumpDistance:         sim.JumpDistance,
		PoweredJumpDistance:  sim.PoweredJumpDistance,
	}
	if t == (world.Tuning{}) {
		return world.DefaultTuning()
	}
	return t
}

// Tick advances the level by one step. Once a terminal status has been
// reported the level is frozen and later calls repeat it.
func (g *Game) Tick() world.Status {
	if g.world == nil {
		return g.status
	}
	if g.status.Terminal() {
		return g.status
	}
	st := g.runner.Tick(g.opts.Sim.TickRate)
	if st.Terminal() {
		g.status = st
		event.Emit(g.bus, event.LevelEnded{
			Level:  g.level,
			Status: st,
			Score:  g.board.Score(),
			Ticks:  g.world.TickCount(),
		})
		g.bus.Flush()
		g.log.Info("level ended",
			zap.Int("level", g.level),
			zap.Stringer("status", st),
			zap.Int("score", g.board.Score()),
			zap.Int("lives", g.board.Lives()),
			zap.Uint64("ticks", g.world.TickCount()),
		)
	}
	return st
}

// StatusText is the scoreboard line for the current level.
func (g *Game) StatusText() string {
	var p *world.Player
	if g.world != nil {
		p = g.world.Player()
	}
	return g.board.StatusText(p)
}

// Teardown releases the current level. Safe to call repeatedly.
func (g *Game) Teardown() {
	if g.world == nil {
		return
	}
	g.world.Teardown()
	g.world = nil
	g.runner = nil
}

// DefaultTickRate is used when the configuration leaves it unset.
const DefaultTickRate = 50 * time.Millisecond
