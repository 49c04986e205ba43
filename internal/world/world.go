package world

import (
	"errors"
	"fmt"

	"github.com/peachworld/server/internal/core/ecs"
	"go.uber.org/zap"
)

// Tuning holds the tick counts and distances that shape play.
type Tuning struct {
	InvulnerabilityTicks int // after the player is hurt
	StarPowerTicks       int
	FireCooldownTicks    int
	PiranhaFireDelay     int
	JumpDistance         int // jump steps without jump power
	PoweredJumpDistance  int
}

func DefaultTuning() Tuning {
	return Tuning{
		InvulnerabilityTicks: 10,
		StarPowerTicks:       150,
		FireCooldownTicks:    8,
		PiranhaFireDelay:     40,
		JumpDistance:         8,
		PoweredJumpDistance:  12,
	}
}

// Options wires a World to its collaborators. Nil collaborators are
// replaced by no-ops; a zero Footprint becomes 8×8.
type Options struct {
	Footprint Footprint
	Tuning    Tuning
	Presenter Presenter
	Ledger    Ledger
	Input     Input
	Log       *zap.Logger
}

// World is the simulation state of one level: the index, the player
// singleton, and the handle arena behind both. It is passed explicitly to
// every behavior and contact function. Accessed only from the game loop
// goroutine, no locks.
type World struct {
	ecs    *ecs.World
	arena  *ecs.PtrComponentStore[Entity]
	index  *Index
	player *Player

	// Non-priority entities spawned mid-tick; merged by Reap.
	pending []*Entity

	fp         Footprint
	tuning     Tuning
	cues       Presenter
	ledger     Ledger
	input      Input
	log        *zap.Logger
	tick       uint64
	finalLevel bool
}

func New(opts Options) *World {
	if opts.Footprint.W <= 0 || opts.Footprint.H <= 0 {
		opts.Footprint = Footprint{W: 8, H: 8}
	}
	if opts.Tuning == (Tuning{}) {
		opts.Tuning = DefaultTuning()
	}
	if opts.Presenter == nil {
		opts.Presenter = nopPresenter{}
	}
	if opts.Ledger == nil {
		opts.Ledger = nopLedger{}
	}
	if opts.Input == nil {
		opts.Input = nopInput{}
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	ew := ecs.NewWorld()
	arena := ecs.NewPtrComponentStore[Entity]()
	ew.Registry().Register(arena)

	return &World{
		ecs:    ew,
		arena:  arena,
		index:  NewIndex(opts.Footprint),
		fp:     opts.Footprint,
		tuning: opts.Tuning,
		cues:   opts.Presenter,
		ledger: opts.Ledger,
		input:  opts.Input,
		log:    opts.Log,
	}
}

func (w *World) Index() *Index        { return w.index }
func (w *World) Player() *Player      { return w.player }
func (w *World) Footprint() Footprint { return w.fp }
func (w *World) Tuning() Tuning       { return w.tuning }
func (w *World) FinalLevel() bool     { return w.finalLevel }
func (w *World) SetFinalLevel()       { w.finalLevel = true }
func (w *World) TickCount() uint64    { return w.tick }

// Entity resolves a handle. Stale handles of reaped entities miss.
func (w *World) Entity(id ecs.EntityID) (*Entity, bool) {
	if !w.ecs.Alive(id) {
		return nil, false
	}
	return w.arena.Get(id)
}

// Live reports how many entity handles are allocated, the player included.
func (w *World) Live() int { return w.ecs.Pool().Live() }

func (w *World) newEntity(kind Kind, x, y int, dir Direction) *Entity {
	e := &Entity{
		ID:   w.ecs.CreateEntity(),
		Kind: kind,
		X:    x,
		Y:    y,
		Dir:  dir,
	}
	w.arena.Set(e.ID, e)
	return e
}

// Place adds an entity while a level is being built.
func (w *World) Place(kind Kind, x, y int) (*Entity, error) {
	if kind == KindPeach {
		return nil, errors.New("place peach with PlacePlayer")
	}
	if kind >= kindCount {
		return nil, fmt.Errorf("place: %v", kind)
	}
	e := w.newEntity(kind, x, y, DirRight)
	if err := w.index.Insert(e); err != nil {
		return nil, fmt.Errorf("place %v: %w", e, err)
	}
	return e, nil
}

// PlaceBlock adds a block that yields reward on its first bonk.
func (w *World) PlaceBlock(x, y int, reward Reward) (*Entity, error) {
	e, err := w.Place(KindBlock, x, y)
	if err != nil {
		return nil, err
	}
	e.Reward = reward
	return e, nil
}

// PlacePlayer creates the player singleton. It stays out of the index.
func (w *World) PlacePlayer(x, y int) (*Player, error) {
	if w.player != nil {
		return nil, errors.New("player already placed")
	}
	p := &Player{hp: 1}
	p.Entity = Entity{
		ID:   w.ecs.CreateEntity(),
		Kind: KindPeach,
		X:    x,
		Y:    y,
		Dir:  DirRight,
	}
	w.arena.Set(p.ID, &p.Entity)
	w.player = p
	return p, nil
}

// Spawn creates an entity during a tick. Priority entities join the index
// at once, at the end, where a running sweep will still reach them.
// Anything else waits for the end-of-tick merge so that the sorted run never
// shifts under a sweep or a query.
func (w *World) Spawn(kind Kind, x, y int, dir Direction) *Entity {
	e := w.newEntity(kind, x, y, dir)
	if !e.Priority() {
		w.pending = append(w.pending, e)
		return e
	}
	if err := w.index.Insert(e); err != nil {
		// A fresh handle cannot collide.
		w.log.Error("spawn", zap.Stringer("entity", e), zap.Error(err))
	}
	return e
}

// Reap removes dead entities, merges deferred spawns and releases the
// handles of everything removed. Call once per tick, after all behaviors.
func (w *World) Reap() int {
	removed := w.index.Reap()
	for _, e := range removed {
		w.ecs.MarkForDestruction(e.ID)
	}
	for _, e := range w.pending {
		if !e.Alive() {
			w.ecs.MarkForDestruction(e.ID)
			continue
		}
		if err := w.index.Insert(e); err != nil {
			w.log.Error("merge spawn", zap.Stringer("entity", e), zap.Error(err))
		}
	}
	clear(w.pending)
	w.pending = w.pending[:0]
	w.ecs.FlushDestroyQueue()
	return len(removed)
}

// Check validates the index invariants.
func (w *World) Check() error {
	return w.index.Check()
}

// AdvanceTick bumps the tick counter; called by the dispatch before a sweep.
func (w *World) AdvanceTick() { w.tick++ }

// Teardown releases every entity and the player. Safe to repeat.
func (w *World) Teardown() {
	w.index.Clear()
	clear(w.pending)
	w.pending = w.pending[:0]
	ecs.DestroyAll(w.ecs, w.arena)
	w.player = nil
	w.finalLevel = false
}

// Behave runs one entity's per-tick behavior.
func (w *World) Behave(e *Entity) {
	if fn := behaviors[e.Kind]; fn != nil {
		fn(w, e)
	}
}

// Contact delivers a bonk from instigator to target.
func (w *World) Contact(target, instigator *Entity) {
	if fn := contacts[target.Kind]; fn != nil {
		fn(w, target, instigator)
	}
}

// PlayerDied plays the death cue and takes a life.
func (w *World) PlayerDied() {
	w.cues.Play(CuePlayerDied)
	w.ledger.DecLives()
}

// LevelCompleted plays the completion cue for a finished level.
func (w *World) LevelCompleted(won bool) {
	if won {
		w.cues.Play(CueGameOver)
		return
	}
	w.cues.Play(CueFinishedLevel)
}

func (w *World) score(points int) {
	w.ledger.IncreaseScore(points)
}
