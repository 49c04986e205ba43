package world

import (
	"fmt"

	"github.com/peachworld/server/internal/core/ecs"
)

// Direction is the horizontal facing of an entity: +1 right, -1 left.
type Direction int8

const (
	DirRight Direction = 1
	DirLeft  Direction = -1
)

func (d Direction) reverse() Direction { return -d }

// Entity is a live simulation object. Position is the lower-left corner of
// its footprint. Liveness is cleared exactly once and never restored.
type Entity struct {
	ID     ecs.EntityID
	Kind   Kind
	X, Y   int
	Dir    Direction
	Reward Reward

	dead      bool
	fireDelay int // piranha only
}

func (e *Entity) Alive() bool { return !e.dead }

// Kill clears liveness. Reports whether this call did it.
func (e *Entity) Kill() bool {
	if e.dead {
		return false
	}
	e.dead = true
	return true
}

func (e *Entity) Terrain() bool    { return kindTraits[e.Kind].terrain }
func (e *Entity) Friendly() bool   { return kindTraits[e.Kind].friendly }
func (e *Entity) Projectile() bool { return kindTraits[e.Kind].projectile }
func (e *Entity) IsPlayer() bool   { return kindTraits[e.Kind].player }
func (e *Entity) Goalpost() bool   { return kindTraits[e.Kind].goalpost }
func (e *Entity) Powerup() bool    { return kindTraits[e.Kind].powerup }
func (e *Entity) Priority() bool   { return kindTraits[e.Kind].priority }

// Damageable reports whether a friendly attack can hurt the entity.
func (e *Entity) Damageable() bool {
	return !e.dead && !e.Friendly() && !e.Projectile()
}

func (e *Entity) String() string {
	return fmt.Sprintf("%s#%d@(%d,%d)", e.Kind, e.ID.Index(), e.X, e.Y)
}

// Less orders entities for the index: non-priority before priority, then
// ascending y within a class. Equal y is unordered.
func Less(a, b *Entity) bool {
	if a.Priority() != b.Priority() {
		return !a.Priority()
	}
	return a.Y < b.Y
}
