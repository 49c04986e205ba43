package world

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"sort"

	"github.com/peachworld/server/internal/core/ecs"
)

var (
	// ErrInvariantViolation marks a broken index invariant. It is a
	// programming error, never a user-facing condition.
	ErrInvariantViolation = errors.New("index invariant violation")
	ErrDuplicateEntity    = fmt.Errorf("%w: entity already indexed", ErrInvariantViolation)
	ErrNoHandle           = fmt.Errorf("%w: entity has no handle", ErrInvariantViolation)
)

// Index holds every non-player entity of a level in one slice:
//
//	[ sorted run: non-priority, ascending y | priority run: insertion order ]
//
// The sorted run is searched by y; the priority run is scanned linearly.
// Single goroutine only, like the rest of the world.
type Index struct {
	fp       Footprint
	entries  []*Entity
	priority int
	members  map[ecs.EntityID]struct{}
}

func NewIndex(fp Footprint) *Index {
	return &Index{
		fp:      fp,
		entries: make([]*Entity, 0, 256),
		members: make(map[ecs.EntityID]struct{}, 256),
	}
}

func (x *Index) Len() int             { return len(x.entries) }
func (x *Index) At(i int) *Entity     { return x.entries[i] }
func (x *Index) PriorityLen() int     { return x.priority }
func (x *Index) SortedLen() int       { return len(x.entries) - x.priority }
func (x *Index) Footprint() Footprint { return x.fp }

func (x *Index) Contains(e *Entity) bool {
	_, ok := x.members[e.ID]
	return ok
}

// Insert adds e keeping the partition order. Priority entities are appended,
// so an insert during a sweep never moves an entity the sweep already passed.
func (x *Index) Insert(e *Entity) error {
	if e.ID.IsZero() {
		return fmt.Errorf("%w: %v", ErrNoHandle, e)
	}
	if _, dup := x.members[e.ID]; dup {
		return fmt.Errorf("%w: %v", ErrDuplicateEntity, e)
	}
	x.members[e.ID] = struct{}{}

	if e.Priority() {
		x.entries = append(x.entries, e)
		x.priority++
		return nil
	}

	// Upper bound: equal y keeps insertion order.
	run := x.entries[:x.SortedLen()]
	i := sort.Search(len(run), func(i int) bool { return Less(e, run[i]) })
	x.entries = slices.Insert(x.entries, i, e)
	return nil
}

// Reap drops every dead entity and returns the removed ones in index order.
// Relative order of survivors is kept, so the partition order survives too.
// Never call it while iterating the index.
func (x *Index) Reap() []*Entity {
	var removed []*Entity
	kept := x.entries[:0]
	for _, e := range x.entries {
		if e.Alive() {
			kept = append(kept, e)
			continue
		}
		removed = append(removed, e)
		delete(x.members, e.ID)
		if e.Priority() {
			x.priority--
		}
	}
	clear(x.entries[len(kept):])
	x.entries = kept
	return removed
}

// Clear empties the index.
func (x *Index) Clear() {
	clear(x.entries)
	x.entries = x.entries[:0]
	x.priority = 0
	clear(x.members)
}

// All yields entities in iteration order, including ones appended while
// the caller is still consuming the sequence.
func (x *Index) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for i := 0; i < len(x.entries); i++ {
			if !yield(x.entries[i]) {
				return
			}
		}
	}
}

// VerticalSearch binary-searches the sorted run for any entity whose
// vertical span overlaps [y0,y1]. It returns one match, not the first.
func (x *Index) VerticalSearch(y0, y1 int) (int, bool) {
	lo, hi := 0, x.SortedLen()-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		e := x.entries[mid]
		over, lower := Overlap(y0, y1, e.Y, e.Y+x.fp.H-1)
		if over {
			return mid, true
		}
		if lower {
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	return -1, false
}

// FindOverlapping yields every indexed entity, dead or alive, whose
// footprint overlaps r: the priority run first, then the sorted run found by
// VerticalSearch and widened in both directions until the vertical span
// stops overlapping. The sequence is single-use.
func (x *Index) FindOverlapping(r Rect) iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		// Appends from contact callbacks land in the priority run; re-read
		// the bounds each step.
		for i := x.SortedLen(); i < len(x.entries); i++ {
			if e := x.entries[i]; r.Overlaps(x.fp.At(e.X, e.Y)) {
				if !yield(e) {
					return
				}
			}
		}

		mid, ok := x.VerticalSearch(r.Y0, r.Y1)
		if !ok {
			return
		}
		// The run is sorted by y, so once the vertical span stops
		// overlapping it cannot overlap again further out.
		for i := mid; i >= 0; i-- {
			e := x.entries[i]
			if !x.spansY(e, r) {
				break
			}
			if x.spansX(e, r) && !yield(e) {
				return
			}
		}
		for i := mid + 1; i < x.SortedLen(); i++ {
			e := x.entries[i]
			if !x.spansY(e, r) {
				break
			}
			if x.spansX(e, r) && !yield(e) {
				return
			}
		}
	}
}

func (x *Index) spansY(e *Entity, r Rect) bool {
	over, _ := Overlap(r.Y0, r.Y1, e.Y, e.Y+x.fp.H-1)
	return over
}

func (x *Index) spansX(e *Entity, r Rect) bool {
	over, _ := Overlap(r.X0, r.X1, e.X, e.X+x.fp.W-1)
	return over
}

// Check validates the partition order and identity invariants.
func (x *Index) Check() error {
	sorted := x.SortedLen()
	if sorted < 0 {
		return fmt.Errorf("%w: priority count %d exceeds %d entries", ErrInvariantViolation, x.priority, len(x.entries))
	}
	seen := make(map[ecs.EntityID]struct{}, len(x.entries))
	for i, e := range x.entries {
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: %v at %d", ErrDuplicateEntity, e, i)
		}
		seen[e.ID] = struct{}{}
		if e.Priority() != (i >= sorted) {
			return fmt.Errorf("%w: %v at %d is on the wrong side of %d", ErrInvariantViolation, e, i, sorted)
		}
		if i > 0 && i < sorted && x.entries[i-1].Y > e.Y {
			return fmt.Errorf("%w: %v at %d is above %v", ErrInvariantViolation, x.entries[i-1], i-1, e)
		}
	}
	if len(seen) != len(x.members) {
		return fmt.Errorf("%w: %d members tracked for %d entries", ErrInvariantViolation, len(x.members), len(seen))
	}
	return nil
}
