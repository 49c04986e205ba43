package world

// Queries over the current level. Each scans the priority run, then the
// sorted run via binary search; see Index.FindOverlapping. Coordinates off
// the grid are fine and simply match nothing.

// IsBlockingAt reports whether live terrain overlaps a footprint at (x, y).
func (w *World) IsBlockingAt(x, y int) bool {
	for e := range w.index.FindOverlapping(w.fp.At(x, y)) {
		if e.Alive() && e.Terrain() {
			return true
		}
	}
	return false
}

// IsDamageableAt reports whether a live enemy overlaps a footprint at (x, y).
func (w *World) IsDamageableAt(x, y int) bool {
	for e := range w.index.FindOverlapping(w.fp.At(x, y)) {
		if e.Damageable() {
			return true
		}
	}
	return false
}

// IsPlayerAt reports whether the player overlaps a footprint at (x, y).
// With notify set, the player is contacted by instigator.
func (w *World) IsPlayerAt(x, y int, instigator *Entity, notify bool) bool {
	p := w.player
	if p == nil {
		return false
	}
	if !w.fp.At(x, y).Overlaps(w.fp.At(p.X, p.Y)) {
		return false
	}
	if notify {
		w.Contact(&p.Entity, instigator)
	}
	return true
}

// PlayerLocation returns the player's position; ok is false before a level
// is loaded.
func (w *World) PlayerLocation() (x, y int, ok bool) {
	if w.player == nil {
		return 0, 0, false
	}
	return w.player.X, w.player.Y, true
}

// BonkAt contacts every live indexed entity overlapping a footprint at
// (x, y), except instigator itself. Reports whether anything was contacted.
func (w *World) BonkAt(x, y int, instigator *Entity) bool {
	// Collect first: a contact may spawn an entity into the priority run,
	// and that newcomer was not there when the bonk happened.
	var targets []*Entity
	for e := range w.index.FindOverlapping(w.fp.At(x, y)) {
		if e.Alive() && (instigator == nil || e.ID != instigator.ID) {
			targets = append(targets, e)
		}
	}
	bonked := false
	for _, e := range targets {
		if !e.Alive() {
			continue
		}
		w.Contact(e, instigator)
		bonked = true
	}
	return bonked
}
