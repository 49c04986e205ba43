package world

// behaveFriendlyMissile covers the player's fireball and a kicked shell:
// hit the first enemy it touches, otherwise fly on until a wall.
func behaveFriendlyMissile(w *World, e *Entity) {
	if w.IsDamageableAt(e.X, e.Y) {
		w.BonkAt(e.X, e.Y, e)
		e.Kill()
		return
	}
	flyMissile(w, e)
}

// behavePiranhaFireball only ever hurts the player.
func behavePiranhaFireball(w *World, e *Entity) {
	if w.IsPlayerAt(e.X, e.Y, e, true) {
		e.Kill()
		return
	}
	flyMissile(w, e)
}

func flyMissile(w *World, e *Entity) {
	if !w.IsBlockingAt(e.X, e.Y-missileStep) {
		e.Y -= missileStep
	}
	nx := e.X + int(e.Dir)*missileStep
	if w.IsBlockingAt(nx, e.Y) {
		e.Kill()
		return
	}
	e.X = nx
}
