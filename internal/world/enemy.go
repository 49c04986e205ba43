package world

// behaveWalker drives goombas and koopas: hurt the player on touch, else
// pace along the platform, turning at walls and edges.
func behaveWalker(w *World, e *Entity) {
	if w.IsPlayerAt(e.X, e.Y, e, true) {
		return
	}
	nx := e.X + int(e.Dir)*enemyStep
	if w.IsBlockingAt(nx, e.Y) {
		e.Dir = e.Dir.reverse()
		return
	}
	// Probe under the leading edge of the next position.
	edge := nx + int(e.Dir)*(w.fp.W-1)
	if !w.IsBlockingAt(edge, e.Y-1) {
		e.Dir = e.Dir.reverse()
		return
	}
	e.X = nx
}

// behavePiranha stays put, turns toward a player on its level and shoots
// when the player is close enough and the fire delay has run out.
func behavePiranha(w *World, e *Entity) {
	if w.IsPlayerAt(e.X, e.Y, e, true) {
		return
	}
	px, py, ok := w.PlayerLocation()
	if !ok {
		return
	}
	if 2*abs(py-e.Y) > 3*w.fp.H { // more than 1.5 sprites apart
		return
	}
	e.Dir = DirRight
	if px < e.X {
		e.Dir = DirLeft
	}
	if e.fireDelay > 0 {
		e.fireDelay--
		return
	}
	if abs(px-e.X) < 8*w.fp.W {
		w.Spawn(KindPiranhaFireball, e.X, e.Y, e.Dir)
		w.cues.Play(CuePiranhaFire)
		e.fireDelay = w.tuning.PiranhaFireDelay
	}
}

// contactEnemy: an enemy dies to a friendly projectile or to the player
// under star power. A koopa leaves its shell behind.
func contactEnemy(w *World, e *Entity, instigator *Entity) {
	if instigator == nil || !e.Alive() {
		return
	}
	switch {
	case instigator.IsPlayer():
		if !w.player.StarPower() {
			return
		}
	case instigator.Friendly() && instigator.Projectile():
	default:
		return
	}
	w.cues.Play(CuePlayerKick)
	w.score(scoreEnemy)
	e.Kill()
	if e.Kind == KindKoopa {
		w.Spawn(KindShell, e.X, e.Y, e.Dir)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
