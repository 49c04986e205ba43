package world

func goodieScore(k Kind) int {
	switch k {
	case KindMushroom:
		return scoreMushroom
	case KindFlower:
		return scoreFlower
	case KindStar:
		return scoreStar
	}
	return 0
}

// behaveGoodie: picked up on touch, otherwise falls and wanders, turning
// around at walls.
func behaveGoodie(w *World, e *Entity) {
	if w.IsPlayerAt(e.X, e.Y, e, false) {
		w.score(goodieScore(e.Kind))
		w.grantPowerup(e.Kind)
		e.Kill()
		w.cues.Play(CuePlayerPowerup)
		return
	}

	if !w.IsBlockingAt(e.X, e.Y) && !w.IsBlockingAt(e.X, e.Y-1) {
		e.Y -= goodieStep
	}

	nx := e.X + int(e.Dir)*goodieStep
	if w.IsBlockingAt(nx, e.Y) {
		e.Dir = e.Dir.reverse()
		return
	}
	e.X = nx
}
