package world

// contactBlock: only the player gets anything out of a block. The reward is
// handed out once; later bonks just thud.
func contactBlock(w *World, b *Entity, instigator *Entity) {
	if instigator == nil || !instigator.IsPlayer() {
		return
	}
	kind, ok := b.Reward.goodie()
	if !ok {
		w.cues.Play(CuePlayerBonk)
		return
	}
	b.Reward = RewardNone
	w.cues.Play(CuePowerupAppears)
	w.Spawn(kind, b.X, b.Y+w.fp.H, DirRight)
}

// behaveGoalpost: a flag or Mario completes the level once the player
// touches it. Mario marks the last level.
func behaveGoalpost(w *World, e *Entity) {
	if !w.IsPlayerAt(e.X, e.Y, e, false) {
		return
	}
	w.score(scoreGoalpost)
	if e.Kind == KindMario {
		w.SetFinalLevel()
	}
	e.Kill()
}
