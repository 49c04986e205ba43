package world

// Player is the singleton the level is played with. It lives outside the
// index and runs once per tick after the sweep.
type Player struct {
	Entity

	hp           int // 2 while holding jump or shoot power
	jumpLeft     int
	starTicks    int
	invulnTicks  int
	fireCooldown int
	jumpPower    bool
	shootPower   bool
}

func (p *Player) StarPower() bool  { return p.starTicks > 0 }
func (p *Player) ShootPower() bool { return p.shootPower }
func (p *Player) JumpPower() bool  { return p.jumpPower }
func (p *Player) Jumping() bool    { return p.jumpLeft > 0 }
func (p *Player) Invulnerable() bool {
	return p.invulnTicks > 0 || p.starTicks > 0
}

func (w *World) grantPowerup(kind Kind) {
	p := w.player
	switch kind {
	case KindMushroom:
		p.jumpPower = true
		p.hp = 2
	case KindFlower:
		p.shootPower = true
		p.hp = 2
	case KindStar:
		p.starTicks = w.tuning.StarPowerTicks
	}
}

// BehavePlayer runs the player's turn for this tick.
func (w *World) BehavePlayer() {
	p := w.player
	if p == nil || !p.Alive() {
		return
	}
	if p.starTicks > 0 {
		p.starTicks--
	}
	if p.invulnTicks > 0 {
		p.invulnTicks--
	}
	if p.fireCooldown > 0 {
		p.fireCooldown--
	}

	self := &p.Entity
	w.BonkAt(p.X, p.Y, self)

	if p.jumpLeft > 0 {
		ny := p.Y + peachStep
		if w.IsBlockingAt(p.X, ny) {
			w.BonkAt(p.X, ny, self)
			p.jumpLeft = 0
		} else {
			p.Y = ny
			p.jumpLeft--
		}
	} else if !w.IsBlockingAt(p.X, p.Y) && !w.IsBlockingAt(p.X, p.Y-3) {
		p.Y -= peachStep
	}

	key, ok := w.input.NextKey(w.tick, p)
	if !ok {
		return
	}
	switch key {
	case KeyLeft, KeyRight:
		p.Dir = DirRight
		if key == KeyLeft {
			p.Dir = DirLeft
		}
		nx := p.X + int(p.Dir)*peachStep
		if w.IsBlockingAt(nx, p.Y) {
			w.BonkAt(nx, p.Y, self)
		} else {
			p.X = nx
		}
	case KeyUp:
		if w.IsBlockingAt(p.X, p.Y-1) {
			p.jumpLeft = w.tuning.JumpDistance
			if p.jumpPower {
				p.jumpLeft = w.tuning.PoweredJumpDistance
			}
			w.cues.Play(CuePlayerJump)
		}
	case KeySpace:
		if p.shootPower && p.fireCooldown == 0 {
			w.cues.Play(CuePlayerFire)
			p.fireCooldown = w.tuning.FireCooldownTicks
			w.Spawn(KindPeachFireball, p.X+int(p.Dir)*peachStep, p.Y, p.Dir)
		}
	}
}

// contactPlayer hurts the player. Friendly instigators and any contact
// during invulnerability or star power are ignored.
func contactPlayer(w *World, _ *Entity, instigator *Entity) {
	p := w.player
	if !p.Alive() || p.Invulnerable() {
		return
	}
	if instigator != nil && instigator.Friendly() {
		return
	}
	p.invulnTicks = w.tuning.InvulnerabilityTicks
	p.hp--
	p.jumpPower = false
	p.shootPower = false
	if p.hp >= 1 {
		w.cues.Play(CuePlayerHurt)
		return
	}
	p.Kill()
}
