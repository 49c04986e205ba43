package world

import "testing"

func TestIsBlockingAtSearchesSortedRun(t *testing.T) {
	f := newFixture(t)
	f.place(t, KindBlock, 0, 0)
	f.place(t, KindBlock, 0, 4)
	f.place(t, KindPipe, 0, 20)

	for x := -7; x <= 7; x++ {
		if !f.w.IsBlockingAt(x, 2) {
			t.Errorf("IsBlockingAt(%d, 2) = false, want true", x)
		}
		if f.w.IsBlockingAt(x, 12) {
			t.Errorf("IsBlockingAt(%d, 12) = true, want false", x)
		}
	}
	if !f.w.IsBlockingAt(0, 13) {
		t.Error("IsBlockingAt(0, 13) should reach the pipe")
	}
	if f.w.IsBlockingAt(-1000, -1000) || f.w.IsBlockingAt(1<<20, 1<<20) {
		t.Error("far off the grid should match nothing")
	}
}

func TestIsBlockingAtIgnoresDeadAndNonTerrain(t *testing.T) {
	f := newFixture(t)
	b := f.place(t, KindBlock, 0, 0)
	f.place(t, KindGoomba, 40, 0)
	f.w.Spawn(KindStar, 80, 0, DirRight)

	b.Kill()
	if f.w.IsBlockingAt(0, 0) {
		t.Error("dead block still blocks")
	}
	if f.w.IsBlockingAt(40, 0) || f.w.IsBlockingAt(80, 0) {
		t.Error("enemies and goodies are not terrain")
	}
}

func TestIsDamageableAt(t *testing.T) {
	f := newFixture(t)
	f.place(t, KindBlock, 0, 0)
	g := f.place(t, KindGoomba, 40, 0)
	f.w.Spawn(KindShell, 80, 0, DirRight)
	f.w.Spawn(KindPiranhaFireball, 120, 0, DirRight)

	if f.w.IsDamageableAt(0, 0) {
		t.Error("terrain is not damageable")
	}
	if !f.w.IsDamageableAt(44, 4) {
		t.Error("goomba should be damageable")
	}
	if f.w.IsDamageableAt(80, 0) || f.w.IsDamageableAt(120, 0) {
		t.Error("projectiles are not damageable")
	}
	g.Kill()
	if f.w.IsDamageableAt(40, 0) {
		t.Error("dead goomba is not damageable")
	}
}

func TestIsPlayerAt(t *testing.T) {
	w := New(Options{Footprint: Footprint{W: 16, H: 16}})
	if w.IsPlayerAt(0, 0, nil, false) {
		t.Fatal("no player placed yet")
	}
	if _, err := w.PlacePlayer(100, 50); err != nil {
		t.Fatal(err)
	}
	if !w.IsPlayerAt(108, 58, nil, false) {
		t.Error("IsPlayerAt(108, 58) = false, want true")
	}
	if w.IsPlayerAt(200, 50, nil, false) {
		t.Error("IsPlayerAt(200, 50) = true, want false")
	}
}

func TestIsPlayerAtNotifies(t *testing.T) {
	f := newFixture(t)
	p := f.player(t, 0, 8)
	g := f.place(t, KindGoomba, 40, 8)

	if !f.w.IsPlayerAt(4, 8, g, false) {
		t.Fatal("player should overlap")
	}
	if !p.Alive() {
		t.Fatal("notify=false must not contact the player")
	}
	f.w.IsPlayerAt(4, 8, g, true)
	if p.Alive() {
		t.Fatal("notify=true should have hurt the player")
	}
}

func TestBonkAtExcludesInstigator(t *testing.T) {
	f := newFixture(t)
	a := f.place(t, KindGoomba, 16, 0)
	b := f.place(t, KindGoomba, 16, 0) // same footprint as a

	var contacted []*Entity
	saved := contacts[KindGoomba]
	contacts[KindGoomba] = func(_ *World, e, _ *Entity) { contacted = append(contacted, e) }
	defer func() { contacts[KindGoomba] = saved }()

	if !f.w.BonkAt(16, 0, a) {
		t.Fatal("BonkAt should report a contact")
	}
	if len(contacted) != 1 || contacted[0] != b {
		t.Fatalf("contacted %v, want only %v", contacted, b)
	}

	contacted = nil
	if f.w.BonkAt(200, 200, a) {
		t.Error("nothing there to bonk")
	}
	b.Kill()
	if f.w.BonkAt(16, 0, a) || len(contacted) != 0 {
		t.Errorf("dead entity was contacted: %v", contacted)
	}
}

func TestBonkAtRewardBlockTwice(t *testing.T) {
	f := newFixture(t)
	p := f.player(t, 0, 0)
	blk, err := f.w.PlaceBlock(0, 0, RewardMushroom)
	if err != nil {
		t.Fatal(err)
	}
	f.w.BonkAt(0, 0, &p.Entity)
	f.w.BonkAt(0, 0, &p.Entity)

	if blk.Reward != RewardNone {
		t.Fatal("reward should be spent")
	}
	if n := f.w.Index().PriorityLen(); n != 1 {
		t.Fatalf("PriorityLen = %d, want 1", n)
	}
	if f.cues.count(CuePowerupAppears) != 1 || f.cues.count(CuePlayerBonk) != 1 {
		t.Fatalf("cues = %v", f.cues.cues)
	}
}

func TestRewardBlockYieldsOnce(t *testing.T) {
	for _, r := range []Reward{RewardMushroom, RewardFlower, RewardStar} {
		f := newFixture(t)
		p := f.player(t, 0, -8)
		blk, err := f.w.PlaceBlock(0, 0, r)
		if err != nil {
			t.Fatal(err)
		}
		f.w.Contact(blk, &p.Entity)
		f.w.Contact(blk, &p.Entity)

		want, _ := r.goodie()
		var spawned []*Entity
		for e := range f.w.Index().All() {
			if e.Powerup() {
				spawned = append(spawned, e)
			}
		}
		if len(spawned) != 1 || spawned[0].Kind != want {
			t.Fatalf("reward %d: spawned %v, want one %v", r, spawned, want)
		}
		if spawned[0].X != 0 || spawned[0].Y != 8 {
			t.Errorf("goodie at (%d,%d), want (0,8)", spawned[0].X, spawned[0].Y)
		}
	}
}

func TestBlockIgnoresNonPlayer(t *testing.T) {
	f := newFixture(t)
	blk, err := f.w.PlaceBlock(0, 0, RewardStar)
	if err != nil {
		t.Fatal(err)
	}
	shell := f.w.Spawn(KindShell, 0, 0, DirRight)
	f.w.Contact(blk, shell)
	f.w.Contact(blk, nil)
	if blk.Reward != RewardStar || len(f.cues.cues) != 0 {
		t.Fatal("only the player may open a block")
	}
}
