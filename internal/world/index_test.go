package world

import (
	"cmp"
	"errors"
	"math/rand"
	"slices"
	"testing"
)

var mixedKinds = []Kind{
	KindBlock, KindPipe, KindGoomba, KindKoopa, KindPiranha, KindFlag,
	KindMushroom, KindStar, KindPeachFireball, KindShell, KindPiranhaFireball,
}

func checkPartition(t *testing.T, x *Index) {
	t.Helper()
	if err := x.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
	seenPriority := false
	prevY := 0
	for i := 0; i < x.Len(); i++ {
		e := x.At(i)
		if e.Priority() {
			seenPriority = true
			continue
		}
		if seenPriority {
			t.Fatalf("non-priority %v at %d after a priority entity", e, i)
		}
		if i > 0 && e.Y < prevY {
			t.Fatalf("%v at %d is below the previous y %d", e, i, prevY)
		}
		prevY = e.Y
	}
}

func TestIndexPartitionSurvivesInsertAndReap(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	d := newDetached()
	x := NewIndex(Footprint{W: 8, H: 8})
	var live []*Entity

	for round := 0; round < 200; round++ {
		if rng.Intn(4) == 0 && len(live) > 0 {
			for _, e := range live {
				if rng.Intn(3) == 0 {
					e.Kill()
				}
			}
			x.Reap()
			live = slices.DeleteFunc(live, func(e *Entity) bool { return !e.Alive() })
		} else {
			kind := mixedKinds[rng.Intn(len(mixedKinds))]
			e := d.make(kind, rng.Intn(200), rng.Intn(100))
			if err := x.Insert(e); err != nil {
				t.Fatalf("Insert: %v", err)
			}
			live = append(live, e)
		}
		checkPartition(t, x)
	}
	if x.Len() != len(live) {
		t.Fatalf("Len = %d, want %d", x.Len(), len(live))
	}
}

func TestIndexInsertKeepsEqualYInInsertionOrder(t *testing.T) {
	d := newDetached()
	x := NewIndex(Footprint{W: 8, H: 8})
	a := d.make(KindBlock, 0, 8)
	b := d.make(KindBlock, 8, 8)
	c := d.make(KindBlock, 16, 0)
	for _, e := range []*Entity{a, b, c} {
		if err := x.Insert(e); err != nil {
			t.Fatal(err)
		}
	}
	got := slices.Collect(x.All())
	want := []*Entity{c, a, b}
	if !slices.Equal(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestIndexRejectsDuplicateAndZeroHandle(t *testing.T) {
	d := newDetached()
	x := NewIndex(Footprint{W: 8, H: 8})
	e := d.make(KindGoomba, 0, 0)
	if err := x.Insert(e); err != nil {
		t.Fatal(err)
	}
	err := x.Insert(e)
	if !errors.Is(err, ErrDuplicateEntity) || !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("second Insert = %v, want duplicate violation", err)
	}
	if err := x.Insert(&Entity{Kind: KindBlock}); !errors.Is(err, ErrNoHandle) {
		t.Fatalf("Insert without handle = %v, want ErrNoHandle", err)
	}
	if x.Len() != 1 {
		t.Fatalf("Len = %d, want 1", x.Len())
	}
}

func TestFindOverlappingMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		d := newDetached()
		fp := Footprint{W: 4 + rng.Intn(12), H: 4 + rng.Intn(12)}
		x := NewIndex(fp)
		for i := 0; i < 80; i++ {
			kind := mixedKinds[rng.Intn(len(mixedKinds))]
			if err := x.Insert(d.make(kind, rng.Intn(160), rng.Intn(120)-10)); err != nil {
				t.Fatal(err)
			}
		}
		for q := 0; q < 40; q++ {
			r := fp.At(rng.Intn(180)-10, rng.Intn(140)-20)

			var want []*Entity
			for e := range x.All() {
				if r.Overlaps(fp.At(e.X, e.Y)) {
					want = append(want, e)
				}
			}
			got := slices.Collect(x.FindOverlapping(r))

			byID := func(a, b *Entity) int { return cmp.Compare(a.ID, b.ID) }
			slices.SortFunc(want, byID)
			slices.SortFunc(got, byID)
			if !slices.Equal(got, want) {
				t.Fatalf("trial %d query %+v: got %v, want %v", trial, r, got, want)
			}
		}
	}
}

func TestFindOverlappingStopsWhenConsumerBreaks(t *testing.T) {
	d := newDetached()
	x := NewIndex(Footprint{W: 8, H: 8})
	for i := 0; i < 5; i++ {
		if err := x.Insert(d.make(KindBlock, 0, i)); err != nil {
			t.Fatal(err)
		}
		if err := x.Insert(d.make(KindStar, 0, i)); err != nil {
			t.Fatal(err)
		}
	}
	n := 0
	for range x.FindOverlapping(Footprint{W: 8, H: 8}.At(0, 0)) {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Fatalf("visited %d, want 3", n)
	}
}

func TestVerticalSearchMisses(t *testing.T) {
	d := newDetached()
	x := NewIndex(Footprint{W: 8, H: 8})
	for _, y := range []int{0, 40, 80} {
		if err := x.Insert(d.make(KindBlock, 0, y)); err != nil {
			t.Fatal(err)
		}
	}
	if _, ok := x.VerticalSearch(10, 30); ok {
		t.Error("gap between 8 and 39 should miss")
	}
	if _, ok := x.VerticalSearch(-100, -1); ok {
		t.Error("below the grid should miss")
	}
	if i, ok := x.VerticalSearch(85, 90); !ok || x.At(i).Y != 80 {
		t.Errorf("VerticalSearch(85,90) = %d, %v", i, ok)
	}
}

func TestReapIsIdempotent(t *testing.T) {
	d := newDetached()
	x := NewIndex(Footprint{W: 8, H: 8})
	var all []*Entity
	for i, kind := range mixedKinds {
		e := d.make(kind, i*8, i*3)
		all = append(all, e)
		if err := x.Insert(e); err != nil {
			t.Fatal(err)
		}
	}
	all[1].Kill()
	all[7].Kill()

	if n := len(x.Reap()); n != 2 {
		t.Fatalf("first Reap removed %d, want 2", n)
	}
	before := slices.Collect(x.All())
	pri := x.PriorityLen()
	if n := len(x.Reap()); n != 0 {
		t.Fatalf("second Reap removed %d, want 0", n)
	}
	if !slices.Equal(slices.Collect(x.All()), before) || x.PriorityLen() != pri {
		t.Fatal("second Reap changed the index")
	}
	checkPartition(t, x)
}

func TestReapPriorityMidRun(t *testing.T) {
	d := newDetached()
	x := NewIndex(Footprint{W: 8, H: 8})
	for _, y := range []int{0, 16, 32} {
		if err := x.Insert(d.make(KindBlock, 0, y)); err != nil {
			t.Fatal(err)
		}
	}
	stars := []*Entity{d.make(KindStar, 0, 5), d.make(KindMushroom, 8, 5), d.make(KindFlower, 16, 5)}
	for _, e := range stars {
		if err := x.Insert(e); err != nil {
			t.Fatal(err)
		}
	}
	if x.PriorityLen() != 3 {
		t.Fatalf("PriorityLen = %d, want 3", x.PriorityLen())
	}

	stars[1].Kill()
	x.Reap()

	if x.PriorityLen() != 2 {
		t.Fatalf("PriorityLen after reap = %d, want 2", x.PriorityLen())
	}
	tail := []*Entity{x.At(x.Len() - 2), x.At(x.Len() - 1)}
	if !slices.Equal(tail, []*Entity{stars[0], stars[2]}) {
		t.Fatalf("priority run = %v", tail)
	}
	checkPartition(t, x)
}

func TestCheckDetectsBrokenOrder(t *testing.T) {
	d := newDetached()
	x := NewIndex(Footprint{W: 8, H: 8})
	a := d.make(KindBlock, 0, 0)
	b := d.make(KindBlock, 0, 10)
	if err := x.Insert(a); err != nil {
		t.Fatal(err)
	}
	if err := x.Insert(b); err != nil {
		t.Fatal(err)
	}
	a.Y = 50 // moved without reindexing
	if err := x.Check(); !errors.Is(err, ErrInvariantViolation) {
		t.Fatalf("Check = %v, want invariant violation", err)
	}
}
