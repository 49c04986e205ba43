package world

import "fmt"

// Kind is the closed set of entity variants the simulation knows about.
type Kind uint8

const (
	KindPeach Kind = iota
	KindBlock
	KindPipe
	KindFlag
	KindMario
	KindMushroom
	KindFlower
	KindStar
	KindPeachFireball
	KindPiranhaFireball
	KindShell
	KindGoomba
	KindKoopa
	KindPiranha
	kindCount
)

var kindNames = [kindCount]string{
	KindPeach:           "peach",
	KindBlock:           "block",
	KindPipe:            "pipe",
	KindFlag:            "flag",
	KindMario:           "mario",
	KindMushroom:        "mushroom",
	KindFlower:          "flower",
	KindStar:            "star",
	KindPeachFireball:   "peach_fireball",
	KindPiranhaFireball: "piranha_fireball",
	KindShell:           "shell",
	KindGoomba:          "goomba",
	KindKoopa:           "koopa",
	KindPiranha:         "piranha",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a level-file name back to its Kind.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown entity kind %q", name)
}

// traits are the capability flags of a kind. priority marks kinds whose
// vertical position changes while they live; they stay out of the sorted run.
type traits struct {
	terrain    bool
	friendly   bool
	projectile bool
	player     bool
	goalpost   bool
	powerup    bool
	priority   bool
}

var kindTraits = [kindCount]traits{
	KindPeach:           {player: true, friendly: true, priority: true},
	KindBlock:           {terrain: true, friendly: true},
	KindPipe:            {terrain: true, friendly: true},
	KindFlag:            {goalpost: true, friendly: true},
	KindMario:           {goalpost: true, friendly: true},
	KindMushroom:        {powerup: true, friendly: true, priority: true},
	KindFlower:          {powerup: true, friendly: true, priority: true},
	KindStar:            {powerup: true, friendly: true, priority: true},
	KindPeachFireball:   {projectile: true, friendly: true, priority: true},
	KindPiranhaFireball: {projectile: true, priority: true},
	KindShell:           {projectile: true, friendly: true, priority: true},
	KindGoomba:          {},
	KindKoopa:           {},
	KindPiranha:         {},
}

// Reward is what a block hands out the first time the player bonks it.
type Reward uint8

const (
	RewardNone Reward = iota
	RewardMushroom
	RewardFlower
	RewardStar
)

// goodie returns the kind spawned for the reward.
func (r Reward) goodie() (Kind, bool) {
	switch r {
	case RewardMushroom:
		return KindMushroom, true
	case RewardFlower:
		return KindFlower, true
	case RewardStar:
		return KindStar, true
	}
	return 0, false
}
