package world

// Score values.
const (
	scoreEnemy    = 100
	scoreMushroom = 75
	scoreFlower   = 50
	scoreStar     = 100
	scoreGoalpost = 1000
)

// Movement per tick, in pixels.
const (
	peachStep   = 4
	goodieStep  = 2
	missileStep = 2
	enemyStep   = 1
)

type (
	behaviorFunc func(w *World, e *Entity)
	contactFunc  func(w *World, e, instigator *Entity)
)

// Dispatch tables: kind → per-tick behavior, kind → contact response.
// Filled in init because the functions reach back into the tables.
var (
	behaviors [kindCount]behaviorFunc
	contacts  [kindCount]contactFunc
)

func init() {
	behaviors = [kindCount]behaviorFunc{
		KindFlag:            behaveGoalpost,
		KindMario:           behaveGoalpost,
		KindMushroom:        behaveGoodie,
		KindFlower:          behaveGoodie,
		KindStar:            behaveGoodie,
		KindPeachFireball:   behaveFriendlyMissile,
		KindShell:           behaveFriendlyMissile,
		KindPiranhaFireball: behavePiranhaFireball,
		KindGoomba:          behaveWalker,
		KindKoopa:           behaveWalker,
		KindPiranha:         behavePiranha,
	}
	contacts = [kindCount]contactFunc{
		KindPeach:   contactPlayer,
		KindBlock:   contactBlock,
		KindGoomba:  contactEnemy,
		KindKoopa:   contactEnemy,
		KindPiranha: contactEnemy,
	}
}
