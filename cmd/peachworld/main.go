package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/peachworld/server/internal/config"
	"github.com/peachworld/server/internal/core/event"
	"github.com/peachworld/server/internal/data"
	"github.com/peachworld/server/internal/game"
	"github.com/peachworld/server/internal/persist"
	"github.com/peachworld/server/internal/scripting"
	"github.com/peachworld/server/internal/world"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(levelDir string) {
	fmt.Println()
	fmt.Println("\033[35;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[35;1m  │\033[0m            peachworld  v0.1.0             \033[35;1m│\033[0m")
	fmt.Println("\033[35;1m  │\033[0m        headless platformer simulation     \033[35;1m│\033[0m")
	fmt.Println("\033[35;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mLevels:\033[0m %s\n\n", levelDir)
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-len(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/peachworld.toml"
	if p := os.Getenv("PEACHWORLD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if mode := os.Getenv("PEACHWORLD_PROFILE"); mode != "" {
		defer startProfile(mode).Stop()
	}

	printBanner(cfg.Levels.Dir)

	// 3. Optional result ledger in PostgreSQL
	printSection("Database")
	var results *persist.ResultRepo
	if cfg.Database.DSN == "" {
		printOK("disabled, results are only logged")
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		version, err := persist.RunMigrations(ctx, db.Pool, log)
		cancel()
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		results = persist.NewResultRepo(db)
		printOK(fmt.Sprintf("connected, schema version %d", version))
	}

	// 4. Scripted input
	printSection("Scripting")
	engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	if cfg.Scripting.InputScript != "" {
		if err := engine.LoadFile(cfg.Scripting.InputScript); err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
	}
	printOK("lua engine ready")

	// 5. Game and bus subscribers
	bus := event.NewBus()
	event.Subscribe(bus, func(ev event.CuePlayed) {
		log.Debug("cue", zap.String("cue", string(ev.Cue)), zap.Uint64("tick", ev.Tick))
	})
	event.Subscribe(bus, func(ev event.ScoreChanged) {
		log.Debug("score", zap.Int("delta", ev.Delta), zap.Int("total", ev.Total))
	})
	event.Subscribe(bus, func(ev event.LivesChanged) {
		log.Info("life lost", zap.Int("lives", ev.Lives))
	})

	levels := data.NewLevelDir(cfg.Levels.Dir)
	g := game.New(game.Options{
		Sim:    cfg.Sim,
		Levels: levels,
		Input:  engine,
		Bus:    bus,
		Log:    log,
		Seed:   time.Now().UnixNano(),
	})
	defer g.Teardown()

	runID := fmt.Sprintf("%x", time.Now().UnixNano())
	var played []persist.LevelResult
	event.Subscribe(bus, func(ev event.LevelEnded) {
		played = append(played, persist.LevelResult{
			RunID:   runID,
			Level:   ev.Level,
			Outcome: ev.Status.String(),
			Score:   ev.Score,
			Lives:   g.Scoreboard().Lives(),
			Ticks:   ev.Ticks,
		})
	})
	if results != nil {
		defer func() { saveRun(results, played, log) }()
	}

	// 6. Play
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	printSection("Running")
	printStat("Start lives", cfg.Sim.StartLives)
	printReady(fmt.Sprintf("game loop (tick: %s)", cfg.Sim.TickRate))
	fmt.Println()

	level := cfg.Levels.First
	for {
		if _, err := g.Init(level); err != nil {
			return err
		}
		st, err := playLevel(g, cfg, shutdownCh, log)
		if err != nil {
			if errors.Is(err, errShutdown) {
				log.Info("stopped", zap.Int("level", level), zap.Int("score", g.Scoreboard().Score()))
				return nil
			}
			return err
		}

		switch st {
		case world.StatusPlayerDied:
			if g.Scoreboard().Lives() == 0 {
				log.Info("game over", zap.Int("score", g.Scoreboard().Score()))
				return nil
			}
		case world.StatusLevelFinished:
			level++
		case world.StatusPlayerWon:
			log.Info("player won", zap.Int("score", g.Scoreboard().Score()))
			return nil
		}
	}
}

var (
	errShutdown = errors.New("shutdown requested")
	errTimedOut = errors.New("level ran out of ticks")
)

// playLevel ticks the loaded level until it ends, the tick budget runs out
// or a shutdown signal arrives.
func playLevel(g *game.Game, cfg *config.Config, shutdownCh <-chan os.Signal, log *zap.Logger) (world.Status, error) {
	ticker := time.NewTicker(cfg.Sim.TickRate)
	defer ticker.Stop()

	ticks := 0
	for {
		select {
		case <-ticker.C:
			st := g.Tick()
			if st.Terminal() {
				log.Info(g.StatusText(), zap.Stringer("status", st))
				return st, nil
			}
			ticks++
			if cfg.Levels.MaxTicks > 0 && ticks >= cfg.Levels.MaxTicks {
				return world.StatusContinue, fmt.Errorf("level %d: %w after %d", g.Level(), errTimedOut, ticks)
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return world.StatusContinue, errShutdown
		}
	}
}

// saveRun stores the run's level results and logs the best score on the
// last level played.
func saveRun(results *persist.ResultRepo, played []persist.LevelResult, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := results.RecordRun(ctx, played); err != nil {
		log.Error("save run", zap.Error(err))
		return
	}
	if len(played) == 0 {
		return
	}
	last := played[len(played)-1].Level
	best, err := results.Best(ctx, last, 1)
	if err != nil {
		log.Error("load best result", zap.Error(err))
		return
	}
	if len(best) > 0 {
		log.Info("best on record",
			zap.Int("level", last),
			zap.Int("score", best[0].Score),
			zap.String("run", best[0].RunID),
		)
	}
}

func startProfile(mode string) interface{ Stop() } {
	if mode == "mem" {
		return profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	}
	return profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
