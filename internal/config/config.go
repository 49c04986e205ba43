package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim       SimConfig       `toml:"sim"`
	Levels    LevelsConfig    `toml:"levels"`
	Scripting ScriptingConfig `toml:"scripting"`
	Database  DatabaseConfig  `toml:"database"`
	Logging   LoggingConfig   `toml:"logging"`
}

type SimConfig struct {
	TickRate             time.Duration `toml:"tick_rate"`
	SpriteWidth          int           `toml:"sprite_width"`
	SpriteHeight         int           `toml:"sprite_height"`
	StartLives           int           `toml:"start_lives"`
	InvulnerabilityTicks int           `toml:"invulnerability_ticks"`
	StarPowerTicks       int           `toml:"star_power_ticks"`
	FireCooldownTicks    int           `toml:"fire_cooldown_ticks"`
	PiranhaFireDelay     int           `toml:"piranha_fire_delay"`
	JumpDistance         int           `toml:"jump_distance"`
	PoweredJumpDistance  int           `toml:"powered_jump_distance"`
	CheckInvariants      bool          `toml:"check_invariants"` // validate the index after every reap
}

type LevelsConfig struct {
	Dir      string `toml:"dir"`
	First    int    `toml:"first"`
	MaxTicks int    `toml:"max_ticks"` // 0 = unbounded
}

type ScriptingConfig struct {
	Dir         string `toml:"dir"`
	InputScript string `toml:"input_script"` // empty = no scripted input
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn"` // empty disables result recording
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return defaults()
}

func (c *Config) validate() error {
	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("sim.tick_rate must be positive, got %s", c.Sim.TickRate)
	}
	if c.Sim.SpriteWidth <= 0 || c.Sim.SpriteHeight <= 0 {
		return fmt.Errorf("sim sprite size must be positive, got %dx%d", c.Sim.SpriteWidth, c.Sim.SpriteHeight)
	}
	if c.Sim.StartLives <= 0 {
		return fmt.Errorf("sim.start_lives must be positive, got %d", c.Sim.StartLives)
	}
	if c.Levels.First <= 0 {
		return fmt.Errorf("levels.first must be positive, got %d", c.Levels.First)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Sim: SimConfig{
			TickRate:             50 * time.Millisecond, // 20 ticks per second
			SpriteWidth:          8,
			SpriteHeight:         8,
			StartLives:           3,
			InvulnerabilityTicks: 10,
			StarPowerTicks:       150,
			FireCooldownTicks:    8,
			PiranhaFireDelay:     40,
			JumpDistance:         8,
			PoweredJumpDistance:  12,
		},
		Levels: LevelsConfig{
			Dir:      "data/levels",
			First:    1,
			MaxTicks: 6000,
		},
		Scripting: ScriptingConfig{
			Dir: "scripts",
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
