// Package config loads battlecore's TOML configuration and layers
// flag/env overrides on top via viper. Grounded on
// rdtc8822-debug-L1JGO-Whale/internal/config's section-per-concern
// Config struct + BurntSushi/toml Unmarshal-into-defaults loader, with
// the viper/cobra flag-binding layer from
// suderio-ancient-draconic/cmd's viper.GetString usage added on top
// (cmd/battlecore binds these same keys to cobra flags).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	"github.com/pfassina/grimdark/internal/combat"
)

// Config is the TOML-tagged root, one section per concern — the same
// shape as the teacher's ServerConfig/DatabaseConfig/NetworkConfig
// split, generalized to battlecore's own sections.
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Timeline    TimelineConfig    `toml:"timeline"`
	Combat      CombatConfig      `toml:"combat"`
	AI          AIConfig          `toml:"ai"`
	Persistence PersistenceConfig `toml:"persistence"`
	Logging     LoggingConfig     `toml:"logging"`
}

// ServerConfig covers the spectator/replay websocket listener (spec
// §6.2's render boundary, internal/transport's Hub).
type ServerConfig struct {
	BindAddress  string        `toml:"bind_address"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
}

// TimelineConfig seeds the scheduler's RNG (spec §3.4). RecursionLimit
// is loaded and bound like every other key, but nothing reads it: the
// event bus always applies events.DefaultRecursionLimit (spec §7's
// EventRecursionLimit).
type TimelineConfig struct {
	// Seed of 0 means "derive from wall clock" — engine.NewInstance's
	// callers check this the same way the teacher's engine.NewConfig
	// checked time.Now().UnixNano() against an explicit override.
	Seed           int64 `toml:"seed"`
	RecursionLimit int   `toml:"recursion_limit"`
}

// CombatConfig covers internal/combat.Calculator's tunables (spec
// §4.3's damage formula constants, kept out of code so a scenario pack
// can retune them without a rebuild).
type CombatConfig struct {
	CritMultiplier      float64 `toml:"crit_multiplier"`
	QuickStrikeFactor   float64 `toml:"quick_strike_factor"`
	PowerAttackFactor   float64 `toml:"power_attack_factor"`
}

// AIConfig selects the AI scoring backend (spec §4.10's Scorer seam;
// the Lua path is internal/ai/script).
type AIConfig struct {
	ScriptDir string `toml:"script_dir"`
}

// PersistenceConfig covers replay file output and the optional durable
// archive (spec §6.4; internal/persistence/archive's pgx/goose stack).
type PersistenceConfig struct {
	ReplayDir  string         `toml:"replay_dir"`
	ArchiveDSN string         `toml:"archive_dsn"`
}

// LoggingConfig drives internal/obs's logrus initialization (spec
// SPEC_FULL.md §A.1).
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "text" or "json"
}

// Load reads path as TOML into a defaulted Config, exactly as the
// teacher's config.Load(path) does (defaults() then toml.Unmarshal
// over it, so an absent section keeps its default rather than
// zeroing out).
func Load(path string) (*Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the config battlecore runs with if no TOML file and
// no override is supplied.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			BindAddress:  "0.0.0.0:8080",
			WriteTimeout: 10 * time.Second,
			ReadTimeout:  60 * time.Second,
		},
		Timeline: TimelineConfig{
			Seed:           0,
			RecursionLimit: 16,
		},
		Combat: CombatConfig{
			CritMultiplier:    combat.DefaultTuning().CritMultiplier,
			QuickStrikeFactor: combat.DefaultTuning().QuickStrikeFactor,
			PowerAttackFactor: combat.DefaultTuning().PowerAttackFactor,
		},
		AI: AIConfig{
			ScriptDir: "",
		},
		Persistence: PersistenceConfig{
			ReplayDir:  "./replays",
			ArchiveDSN: "",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// BindFlags registers every Config field as a viper key bound to v,
// so cobra flags > BATTLECORE_* env vars > the TOML file > Defaults()
// — the same layering suderio-ancient-draconic's cmd package gets from
// viper.GetString("worlds_dir") once cobra flags are bound to it.
// cmd/battlecore calls this once at root-command init, then calls
// FromViper after flag parsing to materialize the final Config.
func BindFlags(v *viper.Viper) {
	v.SetEnvPrefix("BATTLECORE")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("server.bind_address", d.Server.BindAddress)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("timeline.seed", d.Timeline.Seed)
	v.SetDefault("timeline.recursion_limit", d.Timeline.RecursionLimit)
	v.SetDefault("combat.crit_multiplier", d.Combat.CritMultiplier)
	v.SetDefault("combat.quick_strike_factor", d.Combat.QuickStrikeFactor)
	v.SetDefault("combat.power_attack_factor", d.Combat.PowerAttackFactor)
	v.SetDefault("ai.script_dir", d.AI.ScriptDir)
	v.SetDefault("persistence.replay_dir", d.Persistence.ReplayDir)
	v.SetDefault("persistence.archive_dsn", d.Persistence.ArchiveDSN)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// FromViper reads every bound key back out of v into a Config value,
// the step that turns flag/env/file layering into the concrete struct
// the rest of the program consumes.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			BindAddress:  v.GetString("server.bind_address"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
		},
		Timeline: TimelineConfig{
			Seed:           v.GetInt64("timeline.seed"),
			RecursionLimit: v.GetInt("timeline.recursion_limit"),
		},
		Combat: CombatConfig{
			CritMultiplier:    v.GetFloat64("combat.crit_multiplier"),
			QuickStrikeFactor: v.GetFloat64("combat.quick_strike_factor"),
			PowerAttackFactor: v.GetFloat64("combat.power_attack_factor"),
		},
		AI: AIConfig{
			ScriptDir: v.GetString("ai.script_dir"),
		},
		Persistence: PersistenceConfig{
			ReplayDir:  v.GetString("persistence.replay_dir"),
			ArchiveDSN: v.GetString("persistence.archive_dsn"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}
}

// Seed resolves Timeline.Seed against wall-clock time the same way the
// teacher's engine.NewConfig does: 0 means "pick one now".
func (c *Config) Seed() int64 {
	if c.Timeline.Seed != 0 {
		return c.Timeline.Seed
	}
	return time.Now().UnixNano()
}

// Tuning converts CombatConfig into the combat.Tuning
// engine.Materialize threads into the action catalog and calculator.
func (c *Config) Tuning() combat.Tuning {
	return combat.Tuning{
		CritMultiplier:    c.Combat.CritMultiplier,
		QuickStrikeFactor: c.Combat.QuickStrikeFactor,
		PowerAttackFactor: c.Combat.PowerAttackFactor,
	}
}
