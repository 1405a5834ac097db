// Package config loads runtime settings. Defaults are overlaid by an optional
// YAML file, and LUDO_* environment variables win over both.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"ludo/agent"
	"ludo/game"
	"ludo/meta"
)

type Config struct {
	LogLevel   string           `yaml:"log_level" env:"LUDO_LOG_LEVEL"`
	DBPath     string           `yaml:"db_path" env:"LUDO_DB_PATH"`
	Mode       game.Mode        `yaml:"mode" env:"LUDO_MODE"`
	Difficulty agent.Difficulty `yaml:"difficulty" env:"LUDO_DIFFICULTY"`
	Pacing     bool             `yaml:"pacing" env:"LUDO_PACING"`
	MaxTurns   int              `yaml:"max_turns" env:"LUDO_MAX_TURNS"`
	Seed       uint64           `yaml:"seed" env:"LUDO_SEED"` // 0 seeds from the clock
	Experiment Experiment       `yaml:"experiment" envPrefix:"LUDO_EXPERIMENT_"`
}

type Experiment struct {
	Games      int    `yaml:"games" env:"GAMES"`
	Workers    int    `yaml:"workers" env:"WORKERS"`
	ResultsDir string `yaml:"results_dir" env:"RESULTS_DIR"`
}

func Default() Config {
	return Config{
		LogLevel:   zerolog.InfoLevel.String(),
		DBPath:     meta.DB_PATH,
		Mode:       game.QuickMode,
		Difficulty: agent.Medium,
		Pacing:     true,
		MaxTurns:   meta.MAX_TURNS,
		Experiment: Experiment{
			Games:      meta.GAMES_PER_MATCHUP,
			Workers:    meta.GO_ROUTINES,
			ResultsDir: meta.RESULTS_DIR,
		},
	}
}

// Load returns the defaults overlaid by the YAML file at path, if any, and
// then by the environment. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("max turns must be positive, got %d", c.MaxTurns)
	}
	if c.Experiment.Games <= 0 {
		return fmt.Errorf("experiment games must be positive, got %d", c.Experiment.Games)
	}
	if c.Experiment.Workers <= 0 {
		return fmt.Errorf("experiment workers must be positive, got %d", c.Experiment.Workers)
	}
	return nil
}

// ConfigureLogging sets zerolog's global level.
func (c Config) ConfigureLogging() error {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	return nil
}
