package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultExitWindow      = 300 * time.Millisecond
	DefaultClaimPrizeLabel = "Special Offer"
	DefaultDragScale       = 8.0
)

type Config struct {
	DataDir     string `yaml:"-"`
	DBPath      string `yaml:"-"`
	CatalogPath string `yaml:"-"`
	LogPath     string `yaml:"-"`

	ExitWindow      time.Duration `yaml:"exit_window" env:"KIOSK_EXIT_WINDOW"`
	ClaimPrizeLabel string        `yaml:"claim_prize_label" env:"KIOSK_CLAIM_PRIZE"`
	LogLevel        string        `yaml:"log_level" env:"KIOSK_LOG_LEVEL"`
	// Seed pins the game-kind source; zero means auto-seeded.
	Seed uint64 `yaml:"seed" env:"KIOSK_SEED"`
	// DragScale converts one terminal cell of mouse travel into gesture offset units.
	DragScale float64 `yaml:"drag_scale" env:"KIOSK_DRAG_SCALE"`
}

// New builds the config for dataDir, layering <dataDir>/kiosk.yaml and then the
// KIOSK_* environment over the defaults.
func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:         dataDir,
		DBPath:          filepath.Join(dataDir, ".kiosk", "kiosk.db"),
		CatalogPath:     filepath.Join(dataDir, "catalog.yaml"),
		LogPath:         filepath.Join(dataDir, ".kiosk", "kiosk.log"),
		ExitWindow:      DefaultExitWindow,
		ClaimPrizeLabel: DefaultClaimPrizeLabel,
		LogLevel:        "info",
		DragScale:       DefaultDragScale,
	}
	if err := cfg.loadFile(filepath.Join(dataDir, "kiosk.yaml")); err != nil {
		return Config{}, err
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.ExitWindow <= 0 {
		return fmt.Errorf("exit window must be positive, got %s", c.ExitWindow)
	}
	if c.DragScale <= 0 {
		return fmt.Errorf("drag scale must be positive, got %g", c.DragScale)
	}
	if strings.TrimSpace(c.ClaimPrizeLabel) == "" {
		return fmt.Errorf("claim prize label is required")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
}
