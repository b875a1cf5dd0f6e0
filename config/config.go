// Package config resolves the application settings from the environment,
// an optional .env file and an optional TOML file holding the editor defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/esimov/colorwheel"
	"github.com/esimov/colorwheel/imop"
	"github.com/esimov/colorwheel/palette"
	"github.com/esimov/colorwheel/store"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
)

// Environment variables.
const (
	EnvStore    = "COLORWHEEL_STORE"
	EnvDataPath = "COLORWHEEL_DATA_PATH"
	EnvDSN      = "COLORWHEEL_DSN"
	EnvLogLevel = "COLORWHEEL_LOG_LEVEL"
	EnvConfig   = "COLORWHEEL_CONFIG"
)

// Config holds the resolved settings.
type Config struct {
	Store    store.Config
	LogLevel logrus.Level
	Editor   Editor
	Palettes []palette.Palette
}

// Editor holds the initial stroke parameters and the history capacity of an editor session.
type Editor struct {
	Color        string  `toml:"color"`
	Radius       float64 `toml:"radius"`
	Mode         string  `toml:"mode"`
	Opacity      float64 `toml:"opacity"`
	Feather      int     `toml:"feather"`
	HistoryLimit int     `toml:"history_limit"`
}

type file struct {
	Editor   Editor            `toml:"editor"`
	Palettes []palette.Palette `toml:"palette"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Store: store.Config{
			Kind: store.Filesystem,
			Path: "./data",
			DSN:  "colorwheel.db",
		},
		LogLevel: logrus.InfoLevel,
		Editor: Editor{
			Color:   colorwheel.DefaultColor,
			Radius:  colorwheel.DefaultRadius,
			Mode:    imop.Normal.String(),
			Opacity: colorwheel.DefaultOpacity,
		},
	}
}

// Load reads the given dotenv files (".env" when none is given; missing files are skipped),
// then the environment and finally the TOML file named by COLORWHEEL_CONFIG.
// Variables already set in the environment win over the dotenv files.
func Load(dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, f := range dotenv {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, fmt.Errorf("unable to load %s: %w", f, err)
		}
	}

	cfg := Default()
	if v := os.Getenv(EnvStore); v != "" {
		cfg.Store.Kind = strings.ToLower(v)
	}
	if v := os.Getenv(EnvDataPath); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv(EnvDSN); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		lvl, err := logrus.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = lvl
	}
	if path := os.Getenv(EnvConfig); path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read config file: %w", err)
	}
	f := file{Editor: c.Editor}
	if err := toml.Unmarshal(data, &f); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("config file %s:%d:%d: %w", path, row, col, err)
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}
	c.Editor = f.Editor
	c.Palettes = f.Palettes
	return nil
}

// Brush returns the editor defaults as stroke parameters.
func (e Editor) Brush() (colorwheel.Brush, error) {
	b := colorwheel.DefaultBrush()
	if err := b.SetHex(e.Color); err != nil {
		return b, err
	}
	mode, err := imop.ParseBlendMode(e.Mode)
	if err != nil {
		return b, err
	}
	b.Mode = mode
	b.Radius = e.Radius
	b.Opacity = e.Opacity
	b.Feather = e.Feather

	return b, b.Validate()
}

// Registry returns the built-in palettes extended with the configured ones.
func (c Config) Registry() *palette.Registry {
	return palette.NewRegistry(c.Palettes...)
}
