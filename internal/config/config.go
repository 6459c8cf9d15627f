// Package config loads the planner's user configuration: defaults, then the YAML file, then environment
// overrides. Command-line flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfigDir = "PLANNER_CONFIG_DIR"
	FileName     = "config.yaml"
	dirName      = ".siralim-planner"
)

type LoggingConfig struct {
	Level  string `yaml:"level" env:"PLANNER_LOG_LEVEL"`
	Format string `yaml:"format" env:"PLANNER_LOG_FORMAT"`
	Source bool   `yaml:"source" env:"PLANNER_LOG_SOURCE"`
	File   string `yaml:"file" env:"PLANNER_LOG_FILE"`
}

type Config struct {
	ConfigVersion int `yaml:"config_version"`
	// DataDir holds planner.sqlite. Empty means the config directory.
	DataDir string `yaml:"data_dir" env:"PLANNER_DATA_DIR"`
	// CatalogDir holds monsters/spells/relics JSON. Empty means the built-in sample catalog.
	CatalogDir string        `yaml:"catalog_dir" env:"PLANNER_CATALOG_DIR"`
	Party      string        `yaml:"party" env:"PLANNER_PARTY"`
	Format     string        `yaml:"format" env:"PLANNER_FORMAT"`
	Autosave   time.Duration `yaml:"autosave" env:"PLANNER_AUTOSAVE"`
	Logging    LoggingConfig `yaml:"logging"`
}

func Defaults() Config {
	return Config{
		ConfigVersion: 1,
		Party:         "default",
		Format:        "json",
		Autosave:      2 * time.Second,
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Dir returns the per-user config directory.
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvConfigDir)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(home, dirName), nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the user config file if present and applies environment overrides.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Defaults(), err
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit file path. A missing file is not an error.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, err
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Dir(path)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *Config, src *Config) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := strings.TrimSpace(src.DataDir); v != "" {
		dst.DataDir = v
	}
	if v := strings.TrimSpace(src.CatalogDir); v != "" {
		dst.CatalogDir = v
	}
	if v := strings.TrimSpace(src.Party); v != "" {
		dst.Party = v
	}
	if v := strings.TrimSpace(src.Format); v != "" {
		dst.Format = v
	}
	if src.Autosave > 0 {
		dst.Autosave = src.Autosave
	}
	if v := strings.TrimSpace(src.Logging.Level); v != "" {
		dst.Logging.Level = v
	}
	if v := strings.TrimSpace(src.Logging.Format); v != "" {
		dst.Logging.Format = v
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func (c *Config) normalize() {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Party = strings.TrimSpace(c.Party)
	if c.Autosave <= 0 {
		c.Autosave = Defaults().Autosave
	}
}
