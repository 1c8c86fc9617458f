// Package config loads ~/.shoplist/config.yaml.
//
// Precedence is flags > SHOPLIST_* env > file > defaults. Flags are applied by
// the cli package; Load handles the rest.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const fileName = "config.yaml"

type Config struct {
	// DataDir holds the SQLite snapshot used by the CLI and by the TUI when Persist is set.
	DataDir string `yaml:"data_dir,omitempty"`

	LogFile  string `yaml:"log_file,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`

	LoginDelay time.Duration `yaml:"login_delay,omitempty"`

	// Glyphs is "unicode" or "ascii".
	Glyphs string `yaml:"glyphs,omitempty"`

	Persist bool `yaml:"persist,omitempty"`
	Demo    bool `yaml:"demo,omitempty"`
}

func Default() Config {
	return Config{
		LogLevel:   "info",
		LoginDelay: time.Second,
		Glyphs:     "unicode",
	}
}

func Dir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.shoplist).
	if v := strings.TrimSpace(os.Getenv("SHOPLIST_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".shoplist"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// LoadFile reads the config file over the defaults, without env overrides.
// A missing file is fine.
func LoadFile() (Config, error) {
	cfg := Default()
	path, err := Path()
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return cfg, err
	}
	return cfg, nil
}

// Load reads the config file (a missing file is fine) and applies env overrides.
func Load() (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	if cfg.DataDir == "" {
		dir, err := Dir()
		if err != nil {
			return cfg, err
		}
		cfg.DataDir = filepath.Join(dir, "data")
	}
	return cfg, nil
}

func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Keys lists the names accepted by Set, in file order.
func Keys() []string {
	return []string{"data_dir", "log_file", "log_level", "login_delay", "glyphs", "persist", "demo"}
}

// Set assigns one field by its file key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.TrimSpace(key) {
	case "data_dir":
		if value == "" {
			return fmt.Errorf("data_dir: must not be empty")
		}
		c.DataDir = value
	case "log_file":
		c.LogFile = value
	case "log_level":
		lvl, err := zapcore.ParseLevel(value)
		if err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
		c.LogLevel = lvl.String()
	case "login_delay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("login_delay: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("login_delay: must not be negative")
		}
		c.LoginDelay = d
	case "glyphs":
		switch value {
		case "unicode", "ascii":
			c.Glyphs = value
		default:
			return fmt.Errorf("glyphs: expected unicode or ascii, got %q", value)
		}
	case "persist", "demo":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if key == "persist" {
			c.Persist = b
		} else {
			c.Demo = b
		}
	default:
		return fmt.Errorf("unknown config key %q (one of: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := env("SHOPLIST_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := env("SHOPLIST_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := env("SHOPLIST_LOG_LEVEL"); v != "" {
		if _, err := zapcore.ParseLevel(v); err != nil {
			return fmt.Errorf("SHOPLIST_LOG_LEVEL: %w", err)
		}
		cfg.LogLevel = v
	}
	if v := env("SHOPLIST_GLYPHS"); v != "" {
		cfg.Glyphs = v
	}
	if v := env("SHOPLIST_LOGIN_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SHOPLIST_LOGIN_DELAY: %w", err)
		}
		cfg.LoginDelay = d
	}
	for name, dst := range map[string]*bool{
		"SHOPLIST_PERSIST": &cfg.Persist,
		"SHOPLIST_DEMO":    &cfg.Demo,
	} {
		v := env(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = b
	}
	return nil
}

func env(k string) string { return strings.TrimSpace(os.Getenv(k)) }
