package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultRefreshInterval = 500 * time.Millisecond
	defaultLsofPath        = "lsof"

	envRefreshInterval = "PORTWATCH_REFRESH_INTERVAL"
	envLsofPath        = "PORTWATCH_LSOF_PATH"
	envForceKill       = "PORTWATCH_FORCE_KILL"
)

// Config aggregates the tunables shared by the CLI and the TUI.
type Config struct {
	// RefreshInterval bounds how long the UI goes without attempting a
	// snapshot poll.
	RefreshInterval time.Duration
	// LsofPath locates the enumeration binary.
	LsofPath string
	// ForceKill escalates terminations from SIGTERM to SIGKILL.
	ForceKill bool
}

// Load builds a Config from defaults, an optional JSON file, an optional
// .env file, and environment overrides, in that order.
func Load(path string) (Config, error) {
	cfg := Config{
		RefreshInterval: defaultRefreshInterval,
		LsofPath:        defaultLsofPath,
	}

	if path != "" {
		fileCfg, err := loadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", path, err)
		}
		if fileCfg.RefreshInterval != 0 {
			cfg.RefreshInterval = fileCfg.RefreshInterval
		}
		if fileCfg.LsofPath != "" {
			cfg.LsofPath = fileCfg.LsofPath
		}
		cfg.ForceKill = fileCfg.ForceKill
	}

	// Missing .env is the normal case; plain env vars still apply.
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(envRefreshInterval); v != "" {
		if dur, err := time.ParseDuration(v); err == nil && dur > 0 {
			cfg.RefreshInterval = dur
		} else if err != nil {
			log.Printf("invalid %s value %q: %v", envRefreshInterval, v, err)
		}
	}

	if v := os.Getenv(envLsofPath); v != "" {
		cfg.LsofPath = v
	}

	if v := os.Getenv(envForceKill); v != "" {
		cfg.ForceKill = v == "1" || v == "true"
	}
}

type fileConfig struct {
	RefreshInterval string `json:"refresh_interval"`
	LsofPath        string `json:"lsof_path"`
	ForceKill       bool   `json:"force_kill"`
}

func loadFromFile(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	var raw fileConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg, err
	}

	if raw.RefreshInterval != "" {
		dur, err := time.ParseDuration(raw.RefreshInterval)
		if err != nil {
			return cfg, fmt.Errorf("parse refresh_interval: %w", err)
		}
		if dur <= 0 {
			return cfg, errors.New("refresh_interval must be > 0")
		}
		cfg.RefreshInterval = dur
	}
	cfg.LsofPath = raw.LsofPath
	cfg.ForceKill = raw.ForceKill

	return cfg, nil
}
