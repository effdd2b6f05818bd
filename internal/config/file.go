package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sungur/minitext/internal/log"
	"gopkg.in/yaml.v3"
)

// GlobalConfigPath returns the default config file path
// ($XDG_CONFIG_HOME/minitext/config.yaml, usually ~/.config/minitext/config.yaml).
func GlobalConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "minitext", "config.yaml")
}

// ResolvePath returns the file a config command should act on: path if set,
// else MINITEXT_CONFIG, else GlobalConfigPath.
func ResolvePath(path string) string {
	if path != "" {
		return path
	}
	if env := os.Getenv(Env.ConfigPath); env != "" {
		return env
	}
	return GlobalConfigPath()
}

// LoadConfig loads the configuration and fills every unset field with its
// default.
//
// Precedence (later overrides earlier):
//  1. Built-in defaults
//  2. Global config (GlobalConfigPath)
//  3. Explicit config: path argument, or MINITEXT_CONFIG when path is empty
//  4. MINITEXT_DEBUG
//
// Missing or unparseable files are skipped. CLI flags should be applied on
// top of the returned config by the caller.
func LoadConfig(path string) Config {
	defaults := Defaults()
	layers := []*Config{&defaults}

	global := GlobalConfigPath()
	if global != "" {
		if cfg := loadConfigFile(global); cfg != nil {
			log.Debugf("Loaded global config: %s", global)
			layers = append(layers, cfg)
		}
	}

	if path == "" {
		path = os.Getenv(Env.ConfigPath)
	}
	if path != "" && path != global {
		if cfg := loadConfigFile(path); cfg != nil {
			log.Debugf("Loaded config: %s", path)
			layers = append(layers, cfg)
		} else {
			log.Debugf("Config not loaded: %s", path)
		}
	}

	if v := os.Getenv(Env.Debug); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			layers = append(layers, &Config{Debug: n})
		}
	}

	return mergeConfigs(layers...)
}

// loadConfigFile reads and parses a single config file using yaml.v3.
// Returns nil if the file does not exist or cannot be parsed.
func loadConfigFile(path string) *Config {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Debugf("Failed to parse config %s: %v", path, err)
		return nil
	}
	return &cfg
}

// SaveConfig writes cfg to path as YAML, creating parent directories.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		return fmt.Errorf("no config path")
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// mergeConfigs merges multiple configs with later values taking precedence.
// nil configs and zero fields are skipped.
func mergeConfigs(configs ...*Config) Config {
	result := Config{}

	for _, cfg := range configs {
		if cfg == nil {
			continue
		}

		if cfg.Timing.CopyFromWait > 0 {
			result.Timing.CopyFromWait = cfg.Timing.CopyFromWait
		}
		if cfg.Timing.KeyInputWait > 0 {
			result.Timing.KeyInputWait = cfg.Timing.KeyInputWait
		}
		if cfg.Timing.WindowActivateWait > 0 {
			result.Timing.WindowActivateWait = cfg.Timing.WindowActivateWait
		}
		if cfg.Timing.CommandTimeout > 0 {
			result.Timing.CommandTimeout = cfg.Timing.CommandTimeout
		}
		if cfg.Tools.Automation != "" {
			result.Tools.Automation = cfg.Tools.Automation
		}
		if cfg.Tools.Clipboard != "" {
			result.Tools.Clipboard = cfg.Tools.Clipboard
		}
		if cfg.Tools.Opener != "" {
			result.Tools.Opener = cfg.Tools.Opener
		}
		if cfg.Debug > 0 {
			result.Debug = cfg.Debug
		}
	}

	return result
}
