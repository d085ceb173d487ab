package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads the config file, applies environment overrides, and returns
// a merged Config. Missing files produce defaults only.
func Load(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(&cfg)
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}

	applyDefaults(&cfg)
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// LoadRaw reads the config file into a generic map for path-based access.
func LoadRaw(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]any{}, nil
		}
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &ConfigError{Message: "failed to parse config: " + err.Error()}
	}
	return raw, nil
}

// SaveRaw writes a generic map back to a YAML config file.
func SaveRaw(path string, raw map[string]any) error {
	data, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// applyDefaults fills zero-value fields with sensible defaults.
// Explicitly negative values are left alone so validation can reject them.
func applyDefaults(cfg *Config) {
	if cfg.Agent.IntervalSeconds == 0 {
		cfg.Agent.IntervalSeconds = 10
	}
	if cfg.Agent.ErrorBackoffSeconds == 0 {
		cfg.Agent.ErrorBackoffSeconds = 5
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.ConsoleStyle == "" {
		cfg.Logging.ConsoleStyle = "pretty"
	}
}

// applyEnvOverrides reads AGENTCORE_* environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("AGENTCORE_INTERVAL_SECONDS"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Agent.IntervalSeconds = secs
		}
	}
	if v := os.Getenv("AGENTCORE_ERROR_BACKOFF_SECONDS"); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Agent.ErrorBackoffSeconds = secs
		}
	}
	if v := os.Getenv("AGENTCORE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := os.Getenv("AGENTCORE_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}
