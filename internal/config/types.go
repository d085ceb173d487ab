package config

import "time"

// Config is the root configuration for the agent core daemon.
type Config struct {
	Agent   AgentConfig   `yaml:"agent,omitempty"`
	Logging LoggingConfig `yaml:"logging,omitempty"`
}

// AgentConfig controls the supervisor loop.
type AgentConfig struct {
	// IntervalSeconds is the pause between heartbeat ticks. Must be > 0.
	IntervalSeconds float64 `yaml:"intervalSeconds,omitempty"`
	// ErrorBackoffSeconds is the pause after a failed tick. Must be > 0.
	ErrorBackoffSeconds float64 `yaml:"errorBackoffSeconds,omitempty"`
}

// Interval returns the tick interval as a duration.
func (a AgentConfig) Interval() time.Duration {
	return time.Duration(a.IntervalSeconds * float64(time.Second))
}

// ErrorBackoff returns the post-failure pause as a duration.
func (a AgentConfig) ErrorBackoff() time.Duration {
	return time.Duration(a.ErrorBackoffSeconds * float64(time.Second))
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"`        // trace, debug, info, warn, error, fatal, silent
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "json"
	File         string `yaml:"file,omitempty"`         // log file path; empty = <base>/logs/agentcore.log, "none" disables
}
