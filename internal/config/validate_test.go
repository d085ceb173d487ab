package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Empty(t, Validate(&cfg))
}

func TestValidateZeroInterval(t *testing.T) {
	cfg := Defaults()
	cfg.Agent.IntervalSeconds = 0

	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "agent.intervalSeconds", issues[0].Path)
}

func TestValidateNegativeBackoff(t *testing.T) {
	cfg := Defaults()
	cfg.Agent.ErrorBackoffSeconds = -5

	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "agent.errorBackoffSeconds", issues[0].Path)
}

func TestValidateBadLogLevel(t *testing.T) {
	cfg := Defaults()
	cfg.Logging.Level = "verbose"

	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "logging.level", issues[0].Path)
	assert.Contains(t, issues[0].String(), "verbose")
}

func TestValidateBadConsoleStyle(t *testing.T) {
	cfg := Defaults()
	cfg.Logging.ConsoleStyle = "fancy"

	issues := Validate(&cfg)
	require.Len(t, issues, 1)
	assert.Equal(t, "logging.consoleStyle", issues[0].Path)
}

func TestValidateCollectsAllIssues(t *testing.T) {
	cfg := Config{
		Agent:   AgentConfig{IntervalSeconds: -1, ErrorBackoffSeconds: 0},
		Logging: LoggingConfig{Level: "loud", ConsoleStyle: "fancy"},
	}

	issues := Validate(&cfg)
	assert.Len(t, issues, 4)
}
