package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePathsDefault(t *testing.T) {
	t.Setenv("AGENTCORE_HOME", "")

	paths, err := ResolvePaths()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".agentcore"), paths.Base)
	assert.Equal(t, filepath.Join(home, ".agentcore", "config.yaml"), paths.Config)
	assert.Equal(t, filepath.Join(home, ".agentcore", "logs"), paths.Logs)
}

func TestResolvePathsHomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AGENTCORE_HOME", dir)

	paths, err := ResolvePaths()
	require.NoError(t, err)
	assert.Equal(t, dir, paths.Base)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), paths.Config)
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("AGENTCORE_HOME", filepath.Join(dir, "core"))

	paths, err := ResolvePaths()
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirs())

	info, err := os.Stat(paths.Logs)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestLogFile(t *testing.T) {
	paths := Paths{Logs: "/data/logs"}

	assert.Equal(t, filepath.Join("/data/logs", "agentcore.log"), paths.LogFile(LoggingConfig{}))
	assert.Equal(t, "/var/log/core.log", paths.LogFile(LoggingConfig{File: "/var/log/core.log"}))
	assert.Empty(t, paths.LogFile(LoggingConfig{File: "none"}))
}

func TestParseConfigPath(t *testing.T) {
	parts, err := ParseConfigPath("agent.intervalSeconds")
	require.NoError(t, err)
	assert.Equal(t, []string{"agent", "intervalSeconds"}, parts)
}

func TestParseConfigPathRejectsEmpty(t *testing.T) {
	_, err := ParseConfigPath("")
	assert.Error(t, err)

	_, err = ParseConfigPath("agent..interval")
	assert.Error(t, err)
}

func TestParseConfigPathRejectsBlockedKeys(t *testing.T) {
	for _, raw := range []string{"__proto__", "agent.prototype", "constructor.x"} {
		_, err := ParseConfigPath(raw)
		assert.Error(t, err, raw)
	}
}

func TestGetSetUnsetValueAtPath(t *testing.T) {
	root := map[string]any{}

	SetValueAtPath(root, []string{"agent", "intervalSeconds"}, 30)
	val, ok := GetValueAtPath(root, []string{"agent", "intervalSeconds"})
	require.True(t, ok)
	assert.Equal(t, 30, val)

	_, ok = GetValueAtPath(root, []string{"agent", "missing"})
	assert.False(t, ok)

	assert.True(t, UnsetValueAtPath(root, []string{"agent", "intervalSeconds"}))
	assert.False(t, UnsetValueAtPath(root, []string{"agent", "intervalSeconds"}))

	_, ok = GetValueAtPath(root, []string{"agent", "intervalSeconds"})
	assert.False(t, ok)
}

func TestSetValueAtPathReplacesScalar(t *testing.T) {
	root := map[string]any{"agent": "oops"}

	SetValueAtPath(root, []string{"agent", "intervalSeconds"}, 5)
	val, ok := GetValueAtPath(root, []string{"agent", "intervalSeconds"})
	require.True(t, ok)
	assert.Equal(t, 5, val)
}
