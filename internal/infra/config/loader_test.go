package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	err := os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o644)
	require.NoError(t, err)
}

func TestLoader_Load_NoFiles(t *testing.T) {
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLogLevel, cfg.Log.Level)
	assert.Equal(t, domain.DefaultIndent, cfg.Display.Indent)
	assert.Equal(t, domain.DefaultDisplayWidth, cfg.Display.Width)
	assert.Equal(t, domain.StatesFileName, cfg.States.File)
	assert.Empty(t, cfg.Warnings)
}

func TestLoader_Load_LocalConfigOnly(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[display]
indent = "  "
color = "never"
show_done = true

[log]
level = "debug"

[storage]
auto_commit = true
`)

	// Execute
	cfg, err := NewLoaderWithGlobalDir(dataDir, t.TempDir()).Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "  ", cfg.Display.Indent)
	assert.Equal(t, domain.ColorNever, cfg.Display.Color)
	assert.True(t, cfg.Display.ShowDone)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Storage.AutoCommit)
	assert.Equal(t, domain.DefaultDisplayWidth, cfg.Display.Width)
}

func TestLoader_Load_LocalOverridesGlobal(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	globalDir := t.TempDir()
	writeConfig(t, globalDir, `
[display]
width = 120
show_done = true

[log]
level = "warn"

[states]
file = "/shared/states.yaml"
`)
	writeConfig(t, dataDir, `
[display]
width = 0
show_done = false
`)

	// Execute
	cfg, err := NewLoaderWithGlobalDir(dataDir, globalDir).Load()

	// Assert: explicit zero values in the local file still win
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Display.Width)
	assert.False(t, cfg.Display.ShowDone)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/shared/states.yaml", cfg.StatesPath(dataDir))
}

func TestLoader_Load_Warnings(t *testing.T) {
	// Setup
	dataDir := t.TempDir()
	writeConfig(t, dataDir, `
[display]
colour = "never"
color = "sometimes"

[workers]
default = "x"

[log]
file = "x.log"
`)

	// Execute
	cfg, err := NewLoaderWithGlobalDir(dataDir, "").Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{
		`invalid value in [display]: color = "sometimes"`,
		"unknown key in [display]: colour",
		"unknown key in [log]: file",
		"unknown section: workers",
	}, cfg.Warnings)
	assert.Equal(t, domain.ColorAuto, cfg.Display.Color)
}

func TestLoader_Load_InvalidToml(t *testing.T) {
	dataDir := t.TempDir()
	writeConfig(t, dataDir, "[log\nlevel = ")

	_, err := NewLoaderWithGlobalDir(dataDir, "").Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse ")
}
