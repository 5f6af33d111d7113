package config

import (
	"path/filepath"
	"testing"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetLocalConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		dataDir := t.TempDir()
		configContent := "[log]\nlevel = \"debug\""
		writeConfig(t, dataDir, configContent)

		manager := NewManagerWithGlobalDir(dataDir, "")
		info := manager.GetLocalConfigInfo()

		assert.Equal(t, filepath.Join(dataDir, domain.ConfigFileName), info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		dataDir := t.TempDir()

		manager := NewManagerWithGlobalDir(dataDir, "")
		info := manager.GetLocalConfigInfo()

		assert.Equal(t, filepath.Join(dataDir, domain.ConfigFileName), info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})
}

func TestManager_GetGlobalConfigInfo_NoDir(t *testing.T) {
	manager := NewManagerWithGlobalDir(t.TempDir(), "")

	info := manager.GetGlobalConfigInfo()

	assert.Empty(t, info.Path)
	assert.False(t, info.Exists)
}

func TestManager_InitGlobalConfig(t *testing.T) {
	// Setup
	globalDir := filepath.Join(t.TempDir(), "taskwatch")
	manager := NewManagerWithGlobalDir(t.TempDir(), globalDir)

	// Execute
	err := manager.InitGlobalConfig(domain.NewDefaultConfig())

	// Assert
	require.NoError(t, err)
	info := manager.GetGlobalConfigInfo()
	assert.True(t, info.Exists)
	assert.Contains(t, info.Content, `level = "info"`)

	err = manager.InitGlobalConfig(domain.NewDefaultConfig())
	assert.ErrorIs(t, err, domain.ErrConfigExists)
}

func TestManager_InitLocalConfig_LoadsBack(t *testing.T) {
	// Setup
	dataDir := filepath.Join(t.TempDir(), "data")
	manager := NewManagerWithGlobalDir(dataDir, "")
	cfg := domain.NewDefaultConfig()
	cfg.Display.Width = 100
	cfg.Storage.AutoCommit = true

	// Execute
	require.NoError(t, manager.InitLocalConfig(cfg))
	loaded, err := NewLoaderWithGlobalDir(dataDir, "").Load()

	// Assert
	require.NoError(t, err)
	assert.Empty(t, loaded.Warnings)
	assert.Equal(t, 100, loaded.Display.Width)
	assert.True(t, loaded.Storage.AutoCommit)
	assert.Equal(t, domain.DefaultIndent, loaded.Display.Indent)
}

func TestManager_InitGlobalConfig_NoDir(t *testing.T) {
	manager := NewManagerWithGlobalDir(t.TempDir(), "")

	err := manager.InitGlobalConfig(domain.NewDefaultConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "global config directory")
}
