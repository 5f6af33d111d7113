package domain

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"
)

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	Display  DisplayConfig `toml:"display"`
	States   StatesConfig  `toml:"states"`
	Log      LogConfig     `toml:"log"`
	Storage  StorageConfig `toml:"storage"`
}

// DisplayConfig holds settings for printing tasks from [display] section.
type DisplayConfig struct {
	Indent   string `toml:"indent,omitempty"`    // Indentation per sub-task level
	Color    string `toml:"color,omitempty"`     // "auto" (default), "always" or "never"
	Width    int    `toml:"width,omitempty"`     // Maximum line width, 0 disables truncation
	ShowDone bool   `toml:"show_done,omitempty"` // Show done tasks without --all
}

// StatesConfig holds settings for the state graph from [states] section.
type StatesConfig struct {
	File string `toml:"file,omitempty"` // State graph file, relative to the data dir
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// StorageConfig holds settings for data files from [storage] section.
type StorageConfig struct {
	AutoCommit bool `toml:"auto_commit,omitempty"` // Commit changed data files when the data dir is a git repository
}

// Color modes for DisplayConfig.Color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Default configuration values.
const (
	DefaultLogLevel     = "info"
	DefaultIndent       = "    "
	DefaultDisplayWidth = 80
)

// Directory and file names.
const (
	AppDirName            = "taskwatch"         // Directory name under XDG config/data homes
	ConfigFileName        = "config.toml"       // Config file name
	StatesFileName        = "states.yaml"       // State graph file name
	RepositoriesFileName  = "repositories.toml" // Repository registry file name
	TaskFileExt           = ".tasks"            // Extension of task files
	LogDirName            = "logs"              // Log directory under the data dir
	LogFileName           = "tw.log"            // Log file name
	DefaultRepositoryName = "default"           // Repository that always exists
)

// GlobalConfigPath returns the global config path.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigPath(configHome string) string {
	return filepath.Join(configHome, AppDirName, ConfigFileName)
}

// LocalConfigPath returns the config path inside the data dir.
func LocalConfigPath(dataDir string) string {
	return filepath.Join(dataDir, ConfigFileName)
}

// RepositoriesPath returns the repository registry path.
func RepositoriesPath(dataDir string) string {
	return filepath.Join(dataDir, RepositoriesFileName)
}

// StatesPath returns the state graph path. Relative names are resolved against dataDir.
func (c *Config) StatesPath(dataDir string) string {
	name := c.States.File
	if name == "" {
		name = StatesFileName
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dataDir, name)
}

// LogDir returns the log directory inside the data dir.
func LogDir(dataDir string) string {
	return filepath.Join(dataDir, LogDirName)
}

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Indent: DefaultIndent,
			Color:  ColorAuto,
			Width:  DefaultDisplayWidth,
		},
		States: StatesConfig{
			File: StatesFileName,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

const configTemplate = `# taskwatch configuration
# Place this file at <<.GlobalPath>> or inside the data directory.

[log]
# debug, info, warn or error
level = "<<.Log.Level>>"

[display]
indent = "<<.Display.Indent>>"
# 0 disables truncation
width = <<.Display.Width>>
show_done = <<.Display.ShowDone>>
# auto, always or never
color = "<<.Display.Color>>"

[storage]
# commit changed data files when the data directory is a git repository
auto_commit = <<.Storage.AutoCommit>>

[states]
file = "<<.States.File>>"
`

// RenderConfigTemplate renders a commented config file holding the values of cfg.
func RenderConfigTemplate(cfg *Config, globalPath string) string {
	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplate)
	if err != nil {
		// Should never happen with a constant template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	data := struct {
		*Config
		GlobalPath string
	}{Config: cfg, GlobalPath: globalPath}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}
