// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/taskwatch/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the data directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/taskwatch)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: DefaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config directory.
// This is useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// DefaultGlobalConfigDir returns the default global config directory.
func DefaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Dir(domain.GlobalConfigPath(configHome))
}

// Load returns the merged configuration (data dir + global).
// The data dir config takes precedence over global config.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.loadGlobal()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.loadFile(domain.LocalConfigPath(l.dataDir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	// Merge: default <- global <- local (later takes precedence)
	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}
	return base, nil
}

// loadGlobal returns only the global configuration layer.
func (l *Loader) loadGlobal() (*layer, error) {
	if l.globalConfDir == "" {
		return nil, os.ErrNotExist
	}
	return l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
}

// layer is one parsed config file. set records which keys the file assigned,
// so an explicit zero value (width = 0, show_done = false) still overrides.
type layer struct {
	cfg domain.Config
	set map[string]bool
}

// loadFile loads a configuration layer from a file.
func (l *Loader) loadFile(path string) (*layer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return convertRawToLayer(raw), nil
}

// convertRawToLayer converts the raw map to a config layer and collects warnings.
func convertRawToLayer(raw map[string]any) *layer {
	res := &layer{set: make(map[string]bool)}
	var warnings []string

	for section, value := range raw {
		m, ok := value.(map[string]any)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
			continue
		}
		switch section {
		case "display":
			for k, v := range m {
				switch k {
				case "indent":
					if s, ok := v.(string); ok {
						res.cfg.Display.Indent = s
						res.set["display.indent"] = true
					}
				case "color":
					if s, ok := v.(string); ok {
						switch s {
						case domain.ColorAuto, domain.ColorAlways, domain.ColorNever:
							res.cfg.Display.Color = s
							res.set["display.color"] = true
						default:
							warnings = append(warnings, fmt.Sprintf("invalid value in [display]: color = %q", s))
						}
					}
				case "width":
					// TOML integers decode as int64
					if n, ok := v.(int64); ok && n >= 0 {
						res.cfg.Display.Width = int(n)
						res.set["display.width"] = true
					}
				case "show_done":
					if b, ok := v.(bool); ok {
						res.cfg.Display.ShowDone = b
						res.set["display.show_done"] = true
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [display]: %s", k))
				}
			}
		case "states":
			for k, v := range m {
				switch k {
				case "file":
					if s, ok := v.(string); ok {
						res.cfg.States.File = s
						res.set["states.file"] = true
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [states]: %s", k))
				}
			}
		case "log":
			for k, v := range m {
				switch k {
				case "level":
					if s, ok := v.(string); ok {
						res.cfg.Log.Level = s
						res.set["log.level"] = true
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
				}
			}
		case "storage":
			for k, v := range m {
				switch k {
				case "auto_commit":
					if b, ok := v.(bool); ok {
						res.cfg.Storage.AutoCommit = b
						res.set["storage.auto_commit"] = true
					}
				default:
					warnings = append(warnings, fmt.Sprintf("unknown key in [storage]: %s", k))
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.cfg.Warnings = warnings
	return res
}

// mergeConfigs merges a layer into base, with the layer taking precedence.
func mergeConfigs(base *domain.Config, override *layer) *domain.Config {
	result := *base
	result.Warnings = append(append([]string{}, base.Warnings...), override.cfg.Warnings...)

	o := override.cfg
	if override.set["display.indent"] {
		result.Display.Indent = o.Display.Indent
	}
	if override.set["display.color"] {
		result.Display.Color = o.Display.Color
	}
	if override.set["display.width"] {
		result.Display.Width = o.Display.Width
	}
	if override.set["display.show_done"] {
		result.Display.ShowDone = o.Display.ShowDone
	}
	if override.set["states.file"] && o.States.File != "" {
		result.States.File = o.States.File
	}
	if override.set["log.level"] && o.Log.Level != "" {
		result.Log.Level = o.Log.Level
	}
	if override.set["storage.auto_commit"] {
		result.Storage.AutoCommit = o.Storage.AutoCommit
	}
	return &result
}
