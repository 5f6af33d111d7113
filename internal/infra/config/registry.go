package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/taskwatch/internal/domain"
)

// Ensure Registry implements domain.RepositoryRegistry.
var _ domain.RepositoryRegistry = (*Registry)(nil)

// Registry stores the repository list as TOML.
type Registry struct {
	path string
}

// NewRegistry creates a Registry for the given file.
func NewRegistry(path string) *Registry {
	return &Registry{path: path}
}

// Path returns the registry file.
func (r *Registry) Path() string {
	return r.path
}

// Load reads the registry. A missing file yields empty settings.
func (r *Registry) Load() (*domain.RepositorySettings, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &domain.RepositorySettings{}, nil
		}
		return nil, fmt.Errorf("read repositories: %w", err)
	}

	var settings domain.RepositorySettings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	return &settings, nil
}

// Save replaces the registry.
func (r *Registry) Save(settings domain.RepositorySettings) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal repositories: %w", err)
	}
	return os.WriteFile(r.path, data, 0o600)
}
