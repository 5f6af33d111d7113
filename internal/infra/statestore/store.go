// Package statestore persists the lifecycle state graph as YAML.
package statestore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/taskwatch/internal/domain"
	"gopkg.in/yaml.v3"
)

// document is the YAML file structure.
type document struct {
	States []domain.State `yaml:"states"`
}

// Store implements domain.StateStore using a YAML file.
type Store struct {
	path string
}

// New creates a new Store for the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the graph is stored in.
func (s *Store) Path() string {
	return s.path
}

// Load reads the graph. A missing file yields nil states.
func (s *Store) Load() ([]domain.State, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read states file: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse states file %s: %w", s.path, err)
	}
	if doc.States == nil {
		return nil, nil
	}
	return doc.States, nil
}

// Save replaces the graph.
func (s *Store) Save(states []domain.State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	content, err := yaml.Marshal(document{States: states})
	if err != nil {
		return fmt.Errorf("marshal states: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

var _ domain.StateStore = (*Store)(nil)
