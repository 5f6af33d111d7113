// Package jsonstore provides a JSON file-based implementation of domain.TaskStore.
package jsonstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/runoshun/taskwatch/internal/domain"
)

// storeData represents the JSON file structure.
// Fields are ordered to minimize memory padding.
type storeData struct {
	Tasks []domain.Task `json:"tasks"`
	Meta  meta          `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	NextIndex int `json:"nextIndex"`
}

// Store implements domain.TaskStore. Each repository is one JSON file;
// the path comes from the repository itself.
type Store struct{}

// New creates a new Store.
func New() *Store {
	return &Store{}
}

// Load reads the tasks of a repository under a shared lock.
// A missing file yields an empty snapshot.
func (s *Store) Load(repo domain.Repository) (*domain.TaskSnapshot, error) {
	var snapshot *domain.TaskSnapshot
	err := withLock(repo.Path, false, func() error {
		var err error
		snapshot, err = read(repo.Path)
		return err
	})
	return snapshot, err
}

// Save replaces the tasks of a repository under an exclusive lock.
func (s *Store) Save(repo domain.Repository, snapshot domain.TaskSnapshot) error {
	return withLock(repo.Path, true, func() error {
		return write(repo.Path, &storeData{
			Meta:  meta{NextIndex: snapshot.NextIndex},
			Tasks: snapshot.Tasks,
		})
	})
}

func withLock(path string, exclusive bool, fn func() error) error {
	// Ensure lock file directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	var err error
	if exclusive {
		err = lock.Lock()
	} else {
		err = lock.RLock()
	}
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

func read(path string) (*domain.TaskSnapshot, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &domain.TaskSnapshot{}, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return &domain.TaskSnapshot{}, nil
	}

	// Files written before the meta block existed hold a bare task array.
	if content[0] == '[' {
		var tasks []domain.Task
		if err := json.Unmarshal(content, &tasks); err != nil {
			return nil, fmt.Errorf("parse store file: %w", err)
		}
		return &domain.TaskSnapshot{Tasks: tasks}, nil
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	return &domain.TaskSnapshot{Tasks: data.Tasks, NextIndex: data.Meta.NextIndex}, nil
}

func write(path string, data *storeData) error {
	if data.Tasks == nil {
		data.Tasks = []domain.Task{}
	}
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements TaskStore.
var _ domain.TaskStore = (*Store)(nil)
