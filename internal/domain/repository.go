package domain

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"
)

// Repository is a named task file.
type Repository struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// RepositorySettings is the persisted form of the repository registry.
type RepositorySettings struct {
	Current      string       `toml:"current"`
	Repositories []Repository `toml:"repository"`
}

// RepositoryManager keeps the set of known repositories and the current one.
// The default repository always exists.
type RepositoryManager struct {
	repos   map[string]Repository
	current string
	baseDir string
}

// NewRepositoryManager builds a manager from persisted settings.
// Relative paths are resolved against baseDir. An unknown current repository
// falls back to the default one.
func NewRepositoryManager(settings RepositorySettings, baseDir string) (*RepositoryManager, error) {
	m := &RepositoryManager{
		repos:   make(map[string]Repository),
		baseDir: baseDir,
	}
	for _, r := range settings.Repositories {
		if _, err := m.Create(r.Name, r.Path); err != nil {
			return nil, err
		}
	}
	m.GetOrCreate(DefaultRepositoryName)

	m.current = DefaultRepositoryName
	if r, err := m.Get(settings.Current); err == nil {
		m.current = r.Name
	}
	return m, nil
}

// Repositories returns all repositories sorted by name.
func (m *RepositoryManager) Repositories() []Repository {
	keys := slices.Sorted(maps.Keys(m.repos))
	out := make([]Repository, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.repos[k])
	}
	return out
}

// Current returns the current repository.
func (m *RepositoryManager) Current() Repository {
	return m.repos[NormalizeKey(m.current)]
}

// Has reports whether a repository with the given name exists.
func (m *RepositoryManager) Has(name string) bool {
	_, ok := m.repos[NormalizeKey(name)]
	return ok
}

// Get looks a repository up by name.
func (m *RepositoryManager) Get(name string) (Repository, error) {
	r, ok := m.repos[NormalizeKey(name)]
	if !ok {
		return Repository{}, fmt.Errorf("%w: '%s'", ErrRepositoryNotFound, name)
	}
	return r, nil
}

// Create registers a repository. An empty path means <name>.tasks in the base dir.
func (m *RepositoryManager) Create(name, path string) (Repository, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Repository{}, ErrInvalidRepositoryName
	}
	if m.Has(name) {
		return Repository{}, fmt.Errorf("%w: '%s'", ErrRepositoryExists, name)
	}
	r := Repository{Name: name, Path: m.preparePath(name, path)}
	m.repos[NormalizeKey(name)] = r
	return r, nil
}

// GetOrCreate returns the named repository, registering it with the default path if needed.
func (m *RepositoryManager) GetOrCreate(name string) Repository {
	if r, err := m.Get(name); err == nil {
		return r
	}
	r, err := m.Create(name, "")
	if err != nil {
		// only an empty name can fail here
		return m.repos[NormalizeKey(DefaultRepositoryName)]
	}
	return r
}

// SetCurrent makes the named repository current.
func (m *RepositoryManager) SetCurrent(name string) (Repository, error) {
	r, err := m.Get(name)
	if err != nil {
		return Repository{}, err
	}
	m.current = r.Name
	return r, nil
}

// Delete unregisters a repository. Deleting the current one makes the default
// repository current; the default repository itself is recreated empty.
// The task file is not touched.
func (m *RepositoryManager) Delete(name string) (Repository, error) {
	r, err := m.Get(name)
	if err != nil {
		return Repository{}, err
	}
	delete(m.repos, NormalizeKey(name))
	if SameKey(m.current, name) {
		m.current = DefaultRepositoryName
	}
	m.GetOrCreate(DefaultRepositoryName)
	return r, nil
}

// SetPath points a repository at another task file.
func (m *RepositoryManager) SetPath(name, path string) (Repository, error) {
	r, err := m.Get(name)
	if err != nil {
		return Repository{}, err
	}
	r.Path = m.preparePath(r.Name, path)
	m.repos[NormalizeKey(name)] = r
	return r, nil
}

// Settings returns the persisted form of the registry.
func (m *RepositoryManager) Settings() RepositorySettings {
	return RepositorySettings{
		Current:      m.current,
		Repositories: m.Repositories(),
	}
}

func (m *RepositoryManager) preparePath(name, path string) string {
	if strings.TrimSpace(path) == "" {
		path = name + TaskFileExt
	}
	if filepath.IsAbs(path) || m.baseDir == "" {
		return path
	}
	return filepath.Join(m.baseDir, path)
}
