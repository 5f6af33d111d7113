package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/usecase/shared"
)

// RepositoriesOutput lists the repositories after a repository command.
type RepositoriesOutput struct {
	Current      domain.Repository
	Repositories []domain.Repository // Sorted by name
}

func newRepositoriesOutput(m *domain.RepositoryManager) *RepositoriesOutput {
	return &RepositoriesOutput{Current: m.Current(), Repositories: m.Repositories()}
}

// ListRepositoriesInput contains the parameters for listing repositories.
type ListRepositoriesInput struct{}

// ListRepositories is the use case for listing repositories.
type ListRepositories struct {
	repos *shared.RepositorySession
}

// NewListRepositories creates a new ListRepositories use case.
func NewListRepositories(repos *shared.RepositorySession) *ListRepositories {
	return &ListRepositories{repos: repos}
}

// Execute loads the registry.
func (uc *ListRepositories) Execute(_ context.Context, _ ListRepositoriesInput) (*RepositoriesOutput, error) {
	m, err := uc.repos.Load()
	if err != nil {
		return nil, err
	}
	return newRepositoriesOutput(m), nil
}

// RepositoryInput contains the parameters shared by the repository commands.
type RepositoryInput struct {
	Name string
	Path string // Task file path; empty = <name>.tasks in the data dir
}

// CreateRepository is the use case for registering a repository.
type CreateRepository struct {
	repos *shared.RepositorySession
}

// NewCreateRepository creates a new CreateRepository use case.
func NewCreateRepository(repos *shared.RepositorySession) *CreateRepository {
	return &CreateRepository{repos: repos}
}

// Execute registers the repository.
func (uc *CreateRepository) Execute(ctx context.Context, in RepositoryInput) (*RepositoriesOutput, error) {
	return editRepositories(ctx, uc.repos, func(m *domain.RepositoryManager) (string, error) {
		r, err := m.Create(in.Name, in.Path)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("add repository %s", r.Name), nil
	})
}

// SetCurrentRepository is the use case for switching the current repository.
type SetCurrentRepository struct {
	repos *shared.RepositorySession
}

// NewSetCurrentRepository creates a new SetCurrentRepository use case.
func NewSetCurrentRepository(repos *shared.RepositorySession) *SetCurrentRepository {
	return &SetCurrentRepository{repos: repos}
}

// Execute makes the repository current.
func (uc *SetCurrentRepository) Execute(ctx context.Context, in RepositoryInput) (*RepositoriesOutput, error) {
	return editRepositories(ctx, uc.repos, func(m *domain.RepositoryManager) (string, error) {
		r, err := m.SetCurrent(in.Name)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("switch to repository %s", r.Name), nil
	})
}

// DeleteRepository is the use case for unregistering a repository.
// The task file stays on disk.
type DeleteRepository struct {
	repos *shared.RepositorySession
}

// NewDeleteRepository creates a new DeleteRepository use case.
func NewDeleteRepository(repos *shared.RepositorySession) *DeleteRepository {
	return &DeleteRepository{repos: repos}
}

// Execute unregisters the repository.
func (uc *DeleteRepository) Execute(ctx context.Context, in RepositoryInput) (*RepositoriesOutput, error) {
	return editRepositories(ctx, uc.repos, func(m *domain.RepositoryManager) (string, error) {
		r, err := m.Delete(in.Name)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("delete repository %s", r.Name), nil
	})
}

// SetRepositoryPath is the use case for pointing a repository at another task file.
type SetRepositoryPath struct {
	repos *shared.RepositorySession
}

// NewSetRepositoryPath creates a new SetRepositoryPath use case.
func NewSetRepositoryPath(repos *shared.RepositorySession) *SetRepositoryPath {
	return &SetRepositoryPath{repos: repos}
}

// Execute changes the path.
func (uc *SetRepositoryPath) Execute(ctx context.Context, in RepositoryInput) (*RepositoriesOutput, error) {
	return editRepositories(ctx, uc.repos, func(m *domain.RepositoryManager) (string, error) {
		r, err := m.SetPath(in.Name, in.Path)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("set path of repository %s to %s", r.Name, r.Path), nil
	})
}

func editRepositories(ctx context.Context, repos *shared.RepositorySession, op func(*domain.RepositoryManager) (string, error)) (*RepositoriesOutput, error) {
	m, err := repos.Load()
	if err != nil {
		return nil, err
	}
	message, err := op(m)
	if err != nil {
		return nil, err
	}
	if err := repos.Save(ctx, m, message); err != nil {
		return nil, err
	}
	return newRepositoriesOutput(m), nil
}

// ImportRepositoryInput contains the parameters for importing a legacy task file.
type ImportRepositoryInput struct {
	From       string // Legacy file to read
	Repository string // Target repository, created when missing
	Path       string // Task file of a newly created target (optional)
	Format     string // Legacy format name
}

// ImportRepositoryOutput contains the result of an import.
type ImportRepositoryOutput struct {
	RepositoriesOutput
	Imported int // Number of tasks created
}

// ImportRepository is the use case for importing tasks saved by older versions.
type ImportRepository struct {
	repos    *shared.RepositorySession
	tasks    *shared.TaskSession
	importer domain.TaskImporter
}

// NewImportRepository creates a new ImportRepository use case.
func NewImportRepository(repos *shared.RepositorySession, tasks *shared.TaskSession, importer domain.TaskImporter) *ImportRepository {
	return &ImportRepository{repos: repos, tasks: tasks, importer: importer}
}

// Execute imports the file into the target repository, appending to its tasks.
func (uc *ImportRepository) Execute(ctx context.Context, in ImportRepositoryInput) (*ImportRepositoryOutput, error) {
	m, err := uc.repos.Load()
	if err != nil {
		return nil, err
	}
	target, err := m.Get(in.Repository)
	if err != nil {
		target, err = m.Create(in.Repository, in.Path)
		if err != nil {
			return nil, err
		}
	}

	open, err := uc.tasks.OpenRepository(ctx, target)
	if err != nil {
		return nil, err
	}
	count, err := uc.importer.ImportFile(in.Format, in.From, open.Manager)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", in.From, err)
	}
	zerolog.Ctx(ctx).Debug().Str("from", in.From).Int("tasks", count).Msg("legacy tasks converted")

	message := fmt.Sprintf("import %d tasks into repository %s", count, target.Name)
	if err := uc.tasks.Save(ctx, open, message); err != nil {
		return nil, err
	}
	if err := uc.repos.Save(ctx, m, message); err != nil {
		return nil, err
	}
	return &ImportRepositoryOutput{RepositoriesOutput: *newRepositoriesOutput(m), Imported: count}, nil
}
