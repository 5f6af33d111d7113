// Package gitsync commits changed data files when the data directory is a git repository.
package gitsync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/rs/zerolog"
	"github.com/runoshun/taskwatch/internal/domain"
)

// Fallback commit author when the repository config has no user.
const (
	defaultAuthorName  = "taskwatch"
	defaultAuthorEmail = "taskwatch@localhost"
)

// Recorder implements domain.ChangeRecorder with go-git.
// Fields are ordered to minimize memory padding.
type Recorder struct {
	clock   domain.Clock
	dataDir string
}

// New creates a Recorder for dataDir.
func New(dataDir string, clock domain.Clock) *Recorder {
	return &Recorder{dataDir: dataDir, clock: clock}
}

// Record stages the given files and commits them with message.
// Nothing happens when dataDir is not a repository or the files are unchanged.
// Files outside the work tree are ignored.
func (r *Recorder) Record(ctx context.Context, message string, paths ...string) error {
	logger := zerolog.Ctx(ctx)

	repo, err := git.PlainOpen(r.dataDir)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			logger.Debug().Str("dir", r.dataDir).Msg("data dir is not a git repository, skip commit")
			return nil
		}
		return fmt.Errorf("open git repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("get worktree: %w", err)
	}
	root := wt.Filesystem.Root()

	var staged []string
	for _, p := range paths {
		rel, ok := relativeTo(root, p)
		if !ok {
			logger.Debug().Str("path", p).Msg("file outside the data repository, skip")
			continue
		}
		if _, err := wt.Add(rel); err != nil {
			return fmt.Errorf("stage %s: %w", rel, err)
		}
		staged = append(staged, rel)
	}
	if len(staged) == 0 {
		return nil
	}

	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("get status: %w", err)
	}
	if !hasStagedChange(status, staged) {
		logger.Debug().Msg("no data file changed, skip commit")
		return nil
	}

	hash, err := wt.Commit(message, &git.CommitOptions{Author: r.signature(repo)})
	if err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	logger.Debug().Str("commit", hash.String()).Strs("files", staged).Msg("data files committed")
	return nil
}

func (r *Recorder) signature(repo *git.Repository) *object.Signature {
	sig := &object.Signature{
		Name:  defaultAuthorName,
		Email: defaultAuthorEmail,
		When:  r.clock.Now(),
	}
	if cfg, err := repo.Config(); err == nil {
		if cfg.User.Name != "" {
			sig.Name = cfg.User.Name
		}
		if cfg.User.Email != "" {
			sig.Email = cfg.User.Email
		}
	}
	return sig
}

func hasStagedChange(status git.Status, files []string) bool {
	for _, f := range files {
		fs, ok := status[f]
		if !ok {
			continue
		}
		if fs.Staging != git.Unmodified && fs.Staging != git.Untracked {
			return true
		}
	}
	return false
}

// relativeTo returns path relative to root using forward slashes,
// or false when path is not inside root.
func relativeTo(root, path string) (string, bool) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

var _ domain.ChangeRecorder = (*Recorder)(nil)
