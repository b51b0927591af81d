// Package repository locates the version-controlled tree that contains a path.
package repository

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const gitExecutableName = "git"

// ErrNotRepository indicates that a path is not inside a Git working tree.
var ErrNotRepository = errors.New("not a git repository")

// RootResolver finds the repository root for a path.
type RootResolver interface {
	ResolveRoot(path string) (string, error)
}

// GitRootResolver resolves roots with `git rev-parse --show-toplevel`.
type GitRootResolver struct {
	// Executable overrides the git binary; empty means "git" from PATH.
	Executable string
}

// NewGitRootResolver returns a resolver using git from PATH.
func NewGitRootResolver() *GitRootResolver {
	return &GitRootResolver{}
}

// ResolveRoot returns the absolute top-level directory of the working tree
// containing path. Any failure to determine it wraps ErrNotRepository.
func (resolver *GitRootResolver) ResolveRoot(path string) (string, error) {
	directory, directoryError := existingDirectory(path)
	if directoryError != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotRepository, path, directoryError)
	}
	output, gitError := resolver.runGit(directory, "rev-parse", "--show-toplevel")
	if gitError != nil {
		if output != "" {
			return "", fmt.Errorf("%w: %s: %s", ErrNotRepository, path, output)
		}
		return "", fmt.Errorf("%w: %s: %v", ErrNotRepository, path, gitError)
	}
	if output == "" {
		return "", fmt.Errorf("%w: %s", ErrNotRepository, path)
	}
	return filepath.Clean(output), nil
}

// runGit executes git in dir and returns trimmed combined output.
//
// #nosec G204
func (resolver *GitRootResolver) runGit(dir string, args ...string) (string, error) {
	executable := resolver.Executable
	if executable == "" {
		executable = gitExecutableName
	}
	command := exec.Command(executable, args...)
	command.Dir = dir

	var out bytes.Buffer
	command.Stdout = &out
	command.Stderr = &out

	runError := command.Run()
	return strings.TrimSpace(out.String()), runError
}

func existingDirectory(path string) (string, error) {
	absolutePath, absoluteError := filepath.Abs(path)
	if absoluteError != nil {
		return "", absoluteError
	}
	info, statError := os.Stat(absolutePath)
	if statError != nil {
		return "", statError
	}
	if !info.IsDir() {
		return filepath.Dir(absolutePath), nil
	}
	return absolutePath, nil
}

var _ RootResolver = (*GitRootResolver)(nil)
