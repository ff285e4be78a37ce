package gitutil

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	// ErrNotRepository means the file is not inside a git work tree.
	ErrNotRepository = errors.New("not a git repository")
	// ErrDirty means the file has uncommitted or untracked changes.
	ErrDirty = errors.New("uncommitted changes")
)

// CommandRunner is an interface for running external commands.
type CommandRunner interface {
	CombinedOutput(ctx context.Context, dir, name string, arg ...string) ([]byte, error)
}

// DefaultRunner implements CommandRunner using os/exec.Command.
type DefaultRunner struct{}

func (r DefaultRunner) CombinedOutput(ctx context.Context, dir, name string, arg ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, arg...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// runner executes git; tests swap it with SetRunner.
var runner CommandRunner = DefaultRunner{}

// CheckClean reports whether path can be restored from git after an in-place
// rewrite: it must be inside a work tree and have no pending changes.
// It returns ErrNotRepository or ErrDirty (wrapped) otherwise.
func CheckClean(ctx context.Context, path string) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)

	outputBytes, err := runner.CombinedOutput(ctx, dir, "git", "status", "--porcelain", "--", base)
	output := strings.TrimSpace(string(outputBytes))
	if strings.Contains(strings.ToLower(output), "not a git repository") {
		return fmt.Errorf("%w: %s", ErrNotRepository, output)
	}
	if err != nil {
		return fmt.Errorf("error running git status: %w, output: %s", err, output)
	}
	if output != "" {
		return fmt.Errorf("%s: %w: %s", path, ErrDirty, output)
	}
	return nil
}

// SetRunner replaces the runner used for git commands. It is not safe to
// call concurrently with CheckClean.
func SetRunner(r CommandRunner) {
	runner = r
}
