// Package core runs one rewrite of one file: load, rewrite, write back, report.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"fppatch/internal/config"
	"fppatch/internal/diff"
	"fppatch/internal/gitutil"
	"fppatch/internal/parser"
	"fppatch/internal/rewrite"
)

// Options controls a Patch run.
type Options struct {
	// Profiles supplies the rewrite profile. Nil means the default profile.
	Profiles config.ProfileStore

	// RequireClean refuses to touch a file that git cannot restore.
	// When false a dirty or untracked file only logs a warning.
	RequireClean bool

	// Diff, when set, receives the changed lines after write-back.
	Diff io.Writer

	Logger *zap.Logger
}

// Report summarizes a Patch run.
type Report struct {
	Path      string
	Changed   int // lines whose text differs from the input
	Functions int // function headers detected
	Qualified int // headers that qualified for rewrite
}

// Patch rewrites path in place. The whole file is read and rewritten in
// memory before a single write-back; a read or profile error leaves the file
// untouched. Zero changes is not an error: the file is still written back
// with its trailing newline normalized.
func Patch(ctx context.Context, path string, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := opts.Profiles
	if store == nil {
		store = config.NewInMemoryProfileStore(nil)
	}

	profile, err := store.Load()
	if err != nil {
		return nil, err
	}
	tr, err := profile.Tracker()
	if err != nil {
		return nil, err
	}

	f, err := parser.ParseSourceFile(path)
	if err != nil {
		return nil, err
	}

	if err := gitutil.CheckClean(ctx, path); err != nil {
		if opts.RequireClean {
			return nil, fmt.Errorf("refusing to rewrite in place: %w", err)
		}
		if errors.Is(err, gitutil.ErrDirty) || errors.Is(err, gitutil.ErrNotRepository) {
			logger.Warn("target cannot be restored from git after rewrite", zap.String("path", path), zap.Error(err))
		} else {
			logger.Warn("git check failed", zap.String("path", path), zap.Error(err))
		}
	}

	res := rewrite.NewEngine(tr, profile.Rules, logger).Apply(f)

	out, err := res.Render(rewrite.NewBufferRewriter(f.Texts()))
	if err != nil {
		return nil, err
	}
	if err := rewrite.UpdateFile(path, out); err != nil {
		return nil, err
	}

	logger.Info("rewrite complete",
		zap.String("path", path),
		zap.String("sha256_before", f.Hash()),
		zap.Int("functions", res.Functions),
		zap.Int("qualifying", res.Qualified),
		zap.Int("changed_lines", res.Changed()))

	if opts.Diff != nil && res.Changed() > 0 {
		if err := diff.Write(opts.Diff, diff.Lines(f.Texts(), res.Lines)); err != nil {
			return nil, fmt.Errorf("failed to write diff: %w", err)
		}
	}

	return &Report{
		Path:      path,
		Changed:   res.Changed(),
		Functions: res.Functions,
		Qualified: res.Qualified,
	}, nil
}
