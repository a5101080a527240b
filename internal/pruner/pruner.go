// Package pruner removes directories left empty after a sweep.
package pruner

import (
	"context"
	"errors"
	iofs "io/fs"
	"path/filepath"

	"github.com/raoulx24/tempsweep/internal/fs"
	"github.com/raoulx24/tempsweep/internal/logging"
)

// DirError is a directory the pruner could not list or remove.
type DirError struct {
	Path string
	Op   string // "read" or "remove"
	Err  error
}

func (e DirError) Error() string { return e.Op + " " + e.Path + ": " + e.Err.Error() }
func (e DirError) Unwrap() error { return e.Err }

type Result struct {
	Pruned   []string
	Errors   []DirError
	Canceled bool
}

type Options struct {
	KeepRoot bool // never remove the start directory itself
	DryRun   bool
}

type Pruner struct {
	fs   fs.FS
	log  logging.Logger
	opts Options
}

func New(filesystem fs.FS, log logging.Logger, opts Options) *Pruner {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Pruner{fs: filesystem, log: log, opts: opts}
}

// Prune walks start depth-first and removes every directory that is empty
// once its children have been handled. Errors are collected, never returned,
// so siblings and ancestors are always evaluated.
func (p *Pruner) Prune(ctx context.Context, start string) Result {
	var res Result
	p.prune(ctx, start, true, &res)
	return res
}

// prune reports whether dir is gone (or would be, in dry-run).
func (p *Pruner) prune(ctx context.Context, dir string, isRoot bool, res *Result) bool {
	if ctx.Err() != nil {
		res.Canceled = true
		return false
	}

	entries, err := p.fs.ReadDir(dir)
	if err != nil {
		if !(isRoot && errors.Is(err, iofs.ErrNotExist)) {
			res.Errors = append(res.Errors, DirError{Path: dir, Op: "read", Err: err})
		}
		return false
	}

	remaining := len(entries)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if p.prune(ctx, filepath.Join(dir, e.Name()), false, res) {
			remaining--
		}
	}

	if remaining > 0 || res.Canceled || (isRoot && p.opts.KeepRoot) {
		return false
	}

	if p.opts.DryRun {
		p.log.Debug("would remove empty directory", "path", dir)
		res.Pruned = append(res.Pruned, dir)
		return true
	}

	if err := p.fs.Remove(dir); err != nil {
		res.Errors = append(res.Errors, DirError{Path: dir, Op: "remove", Err: err})
		return false
	}

	p.log.Debug("removed empty directory", "path", dir)
	res.Pruned = append(res.Pruned, dir)
	return true
}
