// Package scanner enumerates candidate files under the sweep root.
package scanner

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/raoulx24/tempsweep/internal/fs"
	"github.com/raoulx24/tempsweep/internal/logging"
)

// MatchAll is the Windows-style pattern for "every file".
const MatchAll = "*.*"

type Options struct {
	Root      string
	Pattern   string
	Recursive bool
}

type Result struct {
	Paths   []string
	Skipped int // subtrees or entries that could not be read
}

type Scanner struct {
	fs  fs.FS
	log logging.Logger
}

func New(filesystem fs.FS, log logging.Logger) *Scanner {
	return &Scanner{fs: filesystem, log: log}
}

// Scan lists the files under opts.Root matching opts.Pattern.
// A missing root yields an empty result. Unreadable subtrees are skipped.
// Errors are returned only for a malformed pattern or a canceled ctx.
func (s *Scanner) Scan(ctx context.Context, opts Options) (Result, error) {
	var res Result

	pattern := opts.Pattern
	if pattern == "" {
		pattern = MatchAll
	}
	if !doublestar.ValidatePattern(pattern) {
		return res, fmt.Errorf("scan pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	root, err := filepath.EvalSymlinks(opts.Root)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			s.log.Info("scan root does not exist", "root", opts.Root)
			return res, nil
		}
		s.log.Warn("cannot resolve scan root", "root", opts.Root, "error", err)
		res.Skipped++
		return res, nil
	}

	st, err := s.fs.Stat(root)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		s.log.Info("scan root does not exist", "root", root)
		return res, nil
	case err != nil:
		s.log.Warn("cannot stat scan root", "root", root, "error", err)
		res.Skipped++
		return res, nil
	case !st.IsDir:
		s.log.Warn("scan root is not a directory", "root", root)
		return res, nil
	}

	w := walk{Scanner: s, root: root, pattern: pattern, recursive: opts.Recursive, res: &res}
	if err := w.dir(ctx, root); err != nil {
		return res, err
	}

	s.log.Debug("scan complete", "root", root, "matched", len(res.Paths), "skipped", res.Skipped)
	return res, nil
}

type walk struct {
	*Scanner
	root      string
	pattern   string
	recursive bool
	res       *Result
}

// dir lists one directory and descends into its subdirectories.
// Symlinked directories are reported as entries and never followed.
func (w walk) dir(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := w.fs.ReadDir(path)
	if err != nil {
		if path != w.root && errors.Is(err, iofs.ErrNotExist) {
			return nil // removed while scanning
		}
		w.log.Warn("skipping unreadable path", "path", path, "reason", fs.Reason(err), "error", err)
		w.res.Skipped++
		return nil
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		p := filepath.Join(path, e.Name())
		if e.IsDir() {
			if !w.recursive {
				continue
			}
			if err := w.dir(ctx, p); err != nil {
				return err
			}
			continue
		}

		if match(w.pattern, w.root, p) {
			w.res.Paths = append(w.res.Paths, p)
		}
	}
	return nil
}

// match tests the base name, or the root-relative path when the pattern
// spans directories.
func match(pattern, root, path string) bool {
	if pattern == MatchAll {
		return true
	}

	name := filepath.Base(path)
	if strings.Contains(pattern, "/") {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return false
		}
		name = filepath.ToSlash(rel)
	}

	ok, _ := doublestar.Match(pattern, name)
	return ok
}
