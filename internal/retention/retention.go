// Package retention decides which scanned files are old enough to delete.
package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/raoulx24/tempsweep/internal/fs"
	"github.com/raoulx24/tempsweep/internal/logging"
)

const day = 24 * time.Hour

// Strategy selects the timestamp a file's age is measured from.
type Strategy int

const (
	LastAccess Strategy = iota
	Modified
)

func (s Strategy) String() string {
	switch s {
	case LastAccess:
		return "last-access"
	case Modified:
		return "modified"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy accepts the names produced by String.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "last-access", "":
		return LastAccess, nil
	case "modified":
		return Modified, nil
	}
	return 0, fmt.Errorf("unknown retention strategy %q", name)
}

// Policy deletes files whose age in whole days is strictly greater than DaysAgo.
type Policy struct {
	DaysAgo  int
	Strategy Strategy
}

// Candidate is a file that passed the policy, with the timestamp that made it eligible.
type Candidate struct {
	Path    string
	Stamp   time.Time
	AgeDays int
}

// AgeDays returns now-stamp truncated to whole days.
func AgeDays(now, stamp time.Time) int {
	return int(now.Sub(stamp) / day)
}

// Expired reports whether a file stamped at stamp is past the threshold.
func (p Policy) Expired(now, stamp time.Time) bool {
	return AgeDays(now, stamp) > p.DaysAgo
}

func (p Policy) stamp(info fs.FileInfo) time.Time {
	if p.Strategy == Modified {
		return info.MTime
	}
	return info.ATime
}

type Engine struct {
	fs  fs.FS
	log logging.Logger
}

func New(filesystem fs.FS, log logging.Logger) *Engine {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Engine{fs: filesystem, log: log}
}

// Filter stats every path now and keeps the expired ones.
// Paths that can no longer be stated are dropped.
func (e *Engine) Filter(ctx context.Context, p Policy, now time.Time, paths []string) ([]Candidate, error) {
	var out []Candidate

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		info, err := e.fs.Stat(path)
		if err != nil {
			e.log.Debug("retention: stat failed, skipping", "path", path, "error", err)
			continue
		}
		if info.IsDir {
			continue
		}

		stamp := p.stamp(info)
		if !p.Expired(now, stamp) {
			continue
		}

		out = append(out, Candidate{
			Path:    path,
			Stamp:   stamp,
			AgeDays: AgeDays(now, stamp),
		})
	}

	return out, nil
}
