package deleter

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/tempsweep/internal/fs"
	"github.com/raoulx24/tempsweep/internal/logging"
	"github.com/raoulx24/tempsweep/internal/retention"
)

// failingFS refuses to remove the listed paths.
type failingFS struct {
	*fs.OSFS
	deny map[string]error
}

func (f failingFS) Remove(path string) error {
	if err, ok := f.deny[path]; ok {
		return &os.PathError{Op: "remove", Path: path, Err: err}
	}
	return f.OSFS.Remove(path)
}

type countingObserver struct {
	deleted int
	failed  map[string]int
}

func (c *countingObserver) FileDeleted() { c.deleted++ }
func (c *countingObserver) FileFailed(reason string) {
	if c.failed == nil {
		c.failed = map[string]int{}
	}
	c.failed[reason]++
}

func files(t *testing.T, names ...string) ([]retention.Candidate, []string) {
	t.Helper()
	dir := t.TempDir()
	var cands []retention.Candidate
	var paths []string
	for _, n := range names {
		p := filepath.Join(dir, n)
		require.NoError(t, os.WriteFile(p, []byte(n), 0o644))
		cands = append(cands, retention.Candidate{Path: p, AgeDays: 10})
		paths = append(paths, p)
	}
	return cands, paths
}

func TestDeleteIsolatesFailures(t *testing.T) {
	cands, paths := files(t, "one", "two", "three")
	filesystem := failingFS{OSFS: fs.New(), deny: map[string]error{paths[1]: syscall.EACCES}}
	obs := &countingObserver{}

	res := New(filesystem, logging.Nop(), obs, false).Delete(context.Background(), cands)

	assert.Equal(t, 2, res.Deleted)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, paths[1], res.Failures[0].Path)
	assert.Equal(t, fs.ReasonPermission, res.Failures[0].Reason)

	assert.NoFileExists(t, paths[0])
	assert.FileExists(t, paths[1])
	assert.NoFileExists(t, paths[2])

	assert.Equal(t, 2, obs.deleted)
	assert.Equal(t, map[string]int{fs.ReasonPermission: 1}, obs.failed)
}

func TestDeleteAlreadyGone(t *testing.T) {
	cands, paths := files(t, "a")
	require.NoError(t, os.Remove(paths[0]))

	res := New(nil, logging.Nop(), nil, false).Delete(context.Background(), cands)

	assert.Zero(t, res.Deleted)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, fs.ReasonNotExist, res.Failures[0].Reason)
}

func TestDeleteCanceledBeforeFirstFile(t *testing.T) {
	cands, paths := files(t, "a", "b")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := New(nil, logging.Nop(), nil, false).Delete(ctx, cands)

	assert.True(t, res.Canceled)
	assert.Zero(t, res.Deleted)
	assert.FileExists(t, paths[0])
	assert.FileExists(t, paths[1])
}

func TestDeleteDryRun(t *testing.T) {
	cands, paths := files(t, "a")

	res := New(nil, logging.Nop(), nil, true).Delete(context.Background(), cands)

	assert.Equal(t, 1, res.Deleted)
	assert.FileExists(t, paths[0])
}
