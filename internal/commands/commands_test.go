package commands

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietConfig(t *testing.T, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "logging:\n  level: error\n  format: json\n" + extra
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func agedFile(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
	past := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(p, past, past))
	return p
}

func TestRunCommandSweepsRoot(t *testing.T) {
	root := t.TempDir()
	old := agedFile(t, root, "old.txt", 10*24*time.Hour)
	fresh := agedFile(t, root, "new.txt", time.Hour)

	out, err := execute(t, "run", "--config", quietConfig(t, ""), "--root", root, "--days-ago", "1")
	require.NoError(t, err)

	assert.NoFileExists(t, old)
	assert.FileExists(t, fresh)
	assert.Contains(t, out, "[tempsweep]")
	assert.Contains(t, out, "eligible    1 (older than 1 days)")
}

func TestRunCommandDryRun(t *testing.T) {
	root := t.TempDir()
	old := agedFile(t, root, "old.txt", 10*24*time.Hour)

	out, err := execute(t, "run", "--config", quietConfig(t, ""), "--root", root, "--days-ago", "1", "--dry-run")
	require.NoError(t, err)

	assert.FileExists(t, old)
	assert.Contains(t, out, "would delete")
}

func TestRunCommandRejectsNegativeDays(t *testing.T) {
	_, err := execute(t, "run", "--config", quietConfig(t, ""), "--root", t.TempDir(), "--days-ago", "-1")

	var exitErr ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.ExitCode())
}

func TestConfigValidate(t *testing.T) {
	out, err := execute(t, "config", "validate", "--config", quietConfig(t, "sweep:\n  root: /scratch\n  daysAgo: 4\n"))
	require.NoError(t, err)

	assert.Contains(t, out, "config ok")
	assert.Contains(t, out, "daysAgo: 4")
	assert.Contains(t, out, "root: /scratch")
	assert.Contains(t, out, "interval: 36h0m0s")
}

func TestConfigValidateFailsFast(t *testing.T) {
	_, err := execute(t, "config", "validate", "--config", quietConfig(t, "sweep:\n  daysAgo: lots\n"))

	var exitErr ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.ExitCode())
}
