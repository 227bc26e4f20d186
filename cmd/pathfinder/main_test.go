package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/pathfinder"
	"github.com/aretw0/pathfinder/internal/testutils"
	"github.com/aretw0/pathfinder/pkg/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "pathfinder version "+strings.TrimSpace(pathfinder.Version)+"\n", out)
}

func TestTimeCommand(t *testing.T) {
	prev := clockSource
	clockSource = clock.Fixed(time.Date(2020, 2, 29, 23, 59, 59, 5, time.Local))
	t.Cleanup(func() { clockSource = prev })

	out, err := run(t, "time", "--unit", "iso")
	require.NoError(t, err)
	assert.Equal(t, "2020-02-29T23:59:59.000000005\n", out)

	_, err = run(t, "time", "--unit", "days")
	assert.Error(t, err)
}

func TestSHA1StringCommand(t *testing.T) {
	out, err := run(t, "sha1", "--string", "abc")
	require.NoError(t, err)
	assert.Equal(t, "a9993e364706816aba3e25717850c26c9cd0d89d\n", out)
}

func TestFindCommand(t *testing.T) {
	dir := testutils.SetupTestTree(t, map[string]string{"worlds/empty.world": "<sdf/>"})
	file := filepath.Join(dir, "worlds", "empty.world")
	t.Setenv("PATHFINDER_FILE_PATH", dir)
	t.Setenv("PATHFINDER_CACHE_BACKEND", "none")
	t.Chdir(t.TempDir())

	out, err := run(t, "find", "worlds/empty.world", "--no-local")
	require.NoError(t, err)
	assert.Equal(t, file+"\n", out)

	out, err = run(t, "path", "worlds/empty.world")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "worlds")+"\n", out)

	_, err = run(t, "find", "missing.world")
	assert.ErrorContains(t, err, "file not found")
}
