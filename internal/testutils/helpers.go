package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// SetupTestTree creates a temporary directory holding files, keyed by
// slash-separated relative path. It returns the absolute path to the temp dir
// and fails the test immediately on error.
func SetupTestTree(t *testing.T, files map[string]string) string {
	t.Helper()

	absPath, err := filepath.Abs(t.TempDir())
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	for name, content := range files {
		p := filepath.Join(absPath, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755), "Failed to create %s", filepath.Dir(p))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644), "Failed to write %s", p)
	}
	return absPath
}
