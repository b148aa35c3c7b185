package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectory(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "data", "learnlink", "learnlink.db")

	got, err := EnsureParentDir(path)
	require.NoError(t, err)
	require.Equal(t, path, got)

	fi, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		perm := fi.Mode().Perm()
		require.Equal(t, os.FileMode(0o700), perm&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "prefs.toml")

	_, err := EnsureParentDir(path)
	require.NoError(t, err)
	_, err = EnsureParentDir(path)
	require.NoError(t, err)
}

func TestEnsureParentDir_SkipsMemoryAndBareNames(t *testing.T) {
	for _, in := range []string{"", ":memory:", "file:x?mode=memory", "learnlink.db"} {
		got, err := EnsureParentDir(in)
		require.NoError(t, err)
		require.Equal(t, in, got)
	}
}

func TestEnsureParentDir_FailsIfFileBlocksDirectory(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "data")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o660))

	_, err := EnsureParentDir(filepath.Join(blocker, "learnlink.db"))
	require.Error(t, err, "should fail when a file exists where the directory goes")
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}

	require.Equal(t, filepath.Join(home, ".config", "learnlink"), ExpandHome("~/.config/learnlink"))
	require.Equal(t, "/etc/learnlink", ExpandHome("/etc/learnlink"))
	require.Equal(t, "relative/x", ExpandHome("relative/x"))
}
