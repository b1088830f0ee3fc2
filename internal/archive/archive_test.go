package archive

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func archiveNames(t *testing.T, dest string) []string {
	t.Helper()
	r, err := zip.OpenReader(dest)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func TestCreate(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":                   "package main\n",
		"sub/keep.txt":              "keep\n",
		".git/HEAD":                 "ref: refs/heads/main\n",
		"build/output.zip":          "zipdata",
		"node_modules/pkg/index.js": "js",
		"target/out.bin":            "bin",
		".env":                      "SECRET=1",
		"switchctl":                 "binary",
	})

	dest := filepath.Join(root, "codebase_test.zip")
	err := Create(root, dest, Options{
		Exclude:   []string{"*.env", "*.zip", "node_modules", "target"},
		SkipNames: []string{"switchctl", filepath.Base(dest)},
	})
	require.NoError(t, err)

	names := archiveNames(t, dest)
	require.ElementsMatch(t, []string{"main.go", "sub/keep.txt", ".git/HEAD"}, names)
}

func TestCreateRefusesExistingDestination(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "a"})

	dest := filepath.Join(root, "out.zip")
	require.NoError(t, os.WriteFile(dest, []byte("old"), 0o644))

	err := Create(root, dest, Options{})
	require.Error(t, err)

	// The pre-existing file is left untouched.
	data, readErr := os.ReadFile(dest)
	require.NoError(t, readErr)
	require.Equal(t, "old", string(data))
}

func TestCreateSkipsUnreadableFiles(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are ignored for root")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"ok.txt":     "fine",
		"secret.txt": "locked",
	})
	require.NoError(t, os.Chmod(filepath.Join(root, "secret.txt"), 0o000))

	dest := filepath.Join(t.TempDir(), "out.zip")
	require.NoError(t, Create(root, dest, Options{}))

	names := archiveNames(t, dest)
	require.Contains(t, names, "ok.txt")
	require.NotContains(t, names, "secret.txt")
}
