// Package testutil provides helpers for scaffolding temporary package
// workspaces in tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteManifest writes a package.json with the given content under dir,
// creating the directory first. Returns the manifest path.
func WriteManifest(t *testing.T, dir, content string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "package.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	return path
}

// CreateWorkspace scaffolds a workspace root with member packages under
// packages/. members maps package name to its package.json content. Returns
// the root directory.
func CreateWorkspace(t *testing.T, rootManifest string, members map[string]string) string {
	t.Helper()
	root := t.TempDir()
	WriteManifest(t, root, rootManifest)
	for name, content := range members {
		WriteManifest(t, filepath.Join(root, "packages", name), content)
	}
	return root
}

// WriteLink creates a fake node_modules link entry for name under the given
// node_modules directory. A real symlink is used so lstat-based pruning sees
// the same shape the install tool produces.
func WriteLink(t *testing.T, nodeModules, name, target string) string {
	t.Helper()
	link := filepath.Join(nodeModules, name)
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(target, link); err != nil {
		t.Fatal(err)
	}
	return link
}
