package testutil

import (
	"os"
	"path/filepath"

	"github.com/245790/gemini/pkg/must"
)

// TempDir creates a temporary directory for testing that will be removed
// after the test finishes. It is different from testing.TB.TempDir in that it
// resolves symlinks in the path of the directory.
func TempDir(c Cleanuper) string {
	dir := must.OK1(os.MkdirTemp("", "gemini-test"))
	dir = must.OK1(filepath.EvalSymlinks(dir))
	c.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			println("failed to remove temp dir", dir)
		}
	})
	return dir
}

// Chdir changes into a directory, and restores the original working directory
// when a test finishes.
func Chdir(c Cleanuper, dir string) {
	oldWd := must.OK1(os.Getwd())
	must.OK(os.Chdir(dir))
	c.Cleanup(func() {
		must.OK(os.Chdir(oldWd))
	})
}

// InTempDir is equivalent to calling TempDir and Chdir.
func InTempDir(c Cleanuper) string {
	dir := TempDir(c)
	Chdir(c, dir)
	return dir
}
