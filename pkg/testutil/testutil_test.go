package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/245790/gemini/pkg/must"
)

type cleanuper struct{ fns []func() }

func (c *cleanuper) Cleanup(fn func()) { c.fns = append(c.fns, fn) }

func (c *cleanuper) runCleanups() {
	for i := len(c.fns) - 1; i >= 0; i-- {
		c.fns[i]()
	}
}

func TestTempDir_CleanupRemovesDirRecursively(t *testing.T) {
	c := &cleanuper{}
	dir := TempDir(c)
	must.WriteFile(filepath.Join(dir, "a", "b"), "test")

	c.runCleanups()
	if _, err := os.Stat(dir); err == nil {
		t.Errorf("Dir %q still exists after cleanup", dir)
	}
}

func TestChdir(t *testing.T) {
	dir := TempDir(t)
	original := must.OK1(os.Getwd())

	c := &cleanuper{}
	Chdir(c, dir)
	if wd := must.OK1(os.Getwd()); wd != dir {
		t.Errorf("pwd = %q, want %q", wd, dir)
	}
	c.runCleanups()
	if wd := must.OK1(os.Getwd()); wd != original {
		t.Errorf("pwd after cleanup = %q, want %q", wd, original)
	}
}

func TestSetenv(t *testing.T) {
	const name = "GEMINI_TESTUTIL_VAR"
	os.Unsetenv(name)
	c := &cleanuper{}
	if v := Setenv(c, name, "foo"); v != "foo" {
		t.Errorf("Setenv returned %q", v)
	}
	if v := os.Getenv(name); v != "foo" {
		t.Errorf("env = %q, want foo", v)
	}
	c.runCleanups()
	if _, ok := os.LookupEnv(name); ok {
		t.Errorf("env still set after cleanup")
	}
}

func TestSet(t *testing.T) {
	x := 1
	c := &cleanuper{}
	Set(c, &x, 2)
	if x != 2 {
		t.Errorf("x = %d, want 2", x)
	}
	c.runCleanups()
	if x != 1 {
		t.Errorf("x = %d after cleanup, want 1", x)
	}
}
