// Package must has helpers that panic instead of returning errors, for tests
// and for the few places where an error means a bug.
package must

import (
	"os"
	"path/filepath"
)

// OK panics with err unless it is nil.
func OK(err error) {
	if err != nil {
		panic(err)
	}
}

// OK1 is like OK, but passes through one value.
func OK1[T any](v T, err error) T {
	OK(err)
	return v
}

// OK2 is like OK, but passes through two values.
func OK2[T1, T2 any](v1 T1, v2 T2, err error) (T1, T2) {
	OK(err)
	return v1, v2
}

// ReadFileString returns the content of a file.
func ReadFileString(name string) string {
	return string(OK1(os.ReadFile(name)))
}

// WriteFile creates a file with the given content, along with any missing
// parent directories.
func WriteFile(name, content string) {
	OK(os.MkdirAll(filepath.Dir(name), 0700))
	OK(os.WriteFile(name, []byte(content), 0600))
}
