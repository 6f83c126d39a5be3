package testutil

import "os"

// Setenv sets an environment variable until the test finishes. It returns
// value.
func Setenv(c Cleanuper, name, value string) string {
	restoreEnv(c, name)
	os.Setenv(name, value)
	return value
}

// Unsetenv unsets environment variables until the test finishes.
func Unsetenv(c Cleanuper, names ...string) {
	for _, name := range names {
		restoreEnv(c, name)
		os.Unsetenv(name)
	}
}

func restoreEnv(c Cleanuper, name string) {
	old, ok := os.LookupEnv(name)
	c.Cleanup(func() {
		if ok {
			os.Setenv(name, old)
		} else {
			os.Unsetenv(name)
		}
	})
}
