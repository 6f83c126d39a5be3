// Package env keeps names of environment variables with special significance to
// gemini.
package env

// Environment variables with special significance to gemini.
const (
	GEMINI_CONFIG   = "GEMINI_CONFIG"
	HOME            = "HOME"
	XDG_CONFIG_HOME = "XDG_CONFIG_HOME"
)
