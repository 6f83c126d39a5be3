// Package sys provide system utilities with the same API across OSes.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

// WinSize queries the size of the terminal referenced by the given file. It
// returns -1, -1 if the file is not a terminal.
func WinSize(file *os.File) (row, col int) { return winSize(file) }

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// NotifyResize returns a channel on which changes of the terminal size are
// signaled, and a function that stops the notification. On systems without
// such a signal, the channel never receives.
func NotifyResize() (<-chan os.Signal, func()) { return notifyResize() }
