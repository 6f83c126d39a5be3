//go:build unix

package sys

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

func winSize(file *os.File) (row, col int) {
	ws, err := unix.IoctlGetWinsize(int(file.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return -1, -1
	}
	row, col = int(ws.Row), int(ws.Col)
	// Some terminals, serial consoles among them, report a zero size.
	if row == 0 {
		row = 24
	}
	if col == 0 {
		col = 80
	}
	return row, col
}

func notifyResize() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, unix.SIGWINCH)
	return ch, func() { signal.Stop(ch) }
}
