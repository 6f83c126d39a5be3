package sys

import (
	"os"

	"golang.org/x/sys/windows"
)

func winSize(file *os.File) (row, col int) {
	var info windows.ConsoleScreenBufferInfo
	err := windows.GetConsoleScreenBufferInfo(windows.Handle(file.Fd()), &info)
	if err != nil {
		return -1, -1
	}
	window := info.Window
	return int(window.Bottom - window.Top + 1), int(window.Right - window.Left + 1)
}

// Windows reports console resizes as input events rather than signals.
func notifyResize() (<-chan os.Signal, func()) {
	return make(chan os.Signal), func() {}
}
