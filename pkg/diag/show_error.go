package diag

import (
	"errors"
	"fmt"
	"io"
)

// Shower is an error that knows how to render itself for a terminal, with
// each line after the first prefixed by indent.
type Shower interface {
	Show(indent string) string
}

// ShowError shows an error to w. It uses the Show method if the error or one
// it wraps implements Shower, and uses Complain to print the error message
// otherwise.
func ShowError(w io.Writer, err error) {
	var shower Shower
	if errors.As(err, &shower) {
		fmt.Fprintln(w, shower.Show(""))
	} else {
		Complain(w, err.Error())
	}
}

// Complain prints a message to w in bold and red, adding a trailing newline.
func Complain(w io.Writer, msg string) {
	fmt.Fprintf(w, "\033[31;1m%s\033[m\n", msg)
}

// Complainf is like Complain, but accepts a format string and arguments.
func Complainf(w io.Writer, format string, args ...any) {
	Complain(w, fmt.Sprintf(format, args...))
}
