// Package prog supports building testable, composable programs.
//
// The main abstraction of this package is the [Program] interface, which can be
// combined using [Composite]. The subprograms of gemini (the build info
// printer, the JSON-RPC engine service and the terminal simulator) implement it
// and are combined in cmd/gemini.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/245790/gemini/pkg/diag"
	"github.com/245790/gemini/pkg/logutil"
	"github.com/245790/gemini/pkg/sys"
)

// Program represents a subprogram.
type Program interface {
	// RegisterFlags registers the flags of the subprogram. Flags shared by
	// several subprograms are available from the methods of FlagSet.
	RegisterFlags(fs *FlagSet)
	// Run runs the subprogram. It returns an error created by NextProgram,
	// such as ErrNextProgram, to let the next subprogram run instead.
	Run(fds [3]*os.File, args []string) error
}

// Flags handled by Run itself.
type flags struct {
	log  string
	help bool
}

func (f *flags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.log, "log", "", "a file to write debug log to")
	fs.BoolVar(&f.help, "help", false, "show usage help and quit")
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: gemini [flags] [pattern-file]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags and runs the first applicable subprogram. It
// returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	var f flags
	fs := flag.NewFlagSet("gemini", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)
	f.register(fs)
	p.RegisterFlags(&FlagSet{FlagSet: fs})

	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. gemini defines -help, but not -h;
			// so this means that -h has been requested. Handle this by
			// printing the same message as an undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if f.log != "" {
		err = logutil.SetOutputFile(f.log)
		if err == nil {
			defer logutil.SetOutput(io.Discard)
		} else {
			fmt.Fprintln(fds[2], err)
		}
	}

	if f.help {
		usage(fds[1], fs)
		return 0
	}

	err = p.Run(fds, fs.Args())
	if err == nil {
		return 0
	}
	var np nextProgramError
	if errors.As(err, &np) {
		np.cleanup(fds)
		err = errNoSuitableSubprogram
	}
	var exit exitError
	if errors.As(err, &exit) {
		return exit.exit
	}
	if msg := err.Error(); msg != "" {
		if sys.IsATTY(fds[2].Fd()) {
			diag.ShowError(fds[2], err)
		} else {
			fmt.Fprintln(fds[2], msg)
		}
	}
	var bad badUsageError
	if errors.As(err, &bad) {
		usage(fds[2], fs)
	}
	return 2
}

var errNoSuitableSubprogram = errors.New("internal error: no suitable subprogram")

// Composite returns a Program made up from other programs. It registers the
// flags of all of them, and runs them in turn until one does not return an
// error created by NextProgram. Cleanup functions collected from the
// subprograms that asked for the next one run after the last subprogram run,
// in reverse order.
func Composite(programs ...Program) Program {
	return composite(programs)
}

type composite []Program

func (cp composite) RegisterFlags(f *FlagSet) {
	for _, p := range cp {
		p.RegisterFlags(f)
	}
}

func (cp composite) Run(fds [3]*os.File, args []string) error {
	var cleanups []func([3]*os.File)
	for _, p := range cp {
		err := p.Run(fds, args)
		if np, ok := err.(nextProgramError); ok {
			cleanups = append(cleanups, np.cleanups...)
		} else {
			nextProgramError{cleanups}.cleanup(fds)
			return err
		}
	}
	// If we have reached here, all subprograms have returned ErrNextProgram
	return NextProgram(cleanups...)
}

// NextProgram returns a special error that may be returned by [Program.Run]
// that is part of a [Composite] program, indicating that the next program
// should be tried. It can carry cleanup functions that should be run in
// reverse order before the composite program finishes.
func NextProgram(cleanups ...func([3]*os.File)) error { return nextProgramError{cleanups} }

// ErrNextProgram is a special error that may be returned by [Program.Run] that
// is part of a [Composite] program, indicating that the next program should be
// tried.
var ErrNextProgram = NextProgram()

type nextProgramError struct{ cleanups []func([3]*os.File) }

// If this error ever escapes from Run, it is a bug.
func (e nextProgramError) Error() string { return "next program" }

func (e nextProgramError) cleanup(fds [3]*os.File) {
	for i := len(e.cleanups) - 1; i >= 0; i-- {
		e.cleanups[i](fds)
	}
}

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
