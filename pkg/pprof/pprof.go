// Package pprof adds profiling support to the gemini program.
package pprof

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/pkg/profile"

	"github.com/245790/gemini/pkg/logutil"
	"github.com/245790/gemini/pkg/prog"
)

var logger = logutil.GetLogger("[pprof] ")

// Modes maps the values accepted by the -profile flag to profile options.
var Modes = map[string]func(*profile.Profile){
	"cpu":    profile.CPUProfile,
	"mem":    profile.MemProfile,
	"allocs": profile.MemProfileAllocs,
	"block":  profile.BlockProfile,
	"mutex":  profile.MutexProfile,
	"trace":  profile.TraceProfile,
	"clock":  profile.ClockProfile,
}

// ModeNames returns the valid profile modes, sorted.
func ModeNames() []string {
	names := make([]string, 0, len(Modes))
	for name := range Modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Program adds support for the -profile and -profiledir flags. It profiles
// the subprograms that run after it.
type Program struct {
	mode string
	dir  string
}

func (p *Program) RegisterFlags(f *prog.FlagSet) {
	f.StringVar(&p.mode, "profile", "",
		"profile the run, one of "+strings.Join(ModeNames(), ", "))
	f.StringVar(&p.dir, "profiledir", ".", "directory to write profiles to")
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	if p.mode == "" {
		return prog.NextProgram()
	}
	mode, ok := Modes[p.mode]
	if !ok {
		return prog.BadUsage(fmt.Sprintf("unknown profile mode %q", p.mode))
	}
	// profile.Start exits the process when it cannot create the directory.
	if err := os.MkdirAll(p.dir, 0755); err != nil {
		fmt.Fprintln(fds[2], "Warning: cannot create profile directory:", err)
		fmt.Fprintln(fds[2], "Continuing without profiling.")
		return prog.NextProgram()
	}
	logger.Printf("writing %s profile to %s", p.mode, p.dir)
	prof := profile.Start(mode, profile.ProfilePath(p.dir), profile.Quiet, profile.NoShutdownHook)
	return prog.NextProgram(func([3]*os.File) { prof.Stop() })
}
