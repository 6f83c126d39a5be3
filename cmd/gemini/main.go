// Gemini runs Conway's Game of Life on an unbounded grid, using the Hashlife
// algorithm. It can simulate patterns in the terminal, or serve a universe
// over JSON-RPC on stdio.
package main

import (
	"os"

	"github.com/245790/gemini/pkg/buildinfo"
	"github.com/245790/gemini/pkg/pprof"
	"github.com/245790/gemini/pkg/prog"
	"github.com/245790/gemini/pkg/rpc"
	"github.com/245790/gemini/pkg/sim"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&pprof.Program{}, &buildinfo.Program{}, &rpc.Program{}, &sim.Program{})))
}
