// Command lifeprof profiles the generation engine on a fixed workload.
//
//	go build ./cmd/lifeprof
//	./lifeprof -mode mem
//	go tool pprof -http=":8000" ./lifeprof mem.pprof
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/profile"

	"github.com/245790/gemini/pkg/life"
	"github.com/245790/gemini/pkg/logutil"
	"github.com/245790/gemini/pkg/pattern"
	"github.com/245790/gemini/pkg/pprof"
)

const (
	gosperGun = `#N Gosper glider gun
x = 36, y = 9, rule = B3/S23
24bo$22bobo$12b2o6b2o12b2o$11bo3bo4b2o12b2o$2o8bo5bo3b2o$2o8bo3bob2o4b
obo$10bo5bo7bo$11bo3bo$12b2o!
`
	acorn = `#N Acorn
x = 7, y = 3, rule = B3/S23
bo$3bo$2o2b3o!
`
)

var logger = logutil.GetLogger("[lifeprof] ")

func main() {
	mode := flag.String("mode", "cpu", "profile mode, cpu or mem")
	gens := flag.Int64("gens", 5000, "generations to run each pattern for")
	dir := flag.String("dir", ".", "directory to write the profile to")
	jump := flag.Bool("jump", false, "advance with Jump instead of Update")
	logFile := flag.String("log", "", "a file to write debug log to")
	flag.Parse()

	if *logFile != "" {
		if err := logutil.SetOutputFile(*logFile); err != nil {
			fail(err)
		}
	}

	opt, ok := pprof.Modes[*mode]
	if !ok || (*mode != "cpu" && *mode != "mem") {
		fail(fmt.Errorf("unknown mode %q", *mode))
	}
	p := profile.Start(opt, profile.ProfilePath(*dir), profile.NoShutdownHook)
	for _, src := range []struct{ name, rle string }{
		{"gun.rle", gosperGun}, {"acorn.rle", acorn},
	} {
		s := run(src.name, src.rle, *gens, *jump)
		fmt.Fprintf(os.Stdout, "%s: generation %d, population %d, nodes %d\n",
			src.name, s.Generation, s.Population, s.Nodes)
	}
	p.Stop()
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(2)
}

func run(name, rle string, gens int64, jump bool) life.Stats {
	logger.Printf("running %s for %d generations", name, gens)
	u := life.New(nil)
	if err := pattern.Load(u, name, rle); err != nil {
		fail(err)
	}
	for u.Generation() < gens {
		if jump {
			u.Jump()
		} else {
			u.Update()
		}
	}
	s := u.Stats()
	logger.Printf("finished %s: %d canonical nodes, %d memoized", name, s.Nodes, s.Memo)
	return s
}
