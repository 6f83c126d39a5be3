// Package sim implements the default subprogram of gemini, which runs a
// universe in the terminal and prints the result.
package sim

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/245790/gemini/pkg/config"
	"github.com/245790/gemini/pkg/errutil"
	"github.com/245790/gemini/pkg/life"
	"github.com/245790/gemini/pkg/logutil"
	"github.com/245790/gemini/pkg/pattern"
	"github.com/245790/gemini/pkg/prog"
	"github.com/245790/gemini/pkg/store"
)

var logger = logutil.GetLogger("[sim] ")

var errNoDB = errors.New("no pattern database configured; set db in the config file")

// Program is the terminal subprogram.
type Program struct {
	gens   int
	jump   bool
	random bool
	format string
	view   bool
	save   string
	open   string
	rotate string
	config *string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.IntVar(&p.gens, "gens", 0, "number of generations to run")
	fs.BoolVar(&p.jump, "jump", false, "advance in the biggest steps the universe allows, until at least -gens generations have passed")
	fs.BoolVar(&p.random, "random", false, "fill the universe randomly, using the size and density from the config")
	fs.StringVar(&p.format, "format", "stats", "output format: rle, plain or stats")
	fs.BoolVar(&p.view, "view", false, "draw every generation in the terminal")
	fs.StringVar(&p.save, "save", "", "save the final pattern in the pattern database under this name")
	fs.StringVar(&p.open, "open", "", "load the named pattern from the pattern database")
	fs.StringVar(&p.rotate, "rotate", "", "rotate the initial pattern a quarter turn, cw or acw")
	p.config = fs.Config()
}

func (p *Program) Run(fds [3]*os.File, args []string) (err error) {
	switch {
	case len(args) > 1:
		return prog.BadUsage("at most one pattern file may be given")
	case len(args) == 1 && p.open != "":
		return prog.BadUsage("a pattern file cannot be combined with -open")
	case len(args) == 1 && p.random, p.open != "" && p.random:
		return prog.BadUsage("-random cannot be combined with a pattern")
	case p.gens < 0:
		return prog.BadUsage("-gens must not be negative")
	}
	switch p.format {
	case "rle", "plain", "stats":
	default:
		return prog.BadUsage(fmt.Sprintf("unknown format %q", p.format))
	}
	switch p.rotate {
	case "", "cw", "acw":
	default:
		return prog.BadUsage(fmt.Sprintf("unknown rotation %q", p.rotate))
	}

	cfg, err := config.Read(*p.config)
	if err != nil {
		return err
	}

	var db store.DBStore
	if p.open != "" || p.save != "" {
		if cfg.DB == "" {
			return errNoDB
		}
		db, err = store.NewStore(cfg.DB)
		if err != nil {
			return err
		}
		defer func() { err = errutil.Multi(err, db.Close()) }()
	}

	u := life.New(nil)
	u.InitEmpty(cfg.Width, cfg.Height)
	switch {
	case len(args) == 1:
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := pattern.Load(u, args[0], string(src)); err != nil {
			return err
		}
	case p.open != "":
		rle, err := db.Pattern(p.open)
		if err != nil {
			return fmt.Errorf("%s: %w", p.open, err)
		}
		if err := pattern.Load(u, p.open+".rle", rle); err != nil {
			return err
		}
	case p.random:
		var r *rand.Rand
		if cfg.Seed != 0 {
			r = rand.New(rand.NewSource(cfg.Seed))
		}
		u.InitRandom(cfg.Width, cfg.Height, cfg.Density, r)
	}
	switch p.rotate {
	case "cw":
		u.RotateClockwise()
	case "acw":
		u.RotateAntiClockwise()
	}

	r := &runner{u: u, cfg: cfg, jump: p.jump, gens: int64(p.gens)}
	if p.view {
		newViewer(fds[1], cfg.Tick).run(r)
	} else {
		for r.step() {
		}
	}

	if p.save != "" {
		if err := db.SavePattern(p.save, rleOf(u, p.save)); err != nil {
			return err
		}
		logger.Printf("saved pattern %s", p.save)
	}
	return write(fds[1], u, p.format)
}

// Advances a universe to a target generation.
type runner struct {
	u    *life.Universe
	cfg  config.Config
	jump bool
	gens int64
}

// Takes one step towards the target generation, and reports whether it did.
func (r *runner) step() bool {
	if r.u.Generation() >= r.gens {
		return false
	}
	if r.jump {
		r.u.Jump()
	} else {
		r.u.Update()
	}
	if r.cfg.MaxNodes > 0 && r.u.Store().Len() > r.cfg.MaxNodes {
		logger.Printf("compacting node store of %d nodes", r.u.Store().Len())
		r.u.Compact()
	}
	return true
}

func rleOf(u *life.Universe, name string) string {
	p := pattern.Capture(u)
	p.Name = name
	var sb strings.Builder
	pattern.WriteRLE(&sb, p)
	return sb.String()
}

func write(w io.Writer, u *life.Universe, format string) error {
	switch format {
	case "rle":
		return pattern.WriteRLE(w, pattern.Capture(u))
	case "plain":
		return pattern.WritePlain(w, pattern.Capture(u))
	default:
		s := u.Stats()
		_, err := fmt.Fprintf(w, "generation: %d\npopulation: %d\nwidth: %d\nnodes: %d\n",
			s.Generation, s.Population, s.Width, s.Nodes)
		return err
	}
}
