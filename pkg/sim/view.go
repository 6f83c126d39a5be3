package sim

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/245790/gemini/pkg/life"
	"github.com/245790/gemini/pkg/sys"
)

// Size assumed when the output is not a terminal.
const (
	defaultRows = 24
	defaultCols = 80
)

// ANSI sequence that moves the cursor home and clears the screen.
const clearScreen = "\033[H\033[2J"

type viewer struct {
	out        *os.File
	tty        bool
	tick       time.Duration
	rows, cols int
}

func newViewer(out *os.File, tick time.Duration) *viewer {
	v := &viewer{out: out, tty: sys.IsATTY(out.Fd()), tick: tick}
	v.resize()
	return v
}

func (v *viewer) resize() {
	v.rows, v.cols = sys.WinSize(v.out)
	if v.rows <= 0 || v.cols <= 0 {
		v.rows, v.cols = defaultRows, defaultCols
	}
}

// Runs r to completion. A terminal gets a frame per step; other outputs only
// get the final frame.
func (v *viewer) run(r *runner) {
	if !v.tty {
		for r.step() {
		}
		v.out.WriteString(frame(r.u, v.rows, v.cols, false))
		return
	}
	resized, stop := sys.NotifyResize()
	defer stop()
	for {
		select {
		case <-resized:
			v.resize()
		default:
		}
		v.out.WriteString(frame(r.u, v.rows, v.cols, true))
		if !r.step() {
			return
		}
		time.Sleep(v.tick)
	}
}

// Renders the universe as rows-1 lines of cols characters, one per cell, with
// the origin in the middle, followed by a status line. Lines are trimmed of
// trailing spaces unless ansi is true, in which case the frame starts by
// clearing the screen.
func frame(u *life.Universe, rows, cols int, ansi bool) string {
	gridRows := max(rows-1, 0)
	grid := make([][]byte, gridRows)
	for i := range grid {
		grid[i] = []byte(strings.Repeat(" ", cols))
	}
	cx, cy := float64(cols/2), float64(gridRows/2)
	w := float64(u.Width())
	// At one character per cell, cell (x, y) covers column cx+x and row cy+y.
	u.Draw(func(r life.Rect) {
		x0, x1 := clip(r.X, r.X+r.W, cols)
		y0, y1 := clip(r.Y, r.Y+r.H, gridRows)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				grid[y][x] = '#'
			}
		}
	}, cx, cy, w)

	var sb strings.Builder
	if ansi {
		sb.WriteString(clearScreen)
	}
	for _, line := range grid {
		if ansi {
			sb.Write(line)
		} else {
			sb.WriteString(strings.TrimRight(string(line), " "))
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "generation %d, population %d\n", u.Generation(), u.Population())
	return sb.String()
}

// Returns the integer range covered by [from, to), clipped to [0, n).
func clip(from, to float64, n int) (int, int) {
	lo := max(int(math.Floor(from)), 0)
	hi := min(int(math.Ceil(to)), n)
	return lo, max(lo, hi)
}
