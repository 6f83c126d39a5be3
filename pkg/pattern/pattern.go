// Package pattern reads and writes life patterns in the plain-text and RLE
// formats, and moves them in and out of universes.
package pattern

import (
	"cmp"
	"errors"
	"path/filepath"
	"slices"
	"strings"

	"github.com/245790/gemini/pkg/diag"
	"github.com/245790/gemini/pkg/life"
	"github.com/245790/gemini/pkg/logutil"
)

var logger = logutil.GetLogger("[pattern] ")

// MaxSize is the largest number of rows or columns a pattern may have.
const MaxSize = 3000

// ErrTooLarge is wrapped by parse errors of patterns with more than MaxSize
// rows or columns.
var ErrTooLarge = errors.New("pattern too large")

// Cell is the position of a live cell relative to the top-left corner of a
// pattern.
type Cell struct{ X, Y int }

// Pattern is a finite arrangement of live cells.
type Pattern struct {
	Name   string
	Width  int
	Height int
	// Live cells. Parsers and Capture return them in row-major order.
	Cells []Cell
}

// Parse parses a pattern in either format. The RLE format is used when name
// has the .rle extension or the first line that is not a plain-text comment
// starts with x or #.
func Parse(name, src string) (*Pattern, error) {
	if isRLE(name, src) {
		return ParseRLE(name, src)
	}
	return ParsePlain(name, src)
}

func isRLE(name, src string) bool {
	if strings.EqualFold(filepath.Ext(name), ".rle") {
		return true
	}
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimLeft(line, " \t\r")
		if line == "" || line[0] == '!' {
			continue
		}
		return line[0] == 'x' || line[0] == '#'
	}
	return false
}

// Fallback for the name of a pattern whose source does not carry one.
func baseName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func parseError(typ, name, src string, r diag.Ranging, msg string, cause error) error {
	return &diag.Error{
		Type:    typ,
		Message: msg,
		Context: *diag.NewContext(name, src, r),
		Cause:   cause,
	}
}

// Place sets the cells of the pattern in u to the given state, with the top-left
// corner of the pattern at (x, y).
func Place(u *life.Universe, p *Pattern, x, y int, alive bool) {
	for _, c := range p.Cells {
		u.SetAlive(x+c.X, y+c.Y, alive)
	}
}

// Center is like Place, but centers the pattern on the origin.
func Center(u *life.Universe, p *Pattern, alive bool) {
	Place(u, p, -p.Width/2, -p.Height/2, alive)
}

// Load parses src and replaces the content of dst with the pattern centered on
// the origin, resetting the generation count. The universe keeps its size
// unless the pattern does not fit. On error dst is left unchanged.
func Load(dst *life.Universe, name, src string) error {
	p, err := Parse(name, src)
	if err != nil {
		logger.Printf("loading %s: %v", name, err)
		return err
	}
	tmp := life.New(dst.Store())
	tmp.InitEmpty(max(dst.Width(), p.Width), max(dst.Height(), p.Height))
	Center(tmp, p, true)
	dst.Replace(tmp)
	logger.Printf("loaded %s: %dx%d, %d cells", name, p.Width, p.Height, len(p.Cells))
	return nil
}

// Capture returns the live cells within the bounding box of u. The pattern of
// an empty universe has no cells and a size of 0 by 0.
func Capture(u *life.Universe) *Pattern {
	if u.Population() == 0 {
		return &Pattern{}
	}
	left, right := u.LeftBoundary(), u.RightBoundary()
	top, bottom := u.TopBoundary(), u.BottomBoundary()
	p := &Pattern{
		Width:  right - left + 1,
		Height: bottom - top + 1,
		Cells:  make([]Cell, 0, u.Population()),
	}
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			if u.IsAlive(x, y) {
				p.Cells = append(p.Cells, Cell{x - left, y - top})
			}
		}
	}
	return p
}

// Returns the distinct cells of p in row-major order.
func sortedCells(p *Pattern) []Cell {
	cells := slices.Clone(p.Cells)
	slices.SortFunc(cells, func(a, b Cell) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})
	return slices.Compact(cells)
}
