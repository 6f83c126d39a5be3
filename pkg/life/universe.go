// Package life implements a universe of Conway's game of life on top of
// canonicalized quadtrees.
//
// A Universe is a square of 2^L by 2^L cells centered on the origin, covering
// [-2^(L-1), 2^(L-1)) on both axes, with y growing southwards. It grows as
// needed when cells are set outside of it or when live cells approach its
// edge during an update; it never shrinks except through InitEmpty.
package life

import (
	"fmt"
	"math/bits"
	"math/rand"
	"time"

	"github.com/245790/gemini/pkg/logutil"
	"github.com/245790/gemini/pkg/macrocell"
)

var logger = logutil.GetLogger("[life] ")

const (
	// MinLevel is the smallest level of the root of a universe.
	MinLevel = 3
	// MaxLevel is the largest level of the root of a universe. Coordinates
	// must lie in [-2^(MaxLevel-1), 2^(MaxLevel-1)).
	MaxLevel = 62

	// Growth beyond this level is logged.
	logLevel = 24
)

// Universe is a mutable handle to an immutable quadtree. It is not safe for
// concurrent use.
type Universe struct {
	store      *macrocell.Store
	root       *macrocell.Node
	generation int64
	// Highest level whose growth has been logged.
	logged int
}

// New creates an empty universe of the minimum size whose nodes are created
// by the given store. Universes sharing a store share their nodes and the
// memoized results of updates. If s is nil, a new store is created.
func New(s *macrocell.Store) *Universe {
	if s == nil {
		s = macrocell.NewStore()
	}
	u := &Universe{store: s}
	u.InitEmpty(0, 0)
	return u
}

// Store returns the store of the universe.
func (u *Universe) Store() *macrocell.Store { return u.store }

// Root returns the current root node.
func (u *Universe) Root() *macrocell.Node { return u.root }

// InitEmpty resets the universe to an all-dead square big enough to hold w by
// h cells, and resets the generation count.
func (u *Universe) InitEmpty(w, h int) {
	level := max(MinLevel, ceilLog2(max(w, h)))
	u.root = u.store.Empty(level)
	u.generation = 0
}

// InitRandom resets the universe to hold w by h cells, each alive with the
// given probability, filling [-w/2, w-w/2) by [-h/2, h-h/2). If r is nil, a
// time-seeded source is used.
func (u *Universe) InitRandom(w, h int, density float64, r *rand.Rand) {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	u.InitEmpty(w, h)
	for y := -h / 2; y < h-h/2; y++ {
		for x := -w / 2; x < w-w/2; x++ {
			if r.Float64() < density {
				u.root = u.store.SetBit(u.root, x, y)
			}
		}
	}
}

// Clear kills all cells and resets the generation count, keeping the size.
func (u *Universe) Clear() {
	u.root = u.store.Empty(u.root.Level())
	u.generation = 0
}

// Replace makes u hold the content and generation count of other, which must
// share the store of u.
func (u *Universe) Replace(other *Universe) {
	if other.store != u.store {
		panic("life: Replace with a universe of a different store")
	}
	u.root = other.root
	u.generation = other.generation
}

// Width returns the side length of the universe.
func (u *Universe) Width() int { return u.root.Size() }

// Height returns the side length of the universe. It is always equal to
// Width.
func (u *Universe) Height() int { return u.root.Size() }

// Level returns the level of the root.
func (u *Universe) Level() int { return u.root.Level() }

// Generation returns the number of generations advanced since the universe was
// last initialized or cleared.
func (u *Universe) Generation() int64 { return u.generation }

// SetGeneration sets the generation count, for restoring a saved state.
func (u *Universe) SetGeneration(g int64) { u.generation = g }

// Population returns the number of live cells.
func (u *Universe) Population() int64 { return u.root.Population() }

// IsAlive reports whether the cell at (x, y) is alive. Cells outside the
// universe are dead.
func (u *Universe) IsAlive(x, y int) bool {
	return u.root.Contains(x, y) && u.root.Bit(x, y)
}

// SetAlive sets the state of the cell at (x, y), growing the universe until
// it contains the cell if the cell is to be made alive. It panics if the
// coordinates lie outside the range allowed by MaxLevel.
func (u *Universe) SetAlive(x, y int, alive bool) {
	if !alive {
		if u.root.Contains(x, y) {
			u.root = u.store.UnsetBit(u.root, x, y)
		}
		return
	}
	for !u.root.Contains(x, y) {
		if u.root.Level() >= MaxLevel {
			panic(fmt.Sprintf("life: cell (%d, %d) out of range", x, y))
		}
		u.expand()
	}
	u.root = u.store.SetBit(u.root, x, y)
}

// Update advances the universe by one generation.
func (u *Universe) Update() {
	level := u.root.Level()
	u.pad()
	u.root = u.store.NextGeneration(u.root)
	u.regrow(level)
	u.generation++
}

// Jump advances the universe by as many generations as the memoized recursion
// can skip in one step at the current size, and returns that number. Bigger
// universes take bigger steps: a universe of level L advances by at least
// 2^(L-1) generations.
func (u *Universe) Jump() int64 {
	level := u.root.Level()
	u.pad()
	// One more level of margin for the cells that grow during the jump.
	u.expand()
	n := macrocell.Generations(u.root.Level())
	u.root = u.store.Jump(u.root)
	u.regrow(level)
	u.generation += n
	return n
}

// Expands until all live cells lie in the center quarter of the root: each
// quadrant must have all its population in its innermost sub-sub-quadrant.
// One generation can then not reach past the center half, which is what
// stepping keeps.
func (u *Universe) pad() {
	for u.root.Level() < MinLevel || !quiet(u.root) {
		u.expand()
	}
}

func quiet(n *macrocell.Node) bool {
	return n.NW().Population() == n.NW().SE().SE().Population() &&
		n.NE().Population() == n.NE().SW().SW().Population() &&
		n.SW().Population() == n.SW().NE().NE().Population() &&
		n.SE().Population() == n.SE().NW().NW().Population()
}

// Expands after a step so that the side length does not drop below what it
// was before.
func (u *Universe) regrow(level int) {
	for u.root.Level() < level {
		u.expand()
	}
}

func (u *Universe) expand() {
	u.root = u.store.Expand(u.root)
	if level := u.root.Level(); level > logLevel && level > u.logged {
		logger.Printf("universe grew to level %d, %d canonical nodes", level, u.store.Len())
		u.logged = level
	}
}

// RotateClockwise turns the universe a quarter turn clockwise about its center
// point, which lies between the four cells around the origin. The cell at
// (x, y) moves to (-1-y, x).
func (u *Universe) RotateClockwise() {
	u.root = u.store.RotateClockwise(u.root)
}

// RotateAntiClockwise turns the universe a quarter turn anticlockwise about its
// center point. The cell at (x, y) moves to (y, -1-x).
func (u *Universe) RotateAntiClockwise() {
	u.root = u.store.RotateAntiClockwise(u.root)
}

// Compact releases the nodes and memoized results of the store that are not
// needed by this universe. Other universes sharing the store must not be used
// afterwards.
func (u *Universe) Compact() {
	u.store.Compact(u.root)
}

// Stats summarizes the state of a universe and its store.
type Stats struct {
	Generation int64 `json:"generation"`
	Population int64 `json:"population"`
	Level      int   `json:"level"`
	Width      int   `json:"width"`
	Nodes      int   `json:"nodes"`
	Memo       int   `json:"memo"`
}

// Stats returns the current statistics.
func (u *Universe) Stats() Stats {
	return Stats{
		Generation: u.generation,
		Population: u.root.Population(),
		Level:      u.root.Level(),
		Width:      u.Width(),
		Nodes:      u.store.Len(),
		Memo:       u.store.MemoLen(),
	}
}

// Smallest level whose side length is at least n.
func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	return bits.Len(uint(n - 1))
}
