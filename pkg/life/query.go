package life

import "github.com/245790/gemini/pkg/macrocell"

// The boundary queries return the extreme coordinates of live cells. When the
// universe has no live cells, they return 0 for the left and top boundaries
// and Width()-1 for the right and bottom boundaries.

// LeftBoundary returns the smallest x of a live cell.
func (u *Universe) LeftBoundary() int {
	if !u.root.AnyAlive() {
		return 0
	}
	return u.root.Left() - u.Width()/2
}

// RightBoundary returns the largest x of a live cell.
func (u *Universe) RightBoundary() int {
	if !u.root.AnyAlive() {
		return u.Width() - 1
	}
	return u.root.Right() - u.Width()/2
}

// TopBoundary returns the smallest y of a live cell.
func (u *Universe) TopBoundary() int {
	if !u.root.AnyAlive() {
		return 0
	}
	return u.root.Top() - u.Height()/2
}

// BottomBoundary returns the largest y of a live cell.
func (u *Universe) BottomBoundary() int {
	if !u.root.AnyAlive() {
		return u.Height() - 1
	}
	return u.root.Bottom() - u.Height()/2
}

// InsertPattern copies the live cells of the pattern universe into u, with the
// pattern's origin placed at (x, y). If alive is false, the corresponding
// cells of u are killed instead, erasing the pattern's footprint.
func (u *Universe) InsertPattern(pattern *Universe, x, y int, alive bool) {
	if !pattern.root.AnyAlive() {
		return
	}
	left, right := pattern.LeftBoundary(), pattern.RightBoundary()
	top, bottom := pattern.TopBoundary(), pattern.BottomBoundary()
	for py := top; py <= bottom; py++ {
		for px := left; px <= right; px++ {
			if pattern.IsAlive(px, py) {
				u.SetAlive(px+x, py+y, alive)
			}
		}
	}
}

// As2DArray returns the cells within the bounding box of the live cells, one
// row per slice from top to bottom, 1 for alive and 0 for dead. It returns an
// empty slice when there are no live cells.
func (u *Universe) As2DArray() [][]int {
	if !u.root.AnyAlive() {
		return [][]int{}
	}
	left, right := u.LeftBoundary(), u.RightBoundary()
	top, bottom := u.TopBoundary(), u.BottomBoundary()
	rows := make([][]int, bottom-top+1)
	for i := range rows {
		row := make([]int, right-left+1)
		for j := range row {
			if u.root.Bit(left+j, top+i) {
				row[j] = 1
			}
		}
		rows[i] = row
	}
	return rows
}

// MinQuad is the on-screen side length at or below which Draw fills a quadrant
// with live cells whole instead of descending into it.
const MinQuad = 1.0

// Rect is a rectangle on screen.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Draw calls fill with the on-screen rectangle of every region with live cells,
// when the universe is drawn as a square of the given side length centered at
// (cx, cy). Regions are single cells, or quadrants drawn no bigger than
// MinQuad.
func (u *Universe) Draw(fill func(Rect), cx, cy, width float64) {
	draw(u.root, fill, cx, cy, width)
}

func draw(n *macrocell.Node, fill func(Rect), cx, cy, w float64) {
	if !n.AnyAlive() {
		return
	}
	if n.IsLeaf() || w <= MinQuad {
		fill(Rect{cx - w/2, cy - w/2, w, w})
		return
	}
	q := w / 4
	draw(n.NW(), fill, cx-q, cy-q, w/2)
	draw(n.NE(), fill, cx+q, cy-q, w/2)
	draw(n.SW(), fill, cx-q, cy+q, w/2)
	draw(n.SE(), fill, cx+q, cy+q, w/2)
}
