package macrocell

import "math"

// Sentinels returned by the bound searches of empty nodes.
const (
	NoMin = math.MaxInt
	NoMax = math.MinInt
)

// The bound searches return offsets from the northwest corner of the node,
// in [0, Size()). They only descend into quadrants that have live cells.

// Left returns the smallest column offset of a live cell, or NoMin.
func (n *Node) Left() int {
	if n.population == 0 {
		return NoMin
	}
	if n.level == 0 {
		return 0
	}
	if l := min(n.nw.Left(), n.sw.Left()); l != NoMin {
		return l
	}
	return half(n.level) + min(n.ne.Left(), n.se.Left())
}

// Right returns the largest column offset of a live cell, or NoMax.
func (n *Node) Right() int {
	if n.population == 0 {
		return NoMax
	}
	if n.level == 0 {
		return 0
	}
	if r := max(n.ne.Right(), n.se.Right()); r != NoMax {
		return half(n.level) + r
	}
	return max(n.nw.Right(), n.sw.Right())
}

// Top returns the smallest row offset of a live cell, or NoMin.
func (n *Node) Top() int {
	if n.population == 0 {
		return NoMin
	}
	if n.level == 0 {
		return 0
	}
	if t := min(n.nw.Top(), n.ne.Top()); t != NoMin {
		return t
	}
	return half(n.level) + min(n.sw.Top(), n.se.Top())
}

// Bottom returns the largest row offset of a live cell, or NoMax.
func (n *Node) Bottom() int {
	if n.population == 0 {
		return NoMax
	}
	if n.level == 0 {
		return 0
	}
	if b := max(n.sw.Bottom(), n.se.Bottom()); b != NoMax {
		return half(n.level) + b
	}
	return max(n.nw.Bottom(), n.ne.Bottom())
}
