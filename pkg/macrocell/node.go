// Package macrocell implements canonicalized quadtrees ("macrocells") over an
// unbounded two-dimensional grid of binary cells, and the memoized recursive
// algorithm that advances them under Conway's rule B3/S23.
//
// A node of level L represents a square of 2^L by 2^L cells. Level 0 nodes are
// single cells; a node of level L > 0 has four children of level L-1. Nodes
// are immutable and are only created by a Store, which guarantees that two
// nodes with the same content are the same pointer. Equality of nodes is
// therefore pointer equality.
//
// Coordinates passed to node methods are relative to the center of the node:
// both x and y range over [-2^(L-1), 2^(L-1)), with y growing southwards.
package macrocell

// Node is an immutable quadtree node. The zero value is not valid; nodes are
// obtained from a Store.
type Node struct {
	nw, ne, sw, se *Node

	level      int
	population int64
	hash       uint32
}

// Level returns the level of the node. The node spans 2^Level cells per side.
func (n *Node) Level() int { return n.level }

// Size returns the side length of the node, 2^Level.
func (n *Node) Size() int { return 1 << n.level }

// Population returns the number of live cells in the node.
func (n *Node) Population() int64 { return n.population }

// AnyAlive reports whether the node contains any live cell. For a leaf, this
// is whether the cell is alive.
func (n *Node) AnyAlive() bool { return n.population > 0 }

// Hash returns the structural hash of the node. Leaves hash to their
// population; internal nodes combine their children's hashes with
// hash.Quad.
func (n *Node) Hash() uint32 { return n.hash }

// IsLeaf reports whether the node is a single cell.
func (n *Node) IsLeaf() bool { return n.level == 0 }

// NW returns the northwestern child, or nil for a leaf.
func (n *Node) NW() *Node { return n.nw }

// NE returns the northeastern child, or nil for a leaf.
func (n *Node) NE() *Node { return n.ne }

// SW returns the southwestern child, or nil for a leaf.
func (n *Node) SW() *Node { return n.sw }

// SE returns the southeastern child, or nil for a leaf.
func (n *Node) SE() *Node { return n.se }

// Bit reports whether the cell at (x, y) is alive. The coordinates must lie
// within the node.
func (n *Node) Bit(x, y int) bool {
	for n.level > 0 {
		offset := quarter(n.level)
		switch {
		case x < 0 && y < 0:
			n, x, y = n.nw, x+offset, y+offset
		case x >= 0 && y < 0:
			n, x, y = n.ne, x-offset, y+offset
		case x < 0:
			n, x, y = n.sw, x+offset, y-offset
		default:
			n, x, y = n.se, x-offset, y-offset
		}
	}
	return n.population == 1
}

// Contains reports whether (x, y) lies within the node.
func (n *Node) Contains(x, y int) bool {
	h := half(n.level)
	return -h <= x && x < h && -h <= y && y < h
}

// Distance from the center of a node of the given level to the center of its
// children. Children of a level-1 node are cells, where the distinction
// between center and corner disappears.
func quarter(level int) int {
	if level < 2 {
		return 0
	}
	return 1 << (level - 2)
}

// Half the side length of a node of the given level, which is also the side
// length of its children.
func half(level int) int {
	if level == 0 {
		return 0
	}
	return 1 << (level - 1)
}
