package macrocell

import (
	"fmt"
	"math/bits"
)

// Neighborhood bits of a cell in a 3x3 window read into the low 11 bits of a
// row-major 4x4 mask: bits 8-10 are the row to the north, bits 6 and 4 the
// cells to the west and east, bits 0-2 the row to the south. Bit 5 is the cell
// itself.
const (
	neighborMask = 0x757
	selfBit      = 5
)

// NextGeneration returns the center of n, a node of level n.Level()-1,
// advanced by one generation. The level of n must be at least 2.
//
// Results are memoized per node, so identical regions anywhere in any
// universe sharing the store are only computed once.
func (s *Store) NextGeneration(n *Node) *Node {
	if n.level < 2 {
		panic(fmt.Sprintf("macrocell: NextGeneration of level %d node", n.level))
	}
	if n.population == 0 {
		return n.nw
	}
	if r, ok := s.next[n]; ok {
		return r
	}
	var r *Node
	if n.level == 2 {
		r = s.slowSimulation(n)
	} else {
		n00 := s.centeredSubnode(n.nw)
		n01 := s.centeredHorizontal(n.nw, n.ne)
		n02 := s.centeredSubnode(n.ne)
		n10 := s.centeredVertical(n.nw, n.sw)
		n11 := s.centeredSubSubnode(n)
		n12 := s.centeredVertical(n.ne, n.se)
		n20 := s.centeredSubnode(n.sw)
		n21 := s.centeredHorizontal(n.sw, n.se)
		n22 := s.centeredSubnode(n.se)
		r = s.Internal(
			s.NextGeneration(s.Internal(n00, n01, n10, n11)),
			s.NextGeneration(s.Internal(n01, n02, n11, n12)),
			s.NextGeneration(s.Internal(n10, n11, n20, n21)),
			s.NextGeneration(s.Internal(n11, n12, n21, n22)))
	}
	s.next[n] = r
	return r
}

// Computes the next generation of the center 2x2 of a level-2 node by reading
// all 16 cells.
func (s *Store) slowSimulation(n *Node) *Node {
	var all uint
	for y := -2; y < 2; y++ {
		for x := -2; x < 2; x++ {
			all <<= 1
			if n.Bit(x, y) {
				all |= 1
			}
		}
	}
	return s.Internal(s.oneGen(all>>5), s.oneGen(all>>4), s.oneGen(all>>1), s.oneGen(all))
}

// Applies the rule to a cell whose neighborhood is in the low bits of mask,
// laid out as described at neighborMask.
func (s *Store) oneGen(mask uint) *Node {
	if mask == 0 {
		return s.dead
	}
	self := mask>>selfBit&1 == 1
	count := bits.OnesCount(mask & neighborMask)
	return s.Leaf(count == 3 || count == 2 && self)
}

// The helpers below build nodes two levels below the node they are given
// from its grandchildren, around the centers of the named regions.

// Center of m.
func (s *Store) centeredSubnode(m *Node) *Node {
	return s.Internal(m.nw.se, m.ne.sw, m.sw.ne, m.se.nw)
}

// Around the midpoint of the shared edge of w and e, its east neighbor.
func (s *Store) centeredHorizontal(w, e *Node) *Node {
	return s.Internal(w.ne.se, e.nw.sw, w.se.ne, e.sw.nw)
}

// Around the midpoint of the shared edge of n and s, its south neighbor.
func (s *Store) centeredVertical(n, so *Node) *Node {
	return s.Internal(n.sw.se, n.se.sw, so.nw.ne, so.ne.nw)
}

// Center of m at a quarter of its size; m must be at least level 3.
func (s *Store) centeredSubSubnode(m *Node) *Node {
	return s.Internal(m.nw.se.se, m.ne.sw.sw, m.sw.ne.ne, m.se.nw.nw)
}
