package macrocell

import "fmt"

// Jump returns the center of n, a node of level n.Level()-1, advanced by
// 2^(n.Level()-2) generations. The level of n must be at least 2.
//
// Where NextGeneration advances one generation per call, Jump recurses twice
// at each level, letting every level double the distance in time. Results are
// memoized separately from those of NextGeneration.
func (s *Store) Jump(n *Node) *Node {
	if n.level < 2 {
		panic(fmt.Sprintf("macrocell: Jump of level %d node", n.level))
	}
	if n.population == 0 {
		return n.nw
	}
	if r, ok := s.jump[n]; ok {
		return r
	}
	var r *Node
	if n.level == 2 {
		r = s.slowSimulation(n)
	} else {
		// Nine overlapping nodes one level down, each advanced by
		// 2^(level-3) generations.
		n00 := s.Jump(n.nw)
		n01 := s.Jump(s.horizontal(n.nw, n.ne))
		n02 := s.Jump(n.ne)
		n10 := s.Jump(s.vertical(n.nw, n.sw))
		n11 := s.Jump(s.centeredSubnode(n))
		n12 := s.Jump(s.vertical(n.ne, n.se))
		n20 := s.Jump(n.sw)
		n21 := s.Jump(s.horizontal(n.sw, n.se))
		n22 := s.Jump(n.se)
		r = s.Internal(
			s.Jump(s.Internal(n00, n01, n10, n11)),
			s.Jump(s.Internal(n01, n02, n11, n12)),
			s.Jump(s.Internal(n10, n11, n20, n21)),
			s.Jump(s.Internal(n11, n12, n21, n22)))
	}
	s.jump[n] = r
	return r
}

// Generations returns how many generations Jump advances a node of the given
// level.
func Generations(level int) int64 { return 1 << (level - 2) }

// The helpers below build nodes one level below the node they are given.

// Straddling the shared edge of w and e, its east neighbor.
func (s *Store) horizontal(w, e *Node) *Node {
	return s.Internal(w.ne, e.nw, w.se, e.sw)
}

// Straddling the shared edge of n and so, its south neighbor.
func (s *Store) vertical(n, so *Node) *Node {
	return s.Internal(n.sw, n.se, so.nw, so.ne)
}
