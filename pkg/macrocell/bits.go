package macrocell

// SetBit returns a node like n but with the cell at (x, y) alive. The
// coordinates must lie within n.
func (s *Store) SetBit(n *Node, x, y int) *Node { return s.withBit(n, x, y, true) }

// UnsetBit returns a node like n but with the cell at (x, y) dead. The
// coordinates must lie within n.
func (s *Store) UnsetBit(n *Node, x, y int) *Node { return s.withBit(n, x, y, false) }

// Rebuilds the path from n to the cell, sharing the three untouched children
// at every level.
func (s *Store) withBit(n *Node, x, y int, alive bool) *Node {
	if n.level == 0 {
		return s.Leaf(alive)
	}
	if n.population == 0 && !alive {
		return n
	}
	offset := quarter(n.level)
	switch {
	case x < 0 && y < 0:
		return s.Internal(s.withBit(n.nw, x+offset, y+offset, alive), n.ne, n.sw, n.se)
	case x >= 0 && y < 0:
		return s.Internal(n.nw, s.withBit(n.ne, x-offset, y+offset, alive), n.sw, n.se)
	case x < 0:
		return s.Internal(n.nw, n.ne, s.withBit(n.sw, x+offset, y-offset, alive), n.se)
	default:
		return s.Internal(n.nw, n.ne, n.sw, s.withBit(n.se, x-offset, y-offset, alive))
	}
}

// Expand returns a node one level higher than n with the content of n in its
// center, surrounded by dead cells. Coordinates relative to the center are
// preserved. The level of n must be at least 1.
func (s *Store) Expand(n *Node) *Node {
	border := s.Empty(n.level - 1)
	return s.Internal(
		s.Internal(border, border, border, n.nw),
		s.Internal(border, border, n.ne, border),
		s.Internal(border, n.sw, border, border),
		s.Internal(n.se, border, border, border))
}

// RotateClockwise returns n turned a quarter turn clockwise about its center.
// The cell at (x, y) moves to (-1-y, x).
func (s *Store) RotateClockwise(n *Node) *Node {
	return s.rotate(n, true, make(map[*Node]*Node))
}

// RotateAntiClockwise returns n turned a quarter turn anticlockwise about its
// center. The cell at (x, y) moves to (y, -1-x).
func (s *Store) RotateAntiClockwise(n *Node) *Node {
	return s.rotate(n, false, make(map[*Node]*Node))
}

func (s *Store) rotate(n *Node, clockwise bool, done map[*Node]*Node) *Node {
	// Leaves and empty nodes look the same in every orientation.
	if n.population == 0 || n.level == 0 {
		return n
	}
	if r, ok := done[n]; ok {
		return r
	}
	var r *Node
	if clockwise {
		r = s.Internal(
			s.rotate(n.sw, true, done), s.rotate(n.nw, true, done),
			s.rotate(n.se, true, done), s.rotate(n.ne, true, done))
	} else {
		r = s.Internal(
			s.rotate(n.ne, false, done), s.rotate(n.se, false, done),
			s.rotate(n.nw, false, done), s.rotate(n.sw, false, done))
	}
	done[n] = r
	return r
}
