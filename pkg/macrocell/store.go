package macrocell

import (
	"fmt"

	"github.com/245790/gemini/pkg/hash"
)

const initialSlots = 1 << 10

// Store creates nodes and owns the tables that make them canonical and cache
// their futures. All nodes passed to the methods of a Store must have been
// created by the same Store.
//
// A Store is not safe for concurrent use. The nodes it returns are; they never
// change after creation.
type Store struct {
	dead, live *Node

	// Open-addressing table of canonical internal nodes, indexed by the mixed
	// structural hash. len(slots) is a power of two and at least twice count.
	slots []*Node
	count int

	empty []*Node

	next map[*Node]*Node
	jump map[*Node]*Node
}

// NewStore creates an empty Store.
func NewStore() *Store {
	s := &Store{
		dead:  &Node{hash: hash.Leaf(false)},
		live:  &Node{population: 1, hash: hash.Leaf(true)},
		slots: make([]*Node, initialSlots),
	}
	s.empty = []*Node{s.dead}
	s.ResetMemo()
	return s
}

// Leaf returns the canonical single cell with the given state.
func (s *Store) Leaf(alive bool) *Node {
	if alive {
		return s.live
	}
	return s.dead
}

// Internal returns the canonical node with the given children. The children
// must all have the same level; Internal panics otherwise.
func (s *Store) Internal(nw, ne, sw, se *Node) *Node {
	level := nw.level
	if ne.level != level || sw.level != level || se.level != level {
		panic(fmt.Sprintf("macrocell: children of mismatched levels %d, %d, %d, %d",
			nw.level, ne.level, sw.level, se.level))
	}
	h := hash.Quad(nw.hash, ne.hash, sw.hash, se.hash)
	mask := len(s.slots) - 1
	i := int(hash.Mix(h)) & mask
	for ; s.slots[i] != nil; i = (i + 1) & mask {
		n := s.slots[i]
		if n.hash == h && n.nw == nw && n.ne == ne && n.sw == sw && n.se == se {
			return n
		}
	}
	n := &Node{
		nw: nw, ne: ne, sw: sw, se: se,
		level:      level + 1,
		population: nw.population + ne.population + sw.population + se.population,
		hash:       h,
	}
	if 2*(s.count+1) > len(s.slots) {
		s.rehash(2 * len(s.slots))
		s.insert(n)
	} else {
		s.slots[i] = n
	}
	s.count++
	return n
}

// Inserts a node known to be absent from the table, which must have a free
// slot.
func (s *Store) insert(n *Node) {
	mask := len(s.slots) - 1
	i := int(hash.Mix(n.hash)) & mask
	for s.slots[i] != nil {
		i = (i + 1) & mask
	}
	s.slots[i] = n
}

func (s *Store) rehash(size int) {
	old := s.slots
	s.slots = make([]*Node, size)
	for _, n := range old {
		if n != nil {
			s.insert(n)
		}
	}
}

// Empty returns the canonical all-dead node of the given level.
func (s *Store) Empty(level int) *Node {
	for len(s.empty) <= level {
		e := s.empty[len(s.empty)-1]
		s.empty = append(s.empty, s.Internal(e, e, e, e))
	}
	return s.empty[level]
}

// Len returns the number of canonical internal nodes in the store.
func (s *Store) Len() int { return s.count }

// MemoLen returns the number of memoized generation results.
func (s *Store) MemoLen() int { return len(s.next) + len(s.jump) }

// ResetMemo drops all memoized generation results. Nodes stay canonical.
func (s *Store) ResetMemo() {
	s.next = make(map[*Node]*Node)
	s.jump = make(map[*Node]*Node)
}

// Compact drops the memoized generation results and every canonical node that
// is not reachable from one of the given roots, so that the garbage collector
// can reclaim them.
//
// Nodes that are not reachable from the roots remain valid values, but are no
// longer canonical: a later call to Internal with the same children yields a
// different pointer. Callers must pass every root they keep using.
func (s *Store) Compact(roots ...*Node) {
	s.ResetMemo()
	seen := make(map[*Node]struct{})
	var mark func(n *Node)
	mark = func(n *Node) {
		if n.level == 0 {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		mark(n.nw)
		mark(n.ne)
		mark(n.sw)
		mark(n.se)
	}
	for _, r := range roots {
		mark(r)
	}
	for _, e := range s.empty {
		mark(e)
	}
	size := initialSlots
	for size < 2*len(seen) {
		size *= 2
	}
	s.slots = make([]*Node, size)
	for n := range seen {
		s.insert(n)
	}
	s.count = len(seen)
}
