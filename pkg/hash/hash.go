// Package hash contains the hash functions used to canonicalize quadtree
// nodes.
package hash

// Weights of the four quadrants in Quad. They are fixed: memoized results are
// only reusable between stores that agree on them.
const (
	WeightNW uint32 = 1
	WeightNE uint32 = 11
	WeightSW uint32 = 101
	WeightSE uint32 = 1007
)

// Leaf returns the structural hash of a single cell.
func Leaf(alive bool) uint32 {
	if alive {
		return 1
	}
	return 0
}

// Quad combines the structural hashes of four quadrants, in the order
// northwest, northeast, southwest, southeast. Arithmetic wraps around.
func Quad(nw, ne, sw, se uint32) uint32 {
	return WeightNW*nw + WeightNE*ne + WeightSW*sw + WeightSE*se
}

// Mix scrambles the bits of h so that it can be used to index a table whose
// size is a power of two. Structural hashes of small nodes cluster in the low
// values; Mix spreads them out.
func Mix(h uint32) uint32 {
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}
