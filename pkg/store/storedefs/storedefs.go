// Package storedefs contains definitions of the store API.
//
// It is a separate package so that packages that only depend on the store API
// does not need to depend on the concrete implementation.
package storedefs

import "errors"

// ErrNoPattern is returned by Store.Pattern when there is no pattern with the
// given name.
var ErrNoPattern = errors.New("no such pattern")

// ErrNoSnapshot is returned by Store.Snapshot when there is no snapshot with
// the given sequence number.
var ErrNoSnapshot = errors.New("no such snapshot")

// Store is an interface satisfied by the storage service.
type Store interface {
	SavePattern(name, rle string) error
	Pattern(name string) (string, error)
	DelPattern(name string) error
	PatternNames() ([]string, error)

	AddSnapshot(s Snapshot) (int, error)
	Snapshot(seq int) (Snapshot, error)
	Snapshots(from, upto int) ([]Snapshot, error)
}

// Snapshot is a saved state of a universe. Seq is assigned by AddSnapshot. X
// and Y are the coordinates of the top-left corner of the pattern in RLE.
type Snapshot struct {
	Seq        int    `json:"seq"`
	Name       string `json:"name"`
	Generation int64  `json:"generation"`
	Population int64  `json:"population"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	RLE        string `json:"rle"`
}
