package store

import (
	"path/filepath"

	"github.com/245790/gemini/pkg/testutil"
)

// MustTempStore returns a Store backed by a temporary file. The Store is closed
// and the file removed when the test finishes. It panics if the Store cannot
// be created.
func MustTempStore(c testutil.Cleanuper) DBStore {
	dir := testutil.TempDir(c)
	st, err := NewStore(filepath.Join(dir, "db"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { st.Close() })
	return st
}
