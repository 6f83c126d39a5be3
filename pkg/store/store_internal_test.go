package store

import (
	"errors"
	"path/filepath"
	"testing"

	bolt "go.etcd.io/bbolt"

	"github.com/245790/gemini/pkg/testutil"
)

var errBucket = errors.New("bucket setup failed")

func TestNewStore_ClosesDBWhenSetupFails(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), "db")
	const name = "set up a failing bucket"
	initDB[name] = func(*bolt.Tx) error { return errBucket }
	t.Cleanup(func() { delete(initDB, name) })

	st, err := NewStore(path)
	if err == nil {
		t.Fatalf("NewStore with a failing bucket setup succeeded")
	}
	if st != nil {
		t.Errorf("NewStore returned a store along with error %v", err)
	}

	// The failed store must have released the file lock.
	delete(initDB, name)
	st, err = NewStore(path)
	if err != nil {
		t.Fatalf("NewStore after a failed setup -> %v", err)
	}
	st.Close()
}
