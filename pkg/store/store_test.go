package store_test

import (
	"path/filepath"
	"testing"

	"github.com/245790/gemini/pkg/store"
	"github.com/245790/gemini/pkg/store/storetest"
	"github.com/245790/gemini/pkg/testutil"
)

func TestPattern(t *testing.T) {
	storetest.TestPattern(t, store.MustTempStore(t))
}

func TestSnapshot(t *testing.T) {
	storetest.TestSnapshot(t, store.MustTempStore(t))
}

func TestNewStore_Persists(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), "sub", "db")
	st, err := store.NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	st.SavePattern("blinker", "3o!")
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	st, err = store.NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	if rle, err := st.Pattern("blinker"); rle != "3o!" || err != nil {
		t.Errorf("Pattern after reopening -> (%q, %v)", rle, err)
	}
}

func TestNewStore_Locked(t *testing.T) {
	path := filepath.Join(testutil.TempDir(t), "db")
	st, err := store.NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	if _, err := store.NewStore(path); err == nil {
		t.Errorf("opening a database held by another store succeeded")
	}
}
