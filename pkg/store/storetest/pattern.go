// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/245790/gemini/pkg/store/storedefs"
)

// TestPattern tests the pattern library functionality of a Store.
func TestPattern(t *testing.T, store storedefs.Store) {
	t.Helper()

	names, err := store.PatternNames()
	if err != nil || len(names) != 0 {
		t.Errorf("PatternNames() of a new store -> (%v, %v), want no names", names, err)
	}

	_, err = store.Pattern("glider")
	if !errors.Is(err, storedefs.ErrNoPattern) {
		t.Errorf("Pattern(glider) -> error %v, want %v", err, storedefs.ErrNoPattern)
	}

	patterns := map[string]string{
		"glider":  "bo$2bo$3o!",
		"blinker": "3o!",
		"block":   "2o$2o!",
	}
	for name, rle := range patterns {
		if err := store.SavePattern(name, rle); err != nil {
			t.Errorf("SavePattern(%q) -> %v", name, err)
		}
	}
	for name, wantRLE := range patterns {
		rle, err := store.Pattern(name)
		if rle != wantRLE || err != nil {
			t.Errorf("Pattern(%q) -> (%q, %v), want (%q, nil)", name, rle, err, wantRLE)
		}
	}

	names, err = store.PatternNames()
	if diff := cmp.Diff([]string{"blinker", "block", "glider"}, names); diff != "" || err != nil {
		t.Errorf("PatternNames() -> error %v, diff (-want +got):\n%s", err, diff)
	}

	// Saving again replaces.
	store.SavePattern("glider", "3o$2bo$bo!")
	if rle, _ := store.Pattern("glider"); rle != "3o$2bo$bo!" {
		t.Errorf("Pattern(glider) after replacing -> %q", rle)
	}

	if err := store.DelPattern("block"); err != nil {
		t.Errorf("DelPattern(block) -> %v", err)
	}
	if _, err := store.Pattern("block"); !errors.Is(err, storedefs.ErrNoPattern) {
		t.Errorf("Pattern(block) after deleting -> error %v, want %v", err, storedefs.ErrNoPattern)
	}
	if err := store.DelPattern("block"); err != nil {
		t.Errorf("DelPattern of a deleted pattern -> %v", err)
	}
	names, _ = store.PatternNames()
	if diff := cmp.Diff([]string{"blinker", "glider"}, names); diff != "" {
		t.Errorf("PatternNames() after deleting (-want +got):\n%s", diff)
	}
}
