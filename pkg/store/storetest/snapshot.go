package storetest

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/245790/gemini/pkg/store/storedefs"
)

var snapshots = []storedefs.Snapshot{
	{Name: "glider", Generation: 0, Population: 5, RLE: "bo$2bo$3o!"},
	{Name: "glider", Generation: 4, Population: 5, X: 1, Y: -2, RLE: "bo$2bo$3o!"},
	{Name: "", Generation: 1, Population: 3, RLE: "o$o$o!"},
}

// TestSnapshot tests the snapshot functionality of a Store.
func TestSnapshot(t *testing.T, store storedefs.Store) {
	t.Helper()

	_, err := store.Snapshot(1)
	if !errors.Is(err, storedefs.ErrNoSnapshot) {
		t.Errorf("Snapshot(1) of a new store -> error %v, want %v", err, storedefs.ErrNoSnapshot)
	}

	var want []storedefs.Snapshot
	for i, snap := range snapshots {
		// Seq of the argument is ignored.
		snap.Seq = 100
		seq, err := store.AddSnapshot(snap)
		if seq != i+1 || err != nil {
			t.Errorf("AddSnapshot -> (%d, %v), want (%d, nil)", seq, err, i+1)
		}
		snap.Seq = seq
		want = append(want, snap)
	}

	for _, w := range want {
		snap, err := store.Snapshot(w.Seq)
		if diff := cmp.Diff(w, snap); diff != "" || err != nil {
			t.Errorf("Snapshot(%d) -> error %v, diff (-want +got):\n%s", w.Seq, err, diff)
		}
	}

	all, err := store.Snapshots(0, 10)
	if diff := cmp.Diff(want, all); diff != "" || err != nil {
		t.Errorf("Snapshots(0, 10) -> error %v, diff (-want +got):\n%s", err, diff)
	}
	some, _ := store.Snapshots(2, 3)
	if diff := cmp.Diff(want[1:2], some); diff != "" {
		t.Errorf("Snapshots(2, 3) (-want +got):\n%s", diff)
	}
	if none, _ := store.Snapshots(4, 10); len(none) != 0 {
		t.Errorf("Snapshots(4, 10) -> %v, want none", none)
	}
}
