package store

import (
	"encoding/binary"
	"encoding/json"

	bolt "go.etcd.io/bbolt"

	. "github.com/245790/gemini/pkg/store/storedefs"
)

func init() {
	initDB["initialize snapshot table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSnapshot))
		return err
	}
}

// AddSnapshot adds a snapshot, ignoring its Seq field, and returns the sequence
// number assigned to it.
func (s *dbStore) AddSnapshot(snap Snapshot) (int, error) {
	var (
		seq uint64
		err error
	)
	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSnapshot))
		seq, err = b.NextSequence()
		if err != nil {
			return err
		}
		snap.Seq = int(seq)
		data, err := json.Marshal(snap)
		if err != nil {
			return err
		}
		return b.Put(marshalSeq(seq), data)
	})
	return int(seq), err
}

// Snapshot returns the snapshot with the given sequence number.
func (s *dbStore) Snapshot(seq int) (Snapshot, error) {
	var snap Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSnapshot))
		v := b.Get(marshalSeq(uint64(seq)))
		if v == nil {
			return ErrNoSnapshot
		}
		return json.Unmarshal(v, &snap)
	})
	return snap, err
}

// Snapshots returns all snapshots whose sequence numbers lie in [from, upto).
func (s *dbStore) Snapshots(from, upto int) ([]Snapshot, error) {
	var snaps []Snapshot
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketSnapshot))
		c := b.Cursor()
		for k, v := c.Seek(marshalSeq(uint64(max(from, 0)))); k != nil && unmarshalSeq(k) < uint64(upto); k, v = c.Next() {
			var snap Snapshot
			if err := json.Unmarshal(v, &snap); err != nil {
				return err
			}
			snaps = append(snaps, snap)
		}
		return nil
	})
	return snaps, err
}

func marshalSeq(seq uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, seq)
	return b
}

func unmarshalSeq(key []byte) uint64 {
	return binary.BigEndian.Uint64(key)
}
