package store

import (
	bolt "go.etcd.io/bbolt"

	. "github.com/245790/gemini/pkg/store/storedefs"
)

func init() {
	initDB["initialize pattern table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketPattern))
		return err
	}
}

// SavePattern saves a pattern in the RLE format under the given name,
// replacing any pattern of the same name.
func (s *dbStore) SavePattern(name, rle string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPattern))
		return b.Put([]byte(name), []byte(rle))
	})
}

// Pattern returns the pattern saved under the given name.
func (s *dbStore) Pattern(name string) (string, error) {
	var rle string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPattern))
		v := b.Get([]byte(name))
		if v == nil {
			return ErrNoPattern
		}
		rle = string(v)
		return nil
	})
	return rle, err
}

// DelPattern deletes a pattern. Deleting a pattern that does not exist is not
// an error.
func (s *dbStore) DelPattern(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPattern))
		return b.Delete([]byte(name))
	})
}

// PatternNames returns the names of all saved patterns, sorted.
func (s *dbStore) PatternNames() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketPattern))
		// Bolt keeps keys in byte order.
		return b.ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}
