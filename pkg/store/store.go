// Package store implements a storage service for patterns and snapshots of
// universes, backed by a bbolt database.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/245790/gemini/pkg/errutil"
	"github.com/245790/gemini/pkg/logutil"
	"github.com/245790/gemini/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

// Names of the buckets.
const (
	bucketPattern  = "pattern"
	bucketSnapshot = "snapshot"
)

// DBStore is the permanent storage backend for patterns and snapshots.
type DBStore interface {
	storedefs.Store
	Close() error
}

var initDB = map[string](func(*bolt.Tx) error){}

type dbStore struct {
	db *bolt.DB
}

// NewStore opens the database at the given path, creating it and its parent
// directory if needed, and initializes the buckets.
func NewStore(path string) (DBStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	st, err := NewStoreFromDB(db)
	if err != nil {
		return nil, errutil.Multi(err, db.Close())
	}
	return st, nil
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	st := &dbStore{db: db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			err := fn(tx)
			if err != nil {
				return fmt.Errorf("failed to %s: %v", name, err)
			}
		}
		return nil
	})
	return st, err
}

// Close closes the underlying database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
