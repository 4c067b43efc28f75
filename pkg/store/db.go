// Package store keeps the history of command lines in a bbolt database.
package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"
	"src.rsed.sh/pkg/logutil"
	"src.rsed.sh/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

const bucketCmd = "cmd"

// How long to wait for another rsed process to release the database.
const openTimeout = time.Second

// DBStore is the permanent storage backend for rsed. It is not thread-safe.
// In particular, the store may be closed while another goroutine is still
// accessing it.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a new Store from the given file.
func NewStore(dbname string) (DBStore, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewReadOnlyStore opens an existing database without modifying it. It
// waits for writers to close the database, up to the same timeout as
// NewStore. A missing file is reported with an error satisfying
// errors.Is(err, fs.ErrNotExist), and is not created.
func NewReadOnlyStore(dbname string) (DBStore, error) {
	// bolt.Open would create the file even in read-only mode.
	if _, err := os.Stat(dbname); err != nil {
		return nil, err
	}
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: openTimeout, ReadOnly: true})
	if err != nil {
		return nil, err
	}
	err = db.View(func(tx *bolt.Tx) error {
		if tx.Bucket([]byte(bucketCmd)) == nil {
			return errNotHistoryDB
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", dbname, err)
	}
	return &dbStore{db}, nil
}

var errNotHistoryDB = errors.New("not a command history database")

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketCmd))
		if err != nil {
			return fmt.Errorf("initialize command history table: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &dbStore{db}, nil
}

// Close closes the store.
func (s *dbStore) Close() error {
	return s.db.Close()
}
