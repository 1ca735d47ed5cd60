// Package storage provides an embedded, persistent key-value cache for the
// engine's external collaborators. Tablebase probing uses it so that repeated
// process invocations don't repeat expensive network probes; the opening
// book does not use it.
package storage

import (
	"github.com/dgraph-io/badger/v4"
)

// Store wraps an embedded BadgerDB database as a namespaced byte-oriented
// cache. Keys are namespaced by prefixing with "<namespace>/" so unrelated
// collaborators (tablebase, book) can share one on-disk database without
// key collisions.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) the store rooted at the platform cache
// directory returned by GetDatabaseDir.
func Open() (*Store, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dbDir)
}

// OpenAt opens the store at an explicit directory, useful for tests.
func OpenAt(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get fetches a value by namespace and key. Returns ok=false (no error) on
// a cache miss so callers can fall through to the collaborator they're
// caching in front of.
func (s *Store) Get(namespace, key string) (value []byte, ok bool, err error) {
	if s == nil || s.db == nil {
		return nil, false, nil
	}

	fullKey := []byte(namespace + "/" + key)
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(fullKey)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		ok = true
		return item.Value(func(val []byte) error {
			value = append([]byte(nil), val...)
			return nil
		})
	})
	return value, ok, err
}

// Set stores a value under a namespaced key.
func (s *Store) Set(namespace, key string, value []byte) error {
	if s == nil || s.db == nil {
		return nil
	}
	fullKey := []byte(namespace + "/" + key)
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(fullKey, value)
	})
}

// DropNamespace deletes every key under a namespace prefix.
func (s *Store) DropNamespace(namespace string) error {
	if s == nil || s.db == nil {
		return nil
	}
	prefix := []byte(namespace + "/")
	return s.db.Update(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		for _, k := range keys {
			if err := txn.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}
