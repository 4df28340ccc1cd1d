package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore implements Store on a BadgerDB instance. Documents are JSON
// values under "collection:key" keys; conditional writes run their predicate
// and the write inside one Badger transaction, which gives the per-document
// compare-and-swap the services rely on.
type BadgerStore struct {
	db       *badger.DB
	dbPath   string
	isTestDB bool
}

// NewBadgerStore opens (or creates) a store at path. An empty path creates a
// unique temporary directory, used for test isolation, which is removed again
// on Close.
func NewBadgerStore(path string) (*BadgerStore, error) {
	isTest := false
	if path == "" {
		tempPath, err := os.MkdirTemp("", "instakilo_test_db_")
		if err != nil {
			return nil, fmt.Errorf("error creating temp dir: %v", err)
		}
		path = tempPath
		isTest = true
	}
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumVersionsToKeep(1).
		WithNumGoroutines(1)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	if isTest {
		if err := db.DropAll(); err != nil {
			return nil, fmt.Errorf("failed to drop all keys: %v", err)
		}
	}
	return &BadgerStore{
		db:       db,
		dbPath:   path,
		isTestDB: isTest,
	}, nil
}

func (s *BadgerStore) Close() error {
	if err := s.db.Close(); err != nil {
		return err
	}
	if s.isTestDB {
		if err := os.RemoveAll(s.dbPath); err != nil {
			return fmt.Errorf("failed to cleanup test database: %v", err)
		}
	}
	return nil
}

func docKey(collection, key string) []byte {
	return []byte(collection + ":" + key)
}

func (s *BadgerStore) Get(collection, key string, out any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(docKey(collection, key))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
}

func (s *BadgerStore) Put(collection, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %v", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(docKey(collection, key), data)
	})
}

func (s *BadgerStore) Update(collection, key string, cond Condition, apply Patch) error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(docKey(collection, key))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		var current []byte
		if err := item.Value(func(val []byte) error {
			current = append([]byte(nil), val...)
			return nil
		}); err != nil {
			return err
		}
		if cond != nil && !cond(current) {
			return ErrConditionFailed
		}
		next, err := apply(current)
		if err != nil {
			return err
		}
		return txn.Set(docKey(collection, key), next)
	})
}

func (s *BadgerStore) Delete(collection, key string, cond Condition) error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(docKey(collection, key))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if cond != nil {
			var current []byte
			if err := item.Value(func(val []byte) error {
				current = append([]byte(nil), val...)
				return nil
			}); err != nil {
				return err
			}
			if !cond(current) {
				return ErrConditionFailed
			}
		}
		return txn.Delete(docKey(collection, key))
	})
}

func (s *BadgerStore) Scan(collection string, filter Filter, limit int, startAfter string) ([][]byte, string, error) {
	var items [][]byte
	var next string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(collection + ":")
		var lastKey string
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := string(item.Key()[len(prefix):])
			if startAfter != "" && key <= startAfter {
				continue
			}
			if limit > 0 && len(items) == limit {
				// Stopped by the limit with documents left to walk:
				// hand back a resume cursor.
				next = lastKey
				return nil
			}
			var doc []byte
			if err := item.Value(func(val []byte) error {
				doc = append([]byte(nil), val...)
				return nil
			}); err != nil {
				return err
			}
			if filter != nil && !filter(key, doc) {
				continue
			}
			items = append(items, doc)
			lastKey = key
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return items, next, nil
}
