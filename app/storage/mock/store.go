package mock

import (
	"encoding/json"
	"sort"
	"sync"

	"instakilo/app/storage"
)

// Store is an in-memory storage.Store for tests that do not need a real
// Badger directory. Behavior mirrors BadgerStore, including conditional
// write semantics and cursor paging.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

func NewStore() *Store {
	return &Store{collections: make(map[string]map[string][]byte)}
}

func (s *Store) Get(collection, key string, out any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.collections[collection][key]
	if !ok {
		return storage.ErrNotFound
	}
	return json.Unmarshal(doc, out)
}

func (s *Store) Put(collection, key string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.collections[collection]
	if !ok {
		col = make(map[string][]byte)
		s.collections[collection] = col
	}
	col[key] = data
	return nil
}

func (s *Store) Update(collection, key string, cond storage.Condition, apply storage.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collections[collection]
	current, ok := col[key]
	if !ok {
		return storage.ErrNotFound
	}
	if cond != nil && !cond(current) {
		return storage.ErrConditionFailed
	}
	next, err := apply(current)
	if err != nil {
		return err
	}
	col[key] = next
	return nil
}

func (s *Store) Delete(collection, key string, cond storage.Condition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	col := s.collections[collection]
	current, ok := col[key]
	if !ok {
		return storage.ErrNotFound
	}
	if cond != nil && !cond(current) {
		return storage.ErrConditionFailed
	}
	delete(col, key)
	return nil
}

func (s *Store) Scan(collection string, filter storage.Filter, limit int, startAfter string) ([][]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col := s.collections[collection]

	keys := make([]string, 0, len(col))
	for k := range col {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var items [][]byte
	var next, lastKey string
	for _, key := range keys {
		if startAfter != "" && key <= startAfter {
			continue
		}
		if limit > 0 && len(items) == limit {
			next = lastKey
			break
		}
		doc := col[key]
		if filter != nil && !filter(key, doc) {
			continue
		}
		items = append(items, doc)
		lastKey = key
	}
	return items, next, nil
}

func (s *Store) Close() error {
	return nil
}
