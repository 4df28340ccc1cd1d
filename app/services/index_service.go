package services

import (
	"encoding/json"
	"errors"
	"strings"

	"instakilo/app/apperrors"
	"instakilo/app/models"
	"instakilo/app/storage"
)

// ReverseIndexService maintains one reverse index collection: a mapping from
// an index key (hashtag text or place id) to the posts carrying it. The
// hashtag and location indexes are two instances of the same structure.
type ReverseIndexService struct {
	store      storage.Store
	collection string
}

func NewHashTagIndex(store storage.Store) *ReverseIndexService {
	return &ReverseIndexService{store: store, collection: storage.HashTags}
}

func NewLocationIndex(store storage.Store) *ReverseIndexService {
	return &ReverseIndexService{store: store, collection: storage.Locations}
}

// Attach adds a post reference under key, creating the entry on first use.
// place is recorded only when the entry is created; pass nil for hashtags.
// The append does not deduplicate: attaching the same pair twice produces a
// duplicate member, and the diff step in the coordinator is the only guard.
func (s *ReverseIndexService) Attach(key string, post models.PostBrief, place *models.PlaceMeta) error {
	var entry models.IndexEntry
	err := s.store.Get(s.collection, key, &entry)
	if errors.Is(err, storage.ErrNotFound) {
		entry = models.IndexEntry{
			Key:   key,
			Posts: []models.PostBrief{post},
			Place: place,
		}
		if err := s.store.Put(s.collection, key, &entry); err != nil {
			return apperrors.Unknown("Unable to update index")
		}
		return nil
	}
	if err != nil {
		return apperrors.Unknown("Unable to read index")
	}

	err = s.store.Update(s.collection, key, nil, func(current []byte) ([]byte, error) {
		var e models.IndexEntry
		if err := json.Unmarshal(current, &e); err != nil {
			return nil, err
		}
		e.Posts = append(e.Posts, post)
		return json.Marshal(&e)
	})
	if err != nil {
		return apperrors.Unknown("Unable to update index")
	}
	return nil
}

// Detach removes every reference to postID under key. A missing entry or a
// missing reference is a no-op; an entry whose member list would become
// empty is deleted outright so no empty shells remain.
func (s *ReverseIndexService) Detach(key, postID string) error {
	var entry models.IndexEntry
	err := s.store.Get(s.collection, key, &entry)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return apperrors.Unknown("Unable to read index")
	}

	remaining := entry.Posts[:0:0]
	for _, p := range entry.Posts {
		if p.ID != postID {
			remaining = append(remaining, p)
		}
	}
	if len(remaining) == len(entry.Posts) {
		return nil
	}

	if len(remaining) == 0 {
		err = s.store.Delete(s.collection, key, nil)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return apperrors.Unknown("Unable to compact index")
		}
		return nil
	}

	err = s.store.Update(s.collection, key, nil, func(current []byte) ([]byte, error) {
		var e models.IndexEntry
		if err := json.Unmarshal(current, &e); err != nil {
			return nil, err
		}
		e.Posts = remaining
		return json.Marshal(&e)
	})
	if err != nil {
		return apperrors.Unknown("Unable to update index")
	}
	return nil
}

// Search returns the keys containing fragment as a case-sensitive substring,
// reduced to a typeahead projection. This walks the whole collection; it is
// acceptable only at the data volumes this design targets.
func (s *ReverseIndexService) Search(fragment string) ([]models.IndexSuggestion, error) {
	items, _, err := s.store.Scan(s.collection, func(key string, doc []byte) bool {
		return strings.Contains(key, fragment)
	}, 0, "")
	if err != nil {
		return nil, apperrors.Unknown("Unable to search index")
	}

	suggestions := make([]models.IndexSuggestion, 0, len(items))
	for _, doc := range items {
		var e models.IndexEntry
		if err := json.Unmarshal(doc, &e); err != nil {
			return nil, apperrors.Unknown("Unable to search index")
		}
		suggestions = append(suggestions, models.IndexSuggestion{
			Key:       e.Key,
			PostCount: len(e.Posts),
			Place:     e.Place,
		})
	}
	return suggestions, nil
}

// Entry returns the full index entry for key, for the posts-by-key read
// paths.
func (s *ReverseIndexService) Entry(key string) (*models.IndexEntry, error) {
	var entry models.IndexEntry
	err := s.store.Get(s.collection, key, &entry)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.PostNotFound("No posts found for this key")
	}
	if err != nil {
		return nil, apperrors.Unknown("Unable to read index")
	}
	return &entry, nil
}
