package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore("")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutGetRoundTrip(t *testing.T) {
	store := newStore(t)

	in := testDoc{ID: "d1", Name: "first", Count: 3}
	assert.NoError(t, store.Put("things", "d1", &in))

	var out testDoc
	assert.NoError(t, store.Get("things", "d1", &out))
	assert.Equal(t, in, out)
}

func TestGetMissing(t *testing.T) {
	store := newStore(t)

	var out testDoc
	err := store.Get("things", "nope", &out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutOverwrites(t *testing.T) {
	store := newStore(t)

	assert.NoError(t, store.Put("things", "d1", &testDoc{ID: "d1", Name: "old"}))
	assert.NoError(t, store.Put("things", "d1", &testDoc{ID: "d1", Name: "new"}))

	var out testDoc
	assert.NoError(t, store.Get("things", "d1", &out))
	assert.Equal(t, "new", out.Name)
}

func TestCollectionsAreIsolated(t *testing.T) {
	store := newStore(t)

	assert.NoError(t, store.Put("a", "k", &testDoc{ID: "k", Name: "in-a"}))

	var out testDoc
	err := store.Get("b", "k", &out)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateAppliesPatch(t *testing.T) {
	store := newStore(t)
	assert.NoError(t, store.Put("things", "d1", &testDoc{ID: "d1", Count: 1}))

	err := store.Update("things", "d1", nil, func(current []byte) ([]byte, error) {
		var d testDoc
		if err := json.Unmarshal(current, &d); err != nil {
			return nil, err
		}
		d.Count++
		return json.Marshal(&d)
	})
	assert.NoError(t, err)

	var out testDoc
	assert.NoError(t, store.Get("things", "d1", &out))
	assert.Equal(t, 2, out.Count)
}

func TestUpdateMissingDocument(t *testing.T) {
	store := newStore(t)

	err := store.Update("things", "nope", nil, func(current []byte) ([]byte, error) {
		return current, nil
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConditionalUpdateRejectedLeavesDocumentUntouched(t *testing.T) {
	store := newStore(t)
	assert.NoError(t, store.Put("things", "d1", &testDoc{ID: "d1", Name: "keep", Count: 1}))

	err := store.Update("things", "d1",
		func(current []byte) bool { return false },
		func(current []byte) ([]byte, error) {
			return json.Marshal(&testDoc{ID: "d1", Name: "clobbered"})
		})
	assert.ErrorIs(t, err, ErrConditionFailed)

	var out testDoc
	assert.NoError(t, store.Get("things", "d1", &out))
	assert.Equal(t, "keep", out.Name)
	assert.Equal(t, 1, out.Count)
}

func TestConditionalDelete(t *testing.T) {
	store := newStore(t)
	assert.NoError(t, store.Put("things", "d1", &testDoc{ID: "d1", Name: "mine"}))

	err := store.Delete("things", "d1", func(current []byte) bool {
		var d testDoc
		if err := json.Unmarshal(current, &d); err != nil {
			return false
		}
		return d.Name == "other"
	})
	assert.ErrorIs(t, err, ErrConditionFailed)

	err = store.Delete("things", "d1", func(current []byte) bool {
		var d testDoc
		if err := json.Unmarshal(current, &d); err != nil {
			return false
		}
		return d.Name == "mine"
	})
	assert.NoError(t, err)

	var out testDoc
	assert.ErrorIs(t, store.Get("things", "d1", &out), ErrNotFound)
}

func TestDeleteMissingDocument(t *testing.T) {
	store := newStore(t)
	assert.ErrorIs(t, store.Delete("things", "nope", nil), ErrNotFound)
}

func TestScanWithFilter(t *testing.T) {
	store := newStore(t)
	for _, name := range []string{"alpha", "beta", "gamma"} {
		assert.NoError(t, store.Put("things", name, &testDoc{ID: name, Name: name}))
	}

	items, next, err := store.Scan("things", func(key string, doc []byte) bool {
		return key != "beta"
	}, 0, "")
	assert.NoError(t, err)
	assert.Empty(t, next)
	assert.Len(t, items, 2)
}

func TestScanPagination(t *testing.T) {
	store := newStore(t)
	keys := []string{"a", "b", "c", "d", "e"}
	for _, k := range keys {
		assert.NoError(t, store.Put("things", k, &testDoc{ID: k}))
	}

	items, next, err := store.Scan("things", nil, 2, "")
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "b", next)

	items, next, err = store.Scan("things", nil, 2, next)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "d", next)

	items, next, err = store.Scan("things", nil, 2, next)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Empty(t, next)
}

func TestScanEmptyCollection(t *testing.T) {
	store := newStore(t)

	items, next, err := store.Scan("nothing", nil, 10, "")
	assert.NoError(t, err)
	assert.Empty(t, items)
	assert.Empty(t, next)
}
