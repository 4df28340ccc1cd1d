package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"instakilo/app/apperrors"
	"instakilo/app/models"
	"instakilo/app/storage"
	"instakilo/app/storage/mock"
)

func seedPost(t *testing.T, store storage.Store, id string, owner models.UserBrief) *models.Post {
	t.Helper()
	post := &models.Post{
		ID:        id,
		ImgURL:    "https://img/" + id + ".jpg",
		CreatedBy: owner,
		Comments:  []models.Comment{},
	}
	assert.NoError(t, store.Put(storage.Posts, id, post))
	return post
}

func TestAppendCommentIncrementsCounter(t *testing.T) {
	store := mock.NewStore()
	comments := NewCommentService(store)
	owner := models.UserBrief{ID: "u1", Username: "alice"}
	seedPost(t, store, "p1", owner)

	author := models.UserBrief{ID: "u2", Username: "bob"}
	comment, err := comments.Append("p1", "nice shot", author)
	assert.NoError(t, err)
	assert.NotEmpty(t, comment.ID)

	var post models.Post
	assert.NoError(t, store.Get(storage.Posts, "p1", &post))
	assert.Len(t, post.Comments, 1)
	assert.Equal(t, 1, post.CommentCount)
	assert.Equal(t, "nice shot", post.Comments[0].Text)
	assert.Equal(t, author, post.Comments[0].User)
}

func TestAppendCommentMissingPost(t *testing.T) {
	store := mock.NewStore()
	comments := NewCommentService(store)

	_, err := comments.Append("nope", "hello", models.UserBrief{ID: "u1"})
	assert.Equal(t, apperrors.CodePostNotFound, apperrors.CodeOf(err))
}

func TestAppendCommentEmptyText(t *testing.T) {
	store := mock.NewStore()
	comments := NewCommentService(store)
	seedPost(t, store, "p1", models.UserBrief{ID: "u1"})

	_, err := comments.Append("p1", "", models.UserBrief{ID: "u2"})
	assert.Equal(t, apperrors.CodeValidation, apperrors.CodeOf(err))
}

func TestRemoveCommentByPostOwner(t *testing.T) {
	store := mock.NewStore()
	comments := NewCommentService(store)
	owner := models.UserBrief{ID: "u1", Username: "alice"}
	seedPost(t, store, "p1", owner)

	c, err := comments.Append("p1", "by bob", models.UserBrief{ID: "u2", Username: "bob"})
	assert.NoError(t, err)

	// The post owner may remove any comment.
	assert.NoError(t, comments.Remove("p1", c.ID, "u1"))

	var post models.Post
	assert.NoError(t, store.Get(storage.Posts, "p1", &post))
	assert.Empty(t, post.Comments)
	assert.Equal(t, 0, post.CommentCount)
}

func TestRemoveCommentByAuthor(t *testing.T) {
	store := mock.NewStore()
	comments := NewCommentService(store)
	seedPost(t, store, "p1", models.UserBrief{ID: "u1"})

	c, err := comments.Append("p1", "my own", models.UserBrief{ID: "u2"})
	assert.NoError(t, err)

	assert.NoError(t, comments.Remove("p1", c.ID, "u2"))
}

func TestRemoveCommentUnauthorised(t *testing.T) {
	store := mock.NewStore()
	comments := NewCommentService(store)
	seedPost(t, store, "p1", models.UserBrief{ID: "u1"})

	c, err := comments.Append("p1", "by u3", models.UserBrief{ID: "u3"})
	assert.NoError(t, err)

	// u2 is neither the post owner nor the author of u3's comment.
	err = comments.Remove("p1", c.ID, "u2")
	assert.Equal(t, apperrors.CodeUnauthCommentDelete, apperrors.CodeOf(err))

	var post models.Post
	assert.NoError(t, store.Get(storage.Posts, "p1", &post))
	assert.Len(t, post.Comments, 1)
	assert.Equal(t, 1, post.CommentCount)
}

func TestRemoveNonexistentCommentByOwner(t *testing.T) {
	store := mock.NewStore()
	comments := NewCommentService(store)
	seedPost(t, store, "p1", models.UserBrief{ID: "u1"})

	err := comments.Remove("p1", "missing-id", "u1")
	assert.Equal(t, apperrors.CodeCommentNotFound, apperrors.CodeOf(err))
}

func TestRemoveCommentMissingPost(t *testing.T) {
	store := mock.NewStore()
	comments := NewCommentService(store)

	err := comments.Remove("nope", "c1", "u1")
	assert.Equal(t, apperrors.CodePostNotFound, apperrors.CodeOf(err))
}

func TestRemoveCommentRogueList(t *testing.T) {
	store := mock.NewStore()
	comments := NewCommentService(store)

	// A post document without a comment list is malformed for the ledger.
	assert.NoError(t, store.Put(storage.Posts, "p1", &models.Post{
		ID:        "p1",
		CreatedBy: models.UserBrief{ID: "u1"},
	}))

	err := comments.Remove("p1", "c1", "u1")
	assert.Equal(t, apperrors.CodeRogueComment, apperrors.CodeOf(err))
}

func TestCommentsKeepInsertionOrder(t *testing.T) {
	store := mock.NewStore()
	comments := NewCommentService(store)
	seedPost(t, store, "p1", models.UserBrief{ID: "u1"})

	for _, text := range []string{"first", "second", "third"} {
		_, err := comments.Append("p1", text, models.UserBrief{ID: "u2"})
		assert.NoError(t, err)
	}

	list, err := comments.List("p1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{list[0].Text, list[1].Text, list[2].Text})
}
