package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"instakilo/app/apperrors"
	"instakilo/app/models"
	"instakilo/app/storage"
)

// CommentService owns the embedded, order-preserving comment list on a post
// document.
type CommentService struct {
	store storage.Store
}

func NewCommentService(store storage.Store) *CommentService {
	return &CommentService{store: store}
}

// Append builds a comment with a fresh id and timestamp and appends it to
// the post, bumping the comment counter in the same single-document update.
// Display order is insertion order; timestamps may collide.
func (s *CommentService) Append(postID, text string, author models.UserBrief) (*models.Comment, error) {
	input := models.CommentInput{Text: text}
	if err := input.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	comment := models.Comment{
		ID:       uuid.NewString(),
		Text:     text,
		User:     author,
		Datetime: time.Now().UTC(),
	}

	err := s.store.Update(storage.Posts, postID, nil, func(current []byte) ([]byte, error) {
		var p models.Post
		if err := json.Unmarshal(current, &p); err != nil {
			return nil, err
		}
		p.Comments = append(p.Comments, comment)
		p.CommentCount++
		return json.Marshal(&p)
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.PostNotFound("")
	}
	if err != nil {
		return nil, apperrors.Unknown("Unable to add comment")
	}
	return &comment, nil
}

// Remove deletes the comment with the given id, provided the requester is
// the post owner or the comment's author. The removal index comes from the
// read snapshot; a concurrent mutation of the same list can shift positions
// before the write lands, and the last write wins.
func (s *CommentService) Remove(postID, commentID, requesterID string) error {
	var post models.Post
	err := s.store.Get(storage.Posts, postID, &post)
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.PostNotFound("")
	}
	if err != nil {
		return apperrors.Unknown("Unable to delete comment")
	}
	if post.Comments == nil {
		return apperrors.RogueComment("")
	}

	comment, index := post.FindComment(commentID)
	authorised := post.IsOwnedBy(requesterID) ||
		(comment != nil && comment.IsAuthoredBy(requesterID))
	if !authorised {
		return apperrors.UnauthorisedCommentDelete("")
	}
	if index < 0 {
		return apperrors.CommentNotFound("")
	}

	err = s.store.Update(storage.Posts, postID, nil, func(current []byte) ([]byte, error) {
		var p models.Post
		if err := json.Unmarshal(current, &p); err != nil {
			return nil, err
		}
		if index >= len(p.Comments) {
			return current, nil
		}
		p.Comments = append(p.Comments[:index], p.Comments[index+1:]...)
		p.CommentCount--
		return json.Marshal(&p)
	})
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.PostNotFound("")
	}
	if err != nil {
		return apperrors.Unknown("Unable to delete comment")
	}
	return nil
}

// List returns the post's current comment list in insertion order.
func (s *CommentService) List(postID string) ([]models.Comment, error) {
	var post models.Post
	err := s.store.Get(storage.Posts, postID, &post)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.PostNotFound("")
	}
	if err != nil {
		return nil, apperrors.Unknown("Unable to read comments")
	}
	return post.Comments, nil
}
