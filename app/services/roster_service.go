package services

import (
	"encoding/json"
	"errors"

	"instakilo/app/apperrors"
	"instakilo/app/models"
	"instakilo/app/storage"
)

// RosterService maintains the per-user list of owned post references and its
// denormalized count, embedded in the user record. The user record itself is
// never deleted here, so there is no compaction.
type RosterService struct {
	store storage.Store
}

func NewRosterService(store storage.Store) *RosterService {
	return &RosterService{store: store}
}

// Attach appends a post reference to the user's roster and bumps the count
// in the same single-document update.
func (s *RosterService) Attach(userID string, post models.PostBrief) error {
	err := s.store.Update(storage.Users, userID, nil, func(current []byte) ([]byte, error) {
		var u models.User
		if err := json.Unmarshal(current, &u); err != nil {
			return nil, err
		}
		u.Posts = append(u.Posts, post)
		u.PostCount = len(u.Posts)
		return json.Marshal(&u)
	})
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.UserNotFound("")
	}
	if err != nil {
		return apperrors.Unknown("Unable to update user posts")
	}
	return nil
}

// Detach removes the reference to postID by its positional index and
// decrements the count in the same update. A reference that is not on the
// roster is a no-op.
func (s *RosterService) Detach(userID, postID string) error {
	err := s.store.Update(storage.Users, userID, nil, func(current []byte) ([]byte, error) {
		var u models.User
		if err := json.Unmarshal(current, &u); err != nil {
			return nil, err
		}
		i := u.FindPost(postID)
		if i < 0 {
			return current, nil
		}
		u.Posts = append(u.Posts[:i], u.Posts[i+1:]...)
		u.PostCount = len(u.Posts)
		return json.Marshal(&u)
	})
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.UserNotFound("")
	}
	if err != nil {
		return apperrors.Unknown("Unable to update user posts")
	}
	return nil
}

// Roster returns the user's post references in insertion order.
func (s *RosterService) Roster(userID string) ([]models.PostBrief, error) {
	var u models.User
	err := s.store.Get(storage.Users, userID, &u)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.UserNotFound("")
	}
	if err != nil {
		return nil, apperrors.Unknown("Unable to read user posts")
	}
	return u.Posts, nil
}
