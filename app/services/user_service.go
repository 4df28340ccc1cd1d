package services

import (
	"encoding/json"
	"errors"
	"time"

	"instakilo/app/apperrors"
	"instakilo/app/models"
	"instakilo/app/storage"
)

// UserService resolves subject ids to user records and carries the signup
// bookkeeping writes. An absent record is a missing-user condition, never an
// anonymous user.
type UserService struct {
	store storage.Store
}

func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// GetBrief returns the reduced projection used for denormalization.
func (s *UserService) GetBrief(userID string) (models.UserBrief, error) {
	var u models.User
	err := s.store.Get(storage.Users, userID, &u)
	if errors.Is(err, storage.ErrNotFound) {
		return models.UserBrief{}, apperrors.UserNotFound("")
	}
	if err != nil {
		return models.UserBrief{}, apperrors.Unknown("Unable to read user")
	}
	return u.Brief(), nil
}

// GetProfile returns the displayable user record. The email is only included
// when the profile belongs to the requester.
func (s *UserService) GetProfile(userID string, includeEmail bool) (models.User, error) {
	var u models.User
	err := s.store.Get(storage.Users, userID, &u)
	if errors.Is(err, storage.ErrNotFound) {
		return models.User{}, apperrors.UserNotFound("")
	}
	if err != nil {
		return models.User{}, apperrors.Unknown("Unable to retrieve user profile")
	}
	return u.Profile(includeEmail), nil
}

// UpdateProfile sets the editable profile fields.
func (s *UserService) UpdateProfile(userID string, upd models.ProfileUpdate) error {
	if err := upd.Validate(); err != nil {
		return apperrors.Validation(err.Error())
	}
	err := s.store.Update(storage.Users, userID, nil, func(current []byte) ([]byte, error) {
		var u models.User
		if err := json.Unmarshal(current, &u); err != nil {
			return nil, err
		}
		u.FirstName = upd.FirstName
		u.LastName = upd.LastName
		u.DOB = upd.DOB
		return json.Marshal(&u)
	})
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.UserNotFound("")
	}
	if err != nil {
		return apperrors.Unknown("Unable to update user profile")
	}
	return nil
}

// Register writes the canonical user record at signup, with an empty roster.
func (s *UserService) Register(id, username, email string, confirmed bool) error {
	user := models.User{
		ID:        id,
		Username:  username,
		Email:     email,
		Confirmed: confirmed,
		Posts:     []models.PostBrief{},
		Times:     models.UserTimes{SignedUpAt: time.Now().UTC()},
	}
	if err := s.store.Put(storage.Users, id, &user); err != nil {
		return apperrors.Unknown("Unable to save user details")
	}
	return nil
}

// Confirm marks the user's email as verified.
func (s *UserService) Confirm(userID string) error {
	now := time.Now().UTC()
	err := s.store.Update(storage.Users, userID, nil, func(current []byte) ([]byte, error) {
		var u models.User
		if err := json.Unmarshal(current, &u); err != nil {
			return nil, err
		}
		u.Confirmed = true
		u.Times.ConfirmedAt = &now
		return json.Marshal(&u)
	})
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.UserNotFound("")
	}
	if err != nil {
		return apperrors.Unknown("Failed to confirm email")
	}
	return nil
}

// TouchLastLogin stamps the login time on the user record.
func (s *UserService) TouchLastLogin(userID string) error {
	now := time.Now().UTC()
	err := s.store.Update(storage.Users, userID, nil, func(current []byte) ([]byte, error) {
		var u models.User
		if err := json.Unmarshal(current, &u); err != nil {
			return nil, err
		}
		u.Times.LastLogin = &now
		return json.Marshal(&u)
	})
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.UserNotFound("")
	}
	if err != nil {
		return apperrors.Unknown("Unable to update login times")
	}
	return nil
}
