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

// PostService coordinates the lifecycle of a canonical post and keeps the
// derived views in sync: the owner's roster, the hashtag index and the
// location index. The steps of one logical operation are separate
// single-document writes in a fixed order; there is no cross-document
// transaction, so a failure partway leaves the completed steps in place.
// For creation the canonical record is written first, so a reader who sees
// the post may still miss index entries but never the reverse; for deletion
// the canonical record is removed first, so index readers must tolerate
// references that no longer resolve.
type PostService struct {
	store     storage.Store
	hashtags  *ReverseIndexService
	locations *ReverseIndexService
	roster    *RosterService
}

func NewPostService(store storage.Store, hashtags, locations *ReverseIndexService, roster *RosterService) *PostService {
	return &PostService{
		store:     store,
		hashtags:  hashtags,
		locations: locations,
		roster:    roster,
	}
}

// ownedBy gates a write on the stored post belonging to userID.
func ownedBy(userID string) storage.Condition {
	return func(current []byte) bool {
		var p models.Post
		if err := json.Unmarshal(current, &p); err != nil {
			return false
		}
		return p.CreatedBy.ID == userID
	}
}

// Create writes the canonical post, then attaches it to the owner's roster,
// the index entry of every hashtag, and its location entry.
func (s *PostService) Create(content models.PostContent, author models.UserBrief) (*models.Post, error) {
	if err := content.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	post := &models.Post{
		ID:          uuid.NewString(),
		Description: content.Description,
		ImgURL:      content.ImgURL,
		HashTags:    content.HashTags,
		Location:    content.Location,
		CreatedBy:   author,
		Comments:    []models.Comment{},
		Times:       models.PostTimes{CreatedAt: time.Now().UTC()},
	}
	if err := s.store.Put(storage.Posts, post.ID, post); err != nil {
		return nil, apperrors.Unknown("Unable to create post")
	}

	brief := post.Brief()
	if err := s.roster.Attach(author.ID, brief); err != nil {
		return nil, err
	}
	toAdd, _ := Diff(nil, post.HashTags)
	for _, tag := range toAdd {
		if err := s.hashtags.Attach(tag, brief, nil); err != nil {
			return nil, err
		}
	}
	if err := s.locations.Attach(post.Location.PlaceID, brief, post.PlaceMeta()); err != nil {
		return nil, err
	}
	return post, nil
}

// Update rewrites the mutable content fields under an ownership condition,
// then reconciles the hashtag index against the tag diff. The location and
// the owner are immutable after creation.
func (s *PostService) Update(postID string, upd models.PostUpdate, requesterID string) (*models.Post, error) {
	if err := upd.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	var old models.Post
	err := s.store.Get(storage.Posts, postID, &old)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.PostNotFound("")
	}
	if err != nil {
		return nil, apperrors.Unknown("Unable to update post")
	}

	now := time.Now().UTC()
	err = s.store.Update(storage.Posts, postID, ownedBy(requesterID), func(current []byte) ([]byte, error) {
		var p models.Post
		if err := json.Unmarshal(current, &p); err != nil {
			return nil, err
		}
		p.Description = upd.Description
		p.HashTags = upd.HashTags
		p.Times.UpdatedAt = &now
		return json.Marshal(&p)
	})
	if errors.Is(err, storage.ErrConditionFailed) {
		return nil, apperrors.UnauthorisedPostUpdate("")
	}
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.PostNotFound("")
	}
	if err != nil {
		return nil, apperrors.Unknown("Unable to update post")
	}

	var fresh models.Post
	if err := s.store.Get(storage.Posts, postID, &fresh); err != nil {
		return nil, apperrors.Unknown("Unable to update post")
	}

	brief := fresh.Brief()
	toAdd, toRemove := Diff(old.HashTags, fresh.HashTags)
	for _, tag := range toAdd {
		if err := s.hashtags.Attach(tag, brief, nil); err != nil {
			return nil, err
		}
	}
	for _, tag := range toRemove {
		if err := s.hashtags.Detach(tag, postID); err != nil {
			return nil, err
		}
	}
	return &fresh, nil
}

// Delete removes the canonical record under an ownership condition, then
// retires every derived reference: the owner's roster entry, each hashtag
// membership, and the location membership.
func (s *PostService) Delete(postID, requesterID string) error {
	var post models.Post
	err := s.store.Get(storage.Posts, postID, &post)
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.PostNotFound("")
	}
	if err != nil {
		return apperrors.Unknown("Unable to delete post")
	}

	err = s.store.Delete(storage.Posts, postID, ownedBy(requesterID))
	if errors.Is(err, storage.ErrConditionFailed) {
		return apperrors.UnauthorisedPostDelete("")
	}
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.PostNotFound("")
	}
	if err != nil {
		return apperrors.Unknown("Unable to delete post")
	}

	if err := s.roster.Detach(requesterID, postID); err != nil {
		return err
	}
	_, toRemove := Diff(post.HashTags, nil)
	for _, tag := range toRemove {
		if err := s.hashtags.Detach(tag, postID); err != nil {
			return err
		}
	}
	return s.locations.Detach(post.Location.PlaceID, postID)
}

// ListPublic returns up to limit posts and an opaque continuation cursor.
func (s *PostService) ListPublic(limit int, cursor string) ([]models.Post, string, bool, error) {
	if limit <= 0 {
		limit = 20
	}
	items, next, err := s.store.Scan(storage.Posts, nil, limit, cursor)
	if err != nil {
		return nil, "", false, apperrors.Unknown("Unable to retrieve posts")
	}
	posts := make([]models.Post, 0, len(items))
	for _, doc := range items {
		var p models.Post
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, "", false, apperrors.Unknown("Unable to retrieve posts")
		}
		posts = append(posts, p)
	}
	return posts, next, next != "", nil
}

// ListOwn resolves the user's roster references to full posts. A reference
// whose post no longer exists is skipped: deletion retires the canonical
// record before the roster entry, so dangling references are expected.
func (s *PostService) ListOwn(userID string) ([]models.Post, error) {
	refs, err := s.roster.Roster(userID)
	if err != nil {
		return nil, err
	}
	posts := make([]models.Post, 0, len(refs))
	for _, ref := range refs {
		var p models.Post
		err := s.store.Get(storage.Posts, ref.ID, &p)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, apperrors.Unknown("Unable to retrieve posts")
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// Get returns the canonical post.
func (s *PostService) Get(postID string) (*models.Post, error) {
	var post models.Post
	err := s.store.Get(storage.Posts, postID, &post)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperrors.PostNotFound("")
	}
	if err != nil {
		return nil, apperrors.Unknown("Unable to get post information")
	}
	return &post, nil
}
