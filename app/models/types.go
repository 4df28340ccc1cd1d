package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// UserBrief is the reduced user projection denormalized into posts and
// comments. It is copied by value at the time of the action; a later profile
// change does not rewrite old copies.
type UserBrief struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar,omitempty"`
}

// PostBrief is the reduced post projection stored inside reverse indexes and
// user rosters. It is never updated in place, only detached and re-attached.
type PostBrief struct {
	ID     string `json:"_id"`
	ImgURL string `json:"imgURL"`
}

// GeoPoint is the raw coordinate payload attached to a post location.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PlaceMeta is the denormalized label and geo payload a location index entry
// records when it is first created.
type PlaceMeta struct {
	Name string   `json:"locationName"`
	Geo  GeoPoint `json:"geoData"`
}

// PostLocation is the location payload carried on a canonical post.
type PostLocation struct {
	PlaceID string   `json:"placeId" validate:"required"`
	Name    string   `json:"locationName" validate:"required"`
	Geo     GeoPoint `json:"geoData"`
}

// PostTimes groups the lifecycle timestamps of a post.
type PostTimes struct {
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Post is the canonical post record. Comments are embedded; CommentCount is
// kept equal to len(Comments) by the comment service.
type Post struct {
	ID           string       `json:"_id"`
	Description  string       `json:"description"`
	ImgURL       string       `json:"imgURL"`
	HashTags     []string     `json:"hashTags"`
	Location     PostLocation `json:"location"`
	CreatedBy    UserBrief    `json:"createdBy"`
	Comments     []Comment    `json:"comments"`
	CommentCount int          `json:"commentCount"`
	Times        PostTimes    `json:"times"`
}

// Comment is embedded inside its parent post and has no identity outside it.
type Comment struct {
	ID       string    `json:"_id"`
	Text     string    `json:"text"`
	User     UserBrief `json:"user"`
	Datetime time.Time `json:"datetime"`
}

// UserTimes groups the lifecycle timestamps of a user record.
type UserTimes struct {
	SignedUpAt  time.Time  `json:"signedUpAt"`
	ConfirmedAt *time.Time `json:"confirmedAt,omitempty"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
}

// User is the canonical user record. Posts plus PostCount form the roster:
// the denormalized list of owned post references kept by the roster service.
type User struct {
	ID        string      `json:"_id"`
	Username  string      `json:"username"`
	Email     string      `json:"email,omitempty"`
	Avatar    string      `json:"avatar,omitempty"`
	FirstName string      `json:"firstName,omitempty"`
	LastName  string      `json:"lastName,omitempty"`
	DOB       string      `json:"dob,omitempty"`
	Confirmed bool        `json:"confirmed"`
	Posts     []PostBrief `json:"posts"`
	PostCount int         `json:"postCount"`
	Times     UserTimes   `json:"times"`
}

// IndexEntry is one reverse index document: a tag or place key mapping back
// to the posts carrying it. Place is set once, when the entry is created for
// a location key, and stays nil for hashtag entries.
type IndexEntry struct {
	Key   string      `json:"_key"`
	Posts []PostBrief `json:"posts"`
	Place *PlaceMeta  `json:"place,omitempty"`
}

// IndexSuggestion is the reduced projection returned by typeahead search:
// the key and member count without the member list itself.
type IndexSuggestion struct {
	Key       string     `json:"key"`
	PostCount int        `json:"postCount"`
	Place     *PlaceMeta `json:"place,omitempty"`
}

// PostContent is the client payload for creating a post.
type PostContent struct {
	Description string       `json:"description" validate:"required,max=2000"`
	ImgURL      string       `json:"imgURL" validate:"required"`
	HashTags    []string     `json:"hashTags" validate:"dive,required"`
	Location    PostLocation `json:"location"`
}

// PostUpdate is the client payload for editing a post. Only the description
// and hashtags are mutable after creation.
type PostUpdate struct {
	Description string   `json:"description" validate:"required,max=2000"`
	HashTags    []string `json:"hashTags" validate:"dive,required"`
}

// CommentInput is the client payload for adding a comment.
type CommentInput struct {
	Text string `json:"text" validate:"required,max=500"`
}

// ProfileUpdate is the client payload for editing a profile. All three
// fields are required.
type ProfileUpdate struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	DOB       string `json:"dob" validate:"required"`
}
