package models

// Validate checks a profile edit payload against its field constraints.
func (pu *ProfileUpdate) Validate() error {
	return validate.Struct(pu)
}

// Brief returns the reduced projection of the user denormalized into posts
// and comments.
func (u *User) Brief() UserBrief {
	return UserBrief{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}

// FindPost returns the position of the given post reference in the roster,
// or -1 when absent.
func (u *User) FindPost(postID string) int {
	for i := range u.Posts {
		if u.Posts[i].ID == postID {
			return i
		}
	}
	return -1
}

// Profile is the user record trimmed for display to other users. The email
// stays private to the owner.
func (u *User) Profile(includeEmail bool) User {
	profile := *u
	profile.Posts = nil
	if !includeEmail {
		profile.Email = ""
	}
	return profile
}
