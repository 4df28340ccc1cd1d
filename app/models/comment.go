package models

// Validate checks a comment payload against its field constraints.
func (ci *CommentInput) Validate() error {
	return validate.Struct(ci)
}

// IsAuthoredBy reports whether the comment was written by the given user.
func (c *Comment) IsAuthoredBy(userID string) bool {
	return c.User.ID == userID
}
