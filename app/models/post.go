package models

// Validate checks a create payload against its field constraints, including
// the nested location payload.
func (pc *PostContent) Validate() error {
	return validate.Struct(pc)
}

// Validate checks an edit payload against its field constraints.
func (pu *PostUpdate) Validate() error {
	return validate.Struct(pu)
}

// Brief returns the reduced projection of the post used inside reverse
// indexes and rosters.
func (p *Post) Brief() PostBrief {
	return PostBrief{ID: p.ID, ImgURL: p.ImgURL}
}

// PlaceMeta returns the denormalized location payload stored on a location
// index entry at first attach.
func (p *Post) PlaceMeta() *PlaceMeta {
	return &PlaceMeta{Name: p.Location.Name, Geo: p.Location.Geo}
}

// FindComment returns the comment with the given id and its position in the
// embedded list, or -1 when absent.
func (p *Post) FindComment(commentID string) (*Comment, int) {
	for i := range p.Comments {
		if p.Comments[i].ID == commentID {
			return &p.Comments[i], i
		}
	}
	return nil, -1
}

// IsOwnedBy reports whether the post was created by the given user.
func (p *Post) IsOwnedBy(userID string) bool {
	return p.CreatedBy.ID == userID
}
