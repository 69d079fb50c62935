package domain

// AuthorProfile is the public description of an author, shown on the
// author page alongside their published articles.
type AuthorProfile struct {
	Name string

	// Description is the author's self-description.
	Description string

	// ProfilePic is the backend-relative path of the profile image.
	ProfilePic string
}
