package domain

import (
	"fmt"
	"strings"
	"time"
)

// Category is the closed set of article categories. The backend stores
// these as strings; they are validated at the boundary rather than
// passed through as free text.
type Category string

const (
	CategoryGeneral   Category = "General"
	CategorySports    Category = "Sports"
	CategoryScience   Category = "Science"
	CategoryWorldNews Category = "World-News"
)

// Categories lists every valid category.
var Categories = []Category{CategoryGeneral, CategorySports, CategoryScience, CategoryWorldNews}

// ParseCategory validates a category string.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// ArticleKind distinguishes the two lifecycle states an article record
// can be in. A draft is visible only to its author; a completed article
// is publicly readable. The draft-to-completed transition creates a new
// record, so identity is not shared across it.
type ArticleKind string

const (
	KindDraft     ArticleKind = "draft"
	KindCompleted ArticleKind = "completed"
)

// Thumbnail is the tagged optional for an article's thumbnail image.
// "No change" (resubmit the stored path) and "new file" are distinct
// states; the zero value means no thumbnail at all.
type Thumbnail struct {
	// Path is the backend-relative image path from a prior fetch.
	Path string

	// File holds new image bytes to upload; when set it wins over Path.
	File []byte

	// Filename is the display name shown in the editor and sent with
	// the upload.
	Filename string
}

// IsZero reports whether no thumbnail is attached.
func (t Thumbnail) IsZero() bool {
	return t.Path == "" && len(t.File) == 0
}

// Article is the persisted authoring unit: a titled, categorized pair of
// rich-text documents (body and description) plus thumbnail metadata.
type Article struct {
	ID       int64
	Title    string
	Username string
	Kind     ArticleKind
	Category Category

	Body        *Document
	Description *Document

	Thumbnail Thumbnail

	CreatedAt time.Time
}

// Slugify derives the URL-safe form of a title by replacing spaces with
// hyphens. Titles containing literal hyphens make the mapping ambiguous;
// that matches the platform's stored behaviour and is deliberately not
// repaired here.
func Slugify(title string) string {
	return strings.Join(strings.Split(title, " "), "-")
}

// Unslug restores a title from its slug by replacing hyphens with
// spaces. Exact inverse of Slugify only for titles without embedded
// hyphens.
func Unslug(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

// ArticlePath is the public navigation path for a completed article.
func ArticlePath(username, title string) string {
	return "/" + username + "/" + Slugify(title)
}
