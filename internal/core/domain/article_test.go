package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("World-News")
	require.NoError(t, err)
	assert.Equal(t, CategoryWorldNews, c)

	_, err = ParseCategory("Politics")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	// Categories are case-sensitive on the wire.
	_, err = ParseCategory("sports")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestSlugRoundTrip(t *testing.T) {
	slug := Slugify("My First Post")
	assert.Equal(t, "My-First-Post", slug)
	assert.Equal(t, "My First Post", Unslug(slug))
}

func TestSlugify_HyphenatedTitleIsAmbiguous(t *testing.T) {
	// Titles with literal hyphens do not survive the round trip. This is
	// the platform's stored behaviour; the client does not try to repair it.
	title := "Best-of 2026"
	assert.Equal(t, "Best of 2026", Unslug(Slugify(title)))
}

func TestArticlePath(t *testing.T) {
	assert.Equal(t, "/alice/My-First-Post", ArticlePath("alice", "My First Post"))
}

func TestThumbnail_IsZero(t *testing.T) {
	assert.True(t, Thumbnail{}.IsZero())
	assert.False(t, Thumbnail{Path: "/media/a.png"}.IsZero())
	assert.False(t, Thumbnail{File: []byte{1}, Filename: "a.png"}.IsZero())
}

func TestFilterByTitle(t *testing.T) {
	articles := []Article{
		{Title: "Go and the Art of Plumbing"},
		{Title: "Rust belt revival"},
		{Title: "going places"},
	}

	got := FilterByTitle(articles, "go")
	require.Len(t, got, 2)
	assert.Equal(t, "Go and the Art of Plumbing", got[0].Title)
	assert.Equal(t, "going places", got[1].Title)

	assert.Len(t, FilterByTitle(articles, "  "), 3)
	assert.Empty(t, FilterByTitle(articles, "cobol"))
}

func TestCategorizedFeed_ByCategory(t *testing.T) {
	feed := &CategorizedFeed{
		All:     []Article{{Title: "a"}, {Title: "b"}},
		Sports:  []Article{{Title: "b"}},
		Science: []Article{{Title: "a"}},
	}

	assert.Len(t, feed.ByCategory(""), 2)
	assert.Len(t, feed.ByCategory(CategorySports), 1)
	assert.Empty(t, feed.ByCategory(CategoryGeneral))
}

func TestSession_Valid(t *testing.T) {
	assert.False(t, Session{}.Valid())
	assert.True(t, Session{Email: "a@b.c", Username: "alice"}.Valid())
}
