package reader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/article-avenue/avenue-cli/internal/adapters/driving/tui/styles"
	"github.com/article-avenue/avenue-cli/internal/core/domain"
)

func article(t *testing.T) *domain.Article {
	t.Helper()
	body := domain.NewDocument()
	body.InsertText(0, 0, "The body of the piece.")
	desc := domain.NewDocument()
	desc.InsertText(0, 0, "A short teaser.")
	return &domain.Article{
		Title:       "On Writing",
		Username:    "jo",
		Body:        body,
		Description: desc,
	}
}

func TestReaderShowsArticle(t *testing.T) {
	v := NewView(styles.DefaultStyles())
	v.SetArticle(article(t))

	out := v.View()
	assert.Contains(t, out, "On Writing")
	assert.Contains(t, out, "by jo")
	assert.Contains(t, out, "The body of the piece.")
	assert.Contains(t, out, "A short teaser.")
}

func TestReaderWithoutArticle(t *testing.T) {
	v := NewView(styles.DefaultStyles())

	assert.Contains(t, v.View(), "No article selected.")
}

func TestReaderKeepsArticleAcrossResize(t *testing.T) {
	v := NewView(styles.DefaultStyles())
	v.SetArticle(article(t))

	v.SetDimensions(120, 40)

	assert.Contains(t, v.View(), "The body of the piece.")
	assert.Equal(t, "On Writing", v.Article().Title)
}
