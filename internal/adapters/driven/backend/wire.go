package backend

import (
	"fmt"
	"time"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/rawdoc"
)

// wireSession is the /get-session-data/ response format.
type wireSession struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// wireArticle is the article entry format shared by the listing, feed,
// and single-article endpoints. Contents and Description are nested
// JSON documents carried as strings.
type wireArticle struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Username    string `json:"username"`
	Tag         string `json:"tag"`
	Thumbnail   string `json:"thumbnail"`
	Filename    string `json:"filename"`
	Contents    string `json:"contents"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

// toDomain decodes the nested documents and validates the category.
func (w wireArticle) toDomain(kind domain.ArticleKind) (*domain.Article, error) {
	a := &domain.Article{
		ID:       w.ID,
		Title:    w.Title,
		Username: w.Username,
		Kind:     kind,
		Thumbnail: domain.Thumbnail{
			Path:     w.Thumbnail,
			Filename: w.Filename,
		},
	}

	if w.Tag != "" {
		cat, err := domain.ParseCategory(w.Tag)
		if err != nil {
			return nil, fmt.Errorf("article %d: %w", w.ID, err)
		}
		a.Category = cat
	}

	if w.Contents != "" {
		body, err := rawdoc.Decode([]byte(w.Contents))
		if err != nil {
			return nil, fmt.Errorf("article %d body: %w: %v", w.ID, domain.ErrMalformedResponse, err)
		}
		a.Body = body
	}
	if w.Description != "" {
		desc, err := rawdoc.Decode([]byte(w.Description))
		if err != nil {
			return nil, fmt.Errorf("article %d description: %w: %v", w.ID, domain.ErrMalformedResponse, err)
		}
		a.Description = desc
	}

	if w.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, w.CreatedAt); err == nil {
			a.CreatedAt = t
		}
	}

	return a, nil
}

// wireFeed is the /get-articles-categories/ response format.
type wireFeed struct {
	All       []wireArticle `json:"all_articles"`
	General   []wireArticle `json:"general"`
	Sports    []wireArticle `json:"sports"`
	WorldNews []wireArticle `json:"worldnews"`
	Science   []wireArticle `json:"science"`
}

func (w wireFeed) toDomain() (*domain.CategorizedFeed, error) {
	feed := &domain.CategorizedFeed{}
	for _, bucket := range []struct {
		in  []wireArticle
		out *[]domain.Article
	}{
		{w.All, &feed.All},
		{w.General, &feed.General},
		{w.Sports, &feed.Sports},
		{w.WorldNews, &feed.WorldNews},
		{w.Science, &feed.Science},
	} {
		for _, e := range bucket.in {
			a, err := e.toDomain(domain.KindCompleted)
			if err != nil {
				return nil, err
			}
			*bucket.out = append(*bucket.out, *a)
		}
	}
	return feed, nil
}

// wireAuthorInfo is the /get-author-info/ response format.
type wireAuthorInfo struct {
	AuthorInfo struct {
		Name       string `json:"name"`
		AuthorDesc string `json:"author_desc"`
		ProfilePic string `json:"profile_pic"`
	} `json:"authorInfo"`
}

// wireCreated is the response of the create endpoints.
type wireCreated struct {
	ID int64 `json:"id"`
}
