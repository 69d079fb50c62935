package domain

import "strings"

// CategorizedFeed is the public home feed, pre-bucketed by the backend.
// The client switches buckets and filters titles without further calls.
type CategorizedFeed struct {
	All       []Article
	General   []Article
	Sports    []Article
	WorldNews []Article
	Science   []Article
}

// ByCategory returns the bucket for a category, or the full feed when
// cat is empty.
func (f *CategorizedFeed) ByCategory(cat Category) []Article {
	switch cat {
	case CategoryGeneral:
		return f.General
	case CategorySports:
		return f.Sports
	case CategoryWorldNews:
		return f.WorldNews
	case CategoryScience:
		return f.Science
	default:
		return f.All
	}
}

// FilterByTitle returns the articles whose title contains query,
// case-insensitively. An empty query returns articles unchanged.
func FilterByTitle(articles []Article, query string) []Article {
	if strings.TrimSpace(query) == "" {
		return articles
	}
	q := strings.ToLower(query)
	var out []Article
	for _, a := range articles {
		if strings.Contains(strings.ToLower(a.Title), q) {
			out = append(out, a)
		}
	}
	return out
}
