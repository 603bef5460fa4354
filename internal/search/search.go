package search

import (
	"github.com/nikbrunner/reservoir/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Bookmark       *model.Bookmark
	MatchedIndexes []int
	Score          int
}

// bookmarkTitles implements fuzzy.Source for bookmark slice.
type bookmarkTitles []*model.Bookmark

func (bt bookmarkTitles) String(i int) string {
	return bt[i].Title
}

func (bt bookmarkTitles) Len() int {
	return len(bt)
}

// FuzzySearchBookmarks searches all bookmarks by title using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchBookmarks(c *model.Collection, query string) []SearchResult {
	if query == "" {
		return nil
	}

	bookmarks := bookmarkTitles(c.All())
	matches := fuzzy.FindFrom(query, bookmarks)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Bookmark:       bookmarks[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
