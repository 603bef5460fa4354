package search

import (
	"testing"

	"github.com/nikbrunner/reservoir/internal/model"
)

func TestFuzzySearchBookmarks_EmptyQuery(t *testing.T) {
	c := model.NewCollectionFrom(model.Bookmark{ID: "b1", Title: "GitHub", Link: "github.com"})

	results := FuzzySearchBookmarks(c, "")

	if len(results) != 0 {
		t.Errorf("expected 0 results for empty query, got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_ExactMatch(t *testing.T) {
	c := model.NewCollectionFrom(
		model.Bookmark{ID: "b1", Title: "GitHub", Link: "github.com"},
		model.Bookmark{ID: "b2", Title: "GitLab", Link: "gitlab.com"},
	)

	results := FuzzySearchBookmarks(c, "GitHub")

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Bookmark.Title != "GitHub" {
		t.Errorf("expected GitHub, got %s", results[0].Bookmark.Title)
	}
}

func TestFuzzySearchBookmarks_FuzzyMatch(t *testing.T) {
	c := model.NewCollectionFrom(
		model.Bookmark{ID: "b1", Title: "TanStack Router", Link: "tanstack.com/router"},
		model.Bookmark{ID: "b2", Title: "React Router", Link: "reactrouter.com"},
	)

	// "tanrou" should fuzzy match "TanStack Router"
	results := FuzzySearchBookmarks(c, "tanrou")

	if len(results) < 1 {
		t.Fatalf("expected at least 1 result for 'tanrou', got %d", len(results))
	}
	if results[0].Bookmark.Title != "TanStack Router" {
		t.Errorf("expected TanStack Router as first result, got %s", results[0].Bookmark.Title)
	}
}

func TestFuzzySearchBookmarks_MultipleMatches(t *testing.T) {
	c := model.NewCollectionFrom(
		model.Bookmark{ID: "b1", Title: "GitHub", Link: "github.com"},
		model.Bookmark{ID: "b2", Title: "GitLab", Link: "gitlab.com"},
		model.Bookmark{ID: "b3", Title: "Gitea", Link: "gitea.io"},
	)

	results := FuzzySearchBookmarks(c, "git")

	if len(results) != 3 {
		t.Errorf("expected 3 results for 'git', got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_NoMatch(t *testing.T) {
	c := model.NewCollectionFrom(model.Bookmark{ID: "b1", Title: "GitHub", Link: "github.com"})

	results := FuzzySearchBookmarks(c, "xyz123")

	if len(results) != 0 {
		t.Errorf("expected 0 results for 'xyz123', got %d", len(results))
	}
}

func TestFuzzySearchBookmarks_SortedByScore(t *testing.T) {
	c := model.NewCollectionFrom(
		model.Bookmark{ID: "b1", Title: "React Router Documentation", Link: "reactrouter.com"},
		model.Bookmark{ID: "b2", Title: "Router", Link: "router.example.com"},
	)

	results := FuzzySearchBookmarks(c, "router")

	if len(results) < 2 {
		t.Fatalf("expected at least 2 results, got %d", len(results))
	}
	// "Router" should rank higher (exact match) than "React Router Documentation"
	if results[0].Bookmark.Title != "Router" {
		t.Errorf("expected 'Router' as first result (exact match), got %s", results[0].Bookmark.Title)
	}
}
