package search

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nikbrunner/reservoir/internal/model"
)

// FilterField selects which bookmark attribute a query is matched against.
type FilterField int

const (
	FieldAll FilterField = iota
	FieldTitle
	FieldLink
	FieldTags
)

var filterFieldNames = []string{"all", "title", "link", "tags"}

func (f FilterField) String() string {
	if int(f) < 0 || int(f) >= len(filterFieldNames) {
		return "unknown"
	}
	return filterFieldNames[f]
}

// Next returns the following field, wrapping around.
func (f FilterField) Next() FilterField {
	return FilterField((int(f) + 1) % len(filterFieldNames))
}

// ParseFilterField parses a field name as printed by String.
func ParseFilterField(s string) (FilterField, error) {
	for i, name := range filterFieldNames {
		if strings.EqualFold(s, name) {
			return FilterField(i), nil
		}
	}
	return FieldAll, fmt.Errorf("invalid filter field %q (want one of %s)", s, strings.Join(filterFieldNames, ", "))
}

// SortMode controls the order of the list.
type SortMode int

const (
	SortRelevance SortMode = iota // natural collection order
	SortNewest
	SortOldest
)

var sortModeNames = []string{"relevance", "newest", "oldest"}

func (m SortMode) String() string {
	if int(m) < 0 || int(m) >= len(sortModeNames) {
		return "unknown"
	}
	return sortModeNames[m]
}

// Next returns the following mode, wrapping around.
func (m SortMode) Next() SortMode {
	return SortMode((int(m) + 1) % len(sortModeNames))
}

// ParseSortMode parses a mode name as printed by String.
func ParseSortMode(s string) (SortMode, error) {
	for i, name := range sortModeNames {
		if strings.EqualFold(s, name) {
			return SortMode(i), nil
		}
	}
	return SortRelevance, fmt.Errorf("invalid sort mode %q (want one of %s)", s, strings.Join(sortModeNames, ", "))
}

// Query describes a filtered, sorted view of the collection.
// A nil Text disables filtering.
type Query struct {
	Field FilterField
	Text  *string
	Sort  SortMode
}

// Active reports whether the query filters anything.
func (q Query) Active() bool {
	return q.Text != nil && *q.Text != ""
}

// List returns references to the bookmarks matching q, in q's order.
// It never mutates c.
func List(c *model.Collection, q Query) []*model.Bookmark {
	all := c.All()

	result := all
	if q.Active() {
		needle := strings.ToLower(*q.Text)
		result = make([]*model.Bookmark, 0, len(all))
		for _, b := range all {
			if Matches(b, q.Field, needle) {
				result = append(result, b)
			}
		}
	}

	switch q.Sort {
	case SortNewest:
		slices.SortStableFunc(result, func(a, b *model.Bookmark) int {
			return compareTimestamp(b, a)
		})
	case SortOldest:
		slices.SortStableFunc(result, func(a, b *model.Bookmark) int {
			return compareTimestamp(a, b)
		})
	}

	return result
}

// Matches reports whether b contains needle in the given field.
// needle must already be lower-case.
func Matches(b *model.Bookmark, field FilterField, needle string) bool {
	switch field {
	case FieldTitle:
		return containsFold(b.Title, needle)
	case FieldLink:
		return containsFold(b.Link, needle)
	case FieldTags:
		return anyTagContains(b.Tags, needle)
	default:
		return containsFold(b.Title, needle) ||
			containsFold(b.Link, needle) ||
			anyTagContains(b.Tags, needle) ||
			containsFold(b.NoteText(), needle)
	}
}

func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

func anyTagContains(tags []string, needle string) bool {
	for _, tag := range tags {
		if containsFold(tag, needle) {
			return true
		}
	}
	return false
}

func compareTimestamp(a, b *model.Bookmark) int {
	switch {
	case a.Timestamp < b.Timestamp:
		return -1
	case a.Timestamp > b.Timestamp:
		return 1
	}
	return 0
}
