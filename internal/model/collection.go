package model

import (
	"encoding/json"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Collection holds all bookmarks keyed by ID.
// Iteration follows insertion order, which is the natural (unsorted) order
// of the list view.
type Collection struct {
	bookmarks *orderedmap.OrderedMap[string, *Bookmark]
}

// collectionJSON is the on-disk shape: {"bookmarks": {"<id>": {...}}}.
type collectionJSON struct {
	Bookmarks *orderedmap.OrderedMap[string, *Bookmark] `json:"bookmarks"`
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{bookmarks: orderedmap.New[string, *Bookmark]()}
}

// NewCollectionFrom creates a Collection holding the given bookmarks in order.
func NewCollectionFrom(bookmarks ...Bookmark) *Collection {
	c := NewCollection()
	for _, b := range bookmarks {
		c.AddBookmark(b)
	}
	return c
}

// MarshalJSON implements json.Marshaler.
func (c *Collection) MarshalJSON() ([]byte, error) {
	c.ensure()
	return json.Marshal(collectionJSON{Bookmarks: c.bookmarks})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Collection) UnmarshalJSON(data []byte) error {
	var raw collectionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.bookmarks = raw.Bookmarks
	c.ensure()

	// Tags are never nil in memory; null entries are dropped.
	var empty []string
	for pair := c.bookmarks.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			empty = append(empty, pair.Key)
			continue
		}
		if pair.Value.Tags == nil {
			pair.Value.Tags = []string{}
		}
	}
	for _, id := range empty {
		c.bookmarks.Delete(id)
	}
	return nil
}

func (c *Collection) ensure() {
	if c.bookmarks == nil {
		c.bookmarks = orderedmap.New[string, *Bookmark]()
	}
}

// Len returns the number of bookmarks.
func (c *Collection) Len() int {
	if c.bookmarks == nil {
		return 0
	}
	return c.bookmarks.Len()
}

// Get finds a bookmark by ID, returns nil if not found.
func (c *Collection) Get(id string) *Bookmark {
	if c.bookmarks == nil {
		return nil
	}
	b, _ := c.bookmarks.Get(id)
	return b
}

// All returns references to every bookmark in natural order.
func (c *Collection) All() []*Bookmark {
	result := make([]*Bookmark, 0, c.Len())
	if c.bookmarks == nil {
		return result
	}
	for pair := c.bookmarks.Oldest(); pair != nil; pair = pair.Next() {
		result = append(result, pair.Value)
	}
	return result
}

// AddBookmark inserts the bookmark, or replaces the one with the same ID.
// A replaced bookmark keeps its position.
func (c *Collection) AddBookmark(b Bookmark) {
	c.ensure()
	if b.Tags == nil {
		b.Tags = []string{}
	}
	c.bookmarks.Set(b.ID, &b)
}

// RemoveBookmark removes the bookmark with the given ID. Missing IDs are ignored.
func (c *Collection) RemoveBookmark(id string) {
	if c.bookmarks == nil {
		return
	}
	c.bookmarks.Delete(id)
}

// HasLink reports whether a bookmark with exactly this (normalized) link exists.
func (c *Collection) HasLink(link string) bool {
	for _, b := range c.All() {
		if b.Link == link {
			return true
		}
	}
	return false
}

// Clone returns a deep copy, safe to hand to a background save.
func (c *Collection) Clone() *Collection {
	clone := NewCollection()
	for _, b := range c.All() {
		clone.bookmarks.Set(b.ID, b.Clone())
	}
	return clone
}

// ImportMerge adds bookmarks whose normalized link is not yet present.
// Returns the number of bookmarks added and skipped.
func (c *Collection) ImportMerge(bookmarks []Bookmark) (added, skipped int) {
	for _, b := range bookmarks {
		b.Link = NormalizeLink(b.Link)
		if b.Link == "" || c.HasLink(b.Link) {
			skipped++
			continue
		}
		if b.ID == "" {
			b.ID = GenerateUUID()
		}
		c.AddBookmark(b)
		added++
	}
	return added, skipped
}

// AllTags returns every distinct tag, sorted.
func (c *Collection) AllTags() []string {
	seen := make(map[string]bool)
	for _, b := range c.All() {
		for _, tag := range b.Tags {
			seen[tag] = true
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
