package model_test

import (
	"encoding/json"
	"testing"

	"github.com/nikbrunner/reservoir/internal/model"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func stringPtr(s string) *string { return &s }
func uint64Ptr(v uint64) *uint64 { return &v }

func TestNewBookmark(t *testing.T) {
	b := model.NewBookmark(model.NewBookmarkParams{
		Title: "Example",
		Link:  "https://example.com",
	})

	assert.Equal(t, b.Title, "Example")
	assert.Equal(t, b.Link, "https://example.com", "link is stored as given")
	assert.Assert(t, b.Note == nil)
	assert.Assert(t, b.Tags != nil, "tags should never be nil")
	assert.Assert(t, is.Len(b.Tags, 0))
	assert.Assert(t, b.ID != "")
	assert.Assert(t, b.Timestamp > 0)
}

func TestNewBookmark_TimestampOverride(t *testing.T) {
	b := model.NewBookmark(model.NewBookmarkParams{
		Title:     "Old",
		Link:      "old.example.com",
		Timestamp: uint64Ptr(1700000000),
	})

	assert.Equal(t, b.Timestamp, uint64(1700000000))
	assert.Equal(t, b.CreatedAt().Unix(), int64(1700000000))
}

func TestNewBookmark_UniqueIDs(t *testing.T) {
	a := model.NewBookmark(model.NewBookmarkParams{Title: "a", Link: "a"})
	b := model.NewBookmark(model.NewBookmarkParams{Title: "b", Link: "b"})
	assert.Assert(t, a.ID != b.ID)
}

func TestNormalizeLink(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://example.com", "example.com"},
		{"example.com", "example.com"},
		{"http://example.com", "http://example.com"},
		{"https://https://example.com", "https://example.com"},
		{"https://https://x", "https://x"},
		{"HTTPS://example.com", "HTTPS://example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, model.NormalizeLink(tt.input), tt.want)
		})
	}
}

func TestExternalLink(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"example.com", "https://example.com"},
		{"https://example.com", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"ftp.example.com/file", "https://ftp.example.com/file"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, model.ExternalLink(tt.input), tt.want)
		})
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{}},
		{"whitespace only", "   ", []string{}},
		{"single", "news", []string{"news"}},
		{"two", "news,tech", []string{"news", "tech"}},
		{"kept literally", "a, b,,c", []string{"a", " b", "", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.DeepEqual(t, model.ParseTags(tt.input), tt.want)
		})
	}
}

func TestNormalizeNote(t *testing.T) {
	assert.Assert(t, model.NormalizeNote("") == nil)
	assert.Equal(t, *model.NormalizeNote("read later"), "read later")
}

func TestBookmark_Clone(t *testing.T) {
	orig := &model.Bookmark{ID: "b1", Title: "t", Note: stringPtr("n"), Tags: []string{"x"}}
	clone := orig.Clone()

	*clone.Note = "changed"
	clone.Tags[0] = "y"

	assert.Equal(t, *orig.Note, "n")
	assert.Equal(t, orig.Tags[0], "x")
}

func TestCollection_AddBookmark_Upsert(t *testing.T) {
	c := model.NewCollection()
	c.AddBookmark(model.Bookmark{ID: "b1", Title: "First", Link: "one.com"})
	c.AddBookmark(model.Bookmark{ID: "b2", Title: "Second", Link: "two.com"})
	c.AddBookmark(model.Bookmark{ID: "b1", Title: "First (edited)", Link: "one.com"})

	assert.Equal(t, c.Len(), 2)
	assert.Equal(t, c.Get("b1").Title, "First (edited)")

	// Replaced bookmark keeps its position
	all := c.All()
	assert.Equal(t, all[0].ID, "b1")
	assert.Equal(t, all[1].ID, "b2")
}

func TestCollection_RemoveBookmark(t *testing.T) {
	c := model.NewCollectionFrom(
		model.Bookmark{ID: "b1", Title: "One", Link: "one.com"},
		model.Bookmark{ID: "b2", Title: "Two", Link: "two.com"},
	)

	c.RemoveBookmark("b1")
	assert.Equal(t, c.Len(), 1)
	assert.Assert(t, c.Get("b1") == nil)

	// Missing ID is a no-op
	c.RemoveBookmark("nonexistent")
	assert.Equal(t, c.Len(), 1)
}

func TestCollection_HasLink(t *testing.T) {
	c := model.NewCollectionFrom(model.Bookmark{ID: "b1", Title: "Example", Link: "example.com"})

	assert.Assert(t, c.HasLink("example.com"))
	assert.Assert(t, !c.HasLink("Example.com"), "link match is case-sensitive")
	assert.Assert(t, !c.HasLink("notfound.com"))
}

func TestCollection_Clone_IsIndependent(t *testing.T) {
	c := model.NewCollectionFrom(model.Bookmark{ID: "b1", Title: "One", Link: "one.com", Tags: []string{"a"}})
	snapshot := c.Clone()

	c.Get("b1").Title = "Mutated"
	c.AddBookmark(model.Bookmark{ID: "b2", Title: "Two", Link: "two.com"})

	assert.Equal(t, snapshot.Len(), 1)
	assert.Equal(t, snapshot.Get("b1").Title, "One")
}

func TestCollection_ImportMerge_SkipsDuplicateLinks(t *testing.T) {
	c := model.NewCollectionFrom(model.Bookmark{ID: "existing", Title: "Existing", Link: "example.com"})

	added, skipped := c.ImportMerge([]model.Bookmark{
		{ID: "new1", Title: "Duplicate", Link: "https://example.com"},
		{ID: "new2", Title: "New Site", Link: "https://newsite.com"},
		{ID: "new3", Title: "No link", Link: ""},
		{ID: "new4", Title: "Double scheme", Link: "https://https://example.com"},
	})

	assert.Equal(t, added, 2)
	assert.Equal(t, skipped, 2)
	assert.Equal(t, c.Len(), 3)
	assert.Equal(t, c.Get("new2").Link, "newsite.com")
	// Only one scheme is stripped
	assert.Equal(t, c.Get("new4").Link, "https://example.com")
}

func TestCollection_AllTags(t *testing.T) {
	c := model.NewCollectionFrom(
		model.Bookmark{ID: "b1", Link: "one.com", Tags: []string{"go", "news"}},
		model.Bookmark{ID: "b2", Link: "two.com", Tags: []string{"news", "art"}},
	)

	assert.DeepEqual(t, c.AllTags(), []string{"art", "go", "news"})
}

func TestCollection_JSONShape(t *testing.T) {
	c := model.NewCollection()
	data, err := json.Marshal(c)
	assert.NilError(t, err)
	assert.Equal(t, string(data), `{"bookmarks":{}}`)

	c.AddBookmark(model.Bookmark{
		ID:        "id-1",
		Title:     "Example",
		Link:      "example.com",
		Tags:      []string{"news"},
		Timestamp: 1700000000,
	})
	data, err = json.Marshal(c)
	assert.NilError(t, err)
	assert.Equal(t, string(data),
		`{"bookmarks":{"id-1":{"title":"Example","link":"example.com","note":null,"tags":["news"],"uuid":"id-1","timestamp":1700000000}}}`)
}

func TestCollection_UnmarshalPreservesOrder(t *testing.T) {
	data := `{"bookmarks": {
		"z": {"title": "Z", "link": "z.com", "note": null, "tags": [], "uuid": "z", "timestamp": 3},
		"a": {"title": "A", "link": "a.com", "note": "hi", "tags": null, "uuid": "a", "timestamp": 1},
		"m": {"title": "M", "link": "m.com", "note": null, "tags": ["x"], "uuid": "m", "timestamp": 2}
	}}`

	var c model.Collection
	assert.NilError(t, json.Unmarshal([]byte(data), &c))

	all := c.All()
	assert.Assert(t, is.Len(all, 3))
	assert.Equal(t, all[0].ID, "z")
	assert.Equal(t, all[1].ID, "a")
	assert.Equal(t, all[2].ID, "m")
	assert.Equal(t, all[1].NoteText(), "hi")
	assert.Assert(t, all[1].Tags != nil)
}

func TestCollection_UnmarshalMalformed(t *testing.T) {
	var c model.Collection
	err := json.Unmarshal([]byte(`{"bookmarks": {"a": `), &c)
	assert.Assert(t, err != nil)
}
