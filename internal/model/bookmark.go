package model

import (
	"strings"
	"time"
)

const (
	httpsScheme = "https://"
	httpScheme  = "http://"
)

// Bookmark represents a saved link with metadata.
type Bookmark struct {
	Title     string   `json:"title"`
	Link      string   `json:"link"`
	Note      *string  `json:"note"` // nil = no note
	Tags      []string `json:"tags"`
	ID        string   `json:"uuid"`
	Timestamp uint64   `json:"timestamp"` // unix seconds
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	Title string
	Link  string
	Note  *string
	Tags  []string
	// Timestamp overrides the creation time (imports). nil = now.
	Timestamp *uint64
}

// NewBookmark creates a Bookmark with a generated UUID and timestamp.
// The link is stored as given; callers normalize it before checking for
// duplicates.
func NewBookmark(params NewBookmarkParams) Bookmark {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	ts := Now()
	if params.Timestamp != nil {
		ts = *params.Timestamp
	}

	return Bookmark{
		Title:     params.Title,
		Link:      params.Link,
		Note:      params.Note,
		Tags:      tags,
		ID:        GenerateUUID(),
		Timestamp: ts,
	}
}

// Now returns the current time as unix seconds.
func Now() uint64 {
	return uint64(time.Now().Unix())
}

// CreatedAt returns the bookmark timestamp as a time.Time.
func (b Bookmark) CreatedAt() time.Time {
	return time.Unix(int64(b.Timestamp), 0)
}

// NoteText returns the note, or "" when absent.
func (b Bookmark) NoteText() string {
	if b.Note == nil {
		return ""
	}
	return *b.Note
}

// Clone returns a deep copy of the bookmark.
func (b *Bookmark) Clone() *Bookmark {
	c := *b
	if b.Note != nil {
		note := *b.Note
		c.Note = &note
	}
	c.Tags = append([]string{}, b.Tags...)
	return &c
}

// NormalizeLink strips a single leading "https://" from link.
// Other schemes are kept as-is.
func NormalizeLink(link string) string {
	return strings.TrimPrefix(link, httpsScheme)
}

// ExternalLink returns link with an "https://" prefix unless it already
// carries an http or https scheme.
func ExternalLink(link string) string {
	if strings.HasPrefix(link, httpsScheme) || strings.HasPrefix(link, httpScheme) {
		return link
	}
	return httpsScheme + link
}

// ParseTags splits a comma separated tag list. Items are kept literally,
// without trimming or dedup. An all-whitespace input yields no tags.
func ParseTags(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return []string{}
	}
	return strings.Split(csv, ",")
}

// NormalizeNote maps an empty note to nil.
func NormalizeNote(note string) *string {
	if note == "" {
		return nil
	}
	return &note
}
