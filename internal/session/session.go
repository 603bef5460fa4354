// Package session tracks per-view editing state for bookmark rows:
// which rows are expanded, which are being edited, and the field values
// typed into the edit form but not yet committed.
package session

import (
	"strconv"

	"github.com/nikbrunner/reservoir/internal/model"
)

// FieldTag names an editable bookmark field.
type FieldTag int

const (
	FieldTitle FieldTag = iota
	FieldLink
	FieldTags
	FieldNote
	FieldTimestamp
)

// Fields lists every FieldTag in form order.
var Fields = []FieldTag{FieldTitle, FieldLink, FieldTags, FieldNote, FieldTimestamp}

func (f FieldTag) String() string {
	switch f {
	case FieldTitle:
		return "title"
	case FieldLink:
		return "link"
	case FieldTags:
		return "tags"
	case FieldNote:
		return "note"
	case FieldTimestamp:
		return "timestamp"
	}
	return "unknown"
}

// Key identifies one pending field edit.
type Key struct {
	ID    string
	Field FieldTag
}

// Session holds expand/edit state and pending edits.
// An ID is never expanded and editing at the same time.
type Session struct {
	expanded map[string]bool
	editing  map[string]bool
	pending  map[Key]string
}

// New creates an empty Session.
func New() *Session {
	return &Session{
		expanded: make(map[string]bool),
		editing:  make(map[string]bool),
		pending:  make(map[Key]string),
	}
}

// IsExpanded returns true if the row is shown expanded.
func (s *Session) IsExpanded(id string) bool {
	return s.expanded[id]
}

// IsEditing returns true if the row is shown as an edit form.
func (s *Session) IsEditing(id string) bool {
	return s.editing[id]
}

// Expand shows the row expanded. Rows in edit mode are left alone.
func (s *Session) Expand(id string) {
	if s.editing[id] {
		return
	}
	s.expanded[id] = true
}

// Collapse shows the row in its compact form.
func (s *Session) Collapse(id string) {
	delete(s.expanded, id)
}

// ToggleExpand flips the expanded state of a row.
func (s *Session) ToggleExpand(id string) {
	if s.expanded[id] {
		s.Collapse(id)
		return
	}
	s.Expand(id)
}

// ExpandAll expands every given row that is not being edited.
func (s *Session) ExpandAll(ids []string) {
	for _, id := range ids {
		s.Expand(id)
	}
}

// CollapseAll collapses every row.
func (s *Session) CollapseAll() {
	s.expanded = make(map[string]bool)
}

// BeginEdit switches a row to edit mode, dropping stale pending edits.
func (s *Session) BeginEdit(id string) {
	delete(s.expanded, id)
	s.editing[id] = true
	s.clearPending(id)
}

// CancelEdit leaves edit mode and discards pending edits.
func (s *Session) CancelEdit(id string) {
	delete(s.editing, id)
	s.clearPending(id)
}

// SetPendingField records a typed value for a field.
func (s *Session) SetPendingField(id string, field FieldTag, value string) {
	s.pending[Key{ID: id, Field: field}] = value
}

// Pending returns the typed value for a field, if any.
func (s *Session) Pending(id string, field FieldTag) (string, bool) {
	v, ok := s.pending[Key{ID: id, Field: field}]
	return v, ok
}

// PendingOr returns the typed value for a field, or fallback.
func (s *Session) PendingOr(id string, field FieldTag, fallback string) string {
	if v, ok := s.Pending(id, field); ok {
		return v
	}
	return fallback
}

func (s *Session) clearPending(id string) {
	for _, f := range Fields {
		delete(s.pending, Key{ID: id, Field: f})
	}
}

// Forget drops all state for a row (after delete).
func (s *Session) Forget(id string) {
	delete(s.expanded, id)
	delete(s.editing, id)
	s.clearPending(id)
}

// ApplyEdits merges the pending edits for id into a copy of original.
// Fields without a pending value keep their current value:
//   - title and link are only replaced by non-empty values; links are normalized
//   - tags are split on commas, all-whitespace meaning no tags
//   - an empty note clears the note
//   - an unparsable timestamp is ignored
func (s *Session) ApplyEdits(id string, original model.Bookmark) model.Bookmark {
	b := *original.Clone()

	if v, ok := s.Pending(id, FieldTitle); ok && v != "" {
		b.Title = v
	}
	if v, ok := s.Pending(id, FieldLink); ok && v != "" {
		b.Link = model.NormalizeLink(v)
	}
	if v, ok := s.Pending(id, FieldTags); ok {
		b.Tags = model.ParseTags(v)
	}
	if v, ok := s.Pending(id, FieldNote); ok {
		b.Note = model.NormalizeNote(v)
	}
	if v, ok := s.Pending(id, FieldTimestamp); ok {
		if ts, err := strconv.ParseUint(v, 10, 64); err == nil {
			b.Timestamp = ts
		}
	}

	return b
}

// CommitEdit applies the pending edits, upserts the result into c and
// leaves edit mode. Link uniqueness is not re-checked.
func (s *Session) CommitEdit(c *model.Collection, id string, original model.Bookmark) model.Bookmark {
	updated := s.ApplyEdits(id, original)
	c.AddBookmark(updated)
	delete(s.editing, id)
	s.clearPending(id)
	return updated
}

// Delete removes the bookmark from c and forgets its row state.
func (s *Session) Delete(c *model.Collection, id string) {
	c.RemoveBookmark(id)
	s.Forget(id)
}
