package app

import (
	"github.com/nikbrunner/reservoir/internal/model"
	"github.com/nikbrunner/reservoir/internal/search"
	"github.com/nikbrunner/reservoir/internal/session"
)

// Intent is a user or system event handled by State.Apply.
type Intent interface {
	intent()
}

// Loaded delivers the result of the initial load.
type Loaded struct {
	Collection *model.Collection
	Err        error
}

// SetFilterText replaces the search text. Empty disables filtering.
type SetFilterText struct{ Text string }

// SetFilterField selects which field the search text is matched against.
type SetFilterField struct{ Field search.FilterField }

// SetSort selects the list order.
type SetSort struct{ Sort search.SortMode }

// SetFormField updates one add form input.
type SetFormField struct {
	Field FormField
	Value string
}

// SubmitAdd creates a bookmark from the add form.
type SubmitAdd struct{}

// ToggleExpand flips a row between compact and expanded.
type ToggleExpand struct{ ID string }

// ExpandAll expands every visible row.
type ExpandAll struct{}

// CollapseAll collapses every row.
type CollapseAll struct{}

// BeginEdit opens the edit form of a row.
type BeginEdit struct{ ID string }

// CancelEdit discards the edit form of a row.
type CancelEdit struct{ ID string }

// SetEditField records a pending value in a row's edit form.
type SetEditField struct {
	ID    string
	Field session.FieldTag
	Value string
}

// CommitEdit applies a row's pending edits.
type CommitEdit struct{ ID string }

// Delete removes a bookmark.
type Delete struct{ ID string }

// TagPress filters the list by a tag.
type TagPress struct{ Tag string }

// Export requests an export of the collection.
type Export struct{}

// ExportDone reports the result of an export.
type ExportDone struct {
	Path string
	Err  error
}

// SaveDone reports the result of a background save.
type SaveDone struct{ Err error }

// ClearNotice clears the notice if it is still the one numbered Seq.
type ClearNotice struct{ Seq uint64 }

// OpenLink opens a bookmark's link in the browser.
type OpenLink struct{ ID string }

// ShowNotice displays a transient message.
type ShowNotice struct {
	Text  string
	Error bool
}

func (Loaded) intent()         {}
func (SetFilterText) intent()  {}
func (SetFilterField) intent() {}
func (SetSort) intent()        {}
func (SetFormField) intent()   {}
func (SubmitAdd) intent()      {}
func (ToggleExpand) intent()   {}
func (ExpandAll) intent()      {}
func (CollapseAll) intent()    {}
func (BeginEdit) intent()      {}
func (CancelEdit) intent()     {}
func (SetEditField) intent()   {}
func (CommitEdit) intent()     {}
func (Delete) intent()         {}
func (TagPress) intent()       {}
func (Export) intent()         {}
func (ExportDone) intent()     {}
func (SaveDone) intent()       {}
func (ClearNotice) intent()    {}
func (OpenLink) intent()       {}
func (ShowNotice) intent()     {}
