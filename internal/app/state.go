// Package app holds the bookmark manager's view state and the single
// transition function that applies user and system events to it.
package app

import (
	"fmt"

	"github.com/nikbrunner/reservoir/internal/model"
	"github.com/nikbrunner/reservoir/internal/search"
	"github.com/nikbrunner/reservoir/internal/session"
)

// Notice is a transient status message.
type Notice struct {
	Text  string
	Error bool
}

// Effect lists the side effects an Apply call asks the caller to run.
// Save and Export carry snapshots that are safe to use off the update loop.
type Effect struct {
	Save             *model.Collection
	Export           *model.Collection
	OpenLink         string
	ClearNoticeAfter uint64 // notice sequence to clear later, 0 = none
}

// IsZero reports whether the effect asks for nothing.
func (e Effect) IsZero() bool {
	return e.Save == nil && e.Export == nil && e.OpenLink == "" && e.ClearNoticeAfter == 0
}

// State is the complete view state.
type State struct {
	Collection *model.Collection
	Session    *session.Session
	Query      search.Query
	Form       AddForm
	Loaded     bool
	LoadErr    error
	Notice     *Notice

	noticeSeq uint64
	now       func() uint64
}

// NewState creates a State waiting for its collection to load.
func NewState(q search.Query) *State {
	return &State{
		Session: session.New(),
		Query:   q,
		now:     model.Now,
	}
}

// SetClock replaces the time source used for new bookmarks.
func (s *State) SetClock(now func() uint64) {
	s.now = now
}

// NoticeSeq returns the sequence number of the current notice.
func (s *State) NoticeSeq() uint64 {
	return s.noticeSeq
}

// Visible returns the bookmarks shown under the current query.
func (s *State) Visible() []*model.Bookmark {
	if s.Collection == nil {
		return nil
	}
	return search.List(s.Collection, s.Query)
}

// Apply handles one intent and returns the effects to run.
// Intents that touch bookmarks are ignored until the collection is loaded.
func (s *State) Apply(in Intent) Effect {
	switch in := in.(type) {
	case Loaded:
		if in.Err != nil {
			s.LoadErr = in.Err
			return Effect{}
		}
		s.Collection = in.Collection
		if s.Collection == nil {
			s.Collection = model.NewCollection()
		}
		s.Loaded = true
		s.LoadErr = nil
		return Effect{}

	case SetFilterText:
		s.setFilterText(in.Text)
		return Effect{}

	case SetFilterField:
		s.Query.Field = in.Field
		return Effect{}

	case SetSort:
		s.Query.Sort = in.Sort
		return Effect{}

	case SetFormField:
		if in.Field == FormSearch {
			s.setFilterText(in.Value)
			return Effect{}
		}
		s.Form.Set(in.Field, in.Value)
		return Effect{}

	case ClearNotice:
		if in.Seq == s.noticeSeq {
			s.Notice = nil
		}
		return Effect{}

	case SaveDone:
		if in.Err != nil {
			return s.notify(fmt.Sprintf("Save failed: %v", in.Err), true)
		}
		return Effect{}

	case ShowNotice:
		return s.notify(in.Text, in.Error)

	case ExportDone:
		if in.Err != nil {
			return s.notify(fmt.Sprintf("Export failed: %v", in.Err), true)
		}
		return s.notify("Exported to "+in.Path, false)
	}

	if !s.Loaded {
		return Effect{}
	}
	return s.applyLoaded(in)
}

func (s *State) applyLoaded(in Intent) Effect {
	switch in := in.(type) {
	case SubmitAdd:
		if _, ok := AddBookmark(s.Collection, s.Form, s.now()); !ok {
			return Effect{}
		}
		s.Form.Reset()
		return s.save()

	case ToggleExpand:
		s.Session.ToggleExpand(in.ID)

	case ExpandAll:
		visible := s.Visible()
		ids := make([]string, 0, len(visible))
		for _, b := range visible {
			ids = append(ids, b.ID)
		}
		s.Session.ExpandAll(ids)

	case CollapseAll:
		s.Session.CollapseAll()

	case BeginEdit:
		if s.Collection.Get(in.ID) != nil {
			s.Session.BeginEdit(in.ID)
		}

	case CancelEdit:
		s.Session.CancelEdit(in.ID)

	case SetEditField:
		if s.Session.IsEditing(in.ID) {
			s.Session.SetPendingField(in.ID, in.Field, in.Value)
		}

	case CommitEdit:
		original := s.Collection.Get(in.ID)
		if original == nil || !s.Session.IsEditing(in.ID) {
			return Effect{}
		}
		s.Session.CommitEdit(s.Collection, in.ID, *original)
		return s.save()

	case Delete:
		if s.Collection.Get(in.ID) == nil {
			return Effect{}
		}
		s.Session.Delete(s.Collection, in.ID)
		return s.save()

	case TagPress:
		s.Query.Field = search.FieldTags
		s.setFilterText(in.Tag)

	case Export:
		return Effect{Export: s.Collection.Clone()}

	case OpenLink:
		if b := s.Collection.Get(in.ID); b != nil {
			return Effect{OpenLink: b.Link}
		}
	}
	return Effect{}
}

func (s *State) setFilterText(text string) {
	s.Form.Search = text
	if text == "" {
		s.Query.Text = nil
		return
	}
	s.Query.Text = &text
}

func (s *State) save() Effect {
	return Effect{Save: s.Collection.Clone()}
}

func (s *State) notify(text string, isErr bool) Effect {
	s.noticeSeq++
	s.Notice = &Notice{Text: text, Error: isErr}
	return Effect{ClearNoticeAfter: s.noticeSeq}
}
