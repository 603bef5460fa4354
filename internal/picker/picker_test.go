package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/reservoir/internal/model"
	"github.com/nikbrunner/reservoir/internal/search"
)

func twoResults() []search.SearchResult {
	return []search.SearchResult{
		{Bookmark: &model.Bookmark{ID: "b1", Title: "GitHub", Link: "github.com"}, MatchedIndexes: []int{0, 1, 2}},
		{Bookmark: &model.Bookmark{ID: "b2", Title: "GitLab", Link: "gitlab.com"}, MatchedIndexes: []int{0, 1, 2}},
	}
}

func TestPicker_InitialState(t *testing.T) {
	p := New(twoResults(), "git")

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
	if len(p.results) != 2 {
		t.Errorf("expected 2 results, got %d", len(p.results))
	}
}

func TestPicker_NavigateDown(t *testing.T) {
	p := New(twoResults(), "git")
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}

	newModel, _ := p.Update(msg)
	p = newModel.(Picker)

	if p.cursor != 1 {
		t.Errorf("expected cursor at 1, got %d", p.cursor)
	}
}

func TestPicker_NavigateUp(t *testing.T) {
	p := New(twoResults(), "git")
	p.cursor = 1

	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}
	newModel, _ := p.Update(msg)
	p = newModel.(Picker)

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
}

func TestPicker_BoundsCheck(t *testing.T) {
	p := New(twoResults()[:1], "git")

	// Up from 0 stays at 0
	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}

	// Down from last stays at last
	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 (only 1 item), got %d", p.cursor)
	}
}

func TestPicker_SelectItem(t *testing.T) {
	p := New(twoResults(), "git")
	p.cursor = 1

	newModel, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = newModel.(Picker)

	if !p.selected {
		t.Error("expected selected to be true after Enter")
	}
	if cmd == nil {
		t.Error("expected quit command after selection")
	}
	if got := p.SelectedBookmark(); got == nil || got.ID != "b2" {
		t.Errorf("expected b2 to be selected, got %v", got)
	}
}

func TestPicker_SelectWithNoResults(t *testing.T) {
	p := New(nil, "nothing")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = newModel.(Picker)

	if !p.Cancelled() {
		t.Error("expected Enter on empty results to cancel")
	}
	if p.SelectedBookmark() != nil {
		t.Error("expected no selection")
	}
}

func TestPicker_Cancel(t *testing.T) {
	p := New(twoResults(), "git")

	newModel, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	p = newModel.(Picker)

	if !p.cancelled {
		t.Error("expected cancelled to be true after Esc")
	}
	if cmd == nil {
		t.Error("expected quit command after cancel")
	}
}

func TestPicker_SelectedBookmark(t *testing.T) {
	bm := &model.Bookmark{ID: "b1", Title: "GitHub", Link: "github.com"}
	p := New([]search.SearchResult{{Bookmark: bm}}, "git")
	p.selected = true

	if got := p.SelectedBookmark(); got != bm {
		t.Errorf("expected selected bookmark to be returned")
	}
}

func TestPicker_SelectedBookmark_Cancelled(t *testing.T) {
	p := New(twoResults(), "git")
	p.cancelled = true

	if got := p.SelectedBookmark(); got != nil {
		t.Error("expected nil when cancelled")
	}
}

func TestPicker_ArrowKeys(t *testing.T) {
	p := New(twoResults(), "git")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p = newModel.(Picker)
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1 after down arrow, got %d", p.cursor)
	}

	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 after up arrow, got %d", p.cursor)
	}
}

func TestPicker_View(t *testing.T) {
	p := New(twoResults(), "git")
	view := p.View()

	for _, want := range []string{"Search: git (2 results)", "github.com", "gitlab.com", "q/Esc: cancel"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestPicker_ViewNoMatches(t *testing.T) {
	view := New(nil, "zzz").View()
	if !strings.Contains(view, "No matches") {
		t.Errorf("expected empty-state text, got %q", view)
	}
}
