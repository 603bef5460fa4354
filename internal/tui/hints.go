package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move enter:expand"
func (a App) renderHints(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, gg, etc.)
	Edit   []Hint // Edit hints (a, e, d, etc.)
	Action []Hint // Action hints (enter, o, /, etc.)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return a.getNormalModeHints()
	case ModeSearch:
		return HintSet{
			Nav:    []Hint{{Key: "type", Desc: "search"}},
			Action: []Hint{{Key: "Enter", Desc: "apply"}},
			System: []Hint{{Key: "Esc", Desc: "clear"}},
		}
	case ModeAdd, ModeEdit:
		return HintSet{
			Nav:    []Hint{{Key: "Tab", Desc: "next"}},
			Action: []Hint{{Key: "Enter", Desc: "save"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeTagSelect:
		return HintSet{
			Nav:    []Hint{{Key: "j/k", Desc: "select"}},
			Action: []Hint{{Key: "Enter", Desc: "filter"}},
			System: []Hint{{Key: "Esc", Desc: "cancel"}},
		}
	case ModeHelp:
		// Help overlay covers screen, minimal hints
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}
	default:
		// ModeConfirmDelete shows its hints inside the modal
		return HintSet{}
	}
}

// getNormalModeHints returns hints for ModeNormal (main list).
func (a App) getNormalModeHints() HintSet {
	hints := HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "enter", Desc: "expand"},
		},
		Action: []Hint{
			{Key: "/", Desc: "search"},
			{Key: "f", Desc: "field"},
			{Key: "s", Desc: "sort"},
			{Key: "o", Desc: "open"},
		},
		Edit: []Hint{
			{Key: "a", Desc: "add"},
			{Key: "e", Desc: "edit"},
			{Key: "d", Desc: "del"},
		},
		System: []Hint{
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
	if a.state.Query.Active() {
		hints.System = append([]Hint{{Key: "Esc", Desc: "clear"}}, hints.System...)
	}
	return hints
}
