package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/reservoir/internal/app"
	"github.com/nikbrunner/reservoir/internal/model"
	"github.com/nikbrunner/reservoir/internal/session"
	"github.com/nikbrunner/reservoir/internal/tui/layout"
)

// AddFormState holds the inputs of the add bookmark modal.
type AddFormState struct {
	Inputs []textinput.Model // indexed like app.FormFields
	Focus  int
}

// NewAddFormState creates the add form inputs.
func NewAddFormState(cfg layout.LayoutConfig) AddFormState {
	placeholders := map[app.FormField]string{
		app.FormTitle: "Title",
		app.FormLink:  "https://...",
		app.FormNote:  "Note (optional)",
		app.FormTags:  "tag1,tag2",
	}
	limits := map[app.FormField]int{
		app.FormTitle: cfg.Input.TitleCharLimit,
		app.FormLink:  cfg.Input.LinkCharLimit,
		app.FormNote:  cfg.Input.NoteCharLimit,
		app.FormTags:  cfg.Input.TagsCharLimit,
	}

	inputs := make([]textinput.Model, len(app.FormFields))
	for i, field := range app.FormFields {
		input := textinput.New()
		input.Placeholder = placeholders[field]
		input.CharLimit = limits[field]
		input.Width = cfg.Input.StandardWidth
		inputs[i] = input
	}
	return AddFormState{Inputs: inputs}
}

// Reset clears all inputs and focuses the title.
func (f *AddFormState) Reset() {
	for i := range f.Inputs {
		f.Inputs[i].Reset()
	}
	f.Focus = 0
}

// Field returns the form field of the focused input.
func (f *AddFormState) Field() app.FormField {
	return app.FormFields[f.Focus]
}

// EditFormState holds the inputs of the inline bookmark editor.
type EditFormState struct {
	ID     string
	Inputs []textinput.Model // indexed like session.Fields
	Focus  int
}

// NewEditFormState creates editor inputs prefilled from b.
func NewEditFormState(cfg layout.LayoutConfig, b *model.Bookmark) EditFormState {
	values := map[session.FieldTag]string{
		session.FieldTitle:     b.Title,
		session.FieldLink:      b.Link,
		session.FieldTags:      strings.Join(b.Tags, ","),
		session.FieldNote:      b.NoteText(),
		session.FieldTimestamp: strconv.FormatUint(b.Timestamp, 10),
	}
	limits := map[session.FieldTag]int{
		session.FieldTitle:     cfg.Input.TitleCharLimit,
		session.FieldLink:      cfg.Input.LinkCharLimit,
		session.FieldTags:      cfg.Input.TagsCharLimit,
		session.FieldNote:      cfg.Input.NoteCharLimit,
		session.FieldTimestamp: 20,
	}

	inputs := make([]textinput.Model, len(session.Fields))
	for i, field := range session.Fields {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = limits[field]
		input.Width = cfg.Input.StandardWidth
		input.SetValue(values[field])
		inputs[i] = input
	}
	return EditFormState{ID: b.ID, Inputs: inputs}
}

// Field returns the session field of the focused input.
func (f *EditFormState) Field() session.FieldTag {
	return session.Fields[f.Focus]
}

// SearchState holds the search input.
type SearchState struct {
	Input textinput.Model
}

// NewSearchState creates the search input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Prompt = "/"
	input.Placeholder = "Search..."
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth
	return SearchState{Input: input}
}

// TagSelectState holds the tag picker for the cursor bookmark.
type TagSelectState struct {
	Tags   []string
	Cursor int
}

// focusInput focuses inputs[idx] and blurs the rest.
func focusInput(inputs []textinput.Model, idx int) {
	for i := range inputs {
		if i == idx {
			inputs[i].Focus()
		} else {
			inputs[i].Blur()
		}
	}
}
