package app

import "github.com/nikbrunner/reservoir/internal/model"

// FormField names an input of the add form.
type FormField int

const (
	FormTitle FormField = iota
	FormLink
	FormNote
	FormTags
	FormSearch
)

// FormFields lists the add form inputs in tab order.
var FormFields = []FormField{FormTitle, FormLink, FormNote, FormTags}

func (f FormField) String() string {
	switch f {
	case FormTitle:
		return "title"
	case FormLink:
		return "link"
	case FormNote:
		return "note"
	case FormTags:
		return "tags"
	case FormSearch:
		return "search"
	}
	return "unknown"
}

// AddForm holds the raw text typed into the add and search inputs.
type AddForm struct {
	Title  string
	Link   string
	Note   string
	Tags   string
	Search string
}

// Get returns the value of one input.
func (f *AddForm) Get(field FormField) string {
	switch field {
	case FormTitle:
		return f.Title
	case FormLink:
		return f.Link
	case FormNote:
		return f.Note
	case FormTags:
		return f.Tags
	case FormSearch:
		return f.Search
	}
	return ""
}

// Set updates one input.
func (f *AddForm) Set(field FormField, value string) {
	switch field {
	case FormTitle:
		f.Title = value
	case FormLink:
		f.Link = value
	case FormNote:
		f.Note = value
	case FormTags:
		f.Tags = value
	case FormSearch:
		f.Search = value
	}
}

// Reset clears every input except the search query.
func (f *AddForm) Reset() {
	*f = AddForm{Search: f.Search}
}

// AddBookmark creates a bookmark from the form and inserts it into c.
// It returns false, leaving c untouched, when the normalized link is
// already stored or when title or link is empty.
func AddBookmark(c *model.Collection, form AddForm, now uint64) (model.Bookmark, bool) {
	link := model.NormalizeLink(form.Link)
	if c.HasLink(link) {
		return model.Bookmark{}, false
	}
	if form.Title == "" || link == "" {
		return model.Bookmark{}, false
	}

	b := model.NewBookmark(model.NewBookmarkParams{
		Title:     form.Title,
		Link:      link,
		Note:      model.NormalizeNote(form.Note),
		Tags:      model.ParseTags(form.Tags),
		Timestamp: &now,
	})
	c.AddBookmark(b)
	return b, true
}
