package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/reservoir/internal/model"
	"github.com/nikbrunner/reservoir/internal/session"
	"github.com/nikbrunner/reservoir/internal/tui/layout"
)

const dateFormat = "2006-01-02 15:04"

// renderView creates the complete list view.
func (a App) renderView() string {
	if !a.state.Loaded {
		return a.renderLoading()
	}

	switch a.mode {
	case ModeHelp:
		return a.renderHelpOverlay()
	case ModeAdd, ModeConfirmDelete, ModeTagSelect:
		return a.renderModal()
	}

	header := a.renderHeader()
	list := a.renderList()
	helpBar := a.renderHelpBar()

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, list, helpBar),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderLoading renders the placeholder shown until the store is loaded,
// or the load error if loading failed.
func (a App) renderLoading() string {
	var content strings.Builder

	if a.state.LoadErr == nil {
		content.WriteString("Loading...")
	} else {
		content.WriteString(a.styles.NoticeError.Render("Could not load bookmarks") + "\n\n")
		content.WriteString(a.state.LoadErr.Error() + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{{Key: "q", Desc: "quit"}}))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top,
		a.styles.App.Render(content.String()))
}

// renderHeader renders the title line and the query status line.
func (a App) renderHeader() string {
	visible := a.state.Visible()
	total := a.state.Collection.Len()

	title := a.styles.Title.Render("reservoir") + " " +
		a.styles.Header.Render(fmt.Sprintf("%d/%d", len(visible), total))

	var status strings.Builder
	if a.mode == ModeSearch {
		status.WriteString(a.search.Input.View())
	} else if a.state.Query.Active() {
		status.WriteString(a.styles.Tag.Render("/" + *a.state.Query.Text))
	} else {
		status.WriteString(a.styles.Header.Render("/ to search"))
	}
	status.WriteString("  ")
	status.WriteString(a.styles.Header.Render(fmt.Sprintf("[in:%s] [sort:%s]",
		a.state.Query.Field, a.state.Query.Sort)))

	return title + "\n" + status.String()
}

// renderList renders the visible bookmarks inside the list border.
func (a App) renderList() string {
	height := layout.CalculateListHeight(a.height, a.layoutConfig.List)
	width := layout.CalculateRowWidth(a.width, a.layoutConfig.List)
	listStyle := a.styles.List.Width(width + 2).Height(height)

	visible := a.state.Visible()
	if len(visible) == 0 {
		empty := "(no bookmarks, press a to add one)"
		if a.state.Query.Active() {
			empty = "(no matches)"
		}
		return listStyle.Render(a.styles.Empty.Render(empty))
	}

	heights := make([]int, len(visible))
	for i, b := range visible {
		heights[i] = a.rowHeight(b)
	}
	start, end := layout.CalculateWindow(heights, a.cursor, height)

	var content strings.Builder
	for i := start; i < end; i++ {
		content.WriteString(a.renderRow(visible[i], i == a.cursor, width) + "\n")
	}

	return listStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// rowHeight returns the number of lines renderRow produces for b.
func (a App) rowHeight(b *model.Bookmark) int {
	switch {
	case a.isEditRow(b):
		return 1 + len(session.Fields)
	case a.state.Session.IsExpanded(b.ID):
		return 1 + len(a.details(b))
	default:
		return 1
	}
}

// isEditRow reports whether b is shown as the inline editor.
func (a App) isEditRow(b *model.Bookmark) bool {
	return a.mode == ModeEdit && a.editForm.ID == b.ID && a.state.Session.IsEditing(b.ID)
}

// detailLine is one line of an expanded row.
type detailLine struct {
	text  string
	style lipgloss.Style
}

// details returns the lines shown below the title of an expanded row.
func (a App) details(b *model.Bookmark) []detailLine {
	lines := []detailLine{{text: b.Link, style: a.styles.URL}}
	if len(b.Tags) > 0 {
		lines = append(lines, detailLine{text: formatTags(b.Tags), style: a.styles.Tag})
	}
	if b.Note != nil {
		lines = append(lines, detailLine{text: *b.Note, style: a.styles.Note})
	}
	lines = append(lines, detailLine{
		text:  "Added " + b.CreatedAt().Local().Format(dateFormat),
		style: a.styles.Date,
	})
	return lines
}

func (a App) renderRow(b *model.Bookmark, isCursor bool, width int) string {
	if a.isEditRow(b) {
		return a.renderEditRow(b, isCursor, width)
	}

	marker := "▸ "
	if a.state.Session.IsExpanded(b.ID) {
		marker = "▾ "
	}

	titleWidth := width - len([]rune(marker))
	title, _ := layout.TruncateText(b.Title, titleWidth, a.layoutConfig.Text)
	line := marker + title

	if !a.state.Session.IsExpanded(b.ID) {
		// Compact rows show the link after the title when there is room
		remaining := width - layout.VisibleLength(line) - 2
		if remaining > 8 {
			link, _ := layout.TruncateText(b.Link, remaining, a.layoutConfig.Text)
			line += "  " + a.styles.URL.Render(link)
		}
	}

	var row string
	if isCursor {
		row = a.styles.ItemSelected.Render(layout.PadRight(layout.StripANSI(line), width))
	} else {
		row = a.styles.Item.Render(line)
	}

	if !a.state.Session.IsExpanded(b.ID) {
		return row
	}

	lines := []string{row}
	detailWidth := width - 4
	for _, d := range a.details(b) {
		text, _ := layout.TruncateText(d.text, detailWidth, a.layoutConfig.Text)
		lines = append(lines, a.styles.Detail.Render(d.style.Render(text)))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderEditRow(b *model.Bookmark, isCursor bool, width int) string {
	// Preview the typed title; an empty one keeps the stored title on commit
	preview := a.state.Session.PendingOr(b.ID, session.FieldTitle, b.Title)
	if preview == "" {
		preview = b.Title
	}
	title, _ := layout.TruncateText("✎ "+preview, width, a.layoutConfig.Text)
	header := a.styles.Item.Render(title)
	if isCursor {
		header = a.styles.ItemSelected.Render(layout.PadRight(title, width))
	}

	lines := []string{header}
	for i, field := range session.Fields {
		label := a.styles.Label
		if i == a.editForm.Focus {
			label = a.styles.LabelFocused
		}
		lines = append(lines, a.styles.Detail.Render(
			label.Render(fmt.Sprintf("%-10s", field.String()+":"))+a.editForm.Inputs[i].View(),
		))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderModal() string {
	var title, content strings.Builder

	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := a.styles.Modal.Width(modalWidth)

	switch a.mode {
	case ModeAdd:
		title.WriteString("Add Bookmark\n\n")
		labels := []string{"Title:", "Link:", "Note:", "Tags (comma-separated):"}
		for i, input := range a.addForm.Inputs {
			label := a.styles.Label
			if i == a.addForm.Focus {
				label = a.styles.LabelFocused
			}
			content.WriteString(label.Render(labels[i]) + "\n")
			content.WriteString(input.View())
			if i < len(a.addForm.Inputs)-1 {
				content.WriteString("\n\n")
			}
		}

	case ModeConfirmDelete:
		title.WriteString("Delete bookmark?\n\n")
		if b := a.state.Collection.Get(a.deleteID); b != nil {
			content.WriteString(b.Title + "\n")
			content.WriteString(a.styles.URL.Render(b.Link) + "\n\n")
		}
		content.WriteString(a.styles.Help.Render("This action cannot be undone.") + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "y/Enter", Desc: "confirm"},
			{Key: "Esc", Desc: "cancel"},
		}))

	case ModeTagSelect:
		title.WriteString("Filter by tag\n\n")
		for i, tag := range a.tags.Tags {
			if i == a.tags.Cursor {
				content.WriteString(a.styles.ItemSelected.Render("▸ " + tag))
			} else {
				content.WriteString(a.styles.Item.Render("  " + tag))
			}
			content.WriteString("\n")
		}
	}

	modalContent := a.styles.Title.Render(title.String()) + strings.TrimRight(content.String(), "\n")

	// Place modal in center, then add help bar at bottom
	modal := lipgloss.Place(
		a.width,
		a.height-3, // Leave room for help bar
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(modalContent),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHelpBar())
}

func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR notice (notice replaces the gap)
	if a.state.Notice != nil {
		lines = append(lines, a.renderNoticeLine())
	} else {
		lines = append(lines, "")
	}

	// Line 2: keyboard hints
	if hints := a.renderHints(a.getContextualHints().All()); hints != "" {
		lines = append(lines, hints)
	}

	return strings.Join(lines, "\n")
}

// renderNoticeLine renders the notice with a prefix icon based on type.
func (a App) renderNoticeLine() string {
	n := a.state.Notice
	if n.Error {
		return a.styles.NoticeError.Render("✗ " + n.Text)
	}
	return a.styles.Notice.Render("✓ " + n.Text)
}

func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().Padding(1, 2)

	sections := []struct {
		name     string
		bindings []key.Binding
	}{
		{"nav", []key.Binding{a.keys.Up, a.keys.Down, a.keys.Top, a.keys.Bottom}},
		{"view", []key.Binding{a.keys.Expand, a.keys.ExpandAll, a.keys.CollapseAll,
			a.keys.Search, a.keys.ClearSearch, a.keys.Field, a.keys.Sort, a.keys.TagFilter}},
		{"act", []key.Binding{a.keys.Add, a.keys.Edit, a.keys.Delete, a.keys.Open,
			a.keys.YankURL, a.keys.Export}},
	}

	keyCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpKeyColumnWidth)

	var b strings.Builder
	for _, s := range sections {
		b.WriteString(a.styles.Title.Render(s.name) + "\n")
		for _, binding := range s.bindings {
			h := binding.Help()
			b.WriteString(keyCol.Render(h.Key) + h.Desc + "\n")
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[?/esc] close  [q] quit"))

	// Top-left aligned, brutalist style
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(b.String()),
	)
}

func formatTags(tags []string) string {
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = "#" + tag
	}
	return strings.Join(parts, " ")
}
