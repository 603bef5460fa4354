// Package picker is a small standalone TUI for choosing one bookmark
// from fuzzy search results.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/reservoir/internal/model"
	"github.com/nikbrunner/reservoir/internal/search"
	"github.com/nikbrunner/reservoir/internal/tui/layout"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Underline(true)

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up", "ctrl+p")),
	Down:   key.NewBinding(key.WithKeys("j", "down", "ctrl+n")),
	Select: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// linesPerResult is the number of lines each result takes in the list.
const linesPerResult = 2

// Picker is a simple TUI for selecting from search results.
type Picker struct {
	results   []search.SearchResult
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a new Picker with the given search results.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			p.cancelled = true
			return p, tea.Quit

		case key.Matches(msg, keys.Select):
			if len(p.results) == 0 {
				p.cancelled = true
			} else {
				p.selected = true
			}
			return p, tea.Quit

		case key.Matches(msg, keys.Down):
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}

		case key.Matches(msg, keys.Up):
			if p.cursor > 0 {
				p.cursor--
			}
		}
	}

	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	if len(p.results) == 0 {
		b.WriteString(normalStyle.Render("  No matches"))
		b.WriteString("\n")
	}

	// Header (3 lines) and footer (2 lines) stay visible
	heights := make([]int, len(p.results))
	for i := range heights {
		heights[i] = linesPerResult
	}
	start, end := layout.CalculateWindow(heights, p.cursor, p.height-5)

	maxWidth := p.width - 4
	for i := start; i < end; i++ {
		result := p.results[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		link, _ := layout.TruncateText(result.Bookmark.Link, maxWidth, layout.TextConfig{Ellipsis: "..."})

		b.WriteString(cursor + highlight(result, style) + "\n")
		b.WriteString("   " + linkStyle.Render(link) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("j/k: move  Enter: open  q/Esc: cancel"))

	return b.String()
}

// highlight renders the title with the fuzzy-matched characters marked.
func highlight(result search.SearchResult, style lipgloss.Style) string {
	matched := make(map[int]bool, len(result.MatchedIndexes))
	for _, idx := range result.MatchedIndexes {
		matched[idx] = true
	}

	var b strings.Builder
	// MatchedIndexes are byte offsets into the title
	for i, r := range result.Bookmark.Title {
		if matched[i] {
			b.WriteString(matchStyle.Inherit(style).Render(string(r)))
		} else {
			b.WriteString(style.Render(string(r)))
		}
	}
	return b.String()
}

// SelectedBookmark returns the selected bookmark, or nil if cancelled.
func (p Picker) SelectedBookmark() *model.Bookmark {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.results) {
		return p.results[p.cursor].Bookmark
	}
	return nil
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
