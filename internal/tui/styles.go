package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	List         lipgloss.Style
	Modal        lipgloss.Style
	Title        lipgloss.Style
	Header       lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Detail       lipgloss.Style // Indented lines of an expanded row
	URL          lipgloss.Style
	Tag          lipgloss.Style
	Note         lipgloss.Style
	Date         lipgloss.Style
	Label        lipgloss.Style
	LabelFocused lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	Notice       lipgloss.Style
	NoticeError  lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "save", "move")
	HintLabel    lipgloss.Style // Row label in the help bar
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	danger := lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		List: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Header: lipgloss.NewStyle().
			Foreground(subtle),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Detail: lipgloss.NewStyle().
			PaddingLeft(4),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Tag: lipgloss.NewStyle().
			Foreground(accent),

		Note: lipgloss.NewStyle().
			Foreground(primary).
			Italic(true),

		Date: lipgloss.NewStyle().
			Foreground(subtle),

		Label: lipgloss.NewStyle().
			Foreground(subtle),

		LabelFocused: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Notice: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		NoticeError: lipgloss.NewStyle().
			Foreground(danger).
			Bold(true),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		HintLabel: lipgloss.NewStyle().
			Foreground(border),
	}
}
