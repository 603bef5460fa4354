package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	List  ListConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// ListConfig holds bookmark list dimension configuration.
type ListConfig struct {
	// HeightReduction is subtracted from terminal height for list rows.
	// Accounts for: app padding (1) + header (2) + list border (2) + help bar (3) = 8
	HeightReduction int

	// MinHeight is the minimum list height.
	MinHeight int

	// ContentPadding is subtracted from terminal width for row rendering.
	// Accounts for app padding, list border and row indent.
	ContentPadding int

	// MinWidth is the minimum row width.
	MinWidth int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// HelpKeyColumnWidth: width of the key column in the help overlay.
	HelpKeyColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	TitleCharLimit  int
	LinkCharLimit   int
	NoteCharLimit   int
	TagsCharLimit   int
	SearchCharLimit int

	StandardWidth int // add form and edit form inputs
	SearchWidth   int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		List: ListConfig{
			HeightReduction: 8,
			MinHeight:       5,
			ContentPadding:  8,
			MinWidth:        20,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 50,
			MinWidth:            50,
			MaxWidth:            80,
			HelpKeyColumnWidth:  14,
		},
		Input: InputConfig{
			TitleCharLimit:  200,
			LinkCharLimit:   2000,
			NoteCharLimit:   1000,
			TagsCharLimit:   300,
			SearchCharLimit: 100,
			StandardWidth:   50,
			SearchWidth:     30,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
