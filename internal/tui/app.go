package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/reservoir/internal/app"
	"github.com/nikbrunner/reservoir/internal/logger"
	"github.com/nikbrunner/reservoir/internal/model"
	"github.com/nikbrunner/reservoir/internal/search"
	"github.com/nikbrunner/reservoir/internal/storage"
	"github.com/nikbrunner/reservoir/internal/sys"
	"github.com/nikbrunner/reservoir/internal/tui/layout"
)

// DefaultNoticeTimeout is how long transient notices stay visible.
const DefaultNoticeTimeout = 3 * time.Second

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeAdd
	ModeEdit
	ModeConfirmDelete
	ModeTagSelect
	ModeHelp
)

// Messages produced by background commands.
type (
	loadedMsg struct {
		collection *model.Collection
		err        error
	}
	saveDoneMsg struct{ err error }
	exportDoneMsg struct {
		path string
		err  error
	}
	clearNoticeMsg struct{ seq uint64 }
	linkOpenedMsg  struct {
		link string
		err  error
	}
	yankDoneMsg struct {
		link string
		err  error
	}
)

// App is the main bubbletea model for the bookmark manager.
type App struct {
	state        *app.State
	store        storage.Storage
	log          logger.Logger
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	exportDir     string
	noticeTimeout time.Duration

	mode   Mode
	cursor int

	// For gg command
	lastKeyWasG bool

	addForm  AddFormState
	editForm EditFormState
	search   SearchState
	tags     TagSelectState
	deleteID string

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Storage       storage.Storage
	Logger        logger.Logger // optional, discards logs if nil
	Query         search.Query  // initial filter field and sort
	ExportDir     string
	NoticeTimeout time.Duration        // optional, DefaultNoticeTimeout if zero
	Keys          *KeyMap              // optional, uses default if nil
	Styles        *Styles              // optional, uses default if nil
	LayoutConfig  *layout.LayoutConfig // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
// The collection is loaded by the command returned from Init.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	log := params.Logger
	if log == nil {
		log = logger.Nop()
	}

	timeout := params.NoticeTimeout
	if timeout <= 0 {
		timeout = DefaultNoticeTimeout
	}

	return App{
		state:         app.NewState(params.Query),
		store:         params.Storage,
		log:           log,
		keys:          keys,
		styles:        styles,
		layoutConfig:  layoutCfg,
		exportDir:     params.ExportDir,
		noticeTimeout: timeout,
		mode:          ModeNormal,
		addForm:       NewAddFormState(layoutCfg),
		search:        NewSearchState(layoutCfg),
		width:         80,
		height:        24,
	}
}

// WithDimensions returns a copy of the app with the given terminal size.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// State returns the underlying view state.
func (a App) State() *app.State {
	return a.state
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	return a.mode
}

// Cursor returns the current cursor position in the visible list.
func (a App) Cursor() int {
	return a.cursor
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return loadCmd(a.store)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case loadedMsg:
		if msg.err != nil {
			a.log.Error("loading bookmarks", logger.String("path", a.store.Path()), logger.Err(msg.err))
		} else {
			a.log.Info("bookmarks loaded", logger.String("path", a.store.Path()), logger.Int("count", msg.collection.Len()))
		}
		return a, a.apply(app.Loaded{Collection: msg.collection, Err: msg.err})

	case saveDoneMsg:
		if msg.err != nil {
			a.log.Error("saving bookmarks", logger.String("path", a.store.Path()), logger.Err(msg.err))
		}
		return a, a.apply(app.SaveDone{Err: msg.err})

	case exportDoneMsg:
		if msg.err != nil {
			a.log.Error("exporting bookmarks", logger.String("dir", a.exportDir), logger.Err(msg.err))
		} else {
			a.log.Info("bookmarks exported", logger.String("path", msg.path))
		}
		return a, a.apply(app.ExportDone{Path: msg.path, Err: msg.err})

	case clearNoticeMsg:
		return a, a.apply(app.ClearNotice{Seq: msg.seq})

	case linkOpenedMsg:
		if msg.err != nil {
			a.log.Warn("opening link", logger.String("link", msg.link), logger.Err(msg.err))
			return a, a.apply(app.ShowNotice{Text: "Could not open " + msg.link, Error: true})
		}
		return a, nil

	case yankDoneMsg:
		if msg.err != nil {
			a.log.Warn("copying link", logger.String("link", msg.link), logger.Err(msg.err))
			return a, a.apply(app.ShowNotice{Text: "Could not copy link", Error: true})
		}
		return a, a.apply(app.ShowNotice{Text: "Copied " + model.ExternalLink(msg.link)})

	case tea.KeyMsg:
		if !a.state.Loaded {
			if key.Matches(msg, a.keys.Quit) {
				return a, tea.Quit
			}
			return a, nil
		}

		switch a.mode {
		case ModeSearch:
			return a.updateSearch(msg)
		case ModeAdd:
			return a.updateAdd(msg)
		case ModeEdit:
			return a.updateEdit(msg)
		case ModeConfirmDelete:
			return a.updateConfirmDelete(msg)
		case ModeTagSelect:
			return a.updateTagSelect(msg)
		case ModeHelp:
			if key.Matches(msg, a.keys.Help, a.keys.Quit, a.keys.Cancel) {
				a.mode = ModeNormal
			}
			return a, nil
		default:
			return a.updateNormal(msg)
		}
	}

	// Cursor blink and other input messages
	return a.updateFocusedInput(msg)
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	visible := a.state.Visible()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if a.cursor < len(visible)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(visible) > 0 {
			a.cursor = len(visible) - 1
		}

	case key.Matches(msg, a.keys.Expand):
		if b := a.current(); b != nil {
			return a, a.apply(app.ToggleExpand{ID: b.ID})
		}

	case key.Matches(msg, a.keys.ExpandAll):
		return a, a.apply(app.ExpandAll{})

	case key.Matches(msg, a.keys.CollapseAll):
		return a, a.apply(app.CollapseAll{})

	case key.Matches(msg, a.keys.Add):
		a.mode = ModeAdd
		focusInput(a.addForm.Inputs, a.addForm.Focus)
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Edit):
		b := a.current()
		if b == nil {
			return a, nil
		}
		cmd := a.apply(app.BeginEdit{ID: b.ID})
		a.editForm = NewEditFormState(a.layoutConfig, b)
		focusInput(a.editForm.Inputs, 0)
		a.mode = ModeEdit
		return a, tea.Batch(cmd, textinput.Blink)

	case key.Matches(msg, a.keys.Delete):
		if b := a.current(); b != nil {
			a.deleteID = b.ID
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.Open):
		if b := a.current(); b != nil {
			return a, a.apply(app.OpenLink{ID: b.ID})
		}

	case key.Matches(msg, a.keys.YankURL):
		if b := a.current(); b != nil {
			return a, yankCmd(b.Link)
		}

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.search.Input.SetValue(a.state.Form.Search)
		a.search.Input.CursorEnd()
		a.search.Input.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.ClearSearch):
		if a.state.Query.Active() {
			a.search.Input.Reset()
			return a, a.apply(app.SetFilterText{Text: ""})
		}

	case key.Matches(msg, a.keys.Field):
		return a, a.apply(app.SetFilterField{Field: a.state.Query.Field.Next()})

	case key.Matches(msg, a.keys.Sort):
		return a, a.apply(app.SetSort{Sort: a.state.Query.Sort.Next()})

	case key.Matches(msg, a.keys.TagFilter):
		b := a.current()
		if b == nil || len(b.Tags) == 0 {
			return a, nil
		}
		if len(b.Tags) == 1 {
			return a, a.tagPress(b.Tags[0])
		}
		a.tags = TagSelectState{Tags: append([]string(nil), b.Tags...)}
		a.mode = ModeTagSelect

	case key.Matches(msg, a.keys.Export):
		return a, a.apply(app.Export{})

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
		a.search.Input.Blur()
		a.search.Input.Reset()
		return a, a.apply(app.SetFilterText{Text: ""})

	case key.Matches(msg, a.keys.Submit):
		a.mode = ModeNormal
		a.search.Input.Blur()
		return a, nil
	}

	before := a.search.Input.Value()
	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	if value := a.search.Input.Value(); value != before {
		a.cursor = 0
		return a, tea.Batch(cmd, a.apply(app.SetFilterText{Text: value}))
	}
	return a, cmd
}

func (a App) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel):
		// Typed values stay in the form for the next attempt
		a.mode = ModeNormal
		focusInput(a.addForm.Inputs, -1)
		return a, nil

	case key.Matches(msg, a.keys.Submit):
		eff := a.state.Apply(app.SubmitAdd{})
		if eff.Save == nil {
			// Rejected: missing title or link, or link already stored
			return a, nil
		}
		a.addForm.Reset()
		focusInput(a.addForm.Inputs, -1)
		a.mode = ModeNormal
		a.clampCursor()
		return a, a.runEffect(eff)

	case key.Matches(msg, a.keys.NextInput):
		a.addForm.Focus = (a.addForm.Focus + 1) % len(a.addForm.Inputs)
		focusInput(a.addForm.Inputs, a.addForm.Focus)
		return a, nil

	case key.Matches(msg, a.keys.PrevInput):
		a.addForm.Focus = (a.addForm.Focus - 1 + len(a.addForm.Inputs)) % len(a.addForm.Inputs)
		focusInput(a.addForm.Inputs, a.addForm.Focus)
		return a, nil
	}

	idx := a.addForm.Focus
	before := a.addForm.Inputs[idx].Value()
	var cmd tea.Cmd
	a.addForm.Inputs[idx], cmd = a.addForm.Inputs[idx].Update(msg)
	if value := a.addForm.Inputs[idx].Value(); value != before {
		return a, tea.Batch(cmd, a.apply(app.SetFormField{Field: a.addForm.Field(), Value: value}))
	}
	return a, cmd
}

func (a App) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := a.editForm.ID

	switch {
	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
		return a, a.apply(app.CancelEdit{ID: id})

	case key.Matches(msg, a.keys.Submit):
		a.mode = ModeNormal
		return a, a.apply(app.CommitEdit{ID: id})

	case key.Matches(msg, a.keys.NextInput):
		a.editForm.Focus = (a.editForm.Focus + 1) % len(a.editForm.Inputs)
		focusInput(a.editForm.Inputs, a.editForm.Focus)
		return a, nil

	case key.Matches(msg, a.keys.PrevInput):
		a.editForm.Focus = (a.editForm.Focus - 1 + len(a.editForm.Inputs)) % len(a.editForm.Inputs)
		focusInput(a.editForm.Inputs, a.editForm.Focus)
		return a, nil
	}

	idx := a.editForm.Focus
	before := a.editForm.Inputs[idx].Value()
	var cmd tea.Cmd
	a.editForm.Inputs[idx], cmd = a.editForm.Inputs[idx].Update(msg)
	if value := a.editForm.Inputs[idx].Value(); value != before {
		return a, tea.Batch(cmd, a.apply(app.SetEditField{ID: id, Field: a.editForm.Field(), Value: value}))
	}
	return a, cmd
}

func (a App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := a.deleteID
	a.deleteID = ""
	a.mode = ModeNormal

	if key.Matches(msg, a.keys.Confirm) {
		return a, a.apply(app.Delete{ID: id})
	}
	return a, nil
}

func (a App) updateTagSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Cancel, a.keys.Quit):
		a.mode = ModeNormal

	case key.Matches(msg, a.keys.Down):
		if a.tags.Cursor < len(a.tags.Tags)-1 {
			a.tags.Cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.tags.Cursor > 0 {
			a.tags.Cursor--
		}

	case key.Matches(msg, a.keys.Submit):
		a.mode = ModeNormal
		return a, a.tagPress(a.tags.Tags[a.tags.Cursor])
	}
	return a, nil
}

// updateFocusedInput forwards non-key messages to the active text input.
func (a App) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.mode {
	case ModeSearch:
		a.search.Input, cmd = a.search.Input.Update(msg)
	case ModeAdd:
		idx := a.addForm.Focus
		a.addForm.Inputs[idx], cmd = a.addForm.Inputs[idx].Update(msg)
	case ModeEdit:
		idx := a.editForm.Focus
		a.editForm.Inputs[idx], cmd = a.editForm.Inputs[idx].Update(msg)
	}
	return a, cmd
}

func (a *App) tagPress(tag string) tea.Cmd {
	a.search.Input.SetValue(tag)
	a.cursor = 0
	return a.apply(app.TagPress{Tag: tag})
}

// current returns the bookmark under the cursor, or nil.
func (a App) current() *model.Bookmark {
	visible := a.state.Visible()
	if a.cursor < 0 || a.cursor >= len(visible) {
		return nil
	}
	return visible[a.cursor]
}

// apply runs an intent through the state and turns its effect into commands.
func (a *App) apply(in app.Intent) tea.Cmd {
	eff := a.state.Apply(in)
	a.clampCursor()
	return a.runEffect(eff)
}

func (a *App) clampCursor() {
	n := len(a.state.Visible())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

func (a *App) runEffect(eff app.Effect) tea.Cmd {
	var cmds []tea.Cmd
	if eff.Save != nil {
		cmds = append(cmds, saveCmd(a.store, eff.Save))
	}
	if eff.Export != nil {
		cmds = append(cmds, exportCmd(eff.Export, a.exportDir))
	}
	if eff.OpenLink != "" {
		cmds = append(cmds, openLinkCmd(eff.OpenLink))
	}
	if eff.ClearNoticeAfter != 0 {
		cmds = append(cmds, clearNoticeCmd(eff.ClearNoticeAfter, a.noticeTimeout))
	}
	return tea.Batch(cmds...)
}

func loadCmd(store storage.Storage) tea.Cmd {
	return func() tea.Msg {
		c, err := store.Load()
		return loadedMsg{collection: c, err: err}
	}
}

// saveCmd writes a snapshot; the live collection may change meanwhile.
func saveCmd(store storage.Storage, snapshot *model.Collection) tea.Cmd {
	return func() tea.Msg {
		return saveDoneMsg{err: store.Save(snapshot)}
	}
}

func exportCmd(snapshot *model.Collection, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := storage.Export(snapshot, dir, time.Now())
		return exportDoneMsg{path: path, err: err}
	}
}

func openLinkCmd(link string) tea.Cmd {
	return func() tea.Msg {
		return linkOpenedMsg{link: link, err: sys.OpenLink(link)}
	}
}

func yankCmd(link string) tea.Cmd {
	return func() tea.Msg {
		return yankDoneMsg{link: link, err: sys.CopyLink(link)}
	}
}

func clearNoticeCmd(seq uint64, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		return clearNoticeMsg{seq: seq}
	})
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
