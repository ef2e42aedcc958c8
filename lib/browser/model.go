// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package browser

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/playbook/lib/catalogue"
	"github.com/bureau-foundation/playbook/lib/exporter"
	"github.com/bureau-foundation/playbook/lib/session"
	"github.com/bureau-foundation/playbook/lib/tui"
)

// FocusRegion identifies which part of the screen receives keys.
type FocusRegion int

const (
	FocusList FocusRegion = iota
	FocusDetail
	FocusQuery
)

func (region FocusRegion) String() string {
	switch region {
	case FocusDetail:
		return "DETAIL"
	case FocusQuery:
		return "SEARCH"
	default:
		return "LIST"
	}
}

// Defaults applied when Options leaves a duration at zero. A negative
// Debounce disables debouncing.
const (
	defaultDebounce       = 150 * time.Millisecond
	defaultNoticeDuration = 3 * time.Second
)

// Options configures a Model.
type Options struct {
	Theme tui.Theme

	// Debounce is how long query edits wait for more typing before the
	// query is applied.
	Debounce time.Duration

	// NoticeDuration is how long a status notice stays visible.
	NoticeDuration time.Duration

	// Provenance labels prompt exports ("tasks.json", "built-in
	// catalogue").
	Provenance string

	// Exports receives task, catalogue and prompt exports. Nil
	// disables the export keys.
	Exports *exporter.DirectorySink

	// PreferencesFile is where theme changes are saved. Empty disables
	// saving.
	PreferencesFile string

	// Updates delivers reloads from catalogue.Watch. Nil when the
	// catalogue is not watched.
	Updates <-chan catalogue.Update

	// LoadNotice is shown at startup when the catalogue failed to load
	// and the built-in one was substituted.
	LoadNotice error

	// Clipboard copies prompts. Defaults to [TerminalClipboard].
	Clipboard Clipboard

	Logger *slog.Logger
}

// viewBuffer is the session's view sink. The session renders into it
// after every transition and the model draws from it. It is shared by
// every copy of the Model.
type viewBuffer struct {
	view session.View
}

func (buffer *viewBuffer) Render(view session.View) {
	buffer.view = view
}

// rowIdentity names a row independently of its index, so the cursor
// can follow it across rebuilds.
type rowIdentity struct {
	category string
	task     string
}

func identityOf(row session.Row) rowIdentity {
	return rowIdentity{category: row.Category, task: row.Task}
}

// Messages.
type (
	// queryDebounceMsg fires after a query edit. Only the newest
	// sequence applies the query.
	queryDebounceMsg struct{ sequence int }

	// noticeFadeMsg clears the notice it was scheduled for.
	noticeFadeMsg struct{ sequence int }

	// catalogueUpdateMsg carries one watcher result.
	catalogueUpdateMsg struct{ update catalogue.Update }

	// preferencesSavedMsg reports the outcome of saving the theme.
	preferencesSavedMsg struct {
		theme string
		err   error
	}
)

// Model is the bubbletea model of the browser.
type Model struct {
	session *session.Session
	views   *viewBuffer
	options Options
	logger  *slog.Logger

	theme tui.Theme
	keys  KeyMap

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	focus      FocusRegion
	priorFocus FocusRegion

	// queryInput is the query as typed. It reaches the session when
	// the debounce for querySequence fires.
	queryInput    string
	querySequence int

	// List cursor over the view's rows. cursorRow follows the row the
	// cursor is on so rebuilds keep it in place.
	cursor       int
	cursorRow    rowIdentity
	scrollOffset int

	detailPane DetailPane

	notice         string
	noticeFailure  bool
	noticeSequence int
}

// NewModel creates a browser over loaded.
func NewModel(loaded *catalogue.Catalogue, options Options) (Model, error) {
	browsing, err := session.New(loaded)
	if err != nil {
		return Model{}, err
	}
	if options.Theme.Name == "" {
		options.Theme = tui.DarkTheme
	}
	if options.Debounce == 0 {
		options.Debounce = defaultDebounce
	}
	if options.NoticeDuration <= 0 {
		options.NoticeDuration = defaultNoticeDuration
	}
	if options.Clipboard == nil {
		options.Clipboard = TerminalClipboard
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	model := Model{
		session:    browsing,
		views:      &viewBuffer{},
		options:    options,
		logger:     logger,
		theme:      options.Theme,
		keys:       DefaultKeyMap,
		detailPane: NewDetailPane(options.Theme),
	}
	browsing.SetViewSink(model.views)

	// Land the cursor on the initially selected task.
	if selected := model.views.view.SelectedRow; selected >= 0 {
		model.cursor = selected
	}
	model.syncRows()

	if options.LoadNotice != nil {
		model.notice = "Using built-in catalogue: " + options.LoadNotice.Error()
		model.noticeFailure = true
		model.noticeSequence = 1
	}
	return model, nil
}

// Session returns the session the model drives.
func (model Model) Session() *session.Session {
	return model.session
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	var commands []tea.Cmd
	if model.options.Updates != nil {
		commands = append(commands, listenForUpdate(model.options.Updates))
	}
	if model.notice != "" {
		commands = append(commands, model.fadeNotice())
	}
	return tea.Batch(commands...)
}

// listenForUpdate blocks until the watcher delivers an update. A closed
// channel ends listening.
func listenForUpdate(updates <-chan catalogue.Update) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return nil
		}
		return catalogueUpdateMsg{update: update}
	}
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if model.focus == FocusQuery {
			return model.handleQueryKeys(message)
		}
		return model.handleKeys(message)

	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.updatePaneSizes()
		model.ensureCursorVisible()

	case queryDebounceMsg:
		if message.sequence == model.querySequence {
			model.applyQuery()
		}

	case noticeFadeMsg:
		if message.sequence == model.noticeSequence {
			model.notice = ""
			model.noticeFailure = false
		}

	case catalogueUpdateMsg:
		command := model.handleCatalogueUpdate(message.update)
		if model.options.Updates != nil {
			command = tea.Batch(command, listenForUpdate(model.options.Updates))
		}
		return model, command

	case clipboardResultMsg:
		if message.Err != nil {
			return model, model.setNotice("Copy failed: "+message.Err.Error(), true)
		}
		return model, model.setNotice("Copied "+message.Label, false)

	case preferencesSavedMsg:
		if message.err != nil {
			return model, model.setNotice("Saving theme failed: "+message.err.Error(), true)
		}

	case logRecordMsg:
		return model, model.setNotice(message.Summary, message.Level >= slog.LevelWarn)
	}
	return model, nil
}

func (model Model) handleKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.FocusToggle):
		if model.focus == FocusList {
			model.focus = FocusDetail
		} else {
			model.focus = FocusList
		}

	case key.Matches(message, model.keys.Search):
		model.priorFocus = model.focus
		model.focus = FocusQuery

	case key.Matches(message, model.keys.ClearSearch):
		if model.queryInput != "" {
			model.queryInput = ""
			model.applyQuery()
		} else if model.focus == FocusDetail {
			model.focus = FocusList
		}

	case key.Matches(message, model.keys.CopyPrompt):
		return model, model.copyPrompt()

	case key.Matches(message, model.keys.ExportTask):
		return model, model.export(session.TaskJSON)

	case key.Matches(message, model.keys.ExportCatalogue):
		return model, model.export(session.CatalogueJSON)

	case key.Matches(message, model.keys.ExportPrompt):
		return model, model.export(session.PromptText)

	case key.Matches(message, model.keys.ToggleTheme):
		return model, model.toggleTheme()

	default:
		if model.focus == FocusDetail {
			model.handleDetailKeys(message)
		} else {
			model.handleListKeys(message)
		}
	}
	return model, nil
}

// handleQueryKeys edits the query. Printable keys (including the ones
// bound to commands elsewhere) are typed; ctrl+c still quits.
func (model Model) handleQueryKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		return model, tea.Quit

	case message.Type == tea.KeyEscape:
		if model.queryInput != "" {
			model.queryInput = ""
			model.applyQuery()
		} else {
			model.focus = model.priorFocus
		}
		return model, nil

	case message.Type == tea.KeyEnter:
		model.applyQuery()
		model.focus = FocusList
		return model, nil

	case message.Type == tea.KeyBackspace:
		runes := []rune(model.queryInput)
		if len(runes) == 0 {
			return model, nil
		}
		model.queryInput = string(runes[:len(runes)-1])
		return model, model.scheduleQuery()

	case message.Type == tea.KeyRunes || message.Type == tea.KeySpace:
		if message.Type == tea.KeySpace {
			model.queryInput += " "
		} else {
			model.queryInput += string(message.Runes)
		}
		return model, model.scheduleQuery()
	}
	return model, nil
}

// scheduleQuery debounces a query edit: each edit bumps the sequence,
// and only the tick carrying the latest sequence applies the query.
func (model *Model) scheduleQuery() tea.Cmd {
	model.querySequence++
	if model.options.Debounce < 0 {
		model.applyQuery()
		return nil
	}
	sequence := model.querySequence
	return tea.Tick(model.options.Debounce, func(time.Time) tea.Msg {
		return queryDebounceMsg{sequence: sequence}
	})
}

// applyQuery hands the typed query to the session. Pending debounce
// ticks become stale.
func (model *Model) applyQuery() {
	model.querySequence++
	if model.session.State().Query == strings.TrimSpace(model.queryInput) {
		return
	}
	model.dispatch(session.SetQueryIntent{Query: model.queryInput})
	model.scrollOffset = 0
	model.ensureCursorVisible()
}

// dispatch forwards an intent and resynchronizes the cursor and detail
// pane with the rendered view. Failed intents leave everything as it
// was and surface as a notice-worthy error.
func (model *Model) dispatch(intent session.Intent) error {
	if err := model.session.Dispatch(intent); err != nil {
		model.logger.Debug("intent rejected", "intent", intent, "error", err)
		return err
	}
	model.syncRows()
	return nil
}

func (model *Model) handleCatalogueUpdate(update catalogue.Update) tea.Cmd {
	if update.Err != nil {
		return model.setNotice("Reload failed, keeping previous catalogue: "+update.Err.Error(), true)
	}
	if err := model.session.Reload(update.Catalogue); err != nil {
		return model.setNotice("Reload failed: "+err.Error(), true)
	}
	model.syncRows()
	model.logger.Info("catalogue reloaded",
		"digest", update.Digest.Short(),
		"categories", update.Catalogue.Len(),
	)
	return model.setNotice("Catalogue reloaded ("+update.Digest.Short()+")", false)
}

// setNotice shows message in the status overlay and schedules its
// fade. A newer notice replaces an older one and outlives its fade.
func (model *Model) setNotice(message string, failure bool) tea.Cmd {
	model.notice = message
	model.noticeFailure = failure
	model.noticeSequence++
	return model.fadeNotice()
}

func (model Model) fadeNotice() tea.Cmd {
	sequence := model.noticeSequence
	return tea.Tick(model.options.NoticeDuration, func(time.Time) tea.Msg {
		return noticeFadeMsg{sequence: sequence}
	})
}

func (model *Model) rows() []session.Row {
	return model.views.view.Rows
}

// syncRows repositions the cursor after the view changed. The cursor
// stays on the same row when it survived, then falls back to the
// selected task, then to the header of the category it was in, and
// finally to the nearest index.
func (model *Model) syncRows() {
	rows := model.rows()
	view := model.views.view

	index := -1
	for position, row := range rows {
		if identityOf(row) == model.cursorRow {
			index = position
			break
		}
	}
	if index < 0 && view.SelectedRow >= 0 {
		index = view.SelectedRow
	}
	if index < 0 {
		for position, row := range rows {
			if row.Kind == session.CategoryRow && row.Category == model.cursorRow.category {
				index = position
				break
			}
		}
	}
	if index < 0 {
		index = min(model.cursor, len(rows)-1)
	}

	model.cursor = max(index, 0)
	if model.cursor < len(rows) {
		model.cursorRow = identityOf(rows[model.cursor])
	} else {
		model.cursorRow = rowIdentity{}
	}
	model.ensureCursorVisible()
	model.syncDetailPane()
}

func (model *Model) syncDetailPane() {
	view := model.views.view
	if view.Selection == nil || view.SelectedTask == nil {
		model.detailPane.Clear()
		return
	}
	model.detailPane.Show(*view.Selection, view.SelectedTask)
}

// moveCursor places the cursor on index and selects the task there.
func (model *Model) moveCursor(index int) {
	rows := model.rows()
	if len(rows) == 0 {
		return
	}
	index = min(max(index, 0), len(rows)-1)
	model.cursor = index
	model.cursorRow = identityOf(rows[index])

	row := rows[index]
	if row.Kind == session.TaskRow && !row.Selected {
		model.dispatch(session.SelectTaskIntent{Category: row.Category, Task: row.Task})
	}
	model.ensureCursorVisible()
}

func (model *Model) handleListKeys(message tea.KeyMsg) {
	page := max(model.visibleHeight()/2, 1)

	switch {
	case key.Matches(message, model.keys.Up):
		model.moveCursor(model.cursor - 1)

	case key.Matches(message, model.keys.Down):
		model.moveCursor(model.cursor + 1)

	case key.Matches(message, model.keys.PageUp):
		model.moveCursor(model.cursor - page)

	case key.Matches(message, model.keys.PageDown):
		model.moveCursor(model.cursor + page)

	case key.Matches(message, model.keys.Home):
		model.moveCursor(0)

	case key.Matches(message, model.keys.End):
		model.moveCursor(len(model.rows()) - 1)

	case key.Matches(message, model.keys.Left):
		model.collapseOrGoToHeader()

	case key.Matches(message, model.keys.Right):
		model.expandOrEnterFirstTask()

	case key.Matches(message, model.keys.Toggle):
		rows := model.rows()
		if model.cursor >= len(rows) {
			return
		}
		row := rows[model.cursor]
		if row.Kind == session.CategoryRow {
			model.dispatch(session.ToggleCategoryIntent{Category: row.Category})
		} else {
			model.focus = FocusDetail
		}
	}
}

// collapseOrGoToHeader handles Left: an expanded header collapses, a
// task row moves to its header, a collapsed header stays put.
func (model *Model) collapseOrGoToHeader() {
	rows := model.rows()
	if model.cursor >= len(rows) {
		return
	}
	row := rows[model.cursor]
	if row.Kind == session.CategoryRow {
		if row.Expanded {
			model.dispatch(session.ToggleCategoryIntent{Category: row.Category})
		}
		return
	}
	for index := model.cursor - 1; index >= 0; index-- {
		if rows[index].Kind == session.CategoryRow {
			model.moveCursor(index)
			return
		}
	}
}

// expandOrEnterFirstTask handles Right: a collapsed header expands, an
// expanded header moves to its first task.
func (model *Model) expandOrEnterFirstTask() {
	rows := model.rows()
	if model.cursor >= len(rows) {
		return
	}
	row := rows[model.cursor]
	if row.Kind != session.CategoryRow {
		return
	}
	if !row.Expanded {
		model.dispatch(session.ToggleCategoryIntent{Category: row.Category})
		return
	}
	if model.cursor+1 < len(rows) && rows[model.cursor+1].Kind == session.TaskRow {
		model.moveCursor(model.cursor + 1)
	}
}

func (model *Model) handleDetailKeys(message tea.KeyMsg) {
	switch {
	case key.Matches(message, model.keys.Up):
		model.detailPane.ScrollUp(1)
	case key.Matches(message, model.keys.Down):
		model.detailPane.ScrollDown(1)
	case key.Matches(message, model.keys.PageUp):
		model.detailPane.PageUp()
	case key.Matches(message, model.keys.PageDown):
		model.detailPane.PageDown()
	case key.Matches(message, model.keys.Home):
		model.detailPane.Top()
	case key.Matches(message, model.keys.End):
		model.detailPane.Bottom()
	case key.Matches(message, model.keys.Left):
		model.focus = FocusList
	}
}

// visibleHeight is the number of list rows between the query bar and
// the bottom separator and help line.
func (model Model) visibleHeight() int {
	return max(model.height-3, 0)
}

// listWidth gives the list two fifths of the screen, within limits
// that keep both panes usable.
func (model Model) listWidth() int {
	width := model.width * 2 / 5
	return min(max(width, 24), max(model.width-21, 1))
}

func (model *Model) updatePaneSizes() {
	detailWidth := max(model.width-model.listWidth()-1, 10)
	model.detailPane.SetSize(detailWidth, model.visibleHeight())
}

// ensureCursorVisible scrolls the list so the cursor is on screen.
func (model *Model) ensureCursorVisible() {
	visible := model.visibleHeight()
	if visible <= 0 {
		return
	}
	maxOffset := max(len(model.rows())-visible, 0)
	model.scrollOffset = min(model.scrollOffset, maxOffset)
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
}
