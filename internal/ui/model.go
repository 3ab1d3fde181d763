package ui

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/pick/internal/config"
	"github.com/five82/pick/internal/state"
	"github.com/five82/pick/internal/window"
)

// Options configures the picker.
type Options struct {
	Context   context.Context
	Store     *state.Store
	Lists     []string // display order; items are read from Store
	Active    string   // list opened first; empty opens Lists[0]
	Window    config.Window
	PollTick  time.Duration
	ThemeName string
	Prompt    string
	Logger    *slog.Logger

	// ProgramOptions are appended to the defaults used by Run.
	ProgramOptions []tea.ProgramOption
}

// Result is what the picker returns when it exits.
type Result struct {
	Values    []string
	List      string
	Theme     string
	Cancelled bool
}

// Model is the root Bubble Tea model. Each list gets its own window engine,
// held in a registry so only the active one is open.
type Model struct {
	// Configuration
	ctx      context.Context
	store    *state.Store
	logger   *slog.Logger
	pollTick time.Duration

	// Lists
	lists    []string
	registry *window.Registry[string]
	versions map[string]uint64
	status   map[string]state.Snapshot
	active   string

	rowsPerItem   int
	fixedViewport int

	// UI state
	input    textinput.Model
	help     help.Model
	keys     keyMap
	theme    Theme
	width    int
	height   int
	ready    bool
	showHelp bool

	result Result
	done   bool
}

// New builds the model and one engine per list. It fails when the window
// settings are rejected by the engine.
func New(opts Options) (Model, error) {
	if len(opts.Lists) == 0 {
		return Model{}, fmt.Errorf("no lists to show")
	}

	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}
	prompt := opts.Prompt
	if prompt == "" {
		prompt = "> "
	}

	m := Model{
		ctx:           ctx,
		store:         opts.Store,
		logger:        logger,
		pollTick:      pollTick,
		lists:         slices.Clone(opts.Lists),
		registry:      window.NewRegistry[string](),
		versions:      make(map[string]uint64, len(opts.Lists)),
		status:        make(map[string]state.Snapshot, len(opts.Lists)),
		rowsPerItem:   max(1, int(math.Ceil(opts.Window.ItemHeight))),
		fixedViewport: opts.Window.ViewportCount,
		help:          help.New(),
		keys:          DefaultKeyMap().forMode(opts.Window.MultiSelect, len(opts.Lists)),
		theme:         GetTheme(themeName),
	}

	for _, name := range m.lists {
		var snap state.Snapshot
		if m.store != nil {
			snap = m.store.Snapshot(name)
		}
		e, err := window.New(snap.Items, window.Options[string]{
			ItemHeight:    opts.Window.ItemHeight,
			ViewportCount: opts.Window.ViewportCount,
			Buffer:        engineBuffer(opts.Window.Buffer),
			MultiSelect:   opts.Window.MultiSelect,
			Match:         opts.Window.Match,
		})
		if err != nil {
			return Model{}, fmt.Errorf("list %q: %w", name, err)
		}
		if err := m.registry.Register(name, e); err != nil {
			return Model{}, err
		}
		m.versions[name] = snap.Version
		snap.Items = nil
		m.status[name] = snap
	}

	m.active = m.lists[0]
	if slices.Contains(m.lists, opts.Active) {
		m.active = opts.Active
	}
	m.registry.Activate(m.active)

	m.input = textinput.New()
	m.input.Prompt = prompt
	m.input.Placeholder = "type to filter"
	m.input.Focus()

	return m, nil
}

// engineBuffer maps the config buffer, where 0 means none, to the engine
// option, where 0 means the default.
func engineBuffer(n int) int {
	if n == 0 {
		return -1
	}
	return n
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(m.pollTick))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tickMsg:
		return m, tea.Batch(checkStoreCmd(m.store, m.lists, maps.Clone(m.versions)), tickCmd(m.pollTick))

	case storeMsg:
		m.applyStore(msg)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// Result returns the outcome once the program has quit.
func (m Model) Result() (Result, bool) {
	return m.result, m.done
}

// Active returns the name of the open list.
func (m Model) Active() string {
	return m.active
}

func (m Model) engine() *window.Engine[string] {
	e, _ := m.registry.Get(m.active)
	return e
}

// handleKey processes keyboard input. Anything not bound goes to the query.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	e := m.engine()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.finish(nil, true)

	case key.Matches(msg, m.keys.Escape):
		if m.input.Value() != "" {
			m.input.SetValue("")
			e.SetQuery("")
			return m, nil
		}
		return m.finish(nil, true)

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))

	case key.Matches(msg, m.keys.NextList):
		m.switchList(1)

	case key.Matches(msg, m.keys.PrevList):
		m.switchList(-1)

	case key.Matches(msg, m.keys.Up):
		e.MoveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		e.MoveCursor(1)

	case key.Matches(msg, m.keys.PageUp):
		e.PageUp()

	case key.Matches(msg, m.keys.PageDown):
		e.PageDown()

	case key.Matches(msg, m.keys.Top):
		e.SetCursor(0)

	case key.Matches(msg, m.keys.Bottom):
		e.SetCursor(e.Len() - 1)

	case key.Matches(msg, m.keys.Toggle):
		e.ToggleCursor()
		e.MoveCursor(1)

	case key.Matches(msg, m.keys.ClearSelection):
		e.Clear()

	case key.Matches(msg, m.keys.Accept):
		values := m.acceptValues()
		if len(values) == 0 {
			return m, nil
		}
		return m.finish(values, false)

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if q := m.input.Value(); q != e.Query() {
			e.SetQuery(q)
		}
		return m, cmd
	}
	return m, nil
}

// acceptValues returns the selection in multi mode, falling back to the row
// under the cursor when nothing was toggled.
func (m Model) acceptValues() []string {
	e := m.engine()
	if e.SelectionMode() == window.MultiSelect {
		if values := e.Selection(); len(values) > 0 {
			return values
		}
	}
	it, ok := e.CursorItem()
	if !ok {
		return nil
	}
	e.SelectCursor()
	return []string{it.Value}
}

func (m Model) finish(values []string, cancelled bool) (tea.Model, tea.Cmd) {
	m.result = Result{
		Values:    values,
		List:      m.active,
		Theme:     m.theme.Name,
		Cancelled: cancelled,
	}
	m.done = true
	m.registry.CloseAll()
	return m, tea.Quit
}

func (m *Model) switchList(delta int) {
	n := len(m.lists)
	i := slices.Index(m.lists, m.active)
	next := m.lists[((i+delta)%n+n)%n]
	e, ok := m.registry.Activate(next)
	if !ok {
		return
	}
	m.active = next
	m.input.SetValue(e.Query())
	m.input.CursorEnd()
	m.logger.Debug("switched list", slog.String("list", next), slog.Int("items", e.Total()))
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.showHelp {
		return
	}
	e := m.engine()
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		e.ScrollBy(-wheelRows * e.ItemHeight())
	case tea.MouseButtonWheelDown:
		e.ScrollBy(wheelRows * e.ItemHeight())
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return
		}
		if i, ok := m.indexAt(msg.Y); ok {
			e.SetCursor(i)
		}
	}
}

// indexAt maps a screen row to an index in the active list.
func (m Model) indexAt(y int) (int, bool) {
	row := y - listTop
	if row < 0 || row >= m.listHeight() {
		return 0, false
	}
	e := m.engine()
	i := firstVisible(e) + row/m.rowsPerItem
	if i >= e.Len() {
		return 0, false
	}
	return i, true
}

func (m Model) listHeight() int {
	return max(m.height-chromeRows, 0)
}

func (m *Model) resize() {
	viewport := m.fixedViewport
	if viewport <= 0 {
		viewport = m.listHeight() / m.rowsPerItem
	}
	for _, name := range m.lists {
		e, _ := m.registry.Get(name)
		e.SetViewportCount(viewport)
		e.EnsureVisible(e.Cursor())
	}
	m.help.Width = m.width
	m.input.Width = max(m.width-len([]rune(m.input.Prompt))-3, 1)
}

// applyStore swaps in changed item sets. The scroll position is kept and the
// cursor follows its item when the item is still present after the swap.
func (m *Model) applyStore(msg storeMsg) {
	for name, snap := range msg.updates {
		e, ok := m.registry.Get(name)
		if !ok {
			continue
		}
		current, hadCursor := e.CursorItem()
		cursor, top := e.Cursor(), e.ScrollTop()
		e.SetItems(snap.Items)
		e.SetScrollTop(top)
		if hadCursor {
			if i := slices.IndexFunc(e.Items(), func(it window.Item[string]) bool {
				return it.Value == current.Value
			}); i >= 0 {
				cursor = i
			}
		}
		e.SetCursor(cursor)
		m.versions[name] = snap.Version
		m.logger.Debug("list updated", slog.String("list", name), slog.Int("items", len(snap.Items)), slog.Uint64("version", snap.Version))
	}
	for name, snap := range msg.status {
		m.status[name] = snap
	}
}

// Messages

type tickMsg time.Time

type storeMsg struct {
	updates map[string]state.Snapshot // lists whose version moved, with items
	status  map[string]state.Snapshot // every list, without items
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func checkStoreCmd(store *state.Store, names []string, known map[string]uint64) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		msg := storeMsg{
			updates: make(map[string]state.Snapshot),
			status:  make(map[string]state.Snapshot, len(names)),
		}
		for _, name := range names {
			status := store.Status(name)
			msg.status[name] = status
			if status.Version != known[name] {
				msg.updates[name] = store.Snapshot(name)
			}
		}
		return msg
	}
}

// Run starts the Bubble Tea program and blocks until the user accepts or
// cancels, or ctx is done.
func Run(opts Options) (Result, error) {
	m, err := New(opts)
	if err != nil {
		return Result{}, err
	}

	progOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(m.ctx),
	}
	progOpts = append(progOpts, opts.ProgramOptions...)

	final, err := tea.NewProgram(m, progOpts...).Run()
	cancelled := Result{List: m.active, Theme: m.theme.Name, Cancelled: true}
	if err != nil {
		if m.ctx.Err() != nil {
			return cancelled, nil
		}
		return Result{}, fmt.Errorf("run picker: %w", err)
	}
	if fm, ok := final.(Model); ok {
		if res, done := fm.Result(); done {
			return res, nil
		}
	}
	return cancelled, nil
}
