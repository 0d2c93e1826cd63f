// Package ui provides the Bubble Tea rendering layer over the sync core.
// It reads session and store snapshots on change notifications and issues
// mutations as commands; it never mutates view-state directly.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/luminaai/lumina/internal/api"
	"github.com/luminaai/lumina/internal/auth"
	"github.com/luminaai/lumina/internal/player"
	"github.com/luminaai/lumina/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewLibrary View = iota
	ViewExplore
	ViewCreate
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Session *auth.Session
	Store   *state.Store
	Player  player.Controller
	Origin  string // service origin for resolving media URLs
	Model   string // generation model sent with create requests
}

// Messages delivered when the core notifies a change.
type (
	sessionChangedMsg struct{}
	storeChangedMsg   struct{}
)

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx      context.Context
	session  *auth.Session
	store    *state.Store
	player   player.Controller
	origin   string
	genModel string

	theme  Theme
	styles Styles
	keys   keyMap
	width  int
	height int
	ready  bool

	currentView View
	sess        auth.State
	view        state.View

	// Login/register form
	registerMode bool
	loginInputs  []textinput.Model // name, email, password
	loginFocus   int

	// Create form
	createInputs []textinput.Model // title, prompt, lyrics, style
	createFocus  int

	// List selections
	librarySel int
	exploreSel int

	showHelp bool
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	ctl := opts.Player
	if ctl == nil {
		ctl = player.Noop{}
	}

	theme := DefaultTheme()
	m := Model{
		ctx:      ctx,
		session:  opts.Session,
		store:    opts.Store,
		player:   ctl,
		origin:   opts.Origin,
		genModel: opts.Model,
		theme:    theme,
		styles:   theme.Styles(),
		keys:     DefaultKeyMap(),
	}
	m.loginInputs = newLoginInputs()
	m.createInputs = newCreateInputs()
	m.sess = opts.Session.State()
	m.view = opts.Store.View()
	return m
}

// Run boots the UI and blocks until the context is cancelled or the user
// quits.
func Run(opts Options) error {
	program := tea.NewProgram(New(opts),
		tea.WithAltScreen(),
		tea.WithContext(opts.Context),
	)
	_, err := program.Run()
	if err != nil && opts.Context.Err() != nil {
		// Context cancellation is a normal shutdown, not a failure.
		return nil
	}
	return err
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.watchSession(), m.watchStore())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case sessionChangedMsg:
		wasAuthed := m.sess.Status == auth.StatusAuthenticated
		m.sess = m.session.State()
		cmds := []tea.Cmd{m.watchSession()}
		if !wasAuthed && m.sess.Status == auth.StatusAuthenticated {
			m.resetLoginForm()
			m.currentView = ViewLibrary
			cmds = append(cmds, m.loadLibrary(), m.loadExplore())
		}
		if wasAuthed && m.sess.Status == auth.StatusUnauthenticated {
			// Session expired or logged out; fall back to the login form.
			m.resetLoginForm()
		}
		return m, tea.Batch(cmds...)

	case storeChangedMsg:
		m.view = m.store.View()
		m.clampSelections()
		return m, m.watchStore()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && !m.typing() {
		return m, tea.Quit
	}
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.sess.Status != auth.StatusAuthenticated {
		return m.handleLoginKey(msg)
	}

	if key.Matches(msg, m.keys.Help) && !m.typing() {
		m.showHelp = !m.showHelp
		return m, nil
	}
	if key.Matches(msg, m.keys.Logout) {
		return m, m.logout()
	}

	switch m.currentView {
	case ViewCreate:
		return m.handleCreateKey(msg)
	case ViewExplore:
		return m.handleExploreKey(msg)
	default:
		return m.handleLibraryKey(msg)
	}
}

// typing reports whether a text field currently has focus, in which case
// printable keys belong to the field rather than to shortcuts.
func (m Model) typing() bool {
	if m.sess.Status != auth.StatusAuthenticated {
		return true
	}
	return m.currentView == ViewCreate
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.sess.Status != auth.StatusAuthenticated {
		m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
		return m, cmd
	}
	if m.currentView == ViewCreate {
		m.createInputs[m.createFocus], cmd = m.createInputs[m.createFocus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) clampSelections() {
	if last := len(m.view.Generations) - 1; m.librarySel > last {
		m.librarySel = max(last, 0)
	}
	if last := len(m.view.Explore) - 1; m.exploreSel > last {
		m.exploreSel = max(last, 0)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.sess.Status == auth.StatusUnknown {
		return m.styles.MutedText.Render("\n  Checking session...")
	}
	if m.sess.Status != auth.StatusAuthenticated {
		return m.renderLogin()
	}

	body := ""
	switch m.currentView {
	case ViewExplore:
		body = m.renderExplore()
	case ViewCreate:
		body = m.renderCreate()
	default:
		body = m.renderLibrary()
	}
	if m.showHelp {
		body = m.renderHelp()
	}
	return m.renderHeader() + "\n" + body + "\n" + m.renderFooter()
}

// --- commands ------------------------------------------------------------

func (m Model) watchSession() tea.Cmd {
	ch := m.session.Changes()
	return func() tea.Msg {
		<-ch
		return sessionChangedMsg{}
	}
}

func (m Model) watchStore() tea.Cmd {
	ch := m.store.Changes()
	return func() tea.Msg {
		<-ch
		return storeChangedMsg{}
	}
}

func (m Model) loadLibrary() tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		store.LoadGenerations(ctx)
		return nil
	}
}

func (m Model) loadExplore() tea.Cmd {
	ctx, store := m.ctx, m.store
	return func() tea.Msg {
		store.LoadExplore(ctx)
		return nil
	}
}

func (m Model) logout() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		session.Logout()
		return nil
	}
}

func selectedRecord(items []api.Generation, sel int) (api.Generation, bool) {
	if sel < 0 || sel >= len(items) {
		return api.Generation{}, false
	}
	return items[sel], true
}
