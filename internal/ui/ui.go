package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/five82/redirectctl/internal/prefs"
	"github.com/five82/redirectctl/internal/redirect"
	"github.com/five82/redirectctl/internal/state"
)

// Editor is the subset of the redirect client the browser writes through.
type Editor interface {
	PutRedirect(ctx context.Context, payload redirect.Redirect) error
	DeleteRedirect(ctx context.Context, from string) error
}

// Pager moves the page the background poller keeps fresh.
type Pager interface {
	Cursor() string
	SetCursor(cursor string)
	Refresh()
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Editor    Editor
	Pager     Pager
	Store     *state.Store
	APIURL    string
	PollTick  time.Duration
	ThemeName string
	PrefsPath string
	PageSize  int // persisted alongside the theme
	Logger    zerolog.Logger
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	editor    Editor
	pager     Pager
	store     *state.Store
	apiURL    string
	prefsPath string
	pageSize  int
	pollTick  time.Duration
	logger    zerolog.Logger
	keys      keyMap

	// UI state
	theme  Theme
	width  int
	height int
	ready  bool

	// Data state
	snapshot    state.Snapshot
	selectedRow int
	history     []string // cursors of the pages before the current one

	// Feedback from the last add/delete
	notice      string
	noticeIsErr bool

	showHelp bool
	modal    Modal
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = time.Second
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:       ctx,
		editor:    opts.Editor,
		pager:     opts.Pager,
		store:     opts.Store,
		apiURL:    opts.APIURL,
		prefsPath: prefsPath,
		pageSize:  opts.PageSize,
		pollTick:  pollTick,
		logger:    opts.Logger,
		keys:      DefaultKeyMap(),
		theme:     GetTheme(opts.ThemeName),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		var cmds []tea.Cmd
		if m.store != nil {
			cmds = append(cmds, fetchSnapshotCmd(m.store))
		}
		cmds = append(cmds, tickCmd(m.pollTick))
		return m, tea.Batch(cmds...)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.clampSelection()
		return m, nil

	case actionMsg:
		return m.handleAction(msg), nil
	}

	// Let an open modal see non-key messages such as cursor blinks.
	if m.modal != nil {
		var cmd tea.Cmd
		m.modal, cmd, _ = m.modal.Update(msg, m.keys)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.modal != nil {
		var (
			cmd    tea.Cmd
			closed bool
		)
		m.modal, cmd, closed = m.modal.Update(msg, m.keys)
		if closed {
			m.modal = nil
		}
		return m, cmd
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	items := m.snapshot.Page.RedirectList

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		if m.prefsPath != "" {
			if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, PageSize: m.pageSize}); err != nil {
				m.logger.Warn().Err(err).Msg("save prefs failed")
			}
		}

	case key.Matches(msg, m.keys.Refresh):
		if m.pager != nil {
			m.pager.Refresh()
		}

	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < len(items)-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = max(len(items)-1, 0)

	case key.Matches(msg, m.keys.NextPage):
		m.nextPage()
	case key.Matches(msg, m.keys.PrevPage):
		m.prevPage()

	case key.Matches(msg, m.keys.Add):
		if m.editor != nil {
			m.modal = newAddModal(m.putCmd)
			return m, textinput.Blink
		}

	case key.Matches(msg, m.keys.Delete):
		if target, ok := m.selected(); ok && m.editor != nil {
			m.modal = confirmModal{target: target, submit: m.deleteCmd}
		}
	}

	return m, nil
}

// nextPage waits for the page under the pager's cursor to arrive, so the
// history never records a cursor twice.
func (m *Model) nextPage() {
	if m.pager == nil || !m.pageSettled() || !m.snapshot.Page.HasMore() {
		return
	}
	m.history = append(m.history, m.pager.Cursor())
	m.pager.SetCursor(m.snapshot.Page.NextCursor)
	m.selectedRow = 0
}

func (m Model) pageSettled() bool {
	return m.snapshot.HasPage && redirect.SameCursor(m.snapshot.Cursor, m.pager.Cursor())
}

func (m *Model) prevPage() {
	if m.pager == nil || len(m.history) == 0 {
		return
	}
	prev := m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	m.pager.SetCursor(prev)
	m.selectedRow = 0
}

func (m Model) selected() (redirect.Redirect, bool) {
	items := m.snapshot.Page.RedirectList
	if m.selectedRow < 0 || m.selectedRow >= len(items) {
		return redirect.Redirect{}, false
	}
	return items[m.selectedRow], true
}

func (m *Model) clampSelection() {
	n := len(m.snapshot.Page.RedirectList)
	if m.selectedRow >= n {
		m.selectedRow = max(n-1, 0)
	}
}

func (m Model) handleAction(msg actionMsg) Model {
	if msg.err != nil {
		m.notice = fmt.Sprintf("%s %s failed: %v", msg.verb, msg.target, msg.err)
		m.noticeIsErr = true
		m.logger.Error().Err(msg.err).Str("action", msg.verb).Str("target", msg.target).Msg("redirect action failed")
		return m
	}
	m.notice = fmt.Sprintf("%s %s", pastTense(msg.verb), msg.target)
	m.noticeIsErr = false
	m.logger.Info().Str("action", msg.verb).Str("target", msg.target).Msg("redirect action succeeded")
	if m.pager != nil {
		m.pager.Refresh()
	}
	return m
}

func pastTense(verb string) string {
	switch verb {
	case "save":
		return "saved"
	case "delete":
		return "deleted"
	default:
		return verb
	}
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type actionMsg struct {
	verb   string
	target string
	err    error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func (m Model) putCmd(r redirect.Redirect) tea.Cmd {
	ctx, editor := m.ctx, m.editor
	return func() tea.Msg {
		err := editor.PutRedirect(ctx, r)
		return actionMsg{verb: "save", target: r.From, err: err}
	}
}

func (m Model) deleteCmd(r redirect.Redirect) tea.Cmd {
	ctx, editor := m.ctx, m.editor
	return func() tea.Msg {
		err := editor.DeleteRedirect(ctx, r.From)
		return actionMsg{verb: "delete", target: r.From, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	if opts.Store == nil {
		return fmt.Errorf("ui requires a data store")
	}
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if err != nil && m.ctx.Err() != nil {
		// Cancelled from outside, e.g. SIGTERM.
		return nil
	}
	return err
}
