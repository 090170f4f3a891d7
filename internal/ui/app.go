package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/five82/bookgrid/internal/page"
	"github.com/five82/bookgrid/internal/prefs"
	"github.com/five82/bookgrid/internal/state"
)

// Source starts the one fetch of a mount and exposes its state.
type Source interface {
	Start(ctx context.Context)
	Store() *state.Store
}

// Options configures the UI.
type Options struct {
	Context   context.Context
	Source    Source
	ThemeName string
	PrefsPath string
	Logger    *zap.Logger

	// CopyLink writes a purchase link to the clipboard. Nil uses the
	// system clipboard.
	CopyLink func(string) error
}

const (
	defaultWidth  = 80
	defaultHeight = 24
	flashDuration = 2 * time.Second
)

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	source    Source
	prefsPath string
	log       *zap.Logger
	copyLink  func(string) error
	keys      keyMap

	// UI state
	theme    Theme
	width    int
	height   int
	spinner  spinner.Model
	viewport viewport.Model
	showHelp bool
	flash    string

	// Data state
	view     state.ViewState
	cards    []page.Card
	grid     gridLayout
	selected int
}

// New creates a new Bubble Tea model in the loading state.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	copyLink := opts.CopyLink
	if copyLink == nil {
		copyLink = clipboard.WriteAll
	}

	theme := GetTheme(opts.ThemeName)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Styles().Spinner

	return Model{
		ctx:       ctx,
		source:    opts.Source,
		prefsPath: opts.PrefsPath,
		log:       logger,
		copyLink:  copyLink,
		keys:      DefaultKeyMap(),
		theme:     theme,
		width:     defaultWidth,
		height:    defaultHeight,
		spinner:   sp,
		viewport:  viewport.New(defaultWidth, defaultHeight-chromeHeight),
		view:      state.Initial(),
	}
}

// Init implements tea.Model. It is the only place the fetch is requested.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, mountCmd(m.ctx, m.source))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if !m.view.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case settledMsg:
		m.view = state.ViewState(msg)
		m.cards = page.Cards(m.view.Items)
		m.selected = 0
		m.layout()
		return m, nil

	case flashClearMsg:
		if string(msg) == m.flash {
			m.flash = ""
		}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	switch m.view.Phase() {
	case state.PhaseLoading:
		return m.renderLoading()
	case state.PhaseError:
		return m.renderError()
	default:
		return m.renderReady()
	}
}

func (m Model) renderLoading() string {
	content := m.spinner.View() + " " + m.theme.Styles().MutedText.Render(page.LoadingText)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderError() string {
	content := m.theme.Styles().DangerText.Render(page.ErrorMessage)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderReady() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Heading.Render("📚 " + page.Heading))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	if m.flash != "" {
		return styles.Footer.Render(m.flash)
	}
	count := fmt.Sprintf("%d books", len(m.cards))
	if len(m.cards) == 1 {
		count = "1 book"
	}
	hints := []string{count}
	if len(m.cards) > 0 {
		hints = append(hints, fmt.Sprintf("%d/%d", m.selected+1, len(m.cards)))
	}
	hints = append(hints, "? help", "q quit")
	return styles.Footer.Render(strings.Join(hints, " · "))
}

// layout re-renders the grid for the current size and selection.
func (m *Model) layout() {
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chromeHeight, 1)
	m.grid = renderGrid(m.cards, m.width, m.selected, m.theme.Styles())
	m.viewport.SetContent(m.grid.content)
	m.scrollToSelected()
}

// scrollToSelected adjusts the viewport so the selected card's row is visible.
func (m *Model) scrollToSelected() {
	if len(m.cards) == 0 || len(m.grid.rowStarts) == 0 {
		m.viewport.GotoTop()
		return
	}
	row := m.grid.rowOf(m.selected)
	if row >= len(m.grid.rowStarts) {
		return
	}
	top, bottom := m.grid.rowStarts[row], m.grid.rowEnds[row]
	switch {
	case top < m.viewport.YOffset:
		m.viewport.SetYOffset(top)
	case bottom > m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	}

	if m.view.Phase() != state.PhaseReady || len(m.cards) == 0 {
		return m, nil
	}

	columns := max(m.grid.columns, 1)
	last := len(m.cards) - 1
	switch {
	case key.Matches(msg, m.keys.Left):
		m.moveSelection(m.selected - 1)
	case key.Matches(msg, m.keys.Right):
		m.moveSelection(m.selected + 1)
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(m.selected - columns)
	case key.Matches(msg, m.keys.Down):
		if m.selected+columns <= last {
			m.moveSelection(m.selected + columns)
		}
	case key.Matches(msg, m.keys.Top):
		m.moveSelection(0)
	case key.Matches(msg, m.keys.Bottom):
		m.moveSelection(last)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfPageDown()
	case key.Matches(msg, m.keys.CopyLink):
		return m, m.copySelectedLink()
	}
	return m, nil
}

func (m *Model) moveSelection(to int) {
	if to < 0 || to >= len(m.cards) || to == m.selected {
		return
	}
	m.selected = to
	m.layout()
}

func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.spinner.Style = m.theme.Styles().Spinner
	m.layout()
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.log.Warn("save prefs failed", zap.Error(err))
	}
}

func (m *Model) copySelectedLink() tea.Cmd {
	link := m.cards[m.selected].Link
	if link == "" {
		return m.setFlash("No purchase link for this book")
	}
	if err := m.copyLink(link); err != nil {
		m.log.Warn("copy link failed", zap.Error(err))
		return m.setFlash("Could not copy link")
	}
	return m.setFlash("Copied " + link)
}

func (m *Model) setFlash(text string) tea.Cmd {
	m.flash = text
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashClearMsg(text)
	})
}

// Messages

type settledMsg state.ViewState

type flashClearMsg string

// Commands

// mountCmd starts the source's fetch and waits for it to settle. A nil
// result means the context ended first, and the UI stays on the spinner.
func mountCmd(ctx context.Context, source Source) tea.Cmd {
	if source == nil {
		return nil
	}
	return func() tea.Msg {
		source.Start(ctx)
		snap, err := source.Store().Wait(ctx)
		if err != nil {
			return nil
		}
		return settledMsg(snap)
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or ctx
// is cancelled.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx
	p := tea.NewProgram(New(opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
